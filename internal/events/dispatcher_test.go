package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citrapricylia-am/loopout-app/internal/events"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{ID: "evt-1", Type: events.EventTicketCreated})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].ID)
}

func TestDispatcher_IgnoresOtherEventTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	count := 0
	dispatcher.Subscribe(events.EventTicketDeleted, func(_ context.Context, _ events.Event) error {
		count++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}))
	assert.Zero(t, count)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, _ events.Event) error {
		return errors.New("boom")
	})
	delivered := false
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, _ events.Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}))
	assert.True(t, delivered)
}
