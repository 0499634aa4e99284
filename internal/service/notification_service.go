package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/citrapricylia-am/loopout-app/internal/config"
	"github.com/citrapricylia-am/loopout-app/internal/events"
	"github.com/citrapricylia-am/loopout-app/internal/repository"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

// NotificationService turns domain events into short-lived admin notices.
// Notices expire after the configured display window; there is no delivery
// mechanism and nothing is persisted beyond the TTL.
type NotificationService struct {
	dispatcher events.Dispatcher
	store      repository.NotificationStore
	logger     *zap.Logger
	ttl        time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, store repository.NotificationStore, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
		ttl:        cfg.TTL(),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.handleTicketDeleted)
}

// ListLive returns notices still inside their display window.
func (n *NotificationService) ListLive(ctx context.Context) ([]repository.Notification, error) {
	notifications, err := n.store.ListLive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if notifications == nil {
		notifications = []repository.Notification{}
	}
	return notifications, nil
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("New ticket %q submitted by %s with priority %s",
		payload.Title, payload.OwnerName, payload.Priority)
	return n.post(ctx, event.TicketID, message)
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("Notification to %s (%s): status of ticket %q changed to %q",
		payload.OwnerName, payload.OwnerPhone, payload.Title, payload.NewStatus)
	return n.post(ctx, event.TicketID, message)
}

func (n *NotificationService) handleTicketDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketDeletedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket deleted", zap.String("ticket_id", event.TicketID), zap.String("title", payload.Title))
	return nil
}

func (n *NotificationService) post(ctx context.Context, ticketID, message string) error {
	notification := repository.Notification{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := n.store.Add(ctx, notification, n.ttl); err != nil {
		n.logger.Warn("failed to store notification", zap.Error(err))
		return err
	}
	n.logger.Info("notification posted", zap.String("ticket_id", ticketID), zap.String("message", message))
	return nil
}
