package events

import (
	"time"

	"github.com/citrapricylia-am/loopout-app/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticketId"`
	ActorID   string      `json:"actorId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title     string                `json:"title"`
	Priority  domain.TicketPriority `json:"priority"`
	OwnerID   string                `json:"ownerId"`
	OwnerName string                `json:"ownerName"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Title      string              `json:"title"`
	OldStatus  domain.TicketStatus `json:"oldStatus"`
	NewStatus  domain.TicketStatus `json:"newStatus"`
	OwnerName  string              `json:"ownerName"`
	OwnerPhone string              `json:"ownerPhone"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title string `json:"title"`
}
