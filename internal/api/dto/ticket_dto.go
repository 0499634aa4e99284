package dto

import (
	"time"

	"github.com/citrapricylia-am/loopout-app/internal/domain"
)

// CreateTicketRequest payload. Deadline is a date-only string (YYYY-MM-DD).
type CreateTicketRequest struct {
	Title            string                `json:"title"`
	ShortDescription string                `json:"shortDescription"`
	DetailRequest    string                `json:"detailRequest"`
	RequestType      domain.RequestType    `json:"requestType"`
	BugURL           string                `json:"bugUrl"`
	WebsiteTitle     string                `json:"websiteTitle"`
	Attachments      []string              `json:"attachments"`
	Deadline         string                `json:"deadline"`
	Priority         domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest carries a partial field update. Keys in Updates use
// wire casing; the service validates them against the allowed field set.
type UpdateTicketRequest struct {
	TicketID string         `json:"ticketId"`
	Updates  map[string]any `json:"updates"`
}

// TicketResponse is a ticket row joined with the owner's profile fields.
// UserDepartment is the creation-time snapshot, not the live value.
type TicketResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	ShortDescription string                `json:"shortDescription"`
	DetailRequest    string                `json:"detailRequest"`
	RequestType      domain.RequestType    `json:"requestType"`
	BugURL           string                `json:"bugUrl,omitempty"`
	WebsiteTitle     string                `json:"websiteTitle,omitempty"`
	Attachments      []string              `json:"attachments"`
	Deadline         *string               `json:"deadline,omitempty"`
	Priority         domain.TicketPriority `json:"priority"`
	Status           domain.TicketStatus   `json:"status"`
	UserID           string                `json:"userId"`
	UserName         string                `json:"userName,omitempty"`
	UserEmail        string                `json:"userEmail,omitempty"`
	UserPhone        string                `json:"userPhone,omitempty"`
	UserDepartment   string                `json:"userDepartment"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// NotificationResponse is a transient admin notice.
type NotificationResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
