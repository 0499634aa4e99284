package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// RequestType differentiates bug reports from website requests.
type RequestType string

const (
	RequestTypeBugFixing RequestType = "Bug Fixing"
	RequestTypeWebsite   RequestType = "Website"
)

// Valid reports whether the request type is one of the known values.
func (t RequestType) Valid() bool {
	return t == RequestTypeBugFixing || t == RequestTypeWebsite
}

// Ticket is the aggregate for support requests.
//
// UserDepartment is a snapshot of the owner's department taken at creation
// time; it is not kept in sync with later profile changes. BugURL is only
// meaningful for Bug Fixing requests and WebsiteTitle for Website requests;
// the store does not enforce that pairing.
type Ticket struct {
	ID               string
	UserID           string
	Title            string
	ShortDescription string
	DetailRequest    string
	RequestType      RequestType
	BugURL           string
	WebsiteTitle     string
	Attachments      []string
	Deadline         *time.Time
	Priority         TicketPriority
	Status           TicketStatus
	UserDepartment   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TicketWithOwner is a ticket row joined with the owner's live profile
// fields for display. The department shown to clients stays the
// creation-time snapshot on the ticket itself.
type TicketWithOwner struct {
	Ticket
	OwnerName  string
	OwnerEmail string
	OwnerPhone string
}
