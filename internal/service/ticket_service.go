package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/citrapricylia-am/loopout-app/internal/domain"
	"github.com/citrapricylia-am/loopout-app/internal/events"
	"github.com/citrapricylia-am/loopout-app/internal/repository"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

// deadlineLayout is the wire format for ticket deadlines (date only).
const deadlineLayout = "2006-01-02"

// updatableColumns maps wire field names to ticket columns. Anything outside
// this set is rejected; in particular user_id and created_at stay immutable.
var updatableColumns = map[string]string{
	"title":            "title",
	"shortDescription": "short_description",
	"detailRequest":    "detail_request",
	"requestType":      "request_type",
	"bugUrl":           "bug_url",
	"websiteTitle":     "website_title",
	"attachments":      "attachments",
	"deadline":         "deadline",
	"priority":         "priority",
	"status":           "status",
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title            string
	ShortDescription string
	DetailRequest    string
	RequestType      domain.RequestType
	BugURL           string
	WebsiteTitle     string
	Attachments      []string
	Deadline         *time.Time
	Priority         domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create stores a new ticket owned by the authenticated actor. Status is
// always open and the owner's department is snapshotted onto the row.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if !input.RequestType.Valid() {
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"requestType": input.RequestType})
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	owner, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("owner does not exist", nil)
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		UserID:           owner.ID,
		Title:            strings.TrimSpace(input.Title),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		DetailRequest:    input.DetailRequest,
		RequestType:      input.RequestType,
		BugURL:           input.BugURL,
		WebsiteTitle:     input.WebsiteTitle,
		Attachments:      input.Attachments,
		Deadline:         input.Deadline,
		Priority:         input.Priority,
		Status:           domain.TicketStatusOpen,
		UserDepartment:   owner.Department,
	}
	if ticket.Attachments == nil {
		ticket.Attachments = []string{}
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  owner.ID,
		Payload: events.TicketCreatedPayload{
			Title:     ticket.Title,
			Priority:  ticket.Priority,
			OwnerID:   owner.ID,
			OwnerName: owner.Name,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor, newest first, each joined with
// the owner's live profile fields. Admins see everything; everyone else sees
// only their own tickets.
func (s *TicketService) List(ctx context.Context, actor *domain.User) ([]domain.TicketWithOwner, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	filter := repository.TicketFilter{}
	if actor.Role != domain.RoleAdmin {
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.TicketWithOwner{}
	}
	return tickets, nil
}

// Update applies a partial update restricted to the allowed field set and
// bumps updated_at. Status changes emit a notification event.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, ticketID string, updates map[string]any) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	if ticketID == "" {
		return apperrors.NewValidationError("ticketId is required", nil)
	}
	if len(updates) == 0 {
		return apperrors.NewValidationError("updates are required", nil)
	}

	columns, newStatus, err := buildUpdateColumns(updates)
	if err != nil {
		return err
	}

	existing, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}

	if err := s.tickets.UpdateFields(ctx, ticketID, columns); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}

	if newStatus != nil && *newStatus != existing.Status {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			ActorID:  actor.ID,
			Payload: events.TicketStatusChangedPayload{
				Title:      existing.Title,
				OldStatus:  existing.Status,
				NewStatus:  *newStatus,
				OwnerName:  existing.OwnerName,
				OwnerPhone: existing.OwnerPhone,
			},
		})
	}
	return nil
}

// Delete hard-deletes a ticket.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, ticketID string) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id is required", nil)
	}

	existing, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		ActorID:  actor.ID,
		Payload:  events.TicketDeletedPayload{Title: existing.Title},
	})
	return nil
}

// buildUpdateColumns validates wire field names and values, returning the
// column map for the repository and the requested status, if any.
func buildUpdateColumns(updates map[string]any) (map[string]any, *domain.TicketStatus, error) {
	columns := make(map[string]any, len(updates))
	var newStatus *domain.TicketStatus

	for field, value := range updates {
		column, ok := updatableColumns[field]
		if !ok {
			return nil, nil, apperrors.NewValidationError("field cannot be updated", map[string]any{"field": field})
		}

		switch field {
		case "status":
			status := domain.TicketStatus(asString(value))
			if !status.Valid() {
				return nil, nil, apperrors.NewValidationError("unknown status", map[string]any{"status": value})
			}
			newStatus = &status
			columns[column] = status
		case "priority":
			priority := domain.TicketPriority(asString(value))
			if !priority.Valid() {
				return nil, nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": value})
			}
			columns[column] = priority
		case "requestType":
			requestType := domain.RequestType(asString(value))
			if !requestType.Valid() {
				return nil, nil, apperrors.NewValidationError("unknown request type", map[string]any{"requestType": value})
			}
			columns[column] = requestType
		case "deadline":
			deadline, err := parseDeadline(value)
			if err != nil {
				return nil, nil, err
			}
			columns[column] = deadline
		case "attachments":
			attachments, err := asStringSlice(value)
			if err != nil {
				return nil, nil, err
			}
			columns[column] = attachments
		default:
			str, ok := value.(string)
			if !ok {
				return nil, nil, apperrors.NewValidationError("field must be a string", map[string]any{"field": field})
			}
			columns[column] = str
		}
	}
	return columns, newStatus, nil
}

func asString(value any) string {
	str, _ := value.(string)
	return str
}

// asStringSlice accepts both []string and the []any a generic JSON decode
// produces.
func asStringSlice(value any) ([]string, error) {
	switch typed := value.(type) {
	case []string:
		return typed, nil
	case []any:
		result := make([]string, 0, len(typed))
		for _, item := range typed {
			str, ok := item.(string)
			if !ok {
				return nil, apperrors.NewValidationError("attachments must be strings", nil)
			}
			result = append(result, str)
		}
		return result, nil
	case nil:
		return []string{}, nil
	}
	return nil, apperrors.NewValidationError("attachments must be a list of strings", nil)
}

// parseDeadline accepts a date-only string; empty or null clears the value.
func parseDeadline(value any) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	str, ok := value.(string)
	if !ok {
		return nil, apperrors.NewValidationError("deadline must be a date string", nil)
	}
	if str == "" {
		return nil, nil
	}
	parsed, err := time.Parse(deadlineLayout, str)
	if err != nil {
		return nil, apperrors.NewValidationError("deadline must use YYYY-MM-DD", map[string]any{"deadline": str})
	}
	return &parsed, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
