package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/citrapricylia-am/loopout-app/internal/domain"
	"github.com/citrapricylia-am/loopout-app/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository,
// including the unique email constraint.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeTicketRepo mirrors the ticket repository contract, including the
// owner join and newest-first ordering.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets []*domain.Ticket
	users   *fakeUserRepo
}

func newFakeTicketRepo(users *fakeUserRepo) *fakeTicketRepo {
	return &fakeTicketRepo{users: users}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.tickets = append(r.tickets, &clone)
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.TicketWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.ID == id {
			return r.joinOwner(ctx, ticket)
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.TicketWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TicketWithOwner
	// newest first: insertion order is oldest first
	for i := len(r.tickets) - 1; i >= 0; i-- {
		ticket := r.tickets[i]
		if filter.OwnerID != nil && ticket.UserID != *filter.OwnerID {
			continue
		}
		joined, err := r.joinOwner(ctx, ticket)
		if err != nil {
			return nil, err
		}
		result = append(result, *joined)
	}
	return result, nil
}

func (r *fakeTicketRepo) UpdateFields(_ context.Context, id string, columns map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.ID != id {
			continue
		}
		for column, value := range columns {
			applyColumn(ticket, column, value)
		}
		now := time.Now()
		if !now.After(ticket.UpdatedAt) {
			now = ticket.UpdatedAt.Add(time.Millisecond)
		}
		ticket.UpdatedAt = now
		return nil
	}
	return pgx.ErrNoRows
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ticket := range r.tickets {
		if ticket.ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTicketRepo) joinOwner(ctx context.Context, ticket *domain.Ticket) (*domain.TicketWithOwner, error) {
	owner, err := r.users.GetByID(ctx, ticket.UserID)
	if err != nil {
		return nil, err
	}
	clone := *ticket
	return &domain.TicketWithOwner{
		Ticket:     clone,
		OwnerName:  owner.Name,
		OwnerEmail: owner.Email,
		OwnerPhone: owner.Phone,
	}, nil
}

func applyColumn(ticket *domain.Ticket, column string, value any) {
	switch column {
	case "title":
		ticket.Title = value.(string)
	case "short_description":
		ticket.ShortDescription = value.(string)
	case "detail_request":
		ticket.DetailRequest = value.(string)
	case "request_type":
		ticket.RequestType = value.(domain.RequestType)
	case "bug_url":
		ticket.BugURL = value.(string)
	case "website_title":
		ticket.WebsiteTitle = value.(string)
	case "attachments":
		ticket.Attachments = value.([]string)
	case "deadline":
		if value == nil {
			ticket.Deadline = nil
		} else {
			ticket.Deadline = value.(*time.Time)
		}
	case "priority":
		ticket.Priority = value.(domain.TicketPriority)
	case "status":
		ticket.Status = value.(domain.TicketStatus)
	}
}

// fakeNotificationStore keeps notices in memory and honors TTLs.
type fakeNotificationStore struct {
	mu      sync.Mutex
	entries []storedNotification
}

type storedNotification struct {
	notification repository.Notification
	expiresAt    time.Time
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (s *fakeNotificationStore) Add(_ context.Context, notification repository.Notification, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, storedNotification{notification: notification, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (s *fakeNotificationStore) ListLive(_ context.Context) ([]repository.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []repository.Notification
	for _, entry := range s.entries {
		if time.Now().Before(entry.expiresAt) {
			result = append(result, entry.notification)
		}
	}
	return result, nil
}
