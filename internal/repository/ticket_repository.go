package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citrapricylia-am/loopout-app/internal/domain"
)

// TicketFilter scopes ticket listings.
type TicketFilter struct {
	OwnerID *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.TicketWithOwner, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.TicketWithOwner, error)
	UpdateFields(ctx context.Context, id string, columns map[string]any) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, short_description, detail_request, request_type, bug_url,
            website_title, attachments, deadline, priority, status, user_id, user_department)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.ShortDescription,
		ticket.DetailRequest,
		ticket.RequestType,
		ticket.BugURL,
		ticket.WebsiteTitle,
		ticket.Attachments,
		ticket.Deadline,
		ticket.Priority,
		ticket.Status,
		ticket.UserID,
		ticket.UserDepartment,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

const ticketSelectColumns = `
        t.id, t.title, t.short_description, t.detail_request, t.request_type, t.bug_url,
        t.website_title, t.attachments, t.deadline, t.priority, t.status, t.user_id,
        t.user_department, t.created_at, t.updated_at,
        u.name, u.email, u.phone`

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.TicketWithOwner, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM tickets t
        JOIN users u ON u.id = t.user_id
        WHERE t.id=$1`, ticketSelectColumns)

	var ticket domain.TicketWithOwner
	if err := scanTicketRow(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.TicketWithOwner, error) {
	base := fmt.Sprintf(`
        SELECT %s
        FROM tickets t
        JOIN users u ON u.id = t.user_id`, ticketSelectColumns)

	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		base += fmt.Sprintf(" WHERE t.user_id=$%d", len(args))
	}
	base += " ORDER BY t.created_at DESC"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketWithOwner
	for rows.Next() {
		var ticket domain.TicketWithOwner
		if err := scanTicketRow(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

// UpdateFields applies a partial update in a single statement. Column names
// come from the service's closed allow-list, never from client input, so the
// dynamic SET clause is safe to interpolate. updated_at is always bumped.
func (r *ticketRepository) UpdateFields(ctx context.Context, id string, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		args = append(args, columns[name])
		assignments = append(assignments, fmt.Sprintf("%s=$%d", name, len(args)))
	}
	assignments = append(assignments, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tickets SET %s WHERE id=$%d",
		strings.Join(assignments, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tickets WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicketRow(row pgx.Row, ticket *domain.TicketWithOwner) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.ShortDescription,
		&ticket.DetailRequest,
		&ticket.RequestType,
		&ticket.BugURL,
		&ticket.WebsiteTitle,
		&ticket.Attachments,
		&ticket.Deadline,
		&ticket.Priority,
		&ticket.Status,
		&ticket.UserID,
		&ticket.UserDepartment,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.OwnerName,
		&ticket.OwnerEmail,
		&ticket.OwnerPhone,
	)
}
