package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/citrapricylia-am/loopout-app/internal/api/dto"
	"github.com/citrapricylia-am/loopout-app/internal/auth"
	"github.com/citrapricylia-am/loopout-app/internal/domain"
	"github.com/citrapricylia-am/loopout-app/internal/service"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

const deadlineLayout = "2006-01-02"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(deadlineLayout, req.Deadline)
		if err != nil {
			return apperrors.NewValidationError("deadline must use YYYY-MM-DD", map[string]any{"deadline": req.Deadline})
		}
		deadline = &parsed
	}

	ticket, err := h.service.Create(c.Context(), principal.User, service.TicketCreateInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		DetailRequest:    req.DetailRequest,
		RequestType:      req.RequestType,
		BugURL:           req.BugURL,
		WebsiteTitle:     req.WebsiteTitle,
		Attachments:      req.Attachments,
		Deadline:         deadline,
		Priority:         req.Priority,
	})
	if err != nil {
		return err
	}

	owner := principal.User
	return c.Status(http.StatusCreated).JSON(ticketResponse(&domain.TicketWithOwner{
		Ticket:     *ticket,
		OwnerName:  owner.Name,
		OwnerEmail: owner.Email,
		OwnerPhone: owner.Phone,
	}))
}

// List handles GET /tickets. Visibility is derived from the verified
// principal, never from query parameters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.service.List(c.Context(), principal.User)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// Update handles PATCH /tickets.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" || len(req.Updates) == 0 {
		return apperrors.NewValidationError("ticketId and updates are required", nil)
	}

	if err := h.service.Update(c.Context(), principal.User, req.TicketID, req.Updates); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticketID := c.Params("id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id is required", nil)
	}

	if err := h.service.Delete(c.Context(), principal.User, ticketID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func ticketResponse(ticket *domain.TicketWithOwner) dto.TicketResponse {
	var deadline *string
	if ticket.Deadline != nil {
		formatted := ticket.Deadline.Format(deadlineLayout)
		deadline = &formatted
	}
	attachments := ticket.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return dto.TicketResponse{
		ID:               ticket.ID,
		Title:            ticket.Title,
		ShortDescription: ticket.ShortDescription,
		DetailRequest:    ticket.DetailRequest,
		RequestType:      ticket.RequestType,
		BugURL:           ticket.BugURL,
		WebsiteTitle:     ticket.WebsiteTitle,
		Attachments:      attachments,
		Deadline:         deadline,
		Priority:         ticket.Priority,
		Status:           ticket.Status,
		UserID:           ticket.UserID,
		UserName:         ticket.OwnerName,
		UserEmail:        ticket.OwnerEmail,
		UserPhone:        ticket.OwnerPhone,
		UserDepartment:   ticket.UserDepartment,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}
