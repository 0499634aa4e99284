package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/citrapricylia-am/loopout-app/internal/api/dto"
	"github.com/citrapricylia-am/loopout-app/internal/service"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

// UsersHandler exposes registration and login endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":         profile.ID,
		"name":       profile.Name,
		"email":      profile.Email,
		"phone":      profile.Phone,
		"department": profile.Department,
		"role":       profile.Role,
		"auth":       dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":         profile.ID,
		"name":       profile.Name,
		"email":      profile.Email,
		"phone":      profile.Phone,
		"department": profile.Department,
		"role":       profile.Role,
		"auth":       dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}
