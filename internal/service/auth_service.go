package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/citrapricylia-am/loopout-app/internal/auth"
	"github.com/citrapricylia-am/loopout-app/internal/config"
	"github.com/citrapricylia-am/loopout-app/internal/domain"
	"github.com/citrapricylia-am/loopout-app/internal/repository"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput is the payload for new accounts.
type RegisterInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Password   string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account with the user role and returns the public
// profile plus a signed session token. The email pre-check is a fast path
// only; the unique constraint on users.email is the source of truth for
// duplicate registrations.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.PublicUser, string, time.Time, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Department == "" || input.Password == "" {
		return domain.PublicUser{}, "", time.Time{}, apperrors.NewValidationError("name, email, phone, department and password are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return domain.PublicUser{}, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Department:   input.Department,
		Role:         domain.RoleUser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return domain.PublicUser{}, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
		}
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}
	return user.Public(), token, exp, nil
}

// Login authenticates credentials and returns the public profile plus a
// signed session token. An unknown email and a wrong password report
// distinct errors; the split is part of the original contract.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.PublicUser, string, time.Time, error) {
	if email == "" || password == "" {
		return domain.PublicUser{}, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PublicUser{}, "", time.Time{}, apperrors.NewNotFound("email", nil)
		}
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.PublicUser{}, "", time.Time{}, apperrors.NewUnauthorized("wrong password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return domain.PublicUser{}, "", time.Time{}, apperrors.MapError(err)
	}
	return user.Public(), token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
