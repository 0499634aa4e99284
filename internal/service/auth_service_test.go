package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/citrapricylia-am/loopout-app/internal/config"
	"github.com/citrapricylia-am/loopout-app/internal/domain"
	"github.com/citrapricylia-am/loopout-app/internal/service"
	apperrors "github.com/citrapricylia-am/loopout-app/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		Name:       "Citra",
		Email:      "citra@x.com",
		Phone:      "0800",
		Department: "IT",
		Password:   "pw123456",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns user role and strips hash", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		users.On("GetByEmail", ctx, "citra@x.com").Return(nil, pgx.ErrNoRows).Once()
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			user := args.Get(1).(*domain.User)
			user.ID = "user-1"
		}).Return(nil).Once()

		profile, token, exp, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.ID)
		assert.Equal(t, domain.RoleUser, profile.Role)
		assert.Equal(t, "Citra", profile.Name)
		assert.NotEmpty(t, token)
		assert.False(t, exp.IsZero())
		users.AssertExpectations(t)
	})

	t.Run("password is hashed before insert", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		var stored string
		users.On("GetByEmail", ctx, "citra@x.com").Return(nil, pgx.ErrNoRows).Once()
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.User).PasswordHash
		}).Return(nil).Once()

		_, _, _, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)
		assert.NotEqual(t, "pw123456", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("pw123456")))
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		input := validRegisterInput()
		input.Department = ""
		_, _, _, err := svc.Register(ctx, input)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("existing email conflicts", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		users.On("GetByEmail", ctx, "citra@x.com").Return(&domain.User{ID: "user-1"}, nil).Once()

		_, _, _, err := svc.Register(ctx, validRegisterInput())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique constraint violation maps to conflict", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		users.On("GetByEmail", ctx, "citra@x.com").Return(nil, pgx.ErrNoRows).Once()
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(&pgconn.PgError{Code: "23505"}).Once()

		_, _, _, err := svc.Register(ctx, validRegisterInput())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &domain.User{
		ID:           "user-1",
		Name:         "Citra",
		Email:        "citra@x.com",
		Phone:        "0800",
		Department:   "IT",
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
	}

	t.Run("unknown email is not found", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		users.On("GetByEmail", ctx, "nobody@x.com").Return(nil, pgx.ErrNoRows).Once()

		_, _, _, err := svc.Login(ctx, "nobody@x.com", "pw123456")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(testConfig(), users)

		users.On("GetByEmail", ctx, "citra@x.com").Return(stored, nil).Once()

		_, _, _, err := svc.Login(ctx, "citra@x.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("success returns profile and verifiable token", func(t *testing.T) {
		users := new(MockUserRepository)
		cfg := testConfig()
		svc := service.NewAuthService(cfg, users)

		users.On("GetByEmail", ctx, "citra@x.com").Return(stored, nil).Once()

		profile, token, _, err := svc.Login(ctx, "citra@x.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.ID)
		assert.Equal(t, domain.RoleUser, profile.Role)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, domain.RoleUser, claims.Role)
	})
}
