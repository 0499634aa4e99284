package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citrapricylia-am/loopout-app/internal/auth"
	"github.com/citrapricylia-am/loopout-app/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issued, _, err := auth.NewTokenManager("secret-a", 60).GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", 60).ParseToken(issued)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
