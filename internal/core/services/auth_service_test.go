package services

import (
	"testing"
	"time"

	"coursecast/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Minute)

	token, err := svc.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("user-1"), claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	identity := claims.Identity()
	assert.False(t, identity.IsAdmin())
}

func TestAuthService_AdminRole(t *testing.T) {
	svc := NewAuthService("test-secret", time.Minute)

	token, err := svc.GenerateToken("ops-1", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Identity().IsAdmin())
}

func TestAuthService_RejectsForeignSignature(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Minute)
	verifier := NewAuthService("secret-b", time.Minute)

	token, err := issuer.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	svc := NewAuthService("test-secret", -time.Minute)

	token, err := svc.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-secret", time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
