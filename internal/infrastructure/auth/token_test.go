package auth

import (
	"testing"
	"time"

	"github.com/chainsync/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: expiration,
		Issuer:     "chainsync-backend",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)

	signed, expiresAt, err := svc.IssueToken("erp-exporter")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "erp-exporter", claims.ClientID)
	assert.Equal(t, "erp-exporter", claims.Subject)
	assert.Equal(t, "chainsync-backend", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signed, _, err := newTestService(time.Hour).IssueToken("erp-exporter")
	require.NoError(t, err)

	other := NewTokenService(config.JWTConfig{
		Secret:     "another-secret-another-secret-32",
		Expiration: time.Hour,
		Issuer:     "chainsync-backend",
	})

	_, err = other.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	signed, _, err := svc.IssueToken("erp-exporter")
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	foreign := NewTokenService(config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "someone-else",
	})
	signed, _, err := foreign.IssueToken("erp-exporter")
	require.NoError(t, err)

	_, err = newTestService(time.Hour).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := newTestService(time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
