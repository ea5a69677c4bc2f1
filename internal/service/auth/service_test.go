package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/config"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService(&config.Config{JWTSecret: "secret"})

	token, err := svc.IssueAccessToken(42, "Ayu", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ayu", claims.Name)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	svc := NewService(&config.Config{JWTSecret: "secret"})
	other := NewService(&config.Config{JWTSecret: "other"})

	expired, err := svc.IssueAccessToken(42, "", -time.Minute)
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken(42, "", time.Hour)
	require.NoError(t, err)

	noUser, err := svc.IssueAccessToken(0, "", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"no user":      noUser,
		"garbage":      "not-a-jwt",
	} {
		_, err := svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}
