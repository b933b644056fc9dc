package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() JWTService {
	return NewJWTService(Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "nurse@clinic.test", "NURSE")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "nurse@clinic.test", claims.Email)
	assert.Equal(t, "NURSE", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testService()
	other := NewJWTService(Config{Secret: "another-secret", Expiry: time.Hour})

	token, err := svc.GenerateAccessToken(uuid.New(), "x@clinic.test", "RECEPTION")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
