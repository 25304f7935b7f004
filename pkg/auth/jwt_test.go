package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
	})

	clinicianID := uuid.New()
	token, err := svc.GenerateAccessToken(clinicianID, "dentist@clinic.test", "dentist")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clinicianID, claims.ClinicianID)
	assert.Equal(t, "dentist@clinic.test", claims.Email)
	assert.Equal(t, "dentist", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{Secret: "secret-a", RefreshSecret: "refresh-a"})
	verifier := NewJWTService(JWTConfig{Secret: "secret-b", RefreshSecret: "refresh-b"})

	token, err := issuer.GenerateAccessToken(uuid.New(), "dentist@clinic.test", "dentist")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", RefreshSecret: "test-refresh"})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "access", RefreshSecret: "refresh"})

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	// Refresh tokens must not validate as access tokens.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}
