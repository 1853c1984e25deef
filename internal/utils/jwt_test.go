package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeClashers89/SwasthyaCare/internal/config"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 15}
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "user-1"

	token, err := GenerateAccessToken(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 15}
	user := &models.User{Role: models.RolePatient}
	user.ID = "user-2"

	token, err := GenerateAccessToken(user, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
