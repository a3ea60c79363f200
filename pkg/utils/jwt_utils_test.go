package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "amina@example.com", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "amina@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Role)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateAccessToken(42, "amina@example.com", "User")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Corrupt the signature
	parts[2] = parts[2][:len(parts[2])-2] + "xx"
	tampered := strings.Join(parts, ".")

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
