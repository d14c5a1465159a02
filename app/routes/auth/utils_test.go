package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse123", hash)

	assert.True(t, CheckPasswordHash("motdepasse123", hash))
	assert.False(t, CheckPasswordHash("autremotdepasse", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "directrice@primaire.bj", "Aïcha", "Soglo", []string{"admin"})
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "directrice@primaire.bj", claims.Email)
	assert.Equal(t, "Aïcha", claims.FirstName)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, "primaire", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@b.c", "A", "B", nil)
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}
