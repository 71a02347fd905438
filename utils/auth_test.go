package utils

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("admin@khudalagse.test", "admin")
	require.NoError(t, err)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	require.NoError(t, err)

	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin@khudalagse.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestGenerateJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT("user@khudalagse.test", "customer")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("some-other-key"), nil
	})
	assert.Error(t, err)
}
