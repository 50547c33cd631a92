package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("admin-1", "admin")

	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", token.Subject())
	assert.NotEmpty(t, token.JwtID())
	role, _ := token.Get("role")
	assert.Equal(t, "admin", role)
	typ, _ := token.Get("type")
	assert.Equal(t, "access", typ)
}

func TestJWTService_GenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "soon")

	_, _, err := svc.GenerateAccessToken("admin-1", "admin")
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	issuer := NewJWTService("key-one", "1h")
	verifier := NewJWTService("key-two", "1h")

	tokenString, _, err := issuer.GenerateAccessToken("admin-1", "admin")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), tokenString)
	assert.Error(t, err)
}
