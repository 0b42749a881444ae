package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate("u1", "admin@example.com")
	require.NoError(t, err)

	claims := m.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("u1", "admin@example.com")
	require.NoError(t, err)

	assert.Nil(t, NewTokenManager("secret-b", time.Hour).Verify(token))
}

func TestVerify_ExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Generate("u1", "admin@example.com")
	require.NoError(t, err)

	assert.Nil(t, m.Verify(token))
}

func TestVerify_Garbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	assert.Nil(t, m.Verify("not.a.jwt"))
	assert.Nil(t, m.Verify(""))
}

func TestFromRequest(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Generate("u1", "admin@example.com")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/admin/campaigns", nil)
	assert.Nil(t, m.FromRequest(r), "missing header")

	r.Header.Set("Authorization", token)
	assert.Nil(t, m.FromRequest(r), "missing Bearer prefix")

	r.Header.Set("Authorization", "Bearer "+token)
	claims := m.FromRequest(r)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
}
