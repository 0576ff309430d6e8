package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claim CustomClaim) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseIdentity(t *testing.T) {
	token := mintToken(t, CustomClaim{
		Name:   "Alice",
		Email:  "alice@example.com",
		UserID: "u1",
		Image:  "https://example.com/alice.png",
	})

	ident, err := ParseIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", ident.UserID)
	assert.Equal(t, "Alice", ident.Name)
	assert.Equal(t, "https://example.com/alice.png", ident.Image)
}

func TestParseIdentity_EmptyTokenIsSpectator(t *testing.T) {
	ident, err := ParseIdentity("")
	require.NoError(t, err)
	assert.Empty(t, ident.UserID)
}

func TestParseIdentity_MissingUserID(t *testing.T) {
	token := mintToken(t, CustomClaim{Name: "Nobody"})
	_, err := ParseIdentity(token)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestParseIdentity_Garbage(t *testing.T) {
	_, err := ParseIdentity("definitely.not.a-jwt")
	assert.Error(t, err)
}
