package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingUserID = errors.New("token has no user_id claim")

// CustomClaim mirrors the session token the server issues after OAuth
// login. The client decodes it purely to learn who it is rendering for;
// signature verification stays server-side, where the secret lives.
type CustomClaim struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	UserID        string `json:"user_id"`
	Image         string `json:"image"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Identity is the local user as far as the client cares: an opaque id the
// deriver matches against snapshot players, plus display fields.
type Identity struct {
	UserID string
	Name   string
	Image  string
}

// ParseIdentity extracts the local identity from a session token without
// verifying the signature. An empty token is a spectator, not an error.
func ParseIdentity(token string) (Identity, error) {
	if token == "" {
		return Identity{}, nil
	}

	var claim CustomClaim
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claim); err != nil {
		return Identity{}, fmt.Errorf("unable to parse session token: %w", err)
	}
	if claim.UserID == "" {
		return Identity{}, ErrMissingUserID
	}

	return Identity{
		UserID: claim.UserID,
		Name:   claim.Name,
		Image:  claim.Image,
	}, nil
}
