package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no access token")

// Claims is the part of the access token the client reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ParseClaims decodes the token payload without checking its signature.
// The client has no key to verify with; the backend still verifies every
// request, so the claims are used for display and identity hints only.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
