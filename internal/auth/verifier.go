package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid id token")

// Identity is the result of a successful token verification.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

// Profile holds the identity provider's user record fields copied onto a new user document.
type Profile struct {
	DisplayName string
	PhotoURL    string
}

// TokenVerifier validates client id tokens and looks up identity profiles.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
	Profile(ctx context.Context, uid string) (*Profile, error)
}
