package domain

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotOwner         = errors.New("user does not own this property")
	ErrNotAuthorized    = errors.New("user is neither owner nor admin")
	ErrMissingIdentity  = errors.New("verified token carries no uid")
	ErrMissingProperty  = errors.New("property body is required")
)

// ErrUnauthenticated wraps any token verification failure.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrIdentityUnavailable wraps failures fetching the identity profile.
var ErrIdentityUnavailable = errors.New("identity profile unavailable")
