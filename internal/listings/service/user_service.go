package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
)

type UserService struct {
	store    docstore.Store
	verifier auth.TokenVerifier
}

func NewUserService(store docstore.Store, verifier auth.TokenVerifier) *UserService {
	return &UserService{
		store:    store,
		verifier: verifier,
	}
}

// CreateUser writes the caller's user record with an empty property list,
// copying email from the token and name/photo from the identity profile.
// An existing record is overwritten.
func (s *UserService) CreateUser(ctx context.Context, idToken string) (*domain.User, error) {
	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if id == nil || id.UID == "" {
		return nil, domain.ErrMissingIdentity
	}

	profile, err := s.verifier.Profile(ctx, id.UID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIdentityUnavailable, err)
	}

	user := &domain.User{
		ID:         id.UID,
		Email:      id.Email,
		Name:       profile.DisplayName,
		PhotoURL:   profile.PhotoURL,
		Properties: []string{},
	}

	if err := s.store.Set(ctx, domain.CollectionUser, id.UID, user.Document()); err != nil {
		return nil, fmt.Errorf("create user %s: %w", id.UID, err)
	}

	return user, nil
}
