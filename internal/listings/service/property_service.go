package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
)

// PropertyService implements the listing operations. Each call is a short
// sequence of verifier and store calls; the property document and the owner's
// property list are written separately, so a failure between the two writes
// leaves them diverged.
type PropertyService struct {
	store    docstore.Store
	verifier auth.TokenVerifier
}

func NewPropertyService(store docstore.Store, verifier auth.TokenVerifier) *PropertyService {
	return &PropertyService{
		store:    store,
		verifier: verifier,
	}
}

func (s *PropertyService) authenticate(ctx context.Context, idToken string) (*auth.Identity, error) {
	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if id == nil || id.UID == "" {
		return nil, domain.ErrMissingIdentity
	}
	return id, nil
}

// GetProperty fetches a property by id. No authentication is required.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	doc, err := s.store.Get(ctx, domain.CollectionProperty, propertyID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, propertyID)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Property{ID: propertyID, Fields: doc}, nil
}

// ListUserProperties returns the caller's properties in the order of their
// stored property list. Property documents are fetched concurrently; ids whose
// document no longer exists are left out.
func (s *PropertyService) ListUserProperties(ctx context.Context, idToken string) ([]*domain.Property, error) {
	id, err := s.authenticate(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id.UID)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Property, len(user.Properties))
	g, gctx := errgroup.WithContext(ctx)
	for i, propertyID := range user.Properties {
		g.Go(func() error {
			doc, err := s.store.Get(gctx, domain.CollectionProperty, propertyID)
			if errors.Is(err, docstore.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch property %s: %w", propertyID, err)
			}
			results[i] = &domain.Property{ID: propertyID, Fields: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*domain.Property, 0, len(results))
	for _, p := range results {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateProperty merges fields into a property owned by the caller. The
// stored ownerId is always reset to the caller, whatever fields contains.
func (s *PropertyService) UpdateProperty(ctx context.Context, idToken, propertyID string, fields map[string]interface{}) error {
	id, err := s.authenticate(ctx, idToken)
	if err != nil {
		return err
	}

	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	if property.OwnerID() != id.UID {
		return domain.ErrNotOwner
	}

	if fields == nil {
		return domain.ErrMissingProperty
	}

	update := docstore.Document(fields).Clone()
	update[domain.FieldOwnerID] = id.UID

	if err := s.store.Update(ctx, domain.CollectionProperty, propertyID, update); err != nil {
		return fmt.Errorf("update property %s: %w", propertyID, err)
	}
	return nil
}

// DeleteProperty removes a property when the caller owns it or carries the
// admin claim, then drops the id from the owner's property list.
func (s *PropertyService) DeleteProperty(ctx context.Context, idToken, propertyID string) error {
	id, err := s.authenticate(ctx, idToken)
	if err != nil {
		return err
	}

	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	ownerID := property.OwnerID()
	if ownerID != id.UID && !id.Admin {
		return domain.ErrNotAuthorized
	}

	if err := s.store.Delete(ctx, domain.CollectionProperty, propertyID); err != nil {
		return fmt.Errorf("delete property %s: %w", propertyID, err)
	}

	if ownerID == "" {
		return nil
	}

	owner, err := s.getUser(ctx, ownerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	remaining, removed := without(owner.Properties, propertyID)
	if !removed {
		return nil
	}

	if err := s.store.Update(ctx, domain.CollectionUser, ownerID, docstore.Document{
		domain.FieldProperties: remaining,
	}); err != nil {
		return fmt.Errorf("update properties of user %s: %w", ownerID, err)
	}
	return nil
}

// CreateProperty stores a new property owned by the caller and appends its id
// to the caller's property list. It returns the generated id.
func (s *PropertyService) CreateProperty(ctx context.Context, idToken string, body map[string]interface{}) (string, error) {
	id, err := s.authenticate(ctx, idToken)
	if err != nil {
		return "", err
	}

	propertyID, err := s.store.Add(ctx, domain.CollectionProperty, domain.NewPropertyDocument(id.UID, body))
	if err != nil {
		return "", fmt.Errorf("add property: %w", err)
	}

	user, err := s.getUser(ctx, id.UID)
	if err != nil {
		return propertyID, err
	}

	properties := append(user.Properties, propertyID)
	if err := s.store.Update(ctx, domain.CollectionUser, id.UID, docstore.Document{
		domain.FieldProperties: properties,
	}); err != nil {
		return propertyID, fmt.Errorf("update properties of user %s: %w", id.UID, err)
	}

	return propertyID, nil
}

func (s *PropertyService) getUser(ctx context.Context, uid string) (*domain.User, error) {
	doc, err := s.store.Get(ctx, domain.CollectionUser, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	return domain.UserFromDocument(uid, doc), nil
}

// without returns ids minus every occurrence of id, and whether any was removed.
func without(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}
