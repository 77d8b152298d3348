package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
)

// Store is a document store backed by Cloud Firestore. Collections and ids map
// one-to-one onto Firestore collections and document ids.
type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	if !snap.Exists() {
		return nil, docstore.ErrNotFound
	}

	data := snap.Data()
	if data == nil {
		data = map[string]interface{}{}
	}
	return docstore.Document(data), nil
}

func (s *Store) Add(ctx context.Context, collection string, fields docstore.Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]interface{}(fields))
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document) error {
	if fields == nil {
		fields = docstore.Document{}
	}
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]interface{}(fields)); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if len(fields) == 0 {
		// Firestore rejects empty updates; still report a missing document.
		_, err := s.Get(ctx, collection, id)
		return err
	}

	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		// FieldPath keeps keys containing dots as a single top-level field.
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Entry, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	entries := make([]docstore.Entry, 0, len(snaps))
	for _, snap := range snaps {
		entries = append(entries, docstore.Entry{ID: snap.Ref.ID, Data: docstore.Document(snap.Data())})
	}
	return entries, nil
}
