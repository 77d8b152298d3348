package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix = "doc:" // Document data: doc:{collection}:{id}
	idsKeySuffix = ":ids" // Set of document IDs per collection: doc:{collection}:ids
)

// Store keeps each document as a JSON string and tracks ids per collection in a set.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed document store
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	data, err := s.client.Get(ctx, s.docKey(collection, id)).Result()
	if err == redis.Nil {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	var doc docstore.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
	}
	if doc == nil {
		doc = docstore.Document{}
	}

	return doc, nil
}

func (s *Store) Add(ctx context.Context, collection string, fields docstore.Document) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document) error {
	if fields == nil {
		fields = docstore.Document{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, id), data, 0)
	pipe.SAdd(ctx, s.idsKey(collection), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update reads, merges and writes back without a WATCH; concurrent updates to
// the same document are last-write-wins.
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	return s.Set(ctx, collection, id, existing.Merge(fields))
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.docKey(collection, id))
	pipe.SRem(ctx, s.idsKey(collection), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Entry, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	entries := make([]docstore.Entry, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Get(ctx, collection, id)
		if err == docstore.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, docstore.Entry{ID: id, Data: doc})
	}
	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", docKeyPrefix, collection, id)
}

func (s *Store) idsKey(collection string) string {
	return fmt.Sprintf("%s%s%s", docKeyPrefix, collection, idsKeySuffix)
}
