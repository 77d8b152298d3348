package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
)

// Store keeps every collection in a single JSONB table keyed by (collection, id).
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	query := `
		SELECT data
		FROM documents
		WHERE collection = $1 AND id = $2
	`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	return decode(raw)
}

func (s *Store) Add(ctx context.Context, collection string, fields docstore.Document) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document) error {
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = EXCLUDED.data,
		    updated_at = NOW()
	`

	data, err := encode(fields)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, query, collection, id, data); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update uses the JSONB concatenation operator, which replaces top-level keys
// and leaves the rest of the document untouched.
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	query := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`

	data, err := encode(fields)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, query, collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	if _, err := s.pool.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Entry, error) {
	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	var entries []docstore.Entry
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc, err := decode(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, docstore.Entry{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func encode(fields docstore.Document) ([]byte, error) {
	if fields == nil {
		fields = docstore.Document{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

func decode(raw []byte) (docstore.Document, error) {
	doc := docstore.Document{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return doc, nil
}
