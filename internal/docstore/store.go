// Package docstore defines the document database contract used by the listing handlers.
// Backends live under internal/storage.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Document is a schemaless set of top-level fields.
type Document map[string]interface{}

// Entry is a document together with its id, as returned by List.
type Entry struct {
	ID   string
	Data Document
}

// Store maps (collection, id) to a document. None of the operations are
// transactional with each other.
type Store interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Add inserts fields under a store-generated id and returns that id.
	Add(ctx context.Context, collection string, fields Document) (string, error)
	// Set creates or replaces the document.
	Set(ctx context.Context, collection, id string, fields Document) error
	// Update merges fields into the existing document's top level.
	// It returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]Entry, error)
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a copy of d with fields applied on top.
func (d Document) Merge(fields Document) Document {
	out := d.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// StringSlice reads a list field as strings. Non-string elements are skipped.
// A missing field yields an empty slice.
func (d Document) StringSlice(field string) []string {
	switch v := d[field].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// String reads a string field, returning "" when missing or of another type.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}
