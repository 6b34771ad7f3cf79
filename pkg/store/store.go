// Package store persists computed layouts so they can be fetched and
// re-rendered later by ID.
//
// Two backends implement [Store]:
//
//   - [MemoryStore]: a map guarded by a mutex, for tests and single-process
//     servers
//   - [MongoStore]: one MongoDB document per layout
//
// IDs are random UUIDs assigned by [NewDocument].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
)

// Document is a stored layout.
type Document struct {
	ID        string       `json:"id" bson:"_id"`
	Layout    graph.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// NewDocument wraps l in a document with a fresh ID.
func NewDocument(l graph.Layout) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Layout:    l,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Put stores a document, replacing any document with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID. A missing document is an error with
	// code [errors.ErrCodeNotFound].
	Get(ctx context.Context, id string) (*Document, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

// ValidID reports whether id is a well-formed document ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}
