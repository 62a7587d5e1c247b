package documentsRepo

import (
	"context"
	"errors"

	"bookingdesk/models"
)

// ErrIteratorStopped is returned by SnapshotIterator.Next once the iterator
// has been stopped or its underlying stream has ended.
var ErrIteratorStopped = errors.New("documents: snapshot iterator stopped")

// Store is a schemaless document store organised in named collections.
// Identifiers are always assigned by the store.
type Store interface {
	// GetAll reads every document of a collection.
	GetAll(ctx context.Context, collection string) ([]models.Document, error)
	// Count returns the number of documents currently in a collection.
	Count(ctx context.Context, collection string) (int, error)
	// Exists reports whether the collection holds at least one document.
	Exists(ctx context.Context, collection string) (bool, error)
	// Add appends a document and returns its store-assigned identifier.
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	// Snapshots subscribes to a collection. The first snapshot is its current state.
	Snapshots(ctx context.Context, collection string) (SnapshotIterator, error)
	Ping(ctx context.Context) error
	Close() error
}

// SnapshotIterator yields full collection snapshots as the collection changes.
//
// Next blocks until the next snapshot. An error other than ErrIteratorStopped
// reports a failed snapshot; callers may keep calling Next, and the iterator
// returns ErrIteratorStopped when no further snapshots can follow.
// Stop is safe to call more than once and from any goroutine.
type SnapshotIterator interface {
	Next() (*models.Snapshot, error)
	Stop()
}
