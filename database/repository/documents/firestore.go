package documentsRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookingdesk/models"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
)

const countAlias = "all"

type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore returns a Store backed by Cloud Firestore.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func documentFromSnapshot(snap *firestore.DocumentSnapshot) models.Document {
	return models.Document{ID: snap.Ref.ID, Fields: snap.Data()}
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: read %s: %w", collection, err)
	}
	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, documentFromSnapshot(snap))
	}
	return docs, nil
}

func (s *FirestoreStore) Count(ctx context.Context, collection string) (int, error) {
	results, err := s.client.Collection(collection).NewAggregationQuery().WithCount(countAlias).Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("firestore: count %s: %w", collection, err)
	}
	raw, ok := results[countAlias]
	if !ok {
		return 0, fmt.Errorf("firestore: count %s: missing aggregation result", collection)
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("firestore: count %s: unexpected result type %T", collection, raw)
	}
	return int(value.GetIntegerValue()), nil
}

func (s *FirestoreStore) Exists(ctx context.Context, collection string) (bool, error) {
	it := s.client.Collection(collection).Limit(1).Documents(ctx)
	defer it.Stop()

	_, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("firestore: probe %s: %w", collection, err)
	}
	return true, nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("firestore: add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Snapshots(ctx context.Context, collection string) (SnapshotIterator, error) {
	return &firestoreSnapshotIterator{
		collection: collection,
		it:         s.client.Collection(collection).Snapshots(ctx),
	}, nil
}

// Ping lists at most one collection to confirm the backend is reachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore: ping: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// firestoreSnapshotIterator adapts a QuerySnapshotIterator. Firestore ends
// the listen stream on the first error, so the iterator reports that error
// once and is exhausted afterwards.
type firestoreSnapshotIterator struct {
	collection string
	it         *firestore.QuerySnapshotIterator

	mu      sync.Mutex
	stopped bool
	dead    bool
}

func (f *firestoreSnapshotIterator) Next() (*models.Snapshot, error) {
	f.mu.Lock()
	if f.stopped || f.dead {
		f.mu.Unlock()
		return nil, ErrIteratorStopped
	}
	f.mu.Unlock()

	qs, err := f.it.Next()
	if err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.stopped || errors.Is(err, iterator.Done) {
			f.stopped = true
			return nil, ErrIteratorStopped
		}
		f.dead = true
		return nil, fmt.Errorf("firestore: listen %s: %w", f.collection, err)
	}

	snaps, err := qs.Documents.GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: read snapshot %s: %w", f.collection, err)
	}
	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, documentFromSnapshot(snap))
	}
	return &models.Snapshot{Collection: f.collection, Documents: docs, ReadAt: qs.ReadTime}, nil
}

func (f *firestoreSnapshotIterator) Stop() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	f.mu.Unlock()
	f.it.Stop()
}
