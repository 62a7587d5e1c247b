package documentsRepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"bookingdesk/models"

	"github.com/google/uuid"
)

var errStoreClosed = errors.New("documents: memory store closed")

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]models.Document
	subs        map[string]map[*memorySubscription]struct{}
	closed      bool
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]models.Document),
		subs:        make(map[string]map[*memorySubscription]struct{}),
		now:         time.Now,
	}
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// snapshotLocked must be called with mu held.
func (s *MemoryStore) snapshotLocked(collection string) *models.Snapshot {
	docs := make([]models.Document, 0, len(s.collections[collection]))
	for _, d := range s.collections[collection] {
		docs = append(docs, models.Document{ID: d.ID, Fields: copyFields(d.Fields)})
	}
	return &models.Snapshot{Collection: collection, Documents: docs, ReadAt: s.now()}
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errStoreClosed
	}
	return s.snapshotLocked(collection).Documents, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errStoreClosed
	}
	return len(s.collections[collection]), nil
}

func (s *MemoryStore) Exists(ctx context.Context, collection string) (bool, error) {
	n, err := s.Count(ctx, collection)
	return n > 0, err
}

func (s *MemoryStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", errStoreClosed
	}

	id := uuid.NewString()
	s.collections[collection] = append(s.collections[collection], models.Document{ID: id, Fields: copyFields(fields)})
	s.broadcastLocked(collection, snapshotEvent{snap: s.snapshotLocked(collection)})
	return id, nil
}

// InjectError delivers err to every subscriber of collection as a failed
// snapshot, the way a backend reports a broken listen.
func (s *MemoryStore) InjectError(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(collection, snapshotEvent{err: err})
}

func (s *MemoryStore) broadcastLocked(collection string, ev snapshotEvent) {
	for sub := range s.subs[collection] {
		sub.push(ev)
	}
}

func (s *MemoryStore) Snapshots(ctx context.Context, collection string) (SnapshotIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errStoreClosed
	}

	sub := &memorySubscription{
		store:      s,
		collection: collection,
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*memorySubscription]struct{})
	}
	s.subs[collection][sub] = struct{}{}
	sub.push(snapshotEvent{snap: s.snapshotLocked(collection)})

	go func() {
		select {
		case <-ctx.Done():
			sub.Stop()
		case <-sub.done:
		}
	}()
	return sub, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errStoreClosed
	}
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	var subs []*memorySubscription
	for _, set := range s.subs {
		for sub := range set {
			subs = append(subs, sub)
		}
	}
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Stop()
	}
	return nil
}

func (s *MemoryStore) unsubscribe(sub *memorySubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs[sub.collection], sub)
}

type snapshotEvent struct {
	snap *models.Snapshot
	err  error
}

// memorySubscription queues events in order; nothing is dropped.
type memorySubscription struct {
	store      *MemoryStore
	collection string

	mu     sync.Mutex
	queue  []snapshotEvent
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (m *memorySubscription) push(ev snapshotEvent) {
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *memorySubscription) Next() (*models.Snapshot, error) {
	for {
		select {
		case <-m.done:
			return nil, ErrIteratorStopped
		default:
		}

		m.mu.Lock()
		if len(m.queue) > 0 {
			ev := m.queue[0]
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return ev.snap, ev.err
		}
		m.mu.Unlock()

		select {
		case <-m.done:
			return nil, ErrIteratorStopped
		case <-m.notify:
		}
	}
}

func (m *memorySubscription) Stop() {
	m.once.Do(func() {
		close(m.done)
		m.store.unsubscribe(m)
	})
}
