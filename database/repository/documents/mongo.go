package documentsRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookingdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore returns a Store backed by the given MongoDB database.
// Live snapshots use change streams, which need a replica set.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
	}
}

func documentFromBSON(raw bson.M) models.Document {
	var id string
	switch v := raw["_id"].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	case nil:
	default:
		id = fmt.Sprint(v)
	}
	delete(raw, "_id")
	return models.Document{ID: id, Fields: map[string]interface{}(raw)}
}

func (s *MongoStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: read %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("mongo: decode %s: %w", collection, err)
	}
	docs := make([]models.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, documentFromBSON(raw))
	}
	return docs, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo: count %s: %w", collection, err)
	}
	return int(n), nil
}

func (s *MongoStore) Exists(ctx context.Context, collection string) (bool, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo: probe %s: %w", collection, err)
	}
	return n > 0, nil
}

// Add inserts fields as a new document. A caller-supplied "_id" is dropped so
// the identifier always comes from the server.
func (s *MongoStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: add to %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *MongoStore) Snapshots(ctx context.Context, collection string) (SnapshotIterator, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	cs, err := s.db.Collection(collection).Watch(watchCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mongo: watch %s: %w", collection, err)
	}
	return &mongoSnapshotIterator{
		store:      s,
		collection: collection,
		ctx:        watchCtx,
		cancel:     cancel,
		stream:     cs,
	}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoSnapshotIterator re-reads the whole collection after every change
// event. The first call to Next returns the current state without waiting.
type mongoSnapshotIterator struct {
	store      *MongoStore
	collection string
	ctx        context.Context
	cancel     context.CancelFunc

	mu      sync.Mutex // held while Next uses the change stream
	stream  *mongo.ChangeStream
	primed  bool
	closed  bool
	stopped bool
}

func (m *mongoSnapshotIterator) Next() (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped || m.closed {
		return nil, ErrIteratorStopped
	}

	if m.primed {
		if !m.stream.Next(m.ctx) {
			err := m.stream.Err()
			m.closeStream()
			if m.ctx.Err() != nil || err == nil {
				return nil, ErrIteratorStopped
			}
			return nil, fmt.Errorf("mongo: watch %s: %w", m.collection, err)
		}
	}
	m.primed = true

	docs, err := m.store.GetAll(m.ctx, m.collection)
	if err != nil {
		if m.ctx.Err() != nil {
			m.closeStream()
			return nil, ErrIteratorStopped
		}
		return nil, err
	}
	return &models.Snapshot{Collection: m.collection, Documents: docs, ReadAt: time.Now()}, nil
}

// closeStream must be called with mu held.
func (m *mongoSnapshotIterator) closeStream() {
	if m.closed {
		return
	}
	m.closed = true
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.stream.Close(ctx)
}

func (m *mongoSnapshotIterator) Stop() {
	// Cancelling first unblocks a pending Next so the lock can be taken.
	m.cancel()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.closeStream()
}
