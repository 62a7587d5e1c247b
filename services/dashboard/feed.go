package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/models"

	"go.uber.org/zap"
)

var errAlreadyStarted = errors.New("dashboard: feed already started")

// Feed keeps a live projection of the bookings collection.
//
// Every snapshot replaces the projection. Snapshot errors are not fatal: the
// last good projection stays and the error is recorded. Once Stop returns no
// further snapshot changes the state.
type Feed struct {
	store      documentsRepo.Store
	collection string
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	state     models.FeedState
	bookings  []models.Booking
	lastErr   error
	updatedAt time.Time
	started   bool
	stopped   bool
	iter      documentsRepo.SnapshotIterator
	watchers  map[chan models.DashboardView]struct{}
	done      chan struct{}
}

func NewFeed(store documentsRepo.Store, collection string, logger *zap.Logger) *Feed {
	return &Feed{
		store:      store,
		collection: collection,
		logger:     logger,
		now:        time.Now,
		state:      models.FeedLoading,
		bookings:   []models.Booking{},
		watchers:   make(map[chan models.DashboardView]struct{}),
		done:       make(chan struct{}),
	}
}

// Start subscribes to the collection and begins applying snapshots in the
// background. A feed can be started only once.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started || f.stopped {
		f.mu.Unlock()
		return errAlreadyStarted
	}
	f.started = true
	f.mu.Unlock()

	it, err := f.store.Snapshots(ctx, f.collection)
	if err != nil {
		f.fail(err)
		close(f.done)
		return fmt.Errorf("dashboard: subscribe %s: %w", f.collection, err)
	}

	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		it.Stop()
		close(f.done)
		return nil
	}
	f.iter = it
	f.mu.Unlock()

	go f.run(it)
	return nil
}

func (f *Feed) run(it documentsRepo.SnapshotIterator) {
	defer close(f.done)
	for {
		snap, err := it.Next()
		if errors.Is(err, documentsRepo.ErrIteratorStopped) {
			f.logger.Debug("dashboard: snapshot stream ended", zap.String("collection", f.collection))
			return
		}
		if err != nil {
			f.fail(err)
			continue
		}
		f.apply(snap)
	}
}

func (f *Feed) apply(snap *models.Snapshot) {
	bookings := make([]models.Booking, 0, len(snap.Documents))
	for _, doc := range snap.Documents {
		bookings = append(bookings, models.BookingFromDocument(doc))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	f.bookings = bookings
	f.state = models.FeedReady
	f.lastErr = nil
	f.updatedAt = f.now()
	f.notifyLocked()
}

func (f *Feed) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	f.logger.Error("dashboard: snapshot error", zap.String("collection", f.collection), zap.Error(err))
	f.state = models.FeedReadyWithError
	f.lastErr = err
	f.updatedAt = f.now()
	f.notifyLocked()
}

// Stop detaches from the store. It is idempotent and safe to call while a
// snapshot is being delivered.
func (f *Feed) Stop() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	f.state = models.FeedUnsubscribed
	it := f.iter
	for ch := range f.watchers {
		close(ch)
	}
	f.watchers = nil
	f.mu.Unlock()

	if it != nil {
		it.Stop()
	}
}

// Done is closed once the delivery goroutine has exited.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

// View returns a copy of the current display state.
func (f *Feed) View() models.DashboardView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Feed) viewLocked() models.DashboardView {
	bookings := make([]models.Booking, len(f.bookings))
	copy(bookings, f.bookings)
	v := models.DashboardView{
		Loading:   f.state == models.FeedLoading,
		State:     f.state,
		Bookings:  bookings,
		UpdatedAt: f.updatedAt,
	}
	if f.lastErr != nil {
		v.Error = f.lastErr.Error()
	}
	return v
}

func (f *Feed) Bookings() []models.Booking { return f.View().Bookings }

func (f *Feed) Loading() bool { return f.View().Loading }

func (f *Feed) State() models.FeedState { return f.View().State }

// Err returns the most recent snapshot error, cleared by the next good snapshot.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Watch returns a channel that receives the current view immediately and
// then the latest view after every change. Slow receivers only miss
// intermediate views. The channel is closed by cancel or Stop.
func (f *Feed) Watch() (<-chan models.DashboardView, func()) {
	ch := make(chan models.DashboardView, 1)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		ch <- f.viewLocked()
		close(ch)
		return ch, func() {}
	}
	f.watchers[ch] = struct{}{}
	ch <- f.viewLocked()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.watchers[ch]; ok {
				delete(f.watchers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// notifyLocked must be called with mu held.
func (f *Feed) notifyLocked() {
	if len(f.watchers) == 0 {
		return
	}
	view := f.viewLocked()
	for ch := range f.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- view
	}
}
