package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultSnapshotTTL is the staleness window after which the next access
// triggers a reload.
const DefaultSnapshotTTL = 5 * time.Minute

// Store holds the current catalog snapshot and reloads it when stale. The
// snapshot is swapped atomically by reference; readers concurrent with a
// reload see either the old or the new snapshot, never a mix. Failures never
// surface to readers: the store degrades to the previous snapshot, then the
// fallback source, then an empty snapshot.
type Store struct {
	loader     Loader
	fallback   Loader
	normalizer *Normalizer
	ttl        time.Duration
	now        func() time.Time
	logger     *zap.Logger
	onReload   func(*Snapshot)

	mu         sync.Mutex // serializes reloads
	snap       atomic.Pointer[Snapshot]
	dirty      atomic.Bool
	generation atomic.Uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets the staleness window.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithFallback sets the loader used when the primary source fails before any
// snapshot exists.
func WithFallback(l Loader) StoreOption {
	return func(s *Store) { s.fallback = l }
}

// WithStoreLogger sets the logger.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l.Named("CatalogStore")
		}
	}
}

// WithOnReload registers a hook invoked after each successful snapshot swap.
func WithOnReload(fn func(*Snapshot)) StoreOption {
	return func(s *Store) { s.onReload = fn }
}

func NewStore(loader Loader, opts ...StoreOption) *Store {
	s := &Store{
		loader: loader,
		ttl:    DefaultSnapshotTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.normalizer = NewNormalizer(s.logger, WithNormalizerClock(func() time.Time { return s.now() }))
	return s
}

// Snapshot returns the current snapshot, reloading first if none exists or
// the staleness window has elapsed. It never returns nil.
func (s *Store) Snapshot(ctx context.Context) *Snapshot {
	if snap := s.snap.Load(); snap != nil && !s.stale(snap) {
		return snap
	}
	return s.Reload(ctx)
}

// Reload rebuilds the snapshot from the source and swaps it in wholesale.
func (s *Store) Reload(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another reload may have finished while we waited for the lock.
	if snap := s.snap.Load(); snap != nil && !s.stale(snap) {
		return snap
	}

	gen := s.generation.Add(1)

	records, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Warn("catalog source unreachable", zap.Error(err))
		if snap := s.snap.Load(); snap != nil {
			return snap
		}
		records = s.loadFallback(ctx)
	}

	snap := NewSnapshot(s.normalizer.Normalize(records), s.now())

	// A reload superseded by a newer one must not clobber the newer result.
	if s.generation.Load() != gen {
		if current := s.snap.Load(); current != nil {
			return current
		}
		return snap
	}

	s.snap.Store(snap)
	s.dirty.Store(false)
	if s.onReload != nil {
		s.onReload(snap)
	}
	s.logger.Info("catalog snapshot reloaded",
		zap.Int("posts", len(snap.Posts)),
		zap.Int("models", len(snap.Models)),
	)
	return snap
}

// Invalidate marks the current snapshot stale; the next access reloads.
func (s *Store) Invalidate() {
	s.dirty.Store(true)
}

func (s *Store) stale(snap *Snapshot) bool {
	if s.dirty.Load() {
		return true
	}
	return s.now().Sub(snap.LoadedAt) > s.ttl
}

func (s *Store) loadFallback(ctx context.Context) []SourceRecord {
	if s.fallback == nil {
		return nil
	}
	records, err := s.fallback.Load(ctx)
	if err != nil {
		s.logger.Warn("fallback source failed, serving empty catalog", zap.Error(err))
		return nil
	}
	s.logger.Info("serving fallback catalog snapshot")
	return records
}
