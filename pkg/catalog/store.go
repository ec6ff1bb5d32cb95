package catalog

import (
	"context"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/mikecinchan/tcg-deck-editor/pkg/observability"
)

// DefaultTTL is the freshness window of a snapshot.
const DefaultTTL = 24 * time.Hour

// Loader produces the raw catalog. [*Fetcher] implements it.
type Loader interface {
	Fetch(ctx context.Context, refresh bool) ([]RawEntry, error)
}

// StoreOptions configures a [Store].
type StoreOptions struct {
	TTL        time.Duration    // Freshness window (default: 24h)
	Normalizer Normalizer       // Projection of raw entries
	Seed       *Seed            // Persisted snapshot for cold starts (optional)
	Logger     *log.Logger      // Degraded-mode and seed messages (optional)
	Now        func() time.Time // Clock (default: time.Now)
}

// WithDefaults returns a copy of StoreOptions with zero values replaced by defaults.
func (o StoreOptions) WithDefaults() StoreOptions {
	opts := o
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// Store holds the current catalog snapshot in memory.
//
// Readers always see one complete snapshot: a refresh builds a new
// [Snapshot] and publishes it with a single pointer swap. Concurrent reads
// of a stale store share one refresh.
type Store struct {
	loader Loader
	opts   StoreOptions

	snap       atomic.Pointer[Snapshot]
	bypass     atomic.Bool // next refresh skips upstream response caches
	seedLoaded atomic.Bool
	flight     singleflight.Group

	// gen counts invalidations. A load publishes only if no Invalidate
	// happened since it started; mu orders the two.
	mu  sync.Mutex
	gen uint64
}

// NewStore creates an empty store filled by loader.
func NewStore(loader Loader, opts StoreOptions) *Store {
	s := &Store{loader: loader, opts: opts.WithDefaults()}
	s.snap.Store(&Snapshot{})
	return s
}

// Get returns the catalog items, refreshing first when the snapshot is
// empty or older than the freshness window.
//
// If the refresh fails and an older snapshot exists, that snapshot is
// served and the failure is only logged. With nothing to serve, the error
// matches [ErrUnavailable].
//
// The returned slice is shared; callers must not modify it.
func (s *Store) Get(ctx context.Context) ([]Item, error) {
	snap := s.current()
	if snap.Empty() {
		if seeded := s.loadSeed(ctx); seeded != nil {
			snap = seeded
		}
	}
	if s.fresh(snap) {
		return snap.Items, nil
	}

	next, err := s.refresh(ctx, false)
	if err == nil {
		return next.Items, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !snap.Empty() {
		age := s.opts.Now().Sub(snap.FetchedAt)
		s.opts.Logger.Warn("serving stale catalog", "age", age.Round(time.Second), "err", err)
		observability.Catalog().OnDegraded(ctx, age, err)
		return snap.Items, nil
	}
	return nil, unavailable(err)
}

// Peek returns the items of the current snapshot, fresh or stale, without
// fetching. It returns nil while the store is empty.
func (s *Store) Peek() []Item {
	return s.current().Items
}

// Refresh fetches a new snapshot regardless of freshness and publishes it.
// On failure the current snapshot is kept.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	return s.refresh(ctx, true)
}

// Invalidate drops the current snapshot so the next read fetches the whole
// catalog again, bypassing upstream response caches. Calling it repeatedly
// has the same effect as calling it once.
//
// A refresh already in flight still answers the readers that joined it,
// but its result is discarded; later reads start a new load.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.snap.Store(&Snapshot{})
	s.bypass.Store(true)
	s.seedLoaded.Store(true)
}

// Status reports the state of the current snapshot.
func (s *Store) Status() Status {
	snap := s.current()
	if snap.Empty() {
		return Status{State: StateEmpty}
	}
	st := Status{
		State:     StatePopulated,
		Items:     len(snap.Items),
		Groups:    len(groupsOf(snap.Items)),
		FetchedAt: snap.FetchedAt,
		ExpiresAt: snap.FetchedAt.Add(s.opts.TTL),
	}
	if !s.fresh(snap) {
		st.State = StateStale
	}
	return st
}

func (s *Store) current() *Snapshot {
	return s.snap.Load()
}

func (s *Store) fresh(snap *Snapshot) bool {
	return !snap.Empty() && s.opts.Now().Sub(snap.FetchedAt) < s.opts.TTL
}

// refresh runs one shared load. The load is detached from the caller's
// cancellation because other readers may be waiting on it. Unless force is
// set, a snapshot published by a load that finished in the meantime is
// reused.
func (s *Store) refresh(ctx context.Context, force bool) (*Snapshot, error) {
	gen := s.generation()
	ch := s.flight.DoChan("refresh:"+strconv.FormatUint(gen, 10), func() (any, error) {
		if cur := s.current(); !force && s.fresh(cur) {
			return cur, nil
		}
		return s.load(context.WithoutCancel(ctx), gen)
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Store) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// load fetches and normalizes the catalog. The snapshot is published only
// while the store is still at generation gen.
func (s *Store) load(ctx context.Context, gen uint64) (*Snapshot, error) {
	hooks := observability.Catalog()
	hooks.OnRefreshStart(ctx)
	start := time.Now()

	entries, err := s.loader.Fetch(ctx, s.bypass.Load())
	if err != nil {
		hooks.OnRefreshComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}

	snap := &Snapshot{
		Items:     s.opts.Normalizer.NormalizeAll(entries),
		FetchedAt: s.opts.Now(),
	}
	hooks.OnRefreshComplete(ctx, len(snap.Items), time.Since(start), nil)
	if !s.publish(snap, gen) {
		s.opts.Logger.Debug("discarding catalog fetched before invalidate", "items", len(snap.Items))
		return snap, nil
	}

	if s.opts.Seed != nil {
		if err := s.opts.Seed.Save(ctx, snap); err != nil {
			s.opts.Logger.Warn("saving catalog seed failed", "err", err)
		}
	}
	return snap, nil
}

func (s *Store) publish(snap *Snapshot, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.snap.Store(snap)
	s.bypass.Store(false)
	return true
}

// loadSeed publishes the persisted snapshot once per process, and only
// while the store is still empty.
func (s *Store) loadSeed(ctx context.Context) *Snapshot {
	if s.opts.Seed == nil || !s.seedLoaded.CompareAndSwap(false, true) {
		return nil
	}
	gen := s.generation()
	seeded, err := s.opts.Seed.Load(ctx)
	if err != nil {
		s.opts.Logger.Warn("loading catalog seed failed", "err", err)
		return nil
	}
	if seeded == nil {
		return nil
	}
	// A refresh or an Invalidate may have landed while the seed was read.
	s.mu.Lock()
	if s.gen != gen || !s.current().Empty() {
		s.mu.Unlock()
		return s.current()
	}
	s.snap.Store(seeded)
	s.mu.Unlock()
	s.opts.Logger.Debug("loaded catalog seed", "items", len(seeded.Items), "fetchedAt", seeded.FetchedAt)
	return seeded
}

// groupsOf returns the distinct groups of items in first-seen order.
func groupsOf(items []Item) []GroupRef {
	seen := make(map[string]bool)
	var groups []GroupRef
	for _, it := range items {
		if !seen[it.Group.ID] {
			seen[it.Group.ID] = true
			groups = append(groups, it.Group)
		}
	}
	return groups
}
