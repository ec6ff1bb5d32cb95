package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mikecinchan/tcg-deck-editor/pkg/httputil"
	"github.com/mikecinchan/tcg-deck-editor/pkg/observability"
)

const (
	DefaultTimeout   = 30 * time.Second // Per network call
	DefaultBatchSize = 10               // Item detail requests in flight per window
)

// FetchOptions configures a [Fetcher].
type FetchOptions struct {
	Timeout    time.Duration   // Deadline per network call (default: 30s)
	Retry      httputil.Policy // Backoff per network call (default: 3 attempts, 2s)
	BatchSize  int             // Enrichment window size (default: 10)
	SkipEnrich bool            // Use brief group records without per-item detail
	Logger     *log.Logger     // Destination for skipped groups and items (optional)
}

// WithDefaults returns a copy of FetchOptions with zero values replaced by defaults.
func (o FetchOptions) WithDefaults() FetchOptions {
	opts := o
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry.Attempts <= 0 {
		def := httputil.DefaultPolicy()
		opts.Retry.Attempts = def.Attempts
		if opts.Retry.Initial <= 0 {
			opts.Retry.Initial = def.Initial
		}
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Fetcher retrieves the whole catalog from a [Source]: the group list,
// then each group in order, then the full record of every item.
//
// Every network call is bounded by [httputil.Do]. Only a failure to list the
// groups is returned as an error; failed groups and items are logged and
// skipped.
type Fetcher struct {
	src  Source
	opts FetchOptions
}

// NewFetcher creates a Fetcher for src.
func NewFetcher(src Source, opts FetchOptions) *Fetcher {
	return &Fetcher{src: src, opts: opts.WithDefaults()}
}

// Fetch returns every raw item of the collection, grouped in upstream
// order. An empty collection yields no entries and no error. refresh is
// passed to [Source.GetItem].
func (f *Fetcher) Fetch(ctx context.Context, refresh bool) ([]RawEntry, error) {
	groups, err := httputil.Do(ctx, f.opts.Retry, f.opts.Timeout, f.src.ListGroups)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	var entries []RawEntry
	for _, summary := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		group, err := httputil.Do(ctx, f.opts.Retry, f.opts.Timeout, func(ctx context.Context) (*RawGroup, error) {
			return f.src.GetGroup(ctx, summary.ID)
		})
		if err != nil {
			f.opts.Logger.Warn("skipping group", "group", summary.ID, "err", err)
			observability.Catalog().OnGroupFailed(ctx, summary.ID, err)
			continue
		}
		if group == nil {
			continue
		}

		ref := group.Ref()
		if ref.ID == "" {
			ref.ID = summary.ID
		}
		if ref.Name == "" {
			ref.Name = summary.Name
		}

		items := group.Items
		if !f.opts.SkipEnrich {
			items = f.enrich(ctx, items, refresh)
		}
		for _, item := range items {
			entries = append(entries, RawEntry{Group: ref, Item: item})
		}
		f.opts.Logger.Debug("fetched group", "group", ref.ID, "items", len(items))
	}
	return entries, nil
}

// enrich replaces brief records with full ones, BatchSize requests at a
// time. Items whose detail cannot be fetched are dropped. Output keeps the
// input order.
func (f *Fetcher) enrich(ctx context.Context, brief []RawItem, refresh bool) []RawItem {
	out := make([]RawItem, 0, len(brief))
	for start := 0; start < len(brief); start += f.opts.BatchSize {
		window := brief[start:min(start+f.opts.BatchSize, len(brief))]
		results := make([]*RawItem, len(window))

		var g errgroup.Group
		for i, item := range window {
			g.Go(func() error {
				detail, err := httputil.Do(ctx, f.opts.Retry, f.opts.Timeout, func(ctx context.Context) (*RawItem, error) {
					return f.src.GetItem(ctx, item.ID, refresh)
				})
				if err != nil {
					f.opts.Logger.Warn("skipping item", "item", item.ID, "err", err)
					return nil
				}
				merged := item
				if detail != nil {
					merged = item.merge(*detail)
				}
				results[i] = &merged
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if r != nil {
				out = append(out, *r)
			}
		}
	}
	return out
}
