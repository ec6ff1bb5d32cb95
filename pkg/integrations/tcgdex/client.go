package tcgdex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mikecinchan/tcg-deck-editor/pkg/buildinfo"
	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	"github.com/mikecinchan/tcg-deck-editor/pkg/integrations"
)

const (
	DefaultBaseURL  = "https://api.tcgdex.net/v2"
	DefaultLanguage = "en"
	DefaultSerie    = "tcgp"
	DefaultCacheTTL = 24 * time.Hour
)

// CDNBase returns the image root for cards of serie in lang,
// e.g. "https://assets.tcgdex.net/en/tcgp".
func CDNBase(lang, serie string) string {
	return fmt.Sprintf("https://assets.tcgdex.net/%s/%s", lang, serie)
}

// Options configures a [Client].
type Options struct {
	BaseURL    string        // API root without language (default: https://api.tcgdex.net/v2)
	Language   string        // Content language (default: en)
	Serie      string        // Collection to read (default: tcgp)
	CacheTTL   time.Duration // Card detail cache duration (default: 24h)
	HTTPClient *http.Client  // Transport override, e.g. a throttled client (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Serie == "" {
		opts.Serie = DefaultSerie
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return opts
}

// Client provides access to the TCGdex REST API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	serie   string
}

// NewClient creates a TCGdex client. Card detail responses are cached in
// backend (use cache.NewNullCache() for no caching).
func NewClient(backend cache.Cache, opts Options) *Client {
	opts = opts.WithDefaults()
	c := &Client{
		Client: integrations.NewClient(backend, "tcgdex:"+opts.Language+":", opts.CacheTTL, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: strings.TrimSuffix(opts.BaseURL, "/") + "/" + opts.Language,
		serie:   opts.Serie,
	}
	c.SetHTTPClient(opts.HTTPClient)
	return c
}

// ListGroups returns the sets of the serie in API order.
//
// Returns [integrations.ErrNotFound] if the serie doesn't exist.
func (c *Client) ListGroups(ctx context.Context) ([]catalog.GroupSummary, error) {
	var data serieResponse
	if err := c.Get(ctx, c.url("series", c.serie), &data); err != nil {
		return nil, wrapNotFound(err, "serie", c.serie)
	}
	groups := make([]catalog.GroupSummary, 0, len(data.Sets))
	for _, s := range data.Sets {
		if s.ID == "" {
			continue
		}
		groups = append(groups, catalog.GroupSummary{ID: s.ID, Name: s.Name, Count: s.CardCount.Total})
	}
	return groups, nil
}

// GetGroup returns one set with its brief card records.
//
// Returns [integrations.ErrNotFound] if the set doesn't exist.
func (c *Client) GetGroup(ctx context.Context, id string) (*catalog.RawGroup, error) {
	var data setResponse
	if err := c.Get(ctx, c.url("sets", id), &data); err != nil {
		return nil, wrapNotFound(err, "set", id)
	}
	return &catalog.RawGroup{ID: data.ID, Name: data.Name, Items: data.Cards}, nil
}

// GetItem returns the full record of one card.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
// Returns [integrations.ErrNotFound] if the card doesn't exist.
func (c *Client) GetItem(ctx context.Context, id string, refresh bool) (*catalog.RawItem, error) {
	var item catalog.RawItem
	err := c.Cached(ctx, "card:"+id, refresh, &item, func() error {
		if err := c.Get(ctx, c.url("cards", id), &item); err != nil {
			return wrapNotFound(err, "card", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) url(kind, id string) string {
	return c.baseURL + "/" + kind + "/" + integrations.URLEncode(id)
}

func wrapNotFound(err error, kind, id string) error {
	if errors.Is(err, integrations.ErrNotFound) {
		return fmt.Errorf("tcgdex %s %s: %w", kind, id, err)
	}
	return err
}

var _ catalog.Source = (*Client)(nil)
