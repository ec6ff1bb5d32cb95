package tcgdex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	"github.com/mikecinchan/tcg-deck-editor/pkg/httputil"
	"github.com/mikecinchan/tcg-deck-editor/pkg/integrations"
)

const serieJSON = `{
	"id": "tcgp", "name": "Pokémon TCG Pocket",
	"sets": [
		{"id": "A1", "name": "Genetic Apex", "cardCount": {"total": 286, "official": 226}},
		{"id": "", "name": "broken"},
		{"id": "A1a", "name": "Mythical Island", "cardCount": {"total": 86, "official": 68}}
	]
}`

const setJSON = `{
	"id": "A1", "name": "Genetic Apex",
	"cards": [
		{"id": "A1-001", "localId": "001", "name": "Bulbasaur", "image": "https://assets.tcgdex.net/en/tcgp/A1/001"},
		{"id": "A1-002", "localId": "002", "name": "Ivysaur"}
	]
}`

const cardJSON = `{
	"id": "A1-001", "localId": "001", "name": "Bulbasaur", "category": "Pokemon",
	"image": "https://assets.tcgdex.net/en/tcgp/A1/001",
	"hp": 70, "types": ["Grass"], "stage": "Basic", "retreat": 1, "rarity": "One Diamond",
	"attacks": [{"cost": ["Grass", "Colorless"], "name": "Vine Whip", "damage": 40}],
	"weaknesses": [{"type": "Fire", "value": "+20"}],
	"set": {"id": "A1", "name": "Genetic Apex"}
}`

type testServer struct {
	*httptest.Server
	cardHits atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/en/series/tcgp":
			w.Write([]byte(serieJSON))
		case "/en/sets/A1":
			w.Write([]byte(setJSON))
		case "/en/cards/A1-001":
			ts.cardHits.Add(1)
			w.Write([]byte(cardJSON))
		case "/en/cards/A1-500":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testClient(t *testing.T, baseURL string, backend cache.Cache) *Client {
	t.Helper()
	return NewClient(backend, Options{BaseURL: baseURL})
}

func TestClient_ListGroups(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	groups, err := c.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("ListGroups() error: %v", err)
	}
	want := []catalog.GroupSummary{
		{ID: "A1", Name: "Genetic Apex", Count: 286},
		{ID: "A1a", Name: "Mythical Island", Count: 86},
	}
	if len(groups) != len(want) {
		t.Fatalf("ListGroups() = %+v", groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("groups[%d] = %+v, want %+v", i, groups[i], want[i])
		}
	}
}

func TestClient_GetGroup(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	g, err := c.GetGroup(context.Background(), "A1")
	if err != nil {
		t.Fatalf("GetGroup() error: %v", err)
	}
	if g.ID != "A1" || g.Name != "Genetic Apex" || len(g.Items) != 2 {
		t.Errorf("GetGroup() = %+v", g)
	}
	if g.Items[1].LocalID != "002" {
		t.Errorf("item = %+v", g.Items[1])
	}
}

func TestClient_GetGroupNotFound(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	_, err := c.GetGroup(context.Background(), "Z9")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Fatalf("GetGroup() error = %v, want ErrNotFound", err)
	}
	var perm *httputil.PermanentError
	if !errors.As(err, &perm) {
		t.Error("missing set should not be retried")
	}
}

func TestClient_GetItem(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	raw, err := c.GetItem(context.Background(), "A1-001", false)
	if err != nil {
		t.Fatalf("GetItem() error: %v", err)
	}
	item := catalog.Normalize(*raw, catalog.GroupRef{ID: "A1", Name: "Genetic Apex"})
	if item.Attributes.Category != "Pokemon" || item.Attributes.HP == nil || *item.Attributes.HP != 70 {
		t.Errorf("normalized = %+v", item.Attributes)
	}
	if item.ImageURL != "https://assets.tcgdex.net/en/tcgp/A1/001/high.webp" {
		t.Errorf("ImageURL = %q", item.ImageURL)
	}
}

func TestClient_GetItemCached(t *testing.T) {
	ts := newTestServer(t)
	backend, _ := cache.NewFileCache(t.TempDir())
	c := testClient(t, ts.URL, backend)
	ctx := context.Background()

	for range 3 {
		if _, err := c.GetItem(ctx, "A1-001", false); err != nil {
			t.Fatal(err)
		}
	}
	if got := ts.cardHits.Load(); got != 1 {
		t.Errorf("card requests = %d, want 1", got)
	}

	raw, err := c.GetItem(ctx, "A1-001", true)
	if err != nil {
		t.Fatal(err)
	}
	if got := ts.cardHits.Load(); got != 2 {
		t.Errorf("card requests after refresh = %d, want 2", got)
	}
	if raw.Name != "Bulbasaur" || len(raw.Attacks) == 0 {
		t.Errorf("raw record = %+v", raw)
	}
}

func TestClient_GetItemServerError(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	_, err := c.GetItem(context.Background(), "A1-500", false)
	if !httputil.IsTransient(err) {
		t.Errorf("GetItem() error = %v, want transient", err)
	}
}

func TestClient_ThroughFetcher(t *testing.T) {
	ts := newTestServer(t)
	c := testClient(t, ts.URL, nil)

	svc := catalog.New(c, catalog.FetchOptions{Retry: httputil.Policy{Attempts: 1}}, catalog.StoreOptions{})
	items, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	// A1-002 has no detail record and A1a has no set detail: both are skipped.
	if len(items) != 1 || items[0].ID != "A1-001" {
		t.Fatalf("All() = %+v", items)
	}
	if items[0].Group.Name != "Genetic Apex" || len(items[0].Attributes.Types) != 1 {
		t.Errorf("item = %+v", items[0])
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	if opts.BaseURL != DefaultBaseURL || opts.Language != "en" || opts.Serie != "tcgp" {
		t.Errorf("WithDefaults() = %+v", opts)
	}
	c := NewClient(nil, Options{BaseURL: "https://example.test/v2/", Language: "ja"})
	if got := c.url("cards", "A1-001"); got != "https://example.test/v2/ja/cards/A1-001" {
		t.Errorf("url() = %q", got)
	}
}

func TestCDNBase(t *testing.T) {
	if got := CDNBase("en", "tcgp"); got != catalog.DefaultCDNBase {
		t.Errorf("CDNBase() = %q, want %q", got, catalog.DefaultCDNBase)
	}
}
