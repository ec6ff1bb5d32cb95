package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mikecinchan/tcg-deck-editor/internal/config"
	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
)

func newTCGdexServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/en/series/tcgp":
			w.Write([]byte(`{"id":"tcgp","sets":[{"id":"A1","name":"Genetic Apex","cardCount":{"total":2}}]}`))
		case "/en/sets/A1":
			w.Write([]byte(`{"id":"A1","name":"Genetic Apex","cards":[
				{"id":"A1-001","localId":"001","name":"Bulbasaur"},
				{"id":"A1-033","localId":"033","name":"Charmander"}]}`))
		case "/en/cards/A1-001":
			w.Write([]byte(`{"id":"A1-001","localId":"001","name":"Bulbasaur","category":"Pokemon","hp":70,"types":["Grass"],"rarity":"One Diamond"}`))
		case "/en/cards/A1-033":
			w.Write([]byte(`{"id":"A1-033","localId":"033","name":"Charmander","category":"Pokemon","hp":"60","types":["Fire"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestCLI(t *testing.T, baseURL string) *CLI {
	t.Helper()
	c := New(io.Discard, LogInfo)
	cfg := config.Default()
	cfg.Source.BaseURL = baseURL
	cfg.Source.RPS = 0
	cfg.Catalog.Attempts = 1
	cfg.Cache.Dir = t.TempDir()
	c.cfg = cfg
	return c
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })
	return &buf
}

func runCLI(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	buf := captureOutput(t)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"serve", "catalog", "cache", "token", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, sub := range []string{"list", "show", "groups", "warm", "browse"} {
		if _, _, err := root.Find([]string{"catalog", sub}); err != nil {
			t.Errorf("missing subcommand catalog %s", sub)
		}
	}
}

func TestNewCache(t *testing.T) {
	c := newTestCLI(t, "")
	ctx := context.Background()

	backend, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := backend.(*cache.FileCache); !ok {
		t.Errorf("file backend = %T", backend)
	}

	if backend, _ := c.newCache(ctx, true); backend != cache.Cache(cache.NewNullCache()) {
		t.Errorf("--no-cache backend = %T", backend)
	}

	c.cfg.Cache.Backend = config.BackendNone
	if backend, _ := c.newCache(ctx, false); backend != cache.Cache(cache.NewNullCache()) {
		t.Errorf("none backend = %T", backend)
	}
}

func TestCatalogList(t *testing.T) {
	ts := newTCGdexServer(t)
	c := newTestCLI(t, ts.URL)

	output, err := runCLI(t, c, "catalog", "list", "--json")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	var items []catalog.Item
	if err := json.Unmarshal([]byte(output), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if len(items) != 2 || items[1].Attributes.HP == nil || *items[1].Attributes.HP != 60 {
		t.Errorf("items = %+v", items)
	}

	output, err = runCLI(t, c, "catalog", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Bulbasaur") || !strings.Contains(output, "2 cards") {
		t.Errorf("table output = %q", output)
	}
}

func TestCatalogShow(t *testing.T) {
	ts := newTCGdexServer(t)
	c := newTestCLI(t, ts.URL)

	output, err := runCLI(t, c, "catalog", "show", "A1-001")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Bulbasaur", "Genetic Apex", "70", "One Diamond"} {
		if !strings.Contains(output, want) {
			t.Errorf("show output missing %q:\n%s", want, output)
		}
	}

	if _, err := runCLI(t, c, "catalog", "show", "A1-999"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("show unknown card error = %v", err)
	}
}

func TestCatalogWarmAndComplete(t *testing.T) {
	ts := newTCGdexServer(t)
	c := newTestCLI(t, ts.URL)

	output, err := runCLI(t, c, "catalog", "warm")
	if err != nil {
		t.Fatalf("catalog warm: %v", err)
	}
	if !strings.Contains(output, "Catalog ready") {
		t.Errorf("warm output = %q", output)
	}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	ids, _ := c.completeCardIDs(cmd, nil, "a1-0")
	if len(ids) != 2 || !strings.HasPrefix(ids[0], "A1-001\t") {
		t.Errorf("completions = %q", ids)
	}
	if ids, _ := c.completeCardIDs(cmd, []string{"A1-001"}, ""); len(ids) != 0 {
		t.Errorf("second argument should not complete, got %q", ids)
	}
}

func TestCatalogUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)
	c := newTestCLI(t, ts.URL)

	if _, err := runCLI(t, c, "catalog", "list"); !errors.Is(err, catalog.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestTokenCommand(t *testing.T) {
	c := newTestCLI(t, "")

	if _, err := runCLI(t, c, "token"); err == nil {
		t.Error("token without a secret should fail")
	}

	c.cfg.Auth.Secret = "cli-secret"
	output, err := runCLI(t, c, "token", "--subject", "alice", "--admin")
	if err != nil {
		t.Fatal(err)
	}
	p, err := auth.NewJWTVerifier([]byte("cli-secret"), "").Verify(context.Background(), strings.TrimSpace(output))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if p.Subject != "alice" || !p.HasRole(auth.RoleAdmin) {
		t.Errorf("principal = %+v", p)
	}
}

func TestCacheCommands(t *testing.T) {
	ts := newTCGdexServer(t)
	c := newTestCLI(t, ts.URL)

	output, err := runCLI(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(output) != c.cfg.Cache.Dir {
		t.Errorf("cache path = %q, want %q", output, c.cfg.Cache.Dir)
	}

	if _, err := runCLI(t, c, "catalog", "warm"); err != nil {
		t.Fatal(err)
	}
	output, err = runCLI(t, c, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Cleared") {
		t.Errorf("clear output = %q", output)
	}
	output, _ = runCLI(t, c, "cache", "clear")
	if !strings.Contains(output, "Cache is empty") {
		t.Errorf("second clear output = %q", output)
	}
}
