package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if n, err := c.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v; want 0, nil", n, err)
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "card:A1-001", []byte(`{"id":"A1-001"}`), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	data, ok, err := c.Get(ctx, "card:A1-001")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if string(data) != `{"id":"A1-001"}` {
		t.Errorf("Get() data = %s", data)
	}

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("Get() returned hit for missing key")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "key", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "key"); !ok {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Now()
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "key", []byte("v"), 0)
	now = now.Add(365 * 24 * time.Hour)
	if _, ok, _ := c.Get(ctx, "key"); !ok {
		t.Error("entry without TTL should never expire")
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("key")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("not json"), 0o644)

	data, ok, err := c.Get(ctx, "key")
	if err != nil || ok || data != nil {
		t.Errorf("Get() = %v, %v, %v; want miss", data, ok, err)
	}
}

func TestFileCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), time.Hour)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries in %s", len(entries), dir)
	}
}

func TestFileCache_PathSharding(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	p1 := c.path("test")
	if p1 != c.path("test") {
		t.Error("path should be deterministic")
	}
	if p1 == c.path("other") {
		t.Error("different keys should produce different paths")
	}
	if filepath.Dir(filepath.Dir(p1)) != c.Dir() {
		t.Errorf("path %s should sit one shard below %s", p1, c.Dir())
	}
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	backend, _ := NewFileCache(t.TempDir())

	responses := WithPrefix(backend, "tcgdex:")
	seeds := WithPrefix(backend, "seed:")

	_ = responses.Set(ctx, "A1", []byte("response"), time.Hour)
	_ = seeds.Set(ctx, "A1", []byte("seed"), time.Hour)

	got, ok, _ := responses.Get(ctx, "A1")
	if !ok || string(got) != "response" {
		t.Errorf("responses.Get() = %q, %v", got, ok)
	}
	got, ok, _ = seeds.Get(ctx, "A1")
	if !ok || string(got) != "seed" {
		t.Errorf("seeds.Get() = %q, %v", got, ok)
	}
	if _, ok, _ := backend.Get(ctx, "A1"); ok {
		t.Error("unprefixed key should not exist in backend")
	}

	if err := seeds.Delete(ctx, "A1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := responses.Get(ctx, "A1"); !ok {
		t.Error("deleting in one namespace should not affect another")
	}
}

func TestWithPrefixNilInner(t *testing.T) {
	c := WithPrefix(nil, "x:")
	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Errorf("Set() on nil-backed prefix cache: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeys(t *testing.T) {
	if got := ResponseKey("tcgdex:en:", "card:A1-001"); got != "http:tcgdex:en:card:A1-001" {
		t.Errorf("ResponseKey() = %q", got)
	}
	k1 := SnapshotKey("tcgdex", "en", "tcgp")
	k2 := SnapshotKey("tcgdex", "ja", "tcgp")
	if k1 == k2 {
		t.Error("different catalogs should produce different snapshot keys")
	}
	if k1 != SnapshotKey("tcgdex", "en", "tcgp") {
		t.Error("SnapshotKey should be deterministic")
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	c := newRedisCache(client, "")
	if got := c.key("card"); got != "deckeditor:card" {
		t.Errorf("key() = %q, want default prefix", got)
	}
	c = newRedisCache(client, "test:")
	if got := c.key("card"); got != "test:card" {
		t.Errorf("key() = %q, want custom prefix", got)
	}
}
