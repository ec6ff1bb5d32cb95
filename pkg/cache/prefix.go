package cache

import (
	"context"
	"time"
)

// prefixed scopes every key of an inner cache under a fixed prefix.
type prefixed struct {
	inner  Cache
	prefix string
}

// WithPrefix returns a view of inner whose keys are prefixed with prefix.
// Clear on the view delegates to inner and so clears every key space that
// shares the backend.
//
//	responses := cache.WithPrefix(backend, "tcgdex:")
//	seeds := cache.WithPrefix(backend, "seed:")
func WithPrefix(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.inner.Set(ctx, p.prefix+key, data, ttl)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Clear(ctx context.Context) (int, error) { return p.inner.Clear(ctx) }
func (p *prefixed) Close() error                           { return p.inner.Close() }
