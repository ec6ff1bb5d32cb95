package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes hook events to a charmbracelet logger. It implements
// every hook interface in this package.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger. A nil logger falls back
// to the package-level default.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnRefreshStart(context.Context) {
	h.logger.Debug("catalog refresh started")
}

func (h *LogHooks) OnRefreshComplete(_ context.Context, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("catalog refresh failed", "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Info("catalog refreshed", "items", items, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnGroupFailed(_ context.Context, group string, err error) {
	h.logger.Warn("skipping group", "group", group, "err", err)
}

func (h *LogHooks) OnDegraded(_ context.Context, age time.Duration, err error) {
	h.logger.Warn("serving stale catalog", "age", age.Round(time.Second), "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ CatalogHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ HTTPHooks    = (*LogHooks)(nil)
)
