// Package cli implements the deckeditor command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mikecinchan/tcg-deck-editor/internal/config"
	"github.com/mikecinchan/tcg-deck-editor/pkg/buildinfo"
	"github.com/mikecinchan/tcg-deck-editor/pkg/cache"
	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
	"github.com/mikecinchan/tcg-deck-editor/pkg/httputil"
	"github.com/mikecinchan/tcg-deck-editor/pkg/integrations"
	"github.com/mikecinchan/tcg-deck-editor/pkg/integrations/tcgdex"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "deckeditor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	envFiles   []string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		envFiles: []string{".env"},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "deckeditor serves the TCG Pocket card catalog and saved decks",
		Long:         `deckeditor fetches the Pokémon TCG Pocket card catalog from TCGdex, keeps a normalized copy in memory and serves it, together with user decks, over an HTTP API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ~/.config/deckeditor/config.toml and ./deckeditor.toml)")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the layered configuration once per process.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	paths := config.DefaultPaths()
	if c.configFile != "" {
		paths = []string{c.configFile}
	}
	cfg, err := config.Load(paths, c.envFiles)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, falling back to defaults for
// commands run without the root pre-run (tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Component Factories
// =============================================================================

// newCache opens the configured response cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config()
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.BackendFile:
		dir, err := cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// catalogDeps are the catalog service and the seed it persists to.
type catalogDeps struct {
	service *catalog.Service
	seed    *catalog.Seed
}

// newCatalog wires the TCGdex client, fetcher and store on top of backend.
func (c *CLI) newCatalog(backend cache.Cache) catalogDeps {
	cfg := c.config()
	src := cfg.Source

	client := tcgdex.NewClient(backend, tcgdex.Options{
		BaseURL:    src.BaseURL,
		Language:   src.Language,
		Serie:      src.Serie,
		CacheTTL:   cfg.Cache.TTL.Std(),
		HTTPClient: integrations.Throttle(integrations.NewHTTPClient(), integrations.NewLimiter(src.RPS, src.Burst)),
	})

	var seed *catalog.Seed
	if cfg.Catalog.Seed {
		seed = catalog.NewSeed(backend, cache.SnapshotKey("tcgdex", src.BaseURL, src.Language, src.Serie))
	}

	policy := httputil.DefaultPolicy()
	policy.Attempts = cfg.Catalog.Attempts

	svc := catalog.New(client,
		catalog.FetchOptions{
			Timeout:    cfg.Catalog.Timeout.Std(),
			Retry:      policy,
			BatchSize:  cfg.Catalog.BatchSize,
			SkipEnrich: cfg.Catalog.SkipEnrich,
			Logger:     c.Logger,
		},
		catalog.StoreOptions{
			TTL:        cfg.Catalog.TTL.Std(),
			Normalizer: catalog.Normalizer{CDNBase: tcgdex.CDNBase(src.Language, src.Serie)},
			Seed:       seed,
			Logger:     c.Logger,
		})
	return catalogDeps{service: svc, seed: seed}
}
