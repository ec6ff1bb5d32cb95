package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikecinchan/tcg-deck-editor/internal/server"
	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
	"github.com/mikecinchan/tcg-deck-editor/pkg/decks"
	"github.com/mikecinchan/tcg-deck-editor/pkg/observability"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		warm    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API serving the card catalog and saved decks.

The catalog is fetched on the first request (or at startup with --warm)
and refreshed once it is older than catalog.ttl. Decks are stored in
MongoDB when mongo.uri is set and in memory otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache, warm)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache and seed")
	cmd.Flags().BoolVar(&warm, "warm", false, "load the catalog before accepting requests")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache, warm bool) error {
	cfg := c.config()
	logger := loggerFromContext(ctx)

	hooks := observability.NewLogHooks(logger)
	observability.SetCatalogHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	cat := c.newCatalog(backend)

	store, err := c.newDeckStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	var verifier auth.Verifier
	if cfg.Auth.Secret != "" {
		verifier = auth.NewJWTVerifier([]byte(cfg.Auth.Secret), cfg.Auth.Issuer)
	} else {
		logger.Warn("auth.secret is not set; deck and admin endpoints will reject every request")
	}

	if warm {
		prog := newProgress(logger)
		if _, err := cat.service.All(ctx); err != nil {
			return fmt.Errorf("warm catalog: %w", err)
		}
		prog.done(fmt.Sprintf("Catalog loaded: %d cards", cat.service.Status().Items))
	}

	srv := server.New(server.Options{
		Catalog:         cat.service,
		Decks:           decks.NewService(store, decks.ServiceOptions{Cards: cat.service}),
		Verifier:        verifier,
		Cache:           backend,
		Seed:            cat.seed,
		Logger:          logger,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	})
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// newDeckStore opens MongoDB when configured and falls back to memory.
func (c *CLI) newDeckStore(ctx context.Context) (decks.Store, error) {
	cfg := c.config()
	if cfg.Mongo.URI == "" {
		loggerFromContext(ctx).Warn("mongo.uri is not set; decks are kept in memory")
		return decks.NewMemoryStore(), nil
	}
	store, err := decks.NewMongoStore(ctx, decks.MongoConfig{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, fmt.Errorf("open deck store: %w", err)
	}
	return store, nil
}
