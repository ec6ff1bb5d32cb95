package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
)

// catalogFlags are shared by all catalog subcommands.
type catalogFlags struct {
	noCache bool
	asJSON  bool
}

// catalogCommand creates the catalog command with subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	var f catalogFlags

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Fetch and inspect the card catalog",
		Long: `Fetch the card catalog from TCGdex and inspect it locally.

Card detail responses are cached (see 'deckeditor cache'), and the last
complete catalog is kept as a seed so later runs start instantly.`,
	}
	cmd.PersistentFlags().BoolVar(&f.noCache, "no-cache", false, "bypass the response cache and seed")
	cmd.PersistentFlags().BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(c.catalogListCommand(&f))
	cmd.AddCommand(c.catalogShowCommand(&f))
	cmd.AddCommand(c.catalogGroupsCommand(&f))
	cmd.AddCommand(c.catalogWarmCommand(&f))
	cmd.AddCommand(c.catalogBrowseCommand(&f))

	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand(f *catalogFlags) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), f, "Loading catalog...", func(svc *catalog.Service) error {
				items, err := c.catalogItems(cmd.Context(), svc, group)
				if err != nil {
					return err
				}
				if f.asJSON {
					return writeJSON(out, items)
				}
				fmt.Fprintln(out, renderCardTable(items))
				printCatalogStats(svc.Status())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "only list cards of this set (e.g. A1)")
	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand(f *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "show <card-id>",
		Short:             "Show one card",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeCardIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), f, "Loading catalog...", func(svc *catalog.Service) error {
				item, err := svc.ByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if f.asJSON {
					return writeJSON(out, item)
				}
				printCard(item)
				return nil
			})
		},
	}
}

// catalogGroupsCommand creates the "catalog groups" subcommand.
func (c *CLI) catalogGroupsCommand(f *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the sets present in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), f, "Loading catalog...", func(svc *catalog.Service) error {
				groups, err := svc.Groups(cmd.Context())
				if err != nil {
					return err
				}
				if f.asJSON {
					return writeJSON(out, groups)
				}
				for _, g := range groups {
					printKeyValue(g.ID, g.Name)
				}
				return nil
			})
		},
	}
}

// catalogWarmCommand creates the "catalog warm" subcommand.
func (c *CLI) catalogWarmCommand(f *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Fetch the full catalog and store it as the seed",
		Long: `Fetch the full catalog from TCGdex, bypassing any seed, and store it.

Run this before starting the server on a fresh host so the first request
is served from the seed instead of waiting for a full fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			refresh := func(ctx context.Context, svc *catalog.Service) error {
				if _, err := svc.Refresh(ctx); err != nil {
					return fmt.Errorf("refresh catalog: %w", err)
				}
				return nil
			}
			return c.withCatalogLoad(cmd.Context(), f, "Fetching catalog from TCGdex...", refresh, func(svc *catalog.Service) error {
				st := svc.Status()
				prog.done(fmt.Sprintf("Fetched %d cards", st.Items))
				printSuccess("Catalog ready")
				printCatalogStats(st)
				printNextStep("Serve it", appName+" serve")
				return nil
			})
		},
	}
}

// catalogBrowseCommand creates the "catalog browse" subcommand.
func (c *CLI) catalogBrowseCommand(f *catalogFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), f, "Loading catalog...", func(svc *catalog.Service) error {
				items, err := svc.All(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					printWarning("The catalog is empty")
					return nil
				}
				_, err = tea.NewProgram(NewBrowserModel(items), tea.WithContext(cmd.Context())).Run()
				return err
			})
		},
	}
}

// withCatalog opens the cache and catalog, loads the catalog behind a
// spinner, runs fn and closes the cache afterwards.
func (c *CLI) withCatalog(ctx context.Context, f *catalogFlags, msg string, fn func(*catalog.Service) error) error {
	preload := func(ctx context.Context, svc *catalog.Service) error {
		_, err := svc.All(ctx)
		return err
	}
	return c.withCatalogLoad(ctx, f, msg, preload, fn)
}

func (c *CLI) withCatalogLoad(ctx context.Context, f *catalogFlags, msg string, load func(context.Context, *catalog.Service) error, fn func(*catalog.Service) error) error {
	backend, err := c.newCache(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	deps := c.newCatalog(backend)

	spinner := newSpinnerWithContext(ctx, msg)
	spinner.Start()
	err = load(ctx, deps.service)
	spinner.Stop()
	if err != nil {
		printError("Catalog unavailable")
		return err
	}
	return fn(deps.service)
}

func (c *CLI) catalogItems(ctx context.Context, svc *catalog.Service, group string) ([]catalog.Item, error) {
	if group != "" {
		return svc.ByGroup(ctx, group)
	}
	return svc.All(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
