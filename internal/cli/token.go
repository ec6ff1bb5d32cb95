package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
)

// tokenCommand creates the token command for issuing development tokens.
func (c *CLI) tokenCommand() *cobra.Command {
	var (
		subject string
		name    string
		admin   bool
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local development",
		Long: `Issue an HS256 bearer token signed with auth.secret.

Production tokens come from the identity provider; this command exists so
the API can be exercised locally:

  $ curl -H "Authorization: Bearer $(deckeditor token --subject alice)" localhost:8080/api/decks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if cfg.Auth.Secret == "" {
				return errors.New("auth.secret is not set (config file or DECKEDITOR_AUTH_SECRET)")
			}
			p := auth.Principal{Subject: subject, Name: name}
			if admin {
				p.Roles = []string{auth.RoleAdmin}
			}
			tok, err := auth.NewJWTVerifier([]byte(cfg.Auth.Secret), cfg.Auth.Issuer).Issue(p, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "dev", "token subject (deck owner id)")
	cmd.Flags().StringVar(&name, "name", "", "display name claim")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
