package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for deckeditor.

Bash:
  $ source <(deckeditor completion bash)

Zsh:
  $ deckeditor completion zsh > "${fpath[1]}/_deckeditor"

Fish:
  $ deckeditor completion fish > ~/.config/fish/completions/deckeditor.fish

PowerShell:
  PS> deckeditor completion powershell | Out-String | Invoke-Expression

Card ids for 'catalog show' are completed from the catalog seed, so run
'deckeditor catalog warm' once to enable them.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeCardIDs completes card ids from the persisted catalog seed. It
// never touches the network.
func (c *CLI) completeCardIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	const directive = cobra.ShellCompDirectiveNoFileComp
	if len(args) > 0 || c.loadConfig() != nil {
		return nil, directive
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := c.newCache(ctx, false)
	if err != nil {
		return nil, directive
	}
	defer backend.Close()

	seed := c.newCatalog(backend).seed
	if seed == nil {
		return nil, directive
	}
	snap, err := seed.Load(ctx)
	if err != nil || snap == nil {
		return nil, directive
	}

	var ids []string
	prefix := strings.ToUpper(toComplete)
	for _, it := range snap.Items {
		if strings.HasPrefix(strings.ToUpper(it.ID), prefix) {
			ids = append(ids, it.ID+"\t"+it.Name)
		}
	}
	return ids, directive
}
