package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell to stdout.

  bash:        source <(geoxml completion bash)
  zsh:         geoxml completion zsh > "${fpath[1]}/_geoxml"
  fish:        geoxml completion fish > ~/.config/fish/completions/geoxml.fish
  powershell:  geoxml completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards to pick up the completions.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
