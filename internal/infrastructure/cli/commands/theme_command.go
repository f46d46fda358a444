package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/helpers"
)

// NewThemeCommand creates the theme command with all subcommands
func NewThemeCommand(container *app.Container) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "List or change the color theme",
	}

	themeCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List available themes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := helpers.LoadConfig(cmd.Context(), container)
				if err != nil {
					return err
				}
				listThemes(cmd.OutOrStdout(), cfg.ActiveTheme())
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <name>",
			Short:     "Switch to another theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: domain.ThemeNames,
			RunE: func(cmd *cobra.Command, args []string) error {
				name := args[0]
				if !domain.IsKnownTheme(name) {
					return fmt.Errorf("unknown theme %q; run 'nova theme list'", name)
				}
				if _, err := helpers.UpdateConfig(cmd.Context(), container, func(cfg *domain.Config) error {
					cfg.Theme = name
					return nil
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgThemeChanged+"\n", name)
				return nil
			},
		},
	)
	return themeCmd
}

func listThemes(out io.Writer, active string) {
	for _, name := range domain.ThemeNames {
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
}
