package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/helpers"
)

// NewModelCommand creates the model command with all subcommands
func NewModelCommand(container *app.Container) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Show or change the AI model",
	}

	modelCmd.AddCommand(
		newModelSetCommand(container),
		newModelStatusCommand(container),
	)
	return modelCmd
}

func newModelSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Use a different model for new requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("model name cannot be empty")
			}
			if _, err := helpers.UpdateConfig(cmd.Context(), container, func(cfg *domain.Config) error {
				cfg.Model = name
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgModelChanged+"\n", name)
			return nil
		},
	}
}

func newModelStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active provider and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := helpers.LoadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			displayModelStatus(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func displayModelStatus(out io.Writer, cfg domain.Config) {
	fmt.Fprintf(out, "Provider: %s\n", cfg.ProviderKind())
	fmt.Fprintf(out, "Model: %s\n", cfg.ActiveModel())
	if cfg.Provider.Endpoint != "" {
		fmt.Fprintf(out, "Endpoint: %s\n", cfg.Provider.Endpoint)
	}
}
