package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/helpers"
)

// NewAuthCommand creates the auth command. Without arguments it asks for the key
// with echo disabled.
func NewAuthCommand(container *app.Container) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth [key]",
		Short: "Save the API key used to reach the AI provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = readKey(cmd); err != nil {
					return err
				}
			}
			return saveKey(cmd.Context(), cmd.OutOrStdout(), container, key)
		},
	}

	authCmd.AddCommand(
		newAuthSetCommand(container),
		newAuthStatusCommand(container),
	)
	return authCmd
}

func newAuthSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>",
		Short: "Save an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveKey(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

func newAuthStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := helpers.LoadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			displayAuthStatus(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func saveKey(ctx context.Context, out io.Writer, container *app.Container, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New(ErrKeyRequired)
	}
	cfg, err := helpers.UpdateConfig(ctx, container, func(cfg *domain.Config) error {
		cfg.APIKey = key
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, MsgKeySaved)
	if cfg.EnvAPIKey != "" && cfg.EnvAPIKey != key {
		fmt.Fprintln(out, MsgEnvKeyOverrides)
	}
	return nil
}

// readKey reads the key without echo on a terminal, or as a plain line otherwise.
func readKey(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		fmt.Fprintf(out, "%s: ", MsgKeyPromptText)
		secret, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return string(secret), nil
	}
	key, err := helpers.PromptForString(out, bufio.NewReader(cmd.InOrStdin()), MsgKeyPromptText, "")
	if errors.Is(err, domain.ErrInterrupted) {
		return "", errors.New(ErrKeyRequired)
	}
	return key, err
}

func displayAuthStatus(out io.Writer, cfg domain.Config) {
	if !cfg.HasAPICredential() {
		fmt.Fprintln(out, MsgKeyMissing)
		return
	}
	source := "config file"
	if cfg.EnvAPIKey != "" {
		source = "NOVA_API_KEY"
	}
	fmt.Fprintf(out, "API key: %s (from %s)\n", cfg.MaskedAPIKey(), source)
	fmt.Fprintf(out, "Provider: %s\n", cfg.ProviderKind())
	fmt.Fprintf(out, "Model: %s\n", cfg.ActiveModel())
}
