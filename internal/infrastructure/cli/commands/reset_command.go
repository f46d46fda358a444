package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
)

// NewResetCommand creates the reset command, which forgets the conversation.
func NewResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the conversation history sent with each request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.Reset(); err != nil {
				return fmt.Errorf("reset history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}
