package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
)

// NewRememberCommand saves a rule that is sent with every request.
func NewRememberCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remember <fact...>",
		Short: "Teach Nova a rule to follow in every answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.MemoryStore == nil {
				return errors.New(ErrMemoryStoreUnavailable)
			}
			fact := strings.TrimSpace(strings.Join(args, " "))
			if fact == "" {
				return errors.New(ErrFactRequired)
			}
			added, err := container.MemoryStore.Add(fact)
			if err != nil {
				return fmt.Errorf("save rule: %w", err)
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), MsgFactRemembered)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), MsgFactKnown)
			}
			return nil
		},
	}
}

// NewMemoryCommand creates the memory command with all subcommands
func NewMemoryCommand(container *app.Container) *cobra.Command {
	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect the rules Nova remembers",
	}

	memoryCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved rules",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listMemories(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget every saved rule",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.MemoryStore == nil {
					return errors.New(ErrMemoryStoreUnavailable)
				}
				if err := container.MemoryStore.Clear(); err != nil {
					return fmt.Errorf("clear rules: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgMemoriesCleared)
				return nil
			},
		},
		&cobra.Command{
			Use:   "forget <n>",
			Short: "Forget the saved rule numbered n in 'memory list'",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return forgetMemory(cmd.OutOrStdout(), container, args[0])
			},
		},
	)
	return memoryCmd
}

func listMemories(out io.Writer, container *app.Container) error {
	if container.MemoryStore == nil {
		return errors.New(ErrMemoryStoreUnavailable)
	}
	facts, err := container.MemoryStore.List()
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}
	if len(facts) == 0 {
		fmt.Fprintln(out, MsgNoMemories)
		return nil
	}
	for i, fact := range facts {
		fmt.Fprintf(out, "%d. %s\n", i+1, fact)
	}
	return nil
}

func forgetMemory(out io.Writer, container *app.Container, arg string) error {
	if container.MemoryStore == nil {
		return errors.New(ErrMemoryStoreUnavailable)
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return fmt.Errorf("invalid rule number %q", arg)
	}
	facts, err := container.MemoryStore.List()
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}
	if n > len(facts) {
		return fmt.Errorf(MsgNoSuchMemory, n, len(facts))
	}
	removed, err := container.MemoryStore.Remove(n - 1)
	if err != nil {
		return fmt.Errorf("forget rule: %w", err)
	}
	if !removed {
		return fmt.Errorf(MsgNoSuchMemory, n, len(facts))
	}
	fmt.Fprintf(out, MsgForgotMemory+"\n", facts[n-1])
	return nil
}
