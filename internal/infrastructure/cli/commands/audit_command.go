package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/audit"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/helpers"
)

// NewAuditCommand creates the audit command with all subcommands
func NewAuditCommand(container *app.Container) *cobra.Command {
	var lines int

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines < 1 {
				return errors.New(ErrInvalidLineCount)
			}
			return showRecentAudit(cmd.OutOrStdout(), container, lines)
		},
	}
	auditCmd.Flags().IntVarP(&lines, "lines", "n", domain.DefaultAuditLines, "Number of entries to show")

	auditCmd.AddCommand(
		newAuditSearchCommand(container),
		newAuditStatsCommand(container),
	)
	return auditCmd
}

func newAuditSearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find entries whose prompt, command or error mentions term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return errors.New(ErrInvalidLimit)
			}
			return searchAudit(cmd.OutOrStdout(), container, args[0], limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultAuditSearchLimit, "Limit search results")
	return cmd
}

func newAuditStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize outcomes of executed commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayAuditStats(cmd.OutOrStdout(), container)
		},
	}
}

func showRecentAudit(out io.Writer, container *app.Container, lines int) error {
	if container.Audit == nil {
		return errors.New(ErrAuditLogUnavailable)
	}
	recent := container.Audit.ReadRecent(lines)
	if len(recent) == 0 {
		fmt.Fprintln(out, MsgNoAuditEntries)
		return nil
	}
	fmt.Fprintf(out, "Audit log: %s\n\n", container.Audit.Path())
	for _, line := range recent {
		fmt.Fprintln(out, line)
	}
	return nil
}

func searchAudit(out io.Writer, container *app.Container, term string, limit int) error {
	if container.Audit == nil {
		return errors.New(ErrAuditLogUnavailable)
	}
	entries, err := container.Audit.Search(term, limit)
	if err != nil {
		return fmt.Errorf("search audit log: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(out, MsgNoAuditMatches+"\n", term)
		return nil
	}
	// newest first from the index; print oldest first like the log itself
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintln(out, audit.FormatLine(entries[i]))
	}
	return nil
}

func displayAuditStats(out io.Writer, container *app.Container) error {
	if container.Audit == nil {
		return errors.New(ErrAuditLogUnavailable)
	}
	stats, err := container.Audit.CountByStatus()
	if err != nil {
		return fmt.Errorf("count audit entries: %w", err)
	}
	if stats.Total() == 0 {
		fmt.Fprintln(out, MsgNoAuditEntries)
		return nil
	}

	fmt.Fprintf(out, "Total entries: %d\n", stats.Total())
	fmt.Fprintf(out, "  Success:   %d\n", stats.Success)
	fmt.Fprintf(out, "  Failed:    %d\n", stats.Failed)
	fmt.Fprintf(out, "  Cancelled: %d\n", stats.Cancelled)
	fmt.Fprintf(out, "Success rate: %.1f%%\n", helpers.SuccessRate(stats))

	entries, err := container.Audit.Search("", statsScanLimit)
	if err != nil {
		return fmt.Errorf("read audit entries: %w", err)
	}
	top := helpers.TopCommands(entries, DefaultTopCommands)
	if len(top) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, MsgTopCommandsHeader)
	for _, stat := range top {
		fmt.Fprintf(out, "  %3d  %s\n", stat.Count, stat.Command)
	}
	return nil
}
