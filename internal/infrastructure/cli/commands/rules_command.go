package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// NewRulesCommand creates the rules command, which inspects the risk tables.
func NewRulesCommand(container *app.Container) *cobra.Command {
	var verbose bool

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the loaded blocking and warning rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayRules(cmd.OutOrStdout(), container, verbose)
		},
	}
	rulesCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every pattern and reason")

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "check <command>",
		Short: "Classify a command without running it",
		Args:  cobra.MinimumNArgs(1),

		// commands such as "rm -rf /" carry their own flags
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCommand(cmd.OutOrStdout(), container, strings.Join(args, " "))
		},
	})
	return rulesCmd
}

func displayRules(out io.Writer, container *app.Container, verbose bool) error {
	if container.Classifier == nil {
		return errors.New(ErrClassifierUnavailable)
	}
	blocking, warning := container.Classifier.Counts()
	fmt.Fprintf(out, "Rules source: %s\n", container.Classifier.Source())
	fmt.Fprintf(out, "Blocking rules: %d\n", blocking)
	fmt.Fprintf(out, "Warning rules: %d\n", warning)
	if !verbose {
		return nil
	}

	blockingRules, warningRules := container.Classifier.Rules()
	printRuleTable(out, "Blocking", blockingRules)
	printRuleTable(out, "Warning", warningRules)
	return nil
}

func printRuleTable(out io.Writer, title string, rules []domain.RiskRule) {
	fmt.Fprintf(out, "\n%s:\n", title)
	for i, rule := range rules {
		fmt.Fprintf(out, "  %2d. %s\n      %s\n", i+1, rule.Reason, rule.Pattern)
	}
}

// checkCommand prints the verdict and fails for blocked commands so scripts can test it.
func checkCommand(out io.Writer, container *app.Container, command string) error {
	if container.Classifier == nil {
		return errors.New(ErrClassifierUnavailable)
	}
	verdict := container.Classifier.Classify(command)
	switch verdict.Tier {
	case domain.TierBlocked:
		fmt.Fprintf(out, MsgVerdictBlocked+"\n", verdict.Reason)
		return errors.New("command is blocked")
	case domain.TierWarning:
		fmt.Fprintf(out, MsgVerdictWarning+"\n", verdict.Reason)
	default:
		fmt.Fprintln(out, MsgVerdictSafe)
	}
	return nil
}
