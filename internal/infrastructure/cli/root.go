package cli

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/yakuperoglu/nova-ai-cli/internal/app"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

type askFlags struct {
	files   []string
	yes     bool
	copy    bool
	timeout time.Duration
}

// NewRootCmd wires the cobra root command. The returned cleanup releases
// adapters opened by the container.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath})
	if err != nil {
		return nil, nil, err
	}
	attachTerminal(container)

	var (
		debug bool
		flags askFlags
	)
	root := &cobra.Command{
		Use:   "nova [prompt...]",
		Short: "Nova - natural language to shell commands",
		Long: `Nova turns a plain-language request into a shell command, explains it,
checks it against safety rules and runs it only after you confirm.

  nova list the five largest files here
  nova -f error.log why does this fail`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				container.Logger.SetVerbose(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAsk(cmd, container, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindAskFlags(root, &flags)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	root.AddCommand(newAskCommand(container))
	root.AddCommand(commands.NewAuthCommand(container))
	root.AddCommand(commands.NewModelCommand(container))
	root.AddCommand(commands.NewThemeCommand(container))
	root.AddCommand(commands.NewResetCommand(container))
	root.AddCommand(commands.NewRememberCommand(container))
	root.AddCommand(commands.NewMemoryCommand(container))
	root.AddCommand(commands.NewAuditCommand(container))
	root.AddCommand(commands.NewRulesCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())

	cleanup := func() {
		if err := container.Close(); err != nil {
			container.Logger.Warn("close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return root, cleanup, nil
}

func newAskCommand(container *app.Container) *cobra.Command {
	var flags askFlags

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Ask Nova for a command or an answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, container, args, flags)
		},
	}
	bindAskFlags(cmd, &flags)
	return cmd
}

func bindAskFlags(cmd *cobra.Command, flags *askFlags) {
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Attach a file to the request (repeatable)")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Run safe commands without asking (risky ones still ask)")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the executed command to the clipboard")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Override the command timeout (e.g. 45s)")
}

// runAsk drives one request and maps its outcome to the process exit code.
func runAsk(cmd *cobra.Command, container *app.Container, args []string, flags askFlags) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return errors.New("a prompt is required")
	}
	if flags.timeout < 0 {
		return errors.New("--timeout must not be negative")
	}

	result, err := container.ExecutionService.Run(cmd.Context(), domain.Request{
		Prompt:          prompt,
		AttachmentPaths: flags.files,
		AutoConfirm:     flags.yes,
		CopyCommand:     flags.copy,
		Timeout:         flags.timeout,
	})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}

// attachTerminal plugs the terminal-facing adapters into the services.
func attachTerminal(container *app.Container) {
	profile := colorProfile(os.Stdout)
	reporter := NewReporter(ReporterOptions{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Theme:     container.Config.ActiveTheme(),
		Profile:   profile,
		Markdown:  profile != termenv.Ascii,
		Streaming: true,
		Width:     terminalWidth(os.Stdout),
	})
	clipboard := NewClipboard()

	svc := container.ExecutionService
	svc.Reporter = reporter
	svc.Prompter = NewPrompter(nil, nil)
	svc.Spinner = NewSpinner(os.Stderr, reporter.Theme().Accent, isTerminal(os.Stderr))
	svc.Clipboard = clipboard
	container.DoctorService.Clipboard = clipboard
}
