package app

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/ai"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/audit"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/config"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/environment"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/executor"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/history"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/security"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/logger"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
	"github.com/yakuperoglu/nova-ai-cli/internal/services"
)

// Options tunes container construction.
type Options struct {
	Verbose bool
	// ConfigPath overrides NOVA_CONFIG and ~/.nova/config.yaml.
	ConfigPath string
	// Stdout and Stderr receive live command output; nil selects the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// AuditDBPath overrides ~/.nova/audit.db; used by tests.
	AuditDBPath string
}

// Container wires up application services with infrastructure adapters.
// Terminal-facing adapters (prompter, reporter, spinner, clipboard) are
// attached by the CLI layer after construction.
type Container struct {
	Config domain.Config
	// ConfigErr is the load failure when Config holds defaults instead of the file.
	ConfigErr      error
	Logger         *logger.StdLogger
	ConfigProvider ports.ConfigProvider
	ConfigWriter   ports.ConfigWriter
	ConfigLoader   *config.FileLoader
	Classifier     *security.Classifier
	Runner         *executor.Runner
	Audit          *audit.Fanout
	HistoryStore   *history.FileStore
	MemoryStore    *history.MemoryStore

	ExecutionService *services.ExecutionService
	DoctorService    *services.DoctorService
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.NewStd(opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, configErr := cfgLoader.Load(ctx)
	if configErr != nil {
		// keep maintenance commands usable; services reload and report the error
		log.Warn("config unusable, starting with defaults", map[string]interface{}{"error": configErr.Error()})
		cfg = config.DefaultConfig()
	}

	classifier, err := security.NewClassifier(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("rules file unusable, using built-in rules", map[string]interface{}{"path": cfg.Security.RulesFile, "error": err.Error()})
		classifier, err = security.NewClassifier("")
		if err != nil {
			return nil, err
		}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	runner := executor.NewRunner(executor.Options{
		Shell:  cfg.Execution.Shell,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  childStdin(os.Stdin),
		Logger: log,
	})

	mirror, err := audit.NewMirror(opts.AuditDBPath)
	if err != nil {
		log.Warn("audit mirror unavailable, search falls back to the log file", map[string]interface{}{"error": err.Error()})
		mirror = nil
	}
	auditLog := audit.NewFanout(audit.NewFileLog("", log), mirror, log)

	historyStore := history.NewFileStore("", cfg.HistoryTurns())
	memoryStore := history.NewMemoryStore("")
	collector := environment.NewCollector(runner.Shell())
	providers := ai.NewFactory(cfg.ProviderTimeout(), log)

	executionService := &services.ExecutionService{
		ConfigProvider:  cfgLoader,
		Environment:     collector,
		ProviderFactory: providers,
		Sanitizer:       security.NewSanitizer(),
		Classifier:      classifier,
		Runner:          runner,
		Audit:           auditLog,
		History:         historyStore,
		Memory:          memoryStore,
		Logger:          log,
	}

	doctorService := &services.DoctorService{
		ConfigProvider:  cfgLoader,
		ProviderFactory: providers,
		Rules:           classifier,
		Environment:     collector,
		AuditIndex:      auditLog,
		ConfigPath:      cfgLoader.Path(),
		Shell:           runner.Shell(),
	}

	return &Container{
		Config:           cfg,
		ConfigErr:        configErr,
		Logger:           log,
		ConfigProvider:   cfgLoader,
		ConfigWriter:     cfgLoader,
		ConfigLoader:     cfgLoader,
		Classifier:       classifier,
		Runner:           runner,
		Audit:            auditLog,
		HistoryStore:     historyStore,
		MemoryStore:      memoryStore,
		ExecutionService: executionService,
		DoctorService:    doctorService,
	}, nil
}

// childStdin returns f when it is a terminal. Piped input is consumed by the
// confirmation prompt, so children get no stdin rather than a partial stream.
func childStdin(f *os.File) io.Reader {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return f
}

// Close releases resources held by adapters.
func (c *Container) Close() error {
	if c == nil || c.Audit == nil {
		return nil
	}
	return c.Audit.Close()
}
