// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The orchestrator in internal/services depends only on these contracts.
// Adapters under internal/infrastructure implement them:
//   - security: Sanitizer, Classifier
//   - executor: CommandRunner
//   - audit: AuditLog
//   - ai: Provider
//   - config, history: ConfigProvider, HistoryStore, MemoryStore
//   - cli: Prompter, Reporter, Spinner, Clipboard
package ports

import (
	"context"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations read ~/.nova/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ConfigWriter persists configuration changes made by auth/model/theme commands.
type ConfigWriter interface {
	Save(context.Context, domain.Config) error
}

// EnvironmentCollector describes the host the command will run on.
type EnvironmentCollector interface {
	Collect(context.Context) domain.EnvironmentSnapshot
}

// Provider turns a prompt into a structured chat or command reply.
type Provider interface {
	Name() string
	Generate(context.Context, ProviderRequest) (domain.AIResponse, error)
}

// ProviderFactory builds a provider for the active configuration.
type ProviderFactory interface {
	ForConfig(domain.Config) (Provider, error)
}

// ProviderRequest contains everything sent to the AI service for one session.
type ProviderRequest struct {
	Prompt      string
	Attachments []domain.Attachment
	History     []domain.Turn
	Memories    []string
	Environment domain.EnvironmentSnapshot
	Model       string
	APIKey      string
}

// Sanitizer cleans raw AI output into a single candidate command.
type Sanitizer interface {
	Sanitize(raw string) (string, error)
}

// Classifier assigns a risk tier to a sanitized command.
type Classifier interface {
	Classify(command string) domain.ValidationResult
}

// RuleInventory describes the loaded rule tables.
type RuleInventory interface {
	Counts() (blocking, warning int)
	Source() string
}

// CommandRunner executes an approved command under a deadline.
type CommandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (domain.ExecutionOutcome, error)
}

// AuditLog records execution attempts. Append is best effort and never fails the caller.
type AuditLog interface {
	Append(domain.AuditEntry)
	ReadRecent(limit int) []string
}

// AuditIndex answers structured queries over recorded entries.
type AuditIndex interface {
	Search(term string, limit int) ([]domain.AuditEntry, error)
	CountByStatus() (domain.AuditStats, error)
}

// HistoryStore keeps the bounded conversation window replayed to the provider.
type HistoryStore interface {
	AppendTurn(role domain.Role, text string) error
	Turns() ([]domain.Turn, error)
	Reset() error
}

// MemoryStore keeps user rules that are added to every provider request.
type MemoryStore interface {
	Add(fact string) (bool, error)
	List() ([]string, error)
	Remove(index int) (bool, error)
	Clear() error
}

// Prompter asks the user for confirmations.
// Implementations return domain.ErrInterrupted when input is aborted.
type Prompter interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// Spinner decorates a blocking call with a progress indicator.
type Spinner interface {
	Start(label string)
	Stop()
}

// Reporter renders orchestration progress to the user.
type Reporter interface {
	Message(text string)
	Command(command string, verdict domain.ValidationResult)
	Blocked(verdict domain.ValidationResult)
	Warning(text string)
	Info(text string)
	Success(text string)
	Failure(text string)
	Output(outcome domain.ExecutionOutcome)
}

// Clipboard copies executed commands for reuse.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
