package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// User-facing wording of the confirmation and repair prompts.
const (
	ThinkingLabel    = "Nova is thinking..."
	SafeQuestion     = "Run this command?"
	WarningQuestion  = "This command carries risk. Run it anyway?"
	RepairQuestion   = "Let Nova analyze the error and suggest a fix?"
	CancelledMessage = "Operation cancelled."
)

// ExecutionService drives one request through think, classify, confirm,
// execute and audit, looping into a fresh session for every accepted repair.
type ExecutionService struct {
	ConfigProvider  ports.ConfigProvider
	Environment     ports.EnvironmentCollector
	ProviderFactory ports.ProviderFactory
	Sanitizer       ports.Sanitizer
	Classifier      ports.Classifier
	Runner          ports.CommandRunner
	Audit           ports.AuditLog
	History         ports.HistoryStore
	Memory          ports.MemoryStore
	Prompter        ports.Prompter
	Spinner         ports.Spinner
	Reporter        ports.Reporter
	Clipboard       ports.Clipboard
	Logger          ports.Logger

	// NewSessionID defaults to random UUIDs.
	NewSessionID func() string
}

// Run processes a natural-language request until a session terminates
// without an accepted repair. The returned error covers setup failures
// only; session outcomes are reported through Result.
func (s *ExecutionService) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := s.validate(); err != nil {
		return domain.Result{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("load config: %w", err)
	}
	provider, err := s.ProviderFactory.ForConfig(cfg)
	if err != nil {
		return domain.Result{}, fmt.Errorf("provider init: %w", err)
	}
	env := s.Environment.Collect(ctx)

	prompt := req.Prompt
	attachments := s.loadAttachments(req.AttachmentPaths)
	repairs := 0

	for attempt := 1; ; attempt++ {
		session := domain.Session{
			ID:          s.newSessionID(),
			Attempt:     attempt,
			Prompt:      prompt,
			Attachments: attachments,
		}
		state := s.runSession(ctx, cfg, provider, env, req, &session)
		result := domain.Result{
			ExitCode: exitCodeFor(state),
			State:    state,
			Sessions: attempt,
			Final:    session,
		}
		s.Logger.Debug("session finished", map[string]interface{}{"session": session.ID, "attempt": attempt, "state": string(state)})

		if state != domain.StateFailed || ctx.Err() != nil {
			return result, nil
		}
		if cfg.RepairLimitReached(repairs) {
			s.Reporter.Info(fmt.Sprintf("Repair limit of %d reached.", cfg.Execution.MaxRepairs))
			return result, nil
		}
		accepted, err := s.Prompter.Confirm(RepairQuestion, true)
		if err != nil || !accepted {
			return result, nil
		}

		repairs++
		prompt = repairPrompt(req.Prompt, session)
		attachments = nil
	}
}

// runSession walks a single session from Thinking to a terminal state.
func (s *ExecutionService) runSession(
	ctx context.Context,
	cfg domain.Config,
	provider ports.Provider,
	env domain.EnvironmentSnapshot,
	req domain.Request,
	session *domain.Session,
) domain.SessionState {
	resp, err := s.think(ctx, cfg, provider, env, session)
	if err != nil {
		session.Err = err
		if errors.Is(err, context.Canceled) {
			s.Reporter.Info(CancelledMessage)
			return domain.StateCancelled
		}
		s.Reporter.Failure(err.Error())
		return domain.StateProvider
	}
	session.Response = resp

	s.remember(session.Prompt, resp)
	s.Reporter.Message(resp.Message)

	if !resp.HasCommand() {
		return domain.StateChatOnly
	}

	command, err := s.Sanitizer.Sanitize(resp.Command)
	if err != nil {
		session.Err = err
		s.Reporter.Failure(fmt.Sprintf("Nova's suggestion was rejected: %v", err))
		return domain.StateRejected
	}
	session.Response.Command = command

	verdict := s.Classifier.Classify(command)
	session.Validation = verdict
	if verdict.IsBlocked() {
		s.Reporter.Blocked(verdict)
		return domain.StateBlocked
	}

	if verdict.IsWarning() {
		s.Reporter.Warning("Warning: " + verdict.Reason)
	}
	s.Reporter.Command(command, verdict)

	if !s.confirm(cfg, req, verdict) {
		session.Err = domain.ErrCancelled
		s.Audit.Append(s.entry(session, domain.AuditCancelled, ""))
		s.Reporter.Info(CancelledMessage)
		return domain.StateCancelled
	}

	timeout := cfg.CommandTimeout()
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	outcome, err := s.Runner.Run(ctx, command, timeout)
	session.Outcome = outcome
	if err != nil {
		session.Err = err
		detail := failureDetail(err)
		s.Audit.Append(s.entry(session, domain.AuditFailed, detail))
		s.Reporter.Failure(detail)
		return domain.StateFailed
	}

	s.Audit.Append(s.entry(session, domain.AuditSuccess, ""))
	s.Reporter.Output(outcome)
	if outcome.Stderr != "" {
		s.Reporter.Warning("Command finished, but wrote to stderr.")
	} else {
		s.Reporter.Success("Command completed successfully.")
	}
	if req.CopyCommand {
		s.copy(command)
	}
	return domain.StateSucceeded
}

// think calls the provider behind the spinner; the spinner stops on every path.
func (s *ExecutionService) think(
	ctx context.Context,
	cfg domain.Config,
	provider ports.Provider,
	env domain.EnvironmentSnapshot,
	session *domain.Session,
) (domain.AIResponse, error) {
	history, err := s.History.Turns()
	if err != nil {
		s.Logger.Warn("history unavailable", map[string]interface{}{"error": err.Error()})
	}
	memories, err := s.Memory.List()
	if err != nil {
		s.Logger.Warn("memories unavailable", map[string]interface{}{"error": err.Error()})
	}

	s.Logger.Debug("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    cfg.ActiveModel(),
		"session":  session.ID,
	})

	s.Spinner.Start(ThinkingLabel)
	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		Prompt:      session.Prompt,
		Attachments: session.Attachments,
		History:     history,
		Memories:    memories,
		Environment: env,
		Model:       cfg.ActiveModel(),
		APIKey:      cfg.APICredential(),
	})
	s.Spinner.Stop()
	return resp, err
}

// remember appends the exchange to the conversation history; failures are not fatal.
func (s *ExecutionService) remember(prompt string, resp domain.AIResponse) {
	reply := resp.Raw
	if reply == "" {
		reply = resp.Message
	}
	if err := s.History.AppendTurn(domain.RoleUser, prompt); err != nil {
		s.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.History.AppendTurn(domain.RoleModel, reply); err != nil {
		s.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
	}
}

// confirm asks for approval. --yes skips the question for Safe commands only;
// an interrupted prompt counts as a decline.
func (s *ExecutionService) confirm(cfg domain.Config, req domain.Request, verdict domain.ValidationResult) bool {
	if req.AutoConfirm && verdict.Tier == domain.TierSafe {
		s.Logger.Debug("auto-confirmed safe command", nil)
		return true
	}
	question := SafeQuestion
	if verdict.IsWarning() {
		question = WarningQuestion
	}
	ok, err := s.Prompter.Confirm(question, cfg.ConfirmDefault(verdict.Tier))
	if err != nil {
		if !errors.Is(err, domain.ErrInterrupted) {
			s.Logger.Warn("confirmation failed", map[string]interface{}{"error": err.Error()})
		}
		return false
	}
	return ok
}

func (s *ExecutionService) copy(command string) {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return
	}
	if err := s.Clipboard.Copy(command); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.Reporter.Info("Command copied to clipboard.")
}

func (s *ExecutionService) entry(session *domain.Session, status domain.AuditStatus, detail string) domain.AuditEntry {
	return domain.AuditEntry{
		Timestamp: time.Now(),
		Status:    status,
		Prompt:    session.Prompt,
		Command:   session.Response.Command,
		Error:     detail,
		SessionID: session.ID,
	}
}

func (s *ExecutionService) newSessionID() string {
	if s.NewSessionID != nil {
		return s.NewSessionID()
	}
	return uuid.NewString()
}

func (s *ExecutionService) validate() error {
	if s.ConfigProvider == nil || s.Environment == nil || s.ProviderFactory == nil ||
		s.Sanitizer == nil || s.Classifier == nil || s.Runner == nil || s.Audit == nil ||
		s.History == nil || s.Memory == nil || s.Prompter == nil || s.Spinner == nil ||
		s.Reporter == nil || s.Logger == nil {
		return errors.New("services.ExecutionService dependencies not satisfied")
	}
	return nil
}

func failureDetail(err error) string {
	var execErr *domain.ExecError
	if errors.As(err, &execErr) && execErr.Detail != "" {
		return execErr.Detail
	}
	return err.Error()
}

// repairPrompt asks the model to diagnose the failed command of session.
func repairPrompt(original string, session domain.Session) string {
	return fmt.Sprintf(`The command you suggested failed.
Original request: %s
Command: %s
Error: %s

Analyze the error and suggest a corrected command.`, original, session.Response.Command, failureDetail(session.Err))
}

func exitCodeFor(state domain.SessionState) int {
	switch state {
	case domain.StateChatOnly, domain.StateSucceeded:
		return 0
	default:
		return 1
	}
}
