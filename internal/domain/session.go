package domain

import "time"

// ResponseKind declares whether the provider replied conversationally or proposed a command.
type ResponseKind string

const (
	ResponseChat    ResponseKind = "chat"
	ResponseCommand ResponseKind = "command"
)

// FallbackMessage substitutes a provider reply that carried no message.
const FallbackMessage = "I received a response I could not understand."

// AIResponse is the structured reply of the AI provider.
type AIResponse struct {
	Kind    ResponseKind `json:"type"`
	Message string       `json:"message"`
	Command string       `json:"command"`
	Raw     string       `json:"-"`
}

// HasCommand reports whether the reply should go through classification.
func (r AIResponse) HasCommand() bool {
	return r.Kind == ResponseCommand && r.Command != ""
}

// Attachment is a file whose contents are sent along with the prompt.
type Attachment struct {
	Path    string
	Name    string
	Content string
}

// Request captures user intent originating from the CLI.
type Request struct {
	Prompt          string
	AttachmentPaths []string
	AutoConfirm     bool
	CopyCommand     bool
	// Timeout overrides execution.timeout_seconds when positive.
	Timeout time.Duration
}

// Session threads one request (or one accepted repair) through the pipeline.
type Session struct {
	ID          string
	Attempt     int
	Prompt      string
	Attachments []Attachment
	Response    AIResponse
	Validation  ValidationResult
	Outcome     ExecutionOutcome
	Err         error
}

// SessionState names the orchestrator state a session terminated in.
type SessionState string

const (
	StateChatOnly  SessionState = "chat_only"
	StateRejected  SessionState = "rejected"
	StateBlocked   SessionState = "blocked"
	StateCancelled SessionState = "cancelled"
	StateSucceeded SessionState = "succeeded"
	StateFailed    SessionState = "failed"
	StateProvider  SessionState = "provider_error"
)

// Result is returned to the CLI once the last session terminates.
type Result struct {
	ExitCode int
	State    SessionState
	Sessions int
	Final    Session
}
