package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrMemoryStoreUnavailable   = "memory store unavailable"
	ErrAuditLogUnavailable      = "audit log unavailable"
	ErrClassifierUnavailable    = "classifier unavailable"
	ErrKeyRequired              = "an API key is required"
	ErrFactRequired             = "nothing to remember"
	ErrInvalidLineCount         = "--lines must be >= 1"
	ErrInvalidLimit             = "--limit must be >= 1"
)

// Success messages
const (
	MsgKeySaved          = "API key saved."
	MsgKeyMissing        = "No API key configured. Run: nova auth <key>"
	MsgHistoryCleared    = "Conversation history cleared."
	MsgFactRemembered    = "Got it, I'll remember that."
	MsgFactKnown         = "I already remember that."
	MsgNoMemories        = "No saved rules yet. Add one with: nova remember <fact>"
	MsgMemoriesCleared   = "All saved rules forgotten."
	MsgNoAuditEntries    = "No audit entries recorded yet."
	MsgNoAuditMatches    = "No audit entries match %q."
	MsgKeyPromptText     = "Enter your API key"
	MsgEnvKeyOverrides   = "Note: NOVA_API_KEY is set and takes precedence over the stored key."
	MsgThemeChanged      = "Theme set to %s."
	MsgModelChanged      = "Model set to %s."
	MsgForgotMemory      = "Forgot: %s"
	MsgNoSuchMemory      = "no saved rule #%d (have %d)"
	MsgVerdictBlocked    = "BLOCKED: %s"
	MsgVerdictWarning    = "WARNING: %s"
	MsgVerdictSafe       = "SAFE"
	MsgTopCommandsHeader = "Most executed commands:"
)

// Defaults for listing commands.
const (
	DefaultTopCommands = 5
	statsScanLimit     = 1000
)
