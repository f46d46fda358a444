package domain

// Config mirrors ~/.nova/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	APIKey              string            `yaml:"api_key"`
	Model               string            `yaml:"model"`
	Theme               string            `yaml:"theme"`
	Provider            ProviderSettings  `yaml:"provider"`
	Execution           ExecutionSettings `yaml:"execution"`
	History             HistorySettings   `yaml:"history"`
	Security            SecuritySettings  `yaml:"security"`

	// EnvAPIKey holds a credential supplied through the environment; never persisted.
	EnvAPIKey string `yaml:"-"`
}

// ProviderSettings selects and tunes the AI backend.
type ProviderSettings struct {
	Kind           string `yaml:"kind"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ExecutionSettings controls how approved commands run.
type ExecutionSettings struct {
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
	Shell                 string `yaml:"shell"`
	ConfirmDefaultSafe    *bool  `yaml:"confirm_default_safe"`
	ConfirmDefaultWarning *bool  `yaml:"confirm_default_warning"`
	MaxRepairs            int    `yaml:"max_repairs"`
}

// HistorySettings bounds the replayed conversation.
type HistorySettings struct {
	MaxTurns int `yaml:"max_turns"`
}

// SecuritySettings points at an optional rule table override.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}
