package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActiveModel returns the configured model name, falling back to DefaultModel.
func (c *Config) ActiveModel() string {
	if strings.TrimSpace(c.Model) == "" {
		return DefaultModel
	}
	return strings.TrimSpace(c.Model)
}

// APICredential returns the environment credential when present, otherwise the stored one.
func (c *Config) APICredential() string {
	if c.EnvAPIKey != "" {
		return c.EnvAPIKey
	}
	return c.APIKey
}

// HasAPICredential reports whether any credential is available.
func (c *Config) HasAPICredential() bool {
	return c.APICredential() != ""
}

// MaskedAPIKey renders the credential for display: first 6, 12 bullets, last 4.
func (c *Config) MaskedAPIKey() string {
	return MaskSecret(c.APICredential())
}

// MaskSecret hides everything but the head and tail of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 10 {
		return strings.Repeat("•", 12)
	}
	return secret[:6] + strings.Repeat("•", 12) + secret[len(secret)-4:]
}

// ActiveTheme returns the configured theme, falling back to the default palette
// when the stored value is unknown.
func (c *Config) ActiveTheme() string {
	if IsKnownTheme(c.Theme) {
		return c.Theme
	}
	return ThemeDefault
}

// CommandTimeout returns the execution deadline for approved commands.
func (c *Config) CommandTimeout() time.Duration {
	if c.Execution.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// ProviderTimeout returns the HTTP deadline for provider requests.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Provider.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// ProviderKind returns the configured backend, defaulting to Gemini.
func (c *Config) ProviderKind() ProviderKind {
	kind, ok := ParseProviderKind(c.Provider.Kind)
	if !ok {
		return ProviderGemini
	}
	return kind
}

// ConfirmDefault returns the answer assumed on a bare Enter for the given tier.
func (c *Config) ConfirmDefault(tier RiskTier) bool {
	switch tier {
	case TierWarning:
		return boolOr(c.Execution.ConfirmDefaultWarning, true)
	case TierSafe:
		return boolOr(c.Execution.ConfirmDefaultSafe, true)
	default:
		return false
	}
}

// HistoryTurns returns the bounded conversation window size.
func (c *Config) HistoryTurns() int {
	if c.History.MaxTurns <= 0 {
		return DefaultHistoryTurns
	}
	return c.History.MaxTurns
}

// RepairLimitReached reports whether another repair session may start.
// A zero MaxRepairs leaves the loop bounded only by the user's answers.
func (c *Config) RepairLimitReached(repairs int) bool {
	return c.Execution.MaxRepairs > 0 && repairs >= c.Execution.MaxRepairs
}

// Validate checks values that cannot be repaired by hydration.
func (c *Config) Validate() error {
	var problems []string
	if c.Theme != "" && !IsKnownTheme(c.Theme) {
		problems = append(problems, fmt.Sprintf("unknown theme %q (available: %s)", c.Theme, strings.Join(ThemeNames, ", ")))
	}
	if _, ok := ParseProviderKind(c.Provider.Kind); !ok {
		problems = append(problems, fmt.Sprintf("unknown provider kind %q", c.Provider.Kind))
	}
	if c.Execution.TimeoutSeconds < 0 {
		problems = append(problems, "execution.timeout_seconds must not be negative")
	}
	if c.Execution.MaxRepairs < 0 {
		problems = append(problems, "execution.max_repairs must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// BoolPtr is a helper for optional YAML booleans.
func BoolPtr(value bool) *bool {
	return &value
}
