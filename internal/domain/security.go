package domain

// RiskTier is the verdict of static command classification.
type RiskTier string

const (
	TierSafe    RiskTier = "safe"
	TierWarning RiskTier = "warning"
	TierBlocked RiskTier = "blocked"
)

// ValidationResult is produced fresh by every classification call.
// A Blocked tier is never permitted; Warning and Safe always are.
type ValidationResult struct {
	Tier      RiskTier
	Permitted bool
	Reason    string
}

// Blocked builds a refused verdict.
func Blocked(reason string) ValidationResult {
	return ValidationResult{Tier: TierBlocked, Permitted: false, Reason: reason}
}

// Warned builds a permitted verdict that still needs the assertive prompt.
func Warned(reason string) ValidationResult {
	return ValidationResult{Tier: TierWarning, Permitted: true, Reason: reason}
}

// Safe builds a permitted verdict with no matching rule.
func Safe() ValidationResult {
	return ValidationResult{Tier: TierSafe, Permitted: true}
}

// IsBlocked reports whether execution must be refused.
func (v ValidationResult) IsBlocked() bool {
	return v.Tier == TierBlocked
}

// IsWarning reports whether the command matched a warning rule.
func (v ValidationResult) IsWarning() bool {
	return v.Tier == TierWarning
}

// RiskRule pairs a pattern with the human readable reason shown on match.
type RiskRule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`
}
