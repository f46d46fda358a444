package security

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/yakuperoglu/nova-ai-cli/assets"
	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Classifier implements the ports.Classifier port with ordered rule tables.
type Classifier struct {
	blocking []compiledRule
	warning  []compiledRule
	source   string
}

type compiledRule struct {
	re   *regexp.Regexp
	rule domain.RiskRule
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		Blocking []domain.RiskRule `yaml:"blocking"`
		Warning  []domain.RiskRule `yaml:"warning"`
	} `yaml:"rules"`
}

// NewClassifier loads rule tables from path, or the embedded defaults when
// path is empty or missing. A tier left empty by the file keeps its defaults.
func NewClassifier(path string) (*Classifier, error) {
	rules, source, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return newClassifier(rules, source)
}

// NewClassifierFromYAML builds a classifier from raw YAML rule tables.
func NewClassifierFromYAML(data []byte) (*Classifier, error) {
	rules, err := parseRules(data)
	if err != nil {
		return nil, err
	}
	return newClassifier(rules, "inline")
}

func newClassifier(rules RulesFile, source string) (*Classifier, error) {
	blocking, err := compileRules(rules.Rules.Blocking)
	if err != nil {
		return nil, fmt.Errorf("blocking rules: %w", err)
	}
	warning, err := compileRules(rules.Rules.Warning)
	if err != nil {
		return nil, fmt.Errorf("warning rules: %w", err)
	}
	return &Classifier{blocking: blocking, warning: warning, source: source}, nil
}

// Classify implements ports.Classifier. Blocking rules are evaluated before
// warning rules and the first match in a tier decides the verdict.
func (c *Classifier) Classify(command string) domain.ValidationResult {
	for _, rule := range c.blocking {
		if rule.re.MatchString(command) {
			return domain.Blocked(rule.rule.Reason)
		}
	}
	for _, rule := range c.warning {
		if rule.re.MatchString(command) {
			return domain.Warned(rule.rule.Reason)
		}
	}
	return domain.Safe()
}

// Counts returns the number of loaded blocking and warning rules.
func (c *Classifier) Counts() (blocking, warning int) {
	return len(c.blocking), len(c.warning)
}

// Rules returns copies of the loaded tables in evaluation order.
func (c *Classifier) Rules() (blocking, warning []domain.RiskRule) {
	return plainRules(c.blocking), plainRules(c.warning)
}

func plainRules(compiled []compiledRule) []domain.RiskRule {
	out := make([]domain.RiskRule, len(compiled))
	for i, rule := range compiled {
		out[i] = rule.rule
	}
	return out
}

// Source names where the rule tables came from.
func (c *Classifier) Source() string {
	return c.source
}

func compileRules(rules []domain.RiskRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.New("rule with empty pattern")
		}
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}
	return compiled, nil
}

func loadRules(path string) (RulesFile, string, error) {
	defaults, err := parseRules(assets.DefaultRulesYAML)
	if err != nil {
		return RulesFile{}, "", fmt.Errorf("embedded rules: %w", err)
	}

	path = filesystem.ExpandPath(path)
	if path == "" {
		return defaults, "embedded", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		return defaults, "embedded", nil
	}

	rules, err := parseRules(data)
	if err != nil {
		return RulesFile{}, "", fmt.Errorf("%s: %w", path, err)
	}
	if len(rules.Rules.Blocking) == 0 {
		rules.Rules.Blocking = defaults.Rules.Blocking
	}
	if len(rules.Rules.Warning) == 0 {
		rules.Rules.Warning = defaults.Rules.Warning
	}
	return rules, path, nil
}

func parseRules(data []byte) (RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	return rules, nil
}

var (
	_ ports.Classifier    = (*Classifier)(nil)
	_ ports.RuleInventory = (*Classifier)(nil)
)
