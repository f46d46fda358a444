package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// DoctorService runs environment diagnostics.
type DoctorService struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Rules           ports.RuleInventory
	Environment     ports.EnvironmentCollector
	AuditIndex      ports.AuditIndex
	Clipboard       ports.Clipboard

	// ConfigPath and Shell are reported as-is.
	ConfigPath string
	Shell      string
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration cannot be loaded, since every later check depends on it.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	if s.ConfigProvider == nil {
		return domain.HealthReport{}, errors.New("services.DoctorService dependencies not satisfied")
	}
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded %s (format %s)", s.ConfigPath, cfg.ConfigFormatVersion)))

	checks = append(checks, apiCheck(cfg))
	if s.ProviderFactory != nil {
		if provider, err := s.ProviderFactory.ForConfig(cfg); err != nil {
			checks = append(checks, fail("Provider", err.Error()))
		} else {
			checks = append(checks, ok("Provider", fmt.Sprintf("%s, model %s", provider.Name(), cfg.ActiveModel())))
		}
	}

	if s.Rules != nil {
		checks = append(checks, rulesCheck(s.Rules, cfg.Security.RulesFile))
	} else {
		checks = append(checks, warn("Guardrail", "classifier not initialized"))
	}

	if s.Environment != nil {
		checks = append(checks, environmentDiagnostics(s.Environment.Collect(ctx))...)
	}
	checks = append(checks, s.shellCheck())

	if s.AuditIndex != nil {
		if stats, err := s.AuditIndex.CountByStatus(); err != nil {
			checks = append(checks, warn("Audit log", err.Error()))
		} else {
			checks = append(checks, ok("Audit log", fmt.Sprintf("%d entries recorded", stats.Total())))
		}
	}

	if s.Clipboard != nil {
		if s.Clipboard.Enabled() {
			checks = append(checks, ok("Clipboard", "available for --copy"))
		} else {
			checks = append(checks, warn("Clipboard", "no clipboard utility found; --copy is disabled"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func apiCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.HasAPICredential() {
		return warn("API key", "not configured; run: nova auth <key>")
	}
	source := "config file"
	if cfg.EnvAPIKey != "" {
		source = "environment"
	}
	return ok("API key", fmt.Sprintf("%s (from %s)", cfg.MaskedAPIKey(), source))
}

func rulesCheck(rules ports.RuleInventory, configured string) domain.HealthCheck {
	blocking, warning := rules.Counts()
	details := fmt.Sprintf("%d blocking, %d warning rules from %s", blocking, warning, rules.Source())
	if configured != "" && rules.Source() == "embedded" {
		return warn("Guardrail", details+fmt.Sprintf(" (%s not found)", configured))
	}
	return ok("Guardrail", details)
}

func environmentDiagnostics(snapshot domain.EnvironmentSnapshot) []domain.HealthCheck {
	checks := []domain.HealthCheck{
		ok("Host", strings.TrimSpace(fmt.Sprintf("%s/%s %s", snapshot.OS, snapshot.Arch, snapshot.Release))),
	}
	if len(snapshot.AvailableTools) > 0 {
		checks = append(checks, ok("Tools", strings.Join(snapshot.AvailableTools, ", ")))
	} else {
		checks = append(checks, warn("Tools", "none of the probed tools were found on PATH"))
	}
	if snapshot.GitBranch != "" {
		checks = append(checks, ok("Git", "branch "+snapshot.GitBranch))
	}
	return checks
}

func (s *DoctorService) shellCheck() domain.HealthCheck {
	if s.Shell == "" {
		return warn("Shell", "no shell resolved")
	}
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(s.Shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", s.Shell, err))
	}
	return ok("Shell", path)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
