package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/security"
)

type stubIndex struct {
	stats domain.AuditStats
	err   error
}

func (s stubIndex) Search(string, int) ([]domain.AuditEntry, error) { return nil, s.err }
func (s stubIndex) CountByStatus() (domain.AuditStats, error)       { return s.stats, s.err }

func findCheck(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q missing from %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestDoctorServiceReportsEveryCheck(t *testing.T) {
	classifier, err := security.NewClassifier("")
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	svc := &DoctorService{
		ConfigProvider:  stubConfigProvider{cfg: domain.Config{ConfigFormatVersion: "1", APIKey: "AIzaSyExampleKey1234"}},
		ProviderFactory: stubProviderFactory{provider: &stubProvider{}},
		Rules:           classifier,
		Environment:     stubEnvironment{},
		AuditIndex:      stubIndex{stats: domain.AuditStats{Success: 2, Failed: 1}},
		Clipboard:       &stubClipboard{enabled: false},
		ConfigPath:      "/home/u/.nova/config.yaml",
		Shell:           "bash",
		LookPath:        func(string) (string, error) { return "/bin/bash", nil },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Healthy() {
		t.Fatalf("report should be healthy: %+v", report.Checks)
	}

	if got := findCheck(t, report, "API key"); got.Status != domain.HealthOK || got.Details != "AIzaSy••••••••••••1234 (from config file)" {
		t.Fatalf("API key check = %+v", got)
	}
	if got := findCheck(t, report, "Provider"); got.Details != "stub, model "+domain.DefaultModel {
		t.Fatalf("Provider check = %+v", got)
	}
	if got := findCheck(t, report, "Guardrail"); got.Status != domain.HealthOK {
		t.Fatalf("Guardrail check = %+v", got)
	}
	if got := findCheck(t, report, "Audit log"); got.Details != "3 entries recorded" {
		t.Fatalf("Audit log check = %+v", got)
	}
	if got := findCheck(t, report, "Clipboard"); got.Status != domain.HealthWarn {
		t.Fatalf("Clipboard check = %+v", got)
	}
	if got := findCheck(t, report, "Shell"); got.Details != "/bin/bash" {
		t.Fatalf("Shell check = %+v", got)
	}
}

func TestDoctorServiceFlagsProblems(t *testing.T) {
	classifier, err := security.NewClassifier("")
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	cfg := domain.Config{Security: domain.SecuritySettings{RulesFile: "/nonexistent/rules.yaml"}}
	svc := &DoctorService{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Rules:          classifier,
		AuditIndex:     stubIndex{err: errors.New("database is locked")},
		Shell:          "zsh",
		LookPath:       func(string) (string, error) { return "", errors.New("not found") },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Healthy() {
		t.Fatal("missing shell should make the report unhealthy")
	}
	if got := findCheck(t, report, "API key"); got.Status != domain.HealthWarn {
		t.Fatalf("API key check = %+v", got)
	}
	if got := findCheck(t, report, "Guardrail"); got.Status != domain.HealthWarn {
		t.Fatalf("Guardrail check = %+v", got)
	}
	if got := findCheck(t, report, "Audit log"); got.Status != domain.HealthWarn {
		t.Fatalf("Audit log check = %+v", got)
	}
}

func TestDoctorServiceStopsOnConfigError(t *testing.T) {
	svc := &DoctorService{ConfigProvider: stubConfigProvider{err: errors.New("invalid config: unknown theme")}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("report = %+v", report.Checks)
	}
}
