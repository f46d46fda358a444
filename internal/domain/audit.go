package domain

import "time"

// AuditStatus is the outcome recorded for an execution attempt.
type AuditStatus string

const (
	AuditSuccess   AuditStatus = "SUCCESS"
	AuditFailed    AuditStatus = "FAILED"
	AuditCancelled AuditStatus = "CANCELLED"
)

// AuditEntry is one immutable record of a prompt/command/outcome triple.
type AuditEntry struct {
	Timestamp time.Time
	Status    AuditStatus
	Prompt    string
	Command   string
	Error     string
	SessionID string
}

// AuditStats counts recorded entries per status.
type AuditStats struct {
	Success   int
	Failed    int
	Cancelled int
}

// Total returns the number of entries across all statuses.
func (s AuditStats) Total() int {
	return s.Success + s.Failed + s.Cancelled
}

// Add increments the counter for status by n. Unknown statuses are ignored.
func (s *AuditStats) Add(status AuditStatus, n int) {
	switch status {
	case AuditSuccess:
		s.Success += n
	case AuditFailed:
		s.Failed += n
	case AuditCancelled:
		s.Cancelled += n
	}
}
