package audit

import (
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Fanout writes every entry to the flat file and, when available, the SQLite mirror.
// Queries use the mirror and fall back to scanning the file.
type Fanout struct {
	file   *FileLog
	mirror *Mirror
	logger ports.Logger
}

// NewFanout combines file and mirror. mirror may be nil.
func NewFanout(file *FileLog, mirror *Mirror, logger ports.Logger) *Fanout {
	return &Fanout{file: file, mirror: mirror, logger: logger}
}

// Append implements ports.AuditLog.
func (f *Fanout) Append(entry domain.AuditEntry) {
	f.file.Append(entry)
	if f.mirror == nil {
		return
	}
	if err := f.mirror.Insert(entry); err != nil && f.logger != nil {
		f.logger.Debug("audit mirror insert failed", map[string]interface{}{"error": err.Error()})
	}
}

// ReadRecent implements ports.AuditLog using the flat file.
func (f *Fanout) ReadRecent(limit int) []string {
	return f.file.ReadRecent(limit)
}

// Search implements ports.AuditIndex.
func (f *Fanout) Search(term string, limit int) ([]domain.AuditEntry, error) {
	if f.mirror != nil {
		return f.mirror.Search(term, limit)
	}
	entries, err := f.file.Entries()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var matches []domain.AuditEntry
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if needle == "" || containsFold(e.Prompt, needle) || containsFold(e.Command, needle) || containsFold(e.Error, needle) {
			matches = append(matches, e)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// CountByStatus implements ports.AuditIndex.
func (f *Fanout) CountByStatus() (domain.AuditStats, error) {
	if f.mirror != nil {
		return f.mirror.CountByStatus()
	}
	entries, err := f.file.Entries()
	if err != nil {
		return domain.AuditStats{}, err
	}
	var stats domain.AuditStats
	for _, e := range entries {
		stats.Add(e.Status, 1)
	}
	return stats, nil
}

// Path returns the flat log path shown by `nova audit`.
func (f *Fanout) Path() string {
	return f.file.Path()
}

// Close releases the mirror, if any.
func (f *Fanout) Close() error {
	if f.mirror == nil {
		return nil
	}
	return f.mirror.Close()
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

var (
	_ ports.AuditLog   = (*Fanout)(nil)
	_ ports.AuditIndex = (*Fanout)(nil)
)
