package audit

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Mirror indexes audit entries in a SQLite database for search and stats.
type Mirror struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewMirror creates (or opens) the audit database; an empty path selects ~/.nova/audit.db.
func NewMirror(path string) (*Mirror, error) {
	if path == "" {
		path = filesystem.NovaPath("audit.db")
	}
	if err := filesystem.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	db.SetMaxOpenConns(1)
	m := &Mirror{db: db, path: path}
	if err := m.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit db: %w", err)
	}
	return m, nil
}

func (m *Mirror) init() error {
	_, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS audit_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		timestamp TEXT,
		status TEXT,
		prompt TEXT,
		command TEXT,
		error TEXT
	);`)
	if err != nil {
		return err
	}
	_, err = m.db.Exec(`CREATE INDEX IF NOT EXISTS idx_audit_entries_status ON audit_entries(status);`)
	return err
}

// Insert records one entry.
func (m *Mirror) Insert(entry domain.AuditEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.db.Exec(`INSERT INTO audit_entries
		(session_id, timestamp, status, prompt, command, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		ts.UTC().Format(domain.AuditTimestampFormat),
		string(entry.Status),
		entry.Prompt,
		entry.Command,
		entry.Error,
	)
	return err
}

// Search returns entries whose prompt, command or error contain term, newest first.
func (m *Mirror) Search(term string, limit int) ([]domain.AuditEntry, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT session_id, timestamp, status, prompt, command, error FROM audit_entries")
	var args []interface{}
	if term != "" {
		like := "%" + term + "%"
		builder.WriteString(" WHERE prompt LIKE ? OR command LIKE ? OR error LIKE ?")
		args = append(args, like, like, like)
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var ts, status string
		if err := rows.Scan(&entry.SessionID, &ts, &status, &entry.Prompt, &entry.Command, &entry.Error); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.AuditTimestampFormat, ts); err == nil {
			entry.Timestamp = t
		}
		entry.Status = domain.AuditStatus(status)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountByStatus tallies entries per status.
func (m *Mirror) CountByStatus() (domain.AuditStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.db.Query("SELECT status, COUNT(*) FROM audit_entries GROUP BY status")
	if err != nil {
		return domain.AuditStats{}, err
	}
	defer rows.Close()

	var stats domain.AuditStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return domain.AuditStats{}, err
		}
		stats.Add(domain.AuditStatus(status), count)
	}
	return stats, rows.Err()
}

// Path returns the sqlite database path.
func (m *Mirror) Path() string {
	return m.path
}

// Close releases the database handle.
func (m *Mirror) Close() error {
	return m.db.Close()
}

var _ ports.AuditIndex = (*Mirror)(nil)
