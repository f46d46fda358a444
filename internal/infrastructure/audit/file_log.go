package audit

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// ReadErrorLine is returned by ReadRecent when the log exists but cannot be read.
const ReadErrorLine = "[WARN] Error reading log file."

// FileLog appends pipe-delimited audit lines to ~/.nova/audit.log.
type FileLog struct {
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// NewFileLog creates a log at path; an empty path selects ~/.nova/audit.log.
func NewFileLog(path string, logger ports.Logger) *FileLog {
	if path == "" {
		path = filesystem.NovaPath("audit.log")
	}
	return &FileLog{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *FileLog) Path() string {
	return f.path
}

// Append implements ports.AuditLog. Failures are logged and swallowed.
func (f *FileLog) Append(entry domain.AuditEntry) {
	if err := f.Write(entry); err != nil && f.logger != nil {
		f.logger.Debug("audit append failed", map[string]interface{}{"path": f.path, "error": err.Error()})
	}
}

// Write appends one formatted line and reports any I/O failure.
func (f *FileLog) Write(entry domain.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := filesystem.EnsurePrivateDir(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()
	_ = file.Chmod(domain.SecureFilePermissions)

	if _, err := file.WriteString(FormatLine(entry) + "\n"); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// ReadRecent implements ports.AuditLog: the last limit lines, oldest first.
func (f *FileLog) ReadRecent(limit int) []string {
	if limit <= 0 {
		limit = domain.DefaultAuditLines
	}
	lines, err := f.lines()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}
		}
		return []string{ReadErrorLine}
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}

// Entries parses every well-formed line in the log.
func (f *FileLog) Entries() ([]domain.AuditEntry, error) {
	lines, err := f.lines()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]domain.AuditEntry, 0, len(lines))
	for _, line := range lines {
		if entry, ok := ParseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *FileLog) lines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// FormatLine renders an entry as
// [ts] | [STATUS] | Prompt: "..." | Command: "..." [| Error: "..."].
func FormatLine(entry domain.AuditEntry) string {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] | [%s] | Prompt: %s | Command: %s",
		ts.UTC().Format(domain.AuditTimestampFormat),
		entry.Status,
		quote(entry.Prompt),
		quote(entry.Command),
	)
	if entry.Error != "" {
		fmt.Fprintf(&b, " | Error: %s", quote(entry.Error))
	}
	return b.String()
}

// ParseLine reverses FormatLine. Flattened newlines are not restored.
func ParseLine(line string) (domain.AuditEntry, bool) {
	var entry domain.AuditEntry
	rest, ok := bracketed(line, func(v string) error {
		ts, err := time.Parse(domain.AuditTimestampFormat, v)
		entry.Timestamp = ts
		return err
	})
	if !ok {
		return domain.AuditEntry{}, false
	}
	rest, ok = cutPrefix(rest, " | ")
	if !ok {
		return domain.AuditEntry{}, false
	}
	rest, ok = bracketed(rest, func(v string) error {
		entry.Status = domain.AuditStatus(v)
		return nil
	})
	if !ok {
		return domain.AuditEntry{}, false
	}
	if rest, ok = field(rest, " | Prompt: ", &entry.Prompt); !ok {
		return domain.AuditEntry{}, false
	}
	if rest, ok = field(rest, " | Command: ", &entry.Command); !ok {
		return domain.AuditEntry{}, false
	}
	if rest != "" {
		if rest, ok = field(rest, " | Error: ", &entry.Error); !ok || rest != "" {
			return domain.AuditEntry{}, false
		}
	}
	return entry, true
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", " ", "\n", " ", "\r", " ")

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

func bracketed(s string, assign func(string) error) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return s, false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return s, false
	}
	if err := assign(s[1:end]); err != nil {
		return s, false
	}
	return s[end+1:], true
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// field reads a quoted value following label into dst.
func field(s, label string, dst *string) (string, bool) {
	s, ok := cutPrefix(s, label)
	if !ok || !strings.HasPrefix(s, `"`) {
		return s, false
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			*dst = b.String()
			return s[i+1:], true
		default:
			b.WriteByte(c)
		}
	}
	return s, false
}

var _ ports.AuditLog = (*FileLog)(nil)
