package audit

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

func TestFormatLine(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		entry domain.AuditEntry
		want  string
	}{
		{
			name:  "success",
			entry: domain.AuditEntry{Timestamp: ts, Status: domain.AuditSuccess, Prompt: "list files", Command: "ls -la"},
			want:  `[2026-01-02T15:04:05.000Z] | [SUCCESS] | Prompt: "list files" | Command: "ls -la"`,
		},
		{
			name:  "failure with error",
			entry: domain.AuditEntry{Timestamp: ts, Status: domain.AuditFailed, Prompt: "p", Command: "false", Error: "Command failed (exit code 1):\nboom"},
			want:  `[2026-01-02T15:04:05.000Z] | [FAILED] | Prompt: "p" | Command: "false" | Error: "Command failed (exit code 1): boom"`,
		},
		{
			name:  "quotes escaped",
			entry: domain.AuditEntry{Timestamp: ts, Status: domain.AuditCancelled, Prompt: `say "hi"`, Command: `echo "hi"`},
			want:  `[2026-01-02T15:04:05.000Z] | [CANCELLED] | Prompt: "say \"hi\"" | Command: "echo \"hi\""`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatLine(tt.entry))
		})
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	entry := domain.AuditEntry{
		Timestamp: time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC),
		Status:    domain.AuditFailed,
		Prompt:    `find "big" files | sort`,
		Command:   `du -ah . | sort -rh | head -n 5 \ tail`,
		Error:     "Command timed out after 30 seconds.",
	}

	parsed, ok := ParseLine(FormatLine(entry))
	require.True(t, ok)
	require.Equal(t, entry, parsed)
}

func TestParseLineRejectsGarbage(t *testing.T) {
	for _, line := range []string{
		"",
		"hello world",
		"[not-a-time] | [SUCCESS] | Prompt: \"a\" | Command: \"b\"",
		`[2026-01-02T15:04:05.000Z] | [SUCCESS] | Prompt: "unterminated`,
	} {
		_, ok := ParseLine(line)
		require.False(t, ok, line)
	}
}

func TestFileLogAppendAndReadRecent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".nova")
	log := NewFileLog(filepath.Join(dir, "audit.log"), nil)

	for i := 0; i < 5; i++ {
		log.Append(domain.AuditEntry{Status: domain.AuditSuccess, Prompt: "p", Command: "echo " + string(rune('a'+i))})
	}

	lines := log.ReadRecent(3)
	require.Len(t, lines, 3)
	require.True(t, strings.HasSuffix(lines[0], `Command: "echo c"`))
	require.True(t, strings.HasSuffix(lines[2], `Command: "echo e"`))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 5)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(log.Path())
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
	}
}

func TestFileLogReadRecentDefaultsAndMissingFile(t *testing.T) {
	log := NewFileLog(filepath.Join(t.TempDir(), "audit.log"), nil)
	require.Empty(t, log.ReadRecent(0))

	for i := 0; i < domain.DefaultAuditLines+5; i++ {
		log.Append(domain.AuditEntry{Status: domain.AuditSuccess, Command: "ls"})
	}
	require.Len(t, log.ReadRecent(0), domain.DefaultAuditLines)
}

func TestFileLogReadRecentReportsReadError(t *testing.T) {
	path := t.TempDir()
	log := NewFileLog(path, nil)

	require.Equal(t, []string{ReadErrorLine}, log.ReadRecent(10))
}

func TestFileLogAppendSwallowsErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	log := NewFileLog(filepath.Join(blocker, "audit.log"), nil)

	log.Append(domain.AuditEntry{Status: domain.AuditFailed, Command: "ls"})
	require.Error(t, log.Write(domain.AuditEntry{Status: domain.AuditFailed, Command: "ls"}))
}
