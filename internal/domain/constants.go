package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the permission for the ~/.nova directory (rwx------)
	DirectoryPermissions = 0o700
	// SecureFilePermissions is the permission for config, history and audit files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout is the wall-clock limit for an executed command
	DefaultCommandTimeout = 30 * time.Second
	// DefaultHTTPClientTimeout is the timeout for provider HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Limit constants
const (
	// MaxCommandLength is the longest sanitized command accepted from the provider
	MaxCommandLength = 500
	// MaxCommandLines is the most non-blank lines a sanitized command may span
	MaxCommandLines = 3
	// MaxAttachmentBytes caps each attached file
	MaxAttachmentBytes = 1 << 20
	// MaxCaptureBytes caps each buffered output stream of an executed command
	MaxCaptureBytes = 10 << 20
)

// History constants
const (
	// DefaultHistoryTurns is the size of the replayed conversation window
	DefaultHistoryTurns = 10
	// DefaultAuditLines is the number of audit lines shown by default
	DefaultAuditLines = 20
	// DefaultAuditSearchLimit is the default number of audit search results
	DefaultAuditSearchLimit = 50
)

// Time formats
const (
	// AuditTimestampFormat renders UTC timestamps with millisecond precision
	AuditTimestampFormat = "2006-01-02T15:04:05.000Z"
)

// Theme names
const (
	ThemeDefault = "default"
	ThemeDracula = "dracula"
	ThemeOcean   = "ocean"
	ThemeMonokai = "monokai"
	ThemeHacker  = "hacker"
)

// ThemeNames lists the installed palettes in display order.
var ThemeNames = []string{ThemeDefault, ThemeDracula, ThemeOcean, ThemeMonokai, ThemeHacker}

// IsKnownTheme reports whether name is an installed palette.
func IsKnownTheme(name string) bool {
	for _, candidate := range ThemeNames {
		if candidate == name {
			return true
		}
	}
	return false
}
