package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// It stays silent unless verbose, so diagnostics never mix with command output.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return NewWithWriter(verbose, os.Stderr)
}

// NewWithWriter creates a StdLogger writing to w.
func NewWithWriter(verbose bool, w io.Writer) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(w, "nova ", log.LstdFlags),
	}
}

// SetVerbose switches diagnostics on or off after construction, for flags parsed late.
func (l *StdLogger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.print("[DEBUG]", msg, nil, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.print("[INFO]", msg, nil, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.print("[WARN]", msg, nil, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.print("[ERROR]", msg, err, fields)
}

func (l *StdLogger) print(level, msg string, err error, fields map[string]interface{}) {
	if l == nil || !l.verbose {
		return
	}
	line := level + " " + msg
	if err != nil {
		line += ": " + err.Error()
	}
	if rendered := formatFields(fields); rendered != "" {
		line += " " + rendered
	}
	l.out.Println(line)
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return strings.Join(parts, " ")
}
