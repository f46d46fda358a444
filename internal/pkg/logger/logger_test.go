package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerSilentWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(false, &buf)
	log.Info("hello", map[string]interface{}{"k": "v"})
	log.Error("boom", errors.New("x"), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStdLoggerSortsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(true, &buf)
	log.Warn("audit write failed", map[string]interface{}{"path": "/tmp/a", "error": "denied"})
	out := buf.String()
	if !strings.Contains(out, "[WARN] audit write failed error=denied path=/tmp/a") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStdLoggerIncludesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(true, &buf)
	log.Error("provider failed", errors.New("quota"), nil)
	if !strings.Contains(buf.String(), "[ERROR] provider failed: quota") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
