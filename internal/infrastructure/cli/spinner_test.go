package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, lipgloss.NewStyle(), true)

	s.Start("Nova is thinking...")
	s.Start("ignored while running")
	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop()

	text := out.String()
	if !strings.Contains(text, "Nova is thinking...") {
		t.Fatalf("spinner output %q lacks label", text)
	}
	if strings.Contains(text, "ignored while running") {
		t.Fatalf("second Start should be a no-op: %q", text)
	}
	if !strings.HasSuffix(text, "\r\033[K") {
		t.Fatalf("spinner should clear its line on stop: %q", text)
	}

	// restartable after Stop
	s.Start("again")
	s.Stop()
	if !strings.Contains(out.String(), "again") {
		t.Fatal("spinner did not restart")
	}
}

func TestSpinnerDisabledWritesNothing(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, lipgloss.NewStyle(), false)

	s.Start("Nova is thinking...")
	s.Stop()

	if out.String() != "" {
		t.Fatalf("disabled spinner wrote %q", out.String())
	}
}
