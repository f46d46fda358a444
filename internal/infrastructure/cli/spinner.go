package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Spinner displays an animated spinner during long operations
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	style    lipgloss.Style
	enabled  bool

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner creates a spinner drawing bubbles' dot frames on w.
// A disabled spinner is a no-op, used when w is not a terminal.
func NewSpinner(w io.Writer, style lipgloss.Style, enabled bool) *Spinner {
	frames := spinner.Dot
	return &Spinner{
		frames:   frames.Frames,
		interval: frames.FPS,
		writer:   w,
		style:    style,
		enabled:  enabled && w != nil,
	}
}

// Start begins the spinner animation. Calling Start while running is a no-op.
func (s *Spinner) Start(label string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.spin(label, s.stopChan)
}

func (s *Spinner) spin(label string, stop <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	idx := 0
	for {
		fmt.Fprintf(s.writer, "\r%s %s", s.style.Render(s.frames[idx%len(s.frames)]), label)
		idx++
		select {
		case <-stop:
			// Clear the spinner line
			fmt.Fprint(s.writer, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and waits for the line to be cleared. Safe to call repeatedly.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

var _ ports.Spinner = (*Spinner)(nil)
