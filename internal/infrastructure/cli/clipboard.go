package cli

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Clipboard implements ports.Clipboard with the platform clipboard.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Enabled reports whether a clipboard utility is available on this host.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
