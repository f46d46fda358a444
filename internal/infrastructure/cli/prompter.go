package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/infrastructure/cli/helpers"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Prompter asks yes/no questions. On a terminal it uses liner so Ctrl+C
// aborts the line; otherwise it reads plain lines from in.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter over stdio. Line editing is enabled
// only when both stdin and stdout are terminals.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if in == nil {
		in = os.Stdin
		interactive = isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Confirm implements ports.Prompter. Aborted input returns domain.ErrInterrupted.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	if !p.interactive {
		return helpers.PromptForYesNo(p.out, p.in, question, defaultYes)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(helpers.YesNoPrompt(question, defaultYes))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, domain.ErrInterrupted
		}
		return false, fmt.Errorf("read answer: %w", err)
	}
	return helpers.ParseYesNo(answer, defaultYes), nil
}

var _ ports.Prompter = (*Prompter)(nil)
