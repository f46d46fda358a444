package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Fixed wording of the blocked-command banner.
const (
	BlockedHeadline = "BLOCKED: Dangerous command detected!"
	BlockedFooter   = "Nova refused to execute this command for your safety."
	TruncatedNotice = "Output truncated; only the first 10 MB of each stream was kept."
)

// ReporterOptions configures a Reporter.
type ReporterOptions struct {
	Out   io.Writer
	Err   io.Writer
	Theme string
	// Profile selects the color depth; termenv.Ascii renders plain text.
	Profile termenv.Profile
	// Markdown enables glamour rendering of chat replies.
	Markdown bool
	// Streaming means command output was already shown live, so Output only reports truncation.
	Streaming bool
	Width     int
}

// Reporter renders orchestration progress with the active theme.
type Reporter struct {
	out       io.Writer
	err       io.Writer
	theme     Theme
	color     bool
	markdown  bool
	streaming bool
	width     int

	mdOnce sync.Once
	md     *glamour.TermRenderer
}

// NewReporter builds a reporter. Nil writers discard output.
func NewReporter(opts ReporterOptions) *Reporter {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	return &Reporter{
		out:       opts.Out,
		err:       opts.Err,
		theme:     NewTheme(opts.Theme, opts.Out, opts.Profile),
		color:     opts.Profile != termenv.Ascii,
		markdown:  opts.Markdown,
		streaming: opts.Streaming,
		width:     opts.Width,
	}
}

// Theme exposes the active styles to commands that print their own output.
func (r *Reporter) Theme() Theme {
	return r.theme
}

// Message prints the assistant's reply.
func (r *Reporter) Message(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	label := r.theme.Accent.Render("✨ Nova:")
	if rendered, ok := r.renderMarkdown(text); ok {
		fmt.Fprintln(r.out, label)
		fmt.Fprintln(r.out, strings.TrimRight(rendered, "\n"))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", label, text)
}

// Command prints the tier badge and the command box.
func (r *Reporter) Command(command string, verdict domain.ValidationResult) {
	badge := r.theme.SafeBadge.Render("SAFE")
	if verdict.IsWarning() {
		badge = r.theme.CautionBadge.Render("CAUTION")
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, badge)
	fmt.Fprintln(r.out, r.commandBox(command))
}

// Blocked prints the refusal banner with the matched rule's reason.
func (r *Reporter) Blocked(verdict domain.ValidationResult) {
	body := strings.Join([]string{
		r.theme.Danger.Render("⛔ " + BlockedHeadline),
		"Reason: " + verdict.Reason,
		r.theme.Muted.Render(BlockedFooter),
	}, "\n")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.theme.DangerBox.Render(body))
}

func (r *Reporter) Warning(text string) {
	fmt.Fprintln(r.err, r.theme.Warning.Render("⚠ "+text))
}

func (r *Reporter) Info(text string) {
	fmt.Fprintln(r.out, r.theme.Muted.Render(text))
}

func (r *Reporter) Success(text string) {
	fmt.Fprintln(r.out, r.theme.Success.Render("✔ "+text))
}

func (r *Reporter) Failure(text string) {
	fmt.Fprintln(r.err, r.theme.Danger.Render("✖ "+text))
}

// Output echoes captured output unless it was already streamed.
func (r *Reporter) Output(outcome domain.ExecutionOutcome) {
	if !r.streaming {
		if outcome.Stdout != "" {
			fmt.Fprint(r.out, ensureNewline(outcome.Stdout))
		}
		if outcome.Stderr != "" {
			fmt.Fprint(r.err, r.theme.Muted.Render(strings.TrimRight(outcome.Stderr, "\n"))+"\n")
		}
	}
	if outcome.Truncated {
		r.Info(TruncatedNotice)
	}
}

// commandBox frames "$ command", wrapping at the terminal width.
func (r *Reporter) commandBox(command string) string {
	line := "$ " + command
	// border and padding take four columns
	maxInner := r.width - 4
	box := r.theme.Box
	if maxInner > 0 && runewidth.StringWidth(line) > maxInner {
		box = box.Width(maxInner + 2)
	}
	if r.color {
		line = r.theme.Muted.Render("$ ") + highlightShell(command, r.theme.Palette.Syntax)
	}
	return box.Render(line)
}

func (r *Reporter) renderMarkdown(text string) (string, bool) {
	if !r.markdown {
		return "", false
	}
	r.mdOnce.Do(func() {
		wrap := r.width
		if wrap > 100 {
			wrap = 100
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			r.md = md
		}
	})
	if r.md == nil {
		return "", false
	}
	rendered, err := r.md.Render(text)
	if err != nil {
		return "", false
	}
	return rendered, true
}

// highlightShell colors command with the bash lexer; any failure returns it unchanged.
func highlightShell(command, styleName string) string {
	lexer := lexers.Get("bash")
	if lexer == nil {
		return command
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, command)
	if err != nil {
		return command
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return command
	}
	return strings.TrimRight(buf.String(), "\n")
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

var _ ports.Reporter = (*Reporter)(nil)
