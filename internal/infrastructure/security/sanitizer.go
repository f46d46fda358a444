package security

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

const fence = "```"

var (
	// C0 controls except tab and newline, DEL, C1 controls, zero-width and bidi overrides.
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B-\x1F\x7F\x{80}-\x{9F}\x{200B}-\x{200F}\x{202A}-\x{202E}\x{2066}-\x{2069}\x{FEFF}]`)
	languageTag  = regexp.MustCompile(`^[\w+.-]*$`)
)

// Sanitizer implements ports.Sanitizer.
type Sanitizer struct {
	maxLength int
	maxLines  int
}

// NewSanitizer builds a sanitizer with the standard limits.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		maxLength: domain.MaxCommandLength,
		maxLines:  domain.MaxCommandLines,
	}
}

// Sanitize implements ports.Sanitizer.
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	cleaned := Clean(raw)

	if n := len([]rune(cleaned)); n > s.maxLength {
		return "", domain.Rejected("command is %d characters long (limit %d)", n, s.maxLength)
	}
	if n := countNonBlankLines(cleaned); n > s.maxLines {
		return "", domain.Rejected("command spans %d lines (limit %d); steps must be joined with && or ;", n, s.maxLines)
	}
	if cleaned == "" {
		return "", domain.Rejected("command is empty")
	}
	return cleaned, nil
}

// Clean drops control characters other than newline and tab, folds
// look-alike characters with NFKC, removes code fences at line boundaries
// and trims the result.
func Clean(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\r\n", "\n")
	cleaned = controlChars.ReplaceAllString(cleaned, "")
	cleaned = norm.NFKC.String(cleaned)

	lines := strings.Split(cleaned, "\n")
	kept := lines[:0]
	for _, line := range lines {
		stripped, drop := stripFence(line)
		if drop {
			continue
		}
		kept = append(kept, stripped)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// stripFence removes fence delimiters from the start and end of a line.
// A line holding only an opening fence and a language tag is dropped.
func stripFence(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fence) && !strings.HasSuffix(trimmed, fence) {
		return line, false
	}
	opened := false
	for strings.HasPrefix(trimmed, fence) {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, fence))
		opened = true
	}
	if opened && languageTag.MatchString(trimmed) {
		return "", true
	}
	for strings.HasSuffix(trimmed, fence) {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, fence))
	}
	if trimmed == "" {
		return "", true
	}
	return trimmed, false
}

func countNonBlankLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

var _ ports.Sanitizer = (*Sanitizer)(nil)
