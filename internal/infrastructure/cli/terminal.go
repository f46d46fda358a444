package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// EnvNoColor disables styling when set to any value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

const defaultWidth = 80

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// colorProfile picks the styling depth for f. Pipes, redirects and NO_COLOR get plain text.
func colorProfile(f *os.File) termenv.Profile {
	if _, set := os.LookupEnv(EnvNoColor); set || !isTerminal(f) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}

// terminalWidth returns the column count of f, or 80 when unknown.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
