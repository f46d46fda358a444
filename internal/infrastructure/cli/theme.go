package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// Palette holds the colors of one named theme.
type Palette struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color
	// Syntax names the chroma style used for the command box.
	Syntax string
}

var palettes = map[string]Palette{
	domain.ThemeDefault: {Accent: "#7D56F4", Success: "#04B575", Warning: "#F5A623", Danger: "#FF5F87", Muted: "#8A8A8A", Syntax: "monokai"},
	domain.ThemeDracula: {Accent: "#BD93F9", Success: "#50FA7B", Warning: "#FFB86C", Danger: "#FF5555", Muted: "#6272A4", Syntax: "dracula"},
	domain.ThemeOcean:   {Accent: "#5FAFFF", Success: "#5FD7AF", Warning: "#FFD75F", Danger: "#FF5F5F", Muted: "#5F87AF", Syntax: "nord"},
	domain.ThemeMonokai: {Accent: "#66D9EF", Success: "#A6E22E", Warning: "#E6DB74", Danger: "#F92672", Muted: "#75715E", Syntax: "monokai"},
	domain.ThemeHacker:  {Accent: "#00FF00", Success: "#00FF00", Warning: "#AFFF00", Danger: "#FF0000", Muted: "#008700", Syntax: "vim"},
}

// PaletteFor returns the palette of name, falling back to the default theme.
func PaletteFor(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[domain.ThemeDefault]
}

// Theme is the set of styles the renderer draws with.
type Theme struct {
	Name    string
	Palette Palette

	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Muted   lipgloss.Style

	SafeBadge    lipgloss.Style
	CautionBadge lipgloss.Style
	Box          lipgloss.Style
	DangerBox    lipgloss.Style
}

// NewTheme builds the styles of name for output written to w with the given profile.
func NewTheme(name string, w io.Writer, profile termenv.Profile) Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	p := PaletteFor(name)

	badge := r.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1A1A1A"))
	return Theme{
		Name:    name,
		Palette: p,

		Accent:  r.NewStyle().Foreground(p.Accent).Bold(true),
		Success: r.NewStyle().Foreground(p.Success),
		Warning: r.NewStyle().Foreground(p.Warning).Bold(true),
		Danger:  r.NewStyle().Foreground(p.Danger).Bold(true),
		Muted:   r.NewStyle().Foreground(p.Muted),

		SafeBadge:    badge.Background(p.Success),
		CautionBadge: badge.Background(p.Warning),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		DangerBox: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Danger).
			Padding(0, 1),
	}
}
