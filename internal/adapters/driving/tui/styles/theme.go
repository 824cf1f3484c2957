// Package styles holds the lipgloss palette and styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// Palette is the set of colours the TUI draws with. The three condition
// colours double as the success/warning/error colours.
type Palette struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Surface   lipgloss.Color
	Edge      lipgloss.Color

	Good    lipgloss.Color
	Fair    lipgloss.Color
	Replace lipgloss.Color
}

// DefaultPalette is a dark palette with an orange accent.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#F97316"),
		Highlight: lipgloss.Color("#38BDF8"),
		Text:      lipgloss.Color("#E5E7EB"),
		Dim:       lipgloss.Color("#6B7280"),
		Surface:   lipgloss.Color("#111827"),
		Edge:      lipgloss.Color("#374151"),
		Good:      lipgloss.Color("#22C55E"),
		Fair:      lipgloss.Color("#EAB308"),
		Replace:   lipgloss.Color("#EF4444"),
	}
}

// Styles are the pre-built styles the views render with.
type Styles struct {
	palette *Palette

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Category   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles from p. A nil palette uses DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Edge)

	return &Styles{
		palette:    p,
		Title:      fg(p.Accent).Bold(true),
		Subtitle:   fg(p.Highlight).Bold(true),
		Category:   fg(p.Highlight).Bold(true).Underline(true),
		Normal:     fg(p.Text),
		Muted:      fg(p.Dim),
		Selected:   fg(p.Surface).Background(p.Accent).Bold(true),
		Error:      fg(p.Replace),
		Success:    fg(p.Good),
		Warning:    fg(p.Fair),
		InputField: rounded.Padding(0, 1),
		StatusBar:  fg(p.Dim).Background(p.Surface).Padding(0, 1),
		Help:       fg(p.Dim).Italic(true),
		Border:     rounded,
	}
}

// DefaultStyles returns styles built from the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Condition returns the style for a condition rating. Unrated items
// are muted.
func (s *Styles) Condition(c domain.Condition) lipgloss.Style {
	switch c {
	case domain.ConditionGood:
		return s.Success
	case domain.ConditionFair:
		return s.Warning
	case domain.ConditionNeedsReplacement:
		return s.Error.Bold(true)
	default:
		return s.Muted
	}
}
