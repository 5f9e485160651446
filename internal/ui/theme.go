package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Active                        lipgloss.Style

	BorderColor lipgloss.TerminalColor
	Border      lipgloss.Border

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

// ThemeByName returns a named theme; unknown names fall back to classic.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
			Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
			Active:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
			BorderColor:  lipgloss.Color("13"),
			Border:       lipgloss.RoundedBorder(),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain.Bold(true), Pending: plain,
			Selected:     plain.Reverse(true),
			Done:         plain,
			Active:       plain.Underline(true),
			BorderColor:  lipgloss.NoColor{},
			Border:       lipgloss.NormalBorder(),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Active:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")),
			BorderColor:  lipgloss.Color("8"),
			Border:       lipgloss.RoundedBorder(),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
		}
	}
}

// Box returns the checkbox glyph for a completion state.
func (t Theme) Box(done bool) string {
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}
