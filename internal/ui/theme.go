package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and box borders.
// All render helpers pull from the current theme.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymOK, SymFail           string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var (
	mu      sync.RWMutex
	current = themeFor("classic")
)

// SetTheme switches the current theme. Unknown names fall back to classic.
func SetTheme(name string) {
	t := themeFor(name)
	mu.Lock()
	current = t
	mu.Unlock()
}

// Current returns the active theme.
func Current() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func themeFor(name string) Theme {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:     "neon",
			Title:    base.Bold(true).Foreground(lipgloss.Color("201")),
			Muted:    base.Faint(true),
			Accent:   base.Foreground(lipgloss.Color("51")),
			Success:  base.Foreground(lipgloss.Color("46")),
			Error:    base.Foreground(lipgloss.Color("196")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("226")),
			Selected: base.Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("201")),
			Done:     base.Faint(true).Strikethrough(true),
			Help:     base.Foreground(lipgloss.Color("244")),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("201"),
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: base, Muted: base, Accent: base, Success: base, Error: base, Pending: base,
			Selected: base.Reverse(true),
			Done:     base,
			Help:     base,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default:
		return Theme{
			Name:     "classic",
			Title:    base.Bold(true),
			Muted:    base.Faint(true),
			Accent:   base.Foreground(lipgloss.Color("12")),
			Success:  base.Foreground(lipgloss.Color("42")),
			Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("214")),
			Selected: base.Bold(true).Reverse(true),
			Done:     base.Faint(true).Strikethrough(true),
			Help:     base.Faint(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymOK: "✔", SymFail: "✖",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
