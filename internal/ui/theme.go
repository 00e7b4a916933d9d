package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, checkbox symbols and the frame border.
// Renderers pull from Current().
type Theme struct {
	Name string

	Title, Muted, Accent     lipgloss.Style
	Success, Pending, Error  lipgloss.Style
	Selected, Done, Help     lipgloss.Style
	ActiveTab, InactiveTab   lipgloss.Style
	BoxChecked, BoxUnchecked string

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor
}

// ThemeNames lists the built-in themes. The first one is the default.
var ThemeNames = []string{"classic", "neon", "mono"}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		ActiveTab:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1),
		InactiveTab:  lipgloss.NewStyle().Faint(true).Padding(0, 1),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.ActiveTab = t.ActiveTab.Background(lipgloss.Color("13"))
	t.BoxChecked, t.BoxUnchecked = "◼", "◻"
	t.BorderColor = lipgloss.Color("13")
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain,
		Success: plain, Pending: plain, Error: plain,
		Selected:     plain.Reverse(true),
		Done:         plain,
		Help:         plain,
		ActiveTab:    plain.Padding(0, 1).Reverse(true),
		InactiveTab:  plain.Padding(0, 1),
		BoxChecked:   "[x]",
		BoxUnchecked: "[ ]",
		Border:       lipgloss.NormalBorder(),
		BorderColor:  lipgloss.NoColor{},
	}
}

// ThemeByName looks a theme up, ignoring case.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic":
		return classic(), nil
	case "neon":
		return neon(), nil
	case "mono":
		return mono(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames, ", "))
}

// SetTheme switches the current theme.
func SetTheme(name string) error {
	t, err := ThemeByName(name)
	if err != nil {
		return err
	}
	current = t
	return nil
}

// Current returns the active theme.
func Current() Theme { return current }
