// Package ui provides the visual styling for the Duit terminal app.
// Uses the Duit palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"duit/internal/home"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#F5F7FA")
	LightForeground = lipgloss.Color("#1A1A1A")
	LightPrimary    = lipgloss.Color("#007AFF") // iOS blue
	LightAccent     = lipgloss.Color("#2196F3")
	LightMuted      = lipgloss.Color("#666666")
	LightBorder     = lipgloss.Color("#E0E0E0")
	LightCard       = lipgloss.Color("#FFFFFF")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#1A1A1A")
	DarkForeground = lipgloss.Color("#F5F5F5")
	DarkPrimary    = lipgloss.Color("#2196F3")
	DarkAccent     = lipgloss.Color("#007AFF")
	DarkMuted      = lipgloss.Color("#CCCCCC")
	DarkBorder     = lipgloss.Color("#333333")
	DarkCard       = lipgloss.Color("#242424")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#4CAF50")
	Warning     = lipgloss.Color("#F57C00")
	Info        = lipgloss.Color("#1976D2")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// TerminalIsDark guesses the background from COLORFGBG ("fg;bg").
func TerminalIsDark() bool {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) != 2 {
		return false
	}
	bgIdx, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	// 0-6 and 8 (dark grey) are likely dark backgrounds
	return (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8
}

// ThemeFor returns the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
	Cursor         lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Bubble  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 3).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Background(theme.Border).
			Foreground(theme.Muted).
			Padding(0, 3),

		Option: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		OptionSelected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Bubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),
	}
}

// DefaultStyles returns styles for the detected terminal background
func DefaultStyles() Styles {
	return NewStyles(ThemeFor(TerminalIsDark()))
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		width = 40
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// RenderButton draws a button, greyed out when disabled.
func (s Styles) RenderButton(label string, enabled bool) string {
	if !enabled {
		return s.ButtonDisabled.Render(label)
	}
	return s.Button.Render(label)
}

// RenderOption draws one selectable row. focused marks the cursor row.
func (s Styles) RenderOption(label, description string, selected, focused bool) string {
	cursor := "  "
	if focused {
		cursor = s.Cursor.Render("> ")
	}
	text := label
	if description != "" {
		text += "\n" + s.Muted.Render(description)
	}
	if selected {
		return cursor + s.OptionSelected.Render(text)
	}
	return cursor + s.Option.Render(text)
}

// UsageColor maps a usage level to the bar color.
func UsageColor(level home.UsageLevel) lipgloss.Color {
	switch level {
	case home.UsageCritical:
		return Destructive
	case home.UsageWarning:
		return Warning
	default:
		return Success
	}
}

// Logo returns the Duit wordmark
func Logo(s Styles) string {
	logo := `
  ___        _ _
 |   \ _  _ (_) |_
 | |) | || || |  _|
 |___/ \_,_||_|\__|
`
	return s.Title.Render(logo)
}
