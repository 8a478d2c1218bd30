// Package ui provides the visual styling for the 다왕이 terminal client.
// Colors follow the university's red brand palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dawang/internal/emotion"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#fbf8f3") // warm white
	LightForeground = lipgloss.Color("#2b2b2b") // charcoal
	LightPrimary    = lipgloss.Color("#c8102e") // CBNU red
	LightAccent     = lipgloss.Color("#c8102e")
	LightMuted      = lipgloss.Color("#8a8f98") // cool gray
	LightBorder     = lipgloss.Color("#e2e2e2")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#1b1b1d")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#ff5a6e") // lifted red for contrast
	DarkAccent     = lipgloss.Color("#ff5a6e")
	DarkMuted      = lipgloss.Color("#7d838c")
	DarkBorder     = lipgloss.Color("#33363b")
	DarkCard       = lipgloss.Color("#26272b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
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

// ThemeByName resolves the ui.theme setting. "auto" and unknown names detect.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; background 0-6 or 8 is dark.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("DAWANG_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Transcript
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	InfoCard   lipgloss.Style
	Bullet     lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Components
	Prompt   lipgloss.Style
	Spinner  lipgloss.Style
	Divider  lipgloss.Style
	Badge    lipgloss.Style
	Capsule  lipgloss.Style
	Disabled lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

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

		UserBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingRight(2).
			BorderRight(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Muted),

		BotBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		InfoCard: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Bullet: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Muted).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),

		Capsule: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Strikethrough(true),
	}
}

// Logo returns the start screen banner
func Logo(s Styles) string {
	logo := `
  ____   _    __        ___    _   _  ____ 
 |  _ \ / \   \ \      / / \  | \ | |/ ___|
 | | | / _ \   \ \ /\ / / _ \ |  \| | |  _ 
 | |_| / ___ \  \ V  V / ___ \| |\  | |_| |
 |____/_/   \_\  \_/\_/_/   \_\_| \_|\____|
`
	return s.Title.Render(logo)
}

var faces = map[emotion.Mood]string{
	emotion.Neutral:     "(•ᴥ•)",
	emotion.Joy:         "(≧ᴥ≦)",
	emotion.Embarrassed: "(•ᴥ•;)",
	emotion.Proud:       "(⌐■ᴥ■)",
}

// Mascot returns the mascot face for a mood. Unknown moods get the neutral face.
func Mascot(s Styles, mood emotion.Mood) string {
	face, ok := faces[mood]
	if !ok {
		face = faces[emotion.Neutral]
	}
	return s.Prompt.Render(face)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
