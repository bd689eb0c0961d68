package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// UserBubble and BotBubble tint the speaker labels of the transcript
	UserBubble lipgloss.Color
	BotBubble  lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// FunkyTheme uses the gradient endpoints of the chat's original palette
	FunkyTheme = TUITheme{
		Name:        "funky",
		Description: "Funky - coral, teal and sunset accents",

		Background: lipgloss.Color("#1b1d2a"),
		Surface:    lipgloss.Color("#262a3d"),
		Border:     lipgloss.Color("#764ba2"),

		Primary:   lipgloss.Color("#FF6B6B"), // Coral
		Secondary: lipgloss.Color("#4ECDC4"), // Teal
		Accent:    lipgloss.Color("#45B7D1"), // Sky
		Warning:   lipgloss.Color("#fee140"), // Sunset yellow
		Error:     lipgloss.Color("#fa709a"), // Pink

		UserBubble: lipgloss.Color("#43e97b"),
		BotBubble:  lipgloss.Color("#fa709a"),

		Text:     lipgloss.Color("#f1f1f7"),
		TextDim:  lipgloss.Color("#8a8fb0"),
		TextMute: lipgloss.Color("#4a4f6a"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		UserBubble: lipgloss.Color("#9ece6a"),
		BotBubble:  lipgloss.Color("#bb9af7"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// DraculaTheme is based on the Dracula color palette
	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#8be9fd"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ff79c6"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		UserBubble: lipgloss.Color("#50fa7b"),
		BotBubble:  lipgloss.Color("#ff79c6"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// TUIThemeOrDefault returns the named theme, or FunkyTheme
func TUIThemeOrDefault(name string) TUITheme {
	if theme, ok := GetTUIThemeByName(name); ok {
		return theme
	}
	return FunkyTheme
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		FunkyTheme,
		TokyoNightTheme,
		DraculaTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
