package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown theme names
const (
	ThemeFunky      = "funky"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeDracula    = "dracula"
	ThemeTokyoNight = "tokyonight"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown themes that need no style file.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeFunky, Description: "Dark theme with coral and teal headings (default)"},
		{Name: ThemeDark, Description: "Glamour dark"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// BuiltinStyle returns the style config for a named theme.
// Returns false for anything else, which is treated as a style path.
func BuiltinStyle(name string) (ansi.StyleConfig, bool) {
	switch name {
	case ThemeFunky:
		return funkyStyle(), true
	case ThemeDark:
		return styles.DarkStyleConfig, true
	case ThemeLight:
		return styles.LightStyleConfig, true
	case ThemeDracula:
		return styles.DraculaStyleConfig, true
	case ThemeTokyoNight, "tokyo-night":
		return styles.TokyoNightStyleConfig, true
	case ThemeNoTTY:
		return styles.NoTTYStyleConfig, true
	case ThemeASCII:
		return styles.ASCIIStyleConfig, true
	default:
		return ansi.StyleConfig{}, false
	}
}

// funkyStyle is glamour's dark style with the chat's palette on headings,
// links and inline code. Only pointers are replaced, never written through.
func funkyStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.H1.Color = strPtr("#FFFFFF")
	cfg.H1.BackgroundColor = strPtr("#FF6B6B")
	cfg.H2.Color = strPtr("#4ECDC4")
	cfg.H3.Color = strPtr("#45B7D1")
	cfg.H4.Color = strPtr("#96CEB4")
	cfg.Link.Color = strPtr("#45B7D1")
	cfg.LinkText.Color = strPtr("#4ECDC4")
	cfg.Code.Color = strPtr("#fee140")
	cfg.Strong.Color = strPtr("#fa709a")

	return cfg
}

func strPtr(s string) *string {
	return &s
}
