// Package tui provides the terminal user interface for funkychat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorUser      lipgloss.Color
	colorBot       lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// API key banner
	keyLoadedStyle  lipgloss.Style
	keyMissingStyle lipgloss.Style

	// Sidebar
	sidebarStyle        lipgloss.Style
	sidebarSectionStyle lipgloss.Style
	sidebarItemStyle    lipgloss.Style
	sidebarActiveStyle  lipgloss.Style
	onlineStyle         lipgloss.Style
	offlineStyle        lipgloss.Style
	unknownStyle        lipgloss.Style
	tipStyle            lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	timestampStyle       lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style
)

// Gradient colors for the animated loading bar, taken from the funky palette
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#45B7D1"),
	lipgloss.Color("#96CEB4"),
	lipgloss.Color("#667eea"),
	lipgloss.Color("#764ba2"),
	lipgloss.Color("#43e97b"),
	lipgloss.Color("#38f9d7"),
	lipgloss.Color("#fa709a"),
	lipgloss.Color("#fee140"),
}

func init() {
	ApplyTheme(render.FunkyTheme)
}

// ApplyTheme refreshes all styles from theme
func ApplyTheme(theme render.TUITheme) {
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorUser = theme.UserBubble
	colorBot = theme.BotBubble
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	keyLoadedStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	keyMissingStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true)

	sidebarStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	sidebarSectionStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		MarginTop(1)

	sidebarItemStyle = lipgloss.NewStyle().
		Foreground(colorText).
		PaddingLeft(1)

	sidebarActiveStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		PaddingLeft(1)

	onlineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#43e97b"))

	offlineStyle = lipgloss.NewStyle().
		Foreground(colorError)

	unknownStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	tipStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		PaddingLeft(1)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorUser).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBot).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorBot).
		Bold(true)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Align(lipgloss.Center)
}

// statusStyle picks the style for a status label
func statusStyle(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusOnline:
		return onlineStyle
	case models.StatusOffline:
		return offlineStyle
	default:
		return unknownStyle
	}
}
