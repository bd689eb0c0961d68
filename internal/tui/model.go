package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/funkychat/internal/chat"
	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/history"
	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/render"
	"github.com/diogo/funkychat/internal/session"
	"github.com/diogo/funkychat/internal/telemetry"
)

// Layout sizes in terminal cells
const (
	sidebarWidth      = 34
	minSidebarWidth   = 80 // below this terminal width the sidebar is hidden
	headerHeight      = 5
	inputHeight       = 5
	statusHeight      = 1
	minViewportHeight = 5
)

const helpText = "/clear  /switch [name]  /copy  /export [md|json]  /quit"

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// eventMsg feeds the outcome of an effect back into the store
	eventMsg struct {
		ev session.Event
	}
	probedMsg struct {
		results []session.StatusProbed
	}
	refreshTickMsg time.Time
)

// Options configures a chat Model
type Options struct {
	Context   context.Context
	Endpoints []models.Endpoint
	APIKey    config.APIKey
	Render    render.Options

	// RefreshInterval re-probes the backends periodically; zero disables it
	RefreshInterval time.Duration
	ExportDir       string
	Logger          *slog.Logger

	// Copy writes text to the system clipboard (default clipboard.WriteAll)
	Copy func(string) error
}

// Model represents the TUI state. The conversation itself lives in store.
type Model struct {
	ctx    context.Context
	store  *session.Store
	runner *chat.Runner
	opts   Options
	ports  map[models.BackendID]int
	logger *slog.Logger

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready          bool
	animationFrame int
	notice         string
	noticeIsError  bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model bound to store
func NewChatModel(store *session.Store, runner *chat.Runner, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = telemetry.Discard()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}
	if len(opts.Endpoints) == 0 {
		opts.Endpoints = models.DefaultEndpoints()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ports := make(map[models.BackendID]int, len(opts.Endpoints))
	for _, ep := range opts.Endpoints {
		ports[ep.ID] = ep.Port()
	}

	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = placeholderFor(store.ActiveBackend())
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	// Style the textarea
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctx:      opts.Context,
		store:    store,
		runner:   runner,
		opts:     opts,
		ports:    ports,
		logger:   opts.Logger,
		textarea: ta,
		spinner:  s,
	}
}

func placeholderFor(id models.BackendID) string {
	return fmt.Sprintf("Ask me anything using %s...", id)
}

// Init probes both backends and starts the refresh loop
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.probeCmd(),
		m.refreshTick(),
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

func (m Model) refreshTick() tea.Cmd {
	if m.opts.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// probeCmd probes every backend off the UI goroutine
func (m Model) probeCmd() tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return probedMsg{results: runner.ProbeAll(ctx)}
	}
}

// dispatchCmd performs effect and reports the resulting event
func (m Model) dispatchCmd(effect session.Effect) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		ev := runner.Execute(ctx, effect)
		if ev == nil {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		// Only quitting works while a reply is on its way
		if m.store.Pending() {
			return m, nil
		}
		m.notice = ""

		switch msg.String() {
		case "enter":
			return m.submit()
		case "tab":
			return m, m.apply(session.BackendSelected{Backend: m.store.ActiveBackend().Other()})
		case "ctrl+l":
			return m, m.apply(session.Cleared{})
		case "ctrl+y":
			m.copyLastReply()
			return m, nil
		case "ctrl+s":
			m.export(history.ExportFormatMarkdown)
			return m, nil
		}

	case eventMsg:
		cmds = append(cmds, m.apply(msg.ev))

	case probedMsg:
		for _, ev := range msg.results {
			m.store.Apply(ev)
		}

	case refreshTickMsg:
		cmds = append(cmds, m.probeCmd(), m.refreshTick())

	case spinner.TickMsg:
		if m.store.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.store.Pending() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.store.Pending() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// apply feeds ev to the store and returns the follow-up command: the
// dispatch for a submitted message, otherwise a status refresh
func (m *Model) apply(ev session.Event) tea.Cmd {
	effect := m.store.Apply(ev)
	m.textarea.Placeholder = placeholderFor(m.store.ActiveBackend())
	m.refreshViewport()

	if effect == nil {
		return m.probeCmd()
	}

	m.animationFrame = 0
	return tea.Batch(
		m.dispatchCmd(effect),
		m.spinner.Tick,
		animationTick(),
	)
}

// submit sends the input box contents or runs a slash command
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		if cmd, handled := m.runCommand(input); handled {
			m.textarea.Reset()
			return m, cmd
		}
	}

	m.textarea.Reset()
	return m, m.apply(session.Submitted{Text: input, At: m.runner.Now()})
}

// runCommand handles a slash command. Unrecognized commands are sent to
// the backend as ordinary messages.
func (m *Model) runCommand(input string) (tea.Cmd, bool) {
	fields := strings.Fields(input)

	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit":
		return tea.Quit, true

	case "/clear":
		return m.apply(session.Cleared{}), true

	case "/switch":
		target := m.store.ActiveBackend().Other()
		if len(fields) > 1 {
			name := strings.Join(fields[1:], " ")
			id, ok := models.BackendFromName(name)
			if !ok {
				m.setError(fmt.Sprintf("Unknown model %q. Choose LangChain or LlamaIndex.", name))
				return nil, true
			}
			target = id
		}
		return m.apply(session.BackendSelected{Backend: target}), true

	case "/copy":
		m.copyLastReply()
		return nil, true

	case "/export":
		format := history.ExportFormatMarkdown
		if len(fields) > 1 {
			f, err := history.ParseFormat(fields[1])
			if err != nil {
				m.setError(err.Error())
				return nil, true
			}
			format = f
		}
		m.export(format)
		return nil, true

	case "/help":
		m.setNotice(helpText)
		return nil, true
	}

	return nil, false
}

func (m *Model) copyLastReply() {
	reply, ok := m.store.Snapshot().LastReply()
	if !ok {
		m.setError("Nothing to copy yet")
		return
	}
	if err := m.opts.Copy(reply.Content); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setError("Copy failed: " + err.Error())
		return
	}
	m.setNotice("📋 Last reply copied to clipboard")
}

func (m *Model) export(format history.ExportFormat) {
	path, err := history.Write(m.opts.ExportDir, history.FromStore(m.store), format, m.runner.Now())
	if err != nil {
		m.logger.Warn("transcript export failed", "error", err)
		m.setError("Export failed: " + err.Error())
		return
	}
	m.logger.Info("transcript exported", "path", path, "format", string(format))
	m.setNotice("💾 Transcript saved to " + path)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeIsError = false
}

func (m *Model) setError(text string) {
	m.notice = text
	m.noticeIsError = true
}

func (m Model) showSidebar() bool {
	return m.width >= minSidebarWidth
}

// messagesWidth is the outer width of the transcript panel
func (m Model) messagesWidth() int {
	if m.showSidebar() {
		return m.width - sidebarWidth
	}
	return m.width
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - inputHeight - statusHeight - 2
	if vpHeight < minViewportHeight {
		vpHeight = minViewportHeight
	}

	// Panel border and padding take two cells per side
	vpWidth := m.messagesWidth() - 4

	// Initialize viewport on first size message
	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.KeyMap = viewportKeys()
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width - 6)
	m.refreshViewport()
}

// viewportKeys keeps letter keys for the input box
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// refreshViewport refreshes the viewport content with styled messages
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range m.store.Transcript() {
		if i > 0 {
			content.WriteString("\n")
		}

		stamp := timestampStyle.Render(" " + msg.Clock())

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("You:") + stamp
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render(fmt.Sprintf("🤖 %s:", msg.Backend)) + stamp

			var body string
			if strings.HasPrefix(msg.Content, "❌") {
				body = errorStyle.Render(msg.Content)
			} else {
				body = render.MarkdownOrPlain(msg.Content, m.opts.Render.WithWidth(bubbleWidth-4))
			}
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	snap := m.store.Snapshot()
	var sections []string

	sections = append(sections, m.renderHeader())

	// Transcript, with the sidebar on its left when there is room
	var messagesContent string
	if len(snap.Transcript) == 0 {
		messagesContent = m.renderWelcome(snap.Active)
	} else {
		messagesContent = m.viewport.View()
	}
	body := messagesAreaStyle.
		Width(m.messagesWidth() - 2).
		Height(m.viewport.Height).
		Render(messagesContent)
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(snap), body)
	}
	sections = append(sections, body)

	var inputContent string
	if snap.Pending {
		inputContent = m.renderLoadingAnimation(snap.Active)
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(m.width-2).Render(inputContent))

	sections = append(sections, m.renderStatusBar(m.width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	banner := keyLoadedStyle.Render(m.opts.APIKey.Notice())
	if !m.opts.APIKey.Present() {
		banner = keyMissingStyle.Render(m.opts.APIKey.Notice())
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("🎉 Funky AI ChatBot 🎉"),
		subtitleStyle.Render("Choose your AI model and start chatting! ✨"),
		banner,
	)
	return headerStyle.Width(m.width - 2).Render(content)
}

func (m Model) renderSidebar(snap session.State) string {
	var lines []string

	lines = append(lines, sidebarSectionStyle.Render("🤖 Model Selection"))
	for _, id := range models.AllBackends() {
		if id == snap.Active {
			lines = append(lines, sidebarActiveStyle.Render("● "+string(id)))
		} else {
			lines = append(lines, sidebarItemStyle.Render("○ "+string(id)))
		}
	}
	lines = append(lines, hintStyle.Render(" Tab or /switch"))

	lines = append(lines, sidebarSectionStyle.Render("📊 API Status"))
	for _, id := range models.AllBackends() {
		status := snap.Status(id)
		lines = append(lines,
			sidebarItemStyle.Render(fmt.Sprintf("%s (Port %d):", id, m.ports[id])),
			sidebarItemStyle.Render(" "+statusStyle(status).Render(status.Label())),
		)
	}

	lines = append(lines, sidebarSectionStyle.Render("💬 Conversation Info"))
	lines = append(lines,
		sidebarItemStyle.Render(fmt.Sprintf("Messages: %d", len(snap.Transcript))),
		sidebarItemStyle.Render(fmt.Sprintf("Current Model: %s", snap.Active)),
	)

	lines = append(lines, sidebarSectionStyle.Render("🗑️ Clear Chat"))
	lines = append(lines, hintStyle.Render(" Ctrl+L or /clear"))

	lines = append(lines, sidebarSectionStyle.Render("🎯 Did You Know?"))
	lines = append(lines, tipStyle.Width(sidebarWidth-4).Render(snap.Tip()))

	return sidebarStyle.
		Width(sidebarWidth - 2).
		Height(m.viewport.Height).
		Render(strings.Join(lines, "\n"))
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome(active models.BackendID) string {
	width := m.viewport.Width
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("🎉"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to Funky AI ChatBot"),
		"",
		welcomeStyle.Width(width).Render(fmt.Sprintf("You are talking to %s. Type a message below to start.", active)),
		welcomeStyle.Width(width).Render("Type /help for commands"),
	)

	// Center vertically
	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation(active models.BackendID) string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[frame%len(chars)])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		bar.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render(barChars[charIdx]))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(fmt.Sprintf(" 🤖 %s is thinking... ", active))

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, m.spinner.View())
}

// renderStatusBar renders the bottom status bar with shortcuts, or the
// latest notice when there is one
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		style := noticeStyle
		if m.noticeIsError {
			style = errorStyle
		}
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(style.Render(m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Switch"},
		{"Ctrl+L", "Clear"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+S", "Export"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI on store
func RunChat(store *session.Store, runner *chat.Runner, opts Options) error {
	m := NewChatModel(store, runner, opts)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
