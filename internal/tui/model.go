package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/voicechat/internal/history"
	"github.com/diogo/voicechat/internal/models"
	"github.com/diogo/voicechat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// turnDoneMsg is sent when a chat turn completes, success or not
type turnDoneMsg struct {
	err error
}

// SessionInterface defines the session operations needed by the TUI
type SessionInterface interface {
	State() models.SessionState
	Messages() []models.Message
	Advisory() string
	StartRecording() error
	StopAndSend(ctx context.Context) error
	SendText(ctx context.Context, text string) error
	Replay() error
}

// HistoryStoreInterface defines the history operations needed by the TUI
type HistoryStoreInterface interface {
	AddMessage(id string, msg history.Message) error
}

// Model represents the TUI state
type Model struct {
	session  SessionInterface
	endpoint string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []models.Message
	recording      bool
	loading        bool
	ready          bool
	err            error
	animationFrame int

	// History persistence
	conversation *history.Conversation // nil for unsaved sessions
	historyStore HistoryStoreInterface
	persisted    int // messages already written to the store

	// Dimensions
	width  int
	height int
}

// NewModel creates a new voice chat TUI model
func NewModel(session SessionInterface, endpoint string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message, or press Ctrl+R to talk..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:  session,
		endpoint: endpoint,
		textarea: ta,
		spinner:  s,
		messages: []models.Message{},
	}
}

// NewModelWithConversation creates a model that persists messages to a
// history conversation
func NewModelWithConversation(session SessionInterface, endpoint string, conv *history.Conversation, store HistoryStoreInterface) Model {
	m := NewModel(session, endpoint)
	m.conversation = conv
	m.historyStore = store
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 2
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "ctrl+r":
			if m.loading {
				break
			}
			if m.recording {
				// Stop and send the recording
				m.recording = false
				m.loading = true
				m.err = nil
				m.animationFrame = 0
				return m, tea.Batch(
					m.stopAndSend(),
					m.spinner.Tick,
					animationTick(),
				)
			}
			if err := m.session.StartRecording(); err != nil {
				m.err = err
				m.refreshMessages()
			} else {
				m.recording = true
				m.err = nil
			}

		case "ctrl+p":
			if err := m.session.Replay(); err != nil {
				m.err = err
			} else {
				m.err = nil
			}

		case "enter":
			if m.loading || m.recording {
				break
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				break
			}
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}

			m.loading = true
			m.err = nil
			m.animationFrame = 0
			m.textarea.Reset()

			return m, tea.Batch(
				m.sendText(input),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case turnDoneMsg:
		m.loading = false
		m.recording = false
		if msg.err != nil {
			m.err = msg.err
		}
		m.refreshMessages()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading && !m.recording {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// stopAndSend creates a command that submits the in-flight recording
func (m Model) stopAndSend() tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: m.session.StopAndSend(context.Background())}
	}
}

// sendText creates a command that submits a typed message
func (m Model) sendText(text string) tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: m.session.SendText(context.Background(), text)}
	}
}

// refreshMessages mirrors the session log into the view and persists
// anything new
func (m *Model) refreshMessages() {
	m.messages = m.session.Messages()
	m.persistNewMessages()
	m.updateViewport()
}

// persistNewMessages appends log entries the store has not seen yet
func (m *Model) persistNewMessages() {
	if m.conversation == nil || m.historyStore == nil {
		return
	}
	for ; m.persisted < len(m.messages); m.persisted++ {
		msg := m.messages[m.persisted]
		_ = m.historyStore.AddMessage(m.conversation.ID, history.Message{
			Role:        msg.Role,
			Content:     msg.Content,
			Transcribed: msg.Transcribed,
			HadAudio:    msg.HadAudio,
		})
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ Voice Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.endpoint),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	if len(m.messages) == 0 {
		sections = append(sections, m.renderWelcome())
	} else {
		sections = append(sections, m.viewport.View())
	}

	// Input area
	var inputContent string
	switch {
	case m.loading:
		inputContent = m.renderLoadingAnimation()
	case m.recording:
		inputContent = recordingStyle.Render("● Recording...") +
			hintStyle.Render("  press Ctrl+R to stop and send")
	default:
		inputContent = m.textarea.View()
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Playback advisory
	if advisory := m.session.Advisory(); advisory != "" {
		sections = append(sections, advisoryStyle.Width(contentWidth).Render("♪ "+advisory))
	}

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to Voice Chat")
	subtitle := welcomeStyle.Width(width).Render("Press Ctrl+R and speak, or type a message below")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Waiting for reply ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	recordDesc := "Record"
	if m.recording {
		recordDesc = "Stop & send"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+R", recordDesc},
		{"Enter", "Send"},
		{"Ctrl+P", "Replay"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Assistant")

			rendered, err := render.MarkdownWithWidth(msg.Content, bubbleWidth-4)
			if err != nil {
				rendered = msg.Content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the voice chat TUI
func Run(session SessionInterface, endpoint string) error {
	return runProgram(NewModel(session, endpoint))
}

// RunWithConversation starts the TUI with history persistence
func RunWithConversation(session SessionInterface, endpoint string, conv *history.Conversation, store HistoryStoreInterface) error {
	return runProgram(NewModelWithConversation(session, endpoint, conv, store))
}

func runProgram(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
