package chat

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/olschat/pkg/cli/helpers/editor"
	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	inputHeight   = 3
	headerHeight  = 3 // title row + border
)

// Model is the bubbletea model of the chat TUI.
type Model struct {
	ctx       context.Context
	chat      *session.Session
	editor    *editor.Resolver
	clipboard func(string) error

	// Components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap
	renderer *glamour.TermRenderer

	// rendered caches markdown renderings of answers by their text.
	rendered map[string]string

	// State
	width        int
	height       int
	quitting     bool
	showHelp     bool
	userScrolled bool
	running      bool   // a slash command is running
	notice       string // output of the last slash command or action
	noticeIsErr  bool
	status       string // transient status such as "Copied ✓"
	newChat      *confirm.NewChatPreview

	// Prompt history
	prompts     []string
	promptIndex int // -1 means not browsing
	savedPrompt string
}

// Option customises a Model.
type Option func(*Model)

// WithContext sets the context of queries and attach actions.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.clipboard = write
	}
}

// New creates the chat TUI model for chat. Edits are opened in the editor chosen by resolver.
func New(chat *session.Session, resolver *editor.Resolver, opts ...Option) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = spinnerStyle

	model := &Model{
		ctx:         context.Background(),
		chat:        chat,
		editor:      resolver,
		clipboard:   clipboard.WriteAll,
		viewport:    viewport.New(defaultWidth-viewportPadding, defaultHeight/2),
		textarea:    createTextArea(),
		spinner:     spin,
		help:        createHelpModel(),
		keys:        DefaultKeyMap(),
		renderer:    createRenderer(defaultWidth - rendererPadding),
		rendered:    make(map[string]string),
		width:       defaultWidth,
		height:      defaultHeight,
		promptIndex: -1,
	}

	for _, opt := range opts {
		opt(model)
	}

	model.refresh()

	return model
}

// createTextArea initializes the prompt input.
func createTextArea() textarea.Model {
	textArea := textarea.New()
	textArea.Placeholder = "Ask a question about your cluster, or type /help"
	textArea.Focus()
	textArea.CharLimit = charLimit
	textArea.SetWidth(defaultWidth - textAreaPadding)
	textArea.SetHeight(inputHeight)
	textArea.ShowLineNumbers = false

	textArea.SetPromptFunc(modalPadding, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}

		return "  "
	})
	textArea.FocusedStyle.CursorLine = lipgloss.NewStyle()
	textArea.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return textArea
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
//
//nolint:cyclop // type-switch dispatcher for tea.Msg
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

		return m, nil

	case entryAppendedMsg, waitingMsg:
		m.refresh()

		return m, nil

	case scrollMsg:
		m.userScrolled = false
		m.refresh()

		return m, nil

	case focusMsg:
		return m, m.textarea.Focus()

	case discardedMsg:
		m.setNotice("An answer from the previous chat arrived and was dropped.", false)

		return m, nil

	case statusClearMsg:
		m.status = ""

		return m, nil

	case commandDoneMsg:
		return m.handleCommandDone(msg)

	case editFinishedMsg:
		m.handleEditFinished(msg)

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

		if m.chat.Waiting() {
			m.updateViewportContent()
		}
	}

	var vpCmd tea.Cmd

	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return statusStyle.Render("  Goodbye.") + "\n"
	}

	sections := []string{
		m.renderHeader(),
		viewportStyle.Width(max(m.width-modalPadding, 1)).Render(m.viewport.View()),
	}

	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, notice)
	}

	if chips := m.renderStaged(); chips != "" {
		sections = append(sections, chips)
	}

	sections = append(sections, m.renderInputOrModal(), m.renderFooter())

	output := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().MaxWidth(m.width).Render(output)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
	m.updateDimensions()
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeIsErr = false
	m.updateDimensions()
}

// refresh re-reads the session and redraws the conversation.
func (m *Model) refresh() {
	m.updateDimensions()
	m.updateViewportContent()
}
