package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/olschat/pkg/cli/slash"
	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
)

// statusResetDelay is how long transient status text stays visible.
const statusResetDelay = 1500 * time.Millisecond

type statusClearMsg struct{}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if m.newChat != nil {
		return m.handleConfirmKey(msg)
	}

	if key.Matches(msg, m.keys.ToggleHelp) {
		m.showHelp = !m.showHelp
		m.updateDimensions()

		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.handleEscape()
	case key.Matches(msg, m.keys.Send):
		return m.handleEnter()
	case key.Matches(msg, m.keys.NewLine):
		m.textarea.InsertString("\n")

		return m, nil
	case key.Matches(msg, m.keys.NewChat):
		return m.runCommand("/new")
	case key.Matches(msg, m.keys.Attach):
		return m.runCommand("/options")
	case key.Matches(msg, m.keys.CopyAnswer):
		return m.copyLastAnswer()
	case key.Matches(msg, m.keys.Up) && m.onFirstLine():
		return m.handlePromptUp()
	case key.Matches(msg, m.keys.Down) && m.onLastLine():
		return m.handlePromptDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
		m.userScrolled = !m.viewport.AtBottom()

		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
		m.userScrolled = !m.viewport.AtBottom()

		return m, nil
	}

	var cmd tea.Cmd

	m.textarea, cmd = m.textarea.Update(msg)

	return m, cmd
}

// handleMouseMsg scrolls the conversation with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Only wheel events scroll the viewport.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(scrollLines)
		m.userScrolled = !m.viewport.AtBottom()
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(scrollLines)
		m.userScrolled = !m.viewport.AtBottom()
	default:
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true

	return m, tea.Quit
}

// handleEscape clears the notice, then closes the help overlay.
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	switch {
	case m.notice != "":
		m.clearNotice()
	case m.showHelp:
		m.showHelp = false
		m.updateDimensions()
	}

	return m, nil
}

// handleConfirmKey answers the new chat confirmation.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.newChat = nil

		err := m.dispatcher(nil).ResolveNewChat(true)
		if err != nil {
			m.setNotice(err.Error(), true)
		} else {
			m.rendered = make(map[string]string)
			m.clearNotice()
		}

		m.refresh()
	case key.Matches(msg, m.keys.No):
		m.newChat = nil

		err := m.dispatcher(nil).ResolveNewChat(false)
		if errors.Is(err, confirm.ErrNewChatCancelled) {
			m.setNotice("Kept the current chat.", false)
		}

		m.updateDimensions()
	}

	return m, nil
}

// handleEnter submits the prompt or runs the slash command typed in the input.
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())

	if slash.IsExitCommand(input) {
		return m.quit()
	}

	if slash.IsCommand(input) {
		m.addToPrompts(input)
		m.textarea.Reset()

		return m.runCommand(input)
	}

	m.chat.SetQuery(m.textarea.Value())

	_, err := m.chat.Submit(m.ctx)

	switch {
	case errors.Is(err, session.ErrEmptyPrompt):
		m.setNotice("Type a question first.", true)
	case errors.Is(err, session.ErrSubmissionInFlight):
		m.setNotice("Still waiting for the previous answer.", true)
	case errors.Is(err, session.ErrPromptingBlocked):
		m.setNotice("You are "+m.chat.AuthStatus().String()+"; prompting is disabled.", true)
	case err != nil:
		m.setNotice(err.Error(), true)
	default:
		m.addToPrompts(input)
		m.textarea.Reset()
		m.userScrolled = false
		m.clearNotice()
		m.refresh()
	}

	return m, m.spinner.Tick
}

func (m *Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	entries := m.chat.Entries()

	for i := len(entries) - 1; i >= 0; i-- {
		answer, ok := entries[i].(history.AssistantEntry)
		if !ok || answer.Failed() {
			continue
		}

		if err := m.clipboard(answer.Text); err != nil {
			m.setNotice("Copy failed: "+err.Error(), true)

			return m, nil
		}

		m.status = "Copied ✓"

		return m, tea.Tick(statusResetDelay, func(time.Time) tea.Msg { return statusClearMsg{} })
	}

	return m, nil
}

func (m *Model) onFirstLine() bool {
	return m.textarea.Line() == 0
}

func (m *Model) onLastLine() bool {
	return m.textarea.Line() >= m.textarea.LineCount()-1
}

func (m *Model) addToPrompts(prompt string) {
	if prompt != "" && (len(m.prompts) == 0 || m.prompts[len(m.prompts)-1] != prompt) {
		m.prompts = append(m.prompts, prompt)
	}

	m.promptIndex = -1
	m.savedPrompt = ""
}

// handlePromptUp recalls the previous prompt.
func (m *Model) handlePromptUp() (tea.Model, tea.Cmd) {
	if len(m.prompts) == 0 {
		return m, nil
	}

	if m.promptIndex == -1 {
		m.savedPrompt = m.textarea.Value()
		m.promptIndex = len(m.prompts) - 1
	} else if m.promptIndex > 0 {
		m.promptIndex--
	}

	m.textarea.SetValue(m.prompts[m.promptIndex])
	m.textarea.CursorEnd()

	return m, nil
}

// handlePromptDown recalls the next prompt, or the input typed before browsing.
func (m *Model) handlePromptDown() (tea.Model, tea.Cmd) {
	if m.promptIndex < 0 {
		return m, nil
	}

	if m.promptIndex < len(m.prompts)-1 {
		m.promptIndex++
		m.textarea.SetValue(m.prompts[m.promptIndex])
	} else {
		m.promptIndex = -1
		m.textarea.SetValue(m.savedPrompt)
	}

	m.textarea.CursorEnd()

	return m, nil
}
