package chat

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/olschat/pkg/cli/slash"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
)

// dispatcher creates a slash dispatcher writing to out. The new chat dialog is always shown
// unless -y was given.
func (m *Model) dispatcher(out *bytes.Buffer) *slash.Dispatcher {
	if out == nil {
		out = &bytes.Buffer{}
	}

	return slash.New(m.chat, out,
		slash.WithClipboard(m.clipboard),
		slash.WithPromptSkipper(func(force bool) bool { return force }),
	)
}

// runCommand runs a slash command off the update loop.
func (m *Model) runCommand(line string) (tea.Model, tea.Cmd) {
	if m.running {
		m.setNotice("Another command is still running.", true)

		return m, nil
	}

	m.running = true
	ctx := m.ctx

	run := func() tea.Msg {
		var out bytes.Buffer

		result, err := m.dispatcher(&out).Execute(ctx, line)

		return commandDoneMsg{output: out.String(), result: result, err: err}
	}

	return m, tea.Batch(run, m.spinner.Tick)
}

// handleCommandDone shows command output and starts follow-up steps.
func (m *Model) handleCommandDone(msg commandDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false

	output := strings.TrimRight(msg.output, "\n")

	if code, ok := m.chat.TakeImportedCode(); ok {
		output = strings.TrimLeft(output+"\n"+m.importCode(code.Value), "\n")
	}

	if msg.err != nil {
		var errOut strings.Builder

		notify.Errorf(&errOut, "%v", msg.err)

		output = strings.TrimLeft(output+"\n"+strings.TrimRight(errOut.String(), "\n"), "\n")
	}

	if output != "" {
		m.setNotice(output, msg.err != nil)
	}

	m.refresh()

	switch msg.result.Action {
	case slash.ActionQuit:
		return m.quit()
	case slash.ActionConfirmNewChat:
		m.newChat = msg.result.NewChat
		m.updateDimensions()
	case slash.ActionEdit:
		return m, m.startEdit(msg.result.Edit)
	case slash.ActionNone:
	}

	return m, nil
}

// importCode puts imported code on the clipboard, where the console editor would receive it.
func (m *Model) importCode(value string) string {
	if err := m.clipboard(value); err != nil {
		return fmt.Sprintf("could not copy the imported code: %v", err)
	}

	return "the imported code is on the clipboard"
}

// startEdit suspends the TUI and opens the attachment in the editor.
func (m *Model) startEdit(request *slash.EditRequest) tea.Cmd {
	if request == nil {
		return nil
	}

	edit, err := m.editor.Prepare(m.ctx, request.Value, request.Ext)
	if err != nil {
		m.dispatcher(nil).CancelEdit()
		m.setNotice(err.Error(), true)

		return nil
	}

	return tea.ExecProcess(edit.Cmd, func(err error) tea.Msg {
		return editFinishedMsg{edit: edit, err: err}
	})
}

// handleEditFinished stores the edited attachment value.
func (m *Model) handleEditFinished(msg editFinishedMsg) {
	dispatcher := m.dispatcher(nil)

	value, err := msg.edit.Result(msg.err)
	if err != nil {
		dispatcher.CancelEdit()
		m.setNotice("Edit discarded: "+err.Error(), true)

		return
	}

	err = dispatcher.FinishEdit(value)
	if err != nil {
		m.setNotice(err.Error(), true)

		return
	}

	m.setNotice("Attachment updated.", false)
	m.refresh()
}
