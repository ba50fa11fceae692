package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/olschat/pkg/cli/slash"
	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/mitchellh/go-wordwrap"
)

const (
	title          = "Red Hat OpenShift Lightspeed"
	welcomeMessage = "  Ask a question below. Use /location or /use to choose what it is about,\n" +
		"  and /attach to send YAML, events or logs with it. /help lists every command.\n"
	maxNoticeLines = 10
)

// renderHeader renders the title row with the context and status on the right.
func (m *Model) renderHeader() string {
	contentWidth := max(m.width-contentPadding-modalPadding, 1)

	left := titleStyle.Render(title)
	right := m.buildStatusText()
	spacing := max(contentWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	row := lipgloss.NewStyle().MaxWidth(contentWidth).Inline(true).
		Render(left + strings.Repeat(" ", spacing) + right)

	return headerBoxStyle.Width(max(m.width-modalPadding, 1)).Render(row)
}

// buildStatusText joins the context, the authorization state and the waiting indicator.
func (m *Model) buildStatusText() string {
	var parts []string

	if label := slash.SubjectLabel(m.chat.Context()); label != "" {
		parts = append(parts, helpDescStyle.Render(label))
	}

	switch status := m.chat.AuthStatus(); status {
	case ols.AuthNotAuthenticated, ols.AuthNotAuthorized:
		parts = append(parts, errorStyle.Render(slash.AuthLabel(status)))
	case ols.AuthAuthorized, ols.AuthUnknown:
	}

	switch {
	case m.chat.Waiting():
		parts = append(parts, m.spinner.View()+" "+statusStyle.Render("Thinking..."))
	case m.running:
		parts = append(parts, m.spinner.View()+" "+statusStyle.Render("Working..."))
	case m.status != "":
		parts = append(parts, successStyle.Render(m.status))
	}

	return strings.Join(parts, helpSep)
}

// updateViewportContent renders the conversation into the viewport.
func (m *Model) updateViewportContent() {
	entries := m.chat.Entries()

	if len(entries) == 0 && !m.chat.Waiting() {
		m.viewport.SetContent(statusStyle.Render(welcomeMessage))

		return
	}

	wrapWidth := m.wrapWidth()

	var builder strings.Builder

	for index, entry := range entries {
		switch e := entry.(type) {
		case history.UserEntry:
			m.renderUserEntry(&builder, index, e, wrapWidth)
		case history.AssistantEntry:
			m.renderAssistantEntry(&builder, index, e, wrapWidth)
		}
	}

	if m.chat.Waiting() {
		builder.WriteString("\n")
		builder.WriteString(assistantMsgStyle.Render("▶ Lightspeed") + " " + m.spinner.View())
		builder.WriteString("\n")
	}

	m.viewport.SetContent(builder.String())

	if !m.userScrolled {
		m.viewport.GotoBottom()
	}
}

func (m *Model) wrapWidth() uint {
	return uint(max(m.viewport.Width-contentPadding, minWrapWidth)) //nolint:gosec // at least minWrapWidth
}

func (m *Model) renderUserEntry(builder *strings.Builder, index int, entry history.UserEntry, wrapWidth uint) {
	builder.WriteString("\n")
	builder.WriteString(userMsgStyle.Render("▶ You") + helpDescStyle.Render(fmt.Sprintf(" [%d]", index)))
	builder.WriteString("\n\n")
	writeWrapped(builder, entry.Text, wrapWidth)

	for _, a := range entry.Attachments {
		builder.WriteString(attachmentStyle.Render("  📎 " + slash.AttachmentLabel(a)))
		builder.WriteString("\n")
	}
}

func (m *Model) renderAssistantEntry(
	builder *strings.Builder,
	index int,
	entry history.AssistantEntry,
	wrapWidth uint,
) {
	builder.WriteString("\n")
	builder.WriteString(assistantMsgStyle.Render("▶ Lightspeed") + helpDescStyle.Render(fmt.Sprintf(" [%d]", index)))

	if state := m.chat.FeedbackState(index); state.Submitted {
		builder.WriteString(successStyle.Render("  feedback sent ✓"))
	}

	builder.WriteString("\n\n")

	if entry.Failed() {
		writeWrapped(builder, errorStyle.Render(entry.Error.Message), wrapWidth)

		if entry.Error.MoreInfo != "" {
			writeWrapped(builder, statusStyle.Render(entry.Error.MoreInfo), wrapWidth)
		}

		return
	}

	builder.WriteString(m.renderAnswer(entry.Text))
	builder.WriteString("\n")

	if entry.IsTruncated {
		builder.WriteString(statusStyle.Render("  The answer was truncated."))
		builder.WriteString("\n")
	}

	for _, reference := range entry.References {
		builder.WriteString("  📖 " + referenceStyle.Render(reference.Title) + " " +
			helpDescStyle.Render(reference.DocsURL))
		builder.WriteString("\n")
	}
}

// renderAnswer renders answer markdown, reusing earlier renderings.
func (m *Model) renderAnswer(text string) string {
	if rendered, ok := m.rendered[text]; ok {
		return rendered
	}

	rendered := renderMarkdown(m.renderer, text)
	m.rendered[text] = rendered

	return rendered
}

func writeWrapped(builder *strings.Builder, text string, wrapWidth uint) {
	wrapped := wordwrap.WrapString(text, wrapWidth)

	for line := range strings.SplitSeq(wrapped, "\n") {
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
}

// renderNotice renders the output of the last command, clipped to maxNoticeLines.
func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}

	lines := strings.Split(m.notice, "\n")
	if len(lines) > maxNoticeLines {
		lines = append(lines[:maxNoticeLines-1], fmt.Sprintf("… %d more lines", len(lines)-maxNoticeLines+1))
	}

	style := noticeStyle
	if m.noticeIsErr {
		style = style.BorderForeground(errorColor)
	}

	return style.MaxWidth(max(m.width-modalPadding, 1)).Render(strings.Join(lines, "\n"))
}

// renderStaged renders the staged attachments as chips above the input.
func (m *Model) renderStaged() string {
	staged := m.chat.Attachments()
	if len(staged) == 0 {
		return ""
	}

	chips := make([]string, 0, len(staged))
	for _, a := range staged {
		chips = append(chips, "📎 "+slash.AttachmentLabel(a))
	}

	return attachmentStyle.MaxWidth(max(m.width-modalPadding, 1)).Inline(true).
		Render(" " + strings.Join(chips, "  "))
}

// renderInputOrModal renders the prompt input or the new chat confirmation.
func (m *Model) renderInputOrModal() string {
	width := max(m.width-modalPadding, 1)

	if m.newChat != nil {
		return m.renderNewChatModal(width)
	}

	style := inputStyle
	if m.chat.PromptingBlocked() {
		style = blockedInputStyle
	}

	return style.Width(width).Render(m.textarea.View())
}

func (m *Model) renderNewChatModal(width int) string {
	preview := m.newChat

	content := titleStyle.Render("Start a new chat?") + "\n" +
		fmt.Sprintf("%d messages and %d attachments will be discarded.", preview.Entries, preview.Attachments) + "\n" +
		helpKeyStyle.Render("y") + " new chat" + helpSep + helpKeyStyle.Render("n") + " keep chatting"

	return createModalStyle(max(width-modalPadding, 1), inputHeight).Render(content)
}
