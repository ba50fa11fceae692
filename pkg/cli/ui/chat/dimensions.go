package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSize processes terminal resize events.
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.refresh()
}

// updateDimensions sizes the viewport to what the other sections leave over.
func (m *Model) updateDimensions() {
	contentWidth := m.width - viewportPadding

	used := headerHeight + inputHeight + modalPadding + m.footerHeight() + modalPadding
	if m.notice != "" {
		used += min(strings.Count(m.notice, "\n")+1, maxNoticeLines)
	}

	if len(m.chat.Attachments()) > 0 {
		used++
	}

	oldWidth := m.viewport.Width
	m.viewport.Width = max(contentWidth-viewportInner, 1)
	m.viewport.Height = max(m.height-used, minHeight)
	m.textarea.SetWidth(max(contentWidth-viewportInner, 1))

	if oldWidth != m.viewport.Width {
		m.renderer = createRenderer(max(m.viewport.Width-contentPadding, minWrapWidth))
		m.rendered = make(map[string]string)
		m.updateViewportContent()
	}
}
