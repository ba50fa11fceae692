package chat

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const (
	helpSep = " • "

	// UI dimension constants.
	modalPadding    = 2 // border width subtracted from terminal width
	contentPadding  = 4 // padding inside modal content area
	textAreaPadding = 6
	viewportPadding = 4
	viewportInner   = 2
	rendererPadding = 8
	charLimit       = 4096
	scrollLines     = 3
	minHeight       = 5
	minWrapWidth    = 20
)

var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(attachColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(dimColor)
)

// createHelpModel creates a configured help model.
func createHelpModel() help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = helpSep
	helpModel.FullSeparator = "   "
	helpModel.Ellipsis = "…"
	helpModel.Styles = help.Styles{
		ShortKey:       helpKeyStyle,
		ShortDesc:      helpDescStyle,
		ShortSeparator: helpStyle,
		Ellipsis:       helpStyle,
		FullKey:        helpKeyStyle,
		FullDesc:       helpDescStyle,
		FullSeparator:  helpStyle,
	}

	return helpModel
}

// renderFooter renders the context-aware help line.
func (m *Model) renderFooter() string {
	m.help.Width = max(m.width-contentPadding, 1)

	var line string

	switch {
	case m.newChat != nil:
		line = m.help.ShortHelpView(m.keys.ConfirmShortHelp())
	case m.showHelp:
		line = m.help.FullHelpView(m.keys.FullHelp())
	default:
		line = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render("  " + line)
}

// footerHeight is the number of lines renderFooter uses.
func (m *Model) footerHeight() int {
	if m.showHelp && m.newChat == nil {
		return len(m.keys.FullHelp()[0])
	}

	return 1
}
