package chat

import "github.com/charmbracelet/lipgloss"

var (
	// Standard ANSI colors (0-15) so the user's terminal theme applies.
	primaryColor   = lipgloss.ANSIColor(9)  // Bright red
	accentColor    = lipgloss.ANSIColor(1)  // Red
	secondaryColor = lipgloss.ANSIColor(8)  // Bright black (gray)
	userColor      = lipgloss.ANSIColor(12) // Bright blue
	assistantColor = lipgloss.ANSIColor(13) // Bright magenta
	attachColor    = lipgloss.ANSIColor(11) // Bright yellow
	successColor   = lipgloss.ANSIColor(10) // Bright green
	dimColor       = lipgloss.ANSIColor(8)  // Bright black (gray)
	errorColor     = lipgloss.ANSIColor(9)  // Bright red

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	headerBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(userColor).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(assistantColor).
				Bold(true)

	// attachmentStyle renders attachment chips under prompts and above the input.
	attachmentStyle = lipgloss.NewStyle().
			Foreground(attachColor)

	referenceStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	viewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// blockedInputStyle replaces inputStyle while prompting is blocked.
	blockedInputStyle = inputStyle.
				BorderForeground(errorColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// noticeStyle renders the output of the last slash command.
	noticeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(attachColor).
			PaddingLeft(1)
)

// createModalStyle creates the style of dialogs replacing the input area.
func createModalStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		PaddingLeft(1).
		PaddingRight(1).
		Width(width).
		Height(height)
}
