package ui

import (
	"fmt"
	"io"
)

// SetTerminalTitle sets the terminal window title with the OSC 0 escape sequence.
//
// Example:
//
//	SetTerminalTitle(os.Stdout, "olschat - shop/web")
func SetTerminalTitle(writer io.Writer, title string) {
	_, _ = fmt.Fprintf(writer, "\033]0;%s\007", title)
}
