// Package confirm provides the confirmation prompt shown before a chat is discarded.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/devantler-tech/olschat/pkg/utils/notify"
)

// ErrNewChatCancelled is returned when the user declines to start a new chat.
var ErrNewChatCancelled = errors.New("new chat cancelled")

// NewChatPreview summarises what a new chat discards.
type NewChatPreview struct {
	ConversationID string
	Entries        int
	Attachments    int
	// Subject is the explicitly chosen context, empty when following the page.
	Subject string
}

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldSkipPrompt returns true when the prompt is forced away or stdin is not interactive.
func ShouldSkipPrompt(force bool) bool {
	return force || !IsTTY()
}

// ShowNewChatPreview warns about what a new chat discards and asks for confirmation.
func ShowNewChatPreview(writer io.Writer, preview NewChatPreview) {
	notify.Warningf(writer, "Starting a new chat discards the current conversation:")

	var previewText strings.Builder

	previewText.WriteString(fmt.Sprintf("  Messages:    %d\n", preview.Entries))
	previewText.WriteString(fmt.Sprintf("  Attachments: %d", preview.Attachments))

	if preview.ConversationID != "" {
		previewText.WriteString(fmt.Sprintf("\n  Conversation: %s", preview.ConversationID))
	}

	if preview.Subject != "" {
		previewText.WriteString(fmt.Sprintf("\n  Context:     %s", preview.Subject))
	}

	notify.Infof(writer, "%s", previewText.String())
	notify.Warningf(writer, `Type "yes" to start a new chat: `)
}

// PromptForConfirmation reads one line and returns true only if it is "yes"
// (case-insensitive). A nil reader reads from stdin.
func PromptForConfirmation(reader io.Reader) bool {
	if reader == nil {
		reader = getStdinReader()
	}

	buffered, ok := reader.(*bufio.Reader)
	if !ok {
		buffered = bufio.NewReader(reader)
	}

	input, err := buffered.ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(input), "yes")
}
