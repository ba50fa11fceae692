package slash

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
)

// Action tells the front-end what to do after a command ran.
type Action int

// Command outcomes.
const (
	// ActionNone means the command is complete.
	ActionNone Action = iota
	// ActionQuit ends the chat.
	ActionQuit
	// ActionEdit asks the front-end to open Result.Edit in the editor, then call FinishEdit.
	ActionEdit
	// ActionConfirmNewChat asks the front-end to confirm Result.NewChat, then call ResolveNewChat.
	ActionConfirmNewChat
)

// EditRequest is an attachment value to be edited.
type EditRequest struct {
	ID    string
	Value string
	// Ext is the temp file extension, which selects editor syntax highlighting.
	Ext string
}

// Result is the outcome of Execute.
type Result struct {
	Action  Action
	Edit    *EditRequest
	NewChat *confirm.NewChatPreview
}

type handler func(ctx context.Context, d *Dispatcher, args []string) (Result, error)

type command struct {
	usage   string
	summary string
	run     handler
}

// Dispatcher runs slash commands against a session.
type Dispatcher struct {
	chat      *session.Session
	out       io.Writer
	clipboard func(string) error
	skipAsk   func(force bool) bool
	commands  map[string]command
	order     []string
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(d *Dispatcher) {
		d.clipboard = write
	}
}

// WithPromptSkipper decides whether /new confirms without asking. It receives whether -y was given.
func WithPromptSkipper(skip func(force bool) bool) Option {
	return func(d *Dispatcher) {
		d.skipAsk = skip
	}
}

// New creates a dispatcher writing command output to out.
func New(chat *session.Session, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chat:      chat,
		out:       out,
		clipboard: clipboard.WriteAll,
		skipAsk:   confirm.ShouldSkipPrompt,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.register()

	return d
}

// IsCommand reports whether input is a slash command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// IsExitCommand checks if the input is an exit command.
func IsExitCommand(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))

	return lower == "exit" || lower == "quit" || lower == "q" || lower == "/exit" || lower == "/quit"
}

// Execute runs one slash command line.
func (d *Dispatcher) Execute(ctx context.Context, line string) (Result, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))

	cmd, ok := d.commands[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: /%s (see /help)", ErrUnknownCommand, name)
	}

	return cmd.run(ctx, d, fields[1:])
}

// FinishEdit stores the edited value of the attachment open for editing and closes it.
func (d *Dispatcher) FinishEdit(value string) error {
	if _, ok := d.chat.Preview().(attachment.PreviewEditable); !ok {
		return ErrNoEditPending
	}

	if err := d.chat.EditAttachment(value); err != nil {
		return fmt.Errorf("edit attachment: %w", err)
	}

	d.chat.ClosePreview()

	return nil
}

// CancelEdit closes the attachment open for editing without changes.
func (d *Dispatcher) CancelEdit() {
	d.chat.ClosePreview()
}

// ResolveNewChat completes a pending new chat confirmation.
func (d *Dispatcher) ResolveNewChat(confirmed bool) error {
	if !confirmed {
		d.chat.CancelNewChat()

		return confirm.ErrNewChatCancelled
	}

	if err := d.chat.ConfirmNewChat(); err != nil {
		return fmt.Errorf("start new chat: %w", err)
	}

	return nil
}

// Help returns the command reference.
func (d *Dispatcher) Help() string {
	var builder strings.Builder

	for _, name := range d.order {
		cmd := d.commands[name]
		builder.WriteString(fmt.Sprintf("  %-44s %s\n", cmd.usage, cmd.summary))
	}

	return strings.TrimRight(builder.String(), "\n")
}

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usage)
}
