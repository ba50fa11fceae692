package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/cli/helpers/editor"
	"github.com/devantler-tech/olschat/pkg/cli/slash"
	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// setupNonTUISignalHandler cancels the chat on SIGINT or SIGTERM.
func setupNonTUISignalHandler(cancel context.CancelFunc, writer io.Writer) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		select {
		case <-sigChan:
			notify.Infof(writer, "\nReceived interrupt signal, shutting down...")
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

// runNonTUIChat runs the chat as a line-based REPL on the command's streams.
func runNonTUIChat(
	ctx context.Context,
	cancel context.CancelFunc,
	cmd *cobra.Command,
	injector di.Injector,
	cfg *v1alpha1.Config,
	location string,
) error {
	writer := cmd.OutOrStdout()

	stop := setupNonTUISignalHandler(cancel, writer)
	defer stop()

	notify.Titlef(writer, "🤖", "Starting OpenShift Lightspeed chat...")

	listener := newREPLListener(writer)

	chat, warnings, err := di.NewSession(injector, listener)
	if err != nil {
		return fmt.Errorf("failed to start chat: %w", err)
	}

	prepareSession(ctx, chat, location, warnings, writer)

	loop := &repl{
		chat:       chat,
		dispatcher: slash.New(chat, writer),
		editor:     editor.NewResolver("", cfg),
		reader:     bufio.NewReader(cmd.InOrStdin()),
		writer:     writer,
		errWriter:  cmd.ErrOrStderr(),
	}

	return loop.run(ctx)
}

// replListener prints answers as they arrive and shows an indicator while waiting.
type replListener struct {
	session.NopListener

	writer    io.Writer
	indicator *notify.Indicator
}

func newREPLListener(writer io.Writer) *replListener {
	return &replListener{
		writer:    writer,
		indicator: notify.NewIndicator("Waiting for OpenShift Lightspeed...", writer),
	}
}

// EntryAppended prints assistant entries. User entries were typed by the user.
func (l *replListener) EntryAppended(index int, entry history.Entry) {
	if _, ok := entry.(history.AssistantEntry); !ok {
		return
	}

	l.indicator.Stop()
	slash.WriteEntry(l.writer, index, entry)
}

// ResponseDiscarded reports an answer that arrived after a new chat started.
func (l *replListener) ResponseDiscarded(history.AssistantEntry) {
	l.indicator.Stop()
	notify.Warningf(l.writer, "an answer from the previous chat arrived and was dropped")
}

// WaitingChanged toggles the indicator.
func (l *replListener) WaitingChanged(waiting bool) {
	if waiting {
		l.indicator.Start()

		return
	}

	l.indicator.Stop()
}

// inputResult holds the result of reading from stdin.
type inputResult struct {
	input string
	err   error
}

type repl struct {
	chat       *session.Session
	dispatcher *slash.Dispatcher
	editor     *editor.Resolver
	reader     *bufio.Reader
	writer     io.Writer
	errWriter  io.Writer
	inputChan  chan inputResult
}

// run reads prompts and slash commands until exit, end of input or cancellation.
func (r *repl) run(ctx context.Context) error {
	r.inputChan = make(chan inputResult, 1)

	notify.Successf(r.writer, "Chat session started. Type /help for commands, 'exit' or 'quit' to end the session.")
	_, _ = fmt.Fprintln(r.writer, "")

	for {
		input, err := r.readUserInput(ctx)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			//nolint:nilerr // EOF and context cancellation are graceful exit conditions, not errors.
			return nil
		}

		if err != nil {
			return err
		}

		if input == "" {
			continue
		}

		if slash.IsExitCommand(input) {
			notify.Infof(r.writer, "Chat session ended. Goodbye!")

			return nil
		}

		if slash.IsCommand(input) {
			if r.runCommand(ctx, input) {
				return nil
			}

			continue
		}

		err = r.ask(ctx, input)
		if err != nil {
			return err
		}
	}
}

// readUserInput prompts for and reads one line, supporting context cancellation.
// Returns io.EOF when the input stream ends.
//
// NOTE: The reading goroutine cannot be interrupted once started. If the context is
// cancelled before input arrives, it stays blocked until the process exits.
func (r *repl) readUserInput(ctx context.Context) (string, error) {
	_, _ = fmt.Fprint(r.writer, "You: ")

	go func() {
		input, readErr := r.reader.ReadString('\n')
		r.inputChan <- inputResult{input: input, err: readErr}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("input cancelled: %w", ctx.Err())
	case result := <-r.inputChan:
		if result.err != nil {
			if errors.Is(result.err, io.EOF) && strings.TrimSpace(result.input) != "" {
				return strings.TrimSpace(result.input), nil
			}

			if errors.Is(result.err, io.EOF) {
				return "", io.EOF
			}

			return "", fmt.Errorf("failed to read input: %w", result.err)
		}

		return strings.TrimSpace(result.input), nil
	}
}

// ask submits a prompt and waits for the answer, which the listener prints.
func (r *repl) ask(ctx context.Context, input string) error {
	r.chat.SetQuery(input)

	submission, err := r.chat.Submit(ctx)
	if err != nil {
		r.reportError(err)

		return nil
	}

	_, err = submission.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("chat interrupted: %w", err)
	}

	return nil
}

// runCommand runs a slash command and its follow-up steps. It reports whether to quit.
func (r *repl) runCommand(ctx context.Context, input string) bool {
	result, err := r.dispatcher.Execute(ctx, input)
	if err != nil {
		r.reportError(err)

		return false
	}

	switch result.Action {
	case slash.ActionQuit:
		notify.Infof(r.writer, "Chat session ended. Goodbye!")

		return true
	case slash.ActionEdit:
		r.edit(ctx, result.Edit)
	case slash.ActionConfirmNewChat:
		r.confirmNewChat(result.NewChat)
	case slash.ActionNone:
	}

	if code, ok := r.chat.TakeImportedCode(); ok {
		notify.Infof(r.writer, "imported code:")
		_, _ = fmt.Fprintf(r.writer, "```%s\n%s\n```\n", code.Language, code.Value)
	}

	return false
}

func (r *repl) edit(ctx context.Context, request *slash.EditRequest) {
	value, err := r.editor.EditContent(ctx, request.Value, request.Ext, os.Stdin, r.writer, r.errWriter)
	if err != nil {
		r.dispatcher.CancelEdit()
		r.reportError(err)

		return
	}

	err = r.dispatcher.FinishEdit(value)
	if err != nil {
		r.reportError(err)

		return
	}

	notify.Successf(r.writer, "attachment %s updated", slash.ShortID(request.ID))
}

func (r *repl) confirmNewChat(preview *confirm.NewChatPreview) {
	confirm.ShowNewChatPreview(r.writer, *preview)

	err := r.dispatcher.ResolveNewChat(confirm.PromptForConfirmation(r.reader))
	if err != nil {
		r.reportError(err)

		return
	}

	notify.Successf(r.writer, "new chat started")
}

func (r *repl) reportError(err error) {
	notify.Errorf(r.writer, "%v", err)

	if hint := errorhandler.Hint(err); hint != "" {
		notify.Detailf(r.writer, "%s", hint)
	}
}
