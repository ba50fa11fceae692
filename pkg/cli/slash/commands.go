package slash

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/chatcontext"
	"github.com/devantler-tech/olschat/pkg/svc/chat/feedback"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
)

func (d *Dispatcher) register() {
	d.commands = make(map[string]command)

	add := func(name, usage, summary string, run handler) {
		d.commands[name] = command{usage: usage, summary: summary, run: run}
		d.order = append(d.order, name)
	}

	add("location", "/location <console-url>", "follow the console page the question is about", runLocation)
	add("use", "/use [<kind> <name> <namespace>]", "choose the context explicitly, or clear it", runUse)
	add("options", "/options", "show what can be attached from the context", runOptions)
	add("attach", "/attach <yaml|status|events|logs|alert> [container] [--previous]",
		"attach from the context", runAttach)
	add("attachments", "/attachments", "list staged attachments", runAttachments)
	add("show", "/show <id>", "show a staged attachment", runShow)
	add("history-attachment", "/history-attachment <entry> <id>", "show an attachment sent earlier",
		runHistoryAttachment)
	add("edit", "/edit <id>", "edit a staged attachment in your editor", runEdit)
	add("rm", "/rm <id>", "remove a staged attachment", runRemove)
	add("new", "/new [-y]", "start a new chat", runNewChat)
	add("feedback", "/feedback <entry> <up|down> [comment]", "rate an answer", runFeedback)
	add("blocks", "/blocks <entry>", "list the code blocks of an answer", runBlocks)
	add("copy", "/copy <entry> <block>", "copy a code block to the clipboard", runCopy)
	add("import", "/import <entry> <block>", "import a code block into the console", runImport)
	add("history", "/history", "print the conversation", runHistory)
	add("export", "/export [file]", "write the conversation as YAML", runExport)
	add("auth", "/auth", "check access to the assistant service", runAuth)
	add("help", "/help", "show this help", runHelp)
	add("quit", "/quit", "end the chat", runQuit)
	d.commands["exit"] = d.commands["quit"]
}

func runLocation(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usageError("/location <console-url>")
	}

	d.chat.SetLocation(args[0])
	d.reportContext()

	return Result{}, nil
}

func runUse(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) == 0 {
		d.chat.SetContext(nil)
		d.reportContext()

		return Result{}, nil
	}

	if len(args) != 3 {
		return Result{}, usageError("/use [<kind> <name> <namespace>]")
	}

	gvk, ok := chatcontext.LookupKind(args[0])
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownKind, args[0])
	}

	d.chat.SetContext(&chatcontext.Subject{
		Group:     gvk.Group,
		Version:   gvk.Version,
		Kind:      gvk.Kind,
		Name:      args[1],
		Namespace: args[2],
	})
	d.reportContext()

	return Result{}, nil
}

func (d *Dispatcher) reportContext() {
	label := SubjectLabel(d.chat.Context())
	if label == "" {
		notify.Infof(d.out, "no context")

		return
	}

	notify.Infof(d.out, "context: %s", label)
}

func runOptions(ctx context.Context, d *Dispatcher, _ []string) (Result, error) {
	subject := d.chat.Context()

	if chatcontext.SupportsEvents(subject.Kind) && !subject.IsEmpty() {
		if err := d.chat.LoadContextEvents(ctx); err != nil {
			notify.Warningf(d.out, "could not load events: %v", err)
		}
	}

	WriteOptions(d.out, subject, d.chat.AttachOptions())
	WriteEvents(d.out, d.chat.ContextEvents())

	return Result{}, nil
}

var attachTypes = map[string]attachment.Type{
	"yaml":   attachment.TypeYAML,
	"alert":  attachment.TypeYAML,
	"status": attachment.TypeYAMLStatus,
	"events": attachment.TypeEvents,
	"logs":   attachment.TypeLog,
	"log":    attachment.TypeLog,
}

func attachKeyword(subject chatcontext.Subject, t attachment.Type) string {
	switch {
	case subject.IsAlert():
		return "alert"
	case t == attachment.TypeYAMLStatus:
		return "status"
	case t == attachment.TypeEvents:
		return "events"
	case t == attachment.TypeLog:
		return "logs"
	default:
		return "yaml"
	}
}

func runAttach(ctx context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) == 0 {
		return Result{}, usageError("/attach <yaml|status|events|logs|alert> [container] [--previous]")
	}

	attachType, ok := attachTypes[strings.ToLower(args[0])]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAttachmentType, args[0])
	}

	req := session.AttachRequest{Type: attachType}

	for _, arg := range args[1:] {
		if arg == "--previous" || arg == "-p" {
			req.Previous = true

			continue
		}

		req.Container = arg
	}

	if attachType == attachment.TypeEvents {
		if err := d.chat.LoadContextEvents(ctx); err != nil {
			return Result{}, fmt.Errorf("load events: %w", err)
		}
	}

	id, err := d.chat.Attach(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("attach: %w", err)
	}

	for _, staged := range d.chat.Attachments() {
		if staged.ID == id {
			notify.Successf(d.out, "attached %s", AttachmentLabel(staged))
		}
	}

	return Result{}, nil
}

func runAttachments(_ context.Context, d *Dispatcher, _ []string) (Result, error) {
	WriteAttachments(d.out, d.chat.Attachments())

	return Result{}, nil
}

func (d *Dispatcher) stagedID(prefix string) (string, error) {
	return matchID(prefix, d.chat.Attachments())
}

func matchID(prefix string, candidates []attachment.Attachment) (string, error) {
	var matches []string

	for _, a := range candidates {
		if a.ID == prefix {
			return a.ID, nil
		}

		if strings.HasPrefix(a.ID, prefix) {
			matches = append(matches, a.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrAttachmentNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

func runShow(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usageError("/show <id>")
	}

	id, err := d.stagedID(args[0])
	if err != nil {
		return Result{}, err
	}

	if err := d.chat.OpenAttachment(id); err != nil {
		return Result{}, fmt.Errorf("open attachment: %w", err)
	}

	defer d.chat.ClosePreview()

	previewed, ok := d.chat.PreviewedAttachment()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrAttachmentNotFound, args[0])
	}

	WriteAttachment(d.out, previewed, false)

	return Result{}, nil
}

func runHistoryAttachment(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 2 {
		return Result{}, usageError("/history-attachment <entry> <id>")
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return Result{}, err
	}

	entry, ok := d.chat.Entry(index)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", session.ErrEntryNotFound, index)
	}

	user, ok := entry.(history.UserEntry)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", session.ErrEntryNotFound, index)
	}

	id, err := matchID(args[1], user.Attachments)
	if err != nil {
		return Result{}, err
	}

	if err := d.chat.OpenHistoryAttachment(index, id); err != nil {
		return Result{}, fmt.Errorf("open attachment: %w", err)
	}

	defer d.chat.ClosePreview()

	previewed, _ := d.chat.PreviewedAttachment()
	WriteAttachment(d.out, previewed, true)

	return Result{}, nil
}

func runEdit(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usageError("/edit <id>")
	}

	id, err := d.stagedID(args[0])
	if err != nil {
		return Result{}, err
	}

	if err := d.chat.OpenAttachment(id); err != nil {
		return Result{}, fmt.Errorf("open attachment: %w", err)
	}

	previewed, ok := d.chat.PreviewedAttachment()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrAttachmentNotFound, args[0])
	}

	ext := ".txt"
	if previewed.Type.IsStructured() {
		ext = ".yaml"
	}

	return Result{
		Action: ActionEdit,
		Edit:   &EditRequest{ID: id, Value: previewed.Value, Ext: ext},
	}, nil
}

func runRemove(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usageError("/rm <id>")
	}

	id, err := d.stagedID(args[0])
	if err != nil {
		return Result{}, err
	}

	d.chat.RemoveAttachment(id)
	notify.Successf(d.out, "removed %s", ShortID(id))

	return Result{}, nil
}

func runNewChat(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	force := slices.Contains(args, "-y") || slices.Contains(args, "--yes")

	d.chat.RequestNewChat()

	if d.skipAsk(force) {
		if err := d.ResolveNewChat(true); err != nil {
			return Result{}, err
		}

		notify.Successf(d.out, "new chat started")

		return Result{}, nil
	}

	var subject string
	if explicit := d.chat.ExplicitContext(); explicit != nil {
		subject = SubjectLabel(*explicit)
	}

	return Result{
		Action: ActionConfirmNewChat,
		NewChat: &confirm.NewChatPreview{
			ConversationID: d.chat.ConversationID(),
			Entries:        len(d.chat.Entries()),
			Attachments:    len(d.chat.Attachments()),
			Subject:        subject,
		},
	}, nil
}

func runFeedback(ctx context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) < 2 {
		return Result{}, usageError("/feedback <entry> <up|down> [comment]")
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return Result{}, err
	}

	var sentiment int

	switch strings.ToLower(args[1]) {
	case "up", "+", "+1", "👍":
		sentiment = feedback.ThumbsUp
	case "down", "-", "-1", "👎":
		sentiment = feedback.ThumbsDown
	default:
		return Result{}, usageError("/feedback <entry> <up|down> [comment]")
	}

	err = d.chat.OpenFeedback(index)
	if err != nil {
		return Result{}, fmt.Errorf("feedback: %w", err)
	}

	err = errors.Join(
		d.chat.SetFeedbackSentiment(index, sentiment),
		d.chat.SetFeedbackText(index, strings.Join(args[2:], " ")),
	)
	if err == nil {
		err = d.chat.SubmitFeedback(ctx, index)
	}

	if err != nil {
		d.chat.CloseFeedback(index)

		return Result{}, fmt.Errorf("feedback: %w", err)
	}

	notify.Successf(d.out, "thanks for your feedback")

	return Result{}, nil
}

func runBlocks(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usageError("/blocks <entry>")
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return Result{}, err
	}

	blocks, err := d.chat.CodeBlocks(index)
	if err != nil {
		return Result{}, fmt.Errorf("code blocks: %w", err)
	}

	if len(blocks) == 0 {
		notify.Infof(d.out, "no code blocks")
	}

	for i, block := range blocks {
		firstLine, _, _ := strings.Cut(block.Value, "\n")
		notify.Detailf(d.out, "[%d] %s %s", i, block.Language, firstLine)
	}

	return Result{}, nil
}

func runCopy(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	index, block, err := parseBlockRef(args, "/copy <entry> <block>")
	if err != nil {
		return Result{}, err
	}

	code, err := d.chat.CodeBlock(index, block)
	if err != nil {
		return Result{}, fmt.Errorf("copy: %w", err)
	}

	if err := d.clipboard(code.Value); err != nil {
		return Result{}, fmt.Errorf("copy to clipboard: %w", err)
	}

	notify.Successf(d.out, "copied to clipboard")

	return Result{}, nil
}

func runImport(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	index, block, err := parseBlockRef(args, "/import <entry> <block>")
	if err != nil {
		return Result{}, err
	}

	imported, err := d.chat.ImportCodeBlock(index, block)
	if err != nil {
		return Result{}, fmt.Errorf("import: %w", err)
	}

	notify.Successf(d.out, "imported code block %s", ShortID(imported.ID))

	return Result{}, nil
}

func runHistory(_ context.Context, d *Dispatcher, _ []string) (Result, error) {
	entries := d.chat.Entries()
	if len(entries) == 0 {
		notify.Infof(d.out, "no messages yet")
	}

	states := d.chat.FeedbackStates()

	for index, entry := range entries {
		WriteEntry(d.out, index, entry)

		if state, ok := states[index]; ok {
			WriteFeedbackState(d.out, state)
		}
	}

	return Result{}, nil
}

func runExport(_ context.Context, d *Dispatcher, args []string) (Result, error) {
	if len(args) == 0 {
		if err := d.chat.Export(d.out); err != nil {
			return Result{}, fmt.Errorf("export: %w", err)
		}

		return Result{}, nil
	}

	file, err := os.Create(args[0])
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	err = errors.Join(d.chat.Export(file), file.Close())
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	notify.Successf(d.out, "conversation written to %s", args[0])

	return Result{}, nil
}

func runAuth(ctx context.Context, d *Dispatcher, _ []string) (Result, error) {
	status, err := d.chat.RefreshAuth(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check access: %w", err)
	}

	notify.Infof(d.out, "%s", AuthLabel(status))

	return Result{}, nil
}

func runHelp(_ context.Context, d *Dispatcher, _ []string) (Result, error) {
	notify.Infof(d.out, "commands:\n%s", d.Help())

	return Result{}, nil
}

func runQuit(context.Context, *Dispatcher, []string) (Result, error) {
	return Result{Action: ActionQuit}, nil
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: entry must be a number, got %q", ErrUsage, raw)
	}

	return index, nil
}

func parseBlockRef(args []string, usage string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, usageError(usage)
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return 0, 0, err
	}

	block, err := parseIndex(args[1])
	if err != nil {
		return 0, 0, err
	}

	return index, block, nil
}
