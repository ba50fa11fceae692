package slash

import (
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/chatcontext"
	"github.com/devantler-tech/olschat/pkg/svc/chat/feedback"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	corev1 "k8s.io/api/core/v1"
)

const shortIDLength = 8

// ShortID returns the prefix of an attachment id shown to users.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

// SubjectLabel describes a chat subject, e.g. "Deployment shop/web".
func SubjectLabel(subject chatcontext.Subject) string {
	if subject.IsEmpty() {
		return ""
	}

	if subject.Namespace == "" {
		return subject.Kind + " " + subject.Name
	}

	return subject.Kind + " " + subject.Namespace + "/" + subject.Name
}

// AttachmentLabel describes an attachment in one line.
func AttachmentLabel(a attachment.Attachment) string {
	label := fmt.Sprintf("[%s] %s %s", ShortID(a.ID), a.Type, a.Kind+" "+a.Name)
	if a.OwnerName != "" {
		label += " (" + a.OwnerName + ")"
	}

	if attachment.IsChanged(a) {
		label += " *edited*"
	}

	return label
}

// WriteEntry writes a committed chat entry for line-based output.
func WriteEntry(writer io.Writer, index int, entry history.Entry) {
	switch e := entry.(type) {
	case history.UserEntry:
		_, _ = fmt.Fprintf(writer, "You [%d]: %s\n", index, e.Text)

		for _, a := range e.Attachments {
			notify.Detailf(writer, "📎 %s", AttachmentLabel(a))
		}
	case history.AssistantEntry:
		writeAssistantEntry(writer, index, e)
	}
}

func writeAssistantEntry(writer io.Writer, index int, entry history.AssistantEntry) {
	_, _ = fmt.Fprintf(writer, "\nAssistant [%d]:\n", index)

	if entry.Failed() {
		notify.Errorf(writer, "%s", entry.Error.Message)

		if entry.Error.MoreInfo != "" {
			notify.Detailf(writer, "%s", entry.Error.MoreInfo)
		}

		return
	}

	_, _ = fmt.Fprintln(writer, strings.TrimRight(entry.Text, "\n"))

	if entry.IsTruncated {
		notify.Warningf(writer, "the answer was truncated")
	}

	for _, reference := range entry.References {
		notify.Detailf(writer, "📖 %s <%s>", reference.Title, reference.DocsURL)
	}

	_, _ = fmt.Fprintln(writer)
}

// WriteAttachments lists staged attachments.
func WriteAttachments(writer io.Writer, attachments []attachment.Attachment) {
	if len(attachments) == 0 {
		notify.Infof(writer, "no attachments")

		return
	}

	for _, a := range attachments {
		notify.Detailf(writer, "%s", AttachmentLabel(a))
	}
}

// WriteAttachment writes an attachment header followed by its value.
func WriteAttachment(writer io.Writer, a attachment.Attachment, readOnly bool) {
	suffix := ""
	if readOnly {
		suffix = " (read-only)"
	}

	notify.Infof(writer, "%s%s", AttachmentLabel(a), suffix)
	_, _ = fmt.Fprintln(writer, strings.TrimRight(a.Value, "\n"))
}

// WriteOptions writes the attach menu of subject.
func WriteOptions(writer io.Writer, subject chatcontext.Subject, options []chatcontext.Option) {
	if subject.IsEmpty() {
		notify.Infof(writer, "no context: use /location or /use to choose one")

		return
	}

	notify.Infof(writer, "context: %s", SubjectLabel(subject))

	for _, option := range options {
		if option.Disabled {
			notify.Detailf(writer, "%s (%s)", option.Label, option.Reason)

			continue
		}

		notify.Detailf(writer, "%s → /attach %s", option.Label, attachKeyword(subject, option.Type))
	}
}

// WriteEvents lists the events loaded for the context, newest last.
func WriteEvents(writer io.Writer, events []corev1.Event) {
	if len(events) == 0 {
		return
	}

	notify.Infof(writer, "events (%d):", len(events))

	for _, event := range events {
		notify.Detailf(writer, "%s %s: %s", event.Type, event.Reason, strings.TrimSpace(event.Message))
	}
}

// WriteFeedbackState prints the feedback given on an assistant entry.
func WriteFeedbackState(writer io.Writer, state feedback.State) {
	sentiment := "no rating"

	if state.Sentiment != nil {
		switch *state.Sentiment {
		case feedback.ThumbsUp:
			sentiment = "👍"
		case feedback.ThumbsDown:
			sentiment = "👎"
		}
	}

	var status string

	switch {
	case state.Submitted:
		status = "feedback sent"
	case state.IsOpen:
		status = "feedback draft"
	default:
		return
	}

	if state.Text != "" {
		notify.Detailf(writer, "%s %s: %s", status, sentiment, state.Text)

		return
	}

	notify.Detailf(writer, "%s %s", status, sentiment)
}

// AuthLabel returns a display form of an authorization status.
func AuthLabel(status fmt.Stringer) string {
	return cases.Title(language.English).String(status.String())
}
