package history

import (
	"slices"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
)

// History is the ordered log of committed chat entries.
// Entries are only ever appended at the tail or cleared all at once.
//
// History is not safe for concurrent use; the owning session serialises access.
type History struct {
	entries []Entry
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Append adds an entry at the tail and returns its index.
// Attachment and reference slices are copied so later changes by the caller do not leak in.
func (h *History) Append(entry Entry) int {
	switch e := entry.(type) {
	case UserEntry:
		e.Attachments = archive(e.Attachments)
		entry = e
	case AssistantEntry:
		e.References = slices.Clone(e.References)
		if e.Error != nil {
			payload := *e.Error
			e.Error = &payload
			e.IsTruncated = false
		}

		entry = e
	}

	h.entries = append(h.entries, entry)

	return len(h.entries) - 1
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i.
func (h *History) At(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return nil, false
	}

	return cloneEntry(h.entries[i]), true
}

// Entries returns copies of the entries in display order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	for i, entry := range h.entries {
		out[i] = cloneEntry(entry)
	}

	return out
}

// QuestionFor returns the text of the user entry answered by the assistant entry at index i.
func (h *History) QuestionFor(i int) (string, bool) {
	for j := min(i, len(h.entries)) - 1; j >= 0; j-- {
		if user, ok := h.entries[j].(UserEntry); ok {
			return user.Text, true
		}
	}

	return "", false
}

func cloneEntry(entry Entry) Entry {
	switch e := entry.(type) {
	case UserEntry:
		e.Attachments = slices.Clone(e.Attachments)

		return e
	case AssistantEntry:
		e.References = slices.Clone(e.References)
		if e.Error != nil {
			payload := *e.Error
			e.Error = &payload
		}

		return e
	default:
		return entry
	}
}

func archive(in []attachment.Attachment) []attachment.Attachment {
	if len(in) == 0 {
		return nil
	}

	out := make([]attachment.Attachment, len(in))
	for i, a := range in {
		out[i] = a.Archived()
	}

	return out
}
