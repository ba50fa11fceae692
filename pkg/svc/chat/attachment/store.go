package attachment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when an attachment id is not staged.
	ErrNotFound = errors.New("attachment not found")
	// ErrPreviewClosed is returned when editing without an open preview.
	ErrPreviewClosed = errors.New("no attachment is open for preview")
	// ErrReadOnly is returned when editing an archived attachment.
	ErrReadOnly = errors.New("attachment is read-only")
	// ErrSerialization is returned when a value cannot be turned into, or read as, a document.
	ErrSerialization = errors.New("serialization failed")
)

// Store holds the attachments staged for the next outgoing message and the preview slot.
//
// Store is not safe for concurrent use; the owning session serialises access.
type Store struct {
	order   []string
	items   map[string]*Attachment
	preview Preview
	newID   func() string
}

// NewStore creates an empty store that allocates uuid identifiers.
func NewStore() *Store {
	return &Store{
		items:   make(map[string]*Attachment),
		preview: PreviewClosed{},
		newID:   uuid.NewString,
	}
}

// Stage inserts a copy of draft under a freshly allocated identifier and returns it.
// Any ID already set on draft is ignored.
func (s *Store) Stage(draft Attachment) string {
	id := s.newID()
	for s.items[id] != nil {
		id = s.newID()
	}

	draft.ID = id
	if draft.OriginalValue != nil {
		original := *draft.OriginalValue
		draft.OriginalValue = &original
	}

	s.items[id] = &draft
	s.order = append(s.order, id)

	return id
}

// Remove drops the attachment with the given id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}

	delete(s.items, id)

	for i, staged := range s.order {
		if staged == id {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}

	if editable, ok := s.preview.(PreviewEditable); ok && editable.ID == id {
		s.preview = PreviewClosed{}
	}
}

// Clear removes every staged attachment and closes an editable preview.
// A read-only preview of an archived attachment stays open.
func (s *Store) Clear() {
	s.order = nil
	s.items = make(map[string]*Attachment)

	if _, ok := s.preview.(PreviewEditable); ok {
		s.preview = PreviewClosed{}
	}
}

// Len returns the number of staged attachments.
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns a copy of the staged attachment with the given id.
func (s *Store) Get(id string) (Attachment, bool) {
	item, ok := s.items[id]
	if !ok {
		return Attachment{}, false
	}

	return clone(*item), true
}

// Attachments returns copies of the staged attachments in staging order.
func (s *Store) Attachments() []Attachment {
	out := make([]Attachment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(*s.items[id]))
	}

	return out
}

// OpenForPreview opens a staged attachment as editable, replacing whatever was open.
func (s *Store) OpenForPreview(id string) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.preview = PreviewEditable{ID: id}

	return nil
}

// OpenReadOnly opens a snapshot of an archived attachment, replacing whatever was open.
func (s *Store) OpenReadOnly(snapshot Attachment) {
	s.preview = PreviewReadOnly{Snapshot: clone(snapshot)}
}

// ClosePreview empties the preview slot.
func (s *Store) ClosePreview() {
	s.preview = PreviewClosed{}
}

// Preview returns the current preview slot state.
func (s *Store) Preview() Preview {
	return s.preview
}

// Edit replaces the value of the attachment open in an editable preview.
// The first edit records the attach-time value as OriginalValue.
// Structured attachments must remain valid YAML; otherwise the store is left unchanged.
func (s *Store) Edit(value string) error {
	switch preview := s.preview.(type) {
	case PreviewEditable:
		item, ok := s.items[preview.ID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, preview.ID)
		}

		if item.Type.IsStructured() {
			var doc any

			err := yaml.Unmarshal([]byte(value), &doc)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSerialization, err)
			}
		}

		if item.OriginalValue == nil {
			original := item.Value
			item.OriginalValue = &original
		}

		item.Value = value

		return nil
	case PreviewReadOnly:
		return ErrReadOnly
	default:
		return ErrPreviewClosed
	}
}

func clone(a Attachment) Attachment {
	if a.OriginalValue != nil {
		original := *a.OriginalValue
		a.OriginalValue = &original
	}

	return a
}
