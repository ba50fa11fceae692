package feedback

import (
	"errors"
	"fmt"
)

// Sentiment values accepted by SetSentiment.
const (
	ThumbsDown = -1
	ThumbsUp   = 1
)

// Sentinel errors for feedback operations.
var (
	// ErrDisabled is returned for any change while feedback is disabled.
	ErrDisabled = errors.New("feedback is disabled")
	// ErrNotOpen is returned when editing a form that is not open.
	ErrNotOpen = errors.New("feedback form is not open")
	// ErrInvalidSentiment is returned for sentiments other than -1 and 1.
	ErrInvalidSentiment = errors.New("sentiment must be -1 or 1")
	// ErrEmptyFeedback is returned when submitting a form without a sentiment.
	ErrEmptyFeedback = errors.New("feedback has no sentiment")
	// ErrAlreadySubmitted is returned when changing feedback that was already sent.
	ErrAlreadySubmitted = errors.New("feedback already submitted")
)

// State is the feedback form of a single assistant entry.
type State struct {
	IsOpen    bool
	Sentiment *int
	Text      string
	Submitted bool
}

// Store keeps feedback state per assistant entry index.
//
// Store is not safe for concurrent use; the owning session serialises access.
type Store struct {
	enabled bool
	// committed holds the last submitted or opened-then-closed state.
	committed map[int]State
	// drafts holds forms currently open for editing.
	drafts map[int]State
}

// NewStore creates an empty store.
func NewStore(enabled bool) *Store {
	return &Store{
		enabled:   enabled,
		committed: make(map[int]State),
		drafts:    make(map[int]State),
	}
}

// Enabled reports whether feedback can be given.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Disable turns feedback off for the rest of the session and closes open forms.
func (s *Store) Disable() {
	s.enabled = false
	clear(s.drafts)
}

// Open opens the form for the entry at index, keeping an already open draft.
func (s *Store) Open(index int) error {
	if !s.enabled {
		return ErrDisabled
	}

	if _, ok := s.drafts[index]; ok {
		return nil
	}

	state := s.committed[index]
	if state.Submitted {
		return fmt.Errorf("%w: entry %d", ErrAlreadySubmitted, index)
	}

	state.IsOpen = true
	s.drafts[index] = state

	return nil
}

// Close closes the form and discards edits made since it was opened.
func (s *Store) Close(index int) {
	delete(s.drafts, index)
}

// SetSentiment sets the sentiment of an open form.
func (s *Store) SetSentiment(index, sentiment int) error {
	if sentiment != ThumbsDown && sentiment != ThumbsUp {
		return fmt.Errorf("%w: got %d", ErrInvalidSentiment, sentiment)
	}

	return s.update(index, func(state *State) {
		state.Sentiment = &sentiment
	})
}

// SetText sets the free-text comment of an open form.
func (s *Store) SetText(index int, text string) error {
	return s.update(index, func(state *State) {
		state.Text = text
	})
}

// Draft returns the open form of the entry at index, validated for submission.
func (s *Store) Draft(index int) (State, error) {
	if !s.enabled {
		return State{}, ErrDisabled
	}

	draft, ok := s.drafts[index]
	if !ok {
		return State{}, fmt.Errorf("%w: entry %d", ErrNotOpen, index)
	}

	if draft.Sentiment == nil {
		return State{}, ErrEmptyFeedback
	}

	return copyState(draft), nil
}

// MarkSubmitted commits the open form of the entry at index as sent and closes it.
func (s *Store) MarkSubmitted(index int) {
	state, ok := s.drafts[index]
	if !ok {
		state = s.committed[index]
	}

	delete(s.drafts, index)

	state.IsOpen = false
	state.Submitted = true
	s.committed[index] = state
}

// State returns the feedback state of the entry at index. Open drafts take precedence.
func (s *Store) State(index int) State {
	if draft, ok := s.drafts[index]; ok {
		return copyState(draft)
	}

	return copyState(s.committed[index])
}

// All returns the states of every entry that has feedback.
func (s *Store) All() map[int]State {
	out := make(map[int]State, len(s.committed)+len(s.drafts))
	for index, state := range s.committed {
		out[index] = copyState(state)
	}

	for index, state := range s.drafts {
		out[index] = copyState(state)
	}

	return out
}

// Clear drops all feedback state. The enabled flag is kept.
func (s *Store) Clear() {
	clear(s.committed)
	clear(s.drafts)
}

func (s *Store) update(index int, apply func(*State)) error {
	if !s.enabled {
		return ErrDisabled
	}

	draft, ok := s.drafts[index]
	if !ok {
		return fmt.Errorf("%w: entry %d", ErrNotOpen, index)
	}

	apply(&draft)
	s.drafts[index] = draft

	return nil
}

func copyState(state State) State {
	if state.Sentiment != nil {
		sentiment := *state.Sentiment
		state.Sentiment = &sentiment
	}

	return state
}
