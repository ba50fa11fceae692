package session

import (
	"context"
	"fmt"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/feedback"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
)

// FeedbackEnabled reports whether feedback can be given.
func (s *Session) FeedbackEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedback.Enabled()
}

// RefreshFeedbackStatus asks the service whether it accepts feedback and disables
// feedback for the session when it does not.
func (s *Session) RefreshFeedbackStatus(ctx context.Context) error {
	if s.deps.FeedbackStatus == nil {
		return fmt.Errorf("%w: feedback status", ErrAdapterMissing)
	}

	enabled, err := s.deps.FeedbackStatus.FeedbackEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh feedback status: %w", err)
	}

	if !enabled {
		s.mu.Lock()
		s.feedback.Disable()
		s.mu.Unlock()
	}

	return nil
}

// FeedbackState returns the feedback form of the assistant entry at index.
func (s *Session) FeedbackState(index int) feedback.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedback.State(index)
}

// FeedbackStates returns the feedback forms of every assistant entry that has one, by index.
func (s *Session) FeedbackStates() map[int]feedback.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedback.All()
}

// OpenFeedback opens the feedback form of a successful assistant entry.
func (s *Session) OpenFeedback(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.responseLocked(index)
	if err != nil {
		return err
	}

	return s.feedback.Open(index)
}

// CloseFeedback closes a feedback form, discarding unsent edits.
func (s *Session) CloseFeedback(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedback.Close(index)
}

// SetFeedbackSentiment sets the sentiment of an open form, -1 or 1.
func (s *Session) SetFeedbackSentiment(index, sentiment int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedback.SetSentiment(index, sentiment)
}

// SetFeedbackText sets the comment of an open form.
func (s *Session) SetFeedbackText(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.feedback.SetText(index, text)
}

// SubmitFeedback sends the open form of the entry at index together with the question
// and response it refers to.
func (s *Session) SubmitFeedback(ctx context.Context, index int) error {
	if s.deps.Feedback == nil {
		return fmt.Errorf("%w: feedback", ErrAdapterMissing)
	}

	s.mu.Lock()

	draft, err := s.feedback.Draft(index)
	if err != nil {
		s.mu.Unlock()

		return err
	}

	response, err := s.responseLocked(index)
	if err != nil {
		s.mu.Unlock()

		return err
	}

	question, _ := s.history.QuestionFor(index)
	req := ols.FeedbackRequest{
		ConversationID: s.conversationID,
		UserQuestion:   question,
		LLMResponse:    response.Text,
		Sentiment:      *draft.Sentiment,
		UserFeedback:   draft.Text,
	}
	epoch := s.epoch

	s.mu.Unlock()

	err = s.deps.Feedback.SendFeedback(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send feedback: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch == epoch {
		s.feedback.MarkSubmitted(index)
	}

	return nil
}

func (s *Session) responseLocked(index int) (history.AssistantEntry, error) {
	entry, ok := s.history.At(index)
	if !ok {
		return history.AssistantEntry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, index)
	}

	response, ok := entry.(history.AssistantEntry)
	if !ok || response.Failed() {
		return history.AssistantEntry{}, fmt.Errorf("%w: %d", ErrNotAssistantEntry, index)
	}

	return response, nil
}
