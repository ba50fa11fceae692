package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
)

const (
	queryFailedMessage  = "Error querying the assistant service"
	queryTimeoutMessage = "The assistant service did not respond in time"
)

// Outcome is how a submission ended.
type Outcome struct {
	// Index is the history index of the assistant entry, -1 when discarded.
	Index int
	Entry history.AssistantEntry
	// Err is the query failure, nil on success.
	Err error
	// Discarded is set when a new chat started before the response arrived.
	Discarded bool
}

// Submission is a query awaiting its response.
type Submission struct {
	// UserIndex is the history index of the committed user entry.
	UserIndex int

	epoch   uint64
	done    chan struct{}
	outcome Outcome
}

// Done is closed once the submission has settled.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the submission settles or ctx is done.
func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.outcome, nil
	case <-ctx.Done():
		return Outcome{}, fmt.Errorf("waiting for response: %w", ctx.Err())
	}
}

// Submit commits the prompt as a user entry with the staged attachments and sends the
// query. The assistant entry is committed asynchronously; use the returned Submission or
// the Listener to observe it. The query is bounded by the configured timeout and by ctx.
func (s *Session) Submit(ctx context.Context) (*Submission, error) {
	s.mu.Lock()

	if s.authStatus == ols.AuthNotAuthenticated || s.authStatus == ols.AuthNotAuthorized {
		s.mu.Unlock()

		return nil, ErrPromptingBlocked
	}

	if s.inFlight != nil {
		s.mu.Unlock()

		return nil, ErrSubmissionInFlight
	}

	if strings.TrimSpace(s.query) == "" {
		s.validationFailed = true
		s.mu.Unlock()

		return nil, ErrEmptyPrompt
	}

	staged := s.attachments.Attachments()
	userEntry := history.UserEntry{Text: s.query, Attachments: staged}
	userIndex := s.history.Append(userEntry)
	committed, _ := s.history.At(userIndex)

	req := ols.QueryRequest{
		Attachments:    toWire(staged),
		ConversationID: s.conversationID,
		Query:          s.query,
	}

	s.attachments.Clear()
	s.query = ""
	s.validationFailed = false

	submission := &Submission{UserIndex: userIndex, epoch: s.epoch, done: make(chan struct{})}
	s.inFlight = submission
	s.pending.Add(1)

	s.mu.Unlock()

	s.listener.EntryAppended(userIndex, committed)
	s.listener.FocusPrompt()
	s.listener.ScrollToTail()
	s.listener.WaitingChanged(true)

	go s.await(ctx, submission, req)

	return submission, nil
}

func (s *Session) await(ctx context.Context, submission *Submission, req ols.QueryRequest) {
	defer s.pending.Done()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	type result struct {
		resp *ols.QueryResponse
		err  error
	}

	results := make(chan result, 1)

	go func() {
		resp, err := s.deps.Querier.Query(ctx, req)
		results <- result{resp: resp, err: err}
	}()

	var res result

	select {
	case res = <-results:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}

	if res.err == nil && res.resp == nil {
		res.err = ErrEmptyResponse
	}

	s.settle(submission, res.resp, res.err)
}

// settle commits the outcome of a submission and clears the waiting indicator.
func (s *Session) settle(submission *Submission, resp *ols.QueryResponse, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", ErrQueryTimeout, s.cfg.Timeout, err)
	}

	entry := assistantEntry(resp, err)

	s.mu.Lock()

	current := s.inFlight == submission
	if current {
		s.inFlight = nil
	}

	outcome := Outcome{Index: -1, Entry: entry, Err: err}

	if submission.epoch != s.epoch {
		outcome.Discarded = true
	} else {
		if err == nil && resp.ConversationID != "" {
			s.conversationID = resp.ConversationID
		}

		outcome.Index = s.history.Append(entry)
	}

	submission.outcome = outcome

	s.mu.Unlock()

	if outcome.Discarded {
		s.listener.ResponseDiscarded(entry)
	} else {
		s.listener.EntryAppended(outcome.Index, entry)
		s.listener.ScrollToTail()
	}

	if current {
		s.listener.WaitingChanged(false)
	}

	close(submission.done)
}

func assistantEntry(resp *ols.QueryResponse, err error) history.AssistantEntry {
	if err != nil {
		return history.AssistantEntry{Error: errorPayload(err)}
	}

	refs := resp.References()
	references := make([]history.Reference, 0, len(refs))

	for _, ref := range refs {
		references = append(references, history.Reference{DocsURL: ref.DocsURL, Title: ref.Title})
	}

	return history.AssistantEntry{
		Text:        resp.Response,
		IsTruncated: resp.IsTruncated(),
		References:  references,
	}
}

// errorPayload keeps both the short summary and the verbose detail of a failure.
func errorPayload(err error) *history.ErrorPayload {
	var statusErr *ols.StatusError

	switch {
	case errors.As(err, &statusErr):
		return &history.ErrorPayload{Message: statusErr.Message, MoreInfo: statusErr.Cause}
	case errors.Is(err, ErrQueryTimeout):
		return &history.ErrorPayload{Message: queryTimeoutMessage, MoreInfo: err.Error()}
	default:
		return &history.ErrorPayload{Message: queryFailedMessage, MoreInfo: err.Error()}
	}
}

func toWire(staged []attachment.Attachment) []ols.Attachment {
	wire := make([]ols.Attachment, 0, len(staged))

	for _, a := range staged {
		wire = append(wire, ols.Attachment{
			Type:      string(a.Type),
			Kind:      a.Kind,
			Name:      a.Name,
			OwnerName: a.OwnerName,
			Namespace: a.Namespace,
			Value:     a.Value,
		})
	}

	return wire
}
