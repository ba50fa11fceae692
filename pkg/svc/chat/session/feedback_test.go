package session_test

import (
	"testing"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/feedback"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	t.Parallel()

	sender := &fakeFeedback{enabled: true}
	chat := newSession(t, session.Dependencies{
		Querier:  &fakeQuerier{respond: answer("conv-7", "Restart the pod.")},
		Feedback: sender,
	}, session.DefaultConfig())

	submit(t, chat, "My pod is stuck")

	require.NoError(t, chat.OpenFeedback(1))
	require.NoError(t, chat.SetFeedbackSentiment(1, feedback.ThumbsDown))
	require.NoError(t, chat.SetFeedbackText(1, "did not help"))
	require.NoError(t, chat.SubmitFeedback(t.Context(), 1))

	require.Len(t, sender.requests, 1)
	assert.Equal(t, ols.FeedbackRequest{
		ConversationID: "conv-7",
		UserQuestion:   "My pod is stuck",
		LLMResponse:    "Restart the pod.",
		Sentiment:      feedback.ThumbsDown,
		UserFeedback:   "did not help",
	}, sender.requests[0])

	state := chat.FeedbackState(1)
	assert.True(t, state.Submitted)
	require.ErrorIs(t, chat.OpenFeedback(1), feedback.ErrAlreadySubmitted)
}

func TestSubmitFeedback_RequiresSentiment(t *testing.T) {
	t.Parallel()

	sender := &fakeFeedback{enabled: true}
	chat := newSession(t, session.Dependencies{
		Querier:  &fakeQuerier{respond: answer("abc", "ok")},
		Feedback: sender,
	}, session.DefaultConfig())

	submit(t, chat, "q")
	require.NoError(t, chat.OpenFeedback(1))

	require.ErrorIs(t, chat.SubmitFeedback(t.Context(), 1), feedback.ErrEmptyFeedback)
	assert.Empty(t, sender.requests)
}

func TestOpenFeedback_Rejects(t *testing.T) {
	t.Parallel()

	failing := &fakeQuerier{respond: func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return nil, errBoom
	}}

	tests := []struct {
		name    string
		querier *fakeQuerier
		cfg     session.Config
		index   int
		wantErr error
	}{
		{
			name:    "user entry",
			querier: &fakeQuerier{respond: answer("abc", "ok")},
			cfg:     session.DefaultConfig(),
			index:   0,
			wantErr: session.ErrNotAssistantEntry,
		},
		{
			name:    "error entry",
			querier: failing,
			cfg:     session.DefaultConfig(),
			index:   1,
			wantErr: session.ErrNotAssistantEntry,
		},
		{
			name:    "missing entry",
			querier: &fakeQuerier{respond: answer("abc", "ok")},
			cfg:     session.DefaultConfig(),
			index:   9,
			wantErr: session.ErrEntryNotFound,
		},
		{
			name:    "feedback disabled",
			querier: &fakeQuerier{respond: answer("abc", "ok")},
			cfg:     session.Config{FeedbackEnabled: false},
			index:   1,
			wantErr: feedback.ErrDisabled,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			chat := newSession(t, session.Dependencies{Querier: testCase.querier}, testCase.cfg)
			submit(t, chat, "q")

			require.ErrorIs(t, chat.OpenFeedback(testCase.index), testCase.wantErr)
		})
	}
}

func TestRefreshFeedbackStatus_Disables(t *testing.T) {
	t.Parallel()

	chat := newSession(t, session.Dependencies{
		Querier:        &fakeQuerier{respond: answer("abc", "ok")},
		FeedbackStatus: &fakeFeedback{enabled: false},
	}, session.DefaultConfig())

	assert.True(t, chat.FeedbackEnabled())
	require.NoError(t, chat.RefreshFeedbackStatus(t.Context()))
	assert.False(t, chat.FeedbackEnabled())
}
