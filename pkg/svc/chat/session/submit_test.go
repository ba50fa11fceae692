package session_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/chatcontext"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, deps session.Dependencies, cfg session.Config) *session.Session {
	t.Helper()

	chat, err := session.New(deps, cfg)
	require.NoError(t, err)

	return chat
}

func submit(t *testing.T, chat *session.Session, prompt string) session.Outcome {
	t.Helper()

	chat.SetQuery(prompt)

	submission, err := chat.Submit(t.Context())
	require.NoError(t, err)

	outcome, err := submission.Wait(t.Context())
	require.NoError(t, err)

	return outcome
}

func TestNew_RequiresQuerier(t *testing.T) {
	t.Parallel()

	_, err := session.New(session.Dependencies{}, session.DefaultConfig())
	require.ErrorIs(t, err, session.ErrQuerierRequired)
}

func TestSubmit_EmptyPrompt(t *testing.T) {
	t.Parallel()

	for _, prompt := range []string{"", "   ", "\n\t"} {
		querier := &fakeQuerier{respond: answer("abc", "hi")}
		chat := newSession(t, session.Dependencies{Querier: querier}, session.DefaultConfig())
		chat.SetQuery(prompt)

		_, err := chat.Submit(t.Context())

		require.ErrorIs(t, err, session.ErrEmptyPrompt)
		assert.True(t, chat.ValidationFailed())
		assert.Empty(t, chat.Entries())
		assert.Empty(t, querier.Requests())
		assert.False(t, chat.Waiting())

		chat.SetQuery("now with text")
		assert.False(t, chat.ValidationFailed())
	}
}

func TestSubmit_CommitsUserThenAssistantEntry(t *testing.T) {
	t.Parallel()

	listener := &recordingListener{}
	querier := &fakeQuerier{respond: func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return &ols.QueryResponse{
			ConversationID: "abc",
			Response:       "Scale it.",
			Truncated:      true,
			ReferencedDocuments: json.RawMessage(`[
				{"docs_url":"https://docs.example.com/a","title":"A"},
				{"title":"no url"},
				{"docs_url":"https://docs.example.com/b","title":7}
			]`),
		}, nil
	}}

	chat := newSession(t, session.Dependencies{Querier: querier, Listener: listener}, session.DefaultConfig())

	outcome := submit(t, chat, "How do I scale?")

	require.NoError(t, outcome.Err)
	assert.False(t, outcome.Discarded)
	assert.Equal(t, 1, outcome.Index)

	entries := chat.Entries()
	require.Len(t, entries, 2)

	user, ok := entries[0].(history.UserEntry)
	require.True(t, ok)
	assert.Equal(t, "How do I scale?", user.Text)

	ai, ok := entries[1].(history.AssistantEntry)
	require.True(t, ok)
	assert.Equal(t, "Scale it.", ai.Text)
	assert.True(t, ai.IsTruncated)
	assert.Equal(t, []history.Reference{{DocsURL: "https://docs.example.com/a", Title: "A"}}, ai.References)

	assert.Equal(t, "abc", chat.ConversationID())
	assert.Empty(t, chat.Query())
	assert.False(t, chat.Waiting())

	events := listener.snapshot()
	assert.Equal(t, []int{0, 1}, events.appended)
	assert.Equal(t, []bool{true, false}, events.waiting)
	assert.Equal(t, 2, events.scrolls)
	assert.Equal(t, 1, events.focuses)
}

func TestSubmit_CommitsAnswerWhenReferencesAreNotAList(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return &ols.QueryResponse{
			ConversationID:      "abc",
			Response:            "Scale it.",
			ReferencedDocuments: json.RawMessage(`{"docs_url":"https://docs.example.com/a","title":"A"}`),
		}, nil
	}}

	chat := newSession(t, session.Dependencies{Querier: querier}, session.DefaultConfig())

	outcome := submit(t, chat, "How do I scale?")
	require.NoError(t, outcome.Err)

	entry, ok := chat.Entry(outcome.Index)
	require.True(t, ok)

	ai, ok := entry.(history.AssistantEntry)
	require.True(t, ok)
	assert.Equal(t, "Scale it.", ai.Text)
	assert.Empty(t, ai.References)
}

func TestSubmit_ThreadsConversationID(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: answer("abc", "ok")}
	chat := newSession(t, session.Dependencies{Querier: querier}, session.DefaultConfig())

	submit(t, chat, "first")
	submit(t, chat, "second")
	submit(t, chat, "third")

	requests := querier.Requests()
	require.Len(t, requests, 3)
	assert.Empty(t, requests[0].ConversationID)
	assert.Equal(t, "abc", requests[1].ConversationID)
	assert.Equal(t, "abc", requests[2].ConversationID)
	assert.Len(t, chat.Entries(), 6)
}

func TestSubmit_SendsAndArchivesStagedAttachments(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: answer("abc", "ok")}
	deployment := newDeployment("shop", "web")
	chat := newSession(t, session.Dependencies{
		Querier:   querier,
		Resources: newResources(deployment),
	}, session.DefaultConfig())

	chat.SetLocation("/k8s/ns/shop/deployments/web")

	id, err := chat.Attach(t.Context(), session.AttachRequest{Type: attachment.TypeYAML})
	require.NoError(t, err)
	require.NoError(t, chat.OpenAttachment(id))
	require.NoError(t, chat.EditAttachment("kind: Deployment\nedited: true"))

	staged := chat.Attachments()
	require.Len(t, staged, 1)
	assert.True(t, attachment.IsChanged(staged[0]))

	submit(t, chat, "What is wrong?")

	assert.Empty(t, chat.Attachments())
	assert.Equal(t, attachment.PreviewClosed{}, chat.Preview())

	requests := querier.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, []ols.Attachment{{
		Type:      "YAML",
		Kind:      "Deployment",
		Name:      "web",
		Namespace: "shop",
		Value:     "kind: Deployment\nedited: true",
	}}, requests[0].Attachments)

	user, ok := chat.Entries()[0].(history.UserEntry)
	require.True(t, ok)
	require.Len(t, user.Attachments, 1)
	assert.Equal(t, id, user.Attachments[0].ID)
	assert.Nil(t, user.Attachments[0].OriginalValue)
}

func TestSubmit_ServiceErrorBecomesErrorEntry(t *testing.T) {
	t.Parallel()

	listener := &recordingListener{}
	querier := &fakeQuerier{respond: func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return nil, &ols.StatusError{StatusCode: 500, Message: "Unable to process", Cause: "provider down"}
	}}

	chat := newSession(t, session.Dependencies{Querier: querier, Listener: listener}, session.DefaultConfig())

	outcome := submit(t, chat, "q")

	require.Error(t, outcome.Err)

	ai, ok := chat.Entries()[1].(history.AssistantEntry)
	require.True(t, ok)
	require.NotNil(t, ai.Error)
	assert.Equal(t, "Unable to process", ai.Error.Message)
	assert.Equal(t, "provider down", ai.Error.MoreInfo)
	assert.False(t, ai.IsTruncated)
	assert.Empty(t, chat.ConversationID())
	assert.Equal(t, []bool{true, false}, listener.snapshot().waiting)
}

func TestSubmit_TransportErrorBecomesErrorEntry(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return nil, errBoom
	}}

	chat := newSession(t, session.Dependencies{Querier: querier}, session.DefaultConfig())

	submit(t, chat, "q")

	ai, ok := chat.Entries()[1].(history.AssistantEntry)
	require.True(t, ok)
	require.True(t, ai.Failed())
	assert.Contains(t, ai.Error.MoreInfo, "boom")
}

func TestSubmit_TimeoutIsCommittedOnce(t *testing.T) {
	t.Parallel()

	listener := &recordingListener{}
	querier := &fakeQuerier{release: make(chan queryResult)}
	t.Cleanup(func() { close(querier.release) })

	chat := newSession(t, session.Dependencies{Querier: querier, Listener: listener}, session.Config{
		Timeout:         20 * time.Millisecond,
		FeedbackEnabled: true,
	})

	outcome := submit(t, chat, "slow question")

	require.ErrorIs(t, outcome.Err, session.ErrQueryTimeout)

	entries := chat.Entries()
	require.Len(t, entries, 2)

	ai, ok := entries[1].(history.AssistantEntry)
	require.True(t, ok)
	require.True(t, ai.Failed())
	assert.Contains(t, ai.Error.MoreInfo, "timed out")

	chat.Wait()
	assert.Equal(t, []bool{true, false}, listener.snapshot().waiting)
	assert.False(t, chat.Waiting())
}

func TestSubmit_RejectsSecondSubmissionWhileInFlight(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{release: make(chan queryResult, 1)}
	chat := newSession(t, session.Dependencies{Querier: querier}, session.DefaultConfig())

	chat.SetQuery("first")
	submission, err := chat.Submit(t.Context())
	require.NoError(t, err)
	assert.True(t, chat.Waiting())

	chat.SetQuery("second")
	_, err = chat.Submit(t.Context())
	require.ErrorIs(t, err, session.ErrSubmissionInFlight)
	assert.Len(t, chat.Entries(), 1)
	assert.Equal(t, "second", chat.Query())

	querier.release <- queryResult{resp: &ols.QueryResponse{ConversationID: "abc", Response: "ok"}}

	_, err = submission.Wait(t.Context())
	require.NoError(t, err)

	querier.release <- queryResult{resp: &ols.QueryResponse{ConversationID: "abc", Response: "again"}}

	_, err = chat.Submit(t.Context())
	require.NoError(t, err)
	chat.Wait()

	assert.Len(t, chat.Entries(), 4)
}

func TestSubmit_StaleResponseAfterNewChatIsDiscarded(t *testing.T) {
	t.Parallel()

	listener := &recordingListener{}
	querier := &fakeQuerier{release: make(chan queryResult, 1)}
	chat := newSession(t, session.Dependencies{Querier: querier, Listener: listener}, session.DefaultConfig())

	chat.SetQuery("old question")
	submission, err := chat.Submit(t.Context())
	require.NoError(t, err)

	chat.RequestNewChat()
	require.NoError(t, chat.ConfirmNewChat())

	querier.release <- queryResult{resp: &ols.QueryResponse{ConversationID: "old", Response: "late"}}

	outcome, err := submission.Wait(t.Context())
	require.NoError(t, err)

	assert.True(t, outcome.Discarded)
	assert.Equal(t, -1, outcome.Index)
	assert.Empty(t, chat.Entries())
	assert.Empty(t, chat.ConversationID())

	events := listener.snapshot()
	require.Len(t, events.discarded, 1)
	assert.Equal(t, "late", events.discarded[0].Text)
	assert.Equal(t, []bool{true, false}, events.waiting)
}

func TestSubmit_NewChatAcceptsPromptWhileOldQueryIsOpen(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	listener := &recordingListener{}
	querier := &fakeQuerier{respond: func(req ols.QueryRequest) (*ols.QueryResponse, error) {
		if req.Query == "old question" {
			<-gate

			return &ols.QueryResponse{ConversationID: "old", Response: "late"}, nil
		}

		return &ols.QueryResponse{ConversationID: "new", Response: "fresh answer"}, nil
	}}
	chat := newSession(t, session.Dependencies{Querier: querier, Listener: listener}, session.DefaultConfig())

	chat.SetQuery("old question")
	stale, err := chat.Submit(t.Context())
	require.NoError(t, err)

	chat.RequestNewChat()
	require.NoError(t, chat.ConfirmNewChat())

	assert.False(t, chat.Waiting())
	assert.Empty(t, chat.Entries())

	outcome := submit(t, chat, "new question")
	assert.Equal(t, 1, outcome.Index)
	assert.Equal(t, "new", chat.ConversationID())

	close(gate)

	staleOutcome, err := stale.Wait(t.Context())
	require.NoError(t, err)
	assert.True(t, staleOutcome.Discarded)

	entries := chat.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "fresh answer", entries[1].(history.AssistantEntry).Text)
	assert.Equal(t, "new", chat.ConversationID())
	assert.False(t, chat.Waiting())
	assert.Equal(t, []bool{true, false, true, false}, listener.snapshot().waiting)
}

func TestSubmit_BlockedWhenNotAuthorized(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: answer("abc", "ok")}
	chat := newSession(t, session.Dependencies{
		Querier: querier,
		Auth:    fakeAuth{status: ols.AuthNotAuthorized},
	}, session.DefaultConfig())

	status, err := chat.RefreshAuth(t.Context())
	require.NoError(t, err)
	assert.Equal(t, ols.AuthNotAuthorized, status)
	assert.True(t, chat.PromptingBlocked())

	chat.SetQuery("hello")
	_, err = chat.Submit(t.Context())
	require.ErrorIs(t, err, session.ErrPromptingBlocked)
	assert.Empty(t, chat.Entries())
}

func TestConfirmNewChat_ResetsEverything(t *testing.T) {
	t.Parallel()

	querier := &fakeQuerier{respond: answer("abc", "ok")}
	chat := newSession(t, session.Dependencies{
		Querier:   querier,
		Resources: newResources(newDeployment("shop", "web")),
	}, session.DefaultConfig())

	chat.SetContext(&chatcontext.Subject{
		Group: "apps", Version: "v1", Kind: "Deployment", Name: "web", Namespace: "shop",
	})
	submit(t, chat, "first")

	_, err := chat.Attach(t.Context(), session.AttachRequest{Type: attachment.TypeYAMLStatus})
	require.NoError(t, err)

	require.ErrorIs(t, chat.ConfirmNewChat(), session.ErrNoNewChatPending)

	chat.RequestNewChat()
	assert.True(t, chat.NewChatPending())
	chat.CancelNewChat()
	assert.False(t, chat.NewChatPending())
	assert.Len(t, chat.Entries(), 2)

	chat.RequestNewChat()
	require.NoError(t, chat.ConfirmNewChat())

	assert.Empty(t, chat.Entries())
	assert.Empty(t, chat.Attachments())
	assert.Empty(t, chat.ConversationID())
	assert.Nil(t, chat.ExplicitContext())
	assert.True(t, chat.Context().IsEmpty())
	assert.False(t, chat.NewChatPending())

	submit(t, chat, "fresh")
	assert.Empty(t, querier.Requests()[1].ConversationID)
}

func TestExport(t *testing.T) {
	t.Parallel()

	chat := newSession(t, session.Dependencies{Querier: &fakeQuerier{respond: answer("abc", "ok")}}, session.DefaultConfig())
	submit(t, chat, "question")

	var buf bytes.Buffer
	require.NoError(t, chat.Export(&buf))

	assert.Contains(t, buf.String(), "conversationID: abc")
	assert.Contains(t, buf.String(), "text: question")
}
