package history_test

import (
	"bytes"
	"testing"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAppend_PreservesOrder(t *testing.T) {
	t.Parallel()

	log := history.New()

	first := log.Append(history.UserEntry{Text: "why is my pod pending?"})
	second := log.Append(history.AssistantEntry{Text: "Check the scheduler events."})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	require.Equal(t, 2, log.Len())

	entries := log.Entries()
	assert.Equal(t, history.AuthorUser, entries[0].Author())
	assert.Equal(t, history.AuthorAI, entries[1].Author())
}

func TestAppend_ArchivesAttachments(t *testing.T) {
	t.Parallel()

	original := "a: 1"
	staged := []attachment.Attachment{{ID: "x", Type: attachment.TypeYAML, Value: "a: 2", OriginalValue: &original}}

	log := history.New()
	log.Append(history.UserEntry{Text: "q", Attachments: staged})

	staged[0].Value = "mutated"

	entry, ok := log.At(0)
	require.True(t, ok)

	user, ok := entry.(history.UserEntry)
	require.True(t, ok)

	archived, found := user.Attachment("x")
	require.True(t, found)
	assert.Equal(t, "a: 2", archived.Value)
	assert.Nil(t, archived.OriginalValue)

	_, found = user.Attachment("missing")
	assert.False(t, found)
}

func TestAppend_ErrorEntryIsNeverTruncated(t *testing.T) {
	t.Parallel()

	log := history.New()
	log.Append(history.AssistantEntry{IsTruncated: true, Error: &history.ErrorPayload{Message: "boom"}})

	entry, _ := log.At(0)
	ai, ok := entry.(history.AssistantEntry)
	require.True(t, ok)
	assert.True(t, ai.Failed())
	assert.False(t, ai.IsTruncated)
}

func TestEntries_ReturnsCopies(t *testing.T) {
	t.Parallel()

	log := history.New()
	log.Append(history.AssistantEntry{
		Text:       "answer",
		References: []history.Reference{{DocsURL: "https://docs.example.com", Title: "Docs"}},
	})

	entries := log.Entries()
	ai, ok := entries[0].(history.AssistantEntry)
	require.True(t, ok)

	ai.References[0].Title = "mutated"

	fresh, _ := log.At(0)
	assert.Equal(t, "Docs", fresh.(history.AssistantEntry).References[0].Title)
}

func TestAt_OutOfRange(t *testing.T) {
	t.Parallel()

	log := history.New()

	_, ok := log.At(0)
	assert.False(t, ok)

	_, ok = log.At(-1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	t.Parallel()

	log := history.New()
	log.Append(history.UserEntry{Text: "q"})
	log.Clear()

	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.Entries())
}

func TestQuestionFor(t *testing.T) {
	t.Parallel()

	log := history.New()
	log.Append(history.UserEntry{Text: "first"})
	log.Append(history.AssistantEntry{Text: "a1"})
	log.Append(history.UserEntry{Text: "second"})
	log.Append(history.AssistantEntry{Text: "a2"})

	question, ok := log.QuestionFor(1)
	require.True(t, ok)
	assert.Equal(t, "first", question)

	question, ok = log.QuestionFor(3)
	require.True(t, ok)
	assert.Equal(t, "second", question)

	_, ok = log.QuestionFor(0)
	assert.False(t, ok)
}

func TestCodeBlocks(t *testing.T) {
	t.Parallel()

	markdown := "Scale it with `kubectl scale`:\n\n" +
		"```yaml\napiVersion: apps/v1\nkind: Deployment\n```\n\n" +
		"Then run:\n\n" +
		"```\noc get pods\n```\n"

	blocks := history.CodeBlocks(markdown)

	require.Len(t, blocks, 2)
	assert.Equal(t, "yaml", blocks[0].Language)
	assert.Equal(t, "apiVersion: apps/v1\nkind: Deployment", blocks[0].Value)
	assert.Empty(t, blocks[1].Language)
	assert.Equal(t, "oc get pods", blocks[1].Value)
}

func TestCodeBlocks_NoBlocks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, history.CodeBlocks("just `inline` code"))
}

func TestExport(t *testing.T) {
	t.Parallel()

	entries := []history.Entry{
		history.UserEntry{
			Text:        "what failed?",
			Attachments: []attachment.Attachment{{ID: "1", Type: attachment.TypeLog, Kind: "Pod", Name: "web-0", Value: "oops"}},
		},
		history.AssistantEntry{Error: &history.ErrorPayload{Message: "timeout", MoreInfo: "no response"}},
	}

	var buf bytes.Buffer

	require.NoError(t, history.Export(&buf, "conv-1", entries))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "conv-1", decoded["conversationID"])

	exported, ok := decoded["entries"].([]any)
	require.True(t, ok)
	require.Len(t, exported, 2)

	user, ok := exported[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", user["who"])
	assert.Equal(t, "what failed?", user["text"])

	ai, ok := exported[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ai", ai["who"])
	assert.Equal(t, map[string]any{"message": "timeout", "moreInfo": "no response"}, ai["error"])
}
