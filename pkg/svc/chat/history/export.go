package history

import (
	"fmt"
	"io"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"gopkg.in/yaml.v3"
)

// transcriptEntry is the YAML shape of one exported chat entry.
type transcriptEntry struct {
	Who         Author                  `yaml:"who"`
	Text        string                  `yaml:"text,omitempty"`
	Attachments []attachment.Attachment `yaml:"attachments,omitempty"`
	Truncated   bool                    `yaml:"truncated,omitempty"`
	References  []Reference             `yaml:"references,omitempty"`
	Error       *ErrorPayload           `yaml:"error,omitempty"`
}

// transcript is the exported conversation.
type transcript struct {
	ConversationID string            `yaml:"conversationID,omitempty"`
	Entries        []transcriptEntry `yaml:"entries"`
}

// Export writes the conversation as a YAML transcript.
func Export(writer io.Writer, conversationID string, entries []Entry) error {
	doc := transcript{
		ConversationID: conversationID,
		Entries:        make([]transcriptEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		switch e := entry.(type) {
		case UserEntry:
			doc.Entries = append(doc.Entries, transcriptEntry{
				Who:         AuthorUser,
				Text:        e.Text,
				Attachments: e.Attachments,
			})
		case AssistantEntry:
			doc.Entries = append(doc.Entries, transcriptEntry{
				Who:        AuthorAI,
				Text:       e.Text,
				Truncated:  e.IsTruncated,
				References: e.References,
				Error:      e.Error,
			})
		}
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	err := encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to flush transcript: %w", err)
	}

	return nil
}
