package history

import "github.com/devantler-tech/olschat/pkg/svc/chat/attachment"

// Author identifies who wrote a chat entry.
type Author string

// Chat entry authors.
const (
	AuthorUser Author = "user"
	AuthorAI   Author = "ai"
)

// Entry is a single committed chat entry. It is either a UserEntry or an AssistantEntry.
type Entry interface {
	Author() Author
}

// UserEntry is a prompt together with the attachments archived at submission time.
type UserEntry struct {
	Text        string
	Attachments []attachment.Attachment
}

// Author implements Entry.
func (UserEntry) Author() Author { return AuthorUser }

// Attachment returns the archived attachment with the given id.
func (e UserEntry) Attachment(id string) (attachment.Attachment, bool) {
	for _, a := range e.Attachments {
		if a.ID == id {
			return a, true
		}
	}

	return attachment.Attachment{}, false
}

// Reference is a documentation link returned with an assistant response.
type Reference struct {
	DocsURL string `json:"docs_url" yaml:"docs_url"`
	Title   string `json:"title"    yaml:"title"`
}

// ErrorPayload describes a failed query.
// Message is a short summary; MoreInfo carries the verbose cause when the service sent one.
type ErrorPayload struct {
	Message  string `yaml:"message"`
	MoreInfo string `yaml:"moreInfo,omitempty"`
}

// AssistantEntry is the outcome of a query: a response or an error.
type AssistantEntry struct {
	Text        string
	IsTruncated bool
	References  []Reference
	Error       *ErrorPayload
}

// Author implements Entry.
func (AssistantEntry) Author() Author { return AuthorAI }

// Failed reports whether the entry carries an error payload.
func (e AssistantEntry) Failed() bool {
	return e.Error != nil
}
