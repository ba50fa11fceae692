package ols

import "encoding/json"

// Attachment is the wire shape of a context attachment. Edit tracking is never sent.
type Attachment struct {
	Type      string `json:"type"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Value     string `json:"value"`
}

// QueryRequest is the body of a query.
type QueryRequest struct {
	Attachments    []Attachment `json:"attachments"`
	ConversationID string       `json:"conversation_id,omitempty"`
	Query          string       `json:"query"`
}

// ReferencedDocument is a documentation link cited by a response.
type ReferencedDocument struct {
	DocsURL string `json:"docs_url"`
	Title   string `json:"title"`
}

// QueryResponse is the body of a successful query.
// Loose fields are kept raw because older service versions send them with other shapes.
type QueryResponse struct {
	ConversationID      string          `json:"conversation_id"`
	Query               string          `json:"query"`
	Response            string          `json:"response"`
	ReferencedDocuments json.RawMessage `json:"referenced_documents"`
	Truncated           any             `json:"truncated"`
}

// IsTruncated reports whether the service truncated the conversation history.
// Only a literal true counts.
func (r QueryResponse) IsTruncated() bool {
	truncated, ok := r.Truncated.(bool)

	return ok && truncated
}

// References returns the well-formed referenced documents in order.
// A referenced_documents value that is not an array yields no references.
// Entries whose docs_url or title is missing, empty or not a string are dropped.
func (r QueryResponse) References() []ReferencedDocument {
	var (
		items []json.RawMessage
		refs  []ReferencedDocument
	)

	if json.Unmarshal(r.ReferencedDocuments, &items) != nil {
		return nil
	}

	for _, raw := range items {
		var fields map[string]any

		err := json.Unmarshal(raw, &fields)
		if err != nil {
			continue
		}

		url, urlOK := fields["docs_url"].(string)
		title, titleOK := fields["title"].(string)

		if !urlOK || !titleOK || url == "" || title == "" {
			continue
		}

		refs = append(refs, ReferencedDocument{DocsURL: url, Title: title})
	}

	return refs
}

// FeedbackRequest is the body of a feedback submission.
type FeedbackRequest struct {
	ConversationID string `json:"conversation_id"`
	UserQuestion   string `json:"user_question"`
	LLMResponse    string `json:"llm_response"`
	Sentiment      int    `json:"sentiment"`
	UserFeedback   string `json:"user_feedback,omitempty"`
}

type feedbackStatusResponse struct {
	Functionality string `json:"functionality"`
	Status        struct {
		Enabled bool `json:"enabled"`
	} `json:"status"`
}

// AuthStatus is the outcome of the authorization check.
type AuthStatus int

// Authorization check outcomes.
const (
	AuthUnknown AuthStatus = iota
	AuthAuthorized
	AuthNotAuthenticated
	AuthNotAuthorized
)

// String returns a human readable status.
func (s AuthStatus) String() string {
	switch s {
	case AuthAuthorized:
		return "authorized"
	case AuthNotAuthenticated:
		return "not authenticated"
	case AuthNotAuthorized:
		return "not authorized"
	default:
		return "unknown"
	}
}
