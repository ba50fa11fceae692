package session

import "errors"

var (
	// ErrQuerierRequired is returned by New when no query transport is given.
	ErrQuerierRequired = errors.New("session: querier is required")
	// ErrEmptyPrompt is returned when submitting an empty or whitespace-only prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrPromptingBlocked is returned when the service rejected the user's credentials.
	ErrPromptingBlocked = errors.New("prompting is blocked until authentication succeeds")
	// ErrSubmissionInFlight is returned when a query is already awaiting its response.
	ErrSubmissionInFlight = errors.New("a query is already in flight")
	// ErrEmptyResponse is the failure recorded when the service returns no body.
	ErrEmptyResponse = errors.New("empty response from the assistant service")
	// ErrQueryTimeout is the failure recorded when the service does not answer in time.
	ErrQueryTimeout = errors.New("query timed out")
	// ErrNoContext is returned when there is no subject to attach.
	ErrNoContext = errors.New("could not get context")
	// ErrUnsupportedAttachment is returned when the subject does not offer an attachment type.
	ErrUnsupportedAttachment = errors.New("attachment type is not available for this context")
	// ErrNoEvents is returned when attaching events of a subject that has none.
	ErrNoEvents = errors.New("no events")
	// ErrLookup wraps failures to locate an alert definition.
	ErrLookup = errors.New("alert lookup failed")
	// ErrContextChanged is returned when a new chat started while an attach action was running.
	ErrContextChanged = errors.New("chat was reset while attaching")
	// ErrAdapterMissing is returned when an action needs a collaborator that is not configured.
	ErrAdapterMissing = errors.New("no adapter configured")
	// ErrNoNewChatPending is returned when confirming a new chat that was not requested.
	ErrNoNewChatPending = errors.New("no new chat confirmation is pending")
	// ErrEntryNotFound is returned for history indexes or archived attachment ids that do not exist.
	ErrEntryNotFound = errors.New("chat entry not found")
	// ErrNotAssistantEntry is returned when an operation needs a successful assistant entry.
	ErrNotAssistantEntry = errors.New("chat entry is not an assistant response")
	// ErrCodeBlockNotFound is returned for code block indexes out of range.
	ErrCodeBlockNotFound = errors.New("code block not found")
)
