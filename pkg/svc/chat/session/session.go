package session

import (
	"strings"
	"sync"
	"time"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/chatcontext"
	"github.com/devantler-tech/olschat/pkg/svc/chat/feedback"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	corev1 "k8s.io/api/core/v1"
)

const (
	// DefaultTimeout bounds how long a query may wait for its response.
	DefaultTimeout = 10 * time.Minute
	// DefaultLogTailLines is the number of log lines attached per container.
	DefaultLogTailLines int64 = 25
)

// Config holds the options recognised by a Session.
type Config struct {
	Timeout         time.Duration
	FeedbackEnabled bool
	LogTailLines    int64
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		FeedbackEnabled: true,
		LogTailLines:    DefaultLogTailLines,
	}
}

// Session is the state of one chat panel.
type Session struct {
	mu sync.Mutex

	cfg      Config
	deps     Dependencies
	listener Listener

	attachments *attachment.Store
	history     *history.History
	feedback    *feedback.Store

	explicit      *chatcontext.Subject
	location      chatcontext.Location
	events        []corev1.Event
	eventsLoading bool

	conversationID   string
	query            string
	validationFailed bool
	authStatus       ols.AuthStatus
	newChatPending   bool
	imported         *ImportedCode

	epoch    uint64
	inFlight *Submission
	pending  sync.WaitGroup
}

// New creates a session. Zero config values fall back to DefaultConfig.
func New(deps Dependencies, cfg Config) (*Session, error) {
	if deps.Querier == nil {
		return nil, ErrQuerierRequired
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.LogTailLines <= 0 {
		cfg.LogTailLines = DefaultLogTailLines
	}

	listener := deps.Listener
	if listener == nil {
		listener = NopListener{}
	}

	return &Session{
		cfg:         cfg,
		deps:        deps,
		listener:    listener,
		attachments: attachment.NewStore(),
		history:     history.New(),
		feedback:    feedback.NewStore(cfg.FeedbackEnabled),
	}, nil
}

// Wait blocks until every query issued so far has been settled.
func (s *Session) Wait() {
	s.pending.Wait()
}

// SetQuery updates the prompt text. A non-blank prompt clears the validation flag.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = text
	if strings.TrimSpace(text) != "" {
		s.validationFailed = false
	}
}

// Query returns the prompt text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.query
}

// ValidationFailed reports whether the last submission was rejected as empty.
func (s *Session) ValidationFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.validationFailed
}

// Waiting reports whether a query is awaiting its response.
func (s *Session) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inFlight != nil
}

// ConversationID returns the identifier assigned by the service, empty before the first answer.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conversationID
}

// Entries returns the committed history in display order.
func (s *Session) Entries() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Entries()
}

// Entry returns the committed entry at index.
func (s *Session) Entry(index int) (history.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.At(index)
}

// SetLocation records the console page the user is viewing and forgets the events
// loaded for the previous subject.
func (s *Session) SetLocation(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.location = chatcontext.ParseLocation(url)
	s.resetEventsLocked()
}

// SetContext sets or, with nil, clears the explicit subject.
func (s *Session) SetContext(subject *chatcontext.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if subject == nil {
		s.explicit = nil
	} else {
		explicit := *subject
		s.explicit = &explicit
	}

	s.resetEventsLocked()
}

// ExplicitContext returns the explicitly set subject, or nil.
func (s *Session) ExplicitContext() *chatcontext.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.explicit == nil {
		return nil
	}

	explicit := *s.explicit

	return &explicit
}

// Context returns the subject attach actions apply to.
func (s *Session) Context() chatcontext.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contextLocked()
}

func (s *Session) contextLocked() chatcontext.Subject {
	return chatcontext.Resolve(s.explicit, s.location)
}

// AttachOptions returns the attach menu for the current subject.
func (s *Session) AttachOptions() []chatcontext.Option {
	s.mu.Lock()
	defer s.mu.Unlock()

	return chatcontext.Options(s.contextLocked(), s.eventsStateLocked())
}

// ContextEvents returns the events loaded for the current subject.
func (s *Session) ContextEvents() []corev1.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]corev1.Event, len(s.events))
	copy(events, s.events)

	return events
}

// EventsState returns how many events are loaded and whether loading is in progress.
func (s *Session) EventsState() chatcontext.EventsState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.eventsStateLocked()
}

func (s *Session) eventsStateLocked() chatcontext.EventsState {
	return chatcontext.EventsState{Count: len(s.events), Loading: s.eventsLoading}
}

func (s *Session) resetEventsLocked() {
	s.events = nil
	s.eventsLoading = false
}

// Attachments returns the staged attachments in staging order.
func (s *Session) Attachments() []attachment.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attachments.Attachments()
}

// RemoveAttachment drops a staged attachment. Unknown ids are ignored.
func (s *Session) RemoveAttachment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attachments.Remove(id)
}

// OpenAttachment opens a staged attachment for editing.
func (s *Session) OpenAttachment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attachments.OpenForPreview(id)
}

// OpenHistoryAttachment opens an attachment archived with the user entry at index, read-only.
func (s *Session) OpenHistoryAttachment(index int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.history.At(index)
	if !ok {
		return ErrEntryNotFound
	}

	user, ok := entry.(history.UserEntry)
	if !ok {
		return ErrEntryNotFound
	}

	archived, ok := user.Attachment(id)
	if !ok {
		return ErrEntryNotFound
	}

	s.attachments.OpenReadOnly(archived)

	return nil
}

// Preview returns the preview slot.
func (s *Session) Preview() attachment.Preview {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attachments.Preview()
}

// PreviewedAttachment returns the attachment shown in the preview slot.
func (s *Session) PreviewedAttachment() (attachment.Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch preview := s.attachments.Preview().(type) {
	case attachment.PreviewEditable:
		return s.attachments.Get(preview.ID)
	case attachment.PreviewReadOnly:
		return preview.Snapshot, true
	default:
		return attachment.Attachment{}, false
	}
}

// ClosePreview empties the preview slot.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attachments.ClosePreview()
}

// EditAttachment replaces the value of the attachment open for editing.
func (s *Session) EditAttachment(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attachments.Edit(value)
}

// RequestNewChat opens the confirmation step of a new chat.
func (s *Session) RequestNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.newChatPending = true
}

// NewChatPending reports whether a new chat awaits confirmation.
func (s *Session) NewChatPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.newChatPending
}

// CancelNewChat closes the confirmation step without changing anything.
func (s *Session) CancelNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.newChatPending = false
}

// ConfirmNewChat resets the explicit context, the conversation identifier, the history and
// the attachments in one step. A query still in flight does not block submissions in the
// new chat; its outcome is discarded when it settles.
func (s *Session) ConfirmNewChat() error {
	s.mu.Lock()

	if !s.newChatPending {
		s.mu.Unlock()

		return ErrNoNewChatPending
	}

	wasWaiting := s.inFlight != nil
	s.inFlight = nil

	s.newChatPending = false
	s.epoch++

	s.explicit = nil
	s.conversationID = ""
	s.history.Clear()
	s.attachments.Clear()
	s.attachments.ClosePreview()
	s.feedback.Clear()
	s.validationFailed = false
	s.imported = nil
	s.resetEventsLocked()

	s.mu.Unlock()

	if wasWaiting {
		s.listener.WaitingChanged(false)
	}

	return nil
}
