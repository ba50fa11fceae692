package session

import (
	"context"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

// Querier sends a query to the assistant service.
type Querier interface {
	Query(ctx context.Context, req ols.QueryRequest) (*ols.QueryResponse, error)
}

// FeedbackSender submits user feedback.
type FeedbackSender interface {
	SendFeedback(ctx context.Context, req ols.FeedbackRequest) error
}

// FeedbackStatusChecker reports whether the service accepts feedback.
type FeedbackStatusChecker interface {
	FeedbackEnabled(ctx context.Context) (bool, error)
}

// AuthChecker checks whether the user may use the service.
type AuthChecker interface {
	CheckAuth(ctx context.Context) (ols.AuthStatus, error)
}

// ResourceGetter fetches the subject object. A nil object means it does not exist.
type ResourceGetter interface {
	Get(ctx context.Context, ref k8s.ObjectRef) (*unstructured.Unstructured, error)
}

// EventLister lists the events of an object.
type EventLister interface {
	ListEvents(ctx context.Context, namespace string, uid types.UID) ([]corev1.Event, error)
}

// LogReader reads a log excerpt of a pod or workload.
type LogReader interface {
	Excerpt(ctx context.Context, obj *unstructured.Unstructured, opts k8s.LogOptions) (*k8s.LogExcerpt, error)
}

// AlertFinder finds the firing alert whose labels contain the given labels.
type AlertFinder interface {
	FindAlert(ctx context.Context, labels map[string]string) (*promv1.Alert, error)
}

// Listener receives notifications about view-relevant changes.
// Calls are made without the session lock held, possibly from the goroutine awaiting a
// query, so implementations must be safe for concurrent use.
type Listener interface {
	// EntryAppended is called after an entry was committed to history.
	EntryAppended(index int, entry history.Entry)
	// ResponseDiscarded is called when the outcome of a query issued before a new chat arrives.
	ResponseDiscarded(entry history.AssistantEntry)
	// WaitingChanged toggles the awaiting-response indicator.
	WaitingChanged(waiting bool)
	ScrollToTail()
	FocusPrompt()
}

// NopListener ignores every notification. Embed it to implement only some methods.
type NopListener struct{}

// EntryAppended implements Listener.
func (NopListener) EntryAppended(int, history.Entry) {}

// ResponseDiscarded implements Listener.
func (NopListener) ResponseDiscarded(history.AssistantEntry) {}

// WaitingChanged implements Listener.
func (NopListener) WaitingChanged(bool) {}

// ScrollToTail implements Listener.
func (NopListener) ScrollToTail() {}

// FocusPrompt implements Listener.
func (NopListener) FocusPrompt() {}

// Dependencies are the collaborators of a Session. Only Querier is required; actions
// needing a missing collaborator fail with ErrAdapterMissing.
type Dependencies struct {
	Querier        Querier
	Feedback       FeedbackSender
	FeedbackStatus FeedbackStatusChecker
	Auth           AuthChecker
	Resources      ResourceGetter
	Events         EventLister
	Logs           LogReader
	Alerts         AlertFinder
	Listener       Listener
}
