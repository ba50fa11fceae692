package session_test

import (
	"context"
	"errors"
	"sync"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

var (
	errBoom     = errors.New("boom")
	errNotFound = errors.New("no alert matched")
)

type queryResult struct {
	resp *ols.QueryResponse
	err  error
}

// fakeQuerier answers queries with respond, or blocks on release when respond is nil.
type fakeQuerier struct {
	mu       sync.Mutex
	requests []ols.QueryRequest
	respond  func(req ols.QueryRequest) (*ols.QueryResponse, error)
	release  chan queryResult
}

func (f *fakeQuerier) Query(_ context.Context, req ols.QueryRequest) (*ols.QueryResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(req)
	}

	result := <-f.release

	return result.resp, result.err
}

func (f *fakeQuerier) Requests() []ols.QueryRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]ols.QueryRequest(nil), f.requests...)
}

func answer(conversationID, text string) func(ols.QueryRequest) (*ols.QueryResponse, error) {
	return func(ols.QueryRequest) (*ols.QueryResponse, error) {
		return &ols.QueryResponse{ConversationID: conversationID, Response: text}, nil
	}
}

type recordingListener struct {
	mu        sync.Mutex
	appended  []int
	discarded []history.AssistantEntry
	waiting   []bool
	scrolls   int
	focuses   int
}

func (l *recordingListener) EntryAppended(index int, _ history.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.appended = append(l.appended, index)
}

func (l *recordingListener) ResponseDiscarded(entry history.AssistantEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.discarded = append(l.discarded, entry)
}

func (l *recordingListener) WaitingChanged(waiting bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.waiting = append(l.waiting, waiting)
}

func (l *recordingListener) ScrollToTail() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scrolls++
}

func (l *recordingListener) FocusPrompt() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.focuses++
}

func (l *recordingListener) snapshot() recordingListener {
	l.mu.Lock()
	defer l.mu.Unlock()

	return recordingListener{
		appended:  append([]int(nil), l.appended...),
		discarded: append([]history.AssistantEntry(nil), l.discarded...),
		waiting:   append([]bool(nil), l.waiting...),
		scrolls:   l.scrolls,
		focuses:   l.focuses,
	}
}

type fakeResources struct {
	objects map[string]*unstructured.Unstructured
	err     error
}

func (f *fakeResources) Get(_ context.Context, ref k8s.ObjectRef) (*unstructured.Unstructured, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.objects[ref.GroupVersionKind.Kind+"/"+ref.Namespace+"/"+ref.Name], nil
}

func newResources(objects ...*unstructured.Unstructured) *fakeResources {
	resources := &fakeResources{objects: make(map[string]*unstructured.Unstructured)}
	for _, obj := range objects {
		resources.objects[obj.GetKind()+"/"+obj.GetNamespace()+"/"+obj.GetName()] = obj
	}

	return resources
}

type fakeEvents struct {
	events []corev1.Event
}

func (f *fakeEvents) ListEvents(context.Context, string, types.UID) ([]corev1.Event, error) {
	return f.events, nil
}

type fakeLogs struct {
	opts k8s.LogOptions
}

func (f *fakeLogs) Excerpt(
	_ context.Context,
	obj *unstructured.Unstructured,
	opts k8s.LogOptions,
) (*k8s.LogExcerpt, error) {
	f.opts = opts

	return &k8s.LogExcerpt{Pod: obj.GetName() + "-abc", Namespace: obj.GetNamespace(), Owner: obj.GetName(), Text: "started"}, nil
}

type fakeAlerts struct {
	alert *promv1.Alert
}

func (f *fakeAlerts) FindAlert(context.Context, map[string]string) (*promv1.Alert, error) {
	if f.alert == nil {
		return nil, errNotFound
	}

	return f.alert, nil
}

type fakeFeedback struct {
	requests []ols.FeedbackRequest
	enabled  bool
}

func (f *fakeFeedback) SendFeedback(_ context.Context, req ols.FeedbackRequest) error {
	f.requests = append(f.requests, req)

	return nil
}

func (f *fakeFeedback) FeedbackEnabled(context.Context) (bool, error) {
	return f.enabled, nil
}

type fakeAuth struct {
	status ols.AuthStatus
}

func (f fakeAuth) CheckAuth(context.Context) (ols.AuthStatus, error) {
	return f.status, nil
}
