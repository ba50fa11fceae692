package slash_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

const answerWithCode = "Scale it:\n\n```bash\noc scale deploy/web --replicas=3\n```\n"

type staticQuerier struct {
	response string
}

func (q staticQuerier) Query(context.Context, ols.QueryRequest) (*ols.QueryResponse, error) {
	return &ols.QueryResponse{ConversationID: "conv-1", Response: q.response}, nil
}

type staticResources map[string]*unstructured.Unstructured

func (r staticResources) Get(_ context.Context, ref k8s.ObjectRef) (*unstructured.Unstructured, error) {
	return r[ref.GroupVersionKind.Kind+"/"+ref.Namespace+"/"+ref.Name], nil
}

type staticEvents []corev1.Event

func (e staticEvents) ListEvents(context.Context, string, types.UID) ([]corev1.Event, error) {
	return e, nil
}

type recordingFeedback struct {
	requests []ols.FeedbackRequest
}

func (f *recordingFeedback) SendFeedback(_ context.Context, req ols.FeedbackRequest) error {
	f.requests = append(f.requests, req)

	return nil
}

type staticAuth ols.AuthStatus

func (a staticAuth) CheckAuth(context.Context) (ols.AuthStatus, error) {
	return ols.AuthStatus(a), nil
}

func newService(namespace, name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "v1",
		"kind":       "Service",
		"metadata":   map[string]any{"name": name, "namespace": namespace},
		"spec":       map[string]any{"type": "ClusterIP"},
	}}
}

func newDeployment(namespace, name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata":   map[string]any{"name": name, "namespace": namespace, "uid": "deploy-uid"},
	}}
}

func newChat(t *testing.T, deps session.Dependencies) *session.Session {
	t.Helper()

	if deps.Querier == nil {
		deps.Querier = staticQuerier{response: answerWithCode}
	}

	if deps.Resources == nil {
		deps.Resources = staticResources{"Service/shop/web": newService("shop", "web")}
	}

	chat, err := session.New(deps, session.DefaultConfig())
	require.NoError(t, err)

	return chat
}

func ask(t *testing.T, chat *session.Session, prompt string) {
	t.Helper()

	chat.SetQuery(prompt)

	submission, err := chat.Submit(t.Context())
	require.NoError(t, err)

	_, err = submission.Wait(t.Context())
	require.NoError(t, err)
}
