package k8s_test

import (
	"testing"

	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/kubernetes/fake"
)

func newPod(name string, labels map[string]string, containers ...string) *corev1.Pod {
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "shop", Labels: labels}}
	for _, container := range containers {
		pod.Spec.Containers = append(pod.Spec.Containers, corev1.Container{Name: container})
	}

	return pod
}

func podObject(name string) *unstructured.Unstructured {
	return newObject(corev1.SchemeGroupVersion.WithKind("Pod"), "shop", name)
}

func deploymentObject(matchLabels map[string]any) *unstructured.Unstructured {
	obj := newObject(deploymentGVK, "shop", "web")
	if matchLabels != nil {
		_ = unstructured.SetNestedMap(obj.Object, map[string]any{"matchLabels": matchLabels}, "spec", "selector")
	}

	return obj
}

func TestExcerpt_SingleContainerPod(t *testing.T) {
	t.Parallel()

	client := k8s.NewLogClient(fake.NewClientset(newPod("web-0", nil, "app")))

	excerpt, err := client.Excerpt(t.Context(), podObject("web-0"), k8s.LogOptions{})

	require.NoError(t, err)
	assert.Equal(t, "web-0", excerpt.Pod)
	assert.Empty(t, excerpt.Owner)
	assert.Equal(t, "fake logs", excerpt.Text)
}

func TestExcerpt_MultipleContainers(t *testing.T) {
	t.Parallel()

	client := k8s.NewLogClient(fake.NewClientset(newPod("web-0", nil, "app", "sidecar")))

	excerpt, err := client.Excerpt(t.Context(), podObject("web-0"), k8s.LogOptions{TailLines: 10})

	require.NoError(t, err)
	assert.Equal(t, "==> app <==\nfake logs\n\n==> sidecar <==\nfake logs", excerpt.Text)
}

func TestExcerpt_SelectedContainer(t *testing.T) {
	t.Parallel()

	client := k8s.NewLogClient(fake.NewClientset(newPod("web-0", nil, "app", "sidecar")))

	excerpt, err := client.Excerpt(t.Context(), podObject("web-0"), k8s.LogOptions{Container: "sidecar"})
	require.NoError(t, err)
	assert.Equal(t, "fake logs", excerpt.Text)

	_, err = client.Excerpt(t.Context(), podObject("web-0"), k8s.LogOptions{Container: "missing"})
	require.ErrorIs(t, err, k8s.ErrContainerNotFound)
}

func TestExcerpt_WorkloadUsesSelector(t *testing.T) {
	t.Parallel()

	client := k8s.NewLogClient(fake.NewClientset(
		newPod("web-abc", map[string]string{"app": "web"}, "app"),
		newPod("db-0", map[string]string{"app": "db"}, "postgres"),
	))

	excerpt, err := client.Excerpt(t.Context(), deploymentObject(map[string]any{"app": "web"}), k8s.LogOptions{})

	require.NoError(t, err)
	assert.Equal(t, "web-abc", excerpt.Pod)
	assert.Equal(t, "web", excerpt.Owner)
}

func TestPodsFor_Errors(t *testing.T) {
	t.Parallel()

	client := k8s.NewLogClient(fake.NewClientset())

	_, err := client.PodsFor(t.Context(), deploymentObject(nil))
	require.ErrorIs(t, err, k8s.ErrNoSelector)

	_, err = client.PodsFor(t.Context(), deploymentObject(map[string]any{"app": "web"}))
	require.ErrorIs(t, err, k8s.ErrNoPods)

	_, err = client.PodsFor(t.Context(), podObject("missing"))
	require.Error(t, err)
}
