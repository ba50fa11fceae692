package k8s_test

import (
	"testing"
	"time"

	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/fake"
)

func newEvent(name string, uid types.UID, reason string, at time.Time) *corev1.Event {
	return &corev1.Event{
		ObjectMeta:     metav1.ObjectMeta{Name: name, Namespace: "shop"},
		InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: "web-0", UID: uid},
		Reason:         reason,
		LastTimestamp:  metav1.NewTime(at),
	}
}

func TestListEvents_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	clientset := fake.NewClientset(
		newEvent("late", "pod-uid", "BackOff", now.Add(time.Minute)),
		newEvent("early", "pod-uid", "Pulled", now),
		newEvent("other", "other-uid", "Scheduled", now),
	)

	events, err := k8s.NewEventClient(clientset).ListEvents(t.Context(), "shop", "pod-uid")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Pulled", events[0].Reason)
	assert.Equal(t, "BackOff", events[1].Reason)
}

func TestListEvents_None(t *testing.T) {
	t.Parallel()

	events, err := k8s.NewEventClient(fake.NewClientset()).ListEvents(t.Context(), "shop", "pod-uid")

	require.NoError(t, err)
	assert.Empty(t, events)
}
