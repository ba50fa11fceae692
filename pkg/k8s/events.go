package k8s

import (
	"context"
	"fmt"
	"slices"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
)

// EventClient lists the events recorded for an object.
type EventClient struct {
	clientset kubernetes.Interface
}

// NewEventClient creates an EventClient.
func NewEventClient(clientset kubernetes.Interface) *EventClient {
	return &EventClient{clientset: clientset}
}

// ListEvents returns the events involving the object with the given uid, oldest first.
func (c *EventClient) ListEvents(ctx context.Context, namespace string, uid types.UID) ([]corev1.Event, error) {
	selector := fields.OneTermEqualSelector("involvedObject.uid", string(uid)).String()

	list, err := c.clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{FieldSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	// Field selectors are not honoured by every server implementation.
	events := slices.DeleteFunc(list.Items, func(event corev1.Event) bool {
		return event.InvolvedObject.UID != uid
	})

	slices.SortStableFunc(events, func(a, b corev1.Event) int {
		return eventTime(a).Compare(eventTime(b))
	})

	return events, nil
}

func eventTime(event corev1.Event) time.Time {
	switch {
	case !event.LastTimestamp.IsZero():
		return event.LastTimestamp.Time
	case !event.EventTime.IsZero():
		return event.EventTime.Time
	default:
		return event.FirstTimestamp.Time
	}
}
