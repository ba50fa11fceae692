package session

import (
	"context"
	"fmt"
	"time"

	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"github.com/devantler-tech/olschat/pkg/svc/chat/chatcontext"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// AttachRequest selects what to attach from the current subject.
type AttachRequest struct {
	Type attachment.Type
	// Container limits a log excerpt to one container.
	Container string
	// Previous reads the logs of the previous container instance.
	Previous bool
}

// eventSummary is the attached form of an event.
type eventSummary struct {
	Type          string `json:"type,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message,omitempty"`
	Count         int32  `json:"count,omitempty"`
	LastTimestamp string `json:"lastTimestamp,omitempty"`
}

// Attach captures an attachment of the current subject and stages it.
// Failures leave the staged attachments unchanged.
func (s *Session) Attach(ctx context.Context, req AttachRequest) (string, error) {
	s.mu.Lock()
	subject := s.contextLocked()
	options := chatcontext.Options(subject, s.eventsStateLocked())
	epoch := s.epoch
	s.mu.Unlock()

	if subject.IsEmpty() {
		return "", ErrNoContext
	}

	if !chatcontext.Allows(options, req.Type) {
		if req.Type == attachment.TypeEvents && chatcontext.SupportsEvents(subject.Kind) {
			return "", ErrNoEvents
		}

		return "", fmt.Errorf("%w: %s for %s", ErrUnsupportedAttachment, req.Type, subject.Kind)
	}

	draft, err := s.capture(ctx, subject, req)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return "", ErrContextChanged
	}

	return s.attachments.Stage(draft), nil
}

func (s *Session) capture(
	ctx context.Context,
	subject chatcontext.Subject,
	req AttachRequest,
) (attachment.Attachment, error) {
	if subject.IsAlert() {
		return s.captureAlert(ctx, subject)
	}

	obj, err := s.fetchSubject(ctx, subject)
	if err != nil {
		return attachment.Attachment{}, err
	}

	draft := attachment.Attachment{
		Type:      req.Type,
		Kind:      subject.Kind,
		Name:      subject.Name,
		Namespace: subject.Namespace,
	}

	switch req.Type {
	case attachment.TypeYAML, attachment.TypeYAMLStatus:
		draft.Value, err = attachment.MarshalResource(obj.Object, req.Type == attachment.TypeYAMLStatus)
	case attachment.TypeEvents:
		draft.Value, err = s.captureEvents(ctx, obj)
	case attachment.TypeLog:
		return s.captureLog(ctx, obj, req)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedAttachment, req.Type)
	}

	if err != nil {
		return attachment.Attachment{}, err
	}

	return draft, nil
}

func (s *Session) captureAlert(ctx context.Context, subject chatcontext.Subject) (attachment.Attachment, error) {
	if s.deps.Alerts == nil {
		return attachment.Attachment{}, fmt.Errorf("%w: alerts", ErrAdapterMissing)
	}

	alert, err := s.deps.Alerts.FindAlert(ctx, subject.Labels)
	if err != nil {
		return attachment.Attachment{}, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	value, err := attachment.MarshalObject(alert)
	if err != nil {
		return attachment.Attachment{}, err
	}

	return attachment.Attachment{
		Type:      attachment.TypeYAML,
		Kind:      attachment.KindAlert,
		Name:      subject.Name,
		Namespace: subject.Namespace,
		Value:     value,
	}, nil
}

func (s *Session) captureEvents(ctx context.Context, obj *unstructured.Unstructured) (string, error) {
	events, err := s.listEvents(ctx, obj)
	if err != nil {
		return "", err
	}

	if len(events) == 0 {
		return "", ErrNoEvents
	}

	summaries := make([]eventSummary, 0, len(events))
	for _, event := range events {
		summary := eventSummary{
			Type:    event.Type,
			Reason:  event.Reason,
			Message: event.Message,
			Count:   event.Count,
		}

		if !event.LastTimestamp.IsZero() {
			summary.LastTimestamp = event.LastTimestamp.UTC().Format(time.RFC3339)
		}

		summaries = append(summaries, summary)
	}

	return attachment.MarshalObject(summaries)
}

func (s *Session) captureLog(
	ctx context.Context,
	obj *unstructured.Unstructured,
	req AttachRequest,
) (attachment.Attachment, error) {
	if s.deps.Logs == nil {
		return attachment.Attachment{}, fmt.Errorf("%w: logs", ErrAdapterMissing)
	}

	excerpt, err := s.deps.Logs.Excerpt(ctx, obj, k8s.LogOptions{
		Container: req.Container,
		TailLines: s.cfg.LogTailLines,
		Previous:  req.Previous,
	})
	if err != nil {
		return attachment.Attachment{}, fmt.Errorf("failed to read logs: %w", err)
	}

	return attachment.Attachment{
		Type:      attachment.TypeLog,
		Kind:      "Pod",
		Name:      excerpt.Pod,
		OwnerName: excerpt.Owner,
		Namespace: excerpt.Namespace,
		Value:     excerpt.Text,
	}, nil
}

func (s *Session) fetchSubject(ctx context.Context, subject chatcontext.Subject) (*unstructured.Unstructured, error) {
	if s.deps.Resources == nil {
		return nil, fmt.Errorf("%w: resources", ErrAdapterMissing)
	}

	gvk := subject.GroupVersionKind()
	if gvk.Version == "" {
		if known, ok := chatcontext.LookupKind(subject.Kind); ok {
			gvk = known
		}
	}

	obj, err := s.deps.Resources.Get(ctx, k8s.ObjectRef{
		GroupVersionKind: gvk,
		Name:             subject.Name,
		Namespace:        subject.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}

	if obj == nil {
		return nil, fmt.Errorf("%w: %s %s not found", ErrNoContext, subject.Kind, subject.Name)
	}

	return obj, nil
}

func (s *Session) listEvents(ctx context.Context, obj *unstructured.Unstructured) ([]corev1.Event, error) {
	if s.deps.Events == nil {
		return nil, fmt.Errorf("%w: events", ErrAdapterMissing)
	}

	events, err := s.deps.Events.ListEvents(ctx, obj.GetNamespace(), obj.GetUID())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// LoadContextEvents loads the events of the current subject for the attach menu.
// Subjects whose kind has no events clear the loaded list.
func (s *Session) LoadContextEvents(ctx context.Context) error {
	s.mu.Lock()
	subject := s.contextLocked()
	epoch := s.epoch

	if subject.IsEmpty() || subject.IsAlert() || !chatcontext.SupportsEvents(subject.Kind) {
		s.resetEventsLocked()
		s.mu.Unlock()

		return nil
	}

	s.events = nil
	s.eventsLoading = true
	s.mu.Unlock()

	var events []corev1.Event

	obj, err := s.fetchSubject(ctx, subject)
	if err == nil {
		events, err = s.listEvents(ctx, obj)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || !sameSubject(s.contextLocked(), subject) {
		return ErrContextChanged
	}

	s.eventsLoading = false
	s.events = events

	return err
}

func sameSubject(a, b chatcontext.Subject) bool {
	return a.Kind == b.Kind && a.Name == b.Name && a.Namespace == b.Namespace
}
