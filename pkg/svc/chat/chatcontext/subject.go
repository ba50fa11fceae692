package chatcontext

import (
	"maps"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Subject is the resource or alert the conversation is about. The zero value is empty.
type Subject struct {
	Group     string
	Version   string
	Kind      string
	Name      string
	Namespace string
	// Labels is only set for alert subjects.
	Labels map[string]string
}

// IsEmpty reports whether the subject lacks a kind or a name.
func (s Subject) IsEmpty() bool {
	return s.Kind == "" || s.Name == ""
}

// IsAlert reports whether the subject describes a firing alert.
func (s Subject) IsAlert() bool {
	return s.Kind == attachment.KindAlert
}

// GroupVersionKind returns the API type of a resource subject.
func (s Subject) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: s.Group, Version: s.Version, Kind: s.Kind}
}

func (s Subject) clone() Subject {
	s.Labels = maps.Clone(s.Labels)

	return s
}

// Resolve returns the subject eligible for attachment.
// An explicit subject with kind, name and namespace wins; otherwise the location is used.
// Partial data on both sides yields the empty subject.
func Resolve(explicit *Subject, location Location) Subject {
	if explicit != nil && explicit.Kind != "" && explicit.Name != "" && explicit.Namespace != "" {
		return explicit.clone()
	}

	if location.Kind == "" || location.Name == "" {
		return Subject{}
	}

	subject := Subject{
		Group:     location.Group,
		Version:   location.Version,
		Kind:      location.Kind,
		Name:      location.Name,
		Namespace: location.Namespace,
	}

	if subject.IsAlert() {
		subject.Group = ""
		subject.Version = ""
		subject.Labels = maps.Clone(location.Labels)
	}

	return subject
}
