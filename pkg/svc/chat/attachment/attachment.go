package attachment

// Type identifies how an attachment value was captured.
type Type string

// Attachment types offered by the attach menu.
const (
	// TypeYAML is a full structured dump of the source object.
	TypeYAML Type = "YAML"
	// TypeYAMLStatus is a structured dump restricted to kind, metadata and status.
	TypeYAMLStatus Type = "YAML Status"
	// TypeEvents is the event list recorded for the source object.
	TypeEvents Type = "Events"
	// TypeLog is a container log excerpt.
	TypeLog Type = "Log"
)

// KindAlert is the sentinel kind used for attachments describing a firing alert.
const KindAlert = "Alert"

// IsStructured reports whether values of this type are YAML documents.
func (t Type) IsStructured() bool {
	return t == TypeYAML || t == TypeYAMLStatus || t == TypeEvents
}

// Attachment is a piece of context staged for, or archived with, a chat message.
type Attachment struct {
	ID        string `json:"id"                  yaml:"id"`
	Type      Type   `json:"type"                yaml:"type"`
	Kind      string `json:"kind"                yaml:"kind"`
	Name      string `json:"name"                yaml:"name"`
	OwnerName string `json:"ownerName,omitempty" yaml:"ownerName,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Value     string `json:"value"               yaml:"value"`
	// OriginalValue is the value at attach time. It is nil until the first edit.
	OriginalValue *string `json:"-" yaml:"-"`
}

// IsChanged reports whether the attachment was edited since it was attached.
func IsChanged(a Attachment) bool {
	return a.OriginalValue != nil && *a.OriginalValue != a.Value
}

// Archived returns a copy suitable for storing in history, without edit tracking.
func (a Attachment) Archived() Attachment {
	a.OriginalValue = nil

	return a
}
