package chatcontext

import "github.com/devantler-tech/olschat/pkg/svc/chat/attachment"

// EventsState is what is known about the events of the current subject.
type EventsState struct {
	Count   int
	Loading bool
}

// Option is an entry of the attach menu.
type Option struct {
	Type     attachment.Type
	Label    string
	Disabled bool
	// Reason explains why a disabled option cannot be used.
	Reason string
}

// Options returns the attach menu for subject. An empty subject has no options.
func Options(subject Subject, events EventsState) []Option {
	if subject.IsEmpty() {
		return nil
	}

	if subject.IsAlert() {
		return []Option{{Type: attachment.TypeYAML, Label: "Alert"}}
	}

	options := []Option{
		{Type: attachment.TypeYAML, Label: "YAML"},
		{Type: attachment.TypeYAMLStatus, Label: "YAML status only"},
	}

	if SupportsEvents(subject.Kind) {
		option := Option{Type: attachment.TypeEvents, Label: "Events"}
		if !events.Loading && events.Count == 0 {
			option.Disabled = true
			option.Reason = "No events"
		}

		options = append(options, option)
	}

	if SupportsLogs(subject.Kind) {
		options = append(options, Option{Type: attachment.TypeLog, Label: "Logs"})
	}

	return options
}

// Allows reports whether options contains an enabled entry of type t.
func Allows(options []Option, t attachment.Type) bool {
	for _, option := range options {
		if option.Type == t && !option.Disabled {
			return true
		}
	}

	return false
}
