// Package v1alpha1 holds the olschat configuration file format.
package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for olschat.
	Group = "olschat.devantler.tech"
	// Version is the API version for olschat.
	Version = "v1alpha1"
	// Kind is the kind of the client configuration.
	Kind = "Config"
	// APIVersion is the full API version for olschat.
	APIVersion = Group + "/" + Version
)

// Config is the olschat client configuration.
type Config struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines how olschat reaches its collaborators and how the chat behaves.
type Spec struct {
	Editor     string         `json:"editor,omitzero"     jsonschema:"description=Editor command used to edit attachments (e.g. code --wait)"` //nolint:lll
	Service    ServiceSpec    `json:"service,omitzero"`
	Cluster    ClusterSpec    `json:"cluster,omitzero"`
	Prometheus PrometheusSpec `json:"prometheus,omitzero"`
	Chat       ChatSpec       `json:"chat,omitzero"`
}

// ServiceSpec locates the assistant service.
type ServiceSpec struct {
	URL       string          `json:"url,omitzero"       jsonschema:"description=Base URL of the assistant service"`
	QueryPath string          `json:"queryPath,omitzero" jsonschema:"description=Path of the query endpoint"`
	Token     string          `json:"token,omitzero"     jsonschema:"description=Bearer token; defaults to the kubeconfig token"`
	Timeout   metav1.Duration `json:"timeout,omitzero"   jsonschema:"description=How long to wait for an answer"`
}

// ClusterSpec selects the cluster the chat context is read from.
type ClusterSpec struct {
	Kubeconfig string `json:"kubeconfig,omitzero" jsonschema:"description=Path to the kubeconfig; defaults to the client-go loading rules"`
	Context    string `json:"context,omitzero"    jsonschema:"description=Kubeconfig context to use"`
}

// PrometheusSpec locates the alerting rules API used to attach alerts.
type PrometheusSpec struct {
	URL   string `json:"url,omitzero"   jsonschema:"description=Base URL of the Prometheus or Thanos API"`
	Token string `json:"token,omitzero" jsonschema:"description=Bearer token; defaults to the service token"`
}

// ChatSpec tunes the chat session.
type ChatSpec struct {
	FeedbackEnabled *bool `json:"feedbackEnabled,omitzero"`
	LogTailLines    int64 `json:"logTailLines,omitzero"    jsonschema:"description=Log lines attached per container"`
	TUI             *bool `json:"tui,omitzero"             jsonschema:"description=Use the interactive terminal UI"`
}

// FeedbackOn reports whether feedback is enabled, defaulting to true.
func (c ChatSpec) FeedbackOn() bool {
	return c.FeedbackEnabled == nil || *c.FeedbackEnabled
}

// TUIOn reports whether the terminal UI is enabled, defaulting to true.
func (c ChatSpec) TUIOn() bool {
	return c.TUI == nil || *c.TUI
}
