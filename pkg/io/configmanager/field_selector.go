package configmanager

import (
	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
)

// FieldSelector defines a config field that is bound to a flag, an environment variable
// and a config file key.
type FieldSelector[T any] struct {
	Selector    func(*T) any // Function that returns a pointer to the field
	Key         string       // Config file key below spec, e.g. service.url
	Flag        string       // Flag name, also used to derive the environment variable
	Description string       // Human-readable description for CLI flags
}

// EnvVar returns the environment variable bound to the field.
func (f FieldSelector[T]) EnvVar() string {
	return envVarForFlag(f.Flag)
}

// DefaultFieldSelectors returns the selectors for every configurable field.
func DefaultFieldSelectors() []FieldSelector[v1alpha1.Config] {
	return []FieldSelector[v1alpha1.Config]{
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Service.URL },
			Key:         "service.url",
			Flag:        "service-url",
			Description: "Base URL of the assistant service",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Service.QueryPath },
			Key:         "service.queryPath",
			Flag:        "query-path",
			Description: "Path of the query endpoint",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Service.Token },
			Key:         "service.token",
			Flag:        "token",
			Description: "Bearer token for the assistant service (defaults to the kubeconfig token)",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Service.Timeout },
			Key:         "service.timeout",
			Flag:        "timeout",
			Description: "How long to wait for an answer",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Cluster.Kubeconfig },
			Key:         "cluster.kubeconfig",
			Flag:        "kubeconfig",
			Description: "Path to the kubeconfig file",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Cluster.Context },
			Key:         "cluster.context",
			Flag:        "context",
			Description: "Kubeconfig context to use",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Prometheus.URL },
			Key:         "prometheus.url",
			Flag:        "prometheus-url",
			Description: "Base URL of the Prometheus or Thanos API used to attach alerts",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Prometheus.Token },
			Key:         "prometheus.token",
			Flag:        "prometheus-token",
			Description: "Bearer token for the Prometheus API (defaults to the service token)",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Editor },
			Key:         "editor",
			Flag:        "editor",
			Description: "Editor command used to edit attachments",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Chat.FeedbackEnabled },
			Key:         "chat.feedbackEnabled",
			Flag:        "feedback",
			Description: "Offer feedback on answers",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Chat.LogTailLines },
			Key:         "chat.logTailLines",
			Flag:        "log-tail-lines",
			Description: "Log lines attached per container",
		},
		{
			Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Chat.TUI },
			Key:         "chat.tui",
			Flag:        "tui",
			Description: "Use the interactive terminal UI",
		},
	}
}
