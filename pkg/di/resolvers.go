package di

import (
	"fmt"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/client/prometheus"
	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/samber/do/v2"
)

// Dependency resolvers.

// ResolveConfig retrieves the loaded configuration.
func ResolveConfig(injector Injector) (*v1alpha1.Config, error) {
	cfg, err := do.Invoke[*v1alpha1.Config](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve config dependency: %w", err)
	}

	return cfg, nil
}

// ResolveOLSClient retrieves the assistant service client.
func ResolveOLSClient(injector Injector) (*ols.Client, error) {
	client, err := do.Invoke[*ols.Client](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve assistant client dependency: %w", err)
	}

	return client, nil
}

// ResolveClusterClients retrieves the Kubernetes clients.
func ResolveClusterClients(injector Injector) (*k8s.Clients, error) {
	clients, err := do.Invoke[*k8s.Clients](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve cluster clients dependency: %w", err)
	}

	return clients, nil
}

// ResolveAlertFinder retrieves the Prometheus alert finder.
func ResolveAlertFinder(injector Injector) (*prometheus.AlertFinder, error) {
	finder, err := do.Invoke[*prometheus.AlertFinder](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve alert finder dependency: %w", err)
	}

	return finder, nil
}

// SessionConfig derives the session options from the configuration.
func SessionConfig(cfg *v1alpha1.Config) session.Config {
	return session.Config{
		Timeout:         cfg.Spec.Service.Timeout.Duration,
		FeedbackEnabled: cfg.Spec.Chat.FeedbackOn(),
		LogTailLines:    cfg.Spec.Chat.LogTailLines,
	}
}

// NewSession builds a chat session from the injector. Only the assistant client is
// required: collaborators that cannot be created are left out and reported as warnings,
// so the matching actions fail with session.ErrAdapterMissing.
func NewSession(injector Injector, listener session.Listener) (*session.Session, []error, error) {
	cfg, err := ResolveConfig(injector)
	if err != nil {
		return nil, nil, err
	}

	client, err := ResolveOLSClient(injector)
	if err != nil {
		return nil, nil, err
	}

	deps := session.Dependencies{
		Querier:        client,
		Feedback:       client,
		FeedbackStatus: client,
		Auth:           client,
		Listener:       listener,
	}

	var warnings []error

	clients, err := ResolveClusterClients(injector)
	if err != nil {
		warnings = append(warnings, err)
	} else {
		deps.Resources = k8s.NewResourceClient(clients.Dynamic, clients.Mapper)
		deps.Events = k8s.NewEventClient(clients.Typed)
		deps.Logs = k8s.NewLogClient(clients.Typed)
	}

	finder, err := ResolveAlertFinder(injector)
	if err != nil {
		warnings = append(warnings, err)
	} else {
		deps.Alerts = finder
	}

	chat, err := session.New(deps, SessionConfig(cfg))
	if err != nil {
		return nil, warnings, fmt.Errorf("create chat session: %w", err)
	}

	return chat, warnings, nil
}
