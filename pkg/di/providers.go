package di

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/client/prometheus"
	"github.com/devantler-tech/olschat/pkg/k8s"
	"github.com/samber/do/v2"
	"k8s.io/client-go/rest"
)

// ErrPrometheusNotConfigured is returned when resolving the alert finder without a Prometheus URL.
var ErrPrometheusNotConfigured = errors.New("prometheus URL is not configured")

// Dependency providers.

// NewRuntime constructs the shared runtime used by the root command and tests.
// It registers every client derived from the configuration; the configuration itself is
// supplied per command with ConfigModule.
func NewRuntime() *Runtime {
	return New(
		provideRESTConfig,
		provideClusterClients,
		provideOLSClient,
		provideAlertFinder,
	)
}

// ConfigModule registers the loaded configuration.
func ConfigModule(cfg *v1alpha1.Config) Module {
	return func(i Injector) error {
		do.ProvideValue(i, cfg)

		return nil
	}
}

func provideRESTConfig(i Injector) error {
	do.Provide(i, func(i Injector) (*rest.Config, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		restConfig, err := k8s.LoadRESTConfig(cfg.Spec.Cluster.Kubeconfig, cfg.Spec.Cluster.Context)
		if err != nil {
			return nil, fmt.Errorf("load cluster config: %w", err)
		}

		return restConfig, nil
	})

	return nil
}

func provideClusterClients(i Injector) error {
	do.Provide(i, func(i Injector) (*k8s.Clients, error) {
		restConfig, err := do.Invoke[*rest.Config](i)
		if err != nil {
			return nil, fmt.Errorf("resolve cluster config: %w", err)
		}

		return k8s.NewClients(restConfig)
	})

	return nil
}

func provideOLSClient(i Injector) error {
	do.Provide(i, func(i Injector) (*ols.Client, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		client, err := ols.NewClient(ols.Options{
			BaseURL:   cfg.Spec.Service.URL,
			QueryPath: cfg.Spec.Service.QueryPath,
			Token:     serviceToken(i, cfg),
		})
		if err != nil {
			return nil, fmt.Errorf("create assistant client: %w", err)
		}

		return client, nil
	})

	return nil
}

func provideAlertFinder(i Injector) error {
	do.Provide(i, func(i Injector) (*prometheus.AlertFinder, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		if cfg.Spec.Prometheus.URL == "" {
			return nil, ErrPrometheusNotConfigured
		}

		token := cfg.Spec.Prometheus.Token
		if token == "" {
			token = serviceToken(i, cfg)
		}

		api, err := prometheus.NewAPI(prometheus.Options{Address: cfg.Spec.Prometheus.URL, Token: token})
		if err != nil {
			return nil, fmt.Errorf("create prometheus client: %w", err)
		}

		return prometheus.NewAlertFinder(api), nil
	})

	return nil
}

// serviceToken returns the configured token, falling back to the kubeconfig bearer token.
func serviceToken(i Injector, cfg *v1alpha1.Config) string {
	if cfg.Spec.Service.Token != "" {
		return cfg.Spec.Service.Token
	}

	restConfig, err := do.Invoke[*rest.Config](i)
	if err != nil {
		return ""
	}

	token, err := k8s.BearerToken(restConfig)
	if err != nil {
		return ""
	}

	return token
}
