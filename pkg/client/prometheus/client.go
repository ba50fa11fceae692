package prometheus

import (
	"errors"
	"fmt"
	"net/http"

	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	promconfig "github.com/prometheus/common/config"
)

// ErrAddressRequired is returned when no Prometheus URL is configured.
var ErrAddressRequired = errors.New("prometheus: address is required")

// Options configures the rules API client.
type Options struct {
	// Address is the API root, e.g. https://thanos-querier.openshift-monitoring.svc:9091.
	Address string
	// Token is sent as a bearer token when set.
	Token string
	// RoundTripper defaults to promapi.DefaultRoundTripper.
	RoundTripper http.RoundTripper
}

// NewAPI creates a Prometheus v1 API client.
func NewAPI(opts Options) (promv1.API, error) {
	if opts.Address == "" {
		return nil, ErrAddressRequired
	}

	roundTripper := opts.RoundTripper
	if roundTripper == nil {
		roundTripper = promapi.DefaultRoundTripper
	}

	if opts.Token != "" {
		roundTripper = promconfig.NewAuthorizationCredentialsRoundTripper(
			"Bearer",
			promconfig.NewInlineSecret(opts.Token),
			roundTripper,
		)
	}

	client, err := promapi.NewClient(promapi.Config{
		Address:      opts.Address,
		RoundTripper: roundTripper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus client: %w", err)
	}

	return promv1.NewAPI(client), nil
}
