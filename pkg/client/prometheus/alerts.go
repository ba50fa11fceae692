package prometheus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devantler-tech/olschat/pkg/client/netretry"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/siderolabs/go-retry/retry"
)

const (
	defaultRetryTimeout  = 30 * time.Second
	defaultRetryInterval = 2 * time.Second
)

// ErrAlertNotFound is returned when no firing alert matches the requested labels.
var ErrAlertNotFound = errors.New("failed to find definition YAML for alert")

// RulesAPI is the subset of promv1.API used to list alerting rules.
type RulesAPI interface {
	Rules(ctx context.Context) (promv1.RulesResult, error)
}

// AlertFinder finds firing alerts by label set.
type AlertFinder struct {
	api           RulesAPI
	retryTimeout  time.Duration
	retryInterval time.Duration
}

// AlertFinderOption customises an AlertFinder.
type AlertFinderOption func(*AlertFinder)

// WithRetry overrides how long and how often a failing rules listing is retried.
func WithRetry(timeout, interval time.Duration) AlertFinderOption {
	return func(f *AlertFinder) {
		f.retryTimeout = timeout
		f.retryInterval = interval
	}
}

// NewAlertFinder creates a finder over the given rules API.
func NewAlertFinder(api RulesAPI, opts ...AlertFinderOption) *AlertFinder {
	finder := &AlertFinder{
		api:           api,
		retryTimeout:  defaultRetryTimeout,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(finder)
	}

	return finder
}

// FindAlert returns the first firing alert whose labels contain every label in labels.
// Transient listing failures are retried; other failures are returned wrapped.
func (f *AlertFinder) FindAlert(ctx context.Context, labels map[string]string) (*promv1.Alert, error) {
	var rules promv1.RulesResult

	err := retry.Constant(f.retryTimeout, retry.WithUnits(f.retryInterval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			result, listErr := f.api.Rules(ctx)
			if listErr != nil {
				if netretry.IsRetryable(listErr) {
					return retry.ExpectedError(listErr)
				}

				return listErr
			}

			rules = result

			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("error fetching alerting rules: %w", err)
	}

	for _, group := range rules.Groups {
		for _, rule := range group.Rules {
			alerting, ok := rule.(promv1.AlertingRule)
			if !ok {
				continue
			}

			for _, alert := range alerting.Alerts {
				if alert != nil && containsLabels(alert.Labels, labels) {
					return alert, nil
				}
			}
		}
	}

	return nil, ErrAlertNotFound
}

func containsLabels(set model.LabelSet, want map[string]string) bool {
	for name, value := range want {
		if set[model.LabelName(name)] != model.LabelValue(value) {
			return false
		}
	}

	return true
}
