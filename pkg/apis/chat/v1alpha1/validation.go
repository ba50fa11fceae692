package v1alpha1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration and returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.APIVersion != "" && c.APIVersion != APIVersion || c.Kind != "" && c.Kind != Kind {
		errs = append(errs, fmt.Errorf("%w: %s/%s", ErrInvalidAPIVersion, c.APIVersion, c.Kind))
	}

	switch {
	case c.Spec.Service.URL == "":
		errs = append(errs, ErrServiceURLRequired)
	default:
		if err := validateURL("service.url", c.Spec.Service.URL); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Spec.Service.QueryPath != "" && !strings.HasPrefix(c.Spec.Service.QueryPath, "/") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidQueryPath, c.Spec.Service.QueryPath))
	}

	if c.Spec.Service.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Spec.Service.Timeout.Duration))
	}

	if c.Spec.Prometheus.URL != "" {
		if err := validateURL("prometheus.url", c.Spec.Prometheus.URL); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Spec.Chat.LogTailLines < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidLogTailLines, c.Spec.Chat.LogTailLines))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidURL, field, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %s: %q needs a scheme and host", ErrInvalidURL, field, raw)
	}

	return nil
}
