package v1alpha1

import "errors"

// ErrServiceURLRequired is returned when no assistant service URL is configured.
var ErrServiceURLRequired = errors.New("service URL is required")

// ErrInvalidURL is returned when a configured URL cannot be parsed or has no scheme and host.
var ErrInvalidURL = errors.New("invalid URL")

// ErrInvalidQueryPath is returned when the query path is not absolute.
var ErrInvalidQueryPath = errors.New("query path must start with /")

// ErrInvalidTimeout is returned for negative timeouts.
var ErrInvalidTimeout = errors.New("timeout must not be negative")

// ErrInvalidLogTailLines is returned for negative log line counts.
var ErrInvalidLogTailLines = errors.New("log tail lines must not be negative")

// ErrInvalidAPIVersion is returned when apiVersion or kind do not match this package.
var ErrInvalidAPIVersion = errors.New("invalid apiVersion or kind")
