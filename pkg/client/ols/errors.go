package ols

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrBaseURLRequired is returned when the client has no service URL.
	ErrBaseURLRequired = errors.New("ols: service URL is required")
	// ErrUnauthenticated is returned when the service rejects the bearer token.
	ErrUnauthenticated = errors.New("ols: not authenticated")
	// ErrUnauthorized is returned when the user lacks permission to use the service.
	ErrUnauthorized = errors.New("ols: not authorized")
)

// StatusError is a non-success response from the service.
// Message is the short summary from the body; Cause is the verbose detail, if any.
type StatusError struct {
	StatusCode int
	Message    string
	Cause      string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("ols: status %d: %s: %s", e.StatusCode, e.Message, e.Cause)
	}

	return fmt.Sprintf("ols: status %d: %s", e.StatusCode, e.Message)
}

// Is maps authentication failures to the package sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.StatusCode == http.StatusUnauthorized
	case ErrUnauthorized:
		return e.StatusCode == http.StatusForbidden
	default:
		return false
	}
}

// errorBody covers the error shapes the service is known to send:
// {"detail": {"response": ..., "cause": ...}}, {"detail": "..."} and {"message": "..."}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type errorDetail struct {
	Response string `json:"response"`
	Cause    string `json:"cause"`
}

func newStatusError(statusCode int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: statusCode}

	var parsed errorBody

	err := json.Unmarshal(body, &parsed)
	if err == nil {
		var detail errorDetail

		var detailText string

		switch {
		case json.Unmarshal(parsed.Detail, &detail) == nil && detail.Response != "":
			statusErr.Message = detail.Response
			statusErr.Cause = detail.Cause
		case json.Unmarshal(parsed.Detail, &detailText) == nil && detailText != "":
			statusErr.Message = detailText
		case parsed.Message != "":
			statusErr.Message = parsed.Message
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < maxPlainErrorLength {
		statusErr.Message = text
	}

	if statusErr.Message == "" {
		statusErr.Message = http.StatusText(statusCode)
	}

	return statusErr
}
