package ols

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devantler-tech/olschat/pkg/client/netretry"
)

const (
	// DefaultQueryPath is the query endpoint relative to the service URL.
	DefaultQueryPath = "/v1/query"

	feedbackPath       = "/v1/feedback"
	feedbackStatusPath = "/v1/feedback/status"
	authorizedPath     = "/authorized"

	checkMaxAttempts = 3
	checkBaseWait    = 500 * time.Millisecond
	checkMaxWait     = 4 * time.Second

	maxPlainErrorLength = 512
	maxErrorBodyBytes   = 64 << 10
)

// Options configures a Client.
type Options struct {
	// BaseURL is the service root, e.g. https://lightspeed-app-server.openshift-lightspeed.svc:8443.
	BaseURL string
	// QueryPath overrides DefaultQueryPath.
	QueryPath string
	// Token is sent as a bearer token when set.
	Token string
	// HTTPClient defaults to a client without timeout; callers bound requests with ctx.
	HTTPClient *http.Client
}

// Client talks to the assistant service.
type Client struct {
	baseURL    string
	queryPath  string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the service at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	queryPath := opts.QueryPath
	if queryPath == "" {
		queryPath = DefaultQueryPath
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		queryPath:  "/" + strings.TrimLeft(queryPath, "/"),
		token:      opts.Token,
		httpClient: httpClient,
	}, nil
}

// Query sends a single query. It is never retried.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if req.Attachments == nil {
		req.Attachments = []Attachment{}
	}

	var resp QueryResponse

	err := c.do(ctx, http.MethodPost, c.queryPath, req, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// SendFeedback submits user feedback for a response.
func (c *Client) SendFeedback(ctx context.Context, req FeedbackRequest) error {
	return c.do(ctx, http.MethodPost, feedbackPath, req, nil)
}

// FeedbackEnabled asks the service whether it accepts feedback.
// Transient failures are retried with exponential backoff.
func (c *Client) FeedbackEnabled(ctx context.Context) (bool, error) {
	var status feedbackStatusResponse

	err := c.withRetry(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, feedbackStatusPath, nil, &status)
	})
	if err != nil {
		return false, fmt.Errorf("failed to get feedback status: %w", err)
	}

	return status.Status.Enabled, nil
}

// CheckAuth asks whether the current credentials may use the service.
// Rejections are reported as a status, not as an error.
func (c *Client) CheckAuth(ctx context.Context) (AuthStatus, error) {
	err := c.withRetry(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, authorizedPath, struct{}{}, nil)
	})

	switch {
	case err == nil:
		return AuthAuthorized, nil
	case errors.Is(err, ErrUnauthenticated):
		return AuthNotAuthenticated, nil
	case errors.Is(err, ErrUnauthorized):
		return AuthNotAuthorized, nil
	default:
		return AuthUnknown, fmt.Errorf("failed to check authorization: %w", err)
	}
}

func (c *Client) withRetry(ctx context.Context, call func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= checkMaxAttempts; attempt++ {
		lastErr = call(ctx)
		if lastErr == nil || !retryable(lastErr) || attempt == checkMaxAttempts {
			break
		}

		err := netretry.Sleep(ctx, attempt, checkBaseWait, checkMaxWait)
		if err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}
	}

	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return newStatusError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return netretry.IsRetryableStatus(statusErr.StatusCode)
	}

	return netretry.IsRetryable(err)
}
