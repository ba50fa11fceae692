package errorhandler

import (
	"errors"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
)

type hint struct {
	target error
	text   string
}

//nolint:gochecknoglobals // static lookup table
var hints = []hint{
	{
		target: v1alpha1.ErrServiceURLRequired,
		text:   "set spec.service.url in olschat.yaml, OLSCHAT_SERVICE_URL or --service-url",
	},
	{
		target: ols.ErrUnauthenticated,
		text:   "log in to the cluster again or pass a valid --token",
	},
	{
		target: ols.ErrUnauthorized,
		text:   "ask a cluster administrator for access to the assistant service",
	},
	{
		target: session.ErrQueryTimeout,
		text:   "raise --timeout for long-running questions",
	},
	{
		target: di.ErrPrometheusNotConfigured,
		text:   "set --prometheus-url to attach alerts",
	},
	{
		target: session.ErrPromptingBlocked,
		text:   "run /auth to check access; prompting stays disabled until the service authorizes you",
	},
	{
		target: session.ErrSubmissionInFlight,
		text:   "wait for the current answer or start a new chat with /new",
	},
	{
		target: session.ErrAdapterMissing,
		text:   "check --kubeconfig and --context; cluster access is needed to attach resources",
	},
}

// Hint returns the remediation for the first known failure in the chain of err, or an
// empty string.
func (Normalizer) Hint(err error) string {
	if err == nil {
		return ""
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.hint != "" {
		return cmdErr.hint
	}

	for _, candidate := range hints {
		if errors.Is(err, candidate.target) {
			return candidate.text
		}
	}

	return ""
}

// Hint is Normalizer.Hint for callers outside command execution, such as the chat REPL.
func Hint(err error) string {
	return Normalizer{}.Hint(err)
}
