package chat

import (
	"context"
	"io"
	"os"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/cli/ui/confirm"
	"github.com/devantler-tech/olschat/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/devantler-tech/olschat/pkg/io/configmanager"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	configFlag   = "config"
	locationFlag = "location"
)

// NewChatCmd creates and returns the chat command.
func NewChatCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with OpenShift Lightspeed about your cluster",
		Long: `Start a conversation with the OpenShift Lightspeed service.

Questions can carry context from the cluster: choose a resource or alert with
--location, /location or /use, then attach its YAML, events or logs with /attach.
Type /help in the chat to list every command.

Configuration is read from olschat.yaml in the working directory or in
~/.config/olschat, from OLSCHAT_* environment variables and from flags.`,
		SilenceUsage: true,
	}

	manager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultFieldSelectors())

	cmd.Flags().String(configFlag, "", "Path to an olschat.yaml file")
	cmd.Flags().String(locationFlag, "", "Console URL of the page the conversation is about")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		configPath, _ := cmd.Flags().GetString(configFlag)
		manager.SetConfigFile(configPath)

		cfg, err := manager.LoadConfig()
		if err != nil {
			return err //nolint:wrapcheck // already wrapped by the config manager
		}

		return runtime.Invoke(func(injector di.Injector) error {
			return handleChatRunE(cmd, injector, cfg)
		}, di.ConfigModule(cfg))
	}

	return cmd
}

// handleChatRunE starts the TUI when the terminal allows it, and the REPL otherwise.
func handleChatRunE(cmd *cobra.Command, injector di.Injector, cfg *v1alpha1.Config) error {
	location, _ := cmd.Flags().GetString(locationFlag)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if cfg.Spec.Chat.TUIOn() && isInteractive() {
		return runTUIChat(ctx, cancel, cmd, injector, cfg, location)
	}

	return runNonTUIChat(ctx, cancel, cmd, injector, cfg, location)
}

func isInteractive() bool {
	return confirm.IsTTY() && term.IsTerminal(int(os.Stdout.Fd()))
}

// prepareSession applies the start location and checks the service.
// Check failures are reported and do not stop the chat.
func prepareSession(ctx context.Context, chat *session.Session, location string, warnings []error, writer io.Writer) {
	for _, warning := range warnings {
		notify.Warningf(writer, "%v", warning)

		if hint := errorhandler.Hint(warning); hint != "" {
			notify.Detailf(writer, "%s", hint)
		}
	}

	if location != "" {
		chat.SetLocation(location)
	}

	status, err := chat.RefreshAuth(ctx)

	switch {
	case err != nil:
		notify.Warningf(writer, "could not check access to the assistant service: %v", err)
	case chat.PromptingBlocked():
		notify.Errorf(writer, "You are %s to use the assistant service; prompting is disabled.", status)

		if hint := errorhandler.Hint(statusError(status)); hint != "" {
			notify.Detailf(writer, "%s", hint)
		}
	}

	if err := chat.RefreshFeedbackStatus(ctx); err != nil {
		notify.Warningf(writer, "feedback is unavailable: %v", err)
	}
}

func statusError(status ols.AuthStatus) error {
	switch status {
	case ols.AuthNotAuthenticated:
		return ols.ErrUnauthenticated
	case ols.AuthNotAuthorized:
		return ols.ErrUnauthorized
	case ols.AuthAuthorized, ols.AuthUnknown:
	}

	return nil
}
