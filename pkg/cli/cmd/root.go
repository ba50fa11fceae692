package cmd

import (
	"fmt"

	"github.com/devantler-tech/olschat/pkg/cli/cmd/chat"
	"github.com/devantler-tech/olschat/pkg/cli/cmd/config"
	"github.com/devantler-tech/olschat/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/olschat/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:   "olschat",
		Short: "Chat with OpenShift Lightspeed from the terminal",
		Long: "olschat talks to the OpenShift Lightspeed service about your cluster. " +
			"Questions can carry resource YAML, events, logs and alerts as context.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(chat.NewChatCmd(runtimeContainer))
	cmd.AddCommand(config.NewConfigCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE prints the help of the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
