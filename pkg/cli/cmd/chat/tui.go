package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/cli/helpers/editor"
	"github.com/devantler-tech/olschat/pkg/cli/ui"
	chatui "github.com/devantler-tech/olschat/pkg/cli/ui/chat"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/spf13/cobra"
)

// runTUIChat runs the chat in the full-screen TUI.
func runTUIChat(
	ctx context.Context,
	cancel context.CancelFunc,
	cmd *cobra.Command,
	injector di.Injector,
	cfg *v1alpha1.Config,
	location string,
) error {
	bridge := chatui.NewBridge()
	defer bridge.Close()

	chat, warnings, err := di.NewSession(injector, bridge)
	if err != nil {
		return fmt.Errorf("failed to start chat: %w", err)
	}

	prepareSession(ctx, chat, location, warnings, cmd.ErrOrStderr())

	model := chatui.New(chat, editor.NewResolver("", cfg), chatui.WithContext(ctx))

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	bridge.Attach(program)

	ui.SetTerminalTitle(cmd.OutOrStdout(), "olschat")

	_, err = program.Run()

	// Settle any query still in flight.
	cancel()
	chat.Wait()

	if err != nil {
		return fmt.Errorf("TUI chat failed: %w", err)
	}

	return nil
}
