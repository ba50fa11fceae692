package cmd_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/devantler-tech/olschat/pkg/cli/cmd"
	"github.com/devantler-tech/olschat/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRootTest = errors.New("boom")

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestNewRootCmdSubcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")

	for _, name := range []string{"chat", "config"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestExecuteShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteReturnsError(t *testing.T) {
	t.Parallel()

	failing := &cobra.Command{
		Use: "fail",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errRootTest
		},
	}

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"fail"})
	root.AddCommand(failing)

	err := cmd.Execute(root)

	require.Error(t, err)
	require.ErrorIs(t, err, errRootTest)
}

func TestExecuteAttachesHint(t *testing.T) {
	t.Parallel()

	timingOut := &cobra.Command{
		Use: "slow",
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("ask: %w", session.ErrQueryTimeout)
		},
	}

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"slow"})
	root.AddCommand(timingOut)

	err := cmd.Execute(root)

	var cmdErr *errorhandler.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.ErrorIs(t, err, session.ErrQueryTimeout)
	assert.Contains(t, cmdErr.Hint(), "--timeout")
}

func TestExecuteWithNonexistentCommand(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"nonexistent"})

	err := cmd.Execute(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
