package editor_test

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/cli/helpers/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest // modifies editor environment variables
func TestResolve_Precedence(t *testing.T) {
	cfg := v1alpha1.NewConfig()
	cfg.Spec.Editor = "code --wait"

	tests := []struct {
		name     string
		flag     string
		cfg      *v1alpha1.Config
		env      map[string]string
		expected string
	}{
		{name: "flag wins", flag: "nano", cfg: cfg, env: map[string]string{"EDITOR": "vim"}, expected: "nano"},
		{name: "config before env", cfg: cfg, env: map[string]string{"EDITOR": "vim"}, expected: "code --wait"},
		{
			name:     "kube editor before editor",
			env:      map[string]string{"KUBE_EDITOR": "hx", "EDITOR": "vim", "VISUAL": "emacs"},
			expected: "hx",
		},
		{name: "editor before visual", env: map[string]string{"EDITOR": "vim", "VISUAL": "emacs"}, expected: "vim"},
		{name: "visual", env: map[string]string{"VISUAL": "emacs"}, expected: "emacs"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			for _, name := range []string{"KUBE_EDITOR", "EDITOR", "VISUAL"} {
				t.Setenv(name, testCase.env[name])
			}

			resolver := editor.NewResolver(testCase.flag, testCase.cfg)

			assert.Equal(t, testCase.expected, resolver.Resolve())
		})
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("editor scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))

	return path
}

func TestEditContent(t *testing.T) {
	t.Parallel()

	script := writeScript(t, `sed 's/replicas: 1/replicas: 3/' "$1" > "$1.new" && mv "$1.new" "$1"`)
	resolver := editor.NewResolver(script, nil)

	edited, err := resolver.EditContent(t.Context(), "spec:\n  replicas: 1\n", ".yaml", nil, io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "spec:\n  replicas: 3\n", edited)
}

func TestEditContent_EditorFails(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "exit 1")
	resolver := editor.NewResolver(script, nil)

	_, err := resolver.EditContent(t.Context(), "a: 1", ".yaml", nil, io.Discard, io.Discard)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "editor failed"))
}

func TestPrepare_RemovesFileAfterResult(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "true")
	resolver := editor.NewResolver(script, nil)

	edit, err := resolver.Prepare(t.Context(), "value", ".txt")
	require.NoError(t, err)

	path := edit.Cmd.Args[len(edit.Cmd.Args)-1]
	assert.FileExists(t, path)

	value, err := edit.Result(edit.Cmd.Run())
	require.NoError(t, err)
	assert.Equal(t, "value", value)
	assert.NoFileExists(t, path)
}
