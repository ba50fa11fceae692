// Package editor resolves the user's editor and edits attachment values in it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
)

// ErrNoEditor is returned when no editor could be resolved.
var ErrNoEditor = errors.New("no editor found: set --editor, spec.editor, KUBE_EDITOR, EDITOR or VISUAL")

// Resolver handles editor configuration resolution with proper precedence.
type Resolver struct {
	flagEditor   string
	configEditor string
}

// NewResolver creates a new editor resolver.
func NewResolver(flagEditor string, cfg *v1alpha1.Config) *Resolver {
	configEditor := ""
	if cfg != nil {
		configEditor = cfg.Spec.Editor
	}

	return &Resolver{
		flagEditor:   flagEditor,
		configEditor: configEditor,
	}
}

// Resolve resolves the editor command based on precedence:
// 1. --editor flag
// 2. spec.editor from config
// 3. Environment variables (KUBE_EDITOR, EDITOR, VISUAL)
// 4. Fallback to vim, nano, vi.
func (r *Resolver) Resolve() string {
	if r.flagEditor != "" {
		return r.flagEditor
	}

	if r.configEditor != "" {
		return r.configEditor
	}

	for _, name := range []string{"KUBE_EDITOR", "EDITOR", "VISUAL"} {
		if editorEnv := os.Getenv(name); editorEnv != "" {
			return editorEnv
		}
	}

	for _, editorName := range []string{"vim", "nano", "vi"} {
		editorPath, err := exec.LookPath(editorName)
		if err == nil {
			return editorPath
		}
	}

	return ""
}

// Edit is a value written to a temporary file, ready to be opened in the editor.
type Edit struct {
	// Cmd opens the file; run it attached to the terminal.
	Cmd  *exec.Cmd
	path string
}

// Prepare writes content to a temporary file with the given extension and builds the
// editor command for it.
func (r *Resolver) Prepare(ctx context.Context, content, ext string) (*Edit, error) {
	args := strings.Fields(r.Resolve())
	if len(args) == 0 {
		return nil, ErrNoEditor
	}

	file, err := os.CreateTemp("", "olschat-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	_, err = file.WriteString(content)
	closeErr := file.Close()

	if err = errors.Join(err, closeErr); err != nil {
		_ = os.Remove(file.Name())

		return nil, fmt.Errorf("write temp file: %w", err)
	}

	//nolint:gosec // the editor command is chosen by the user
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], file.Name())...)

	return &Edit{Cmd: cmd, path: file.Name()}, nil
}

// Result reads the edited value back and removes the temporary file. Pass the error the
// editor command ended with; it is returned wrapped without reading the file.
func (e *Edit) Result(runErr error) (string, error) {
	defer func() { _ = os.Remove(e.path) }()

	if runErr != nil {
		return "", fmt.Errorf("editor failed: %w", runErr)
	}

	content, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}

	return string(content), nil
}

// EditContent opens content in the editor attached to the given streams and returns the
// edited value.
func (r *Resolver) EditContent(
	ctx context.Context,
	content, ext string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (string, error) {
	edit, err := r.Prepare(ctx, content, ext)
	if err != nil {
		return "", err
	}

	edit.Cmd.Stdin = stdin
	edit.Cmd.Stdout = stdout
	edit.Cmd.Stderr = stderr

	return edit.Result(edit.Cmd.Run())
}
