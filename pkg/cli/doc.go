// Package cli provides the terminal front ends of olschat.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: cobra commands (root, chat, config)
//   - cli/slash: slash commands shared by the line REPL and the TUI
//   - cli/helpers/editor: external editor resolution for attachment edits
//   - cli/ui: terminal UI components (chat TUI, confirm, errorhandler)
package cli
