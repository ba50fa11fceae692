// Package cmd provides the command-line interface for olschat.
//
// This package contains the root command and delegates to subcommand packages:
//   - chat: the interactive conversation with the assistant service
//   - config: configuration file helpers such as the JSON schema
package cmd
