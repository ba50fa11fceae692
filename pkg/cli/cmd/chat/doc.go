// Package chat provides the chat command, which opens a conversation with the OpenShift
// Lightspeed service either in a full-screen TUI or as a line-based REPL.
package chat
