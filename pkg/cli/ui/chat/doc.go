// Package chat is the full-screen terminal front-end of a chat session, built on bubbletea.
//
// The model never holds chat state of its own: every render reads the session, and session
// notifications arrive as tea messages through a Bridge.
package chat
