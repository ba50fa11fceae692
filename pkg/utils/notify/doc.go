// Package notify provides utilities for sending formatted notifications to CLI users.
//
// This package includes:
//   - [WriteMessage] for displaying formatted messages with type-specific symbols and colors
//   - [Indicator] for a single-line "waiting" spinner shown while a query is in flight
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ), activity (►)
// and title messages with customizable emojis.
package notify
