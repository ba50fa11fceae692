// Package feedback tracks the user feedback form attached to assistant entries.
package feedback
