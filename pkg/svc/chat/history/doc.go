// Package history holds the committed conversation: user prompts with their archived
// attachments and assistant responses or errors, in display order.
package history
