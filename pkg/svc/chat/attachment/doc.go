// Package attachment models the context snippets a user attaches to a chat message.
//
// A [Store] holds the attachments staged for the next outgoing message together
// with a single exclusive preview slot. Staged attachments are editable through an
// editable preview; archived attachments taken from history can only be opened
// read-only. [MarshalResource] turns Kubernetes objects into YAML values with
// managed-field bookkeeping removed.
package attachment
