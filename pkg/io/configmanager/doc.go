// Package configmanager loads the olschat configuration from defaults, the olschat.yaml
// file, OLSCHAT_* environment variables and command-line flags, in increasing priority.
package configmanager
