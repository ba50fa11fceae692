// Package apis provides API type definitions for olschat configuration.
//
//   - chat: the olschat.yaml configuration file
//
// The API types follow Kubernetes API conventions and serialize to YAML.
package apis
