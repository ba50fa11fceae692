// Package chat provides chat client configuration API types.
//
// This package contains versioned API types for olschat configuration:
//
//   - v1alpha1: Current API version for client configuration
//
// The types define the declarative configuration format used in olschat.yaml files.
package chat
