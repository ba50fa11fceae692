package k8s

import "errors"

// ErrKubeconfigPathEmpty is returned when kubeconfig path is empty.
var ErrKubeconfigPathEmpty = errors.New("kubeconfig path is empty")

// ErrNoPods is returned when a workload has no pods to read logs from.
var ErrNoPods = errors.New("no pods found")

// ErrNoSelector is returned when a workload kind has no pod selector.
var ErrNoSelector = errors.New("resource has no pod selector")

// ErrContainerNotFound is returned when the requested container is not part of the pod.
var ErrContainerNotFound = errors.New("container not found")
