package k8s

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
)

// DefaultTailLines is the number of log lines read per container when none is given.
const DefaultTailLines int64 = 25

// maxConcurrentLogReads bounds the number of concurrent log streams per excerpt.
const maxConcurrentLogReads = 4

// LogOptions selects what part of a pod's logs is read.
type LogOptions struct {
	// Container limits the excerpt to one container. All containers are read when empty.
	Container string
	// TailLines is the number of trailing lines per container.
	TailLines int64
	// Previous reads the logs of the previous container instance.
	Previous bool
}

// LogExcerpt is the text read from one pod.
type LogExcerpt struct {
	Pod       string
	Namespace string
	// Owner is the workload the pod was resolved from, empty for pods.
	Owner string
	Text  string
}

// LogClient reads container logs of pods and workloads.
type LogClient struct {
	clientset kubernetes.Interface
}

// NewLogClient creates a LogClient.
func NewLogClient(clientset kubernetes.Interface) *LogClient {
	return &LogClient{clientset: clientset}
}

// PodsFor returns the pods of obj: the pod itself or the pods matched by a workload's
// selector.
func (c *LogClient) PodsFor(ctx context.Context, obj *unstructured.Unstructured) ([]corev1.Pod, error) {
	namespace := obj.GetNamespace()

	if obj.GetKind() == "Pod" {
		pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, obj.GetName(), metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get pod %s: %w", obj.GetName(), err)
		}

		return []corev1.Pod{*pod}, nil
	}

	selectorMap, found, err := unstructured.NestedMap(obj.Object, "spec", "selector")
	if err != nil || !found {
		return nil, fmt.Errorf("%w: %s %s", ErrNoSelector, obj.GetKind(), obj.GetName())
	}

	var labelSelector metav1.LabelSelector

	err = runtime.DefaultUnstructuredConverter.FromUnstructured(selectorMap, &labelSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to read selector of %s: %w", obj.GetName(), err)
	}

	selector, err := metav1.LabelSelectorAsSelector(&labelSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to parse selector of %s: %w", obj.GetName(), err)
	}

	list, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods of %s: %w", obj.GetName(), err)
	}

	if len(list.Items) == 0 {
		return nil, fmt.Errorf("%w for %s %s", ErrNoPods, obj.GetKind(), obj.GetName())
	}

	return list.Items, nil
}

// Excerpt reads the tail of the logs of the first pod of obj.
// Containers are read concurrently and joined in declaration order.
func (c *LogClient) Excerpt(
	ctx context.Context,
	obj *unstructured.Unstructured,
	opts LogOptions,
) (*LogExcerpt, error) {
	pods, err := c.PodsFor(ctx, obj)
	if err != nil {
		return nil, err
	}

	pod := pods[0]

	containers := containerNames(pod, opts.Container)
	if len(containers) == 0 {
		return nil, fmt.Errorf("%w: %q in pod %s", ErrContainerNotFound, opts.Container, pod.Name)
	}

	tailLines := opts.TailLines
	if tailLines <= 0 {
		tailLines = DefaultTailLines
	}

	texts := make([]string, len(containers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentLogReads)

	for i, container := range containers {
		group.Go(func() error {
			text, readErr := c.read(groupCtx, pod, container, tailLines, opts.Previous)
			if readErr != nil {
				return readErr
			}

			texts[i] = text

			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		return nil, err
	}

	excerpt := &LogExcerpt{Pod: pod.Name, Namespace: pod.Namespace}
	if obj.GetKind() != "Pod" {
		excerpt.Owner = obj.GetName()
	}

	if len(containers) == 1 {
		excerpt.Text = texts[0]

		return excerpt, nil
	}

	var builder strings.Builder

	for i, container := range containers {
		if i > 0 {
			builder.WriteString("\n")
		}

		fmt.Fprintf(&builder, "==> %s <==\n%s\n", container, texts[i])
	}

	excerpt.Text = strings.TrimRight(builder.String(), "\n")

	return excerpt, nil
}

func (c *LogClient) read(
	ctx context.Context,
	pod corev1.Pod,
	container string,
	tailLines int64,
	previous bool,
) (string, error) {
	stream, err := c.clientset.CoreV1().Pods(pod.Namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
		Container: container,
		TailLines: &tailLines,
		Previous:  previous,
	}).Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to stream logs of %s/%s: %w", pod.Name, container, err)
	}

	defer func() { _ = stream.Close() }()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("failed to read logs of %s/%s: %w", pod.Name, container, err)
	}

	return strings.TrimRight(string(data), "\n"), nil
}

func containerNames(pod corev1.Pod, only string) []string {
	var names []string

	for _, container := range pod.Spec.Containers {
		if only == "" || container.Name == only {
			names = append(names, container.Name)
		}
	}

	return names
}
