package k8s

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

// ObjectRef identifies a single object.
type ObjectRef struct {
	GroupVersionKind schema.GroupVersionKind
	Name             string
	Namespace        string
}

// ResourceClient fetches arbitrary objects by kind.
type ResourceClient struct {
	client dynamic.Interface
	mapper meta.RESTMapper
}

// NewResourceClient creates a ResourceClient.
func NewResourceClient(client dynamic.Interface, mapper meta.RESTMapper) *ResourceClient {
	return &ResourceClient{client: client, mapper: mapper}
}

// Get returns the referenced object. It returns nil without error when the object or
// its kind does not exist.
func (c *ResourceClient) Get(ctx context.Context, ref ObjectRef) (*unstructured.Unstructured, error) {
	gvk := ref.GroupVersionKind

	var versions []string
	if gvk.Version != "" {
		versions = append(versions, gvk.Version)
	}

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), versions...)
	if err != nil {
		if meta.IsNoMatchError(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to map %s: %w", gvk.Kind, err)
	}

	var resource dynamic.ResourceInterface = c.client.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		resource = c.client.Resource(mapping.Resource).Namespace(ref.Namespace)
	}

	obj, err := resource.Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get %s %s: %w", gvk.Kind, ref.Name, err)
	}

	return obj, nil
}
