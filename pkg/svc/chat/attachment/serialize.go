package attachment

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// MarshalResource renders a Kubernetes object as a YAML attachment value.
// metadata.managedFields is dropped. With statusOnly, only kind, metadata and status are kept.
// The source object is not modified.
func MarshalResource(obj map[string]any, statusOnly bool) (string, error) {
	data := make(map[string]any, len(obj))

	if statusOnly {
		for _, key := range []string{"kind", "metadata", "status"} {
			if value, ok := obj[key]; ok {
				data[key] = value
			}
		}
	} else {
		for key, value := range obj {
			data[key] = value
		}
	}

	if metadata, ok := data["metadata"].(map[string]any); ok {
		trimmed := make(map[string]any, len(metadata))

		for key, value := range metadata {
			if key == "managedFields" {
				continue
			}

			trimmed[key] = value
		}

		data["metadata"] = trimmed
	}

	return MarshalObject(data)
}

// MarshalObject renders any JSON-compatible value as a trimmed YAML document.
func MarshalObject(obj any) (string, error) {
	out, err := yaml.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("%w: converting to YAML: %w", ErrSerialization, err)
	}

	return strings.TrimSpace(string(out)), nil
}
