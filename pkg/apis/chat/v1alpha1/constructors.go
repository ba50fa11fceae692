package v1alpha1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// DefaultQueryPath is the query endpoint of the assistant service.
	DefaultQueryPath = "/v1/query"
	// DefaultTimeout bounds how long a query may wait for its answer.
	DefaultTimeout = 10 * time.Minute
	// DefaultLogTailLines is the number of log lines attached per container.
	DefaultLogTailLines int64 = 25
)

// NewConfig creates a Config with the API metadata set and every default applied.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a Spec with default values.
func NewSpec() Spec {
	return Spec{
		Service: ServiceSpec{
			QueryPath: DefaultQueryPath,
			Timeout:   metav1.Duration{Duration: DefaultTimeout},
		},
		Chat: ChatSpec{
			LogTailLines: DefaultLogTailLines,
		},
	}
}
