package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// DefaultKubeconfigPath returns the default kubeconfig path for the current user.
// The path is constructed as ~/.kube/config using the user's home directory.
func DefaultKubeconfigPath() string {
	homeDir, _ := os.UserHomeDir()

	return filepath.Join(homeDir, ".kube", "config")
}

// BuildRESTConfig builds a Kubernetes REST config from kubeconfig path and optional context.
//
// The kubeconfig parameter must be a non-empty path to a valid kubeconfig file.
// If context is empty, the current context of the kubeconfig is used.
//
// Returns ErrKubeconfigPathEmpty if kubeconfig path is empty.
func BuildRESTConfig(kubeconfig, context string) (*rest.Config, error) {
	if kubeconfig == "" {
		return nil, ErrKubeconfigPathEmpty
	}

	return loadRESTConfig(&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}, context)
}

// LoadRESTConfig is BuildRESTConfig with a fallback to the standard client-go loading
// rules (KUBECONFIG, ~/.kube/config) when kubeconfig is empty.
func LoadRESTConfig(kubeconfig, context string) (*rest.Config, error) {
	if kubeconfig != "" {
		return BuildRESTConfig(kubeconfig, context)
	}

	return loadRESTConfig(clientcmd.NewDefaultClientConfigLoadingRules(), context)
}

func loadRESTConfig(loadingRules *clientcmd.ClientConfigLoadingRules, context string) (*rest.Config, error) {
	overrides := &clientcmd.ConfigOverrides{}
	if context != "" {
		overrides.CurrentContext = context
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	return restConfig, nil
}

// BearerToken returns the token the REST config authenticates with, reading the token
// file when only a path is configured. It returns an empty string for other auth methods.
func BearerToken(restConfig *rest.Config) (string, error) {
	if restConfig.BearerToken != "" {
		return restConfig.BearerToken, nil
	}

	if restConfig.BearerTokenFile == "" {
		return "", nil
	}

	token, err := os.ReadFile(restConfig.BearerTokenFile)
	if err != nil {
		return "", fmt.Errorf("failed to read bearer token file: %w", err)
	}

	return string(token), nil
}
