package di_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/devantler-tech/olschat/pkg/svc/chat/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: kube-token
`

func newTestConfig(t *testing.T) *v1alpha1.Config {
	t.Helper()

	kubeconfig := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(kubeconfig, []byte(testKubeconfig), 0o600))

	cfg := v1alpha1.NewConfig()
	cfg.Spec.Service.URL = "https://ols.example.com"
	cfg.Spec.Cluster.Kubeconfig = kubeconfig

	return cfg
}

func TestNewRuntime(t *testing.T) {
	t.Parallel()

	require.NotNil(t, di.NewRuntime())
}

func TestResolveConfig_Missing(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		_, err := di.ResolveConfig(injector)

		return err
	})

	require.Error(t, err)
}

func TestNewSession_WiresEveryAdapter(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.Spec.Prometheus.URL = "https://thanos.example.com:9091"

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		chat, warnings, err := di.NewSession(injector, nil)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.NotNil(t, chat)

		clients, err := di.ResolveClusterClients(injector)
		require.NoError(t, err)
		assert.NotNil(t, clients.Typed)

		return nil
	}, di.ConfigModule(cfg))

	require.NoError(t, err)
}

func TestNewSession_WarnsAboutMissingCollaborators(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()
	cfg.Spec.Service.URL = "https://ols.example.com"
	cfg.Spec.Cluster.Kubeconfig = filepath.Join(t.TempDir(), "missing")

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		chat, warnings, err := di.NewSession(injector, nil)
		require.NoError(t, err)
		require.NotNil(t, chat)
		assert.Len(t, warnings, 2)

		_, err = di.ResolveAlertFinder(injector)
		require.ErrorIs(t, err, di.ErrPrometheusNotConfigured)

		_, attachErr := chat.Attach(t.Context(), session.AttachRequest{Type: "YAML"})
		require.Error(t, attachErr)

		return nil
	}, di.ConfigModule(cfg))

	require.NoError(t, err)
}

func TestSessionConfig(t *testing.T) {
	t.Parallel()

	off := false
	cfg := v1alpha1.NewConfig()
	cfg.Spec.Service.Timeout.Duration = time.Minute
	cfg.Spec.Chat.FeedbackEnabled = &off
	cfg.Spec.Chat.LogTailLines = 7

	assert.Equal(t, session.Config{
		Timeout:         time.Minute,
		FeedbackEnabled: false,
		LogTailLines:    7,
	}, di.SessionConfig(cfg))
}
