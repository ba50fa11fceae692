package configmanager_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	configmanager "github.com/devantler-tech/olschat/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "olschat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newCommandManager(t *testing.T, content string, args ...string) (*configmanager.ConfigManager, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	cmd := &cobra.Command{Use: "chat"}
	cmd.SetOut(&out)

	manager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultFieldSelectors())
	manager.SetConfigFile(writeConfigFile(t, content))

	require.NoError(t, cmd.ParseFlags(args))

	return manager, &out
}

const minimalConfig = `apiVersion: olschat.devantler.tech/v1alpha1
kind: Config
spec:
  service:
    url: https://ols.example.com
`

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	manager, out := newCommandManager(t, `apiVersion: olschat.devantler.tech/v1alpha1
kind: Config
spec:
  editor: nano
  service:
    url: https://ols.example.com
    queryPath: /v2/query
    timeout: 90s
  prometheus:
    url: https://thanos.example.com:9091
  chat:
    feedbackEnabled: false
    logTailLines: 50
`)

	cfg, err := manager.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "nano", cfg.Spec.Editor)
	assert.Equal(t, "https://ols.example.com", cfg.Spec.Service.URL)
	assert.Equal(t, "/v2/query", cfg.Spec.Service.QueryPath)
	assert.Equal(t, 90*time.Second, cfg.Spec.Service.Timeout.Duration)
	assert.Equal(t, "https://thanos.example.com:9091", cfg.Spec.Prometheus.URL)
	assert.False(t, cfg.Spec.Chat.FeedbackOn())
	assert.Equal(t, int64(50), cfg.Spec.Chat.LogTailLines)

	assert.Contains(t, out.String(), "Load config...")
	assert.Contains(t, out.String(), "found")
	assert.Contains(t, out.String(), "✔ config loaded")
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	t.Parallel()

	manager, _ := newCommandManager(t, minimalConfig)

	cfg, err := manager.LoadConfigSilent()
	require.NoError(t, err)

	assert.Equal(t, "/v1/query", cfg.Spec.Service.QueryPath)
	assert.Equal(t, 10*time.Minute, cfg.Spec.Service.Timeout.Duration)
	assert.Equal(t, int64(25), cfg.Spec.Chat.LogTailLines)
	assert.True(t, cfg.Spec.Chat.FeedbackOn())
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Parallel()

	manager, _ := newCommandManager(t, minimalConfig,
		"--service-url", "https://other.example.com",
		"--timeout", "2m",
		"--feedback=false",
		"--log-tail-lines", "5",
	)

	cfg, err := manager.LoadConfigSilent()
	require.NoError(t, err)

	assert.Equal(t, "https://other.example.com", cfg.Spec.Service.URL)
	assert.Equal(t, 2*time.Minute, cfg.Spec.Service.Timeout.Duration)
	assert.False(t, cfg.Spec.Chat.FeedbackOn())
	assert.Equal(t, int64(5), cfg.Spec.Chat.LogTailLines)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("OLSCHAT_SERVICE_URL", "https://env.example.com")
	t.Setenv("OLSCHAT_TIMEOUT", "30s")

	manager, _ := newCommandManager(t, minimalConfig)

	cfg, err := manager.LoadConfigSilent()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Spec.Service.URL)
	assert.Equal(t, 30*time.Second, cfg.Spec.Service.Timeout.Duration)
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	t.Parallel()

	manager, out := newCommandManager(t, "spec:\n  chat:\n    logTailLines: 10\n")

	_, err := manager.LoadConfig()
	require.ErrorIs(t, err, configmanager.ErrInvalidConfig)
	assert.Contains(t, out.String(), "✗ service URL is required")
}

func TestLoadConfig_CachesResult(t *testing.T) {
	t.Parallel()

	manager, _ := newCommandManager(t, minimalConfig)

	first, err := manager.LoadConfigSilent()
	require.NoError(t, err)

	second, err := manager.LoadConfigSilent()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestAddFlagsFromFields(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "chat"}
	configmanager.NewCommandConfigManager(cmd, configmanager.DefaultFieldSelectors())

	tests := []struct {
		flag     string
		flagType string
		defValue string
	}{
		{flag: "service-url", flagType: "string"},
		{flag: "query-path", flagType: "string", defValue: "/v1/query"},
		{flag: "timeout", flagType: "duration", defValue: "10m0s"},
		{flag: "log-tail-lines", flagType: "int64", defValue: "25"},
		{flag: "feedback", flagType: "bool", defValue: "true"},
		{flag: "tui", flagType: "bool", defValue: "true"},
	}

	for _, testCase := range tests {
		t.Run(testCase.flag, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(testCase.flag)
			require.NotNil(t, flag)
			assert.Equal(t, testCase.flagType, flag.Value.Type())
			assert.Equal(t, testCase.defValue, flag.DefValue)
		})
	}
}

func TestFieldSelector_EnvVar(t *testing.T) {
	t.Parallel()

	for _, selector := range configmanager.DefaultFieldSelectors() {
		if selector.Flag == "prometheus-url" {
			assert.Equal(t, "OLSCHAT_PROMETHEUS_URL", selector.EnvVar())
		}
	}
}
