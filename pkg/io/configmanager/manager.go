package configmanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/devantler-tech/olschat/pkg/utils/notify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// EnvPrefix prefixes every environment variable read by olschat.
	EnvPrefix = "OLSCHAT"
	// ConfigName is the base name of the config file, without extension.
	ConfigName = "olschat"
)

// ErrInvalidConfig is returned when the loaded configuration does not validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigManager loads the olschat v1alpha1.Config.
type ConfigManager struct {
	Viper          *viper.Viper
	Config         *v1alpha1.Config
	Writer         io.Writer // Writer for output notifications
	fieldSelectors []FieldSelector[v1alpha1.Config]
	command        *cobra.Command
	configLoaded   bool
}

// NewConfigManager creates a configuration manager for the given field selectors.
func NewConfigManager(writer io.Writer, fieldSelectors ...FieldSelector[v1alpha1.Config]) *ConfigManager {
	manager := &ConfigManager{
		Viper:          InitializeViper(),
		Config:         v1alpha1.NewConfig(),
		Writer:         writer,
		fieldSelectors: fieldSelectors,
	}

	for _, selector := range fieldSelectors {
		_ = manager.Viper.BindEnv(specKey(selector.Key), selector.EnvVar())
	}

	return manager
}

// NewCommandConfigManager constructs a ConfigManager bound to cmd: it registers a flag per
// selector and writes notifications to the command's output.
func NewCommandConfigManager(cmd *cobra.Command, selectors []FieldSelector[v1alpha1.Config]) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// InitializeViper creates a viper instance that looks for olschat.yaml in the working
// directory and in $HOME/.config/olschat.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		viperInstance.AddConfigPath(filepath.Join(home, ".config", ConfigName))
	}

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	return viperInstance
}

// SetConfigFile reads the configuration from path instead of searching for olschat.yaml.
func (m *ConfigManager) SetConfigFile(path string) {
	if path != "" {
		m.Viper.SetConfigFile(path)
	}
}

// LoadConfig loads the configuration and reports progress to Writer.
// Configuration priority: defaults < config file < environment variables < flags.
func (m *ConfigManager) LoadConfig() (*v1alpha1.Config, error) {
	return m.loadConfig(false)
}

// LoadConfigSilent loads the configuration without notifications.
func (m *ConfigManager) LoadConfigSilent() (*v1alpha1.Config, error) {
	return m.loadConfig(true)
}

func (m *ConfigManager) loadConfig(silent bool) (*v1alpha1.Config, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	if !silent {
		notify.Titlef(m.Writer, "⏳", "Load config...")
		notify.Activityf(m.Writer, "loading olschat config")
	}

	err := m.readConfig(silent)
	if err != nil {
		return nil, err
	}

	flagOverrides := m.captureChangedFlagValues()

	err = m.Viper.Unmarshal(m.Config, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			metav1DurationDecodeHook(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = m.applyFlagOverrides(flagOverrides)
	if err != nil {
		return nil, err
	}

	err = m.Config.Validate()
	if err != nil {
		if !silent {
			notify.Errorf(m.Writer, "%v", err)
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if !silent {
		notify.Successf(m.Writer, "config loaded")
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !silent {
			notify.Activityf(m.Writer, "using default config")
		}

		return nil
	}

	if !silent {
		notify.Activityf(m.Writer, "'%s' found", m.Viper.ConfigFileUsed())
	}

	return nil
}

func (m *ConfigManager) captureChangedFlagValues() map[string]string {
	if m.command == nil {
		return nil
	}

	overrides := make(map[string]string)

	m.command.Flags().Visit(func(f *pflag.Flag) {
		overrides[f.Name] = f.Value.String()
	})

	return overrides
}

func (m *ConfigManager) applyFlagOverrides(overrides map[string]string) error {
	for _, selector := range m.fieldSelectors {
		value, ok := overrides[selector.Flag]
		if !ok {
			continue
		}

		err := setFieldValueFromFlag(selector.Selector(m.Config), value)
		if err != nil {
			return fmt.Errorf("failed to apply flag override for %s: %w", selector.Flag, err)
		}
	}

	return nil
}

func specKey(key string) string {
	return "spec." + key
}

func envVarForFlag(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func metav1DurationDecodeHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeFor[metav1.Duration]()

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			if value == "" {
				return metav1.Duration{}, nil
			}

			duration, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", value, err)
			}

			return metav1.Duration{Duration: duration}, nil
		case time.Duration:
			return metav1.Duration{Duration: value}, nil
		default:
			return data, nil
		}
	}
}
