package configmanager

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AddFlagsFromFields registers one flag per field selector, typed after the field.
// Flag defaults show the built-in defaults; only flags set by the user override the config.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	defaults := v1alpha1.NewConfig()

	for _, selector := range m.fieldSelectors {
		if cmd.Flags().Lookup(selector.Flag) != nil {
			continue
		}

		switch ptr := selector.Selector(defaults).(type) {
		case *string:
			cmd.Flags().String(selector.Flag, *ptr, selector.Description)
		case *metav1.Duration:
			cmd.Flags().Duration(selector.Flag, ptr.Duration, selector.Description)
		case *int64:
			cmd.Flags().Int64(selector.Flag, *ptr, selector.Description)
		case *bool:
			cmd.Flags().Bool(selector.Flag, *ptr, selector.Description)
		case **bool:
			cmd.Flags().Bool(selector.Flag, *ptr == nil || **ptr, selector.Description)
		}
	}
}

func setFieldValueFromFlag(fieldPtr any, raw string) error {
	switch ptr := fieldPtr.(type) {
	case *string:
		*ptr = raw

		return nil
	case *metav1.Duration:
		return setDurationFromFlag(ptr, raw)
	case *int64:
		return setInt64FromFlag(ptr, raw)
	case *bool:
		return setBoolFromFlag(ptr, raw)
	case **bool:
		var value bool

		err := setBoolFromFlag(&value, raw)
		if err != nil {
			return err
		}

		*ptr = &value

		return nil
	default:
		return nil
	}
}

func setDurationFromFlag(target *metav1.Duration, raw string) error {
	if raw == "" {
		target.Duration = 0

		return nil
	}

	duration, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	target.Duration = duration

	return nil
}

func setBoolFromFlag(target *bool, raw string) error {
	if raw == "" {
		*target = false

		return nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("parse bool %q: %w", raw, err)
	}

	*target = value

	return nil
}

func setInt64FromFlag(target *int64, raw string) error {
	if raw == "" {
		*target = 0

		return nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", raw, err)
	}

	*target = value

	return nil
}
