// Package config provides commands for working with the olschat configuration file.
package config

import (
	"fmt"

	"github.com/devantler-tech/olschat/pkg/apis/chat/v1alpha1"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with the olschat.yaml configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newSchemaCmd())

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of olschat.yaml",
		Long: "Print the JSON schema of olschat.yaml. Point the yaml-language-server " +
			"$schema comment at the output to get completion in editors.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := v1alpha1.JSONSchema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			if err != nil {
				return fmt.Errorf("failed to write schema: %w", err)
			}

			return nil
		},
	}
}
