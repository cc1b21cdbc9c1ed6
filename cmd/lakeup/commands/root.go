// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/lakeup/lakeup/internal/logging"
)

// Root returns the root command for the lakeup CLI.
func Root() *cobra.Command {
	var (
		logFormat string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "lakeup",
		Short: "Bootstrap a data lakehouse on Kubernetes",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logging.Initialize(logFormat, logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.Auto, "Log format (auto, text, json)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(Up())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
