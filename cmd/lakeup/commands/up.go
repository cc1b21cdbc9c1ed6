package commands

import (
	"github.com/spf13/cobra"

	"github.com/lakeup/lakeup/cmd/lakeup/handlers"
)

// Up returns the command that provisions the lakehouse stack.
//
// Optional flags:
//
//	--config, -c: Path to the stack configuration YAML file (default: lakeup.yaml)
//	--variant: Override the configured stack variant for this run
func Up() *cobra.Command {
	var configPath string
	var variant string

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision or update the lakehouse stack",
		Long: `Provision or update the lakehouse stack.

This command installs object storage, the metastore with its relational
backend, a query or catalog engine depending on the configured variant,
the optional table-definition cache, and the compute-engine client
configuration onto the target cluster.

The command is idempotent: re-running it skips everything already
provisioned and only performs the missing work, so it doubles as a
repair tool after a partial failure.

If no config file is specified, it looks for lakeup.yaml in the current
directory and falls back to built-in defaults when the file is missing.
Use 'lakeup init' to create a configuration file.

Examples:
  # Provision using lakeup.yaml in the current directory
  lakeup up

  # Provision using a specific config file
  lakeup up -c production.yaml

  # Re-run after a partial failure
  lakeup up

  # Override the configured variant for this run
  lakeup up --variant full`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, variant)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lakeup.yaml", "Path to configuration file")
	cmd.Flags().StringVar(&variant, "variant", "", "Override the stack variant (hive-trino, dremio, full)")

	return cmd
}
