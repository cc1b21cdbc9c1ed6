package commands

import (
	"github.com/spf13/cobra"

	"github.com/lakeup/lakeup/cmd/lakeup/handlers"
)

// Init returns the command for interactively creating a stack
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "lakeup.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a stack configuration",
		Long: `Interactively create a stack configuration file.

This command guides you through configuring your lakehouse stack
step by step. It will ask about:

  - Stack variant (hive-trino, dremio, or full)
  - Target namespace
  - Bucket layout
  - Table-definition cache
  - Compute service account`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "lakeup.yaml", "Output file path")

	return cmd
}
