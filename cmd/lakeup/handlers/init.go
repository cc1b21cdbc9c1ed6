package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/lakeup/lakeup/internal/config"
)

// Factory variables for testing injection.
var (
	runWizard       = runInitWizard
	writeConfigFile = config.Write
)

// Init interactively creates a stack configuration file.
func Init(ctx context.Context, outputPath string) error {
	cfg, err := runWizard(ctx)
	if err != nil {
		return err
	}

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return err
	}

	fmt.Printf("Configuration written to: %s\n", outputPath)
	fmt.Printf("\nNext step:\n")
	fmt.Printf("  lakeup up -c %s\n", outputPath)
	return nil
}

// runInitWizard collects the stack configuration interactively.
func runInitWizard(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	buckets := strings.Join(cfg.Buckets, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[config.Variant]().
				Title("Stack variant").
				Description("Which engines get wired to the object store").
				Options(
					huh.NewOption("Hive Metastore + Trino", config.VariantHiveTrino),
					huh.NewOption("Dremio", config.VariantDremio),
					huh.NewOption("Full (both)", config.VariantFull),
				).
				Value(&cfg.Variant),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Namespace").
				Description("Cluster namespace all releases are installed into").
				Value(&cfg.Namespace).
				Validate(validateName),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Buckets").
				Description("Comma-separated bucket names to provision").
				Value(&buckets).
				Validate(validateBuckets),

			huh.NewConfirm().
				Title("Table-definition cache").
				Description("Provision the in-memory cache alongside the query engine").
				Value(&cfg.CacheEnabled),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Compute service account").
				Description("Cluster identity the compute engine submits jobs as").
				Value(&cfg.ComputeUser).
				Validate(validateName),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	cfg.Buckets = splitBuckets(buckets)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateName enforces DNS-safe lowercase names.
func validateName(s string) error {
	if s == "" {
		return fmt.Errorf("a name is required")
	}
	if len(s) > 63 {
		return fmt.Errorf("must be 63 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("only lowercase letters, numbers, and hyphens allowed")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("cannot start or end with a hyphen")
	}
	return nil
}

func validateBuckets(s string) error {
	names := splitBuckets(s)
	if len(names) == 0 {
		return fmt.Errorf("at least one bucket is required")
	}
	for _, name := range names {
		if err := validateName(name); err != nil {
			return fmt.Errorf("bucket %q: %w", name, err)
		}
	}
	return nil
}

func splitBuckets(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
