// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/platform/k8s"
	"github.com/lakeup/lakeup/internal/platform/s3"
	"github.com/lakeup/lakeup/internal/platform/spark"
	"github.com/lakeup/lakeup/internal/provisioning"
	"github.com/lakeup/lakeup/internal/readiness"
	"github.com/lakeup/lakeup/internal/stack"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the stack config from file.
	loadConfigFile = config.Load

	// newClusterClient creates the cluster runtime client.
	newClusterClient = func(kubeconfigPath string) (provisioning.ClusterRuntime, error) {
		return k8s.NewClient(kubeconfigPath)
	}

	// newReleaseInstaller creates the chart installer.
	newReleaseInstaller = func(kubeconfigPath string) (provisioning.ReleaseInstaller, error) {
		return helm.NewClient(kubeconfigPath)
	}

	// newComputeRegistry creates the compute-engine client registry.
	newComputeRegistry = func(cluster provisioning.ClusterRuntime) provisioning.ComputeRegistry {
		return spark.NewRegistry(cluster)
	}

	// newObjectStore builds the object-store client from discovered
	// credentials.
	newObjectStore = func(endpoint, accessKey, secretKey string) (provisioning.ObjectStore, error) {
		return s3.NewClient(endpoint, accessKey, secretKey)
	}
)

// Up provisions the lakehouse stack described by the configuration.
//
// The workflow:
//  1. Loads and validates the stack configuration
//  2. Connects to the target cluster and chart installer
//  3. Assembles the step pipeline for the configured variant
//  4. Runs the pipeline; each step skips work already done
//  5. Prints a per-step summary and the compute profile location
//
// Re-running Up against a healthy stack performs no mutations. After a
// partial failure it resumes from the failed step, re-discovering the
// runtime values the completed steps would have published.
func Up(ctx context.Context, configPath, variantOverride string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}
	if variantOverride != "" {
		cfg.Variant = config.Variant(variantOverride)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	cluster, err := newClusterClient(cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}
	releases, err := newReleaseInstaller(cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to initialize chart installer: %w", err)
	}

	observer := provisioning.NewSlogObserver(slog.Default())
	pctx := provisioning.NewContext(ctx, cfg, cluster, releases, newComputeRegistry(cluster), readiness.NewPoller(), observer)
	pctx.NewObjectStore = newObjectStore

	pipeline, err := provisioning.NewPipeline(stack.BuildSteps(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	results, runErr := pipeline.Run(pctx)
	fmt.Print(renderRunSummary(cfg, results))

	if runErr != nil {
		return runErr
	}

	fmt.Printf("\nCompute profile written to: %s\n", cfg.ProfileOutput)
	return nil
}
