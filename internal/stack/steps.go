package stack

import (
	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// Step identifiers, in pipeline order.
const (
	StepClusterBootstrap provisioning.StepID = "cluster-bootstrap"
	StepToolInstall      provisioning.StepID = "tool-install"
	StepNamespace        provisioning.StepID = "namespace"
	StepObjectStore      provisioning.StepID = "object-store"
	StepBuckets          provisioning.StepID = "buckets"
	StepMetastoreDB      provisioning.StepID = "metastore-db"
	StepMetastore        provisioning.StepID = "metastore"
	StepCache            provisioning.StepID = "cache"
	StepQueryEngine      provisioning.StepID = "query-engine"
	StepCatalog          provisioning.StepID = "catalog"
	StepComputeConfig    provisioning.StepID = "compute-config"
)

// BuildSteps assembles the ordered step list for the configured stack
// variant. The pipeline is linear; variant selection only decides which
// steps are present, never their relative order.
func BuildSteps(cfg *config.Config) []provisioning.Step {
	steps := []provisioning.Step{
		clusterBootstrapStep(),
		toolInstallStep(),
		namespaceStep(),
		objectStoreStep(),
		bucketsStep(),
	}

	if cfg.WantsMetastore() {
		steps = append(steps, metastoreDBStep(), metastoreStep())
	}
	if cfg.CacheEnabled {
		steps = append(steps, cacheStep())
	}
	if cfg.WantsMetastore() {
		steps = append(steps, queryEngineStep())
	}
	if cfg.WantsCatalog() {
		steps = append(steps, catalogStep())
	}

	steps = append(steps, computeConfigStep(cfg))
	return steps
}
