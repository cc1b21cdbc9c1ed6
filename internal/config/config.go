// Package config defines the lakeup configuration: which stack variant
// to provision, where, and with which chart versions and timeouts.
package config

import "fmt"

// Variant selects which downstream engines get wired to object storage.
// The object store is always provisioned; the metastore/query-engine
// pair and the catalog engine are alternative stack variants.
type Variant string

const (
	// VariantHiveTrino provisions PostgreSQL, Hive Metastore and Trino.
	VariantHiveTrino Variant = "hive-trino"
	// VariantDremio provisions the Dremio catalog/analytics engine.
	VariantDremio Variant = "dremio"
	// VariantFull provisions both.
	VariantFull Variant = "full"
)

// ChartOverride lets users override the repository, chart name or
// version of a single release. Empty fields keep the built-in default.
type ChartOverride struct {
	Repository string `json:"repository,omitempty"`
	Chart      string `json:"chart,omitempty"`
	Version    string `json:"version,omitempty"`

	// ValuesFiles are YAML files layered over the built-in release
	// values, later files winning, like repeated helm -f flags.
	ValuesFiles []string `json:"valuesFiles,omitempty"`
}

// Config is the top-level lakeup configuration.
type Config struct {
	// Variant selects the stack variant to provision.
	Variant Variant `json:"variant"`

	// Namespace is the cluster namespace all releases are installed into.
	Namespace string `json:"namespace"`

	// Kubeconfig is the path to the kubeconfig for the target cluster.
	// Empty means the standard loading rules (KUBECONFIG, ~/.kube/config).
	Kubeconfig string `json:"kubeconfig,omitempty"`

	// Buckets is the fixed bucket set provisioned on the object store.
	Buckets []string `json:"buckets,omitempty"`

	// CatalogBucket is the dedicated bucket for the catalog engine.
	CatalogBucket string `json:"catalogBucket,omitempty"`

	// ComputeUser is the compute-cluster service account name.
	ComputeUser string `json:"computeUser,omitempty"`

	// ProfileOutput is the path the compute configuration snapshot is
	// written to for operator inspection.
	ProfileOutput string `json:"profileOutput,omitempty"`

	// CacheEnabled provisions the table-definition cache and mounts its
	// definitions into the query engine.
	CacheEnabled bool `json:"cacheEnabled"`

	// Charts holds per-release chart overrides keyed by release name.
	Charts map[string]ChartOverride `json:"charts,omitempty"`

	// Timeouts are loaded from the environment, not the config file.
	Timeouts *Timeouts `json:"-"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Variant:       VariantHiveTrino,
		Namespace:     "lakehouse",
		Buckets:       []string{"raw", "curated", "warehouse", "spark-logs"},
		CatalogBucket: "catalog",
		ComputeUser:   "spark",
		ProfileOutput: "lakeup-profile.conf",
		CacheEnabled:  true,
		Timeouts:      LoadTimeouts(),
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantHiveTrino, VariantDremio, VariantFull:
	case "":
		return fmt.Errorf("variant must be set (one of %s, %s, %s)", VariantHiveTrino, VariantDremio, VariantFull)
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}

	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if len(c.Buckets) == 0 {
		return fmt.Errorf("at least one bucket must be configured")
	}
	seen := make(map[string]bool, len(c.Buckets))
	for _, b := range c.Buckets {
		if b == "" {
			return fmt.Errorf("bucket names must not be empty")
		}
		if seen[b] {
			return fmt.Errorf("duplicate bucket %q", b)
		}
		seen[b] = true
	}
	if c.ComputeUser == "" {
		return fmt.Errorf("computeUser must not be empty")
	}
	return nil
}

// WantsMetastore reports whether the variant includes the metastore and
// query engine.
func (c *Config) WantsMetastore() bool {
	return c.Variant == VariantHiveTrino || c.Variant == VariantFull
}

// WantsCatalog reports whether the variant includes the catalog engine.
func (c *Config) WantsCatalog() bool {
	return c.Variant == VariantDremio || c.Variant == VariantFull
}
