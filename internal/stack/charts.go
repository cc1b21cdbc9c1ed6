package stack

import "github.com/lakeup/lakeup/internal/config"

// Release names double as chart-override keys in the config file.
const (
	ReleaseMinIO     = "minio"
	ReleasePostgres  = "metastore-db"
	ReleaseMetastore = "hive-metastore"
	ReleaseRedis     = "redis"
	ReleaseTrino     = "trino"
	ReleaseDremio    = "dremio"
)

// ChartSpec pins one release to a repository, chart and version.
type ChartSpec struct {
	RepoName   string
	Repository string
	Chart      string
	Version    string
}

// defaultChartSpecs pins the chart versions the pipeline was tested
// against. Users can override per release via the config file.
var defaultChartSpecs = map[string]ChartSpec{
	ReleaseMinIO: {
		RepoName:   "minio",
		Repository: "https://charts.min.io/",
		Chart:      "minio",
		Version:    "5.2.0",
	},
	ReleasePostgres: {
		RepoName:   "bitnami",
		Repository: "https://charts.bitnami.com/bitnami",
		Chart:      "postgresql",
		Version:    "15.5.20",
	},
	ReleaseMetastore: {
		RepoName:   "bigdata",
		Repository: "https://gradiant.github.io/bigdata-charts/",
		Chart:      "hive-metastore",
		Version:    "0.1.0",
	},
	ReleaseRedis: {
		RepoName:   "bitnami",
		Repository: "https://charts.bitnami.com/bitnami",
		Chart:      "redis",
		Version:    "19.6.4",
	},
	ReleaseTrino: {
		RepoName:   "trino",
		Repository: "https://trinodb.github.io/charts/",
		Chart:      "trino",
		Version:    "0.25.0",
	},
	ReleaseDremio: {
		RepoName:   "dremio",
		Repository: "https://charts.dremio.com/",
		Chart:      "dremio",
		Version:    "2.0.4",
	},
}

// chartSpec returns the chart spec for a release with config overrides
// applied.
func chartSpec(name string, cfg *config.Config) ChartSpec {
	spec := defaultChartSpecs[name]

	if override, ok := cfg.Charts[name]; ok {
		if override.Repository != "" {
			spec.Repository = override.Repository
		}
		if override.Chart != "" {
			spec.Chart = override.Chart
		}
		if override.Version != "" {
			spec.Version = override.Version
		}
	}
	return spec
}
