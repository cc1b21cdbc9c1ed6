package stack

import (
	"fmt"
	"maps"
	"os"

	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/platform/spark"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// sparkLogsBucket receives compute-engine event logs. Part of the
// default bucket set provisioned by bucketsStep.
const sparkLogsBucket = "spark-logs"

// computeConfigStep registers the compute service account and writes
// its configuration profile, wiring the engine to whatever the earlier
// steps published. The profile is compared field by field during Check,
// so a changed credential re-triggers the write on the next run.
func computeConfigStep(cfg *config.Config) provisioning.Step {
	needs := make([]provisioning.Key, 0, len(objectStoreKeys)+2)
	needs = append(needs, objectStoreKeys...)
	if cfg.WantsMetastore() {
		needs = append(needs, provisioning.KeyMetastoreURI)
	}
	if cfg.WantsCatalog() {
		needs = append(needs, provisioning.KeyCatalogEndpoint)
	}

	return provisioning.Step{
		ID:       StepComputeConfig,
		Critical: true,
		Needs:    needs,
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			presence, err := pctx.Compute.ServiceAccountPresence(pctx.Context, pctx.Config.ComputeUser, pctx.Config.Namespace)
			if err != nil || presence != provisioning.PresenceExists {
				return presence, err
			}

			want, err := buildProfile(pctx)
			if err != nil {
				return provisioning.PresenceUnknown, err
			}
			got, err := pctx.Compute.GetConfig(pctx.Context, pctx.Config.ComputeUser, pctx.Config.Namespace)
			if err != nil {
				return provisioning.PresenceUnknown, err
			}
			if !maps.Equal(got, want) {
				return provisioning.PresenceAbsent, nil
			}
			return provisioning.PresenceExists, nil
		},
		Run: func(pctx *provisioning.Context) error {
			presence, err := pctx.Compute.EnsureServiceAccount(pctx.Context, pctx.Config.ComputeUser, pctx.Config.Namespace)
			if err != nil {
				return err
			}
			switch presence {
			case provisioning.PresenceExists:
				provisioning.LogResourceExists(pctx.Observer, string(StepComputeConfig), "serviceaccount", pctx.Config.ComputeUser)
			default:
				provisioning.LogResourceCreated(pctx.Observer, string(StepComputeConfig), "serviceaccount", pctx.Config.ComputeUser)
			}

			profile, err := buildProfile(pctx)
			if err != nil {
				return err
			}
			return pctx.Compute.SetConfig(pctx.Context, pctx.Config.ComputeUser, pctx.Config.Namespace, profile)
		},
		Discover: func(pctx *provisioning.Context) error {
			if pctx.Config.ProfileOutput == "" {
				return nil
			}
			profile, err := pctx.Compute.GetConfig(pctx.Context, pctx.Config.ComputeUser, pctx.Config.Namespace)
			if err != nil {
				return fmt.Errorf("failed to read back compute profile: %w", err)
			}
			return os.WriteFile(pctx.Config.ProfileOutput, []byte(spark.RenderProfile(profile)), 0o644)
		},
	}
}

// buildProfile assembles the spark-defaults property map from the
// published runtime values.
func buildProfile(pctx *provisioning.Context) (map[string]string, error) {
	store, err := objectStoreInfoFrom(pctx.Runtime)
	if err != nil {
		return nil, err
	}

	profile := map[string]string{
		"spark.hadoop.fs.s3a.endpoint":               "http://" + store.Endpoint,
		"spark.hadoop.fs.s3a.access.key":             store.AccessKey,
		"spark.hadoop.fs.s3a.secret.key":             store.SecretKey,
		"spark.hadoop.fs.s3a.path.style.access":      "true",
		"spark.hadoop.fs.s3a.connection.ssl.enabled": "false",
		"spark.eventLog.enabled":                     "true",
		"spark.eventLog.dir":                         fmt.Sprintf("s3a://%s/", sparkLogsBucket),
		"spark.sql.warehouse.dir":                    fmt.Sprintf("s3a://%s/", warehouseBucket),
	}

	if uri, err := pctx.Runtime.Lookup(provisioning.KeyMetastoreURI); err == nil {
		profile["spark.hadoop.hive.metastore.uris"] = uri
	}
	if endpoint, err := pctx.Runtime.Lookup(provisioning.KeyCatalogEndpoint); err == nil {
		profile["spark.sql.catalog.lakehouse.uri"] = endpoint
	}

	return profile, nil
}
