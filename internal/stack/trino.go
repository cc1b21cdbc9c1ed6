package stack

import (
	"context"

	"github.com/lakeup/lakeup/internal/confdoc"
	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

const trinoCoordinator = "trino-coordinator"

// queryEngineStep deploys the distributed SQL engine with a hive
// catalog templated from the metastore and object-store connection
// info. When the cache step published its address, the engine also gets
// a session property source pointing at the table-definition store.
func queryEngineStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepQueryEngine,
		Critical: true,
		Needs: []provisioning.Key{
			provisioning.KeyObjectStoreAccessKey,
			provisioning.KeyObjectStoreSecretKey,
			provisioning.KeyObjectStoreEndpoint,
			provisioning.KeyMetastoreURI,
		},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			return pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleaseTrino)
		},
		Run: func(pctx *provisioning.Context) error {
			store, err := objectStoreInfoFrom(pctx.Runtime)
			if err != nil {
				return err
			}
			metastoreURI, err := pctx.Runtime.Lookup(provisioning.KeyMetastoreURI)
			if err != nil {
				return err
			}

			hiveCatalog, err := confdoc.TrinoHiveCatalog.Render(map[string]string{
				confdoc.FieldAccessKey:    store.AccessKey,
				confdoc.FieldSecretKey:    store.SecretKey,
				confdoc.FieldEndpoint:     store.Endpoint,
				confdoc.FieldMetastoreURI: metastoreURI,
			})
			if err != nil {
				return err
			}

			defaults := helm.Values{
				"server": helm.Values{
					"workers": 1,
				},
				"catalogs": helm.Values{
					"hive": hiveCatalog,
				},
			}

			// The cache is advisory; its address is only wired in when
			// the cache step actually published it.
			if cacheAddr, err := pctx.Runtime.Lookup(provisioning.KeyCacheAddress); err == nil {
				defaults["additionalConfigProperties"] = []string{
					"table-definitions.cache.address=" + cacheAddr,
				}
			}

			values, err := releaseValues(pctx.Config, ReleaseTrino, defaults)
			if err != nil {
				return err
			}

			spec := chartSpec(ReleaseTrino, pctx.Config)
			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleaseTrino,
				Namespace: pctx.Config.Namespace,
				RepoURL:   spec.Repository,
				Chart:     spec.Chart,
				Version:   spec.Version,
				Values:    values,
				Timeout:   pctx.Timeouts.ReleaseInstall,
			})
			if err != nil {
				return err
			}

			return pctx.Poller.Wait(
				pctx.Context,
				"query engine",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					return pctx.Cluster.DeploymentReady(ctx, pctx.Config.Namespace, trinoCoordinator)
				},
			)
		},
	}
}
