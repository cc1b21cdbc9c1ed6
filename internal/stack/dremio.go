package stack

import (
	"context"
	"fmt"

	"github.com/lakeup/lakeup/internal/confdoc"
	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

const (
	dremioMaster  = "dremio-master"
	dremioService = "dremio-client"
)

// catalogStep deploys the lakehouse catalog/analytics engine with a
// dedicated bucket for its distributed storage.
func catalogStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepCatalog,
		Critical: true,
		Needs:    objectStoreKeys,
		Provides: []provisioning.Key{provisioning.KeyCatalogEndpoint},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			return pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleaseDremio)
		},
		Run: func(pctx *provisioning.Context) error {
			store, err := objectStoreInfoFrom(pctx.Runtime)
			if err != nil {
				return err
			}

			client, err := pctx.ObjectStore()
			if err != nil {
				return err
			}
			if err := ensureBucket(pctx, client, pctx.Config.CatalogBucket); err != nil {
				return err
			}

			dremioConf, err := confdoc.DremioConf.Render(map[string]string{
				confdoc.FieldAccessKey:     store.AccessKey,
				confdoc.FieldSecretKey:     store.SecretKey,
				confdoc.FieldEndpoint:      store.Endpoint,
				confdoc.FieldCatalogBucket: pctx.Config.CatalogBucket,
			})
			if err != nil {
				return err
			}

			spec := chartSpec(ReleaseDremio, pctx.Config)
			values, err := releaseValues(pctx.Config, ReleaseDremio, helm.Values{
				"coordinator": helm.Values{
					"count": 0, // master only on a single node
				},
				"executor": helm.Values{
					"count": 1,
				},
				"extraConf": dremioConf,
			})
			if err != nil {
				return err
			}

			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleaseDremio,
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
				"catalog engine",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					return pctx.Cluster.StatefulSetReady(ctx, pctx.Config.Namespace, dremioMaster)
				},
			)
		},
		Discover: func(pctx *provisioning.Context) error {
			addr, err := pctx.Cluster.ServiceAddress(pctx.Context, pctx.Config.Namespace, dremioService)
			if err != nil {
				return fmt.Errorf("failed to resolve catalog address: %w", err)
			}
			pctx.Runtime.Publish(provisioning.KeyCatalogEndpoint, fmt.Sprintf("%s:%d", addr.Host, addr.Port))
			provisioning.LogValuePublished(pctx.Observer, string(StepCatalog), provisioning.KeyCatalogEndpoint)
			return nil
		},
	}
}
