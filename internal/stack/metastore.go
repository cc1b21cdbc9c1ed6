package stack

import (
	"context"
	"fmt"

	"github.com/lakeup/lakeup/internal/confdoc"
	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// warehouseBucket is the bucket the metastore points managed tables at.
// It is part of the default bucket set provisioned by bucketsStep.
const warehouseBucket = "warehouse"

// metastoreStep deploys the metadata service on top of the relational
// store, templating in the object-store credentials discovered earlier.
func metastoreStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepMetastore,
		Critical: true,
		Needs: []provisioning.Key{
			provisioning.KeyObjectStoreAccessKey,
			provisioning.KeyObjectStoreSecretKey,
			provisioning.KeyObjectStoreEndpoint,
			provisioning.KeyMetastoreDBPassword,
		},
		Provides: []provisioning.Key{provisioning.KeyMetastoreURI},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			return pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleaseMetastore)
		},
		Run: func(pctx *provisioning.Context) error {
			store, err := objectStoreInfoFrom(pctx.Runtime)
			if err != nil {
				return err
			}
			dbPassword, err := pctx.Runtime.Lookup(provisioning.KeyMetastoreDBPassword)
			if err != nil {
				return err
			}

			hiveSite, err := confdoc.HiveSite.Render(map[string]string{
				confdoc.FieldAccessKey:     store.AccessKey,
				confdoc.FieldSecretKey:     store.SecretKey,
				confdoc.FieldEndpoint:      store.Endpoint,
				confdoc.FieldWarehousePath: fmt.Sprintf("s3a://%s/", warehouseBucket),
			})
			if err != nil {
				return err
			}

			spec := chartSpec(ReleaseMetastore, pctx.Config)
			values, err := releaseValues(pctx.Config, ReleaseMetastore, helm.Values{
				"hiveSiteXml": hiveSite,
				"postgresql": helm.Values{
					"enabled": false,
				},
				"connections": helm.Values{
					"database": helm.Values{
						"host":     metastoreDBService,
						"port":     5432,
						"name":     metastoreDBName,
						"user":     metastoreDBUser,
						"password": dbPassword,
					},
				},
			})
			if err != nil {
				return err
			}

			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleaseMetastore,
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
				"metastore",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					return pctx.Cluster.DeploymentReady(ctx, pctx.Config.Namespace, ReleaseMetastore)
				},
			)
		},
		Discover: func(pctx *provisioning.Context) error {
			addr, err := pctx.Cluster.ServiceAddress(pctx.Context, pctx.Config.Namespace, ReleaseMetastore)
			if err != nil {
				return fmt.Errorf("failed to resolve metastore address: %w", err)
			}
			uri := fmt.Sprintf("thrift://%s:%d", addr.Host, addr.Port)
			pctx.Runtime.Publish(provisioning.KeyMetastoreURI, uri)
			provisioning.LogValuePublished(pctx.Observer, string(StepMetastore), provisioning.KeyMetastoreURI)
			return nil
		},
	}
}
