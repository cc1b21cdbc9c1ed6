package stack

import (
	"context"
	"fmt"

	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// Backing database identity for the metastore. The chart generates the
// password for the hive user on first install.
const (
	metastoreDBUser     = "hive"
	metastoreDBName     = "metastore"
	metastoreDBSecret   = "metastore-db-postgresql"
	metastoreDBService  = "metastore-db-postgresql"
	metastoreDBPassword = "password"
)

// metastoreDBStep deploys the relational store backing the metastore
// and discovers the generated database password.
func metastoreDBStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepMetastoreDB,
		Critical: true,
		Provides: []provisioning.Key{provisioning.KeyMetastoreDBPassword},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			presence, err := pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleasePostgres)
			if err != nil || presence != provisioning.PresenceExists {
				return presence, err
			}
			return pctx.Cluster.SecretPresence(pctx.Context, pctx.Config.Namespace, metastoreDBSecret)
		},
		Run: func(pctx *provisioning.Context) error {
			spec := chartSpec(ReleasePostgres, pctx.Config)
			values, err := releaseValues(pctx.Config, ReleasePostgres, helm.Values{
				"auth": helm.Values{
					"username": metastoreDBUser,
					"database": metastoreDBName,
				},
				"primary": helm.Values{
					"persistence": helm.Values{"size": "8Gi"},
				},
			})
			if err != nil {
				return err
			}

			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleasePostgres,
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
				"metastore database",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					return pctx.Cluster.StatefulSetReady(ctx, pctx.Config.Namespace, metastoreDBService)
				},
			)
		},
		Discover: func(pctx *provisioning.Context) error {
			password, err := pctx.Cluster.SecretValue(pctx.Context, pctx.Config.Namespace, metastoreDBSecret, metastoreDBPassword)
			if err != nil {
				return fmt.Errorf("failed to read metastore database password: %w", err)
			}
			pctx.Runtime.Publish(provisioning.KeyMetastoreDBPassword, password)
			provisioning.LogValuePublished(pctx.Observer, string(StepMetastoreDB), provisioning.KeyMetastoreDBPassword)
			return nil
		},
	}
}
