package stack

import (
	"context"
	"fmt"

	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// Secret keys under which the minio chart stores its generated root
// credential pair.
const (
	minioSecretAccessKey = "rootUser"
	minioSecretSecretKey = "rootPassword"
)

// objectStoreStep deploys MinIO and discovers its generated credentials
// and cluster-internal address. The chart generates the root credential
// pair on first install; every later step that touches object storage
// consumes the published values.
func objectStoreStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepObjectStore,
		Critical: true,
		Provides: []provisioning.Key{
			provisioning.KeyObjectStoreAccessKey,
			provisioning.KeyObjectStoreSecretKey,
			provisioning.KeyObjectStoreEndpoint,
		},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			presence, err := pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleaseMinIO)
			if err != nil || presence != provisioning.PresenceExists {
				return presence, err
			}
			// The release without its credential secret is half-deployed;
			// run the install again rather than skipping.
			return pctx.Cluster.SecretPresence(pctx.Context, pctx.Config.Namespace, ReleaseMinIO)
		},
		Run: func(pctx *provisioning.Context) error {
			spec := chartSpec(ReleaseMinIO, pctx.Config)
			values, err := releaseValues(pctx.Config, ReleaseMinIO, helm.Values{
				"mode":     "standalone",
				"replicas": 1,
				"persistence": helm.Values{
					"enabled": true,
					"size":    "20Gi",
				},
				"resources": helm.Values{
					"requests": helm.Values{"memory": "512Mi"},
				},
			})
			if err != nil {
				return err
			}

			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleaseMinIO,
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
				"object store",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					ready, err := pctx.Cluster.DeploymentReady(ctx, pctx.Config.Namespace, ReleaseMinIO)
					if err != nil || !ready {
						return false, err
					}
					presence, err := pctx.Cluster.SecretPresence(ctx, pctx.Config.Namespace, ReleaseMinIO)
					if err != nil {
						return false, err
					}
					return presence == provisioning.PresenceExists, nil
				},
			)
		},
		Discover: func(pctx *provisioning.Context) error {
			ns := pctx.Config.Namespace

			accessKey, err := pctx.Cluster.SecretValue(pctx.Context, ns, ReleaseMinIO, minioSecretAccessKey)
			if err != nil {
				return fmt.Errorf("failed to read object-store access key: %w", err)
			}
			secretKey, err := pctx.Cluster.SecretValue(pctx.Context, ns, ReleaseMinIO, minioSecretSecretKey)
			if err != nil {
				return fmt.Errorf("failed to read object-store secret key: %w", err)
			}
			addr, err := pctx.Cluster.ServiceAddress(pctx.Context, ns, ReleaseMinIO)
			if err != nil {
				return fmt.Errorf("failed to resolve object-store address: %w", err)
			}
			endpoint := fmt.Sprintf("%s:%d", addr.Host, addr.Port)

			pctx.Runtime.Publish(provisioning.KeyObjectStoreAccessKey, accessKey)
			pctx.Runtime.Publish(provisioning.KeyObjectStoreSecretKey, secretKey)
			pctx.Runtime.Publish(provisioning.KeyObjectStoreEndpoint, endpoint)
			provisioning.LogValuePublished(pctx.Observer, string(StepObjectStore), provisioning.KeyObjectStoreAccessKey)
			provisioning.LogValuePublished(pctx.Observer, string(StepObjectStore), provisioning.KeyObjectStoreSecretKey)
			provisioning.LogValuePublished(pctx.Observer, string(StepObjectStore), provisioning.KeyObjectStoreEndpoint)

			store, err := pctx.NewObjectStore(endpoint, accessKey, secretKey)
			if err != nil {
				return fmt.Errorf("failed to build object-store client: %w", err)
			}
			pctx.SetObjectStore(store)
			return nil
		},
	}
}
