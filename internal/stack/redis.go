package stack

import (
	"context"
	"fmt"

	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

const redisService = "redis-master"

// cacheStep deploys the in-memory table-definition store. Advisory:
// the query engine works without it, so a cache failure is logged and
// the pipeline continues.
func cacheStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepCache,
		Critical: false,
		Provides: []provisioning.Key{provisioning.KeyCacheAddress},
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			return pctx.Releases.ReleasePresence(pctx.Context, pctx.Config.Namespace, ReleaseRedis)
		},
		Run: func(pctx *provisioning.Context) error {
			spec := chartSpec(ReleaseRedis, pctx.Config)
			values, err := releaseValues(pctx.Config, ReleaseRedis, helm.Values{
				"architecture": "standalone",
				"auth": helm.Values{
					"enabled": false,
				},
				"master": helm.Values{
					"persistence": helm.Values{"enabled": false},
				},
			})
			if err != nil {
				return err
			}

			err = pctx.Releases.InstallOrUpgrade(pctx.Context, provisioning.ReleaseSpec{
				Name:      ReleaseRedis,
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
				"table-definition cache",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ReadyMaxWait,
				func(ctx context.Context) (bool, error) {
					return pctx.Cluster.StatefulSetReady(ctx, pctx.Config.Namespace, redisService)
				},
			)
		},
		Discover: func(pctx *provisioning.Context) error {
			addr, err := pctx.Cluster.ServiceAddress(pctx.Context, pctx.Config.Namespace, redisService)
			if err != nil {
				return fmt.Errorf("failed to resolve cache address: %w", err)
			}
			pctx.Runtime.Publish(provisioning.KeyCacheAddress, fmt.Sprintf("%s:%d", addr.Host, addr.Port))
			provisioning.LogValuePublished(pctx.Observer, string(StepCache), provisioning.KeyCacheAddress)
			return nil
		},
	}
}
