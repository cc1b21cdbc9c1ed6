package stack

import (
	"context"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// clusterBootstrapStep waits for the orchestrated-runtime control plane
// to be usable: all nodes Ready and a default storage class present for
// the stateful releases. The step provisions nothing itself; it guards
// everything downstream against a cluster that is still coming up.
func clusterBootstrapStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepClusterBootstrap,
		Critical: true,
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			ready, err := clusterUsable(pctx)(pctx.Context)
			if err != nil {
				return provisioning.PresenceUnknown, err
			}
			if ready {
				return provisioning.PresenceExists, nil
			}
			return provisioning.PresenceAbsent, nil
		},
		Run: func(pctx *provisioning.Context) error {
			return pctx.Poller.Wait(
				pctx.Context,
				"cluster control plane",
				pctx.Timeouts.ReadyInterval,
				pctx.Timeouts.ClusterProbe,
				clusterUsable(pctx),
			)
		},
	}
}

func clusterUsable(pctx *provisioning.Context) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		ready, err := pctx.Cluster.NodesReady(ctx)
		if err != nil || !ready {
			return false, err
		}
		return pctx.Cluster.DefaultStorageClassPresent(ctx)
	}
}
