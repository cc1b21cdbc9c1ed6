package stack

import "github.com/lakeup/lakeup/internal/provisioning"

// namespaceStep creates the stack namespace. A namespace managed by
// something else is a conflict the operator has to resolve; the
// pipeline never adopts foreign namespaces.
func namespaceStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepNamespace,
		Critical: true,
		Check: func(pctx *provisioning.Context) (provisioning.Presence, error) {
			return pctx.Cluster.NamespacePresence(pctx.Context, pctx.Config.Namespace)
		},
		Run: func(pctx *provisioning.Context) error {
			presence, err := pctx.Cluster.EnsureNamespace(pctx.Context, pctx.Config.Namespace)
			if err != nil {
				return err
			}
			if presence == provisioning.PresenceExists {
				provisioning.LogResourceExists(pctx.Observer, string(StepNamespace), "namespace", pctx.Config.Namespace)
			} else {
				provisioning.LogResourceCreated(pctx.Observer, string(StepNamespace), "namespace", pctx.Config.Namespace)
			}
			return nil
		},
	}
}
