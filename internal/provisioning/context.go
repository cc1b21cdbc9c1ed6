package provisioning

import (
	"context"

	"github.com/lakeup/lakeup/internal/config"
)

// Context wraps everything a step needs: the cancellation context, the
// stack configuration, the runtime value store, the external
// collaborators and the observer.
type Context struct {
	context.Context
	Config   *config.Config
	Runtime  *RuntimeContext
	Cluster  ClusterRuntime
	Releases ReleaseInstaller
	Compute  ComputeRegistry
	Poller   Waiter
	Observer Observer
	Timeouts *config.Timeouts

	// NewObjectStore builds the object-store client once the endpoint
	// and credential pair have been discovered. Injected so tests can
	// substitute a fake store.
	NewObjectStore func(endpoint, accessKey, secretKey string) (ObjectStore, error)

	// objectStore is nil until the object-store step discovers the
	// service credentials and installs a client via SetObjectStore.
	objectStore ObjectStore
}

// NewContext creates a provisioning context with an empty runtime store.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	cluster ClusterRuntime,
	releases ReleaseInstaller,
	compute ComputeRegistry,
	poller Waiter,
	observer Observer,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Runtime:  NewRuntimeContext(),
		Cluster:  cluster,
		Releases: releases,
		Compute:  compute,
		Poller:   poller,
		Observer: observer,
		Timeouts: cfg.Timeouts,
	}
}

// SetObjectStore installs the object-store client once its endpoint and
// credentials are known. Called by the object-store provisioning step.
func (c *Context) SetObjectStore(store ObjectStore) {
	c.objectStore = store
}

// ObjectStore returns the object-store client. Requesting it before the
// object-store step has run is a dependency error, mirroring the
// runtime-key rules.
func (c *Context) ObjectStore() (ObjectStore, error) {
	if c.objectStore == nil {
		return nil, &DependencyMissingError{Key: KeyObjectStoreEndpoint}
	}
	return c.objectStore, nil
}
