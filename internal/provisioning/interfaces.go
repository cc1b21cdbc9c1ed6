package provisioning

import (
	"context"
	"time"
)

// ServiceAddress is a cluster-internal host:port for a deployed service.
type ServiceAddress struct {
	Host string
	Port int32
}

// ClusterRuntime is the narrow interface over the orchestrated cluster:
// namespaces, services, secrets and readiness predicates. Implemented by
// internal/platform/k8s.Client.
type ClusterRuntime interface {
	// EnsureNamespace creates the namespace if absent. Creating an
	// existing namespace we own is a no-op; one owned by something else
	// is a *ResourceConflictError.
	EnsureNamespace(ctx context.Context, name string) (Presence, error)

	// NamespacePresence reports whether the namespace exists under our
	// management, without creating it.
	NamespacePresence(ctx context.Context, name string) (Presence, error)

	// ServiceAddress resolves the cluster-internal address of a service.
	ServiceAddress(ctx context.Context, namespace, name string) (ServiceAddress, error)

	// SecretValue reads one key out of a secret.
	SecretValue(ctx context.Context, namespace, name, key string) (string, error)

	// SecretPresence reports whether a secret exists.
	SecretPresence(ctx context.Context, namespace, name string) (Presence, error)

	// DeploymentReady reports whether a deployment has all replicas available.
	DeploymentReady(ctx context.Context, namespace, name string) (bool, error)

	// StatefulSetReady reports whether a statefulset has all replicas ready.
	StatefulSetReady(ctx context.Context, namespace, name string) (bool, error)

	// NodesReady reports whether every node in the cluster is Ready.
	NodesReady(ctx context.Context) (bool, error)

	// DefaultStorageClassPresent reports whether a default storage class exists.
	DefaultStorageClassPresent(ctx context.Context) (bool, error)

	// EnsureServiceAccount creates a service account if absent.
	EnsureServiceAccount(ctx context.Context, namespace, name string) (Presence, error)

	// ServiceAccountPresence reports whether a service account exists,
	// without creating it.
	ServiceAccountPresence(ctx context.Context, namespace, name string) (Presence, error)

	// EnsureConfigMap creates or replaces a config map we own. A config
	// map owned by something else is a *ResourceConflictError.
	EnsureConfigMap(ctx context.Context, namespace, name string, data map[string]string) error

	// ConfigMapData reads the data of a config map. A missing config map
	// yields a nil map, not an error.
	ConfigMapData(ctx context.Context, namespace, name string) (map[string]string, error)
}

// ReleaseSpec describes one chart release to install or upgrade.
type ReleaseSpec struct {
	Name      string
	Namespace string
	RepoURL   string
	Chart     string
	Version   string
	Values    map[string]any
	Timeout   time.Duration
}

// ReleaseInstaller is the narrow interface over the chart installer.
// InstallOrUpgrade has upsert semantics and never errors on "already
// installed". Implemented by internal/platform/helm.Client.
type ReleaseInstaller interface {
	InstallOrUpgrade(ctx context.Context, spec ReleaseSpec) error
	ReleasePresence(ctx context.Context, namespace, name string) (Presence, error)
	AddRepo(name, url string) error
}

// ObjectStore is the narrow interface over the object-store service.
// Implemented by internal/platform/s3.Client, constructed lazily once
// the object store's credentials have been discovered.
type ObjectStore interface {
	BucketPresence(ctx context.Context, name string) (Presence, error)
	CreateBucket(ctx context.Context, name string) error
	PutObject(ctx context.Context, bucket, key string, body []byte) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
}

// ComputeRegistry manages the compute engine's cluster identity and
// configuration profile. Implemented by internal/platform/spark.Registry.
type ComputeRegistry interface {
	EnsureServiceAccount(ctx context.Context, username, namespace string) (Presence, error)
	ServiceAccountPresence(ctx context.Context, username, namespace string) (Presence, error)
	SetConfig(ctx context.Context, username, namespace string, values map[string]string) error
	GetConfig(ctx context.Context, username, namespace string) (map[string]string, error)
}

// Waiter blocks until a readiness probe succeeds or the budget expires.
// Implemented by internal/readiness.Poller.
type Waiter interface {
	Wait(ctx context.Context, description string, interval, maxWait time.Duration, probe func(context.Context) (bool, error)) error
}
