package stack

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/platform/spark"
	"github.com/lakeup/lakeup/internal/provisioning"
	"github.com/lakeup/lakeup/internal/readiness"
)

// fakeCluster is an in-memory ClusterRuntime.
type fakeCluster struct {
	namespaces      map[string]string // name -> managed-by label
	secrets         map[string]map[string]string
	services        map[string]int32
	deployments     map[string]bool
	statefulsets    map[string]bool
	serviceAccounts map[string]bool
	configMaps      map[string]map[string]string
	nodesReady      bool
	storageClass    bool
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		namespaces:      make(map[string]string),
		secrets:         make(map[string]map[string]string),
		services:        make(map[string]int32),
		deployments:     make(map[string]bool),
		statefulsets:    make(map[string]bool),
		serviceAccounts: make(map[string]bool),
		configMaps:      make(map[string]map[string]string),
		nodesReady:      true,
		storageClass:    true,
	}
}

func key(namespace, name string) string { return namespace + "/" + name }

func (f *fakeCluster) EnsureNamespace(_ context.Context, name string) (provisioning.Presence, error) {
	if _, ok := f.namespaces[name]; ok {
		return provisioning.PresenceExists, nil
	}
	f.namespaces[name] = "lakeup"
	return provisioning.PresenceAbsent, nil
}

func (f *fakeCluster) NamespacePresence(_ context.Context, name string) (provisioning.Presence, error) {
	owner, ok := f.namespaces[name]
	if !ok {
		return provisioning.PresenceAbsent, nil
	}
	if owner != "lakeup" {
		return provisioning.PresenceUnknown, &provisioning.ResourceConflictError{
			Resource: "namespace", Name: name, Reason: fmt.Sprintf("managed by %q", owner),
		}
	}
	return provisioning.PresenceExists, nil
}

func (f *fakeCluster) ServiceAddress(_ context.Context, namespace, name string) (provisioning.ServiceAddress, error) {
	port, ok := f.services[key(namespace, name)]
	if !ok {
		return provisioning.ServiceAddress{}, fmt.Errorf("service %s/%s not found", namespace, name)
	}
	return provisioning.ServiceAddress{
		Host: fmt.Sprintf("%s.%s.svc.cluster.local", name, namespace),
		Port: port,
	}, nil
}

func (f *fakeCluster) SecretValue(_ context.Context, namespace, name, k string) (string, error) {
	secret, ok := f.secrets[key(namespace, name)]
	if !ok {
		return "", fmt.Errorf("secret %s/%s not found", namespace, name)
	}
	v, ok := secret[k]
	if !ok {
		return "", fmt.Errorf("key %s not found in secret %s/%s", k, namespace, name)
	}
	return v, nil
}

func (f *fakeCluster) SecretPresence(_ context.Context, namespace, name string) (provisioning.Presence, error) {
	if _, ok := f.secrets[key(namespace, name)]; ok {
		return provisioning.PresenceExists, nil
	}
	return provisioning.PresenceAbsent, nil
}

func (f *fakeCluster) DeploymentReady(_ context.Context, namespace, name string) (bool, error) {
	ready, ok := f.deployments[key(namespace, name)]
	if !ok {
		return false, fmt.Errorf("deployment %s/%s not found", namespace, name)
	}
	return ready, nil
}

func (f *fakeCluster) StatefulSetReady(_ context.Context, namespace, name string) (bool, error) {
	ready, ok := f.statefulsets[key(namespace, name)]
	if !ok {
		return false, fmt.Errorf("statefulset %s/%s not found", namespace, name)
	}
	return ready, nil
}

func (f *fakeCluster) NodesReady(context.Context) (bool, error) { return f.nodesReady, nil }

func (f *fakeCluster) DefaultStorageClassPresent(context.Context) (bool, error) {
	return f.storageClass, nil
}

func (f *fakeCluster) EnsureServiceAccount(_ context.Context, namespace, name string) (provisioning.Presence, error) {
	if f.serviceAccounts[key(namespace, name)] {
		return provisioning.PresenceExists, nil
	}
	f.serviceAccounts[key(namespace, name)] = true
	return provisioning.PresenceAbsent, nil
}

func (f *fakeCluster) ServiceAccountPresence(_ context.Context, namespace, name string) (provisioning.Presence, error) {
	if f.serviceAccounts[key(namespace, name)] {
		return provisioning.PresenceExists, nil
	}
	return provisioning.PresenceAbsent, nil
}

func (f *fakeCluster) EnsureConfigMap(_ context.Context, namespace, name string, data map[string]string) error {
	f.configMaps[key(namespace, name)] = data
	return nil
}

func (f *fakeCluster) ConfigMapData(_ context.Context, namespace, name string) (map[string]string, error) {
	return f.configMaps[key(namespace, name)], nil
}

// fakeInstaller is an in-memory ReleaseInstaller whose onInstall hook
// lets tests simulate what a chart install leaves behind in the cluster.
type fakeInstaller struct {
	releases  map[string]bool
	installed []string
	repos     map[string]string
	failOn    map[string]error
	onInstall func(spec provisioning.ReleaseSpec)
	specs     map[string]provisioning.ReleaseSpec
}

func newFakeInstaller() *fakeInstaller {
	return &fakeInstaller{
		releases: make(map[string]bool),
		repos:    make(map[string]string),
		failOn:   make(map[string]error),
		specs:    make(map[string]provisioning.ReleaseSpec),
	}
}

func (f *fakeInstaller) InstallOrUpgrade(_ context.Context, spec provisioning.ReleaseSpec) error {
	if err := f.failOn[spec.Name]; err != nil {
		return err
	}
	f.installed = append(f.installed, spec.Name)
	f.releases[key(spec.Namespace, spec.Name)] = true
	f.specs[spec.Name] = spec
	if f.onInstall != nil {
		f.onInstall(spec)
	}
	return nil
}

func (f *fakeInstaller) ReleasePresence(_ context.Context, namespace, name string) (provisioning.Presence, error) {
	if f.releases[key(namespace, name)] {
		return provisioning.PresenceExists, nil
	}
	return provisioning.PresenceAbsent, nil
}

func (f *fakeInstaller) AddRepo(name, url string) error {
	f.repos[name] = url
	return nil
}

// fakeStore is an in-memory ObjectStore.
type fakeStore struct {
	buckets map[string]map[string][]byte
	created []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: make(map[string]map[string][]byte)}
}

func (f *fakeStore) BucketPresence(_ context.Context, name string) (provisioning.Presence, error) {
	if _, ok := f.buckets[name]; ok {
		return provisioning.PresenceExists, nil
	}
	return provisioning.PresenceAbsent, nil
}

func (f *fakeStore) CreateBucket(_ context.Context, name string) error {
	f.buckets[name] = make(map[string][]byte)
	f.created = append(f.created, name)
	return nil
}

func (f *fakeStore) PutObject(_ context.Context, bucket, k string, body []byte) error {
	objects, ok := f.buckets[bucket]
	if !ok {
		return fmt.Errorf("bucket %s not found", bucket)
	}
	objects[k] = body
	return nil
}

func (f *fakeStore) ListObjects(_ context.Context, bucket, prefix string) ([]string, error) {
	objects, ok := f.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("bucket %s not found", bucket)
	}
	var keys []string
	for k := range objects {
		if prefix == "" || len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// harness bundles the fakes behind one provisioning context.
type harness struct {
	cfg       *config.Config
	cluster   *fakeCluster
	installer *fakeInstaller
	store     *fakeStore
}

func newHarness(t *testing.T, variant config.Variant) *harness {
	t.Helper()

	cfg := config.Default()
	cfg.Variant = variant
	cfg.ProfileOutput = filepath.Join(t.TempDir(), "profile.conf")
	cfg.Timeouts = &config.Timeouts{
		ReadyInterval:  time.Second,
		ReadyMaxWait:   time.Minute,
		ReleaseInstall: time.Minute,
		ClusterProbe:   time.Minute,
	}

	h := &harness{
		cfg:       cfg,
		cluster:   newFakeCluster(),
		installer: newFakeInstaller(),
		store:     newFakeStore(),
	}

	// Simulate the cluster-side effects of each chart install.
	ns := cfg.Namespace
	h.installer.onInstall = func(spec provisioning.ReleaseSpec) {
		switch spec.Name {
		case ReleaseMinIO:
			h.cluster.secrets[key(ns, ReleaseMinIO)] = map[string]string{
				"rootUser":     "generated-access",
				"rootPassword": "generated-secret",
			}
			h.cluster.services[key(ns, ReleaseMinIO)] = 9000
			h.cluster.deployments[key(ns, ReleaseMinIO)] = true
		case ReleasePostgres:
			h.cluster.secrets[key(ns, "metastore-db-postgresql")] = map[string]string{
				"password": "generated-db-password",
			}
			h.cluster.statefulsets[key(ns, "metastore-db-postgresql")] = true
		case ReleaseMetastore:
			h.cluster.deployments[key(ns, ReleaseMetastore)] = true
			h.cluster.services[key(ns, ReleaseMetastore)] = 9083
		case ReleaseRedis:
			h.cluster.statefulsets[key(ns, "redis-master")] = true
			h.cluster.services[key(ns, "redis-master")] = 6379
		case ReleaseTrino:
			h.cluster.deployments[key(ns, "trino-coordinator")] = true
		case ReleaseDremio:
			h.cluster.statefulsets[key(ns, "dremio-master")] = true
			h.cluster.services[key(ns, "dremio-client")] = 31010
		}
	}

	return h
}

func (h *harness) newContext(t *testing.T) *provisioning.Context {
	t.Helper()

	observer := provisioning.NewSlogObserver(slog.New(slog.DiscardHandler))
	poller := readiness.NewPollerWithClock(readiness.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	pctx := provisioning.NewContext(
		context.Background(),
		h.cfg,
		h.cluster,
		h.installer,
		spark.NewRegistry(h.cluster),
		poller,
		observer,
	)
	pctx.NewObjectStore = func(endpoint, accessKey, secretKey string) (provisioning.ObjectStore, error) {
		return h.store, nil
	}
	return pctx
}

func (h *harness) run(t *testing.T) ([]provisioning.StepResult, error) {
	t.Helper()

	pipeline, err := provisioning.NewPipeline(BuildSteps(h.cfg)...)
	require.NoError(t, err)
	return pipeline.Run(h.newContext(t))
}

func stepStatuses(results []provisioning.StepResult) map[provisioning.StepID]provisioning.StepStatus {
	statuses := make(map[provisioning.StepID]provisioning.StepStatus, len(results))
	for _, r := range results {
		statuses[r.ID] = r.Status
	}
	return statuses
}
