// Package spark implements the compute-engine client registry: the
// cluster service account the compute engine submits jobs as, and its
// configuration profile stored as a config map in the stack namespace.
package spark

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// Registry manages compute-cluster service accounts and their
// configuration profiles.
type Registry struct {
	cluster provisioning.ClusterRuntime
}

// NewRegistry creates a registry backed by the cluster runtime.
func NewRegistry(cluster provisioning.ClusterRuntime) *Registry {
	return &Registry{cluster: cluster}
}

// EnsureServiceAccount registers the compute service account. Creating
// an existing account is a no-op.
func (r *Registry) EnsureServiceAccount(ctx context.Context, username, namespace string) (provisioning.Presence, error) {
	return r.cluster.EnsureServiceAccount(ctx, namespace, username)
}

// ServiceAccountPresence reports whether the compute service account
// exists, without creating it.
func (r *Registry) ServiceAccountPresence(ctx context.Context, username, namespace string) (provisioning.Presence, error) {
	return r.cluster.ServiceAccountPresence(ctx, namespace, username)
}

// SetConfig writes the configuration profile for a user. The profile is
// regenerated on every run, so a plain replace is correct here.
func (r *Registry) SetConfig(ctx context.Context, username, namespace string, values map[string]string) error {
	return r.cluster.EnsureConfigMap(ctx, namespace, profileName(username), values)
}

// GetConfig reads back the configuration profile for a user.
func (r *Registry) GetConfig(ctx context.Context, username, namespace string) (map[string]string, error) {
	return r.cluster.ConfigMapData(ctx, namespace, profileName(username))
}

// RenderProfile formats a configuration profile as the properties file
// the compute engine reads, one "key value" pair per line, sorted for
// stable output.
func RenderProfile(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", k, values[k])
	}
	return b.String()
}

func profileName(username string) string {
	return username + "-profile"
}
