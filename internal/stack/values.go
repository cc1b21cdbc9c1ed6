package stack

import (
	"fmt"
	"os"

	"github.com/lakeup/lakeup/internal/config"
	"github.com/lakeup/lakeup/internal/platform/helm"
	"github.com/lakeup/lakeup/internal/provisioning"
)

// objectStoreInfo bundles the three runtime values every object-store
// consumer needs.
type objectStoreInfo struct {
	AccessKey string
	SecretKey string
	Endpoint  string
}

// objectStoreKeys is the Needs declaration matching objectStoreInfoFrom.
var objectStoreKeys = []provisioning.Key{
	provisioning.KeyObjectStoreAccessKey,
	provisioning.KeyObjectStoreSecretKey,
	provisioning.KeyObjectStoreEndpoint,
}

// objectStoreInfoFrom reads the object-store values out of the runtime
// context. A missing key surfaces as a DependencyMissingError rather
// than an empty substitution.
func objectStoreInfoFrom(rt *provisioning.RuntimeContext) (objectStoreInfo, error) {
	accessKey, err := rt.Lookup(provisioning.KeyObjectStoreAccessKey)
	if err != nil {
		return objectStoreInfo{}, err
	}
	secretKey, err := rt.Lookup(provisioning.KeyObjectStoreSecretKey)
	if err != nil {
		return objectStoreInfo{}, err
	}
	endpoint, err := rt.Lookup(provisioning.KeyObjectStoreEndpoint)
	if err != nil {
		return objectStoreInfo{}, err
	}
	return objectStoreInfo{AccessKey: accessKey, SecretKey: secretKey, Endpoint: endpoint}, nil
}

// releaseValues layers the user's value files for a release over its
// built-in values, later files winning.
func releaseValues(cfg *config.Config, name string, defaults helm.Values) (helm.Values, error) {
	merged := helm.Merge(defaults)

	override, ok := cfg.Charts[name]
	if !ok {
		return merged, nil
	}
	for _, path := range override.ValuesFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file for release %s: %w", name, err)
		}
		fileValues, err := helm.FromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("invalid values file %s for release %s: %w", path, name, err)
		}
		merged = helm.Merge(merged, fileValues)
	}
	return merged, nil
}
