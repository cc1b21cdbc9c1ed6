package provisioning

import "sort"

// Key identifies a value discovered at runtime and shared between steps.
// Keys are declared as constants so that the pipeline can validate
// publish-before-read ordering at construction time.
type Key string

// Runtime keys published and consumed by the stack steps.
const (
	// Object store credentials and address, read from the deployed
	// object-store release after it becomes ready.
	KeyObjectStoreAccessKey Key = "objectstore.access-key"
	KeyObjectStoreSecretKey Key = "objectstore.secret-key"
	KeyObjectStoreEndpoint  Key = "objectstore.endpoint"

	// Metastore backing-database password, read from the database
	// release's generated secret.
	KeyMetastoreDBPassword Key = "metastore.db-password"

	// Metastore thrift URI, derived from the metastore service address.
	KeyMetastoreURI Key = "metastore.uri"

	// Cache (table definition store) address.
	KeyCacheAddress Key = "cache.address"

	// Catalog engine endpoint.
	KeyCatalogEndpoint Key = "catalog.endpoint"
)

// RuntimeContext is the shared store of values discovered during a run:
// generated credentials, cluster-internal addresses, derived URIs.
// It is created empty at pipeline start and populated as steps complete.
// Execution is single-threaded, so no locking is needed.
type RuntimeContext struct {
	values map[Key]string
}

// NewRuntimeContext creates an empty runtime context.
func NewRuntimeContext() *RuntimeContext {
	return &RuntimeContext{values: make(map[Key]string)}
}

// Publish stores a discovered value under its key. Re-publishing a key
// overwrites the previous value; values such as access keys can change
// between environment bring-ups.
func (r *RuntimeContext) Publish(key Key, value string) {
	r.values[key] = value
}

// Lookup returns the value published under key. A missing key is a
// *DependencyMissingError, never an empty string.
func (r *RuntimeContext) Lookup(key Key) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", &DependencyMissingError{Key: key}
	}
	return v, nil
}

// Has reports whether a value has been published under key.
func (r *RuntimeContext) Has(key Key) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the published keys in sorted order, for diagnostics.
func (r *RuntimeContext) Keys() []Key {
	keys := make([]Key, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
