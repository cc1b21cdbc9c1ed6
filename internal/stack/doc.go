// Package stack defines the provisioning steps for the lakehouse
// components: object store, metastore, cache, query engine, catalog
// engine and the compute-cluster configuration. Each step is
// check-then-act against a stable resource name; re-running the full
// pipeline against an unchanged cluster provisions nothing.
package stack
