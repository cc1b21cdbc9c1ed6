// Package provisioning contains the pipeline engine that brings up the
// lakehouse stack: ordered idempotent steps, the runtime key/value store
// used to pass discovered credentials and addresses between steps, and
// the collaborator interfaces the steps call out to.
//
// The pipeline is strictly sequential. Each step declares the runtime
// keys it needs and the keys it provides; the ordering of declarations
// is validated when the pipeline is constructed, so a step can never run
// before its inputs have been published.
package provisioning
