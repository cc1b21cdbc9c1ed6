package provisioning

import "fmt"

// DependencyMissingError reports that a step read a runtime key that no
// completed step published. With construction-time ordering validation
// this only happens when the providing step failed in advisory mode.
type DependencyMissingError struct {
	Key Key
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("runtime value %q has not been published", e.Key)
}

// ResourceConflictError reports that a resource with a required name
// already exists but is not managed by us. Conflicting resources are
// never adopted or overwritten.
type ResourceConflictError struct {
	Resource string
	Name     string
	Reason   string
}

func (e *ResourceConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists and is not managed by lakeup (%s)", e.Resource, e.Name, e.Reason)
}

// ExternalCallError wraps a failed call to an external service with the
// operation that failed, so step errors name what was being attempted.
type ExternalCallError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Collaborator, e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}
