package provisioning

import "time"

// StepID identifies a single provisioning step.
type StepID string

// Presence is the tri-state result of an idempotency check. A check that
// cannot reach the target reports Unknown together with the underlying
// error; Unknown is never treated as Exists.
type Presence int

const (
	// PresenceUnknown means the check could not determine the state.
	PresenceUnknown Presence = iota
	// PresenceAbsent means the resource does not exist yet.
	PresenceAbsent
	// PresenceExists means the resource exists under our ownership.
	PresenceExists
)

func (p Presence) String() string {
	switch p {
	case PresenceAbsent:
		return "absent"
	case PresenceExists:
		return "exists"
	default:
		return "unknown"
	}
}

// Step is one named unit of provisioning work. Steps are defined
// statically when the pipeline is built and never mutated afterwards.
type Step struct {
	// ID is the stable identifier of the step.
	ID StepID

	// Needs lists the runtime keys this step reads. Every key must be
	// provided by an earlier step; this is validated at construction.
	Needs []Key

	// Provides lists the runtime keys this step publishes on success.
	Provides []Key

	// Critical marks whether a failure aborts the remaining pipeline.
	// Advisory steps log their failure and let the pipeline continue.
	Critical bool

	// Check is the idempotency predicate: it reports whether the step's
	// work is already done. A step whose work is present is skipped.
	Check func(pctx *Context) (Presence, error)

	// Run performs the provisioning action. Run is not called when
	// Check reports PresenceExists.
	Run func(pctx *Context) error

	// Discover reads runtime values off the provisioned resource
	// (generated credentials, service addresses) and publishes the
	// step's Provides keys. It runs after a successful Run and also
	// after a Check-driven skip, so downstream steps see their inputs
	// on re-runs where nothing needed provisioning.
	Discover func(pctx *Context) error
}

// StepStatus is the outcome of one executed step.
type StepStatus int

const (
	// StatusDone means the step performed its action successfully.
	StatusDone StepStatus = iota
	// StatusSkipped means the idempotency check found the work already done.
	StatusSkipped
	// StatusFailed means the step's action returned an error.
	StatusFailed
	// StatusAborted means the step never ran because an earlier critical
	// step failed.
	StatusAborted
)

func (s StepStatus) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// StepResult records the outcome of one step in a pipeline run.
type StepResult struct {
	ID       StepID
	Status   StepStatus
	Err      error
	Duration time.Duration
}
