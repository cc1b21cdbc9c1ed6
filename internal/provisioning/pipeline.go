package provisioning

import (
	"fmt"
	"time"
)

// Pipeline is an ordered list of steps validated for publish-before-read
// ordering. The pipeline is linear by construction; there is no graph
// scheduler.
type Pipeline struct {
	steps []Step
}

// NewPipeline validates and builds a pipeline from the given steps.
// It fails fast if a step declares a need on a key that no earlier step
// provides, or if two steps share an ID.
func NewPipeline(steps ...Step) (*Pipeline, error) {
	seen := make(map[StepID]bool, len(steps))
	provided := make(map[Key]StepID)

	for i, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d has no id", i)
		}
		if s.Run == nil {
			return nil, fmt.Errorf("step %s has no action", s.ID)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate step id %s", s.ID)
		}
		seen[s.ID] = true

		for _, k := range s.Needs {
			if _, ok := provided[k]; !ok {
				return nil, fmt.Errorf("step %s needs key %q, which no earlier step provides", s.ID, k)
			}
		}
		for _, k := range s.Provides {
			provided[k] = s.ID
		}
	}

	return &Pipeline{steps: steps}, nil
}

// Steps returns the pipeline's steps in execution order.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Run executes the steps strictly in declaration order and returns one
// result per step. A critical failure aborts the remaining steps; an
// advisory failure is logged and execution continues. Already published
// runtime values stay available after an abort for diagnostics.
func (p *Pipeline) Run(pctx *Context) ([]StepResult, error) {
	start := time.Now()
	results := make([]StepResult, 0, len(p.steps))
	var fatal error

	pctx.Observer.Printf("starting pipeline with %d steps", len(p.steps))

	for i, step := range p.steps {
		if fatal != nil {
			results = append(results, StepResult{ID: step.ID, Status: StatusAborted})
			continue
		}

		label := fmt.Sprintf("%s (%d/%d)", step.ID, i+1, len(p.steps))
		stepStart := time.Now()
		LogStepStart(pctx.Observer, string(step.ID))

		if err := p.checkNeeds(pctx, step); err != nil {
			// A missing need here means the providing step failed in
			// advisory mode. Treat as this step's failure.
			results = append(results, p.finish(pctx, step, label, false, err, stepStart))
			if step.Critical {
				fatal = fmt.Errorf("step %s failed: %w", step.ID, err)
			}
			continue
		}

		skipped := false
		if step.Check != nil {
			presence, err := step.Check(pctx)
			if err == nil && presence == PresenceExists {
				skipped = true
			}
			// Unknown with an error is not a skip and not yet a
			// failure; the action re-checks per resource.
			if err != nil {
				pctx.Observer.Printf("[%s] state check inconclusive: %v", label, err)
			}
		}

		var err error
		if !skipped {
			err = step.Run(pctx)
		}
		if err == nil && step.Discover != nil {
			err = step.Discover(pctx)
		}
		if err == nil {
			err = p.checkProvides(pctx, step)
		}

		results = append(results, p.finish(pctx, step, label, skipped, err, stepStart))
		if err != nil && step.Critical {
			fatal = fmt.Errorf("step %s failed: %w", step.ID, err)
		}
	}

	if fatal != nil {
		pctx.Observer.Printf("pipeline aborted after %v", time.Since(start).Round(time.Millisecond))
		return results, fatal
	}

	pctx.Observer.Printf("pipeline completed in %v", time.Since(start).Round(time.Millisecond))
	return results, nil
}

// checkNeeds verifies every declared need has been published.
func (p *Pipeline) checkNeeds(pctx *Context, step Step) error {
	for _, k := range step.Needs {
		if !pctx.Runtime.Has(k) {
			return &DependencyMissingError{Key: k}
		}
	}
	return nil
}

// checkProvides verifies a completed step published everything it
// declared. A gap here is a step-implementation bug and fails the step
// rather than letting a later step observe a missing key.
func (p *Pipeline) checkProvides(pctx *Context, step Step) error {
	for _, k := range step.Provides {
		if !pctx.Runtime.Has(k) {
			return fmt.Errorf("step %s declared key %q but did not publish it", step.ID, k)
		}
	}
	return nil
}

func (p *Pipeline) finish(pctx *Context, step Step, label string, skipped bool, err error, stepStart time.Time) StepResult {
	if err != nil {
		LogStepFailed(pctx.Observer, string(step.ID), step.Critical, err)
		return StepResult{
			ID:       step.ID,
			Status:   StatusFailed,
			Err:      err,
			Duration: time.Since(stepStart),
		}
	}

	if skipped {
		LogStepSkipped(pctx.Observer, string(step.ID))
		return StepResult{
			ID:       step.ID,
			Status:   StatusSkipped,
			Duration: time.Since(stepStart),
		}
	}

	LogStepComplete(pctx.Observer, string(step.ID), time.Since(stepStart))
	return StepResult{
		ID:       step.ID,
		Status:   StatusDone,
		Duration: time.Since(stepStart),
	}
}
