package provisioning

import (
	"fmt"
	"log/slog"
	"time"
)

// Observer receives structured events as the pipeline executes.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns an Observer that attaches the given fields to
	// every event it emits.
	WithFields(fields map[string]string) Observer
}

// Event is one structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Resource  string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType classifies provisioning events.
type EventType string

const (
	// EventStepStarted indicates a step has started.
	EventStepStarted EventType = "step.started"
	// EventStepSkipped indicates a step found its work already done.
	EventStepSkipped EventType = "step.skipped"
	// EventStepCompleted indicates a step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a step failed.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreated indicates a resource was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already existed.
	EventResourceExists EventType = "resource.exists"

	// EventValuePublished indicates a runtime value was published.
	EventValuePublished EventType = "value.published"
)

// SlogObserver implements Observer on top of log/slog.
type SlogObserver struct {
	logger *slog.Logger
	fields map[string]string
}

// NewSlogObserver creates an observer writing to the given logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger, fields: make(map[string]string)}
}

// Printf implements Observer.
func (o *SlogObserver) Printf(format string, v ...any) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *SlogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	attrs := []any{slog.String("event", string(event.Type))}
	if event.Step != "" {
		attrs = append(attrs, slog.String("step", event.Step))
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}
	for k, v := range o.fields {
		if _, shadowed := event.Fields[k]; !shadowed {
			attrs = append(attrs, slog.String(k, v))
		}
	}
	for k, v := range event.Fields {
		attrs = append(attrs, slog.String(k, v))
	}

	switch event.Type {
	case EventStepFailed:
		o.logger.Error(event.Message, attrs...)
	default:
		o.logger.Info(event.Message, attrs...)
	}
}

// WithFields implements Observer.
func (o *SlogObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &SlogObserver{logger: o.logger, fields: merged}
}

// Helper functions for common events.

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, step string) {
	observer.Event(Event{Type: EventStepStarted, Step: step, Message: "starting"})
}

// LogStepSkipped logs that a step's work was already done.
func LogStepSkipped(observer Observer, step string) {
	observer.Event(Event{Type: EventStepSkipped, Step: step, Message: "already provisioned, skipping"})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, step string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure, noting whether it aborts the run.
func LogStepFailed(observer Observer, step string, critical bool, err error) {
	severity := "advisory"
	if critical {
		severity = "critical"
	}
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Message: fmt.Sprintf("failed: %v", err),
		Fields:  map[string]string{"severity": severity},
	})
}

// LogResourceCreated logs a resource creation.
func LogResourceCreated(observer Observer, step, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceExists logs that a resource already existed.
func LogResourceExists(observer Observer, step, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Step:     step,
		Resource: name,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogValuePublished logs that a runtime value was published. Values are
// never logged, only their keys.
func LogValuePublished(observer Observer, step string, key Key) {
	observer.Event(Event{
		Type:    EventValuePublished,
		Step:    step,
		Message: fmt.Sprintf("published %s", key),
		Fields:  map[string]string{"key": string(key)},
	})
}
