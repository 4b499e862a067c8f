package pipeline

import "context"

// Agent identifies the sender of a delivery event: a stage, or one of the
// terminal sentinels.
type Agent string

const (
	AgentDone  Agent = "DONE"
	AgentError Agent = "ERROR"
)

// Event is the unit delivered to the caller as the pipeline progresses. One
// event is produced per completed stage, strictly in stage order, followed by
// exactly one terminal sentinel. The delivery channel owns the wire format;
// this type carries the stage result itself.
type Event struct {
	Agent   Agent
	Content string

	// Media and Filename are populated only for the finalizer event in
	// render mode.
	Media    *MediaOutcome
	Filename string
}

// Sink receives pipeline events as they are produced. Emit returning an
// error means the consumer is gone; the producer stops emitting further
// events but never unwinds an in-progress file write.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Emit(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Collector is a Sink that buffers every event, used by the batch delivery
// path and the CLI.
type Collector struct {
	Events []Event
}

func (c *Collector) Emit(_ context.Context, event Event) error {
	c.Events = append(c.Events, event)
	return nil
}

// StageEvent returns the buffered event for the given stage, if present.
func (c *Collector) StageEvent(id StageID) (Event, bool) {
	for _, event := range c.Events {
		if event.Agent == Agent(id) {
			return event, true
		}
	}
	return Event{}, false
}
