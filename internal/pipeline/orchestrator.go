package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reelsmith/internal/logging"
	"reelsmith/internal/services"
)

// TextGenerator renders stage instructions plus input text into output text.
type TextGenerator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// VideoRenderer converts a text prompt into a video binary plus a
// retrievable source URL.
type VideoRenderer interface {
	Render(ctx context.Context, prompt string) (data []byte, sourceURL string, err error)
}

// VideoStore accepts a video binary and returns the stable filename it was
// persisted under.
type VideoStore interface {
	Save(topic string, now time.Time, data []byte) (string, error)
}

// Orchestrator runs the four stages in order and delivers results through a
// Sink. It holds no per-run state; concurrent runs are independent.
type Orchestrator struct {
	mode   Mode
	text   TextGenerator
	video  VideoRenderer
	store  VideoStore
	logger *slog.Logger
	now    func() time.Time
}

// Option configures optional Orchestrator behavior.
type Option func(*Orchestrator)

// WithClock overrides the time source used for stored filenames (tests).
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an orchestrator. Render mode requires both a renderer and a
// store; brief mode needs neither.
func New(mode Mode, text TextGenerator, video VideoRenderer, store VideoStore, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	if text == nil {
		return nil, errors.New("pipeline: text generator required")
	}
	if mode == ModeRender && (video == nil || store == nil) {
		return nil, errors.New("pipeline: render mode requires a video renderer and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		mode:   mode,
		text:   text,
		video:  video,
		store:  store,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Mode returns the instruction set the orchestrator runs with.
func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// RunResult aggregates everything a single run produced.
type RunResult struct {
	RunID    string
	Outputs  map[StageID]string
	Final    string
	Outcome  *MediaOutcome
	Filename string
}

// Run executes the pipeline for one topic. Stage events are emitted through
// the sink in strict A, B, C, D order followed by a terminal sentinel.
//
// A text-stage failure aborts the run: a single ERROR sentinel is emitted
// and the wrapped error returned. A render failure does not abort; it is
// folded into the finalizer event's MediaOutcome and the run ends DONE. The
// topic is not validated; an empty topic reaches the first stage unchanged
// and its behavior is up to the provider.
func (o *Orchestrator) Run(ctx context.Context, topic string, sink Sink) (*RunResult, error) {
	if sink == nil {
		sink = SinkFunc(func(context.Context, Event) error { return nil })
	}
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("mode", string(o.mode)),
	)

	result := &RunResult{
		RunID:   runID,
		Outputs: make(map[StageID]string, 4),
	}

	input := topic
	for _, stg := range Stages(o.mode) {
		stageCtx := services.WithStage(ctx, stg.Name)
		stageLogger := logging.WithContext(stageCtx, o.logger)
		stageStart := o.now()

		var event Event
		if stg.Kind == KindMedia {
			outcome, filename := o.renderStage(stageCtx, stageLogger, topic, input)
			result.Outcome = &outcome
			result.Filename = filename
			if outcome.Completed() {
				result.Final = outcome.Location
			} else {
				result.Final = outcome.ErrorDetail
			}
			event = Event{
				Agent:    Agent(stg.ID),
				Content:  result.Final,
				Media:    &outcome,
				Filename: filename,
			}
		} else {
			stageInput := input
			if stg.IncludeTopic {
				stageInput = "Topic: " + topic + "\n\n" + stageInput
			}
			output, err := o.text.Generate(stageCtx, stg.Instructions, stageInput)
			if err != nil {
				wrapped := services.Wrap(services.ErrProvider, stg.Name, "generate", "text generation failed", err)
				stageLogger.Error("run failed",
					logging.String(logging.FieldEventType, "run_failed"),
					logging.Error(wrapped),
				)
				runsTotal.WithLabelValues(string(o.mode), "failed").Inc()
				if emitErr := sink.Emit(ctx, Event{Agent: AgentError, Content: wrapped.Error()}); emitErr != nil {
					stageLogger.Debug("error sentinel not delivered", logging.Error(emitErr))
				}
				return nil, wrapped
			}
			result.Outputs[stg.ID] = output
			result.Final = output
			input = output
			event = Event{Agent: Agent(stg.ID), Content: output}
		}
		stageDuration.WithLabelValues(string(stg.ID)).Observe(o.now().Sub(stageStart).Seconds())
		stageLogger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Duration("stage_duration", o.now().Sub(stageStart)),
		)
		if err := sink.Emit(ctx, event); err != nil {
			runsTotal.WithLabelValues(string(o.mode), "abandoned").Inc()
			return result, fmt.Errorf("emit stage %s event: %w", stg.ID, err)
		}
	}

	runsTotal.WithLabelValues(string(o.mode), "done").Inc()
	logger.Info("run completed", logging.String(logging.FieldEventType, "run_complete"))
	if err := sink.Emit(ctx, Event{Agent: AgentDone}); err != nil {
		logger.Debug("done sentinel not delivered", logging.Error(err))
	}
	return result, nil
}

// renderStage invokes the video renderer and persists the result. Failures
// are swallowed into the returned MediaOutcome rather than raised: a render
// failure after three successful text stages should still let the caller see
// the upstream artifacts. The render runs detached from the caller's
// cancellation so a consumer disconnect mid-render never orphans a partial
// file write.
func (o *Orchestrator) renderStage(ctx context.Context, logger *slog.Logger, topic, prompt string) (MediaOutcome, string) {
	renderCtx := context.WithoutCancel(ctx)

	data, sourceURL, err := o.video.Render(renderCtx, prompt)
	if err != nil {
		rendersTotal.WithLabelValues(string(OutcomeError)).Inc()
		logger.Warn("video render failed", logging.Error(err))
		return ErrorOutcome(err.Error()), ""
	}

	filename, err := o.store.Save(topic, o.now(), data)
	if err != nil {
		// Indistinguishable from a provider failure for the caller.
		rendersTotal.WithLabelValues(string(OutcomeError)).Inc()
		logger.Warn("video store failed", logging.Error(err))
		outcome := ErrorOutcome(fmt.Sprintf("rendered but could not persist video: %v", err))
		outcome.SourceURL = sourceURL
		return outcome, ""
	}

	rendersTotal.WithLabelValues(string(OutcomeCompleted)).Inc()
	logger.Info("video stored", logging.String("filename", filename))
	return CompletedOutcome("/videos/"+filename, sourceURL), filename
}
