package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"reelsmith/internal/services"
)

type fakeTextGen struct {
	calls  []generateCall
	failAt int // 1-based call index that fails; 0 means never
}

type generateCall struct {
	instructions string
	input        string
}

func (f *fakeTextGen) Generate(_ context.Context, instructions, input string) (string, error) {
	f.calls = append(f.calls, generateCall{instructions: instructions, input: input})
	n := len(f.calls)
	if f.failAt != 0 && n == f.failAt {
		return "", errors.New("provider exploded")
	}
	return fmt.Sprintf("output-%d", n), nil
}

type fakeRenderer struct {
	data      []byte
	sourceURL string
	err       error
	prompt    string
}

func (f *fakeRenderer) Render(_ context.Context, prompt string) ([]byte, string, error) {
	f.prompt = prompt
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.sourceURL, nil
}

type fakeStore struct {
	err   error
	saved []byte
}

func (f *fakeStore) Save(topic string, now time.Time, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = data
	return fmt.Sprintf("%s_%d.mp4", strings.ReplaceAll(topic, " ", "_"), now.Unix()), nil
}

func agents(events []Event) []Agent {
	out := make([]Agent, 0, len(events))
	for _, event := range events {
		out = append(out, event.Agent)
	}
	return out
}

func assertAgents(t *testing.T, got, want []Agent) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event agents = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event agents = %v, want %v", got, want)
		}
	}
}

func TestRunBriefModeEmitsOrderedEvents(t *testing.T) {
	text := &fakeTextGen{}
	o, err := New(ModeBrief, text, nil, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var sink Collector
	result, err := o.Run(context.Background(), "Why the sky is blue", &sink)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	assertAgents(t, agents(sink.Events), []Agent{Agent(StageA), Agent(StageB), Agent(StageC), Agent(StageD), AgentDone})
	if result.Final != "output-4" {
		t.Fatalf("unexpected final output: %q", result.Final)
	}
	if result.Outcome != nil {
		t.Fatal("brief mode must not produce a media outcome")
	}

	// Each stage consumes exactly its predecessor's output.
	if text.calls[0].input != "Why the sky is blue" {
		t.Fatalf("stage A input = %q", text.calls[0].input)
	}
	for i := 1; i < 4; i++ {
		if want := fmt.Sprintf("output-%d", i); text.calls[i].input != want {
			t.Fatalf("stage %d input = %q, want %q", i+1, text.calls[i].input, want)
		}
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestRunPassesStageInstructions(t *testing.T) {
	text := &fakeTextGen{}
	o, err := New(ModeBrief, text, nil, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := o.Run(context.Background(), "topic", nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	stages := Stages(ModeBrief)
	for i, call := range text.calls {
		if call.instructions != stages[i].Instructions {
			t.Fatalf("stage %s instructions not bound", stages[i].ID)
		}
	}
}

func TestRunRenderModeSuccess(t *testing.T) {
	text := &fakeTextGen{}
	renderer := &fakeRenderer{data: []byte("mp4"), sourceURL: "https://cdn.example/v.mp4"}
	store := &fakeStore{}
	o, err := New(ModeRender, text, renderer, store, nil, WithClock(func() time.Time { return time.Unix(99, 0) }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var sink Collector
	result, err := o.Run(context.Background(), "otters", &sink)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	assertAgents(t, agents(sink.Events), []Agent{Agent(StageA), Agent(StageB), Agent(StageC), Agent(StageD), AgentDone})
	if len(text.calls) != 3 {
		t.Fatalf("expected 3 text calls, got %d", len(text.calls))
	}
	if renderer.prompt != "output-3" {
		t.Fatalf("renderer prompt = %q, want stage C output", renderer.prompt)
	}

	outcome := result.Outcome
	if outcome == nil || !outcome.Completed() {
		t.Fatalf("expected completed outcome, got %+v", outcome)
	}
	if outcome.Location != "/videos/otters_99.mp4" {
		t.Fatalf("unexpected location: %q", outcome.Location)
	}
	if outcome.SourceURL != "https://cdn.example/v.mp4" {
		t.Fatalf("unexpected source url: %q", outcome.SourceURL)
	}
	if result.Filename != "otters_99.mp4" {
		t.Fatalf("unexpected filename: %q", result.Filename)
	}

	event, ok := sink.StageEvent(StageD)
	if !ok || event.Media == nil {
		t.Fatal("finalizer event missing media outcome")
	}
	if event.Media.Status != OutcomeCompleted {
		t.Fatalf("unexpected event status: %q", event.Media.Status)
	}
}

func TestRunRenderPromptWriterReceivesTopic(t *testing.T) {
	text := &fakeTextGen{}
	renderer := &fakeRenderer{data: []byte("mp4")}
	o, err := New(ModeRender, text, renderer, &fakeStore{}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	topic := "glassblowing at midnight"
	if _, err := o.Run(context.Background(), topic, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// The prompt writer merges the scene plan with the original topic, so
	// its input must carry both; earlier stages still chain only their
	// predecessor's output.
	promptInput := text.calls[2].input
	if !strings.Contains(promptInput, topic) {
		t.Fatalf("prompt writer input missing topic: %q", promptInput)
	}
	if !strings.Contains(promptInput, "output-2") {
		t.Fatalf("prompt writer input missing scene plan: %q", promptInput)
	}
	if text.calls[1].input != "output-1" {
		t.Fatalf("scene planner input = %q, want stage A output only", text.calls[1].input)
	}
}

func TestRunRenderFailureStillEndsDone(t *testing.T) {
	text := &fakeTextGen{}
	renderer := &fakeRenderer{err: errors.New("render farm on fire")}
	o, err := New(ModeRender, text, renderer, &fakeStore{}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var sink Collector
	result, err := o.Run(context.Background(), "topic", &sink)
	if err != nil {
		t.Fatalf("render failure must not fail the run, got %v", err)
	}

	assertAgents(t, agents(sink.Events), []Agent{Agent(StageA), Agent(StageB), Agent(StageC), Agent(StageD), AgentDone})
	outcome := result.Outcome
	if outcome == nil || outcome.Completed() {
		t.Fatalf("expected error outcome, got %+v", outcome)
	}
	if outcome.Location != "" {
		t.Fatalf("error outcome must not carry a location, got %q", outcome.Location)
	}
	if !strings.Contains(outcome.ErrorDetail, "render farm on fire") {
		t.Fatalf("missing error detail: %q", outcome.ErrorDetail)
	}
}

func TestRunStoreFailureFoldsIntoOutcome(t *testing.T) {
	text := &fakeTextGen{}
	renderer := &fakeRenderer{data: []byte("mp4"), sourceURL: "https://cdn.example/v.mp4"}
	store := &fakeStore{err: errors.New("disk full")}
	o, err := New(ModeRender, text, renderer, store, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := o.Run(context.Background(), "topic", nil)
	if err != nil {
		t.Fatalf("store failure must not fail the run, got %v", err)
	}
	outcome := result.Outcome
	if outcome == nil || outcome.Completed() {
		t.Fatalf("expected error outcome, got %+v", outcome)
	}
	if !strings.Contains(outcome.ErrorDetail, "disk full") {
		t.Fatalf("missing error detail: %q", outcome.ErrorDetail)
	}
	if outcome.SourceURL == "" {
		t.Fatal("expected source url to survive store failure")
	}
}

func TestRunTextStageFailureAborts(t *testing.T) {
	text := &fakeTextGen{failAt: 2}
	o, err := New(ModeBrief, text, nil, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var sink Collector
	_, err = o.Run(context.Background(), "topic", &sink)
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider marker, got %v", err)
	}

	assertAgents(t, agents(sink.Events), []Agent{Agent(StageA), AgentError})
	if len(text.calls) != 2 {
		t.Fatalf("expected no calls past the failing stage, got %d", len(text.calls))
	}
	event := sink.Events[len(sink.Events)-1]
	if event.Content == "" {
		t.Fatal("error sentinel must carry a reason")
	}
}

func TestRunStopsWhenConsumerGone(t *testing.T) {
	text := &fakeTextGen{}
	o, err := New(ModeBrief, text, nil, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	gone := errors.New("consumer disconnected")
	sink := SinkFunc(func(context.Context, Event) error { return gone })
	if _, err := o.Run(context.Background(), "topic", sink); !errors.Is(err, gone) {
		t.Fatalf("expected consumer error, got %v", err)
	}
	if len(text.calls) != 1 {
		t.Fatalf("expected pipeline to stop after first undeliverable event, got %d calls", len(text.calls))
	}
}

func TestRunEmptyTopicPassesThrough(t *testing.T) {
	text := &fakeTextGen{}
	o, err := New(ModeBrief, text, nil, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := o.Run(context.Background(), "", nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if text.calls[0].input != "" {
		t.Fatalf("empty topic must reach the first stage unchanged, got %q", text.calls[0].input)
	}
}
