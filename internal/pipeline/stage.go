package pipeline

import "fmt"

// StageID identifies one step of the linear pipeline.
type StageID string

const (
	StageA StageID = "A"
	StageB StageID = "B"
	StageC StageID = "C"
	StageD StageID = "D"
)

// Kind is the capability a stage exercises.
type Kind string

const (
	// KindText stages call the text generation provider.
	KindText Kind = "text"
	// KindMedia stages call the video rendering provider.
	KindMedia Kind = "media"
)

// Mode selects which instruction set the pipeline runs with.
type Mode string

const (
	// ModeBrief ends with a text production brief.
	ModeBrief Mode = "brief"
	// ModeRender ends with an actual rendered video.
	ModeRender Mode = "render"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeBrief:
		return ModeBrief, nil
	case ModeRender:
		return ModeRender, nil
	default:
		return "", fmt.Errorf("unknown pipeline mode %q", value)
	}
}

// Stage is an immutable instruction value bound to a stage slot. The
// instructions are pipeline configuration fixed at definition time, not user
// data.
type Stage struct {
	ID           StageID
	Name         string
	Kind         Kind
	Instructions string

	// IncludeTopic prepends the original topic to the stage input. The
	// unified prompt writer merges the scene plan with the topic, so the
	// chained upstream output alone is not enough for it.
	IncludeTopic bool
}

// Stages returns the four stage definitions for the given mode, in execution
// order.
func Stages(mode Mode) [4]Stage {
	if mode == ModeRender {
		return [4]Stage{
			{ID: StageA, Name: "planner", Kind: KindText, Instructions: renderPlannerInstructions},
			{ID: StageB, Name: "scene_planner", Kind: KindText, Instructions: renderScenePlannerInstructions},
			{ID: StageC, Name: "prompt_writer", Kind: KindText, Instructions: renderPromptWriterInstructions, IncludeTopic: true},
			{ID: StageD, Name: "renderer", Kind: KindMedia},
		}
	}
	return [4]Stage{
		{ID: StageA, Name: "planner", Kind: KindText, Instructions: briefPlannerInstructions},
		{ID: StageB, Name: "scene_planner", Kind: KindText, Instructions: briefScenePlannerInstructions},
		{ID: StageC, Name: "script_writer", Kind: KindText, Instructions: briefScriptWriterInstructions},
		{ID: StageD, Name: "brief_editor", Kind: KindText, Instructions: briefEditorInstructions},
	}
}
