package api

import "reelsmith/internal/pipeline"

// WorkflowRequest is the body accepted by both workflow endpoints.
type WorkflowRequest struct {
	Prompt string `json:"prompt"`
}

// WorkflowResponse is the batch endpoint's aggregate result.
type WorkflowResponse struct {
	AgentOutputs map[string]string `json:"agent_outputs"`
	Final        string            `json:"final"`
	Video        *VideoResult      `json:"video,omitempty"`
}

// VideoResult reports the finalizer's media outcome in render mode.
// VideoURL is null exactly when VideoStatus is "error".
type VideoResult struct {
	VideoURL    *string `json:"video_url"`
	VideoStatus string  `json:"video_status"`
	Filename    string  `json:"filename"`
	SourceURL   string  `json:"source_url,omitempty"`
	ErrorDetail string  `json:"error_detail,omitempty"`
}

// StreamEvent is the wire form of a text-stage or sentinel event.
type StreamEvent struct {
	Agent   string `json:"agent"`
	Content string `json:"content"`
}

// StreamVideoEvent is the wire form of the finalizer event in render mode.
type StreamVideoEvent struct {
	Agent       string  `json:"agent"`
	Content     string  `json:"content"`
	VideoURL    *string `json:"video_url"`
	VideoStatus string  `json:"video_status"`
	Filename    string  `json:"filename"`
}

// ComponentHealth summarizes the readiness of one external dependency.
type ComponentHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	OK         bool              `json:"ok"`
	Mode       string            `json:"mode"`
	Components []ComponentHealth `json:"components"`
}

// videoResult converts a pipeline outcome into its wire form.
func videoResult(outcome *pipeline.MediaOutcome, filename string) *VideoResult {
	if outcome == nil {
		return nil
	}
	result := &VideoResult{
		VideoStatus: string(outcome.Status),
		Filename:    filename,
		SourceURL:   outcome.SourceURL,
		ErrorDetail: outcome.ErrorDetail,
	}
	if outcome.Completed() {
		location := outcome.Location
		result.VideoURL = &location
	}
	return result
}

// eventPayload converts a pipeline event into the JSON-marshalable form
// pushed over the stream.
func eventPayload(event pipeline.Event) any {
	if event.Media == nil {
		return StreamEvent{Agent: string(event.Agent), Content: event.Content}
	}
	payload := StreamVideoEvent{
		Agent:       string(event.Agent),
		Content:     event.Content,
		VideoStatus: string(event.Media.Status),
		Filename:    event.Filename,
	}
	if event.Media.Completed() {
		location := event.Media.Location
		payload.VideoURL = &location
	}
	return payload
}
