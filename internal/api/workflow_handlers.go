package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"reelsmith/internal/logging"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/services"
)

const maxRequestBytes = 64 << 10

// handleRunWorkflow runs the full pipeline and responds once with every stage
// output aggregated.
func (s *Server) handleRunWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	req, ok := s.decodeWorkflowRequest(w, r)
	if !ok {
		return
	}

	collector := &pipeline.Collector{}
	result, err := s.orch.Run(r.Context(), req.Prompt, collector)
	s.notifyRun(r, req.Prompt, result, err)
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}

	resp := WorkflowResponse{
		AgentOutputs: make(map[string]string, len(result.Outputs)),
		Final:        result.Final,
	}
	for id, output := range result.Outputs {
		resp.AgentOutputs[string(id)] = output
	}
	if result.Outcome != nil {
		resp.AgentOutputs[string(pipeline.StageD)] = result.Final
		resp.Video = videoResult(result.Outcome, result.Filename)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRunWorkflowStream runs the pipeline and pushes one server-sent event
// per completed stage, ending with a DONE or ERROR sentinel.
func (s *Server) handleRunWorkflowStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	req, ok := s.decodeWorkflowRequest(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := pipeline.SinkFunc(func(_ context.Context, event pipeline.Event) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("consumer gone: %w", err)
		}
		data, err := json.Marshal(eventPayload(event))
		if err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		flusher.Flush()
		return nil
	})

	result, err := s.orch.Run(r.Context(), req.Prompt, sink)
	s.notifyRun(r, req.Prompt, result, err)
	if err != nil {
		s.logger.Warn("streamed run ended with error", logging.Error(err))
	}
}

func (s *Server) decodeWorkflowRequest(w http.ResponseWriter, r *http.Request) (WorkflowRequest, bool) {
	var req WorkflowRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	return req, true
}

// notifyRun pushes a completion or failure notification. Notification failures
// are logged, never surfaced to the caller. Delivery runs detached from the
// request's cancellation so a consumer that disconnected mid-stream does not
// also kill the notification send; an abandoned run (the consumer went away,
// the pipeline itself did not fail) notifies nobody.
func (s *Server) notifyRun(r *http.Request, topic string, result *pipeline.RunResult, runErr error) {
	if s.notifier == nil {
		return
	}
	ctx := context.WithoutCancel(r.Context())
	topic = strings.TrimSpace(topic)
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			s.logger.Debug("run abandoned by consumer, skipping notification")
			return
		}
		if err := s.notifier.NotifyRunFailed(ctx, topic, runErr); err != nil {
			s.logger.Warn("failure notification not delivered", logging.Error(err))
		}
		return
	}
	rendered := result != nil && result.Outcome != nil && result.Outcome.Completed()
	if err := s.notifier.NotifyRunCompleted(ctx, topic, rendered); err != nil {
		s.logger.Warn("completion notification not delivered", logging.Error(err))
	}
}
