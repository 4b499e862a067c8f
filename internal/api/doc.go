// Package api exposes the pipeline over HTTP.
//
// Two delivery variants share one orchestrator: POST /run_workflow collects
// all stage results and responds once the run finishes, while POST
// /run_workflow_stream pushes one server-sent event per completed stage so
// the caller can render early stages while later ones are still computing.
// Rendered videos are served back under GET /videos/<name>.
package api
