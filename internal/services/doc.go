// Package services defines the shared error taxonomy and context annotation
// helpers used by the external service adapters and the pipeline
// orchestrator.
//
// Errors are tagged with sentinel markers (ErrProvider, ErrValidation, ...)
// via Wrap so callers can classify failures with errors.Is without parsing
// messages. HTTPStatus maps markers onto response codes for the API layer.
package services
