// Package logging configures the process-wide slog logger and provides
// standardized attribute helpers so components emit consistent field names.
package logging
