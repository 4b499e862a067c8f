package pipeline

// OutcomeStatus reports whether a render attempt produced a stored video.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeError     OutcomeStatus = "error"
)

// MediaOutcome is the typed result of attempting to render and persist a
// video. Location is non-empty if and only if Status is OutcomeCompleted;
// provider failures and local write failures collapse into the same error
// shape from the caller's point of view.
type MediaOutcome struct {
	Status      OutcomeStatus `json:"status"`
	Location    string        `json:"location,omitempty"`
	SourceURL   string        `json:"source_url,omitempty"`
	ErrorDetail string        `json:"error_detail,omitempty"`
}

// CompletedOutcome builds the success outcome for a stored video.
func CompletedOutcome(location, sourceURL string) MediaOutcome {
	return MediaOutcome{Status: OutcomeCompleted, Location: location, SourceURL: sourceURL}
}

// ErrorOutcome builds the degraded outcome carrying a human-readable reason.
func ErrorOutcome(detail string) MediaOutcome {
	return MediaOutcome{Status: OutcomeError, ErrorDetail: detail}
}

// Completed reports whether the outcome carries a stored video.
func (o MediaOutcome) Completed() bool {
	return o.Status == OutcomeCompleted
}
