package detector

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned before any network call when the document
	// text is empty.
	ErrEmptyText = errors.New("document text is required")
	// ErrNoToken is returned before any network call when no bearer token
	// is available for the detection service.
	ErrNoToken = errors.New("missing auth token")
)

const (
	genericFailureDetail      = "Analysis failed. Please try submitting the document again."
	connectivityFailureDetail = "Could not reach the analysis service. Please try again later."
)

// AnalysisError is a non-success outcome from the detection service. Detail
// carries the service-provided message verbatim when present, otherwise a
// fixed fallback.
type AnalysisError struct {
	StatusCode int
	Detail     string
	cause      error
}

func (e *AnalysisError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("analysis failed (status %d): %s", e.StatusCode, e.Detail)
	}
	return "analysis failed: " + e.Detail
}

func (e *AnalysisError) Unwrap() error {
	return e.cause
}
