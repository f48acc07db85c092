package submissions

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrReportExists      = errors.New("report already attached")
	ErrReportUnavailable = errors.New("report not available")
	ErrPersistence       = errors.New("persistence failure")
)
