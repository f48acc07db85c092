package submissions

import (
	"context"

	"veritas-backend/internal/report"
)

// Repo defines persistence operations for submissions.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
	// List returns every submission ordered by creation time descending.
	List(ctx context.Context) ([]Submission, error)
	GetByID(ctx context.Context, submissionID string) (Submission, error)
	// AttachReport sets the report on a submission that does not have one.
	// It returns ErrReportExists if a report is already attached.
	AttachReport(ctx context.Context, submissionID string, rep report.Report) error
}
