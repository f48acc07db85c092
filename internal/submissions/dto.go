package submissions

import (
	"time"

	"veritas-backend/internal/report"
)

// Submission status values exposed over the API.
const (
	StatusAvailable = "Available"
	StatusPending   = "Pending"
)

// SubmissionResponse is the list/detail row for a submission. AILikelihood
// is only set once a report is attached.
type SubmissionResponse struct {
	ID           string    `json:"id"`
	AuthorName   string    `json:"authorName"`
	Preview      string    `json:"preview"`
	Status       string    `json:"status"`
	AILikelihood string    `json:"aiLikelihood,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse converts a submission into its API representation.
func ToResponse(sub Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:         sub.ID,
		AuthorName: sub.UserName,
		Preview:    sub.Preview(),
		Status:     StatusPending,
		CreatedAt:  sub.CreatedAt,
	}
	if sub.Analyzed() {
		resp.Status = StatusAvailable
		resp.AILikelihood = string(sub.Report.AILikelihood)
	}
	return resp
}

// ToResponses converts a slice of submissions, preserving order.
func ToResponses(subs []Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ToResponse(sub))
	}
	return out
}

// SubmitRequest is the JSON body for text submissions.
type SubmitRequest struct {
	Text string `json:"text"`
}

// ReportResponse wraps a presented report.
type ReportResponse struct {
	Report report.Presented `json:"report"`
}
