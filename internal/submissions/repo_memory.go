package submissions

import (
	"context"
	"sort"
	"sync"

	"veritas-backend/internal/report"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured and in tests. Safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Submission
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Submission)}
}

// Create stores the submission.
func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[sub.ID] = sub
	return nil
}

// List returns all submissions, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Submission, 0, len(r.byID))
	for _, sub := range r.byID {
		out = append(out, sub)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns a submission by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, submissionID string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byID[submissionID]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

// AttachReport sets the report on a pending submission, once.
func (r *MemoryRepo) AttachReport(ctx context.Context, submissionID string, rep report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byID[submissionID]
	if !ok {
		return ErrNotFound
	}
	if sub.Report != nil {
		return ErrReportExists
	}
	sub.Report = &rep
	r.byID[submissionID] = sub
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
