package submissions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"veritas-backend/internal/extract"
	"veritas-backend/internal/report"
	"veritas-backend/internal/shared/metrics"
	"veritas-backend/internal/shared/storage/object"
	"veritas-backend/internal/shared/telemetry"
)

// Analyzer runs AI-content detection on submitted text. The caller's bearer
// token is forwarded verbatim to the detection service.
type Analyzer interface {
	Analyze(ctx context.Context, text, authToken string) (report.Report, error)
}

// Service implements the submission lifecycle: create pending, analyze,
// attach report.
type Service struct {
	repo     Repo
	analyzer Analyzer
	store    object.ObjectStore
}

// NewService builds a Service. store may be nil when file uploads are not
// retained.
func NewService(repo Repo, analyzer Analyzer, store object.ObjectStore) *Service {
	return &Service{repo: repo, analyzer: analyzer, store: store}
}

// Submit persists a pending submission and runs analysis inline. When
// analysis fails the pending submission is kept and the analysis error is
// returned alongside it so callers can surface both.
func (s *Service) Submit(ctx context.Context, userID, userName, text, authToken string) (Submission, error) {
	return s.submit(ctx, userID, userName, text, "", authToken)
}

// SubmitFile extracts text from an uploaded document, retains the original
// file when an object store is configured, then follows the Submit path.
func (s *Service) SubmitFile(ctx context.Context, userID, userName, fileName, mimeType string, data []byte, authToken string) (Submission, error) {
	text, err := extract.Text(data, mimeType, fileName)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	storageKey := ""
	if s.store != nil {
		key, size, _, err := s.store.Save(ctx, userID, fileName, bytes.NewReader(data))
		if err != nil {
			// The extracted text is already in hand. Analysis proceeds
			// without the retained original.
			telemetry.Error("submission.store_failed", map[string]any{
				"user_id":   userID,
				"file_name": fileName,
				"error":     err.Error(),
			})
		} else {
			storageKey = key
			telemetry.Info("submission.stored", map[string]any{
				"user_id":     userID,
				"storage_key": key,
				"size_bytes":  size,
			})
		}
	}

	return s.submit(ctx, userID, userName, text, storageKey, authToken)
}

func (s *Service) submit(ctx context.Context, userID, userName, text, storageKey, authToken string) (Submission, error) {
	if strings.TrimSpace(text) == "" {
		return Submission{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	sub := Submission{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   userName,
		Content:    Content{Text: text},
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Submission{}, fmt.Errorf("%w: create submission: %v", ErrPersistence, err)
	}

	metrics.IncDetectionStarted()
	start := time.Now()
	rep, err := s.analyzer.Analyze(ctx, text, authToken)
	metrics.ObserveDetectionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncDetectionFailed()
		telemetry.Error("submission.analysis_failed", map[string]any{
			"submission_id": sub.ID,
			"user_id":       userID,
			"error":         err.Error(),
		})
		// The pending submission stays; it shows up in history without a
		// report and can be identified by ID for retries.
		return sub, err
	}
	metrics.IncDetectionCompleted()

	if err := s.repo.AttachReport(ctx, sub.ID, rep); err != nil {
		return sub, fmt.Errorf("%w: attach report: %v", ErrPersistence, err)
	}
	sub.Report = &rep

	telemetry.Info("submission.analyzed", map[string]any{
		"submission_id": sub.ID,
		"user_id":       userID,
		"ai_likelihood": string(rep.AILikelihood),
		"source_count":  rep.OnlineSourcesCount,
	})
	return sub, nil
}

// List returns all submissions, newest first.
func (s *Service) List(ctx context.Context) ([]Submission, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list submissions: %v", ErrPersistence, err)
	}
	return subs, nil
}

// Get returns a single submission by ID.
func (s *Service) Get(ctx context.Context, submissionID string) (Submission, error) {
	sub, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Submission{}, err
		}
		return Submission{}, fmt.Errorf("%w: get submission: %v", ErrPersistence, err)
	}
	return sub, nil
}

// PresentReport resolves a submission's report into display sections.
// Pending submissions yield ErrReportUnavailable.
func (s *Service) PresentReport(ctx context.Context, submissionID string) (report.Presented, error) {
	sub, err := s.Get(ctx, submissionID)
	if err != nil {
		return report.Presented{}, err
	}
	if !sub.Analyzed() {
		return report.Presented{}, ErrReportUnavailable
	}
	return report.Present(*sub.Report, sub.ID, sub.UserName, sub.CreatedAt), nil
}
