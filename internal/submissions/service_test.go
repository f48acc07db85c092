package submissions

import (
	"context"
	"errors"
	"testing"

	"veritas-backend/internal/detector"
	"veritas-backend/internal/report"
)

type fakeAnalyzer struct {
	rep   report.Report
	err   error
	calls int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text, authToken string) (report.Report, error) {
	f.calls++
	if f.err != nil {
		return report.Report{}, f.err
	}
	return f.rep, nil
}

func TestSubmitAttachesReport(t *testing.T) {
	repo := NewMemoryRepo()
	analyzer := &fakeAnalyzer{rep: report.Report{
		AILikelihood:       report.LikelihoodHigh,
		Reasoning:          "model-like phrasing",
		OnlineSourcesCount: 0,
	}}
	svc := NewService(repo, analyzer, nil)

	sub, err := svc.Submit(context.Background(), "user-1", "Jane", "essay text", "token")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !sub.Analyzed() {
		t.Fatal("expected report attached")
	}
	if sub.Report.AILikelihood != report.LikelihoodHigh {
		t.Fatalf("likelihood = %q", sub.Report.AILikelihood)
	}

	stored, err := repo.GetByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Analyzed() {
		t.Fatal("expected stored submission to carry the report")
	}
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewService(NewMemoryRepo(), analyzer, nil)

	_, err := svc.Submit(context.Background(), "user-1", "Jane", "   ", "token")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if analyzer.calls != 0 {
		t.Fatal("analyzer must not run for empty text")
	}
}

func TestSubmitKeepsPendingOnAnalysisFailure(t *testing.T) {
	repo := NewMemoryRepo()
	analysisErr := &detector.AnalysisError{StatusCode: 503, Detail: "Analysis failed. Please try again later."}
	svc := NewService(repo, &fakeAnalyzer{err: analysisErr}, nil)

	sub, err := svc.Submit(context.Background(), "user-1", "Jane", "essay text", "token")
	var gotErr *detector.AnalysisError
	if !errors.As(err, &gotErr) {
		t.Fatalf("err = %v, want AnalysisError", err)
	}
	if sub.ID == "" {
		t.Fatal("expected the pending submission to be returned")
	}

	stored, err := repo.GetByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Analyzed() {
		t.Fatal("failed analysis must not attach a report")
	}
}

func TestPresentReportPendingSubmission(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &fakeAnalyzer{err: &detector.AnalysisError{StatusCode: 500, Detail: "boom"}}, nil)

	sub, _ := svc.Submit(context.Background(), "user-1", "Jane", "essay text", "token")

	_, err := svc.PresentReport(context.Background(), sub.ID)
	if !errors.Is(err, ErrReportUnavailable) {
		t.Fatalf("err = %v, want ErrReportUnavailable", err)
	}
}

func TestPresentReportUnknownSubmission(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &fakeAnalyzer{}, nil)
	_, err := svc.PresentReport(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPresentReportResolvedSubmission(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &fakeAnalyzer{rep: report.Report{
		AILikelihood: report.LikelihoodMedium,
		OnlineSources: []report.Source{
			{URL: "https://example.com/a"},
		},
		OnlineSourcesCount: 1,
	}}, nil)

	sub, err := svc.Submit(context.Background(), "user-1", "Jane", "essay text", "token")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	presented, err := svc.PresentReport(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("PresentReport: %v", err)
	}
	if presented.SubmissionID != sub.ID {
		t.Fatalf("submission id = %q", presented.SubmissionID)
	}
	if presented.AuthorName != "Jane" {
		t.Fatalf("author = %q", presented.AuthorName)
	}
	if presented.Verdict.Likelihood != report.LikelihoodMedium {
		t.Fatalf("likelihood = %q", presented.Verdict.Likelihood)
	}
	if presented.OnlineSources.Sources[0].Title != "Untitled" {
		t.Fatalf("placeholder title missing: %q", presented.OnlineSources.Sources[0].Title)
	}
}

func TestSubmitFileExtractsPlainText(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &fakeAnalyzer{rep: report.Report{AILikelihood: report.LikelihoodLow}}, nil)

	sub, err := svc.SubmitFile(context.Background(), "user-1", "Jane", "essay.txt", "text/plain", []byte("typed essay"), "token")
	if err != nil {
		t.Fatalf("SubmitFile: %v", err)
	}
	if sub.Content.Text != "typed essay" {
		t.Fatalf("content = %q", sub.Content.Text)
	}
}

func TestSubmitFileRejectsBinary(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &fakeAnalyzer{}, nil)
	_, err := svc.SubmitFile(context.Background(), "user-1", "Jane", "blob.bin", "application/octet-stream", []byte{0x00, 0x01, 0x02}, "token")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
