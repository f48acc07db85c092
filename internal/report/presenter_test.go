package report

import (
	"strings"
	"testing"
	"time"
)

func TestPresentFallbackReasoningPerBucket(t *testing.T) {
	cases := []struct {
		likelihood Likelihood
		wants      string
	}{
		{LikelihoodHigh, "multiple indicators of AI-generated content"},
		{LikelihoodMedium, "not conclusive"},
		{LikelihoodLow, "written by a human"},
		{Likelihood("Unknown"), "written by a human"}, // unrecognized -> Low sentence
	}
	for _, tc := range cases {
		out := Present(Report{AILikelihood: tc.likelihood}, "sub-1", "Alice", time.Now())
		if !strings.Contains(out.Verdict.Reasoning, tc.wants) {
			t.Fatalf("%s: fallback %q does not contain %q", tc.likelihood, out.Verdict.Reasoning, tc.wants)
		}
	}
}

func TestPresentPrefersDetectorReasoning(t *testing.T) {
	rep := Report{AILikelihood: LikelihoodHigh, Reasoning: "flawless prose, no typos"}
	out := Present(rep, "sub-1", "Alice", time.Now())
	if out.Verdict.Reasoning != "flawless prose, no typos" {
		t.Fatalf("expected detector reasoning, got %q", out.Verdict.Reasoning)
	}
}

func TestPresentSourcePlaceholders(t *testing.T) {
	rep := Report{
		AILikelihood:       LikelihoodLow,
		OnlineSources:      []Source{{URL: "https://example.org"}},
		OnlineSourcesCount: 1,
	}
	out := Present(rep, "sub-1", "Alice", time.Now())
	if len(out.OnlineSources.Sources) != 1 {
		t.Fatalf("expected one source, got %d", len(out.OnlineSources.Sources))
	}
	src := out.OnlineSources.Sources[0]
	if src.Title != "Untitled" {
		t.Fatalf("expected title placeholder, got %q", src.Title)
	}
	if src.Snippet != "No snippet available" {
		t.Fatalf("expected snippet placeholder, got %q", src.Snippet)
	}
	if out.OnlineSources.Notice != "" {
		t.Fatalf("notice should be empty when sources exist, got %q", out.OnlineSources.Notice)
	}
}

func TestPresentEmptySourcesNotice(t *testing.T) {
	out := Present(Report{AILikelihood: LikelihoodLow, OnlineSources: []Source{}}, "sub-1", "Alice", time.Now())
	if out.OnlineSources.Notice != "No online sources found" {
		t.Fatalf("expected no-sources notice, got %q", out.OnlineSources.Notice)
	}
	if len(out.OnlineSources.Sources) != 0 {
		t.Fatalf("expected empty source list, got %#v", out.OnlineSources.Sources)
	}
}

func TestPresentInternalMatchesHonestEmptyState(t *testing.T) {
	out := Present(Report{AILikelihood: LikelihoodLow}, "sub-1", "Alice", time.Now())
	if len(out.InternalMatches.Matches) != 0 {
		t.Fatalf("internal matches must not be fabricated, got %#v", out.InternalMatches.Matches)
	}
	if out.InternalMatches.Notice == "" {
		t.Fatal("expected a deterministic not-yet-available notice")
	}
}

func TestBadgeMapping(t *testing.T) {
	if LikelihoodHigh.Badge() != "destructive" {
		t.Fatalf("high badge: %s", LikelihoodHigh.Badge())
	}
	if LikelihoodMedium.Badge() != "secondary" {
		t.Fatalf("medium badge: %s", LikelihoodMedium.Badge())
	}
	if LikelihoodLow.Badge() != "default" {
		t.Fatalf("low badge: %s", LikelihoodLow.Badge())
	}
}
