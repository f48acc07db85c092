package report

import "time"

const (
	placeholderTitle   = "Untitled"
	placeholderSnippet = "No snippet available"

	noSourcesNotice = "No online sources found"
	noMatchesNotice = "Internal match scoring is not yet available"
)

// Presented is a resolved report rendered into the three fixed detail
// sections shown in the report dialog.
type Presented struct {
	SubmissionID    string          `json:"submissionId"`
	AuthorName      string          `json:"authorName"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	Verdict         VerdictSection  `json:"verdict"`
	OnlineSources   SourcesSection  `json:"onlineSources"`
	InternalMatches MatchesSection  `json:"internalMatches"`
}

// VerdictSection carries the likelihood verdict and its explanation.
type VerdictSection struct {
	Likelihood Likelihood `json:"likelihood"`
	Badge      string     `json:"badge"`
	Reasoning  string     `json:"reasoning"`
}

// SourcesSection lists the cited web sources. Notice is set instead of
// Sources when the detector found none.
type SourcesSection struct {
	Count   int               `json:"count"`
	Sources []PresentedSource `json:"sources"`
	Notice  string            `json:"notice,omitempty"`
}

// PresentedSource is one online source row with placeholders filled in.
type PresentedSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// MatchesSection is the internal-corpus match tab. Scoring against prior
// submissions is not implemented, so the section renders an honest empty
// state rather than sample rows.
type MatchesSection struct {
	Matches []InternalMatch `json:"matches"`
	Notice  string          `json:"notice,omitempty"`
}

// InternalMatch is a same-corpus similarity hit against a prior submission.
type InternalMatch struct {
	SubmissionID    string    `json:"submissionId"`
	MatchedAuthor   string    `json:"matchedAuthor"`
	MatchedDate     time.Time `json:"matchedDate"`
	MatchPercentage int       `json:"matchPercentage"`
}

// Present renders a resolved report into the fixed detail sections. Absent
// sub-fields get deterministic fallbacks; the output never contains an
// undefined field.
func Present(rep Report, submissionID, authorName string, submittedAt time.Time) Presented {
	reasoning := rep.Reasoning
	if reasoning == "" {
		reasoning = rep.AILikelihood.FallbackReasoning()
	}

	sources := SourcesSection{
		Count:   rep.OnlineSourcesCount,
		Sources: make([]PresentedSource, 0, len(rep.OnlineSources)),
	}
	for _, src := range rep.OnlineSources {
		entry := PresentedSource{Title: src.Title, URL: src.URL, Snippet: src.Snippet}
		if entry.Title == "" {
			entry.Title = placeholderTitle
		}
		if entry.Snippet == "" {
			entry.Snippet = placeholderSnippet
		}
		sources.Sources = append(sources.Sources, entry)
	}
	if len(sources.Sources) == 0 {
		sources.Notice = noSourcesNotice
	}

	return Presented{
		SubmissionID: submissionID,
		AuthorName:   authorName,
		SubmittedAt:  submittedAt,
		Verdict: VerdictSection{
			Likelihood: rep.AILikelihood,
			Badge:      rep.AILikelihood.Badge(),
			Reasoning:  reasoning,
		},
		OnlineSources: sources,
		InternalMatches: MatchesSection{
			Matches: []InternalMatch{},
			Notice:  noMatchesNotice,
		},
	}
}
