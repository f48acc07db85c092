package report

import "strings"

// Likelihood is the closed set of AI-likelihood verdicts a report can carry.
type Likelihood string

const (
	LikelihoodLow    Likelihood = "Low"
	LikelihoodMedium Likelihood = "Medium"
	LikelihoodHigh   Likelihood = "High"
)

// ParseLikelihood maps a raw detector verdict onto the closed set. Older
// detector builds emit a five-step scale; the outer steps collapse onto
// Low/High. Anything unrecognized or absent defaults to Low.
func ParseLikelihood(raw string) Likelihood {
	switch strings.TrimSpace(raw) {
	case "High", "Very High":
		return LikelihoodHigh
	case "Medium":
		return LikelihoodMedium
	default:
		return LikelihoodLow
	}
}

// Badge returns the display badge variant for the likelihood.
func (l Likelihood) Badge() string {
	switch l {
	case LikelihoodHigh:
		return "destructive"
	case LikelihoodMedium:
		return "secondary"
	default:
		return "default"
	}
}

// FallbackReasoning returns the canned explanation shown when the detector
// supplied no reasoning text. Unknown values fall back to the Low sentence.
func (l Likelihood) FallbackReasoning() string {
	switch l {
	case LikelihoodHigh:
		return "This document shows multiple indicators of AI-generated content including consistent vocabulary, formal structure, and patterns common in large language models."
	case LikelihoodMedium:
		return "This document shows some characteristics that could indicate AI assistance, but they are not conclusive. Further review is recommended."
	default:
		return "This document appears to be written by a human with natural writing patterns and variations typical of student work."
	}
}

// Source is a single external web reference cited by the detector.
type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Report is the structured analysis result attached to a submission. It is
// immutable once attached; a submission's report is replaced wholesale or
// not at all.
type Report struct {
	AILikelihood       Likelihood `json:"ai_likelihood"`
	Reasoning          string     `json:"ai_reasoning"`
	OnlineSources      []Source   `json:"online_sources"`
	OnlineSourcesCount int        `json:"online_sources_count"`
}
