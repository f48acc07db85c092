package submissions

import (
	"strings"
	"time"
	"unicode"

	"veritas-backend/internal/report"
)

const previewRunes = 100

// Content is the submitted document payload. It is set at creation and never
// mutated afterward.
type Content struct {
	Text string `json:"text"`
}

// Submission is a persisted unit of original content plus an optional
// analysis report. Report is nil until analysis completes; it transitions
// absent -> present at most once.
type Submission struct {
	ID         string
	UserID     string
	UserName   string
	Content    Content
	Report     *report.Report
	StorageKey string // set when the document arrived as an uploaded file
	CreatedAt  time.Time
}

// Analyzed reports whether an analysis report has been attached.
func (s Submission) Analyzed() bool {
	return s.Report != nil
}

// Preview returns the first 100 runes of the submitted text for list views.
func (s Submission) Preview() string {
	runes := []rune(s.Content.Text)
	if len(runes) <= previewRunes {
		return s.Content.Text
	}
	return string(runes[:previewRunes]) + "..."
}

// DisplayNameFromEmail derives an author display name from an email address:
// the local part split on dots, underscores and hyphens, each word
// capitalized. Empty input yields "User".
func DisplayNameFromEmail(email string) string {
	local := strings.SplitN(strings.TrimSpace(email), "@", 2)[0]
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return "User"
	}
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
