package history

import (
	"context"
	"strings"

	"veritas-backend/internal/report"
	"veritas-backend/internal/submissions"
)

// Phase is the lifecycle state of the history view.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// Empty-state kinds shown when the visible list has no rows.
const (
	EmptyNone          = ""
	EmptyNoSubmissions = "no_submissions"
	EmptyNoMatches     = "no_matches"
)

// Dialog state kinds for a selected report.
const (
	DialogClosed = "closed"
	DialogOpen   = "open"
)

// Row is one visible history entry.
type Row struct {
	ID           string `json:"id"`
	AuthorName   string `json:"authorName"`
	Preview      string `json:"preview"`
	Status       string `json:"status"`
	AILikelihood string `json:"aiLikelihood,omitempty"`
	SubmittedAt  string `json:"submittedAt"`
}

// View is a snapshot of what the history screen renders: the visible rows
// after filtering, plus the phase and empty-state hint.
type View struct {
	Phase     Phase  `json:"phase"`
	Rows      []Row  `json:"rows"`
	Query     string `json:"query"`
	EmptyKind string `json:"emptyKind,omitempty"`
	LoadError string `json:"loadError,omitempty"`
}

// DialogState is the report dialog for a selected submission. Report is set
// only when Kind is DialogOpen.
type DialogState struct {
	Kind   string            `json:"kind"`
	Report *report.Presented `json:"report,omitempty"`
}

// Controller drives the submission history screen. It loads all submissions,
// applies the author-name filter and resolves report selections. Not safe
// for concurrent use; each request gets its own Controller.
type Controller struct {
	repo  submissions.Repo
	phase Phase
	all   []submissions.Submission
	query string
}

// NewController builds an idle Controller on top of a submissions repo.
func NewController(repo submissions.Repo) *Controller {
	return &Controller{repo: repo, phase: PhaseIdle}
}

// Phase reports the controller's current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Load replaces the row set wholesale from the repository. A failed load
// yields a Failed view, then the controller settles on an empty Ready state
// so the screen stays interactive; it is never left in Loading.
func (c *Controller) Load(ctx context.Context) View {
	c.phase = PhaseLoading
	c.all = nil

	subs, err := c.repo.List(ctx)
	if err != nil {
		c.phase = PhaseReady
		return View{
			Phase:     PhaseFailed,
			Rows:      []Row{},
			Query:     c.query,
			LoadError: "Failed to load submission history",
		}
	}

	c.all = subs
	c.phase = PhaseReady
	return c.render()
}

// Filter updates the author-name query and re-renders. Matching is a
// case-insensitive substring test against the author display name.
func (c *Controller) Filter(query string) View {
	c.query = query
	return c.render()
}

// SelectReport resolves a submission into an open report dialog. Pending and
// unknown submissions yield ErrReportUnavailable and the dialog stays closed.
func (c *Controller) SelectReport(ctx context.Context, submissionID string) (DialogState, error) {
	sub, err := c.repo.GetByID(ctx, submissionID)
	if err != nil {
		if err == submissions.ErrNotFound {
			return DialogState{Kind: DialogClosed}, submissions.ErrReportUnavailable
		}
		return DialogState{Kind: DialogClosed}, err
	}
	if !sub.Analyzed() {
		return DialogState{Kind: DialogClosed}, submissions.ErrReportUnavailable
	}

	presented := report.Present(*sub.Report, sub.ID, sub.UserName, sub.CreatedAt)
	return DialogState{Kind: DialogOpen, Report: &presented}, nil
}

func (c *Controller) render() View {
	view := View{
		Phase: c.phase,
		Rows:  []Row{},
		Query: c.query,
	}
	if c.phase != PhaseReady {
		return view
	}

	needle := strings.ToLower(strings.TrimSpace(c.query))
	for _, sub := range c.all {
		if needle != "" && !strings.Contains(strings.ToLower(sub.UserName), needle) {
			continue
		}
		view.Rows = append(view.Rows, toRow(sub))
	}

	if len(view.Rows) == 0 {
		if len(c.all) == 0 {
			view.EmptyKind = EmptyNoSubmissions
		} else {
			view.EmptyKind = EmptyNoMatches
		}
	}
	return view
}

func toRow(sub submissions.Submission) Row {
	resp := submissions.ToResponse(sub)
	return Row{
		ID:           resp.ID,
		AuthorName:   resp.AuthorName,
		Preview:      resp.Preview,
		Status:       resp.Status,
		AILikelihood: resp.AILikelihood,
		SubmittedAt:  resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
