package history

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veritas-backend/internal/shared/server/respond"
	"veritas-backend/internal/submissions"
)

// Handler exposes the history view over HTTP. Each request drives a fresh
// Controller through load and filter.
type Handler struct {
	Repo submissions.Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo submissions.Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.getHistory)
	rg.GET("/history/:id/report", h.getReport)
}

func (h *Handler) getHistory(c *gin.Context) {
	controller := NewController(h.Repo)
	view := controller.Load(c.Request.Context())
	if view.Phase == PhaseFailed {
		respond.Error(c, http.StatusInternalServerError, respond.CodePersistence, view.LoadError, nil)
		return
	}
	if q := c.Query("q"); q != "" {
		view = controller.Filter(q)
	}
	respond.OK(c, view)
}

func (h *Handler) getReport(c *gin.Context) {
	submissionID := c.Param("id")
	if submissionID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "submission id is required", nil)
		return
	}
	c.Set("submissionId", submissionID)

	controller := NewController(h.Repo)
	dialog, err := controller.SelectReport(c.Request.Context(), submissionID)
	if err != nil {
		switch {
		case errors.Is(err, submissions.ErrReportUnavailable):
			respond.Error(c, http.StatusConflict, respond.CodeReportUnavailable, "report not available for this submission", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodePersistence, "failed to load report", nil)
		}
		return
	}
	respond.OK(c, dialog)
}
