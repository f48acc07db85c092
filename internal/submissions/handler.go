package submissions

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"veritas-backend/internal/detector"
	"veritas-backend/internal/shared/server/middleware"
	"veritas-backend/internal/shared/server/respond"
)

// Uploaded files larger than this are rejected before extraction.
const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the submissions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.create)
	rg.GET("/submissions", h.list)
	rg.GET("/submissions/:id/report", h.getReport)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	userName := middleware.UserNameFromContext(c)
	if userName == "" {
		userName = DisplayNameFromEmail(middleware.UserEmailFromContext(c))
	}
	token := middleware.TokenFromContext(c)

	var sub Submission
	var err error

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		sub, err = h.createFromUpload(c, userID, userName, token)
	} else {
		var req SubmitRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
			return
		}
		sub, err = h.Svc.Submit(c.Request.Context(), userID, userName, req.Text, token)
	}

	if sub.ID != "" {
		c.Set("submissionId", sub.ID)
	}

	if err != nil {
		h.respondSubmitError(c, sub, err)
		return
	}

	c.Set("analysisOutcome", "analyzed")
	respond.JSON(c, http.StatusCreated, ToResponse(sub))
}

func (h *Handler) createFromUpload(c *gin.Context, userID, userName, token string) (Submission, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Submission{}, fmt.Errorf("%w: file field is required", ErrInvalidInput)
	}
	if fileHeader.Size > maxUploadBytes {
		return Submission{}, fmt.Errorf("%w: file too large", ErrInvalidInput)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Submission{}, fmt.Errorf("%w: cannot read uploaded file", ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return Submission{}, fmt.Errorf("%w: cannot read uploaded file", ErrInvalidInput)
	}
	if len(data) > maxUploadBytes {
		return Submission{}, fmt.Errorf("%w: file too large", ErrInvalidInput)
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	return h.Svc.SubmitFile(c.Request.Context(), userID, userName, fileHeader.Filename, mimeType, data, token)
}

func (h *Handler) respondSubmitError(c *gin.Context, sub Submission, err error) {
	var analysisErr *detector.AnalysisError
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, detector.ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "document text is required", nil)
	case errors.Is(err, detector.ErrNoToken):
		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
	case errors.As(err, &analysisErr):
		c.Set("analysisOutcome", "failed")
		var details interface{}
		if sub.ID != "" {
			details = gin.H{"submissionId": sub.ID}
		}
		respond.Error(c, http.StatusBadGateway, respond.CodeAnalysis, analysisErr.Detail, details)
	case errors.Is(err, ErrPersistence):
		respond.Error(c, http.StatusInternalServerError, respond.CodePersistence, "failed to save submission", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to process submission", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	subs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodePersistence, "failed to load submissions", nil)
		return
	}
	respond.OK(c, gin.H{"submissions": ToResponses(subs)})
}

func (h *Handler) getReport(c *gin.Context) {
	submissionID := c.Param("id")
	if submissionID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "submission id is required", nil)
		return
	}
	c.Set("submissionId", submissionID)

	presented, err := h.Svc.PresentReport(c.Request.Context(), submissionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "submission not found", nil)
		case errors.Is(err, ErrReportUnavailable):
			respond.Error(c, http.StatusConflict, respond.CodeReportUnavailable, "report not available for this submission", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodePersistence, "failed to load report", nil)
		}
		return
	}

	respond.OK(c, ReportResponse{Report: presented})
}
