package repositories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"migration-backend/internal/githubclient"
	"migration-backend/internal/shared/server/middleware"
	"migration-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the repository analysis service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches repository analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/repository/analyze", h.startAnalysis)
	rg.GET("/repository/analyses", h.listAnalyses)
	rg.GET("/repository/analyses/:id", h.getAnalysis)
	rg.GET("/repository/analyses/:id/risk", h.getRisk)
}

type analyzeRequest struct {
	RepoURL      string `json:"repoUrl"`
	Branch       string `json:"branch"`
	ForceRefresh bool   `json:"forceRefresh"`
}

func (h *Handler) startAnalysis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.RepoURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "repoUrl is required", nil)
		return
	}

	token := middleware.GitHubTokenFromContext(c)
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	analysis, err := h.Svc.Start(ctx, token, req.RepoURL, req.Branch, req.ForceRefresh)
	if err != nil {
		switch {
		case errors.Is(err, githubclient.ErrInvalidRepoURL):
			respond.Error(c, http.StatusBadRequest, "validation_error", "repoUrl is not a valid GitHub repository", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	if analysis.FromCache {
		respond.JSON(c, http.StatusOK, analysis)
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"analysisId": analysis.ID,
		"status":     analysis.Status,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	resp := gin.H{
		"id":        analysis.ID,
		"repoUrl":   analysis.RepoURL,
		"owner":     analysis.Owner,
		"repo":      analysis.Repo,
		"status":    analysis.Status,
		"createdAt": analysis.CreatedAt,
	}
	if analysis.Branch != "" {
		resp["branch"] = analysis.Branch
	}
	if analysis.Status == StatusCompleted {
		resp["result"] = analysis.Result
		resp["risk"] = analysis.Risk
	}
	if analysis.Status == StatusFailed && analysis.ErrorMessage != nil {
		resp["errorMessage"] = *analysis.ErrorMessage
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getRisk(c *gin.Context) {
	analysisID := c.Param("id")

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	if analysis.Status != StatusCompleted || analysis.Risk == nil {
		respond.Error(c, http.StatusConflict, "not_ready", "analysis has not completed", []map[string]string{
			{"field": "status", "issue": analysis.Status},
		})
		return
	}

	respond.JSON(c, http.StatusOK, analysis.Risk)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(analyses))
	for _, a := range analyses {
		item := gin.H{
			"analysisId": a.ID,
			"repoUrl":    a.RepoURL,
			"owner":      a.Owner,
			"repo":       a.Repo,
			"status":     a.Status,
			"createdAt":  a.CreatedAt,
		}
		if a.Status == StatusCompleted && a.Risk != nil {
			item["riskScore"] = a.Risk.Score
			item["riskLevel"] = a.Risk.Level
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}
