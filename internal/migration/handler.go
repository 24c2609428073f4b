package migration

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"migration-backend/internal/githubclient"
	"migration-backend/internal/shared/server/middleware"
	"migration-backend/internal/shared/server/respond"
	"migration-backend/internal/shared/util"
)

// Cloner checks a repository out into a local directory.
type Cloner interface {
	Clone(ctx context.Context, repoURL, branch, dir string) error
}

// ClonerFactory builds a Cloner for a request token.
type ClonerFactory func(token string) Cloner

// Handler wires HTTP handlers to the migration service.
type Handler struct {
	Svc       *Service
	WorkDir   string
	NewCloner ClonerFactory
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, workDir string, newCloner ClonerFactory) *Handler {
	return &Handler{Svc: svc, WorkDir: workDir, NewCloner: newCloner}
}

// RegisterRoutes attaches migration routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/migration/convert", h.convert)
	rg.POST("/migration/preview", h.preview)
}

type migrateRequest struct {
	RepoURL       string `json:"repoUrl"`
	Branch        string `json:"branch"`
	SourceVersion int    `json:"sourceVersion"`
	TargetVersion int    `json:"targetVersion"`
}

func (h *Handler) convert(c *gin.Context) {
	h.run(c, false)
}

func (h *Handler) preview(c *gin.Context) {
	h.run(c, true)
}

func (h *Handler) run(c *gin.Context, dryRun bool) {
	var req migrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.TargetVersion <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "targetVersion is required", nil)
		return
	}

	owner, repo, err := githubclient.ParseRepoURL(req.RepoURL)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "repoUrl is not a valid GitHub repository", nil)
		return
	}

	ctx := c.Request.Context()
	prefix, err := util.SanitizeDirName(owner + "-" + repo)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "repoUrl is not a valid GitHub repository", nil)
		return
	}
	dir, err := os.MkdirTemp(h.WorkDir, prefix+"-migrate-")
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to prepare migration workspace", nil)
		return
	}
	defer os.RemoveAll(dir)

	token := middleware.GitHubTokenFromContext(c)
	cloner := h.NewCloner(token)
	if err := cloner.Clone(ctx, githubclient.CloneURL(owner, repo), req.Branch, dir); err != nil {
		respond.Error(c, http.StatusBadGateway, "clone_failed", "failed to clone repository", nil)
		return
	}

	result, err := h.Svc.Run(ctx, dir, Config{
		SourceVersion: req.SourceVersion,
		TargetVersion: req.TargetVersion,
		DryRun:        dryRun,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "migration failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"repo":   owner + "/" + repo,
		"result": result,
	})
}
