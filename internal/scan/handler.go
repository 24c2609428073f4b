package scan

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

// Handler wires HTTP handlers to the scan service.
type Handler struct {
	Svc       *Service
	WorkDir   string
	NewCloner ClonerFactory
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, workDir string, newCloner ClonerFactory) *Handler {
	return &Handler{Svc: svc, WorkDir: workDir, NewCloner: newCloner}
}

// RegisterRoutes attaches scan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scan/licenses", h.scanLicenses)
}

type scanRequest struct {
	RepoURL string `json:"repoUrl"`
	Branch  string `json:"branch"`
}

func (h *Handler) scanLicenses(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
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
	dir, err := os.MkdirTemp(h.WorkDir, prefix+"-scan-")
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to prepare scan workspace", nil)
		return
	}
	defer os.RemoveAll(dir)

	token := middleware.GitHubTokenFromContext(c)
	cloner := h.NewCloner(token)
	if err := cloner.Clone(ctx, githubclient.CloneURL(owner, repo), req.Branch, dir); err != nil {
		respond.Error(c, http.StatusBadGateway, "clone_failed", "failed to clone repository", nil)
		return
	}

	report, err := h.Svc.Analyze(ctx, dir)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "scan_failed", "license scan failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"repo":   owner + "/" + repo,
		"report": report,
	})
}
