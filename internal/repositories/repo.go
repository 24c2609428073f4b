package repositories

import (
	"context"
	"time"

	"migration-backend/internal/analyzer"
	"migration-backend/internal/risk"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Repo defines persistence operations for repository analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	Update(ctx context.Context, analysisID, status string, result *analyzer.RepositoryAnalysis, assessment *risk.Assessment, errorMessage *string, startedAt, completedAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]Analysis, error)
	LatestForRepo(ctx context.Context, owner, repo, branch string) (Analysis, error)
}
