package repositories

import (
	"time"

	"migration-backend/internal/analyzer"
	"migration-backend/internal/risk"
)

// Analysis represents a repository analysis job.
type Analysis struct {
	ID           string                       `json:"id"`
	RepoURL      string                       `json:"repoUrl"`
	Owner        string                       `json:"owner"`
	Repo         string                       `json:"repo"`
	Branch       string                       `json:"branch,omitempty"`
	Status       string                       `json:"status"`
	FromCache    bool                         `json:"fromCache,omitempty"`
	Result       *analyzer.RepositoryAnalysis `json:"result,omitempty"`
	Risk         *risk.Assessment             `json:"risk,omitempty"`
	ErrorMessage *string                      `json:"errorMessage,omitempty"`
	StartedAt    *time.Time                   `json:"startedAt,omitempty"`
	CompletedAt  *time.Time                   `json:"completedAt,omitempty"`
	CreatedAt    time.Time                    `json:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt"`
}
