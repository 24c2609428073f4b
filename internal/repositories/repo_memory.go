package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"migration-backend/internal/analyzer"
	"migration-backend/internal/risk"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// Update sets status, payloads, error and timestamps on an existing analysis.
func (r *MemoryRepo) Update(ctx context.Context, analysisID, status string, result *analyzer.RepositoryAnalysis, assessment *risk.Assessment, errorMessage *string, startedAt, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = status
	if result != nil {
		analysis.Result = result
	}
	if assessment != nil {
		analysis.Risk = assessment
	}
	if errorMessage != nil {
		analysis.ErrorMessage = errorMessage
	}
	if startedAt != nil {
		analysis.StartedAt = startedAt
	} else if status == StatusProcessing && analysis.StartedAt == nil {
		now := time.Now().UTC()
		analysis.StartedAt = &now
	}
	if completedAt != nil {
		analysis.CompletedAt = completedAt
	} else if (status == StatusCompleted || status == StatusFailed) && analysis.CompletedAt == nil {
		now := time.Now().UTC()
		analysis.CompletedAt = &now
	}
	analysis.UpdatedAt = time.Now().UTC()
	r.byID[analysisID] = analysis
	return nil
}

// List returns analyses newest-first with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	analyses := make([]Analysis, 0, len(r.byID))
	for _, a := range r.byID {
		analyses = append(analyses, a)
	}
	r.mu.RUnlock()

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})

	if offset >= len(analyses) {
		return []Analysis{}, nil
	}
	end := len(analyses)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return analyses[offset:end], nil
}

// LatestForRepo returns the most recent analysis for an owner/repo/branch.
func (r *MemoryRepo) LatestForRepo(ctx context.Context, owner, repo, branch string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest Analysis
	found := false
	for _, a := range r.byID {
		if a.Owner != owner || a.Repo != repo || a.Branch != branch {
			continue
		}
		if !found || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
			found = true
		}
	}
	if !found {
		return Analysis{}, ErrNotFound
	}
	return latest, nil
}
