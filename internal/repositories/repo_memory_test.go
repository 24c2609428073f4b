package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"migration-backend/internal/risk"
)

func seedAnalysis(t *testing.T, repo *MemoryRepo, id, owner, repoName string, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), Analysis{
		ID:        id,
		RepoURL:   "https://github.com/" + owner + "/" + repoName,
		Owner:     owner,
		Repo:      repoName,
		Status:    StatusQueued,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestMemoryRepoUpdateSetsTimestamps(t *testing.T) {
	repo := NewMemoryRepo()
	seedAnalysis(t, repo, "a1", "acme", "payments", time.Now().UTC())

	if err := repo.Update(context.Background(), "a1", StatusProcessing, nil, nil, nil, nil, nil); err != nil {
		t.Fatalf("Update processing: %v", err)
	}
	analysis, err := repo.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if analysis.StartedAt == nil {
		t.Fatalf("expected StartedAt set on processing transition")
	}
	if analysis.CompletedAt != nil {
		t.Fatalf("unexpected CompletedAt before completion")
	}

	assessment := &risk.Assessment{Score: 3, Level: risk.LevelLow}
	if err := repo.Update(context.Background(), "a1", StatusCompleted, nil, assessment, nil, nil, nil); err != nil {
		t.Fatalf("Update completed: %v", err)
	}
	analysis, err = repo.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if analysis.CompletedAt == nil {
		t.Fatalf("expected CompletedAt set on completion")
	}
	if analysis.Risk == nil || analysis.Risk.Score != 3 {
		t.Fatalf("expected risk payload to persist, got %+v", analysis.Risk)
	}
}

func TestMemoryRepoUpdateUnknownID(t *testing.T) {
	repo := NewMemoryRepo()
	err := repo.Update(context.Background(), "missing", StatusProcessing, nil, nil, nil, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC()
	seedAnalysis(t, repo, "a1", "acme", "alpha", base.Add(-2*time.Hour))
	seedAnalysis(t, repo, "a2", "acme", "beta", base.Add(-time.Hour))
	seedAnalysis(t, repo, "a3", "acme", "gamma", base)

	analyses, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(analyses))
	}
	if analyses[0].ID != "a3" || analyses[1].ID != "a2" {
		t.Fatalf("expected newest first, got %s, %s", analyses[0].ID, analyses[1].ID)
	}

	analyses, err = repo.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("List offset: %v", err)
	}
	if len(analyses) != 1 || analyses[0].ID != "a1" {
		t.Fatalf("expected offset to skip, got %+v", analyses)
	}
}

func TestMemoryRepoLatestForRepo(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC()
	seedAnalysis(t, repo, "a1", "acme", "payments", base.Add(-time.Hour))
	seedAnalysis(t, repo, "a2", "acme", "payments", base)
	seedAnalysis(t, repo, "a3", "acme", "billing", base)

	latest, err := repo.LatestForRepo(context.Background(), "acme", "payments", "")
	if err != nil {
		t.Fatalf("LatestForRepo: %v", err)
	}
	if latest.ID != "a2" {
		t.Fatalf("expected a2, got %s", latest.ID)
	}

	_, err = repo.LatestForRepo(context.Background(), "acme", "unknown", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
