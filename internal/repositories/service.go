package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"migration-backend/internal/analyzer"
	"migration-backend/internal/githubclient"
	"migration-backend/internal/risk"
	"migration-backend/internal/shared/metrics"
	"migration-backend/internal/shared/telemetry"
	"migration-backend/internal/shared/util"
)

const defaultAnalyzeTimeout = 10 * time.Minute

// Cloner checks a repository out into a local directory.
type Cloner interface {
	Clone(ctx context.Context, repoURL, branch, dir string) error
}

// ClonerFactory builds a Cloner for a request token. Tokens are never
// persisted; they only live for the duration of one analysis.
type ClonerFactory func(token string) Cloner

// InfoFetcher resolves repository metadata before cloning.
type InfoFetcher interface {
	RepoInfo(ctx context.Context, owner, repo string) (githubclient.RepoInfo, error)
}

// InfoFetcherFactory builds an InfoFetcher for a request token.
type InfoFetcherFactory func(token string) InfoFetcher

// Service contains business logic for repository analyses.
type Service struct {
	Repo           Repo
	Analyzer       *analyzer.Analyzer
	WorkDir        string
	AnalyzeTimeout time.Duration
	NewCloner      ClonerFactory
	NewInfo        InfoFetcherFactory

	cache *resultCache
}

// NewService constructs a Service. cacheTTL of zero takes the default.
func NewService(repo Repo, an *analyzer.Analyzer, workDir string, cacheTTL time.Duration, newCloner ClonerFactory, newInfo InfoFetcherFactory) *Service {
	return &Service{
		Repo:      repo,
		Analyzer:  an,
		WorkDir:   workDir,
		NewCloner: newCloner,
		NewInfo:   newInfo,
		cache:     newResultCache(cacheTTL),
	}
}

// Start enqueues a repository analysis and kicks off asynchronous completion.
// Unless forceRefresh is set, a recently completed analysis of the same
// repository is returned from cache instead of re-cloning.
func (s *Service) Start(ctx context.Context, token, repoURL, branch string, forceRefresh bool) (Analysis, error) {
	owner, repo, err := githubclient.ParseRepoURL(repoURL)
	if err != nil {
		return Analysis{}, err
	}

	key := cacheKey(owner, repo, branch)
	if forceRefresh {
		s.cache.invalidate(key)
	} else if cached, ok := s.cache.get(key); ok {
		cached.FromCache = true
		telemetry.Info("analysis.cache_hit", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"repo":        owner + "/" + repo,
			"analysis_id": cached.ID,
		})
		return cached, nil
	}

	analysis := Analysis{
		ID:        uuid.NewString(),
		RepoURL:   repoURL,
		Owner:     owner,
		Repo:      repo,
		Branch:    branch,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	analysis.UpdatedAt = analysis.CreatedAt

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	go s.completeAsync(backgroundWithRequestID(ctx), analysis.ID, token)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, errors.New("analysisID is required")
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns analyses ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, analysisID, token string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, analysisID, "", fmt.Errorf("panic: %v", r))
		}
	}()

	timeout := s.AnalyzeTimeout
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startedAt := time.Now().UTC()
	if err := s.Repo.Update(ctx, analysisID, StatusProcessing, nil, nil, nil, &startedAt, nil); err != nil {
		s.failAnalysis(ctx, analysisID, "", fmt.Errorf("set processing failed: %w", err))
		return
	}

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		s.failAnalysis(ctx, analysisID, "", fmt.Errorf("analysis lookup: %w", err))
		return
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"repo":              analysis.Owner + "/" + analysis.Repo,
		"analysis_id":       analysis.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	branch := analysis.Branch
	var info githubclient.RepoInfo
	if s.NewInfo != nil {
		if fetcher := s.NewInfo(token); fetcher != nil {
			fetched, err := fetcher.RepoInfo(ctx, analysis.Owner, analysis.Repo)
			if err != nil {
				s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, fmt.Errorf("repository lookup: %w", err))
				return
			}
			info = fetched
			if branch == "" {
				branch = info.DefaultBranch
			}
		}
	}

	prefix, err := util.SanitizeDirName(analysis.Owner + "-" + analysis.Repo)
	if err != nil {
		s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, fmt.Errorf("workdir: %w", err))
		return
	}
	dir, err := os.MkdirTemp(s.WorkDir, prefix+"-")
	if err != nil {
		s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, fmt.Errorf("workdir: %w", err))
		return
	}
	defer os.RemoveAll(dir)

	cloner := s.NewCloner(token)
	if err := cloner.Clone(ctx, githubclient.CloneURL(analysis.Owner, analysis.Repo), branch, dir); err != nil {
		s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, err)
		return
	}

	result, err := s.Analyzer.Analyze(ctx, dir)
	if err != nil {
		s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, fmt.Errorf("analyze: %w", err))
		return
	}
	result.Name = analysis.Repo
	result.FullName = analysis.Owner + "/" + analysis.Repo
	result.DefaultBranch = branch
	if info.FullName != "" {
		result.Name = info.Name
		result.FullName = info.FullName
		if result.DefaultBranch == "" {
			result.DefaultBranch = info.DefaultBranch
		}
	}

	assessment := risk.Assess(result)

	completedAt := time.Now().UTC()
	if err := s.Repo.Update(ctx, analysisID, StatusCompleted, &result, &assessment, nil, nil, &completedAt); err != nil {
		s.failAnalysis(ctx, analysisID, analysis.Owner+"/"+analysis.Repo, fmt.Errorf("store result: %w", err))
		return
	}

	completed, err := s.Repo.GetByID(ctx, analysisID)
	if err == nil {
		s.cache.put(cacheKey(analysis.Owner, analysis.Repo, analysis.Branch), completed)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(completedAt.Sub(startedAt).Milliseconds()))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"repo":              analysis.Owner + "/" + analysis.Repo,
		"analysis_id":       analysis.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"risk_score":        assessment.Score,
		"risk_level":        string(assessment.Level),
		"duration_ms":       completedAt.Sub(startedAt).Milliseconds(),
	})
}

func (s *Service) failAnalysis(ctx context.Context, analysisID, repo string, cause error) {
	msg := cause.Error()
	completedAt := time.Now().UTC()
	if err := s.Repo.Update(context.WithoutCancel(ctx), analysisID, StatusFailed, nil, nil, &msg, nil, &completedAt); err != nil {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysisID,
			"error":       err.Error(),
		})
	}
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"repo":              repo,
		"analysis_id":       analysisID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error":             msg,
	})
}
