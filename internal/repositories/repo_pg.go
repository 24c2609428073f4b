package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"migration-backend/internal/analyzer"
	"migration-backend/internal/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO repository_analyses (
	id, repo_url, owner, repo, branch, status, result, risk,
	error_message, started_at, completed_at, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	resultPayload, err := marshalJSONB(analysis.Result)
	if err != nil {
		return err
	}
	riskPayload, err := marshalJSONB(analysis.Risk)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.RepoURL,
		analysis.Owner,
		analysis.Repo,
		analysis.Branch,
		analysis.Status,
		resultPayload,
		riskPayload,
		analysis.ErrorMessage,
		analysis.StartedAt,
		analysis.CompletedAt,
		analysis.CreatedAt,
		analysis.CreatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, repo_url, owner, repo, branch, status, result, risk,
       error_message, started_at, completed_at, created_at, updated_at
FROM repository_analyses`

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+`
WHERE id = $1
LIMIT 1`, analysisID)
	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

// Update sets status, payloads, error and timestamps on an existing analysis.
func (r *PGRepo) Update(ctx context.Context, analysisID, status string, result *analyzer.RepositoryAnalysis, assessment *risk.Assessment, errorMessage *string, startedAt, completedAt *time.Time) error {
	const query = `
UPDATE repository_analyses
SET status = $2,
    result = COALESCE($3, result),
    risk = COALESCE($4, risk),
    error_message = COALESCE($5, error_message),
    started_at = COALESCE($6, started_at),
    completed_at = COALESCE($7, completed_at),
    updated_at = NOW()
WHERE id = $1`
	resultPayload, err := marshalJSONB(result)
	if err != nil {
		return err
	}
	riskPayload, err := marshalJSONB(assessment)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, analysisID, status, resultPayload, riskPayload, errorMessage, startedAt, completedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns analyses newest-first with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, selectColumns+`
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

// LatestForRepo returns the most recent analysis for an owner/repo/branch.
func (r *PGRepo) LatestForRepo(ctx context.Context, owner, repo, branch string) (Analysis, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+`
WHERE owner = $1 AND repo = $2 AND branch = $3
ORDER BY created_at DESC
LIMIT 1`, owner, repo, branch)
	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var branch sql.NullString
	var result sql.NullString
	var riskPayload sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	if err := row.Scan(
		&a.ID, &a.RepoURL, &a.Owner, &a.Repo, &branch, &a.Status, &result, &riskPayload,
		&errorMessage, &startedAt, &completedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return Analysis{}, err
	}

	a.Branch = branch.String
	if result.Valid && result.String != "" {
		var parsed analyzer.RepositoryAnalysis
		if err := json.Unmarshal([]byte(result.String), &parsed); err != nil {
			return Analysis{}, err
		}
		a.Result = &parsed
	}
	if riskPayload.Valid && riskPayload.String != "" {
		var parsed risk.Assessment
		if err := json.Unmarshal([]byte(riskPayload.String), &parsed); err != nil {
			return Analysis{}, err
		}
		a.Risk = &parsed
	}
	if errorMessage.Valid {
		a.ErrorMessage = &errorMessage.String
	}
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}

func marshalJSONB(v any) (any, error) {
	switch payload := v.(type) {
	case *analyzer.RepositoryAnalysis:
		if payload == nil {
			return nil, nil
		}
	case *risk.Assessment:
		if payload == nil {
			return nil, nil
		}
	case nil:
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
