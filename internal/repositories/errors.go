package repositories

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyAnalyzed = errors.New("analysis already in progress")
)
