package migration

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"migration-backend/internal/shared/telemetry"
)

// Config controls a migration run.
type Config struct {
	SourceVersion int  `json:"sourceVersion"`
	TargetVersion int  `json:"targetVersion"`
	DryRun        bool `json:"dryRun"`
}

// FileChange lists the transformations applied to one file.
type FileChange struct {
	File    string   `json:"file"`
	Changes []Change `json:"changes"`
}

// Result summarizes a migration run over a project tree.
type Result struct {
	SourceVersion int          `json:"sourceVersion"`
	TargetVersion int          `json:"targetVersion"`
	DryRun        bool         `json:"dryRun"`
	FilesScanned  int          `json:"filesScanned"`
	FilesModified int          `json:"filesModified"`
	TotalFixes    int          `json:"totalFixes"`
	Files         []FileChange `json:"files"`
}

// Service applies Java version migrations to checked-out project trees.
type Service struct{}

// Run walks the project at root and applies (or, with DryRun, only reports)
// the transformations for cfg. Build files and Java sources are covered;
// everything else is left alone.
func (s *Service) Run(ctx context.Context, root string, cfg Config) (Result, error) {
	if cfg.TargetVersion <= 0 {
		return Result{}, fmt.Errorf("target version %d is not valid", cfg.TargetVersion)
	}
	if cfg.SourceVersion <= 0 {
		cfg.SourceVersion = 8
	}

	result := Result{
		SourceVersion: cfg.SourceVersion,
		TargetVersion: cfg.TargetVersion,
		DryRun:        cfg.DryRun,
		Files:         []FileChange{},
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		isJava := strings.HasSuffix(name, ".java")
		isPOM := name == "pom.xml"
		if !isJava && !isPOM {
			return nil
		}
		result.FilesScanned++

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(raw)

		var migrated string
		var changes []Change
		if isPOM {
			updated, changed := UpdateMavenPOM(content, cfg.TargetVersion)
			migrated = updated
			if changed {
				changes = []Change{{Description: fmt.Sprintf("Set Java %d compiler level", cfg.TargetVersion), Count: 1}}
			}
		} else {
			migrated, changes = MigrateJavaSource(content, cfg.SourceVersion, cfg.TargetVersion)
			var logChanges []Change
			migrated, logChanges = MigrateLogging(migrated)
			changes = append(changes, logChanges...)
			if isTestSource(root, path) {
				var testChanges []Change
				migrated, testChanges = MigrateTestSource(migrated)
				changes = append(changes, testChanges...)
			}
		}

		if len(changes) == 0 {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		result.FilesModified++
		for _, c := range changes {
			result.TotalFixes += c.Count
		}
		result.Files = append(result.Files, FileChange{File: filepath.ToSlash(rel), Changes: changes})

		if cfg.DryRun {
			return nil
		}
		return os.WriteFile(path, []byte(migrated), 0o644)
	})
	if err != nil {
		return Result{}, err
	}

	telemetry.Info("migration.run", map[string]any{
		"source_version": cfg.SourceVersion,
		"target_version": cfg.TargetVersion,
		"dry_run":        cfg.DryRun,
		"files_modified": result.FilesModified,
		"total_fixes":    result.TotalFixes,
	})
	return result, nil
}

func isTestSource(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return strings.Contains(rel, "src/test/") || strings.HasSuffix(strings.TrimSuffix(filepath.Base(rel), ".java"), "Test")
}
