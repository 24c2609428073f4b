package analyzer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const defaultMaxFiles = 5000

// Analyzer walks a checked-out repository tree and produces an immutable
// RepositoryAnalysis snapshot.
type Analyzer struct {
	// MaxFiles bounds the tree walk; zero means the default cap.
	MaxFiles int
}

// Analyze inspects the repository rooted at root. It never fails on malformed
// build files; missing signals simply stay absent in the snapshot so the risk
// assessor scores them conservatively.
func (a *Analyzer) Analyze(ctx context.Context, root string) (RepositoryAnalysis, error) {
	analysis := RepositoryAnalysis{
		Dependencies:   []DependencyInfo{},
		JavaFiles:      []string{},
		APIEndpoints:   []Endpoint{},
		BusinessIssues: []BusinessIssue{},
		Languages:      map[string]int{},
	}

	maxFiles := a.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	var pomPath, gradlePath string
	seen := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		seen++
		if seen > maxFiles {
			return filepath.SkipAll
		}

		name := d.Name()
		switch {
		case name == "pom.xml" && pomPath == "":
			pomPath = path
		case (name == "build.gradle" || name == "build.gradle.kts") && gradlePath == "":
			gradlePath = path
		case strings.HasSuffix(name, ".java"):
			analysis.JavaFiles = append(analysis.JavaFiles, filepath.ToSlash(rel))
		}

		if lang, _ := enry.GetLanguageByExtension(name); lang != "" {
			analysis.Languages[lang]++
		}
		return nil
	})
	if err != nil {
		return RepositoryAnalysis{}, err
	}

	if pomPath != "" {
		analysis.Structure.HasPomXML = true
		analysis.BuildTool = "maven"
		pom := parseMavenPOM(pomPath)
		analysis.JavaVersion = pom.javaVersion
		analysis.Dependencies = append(analysis.Dependencies, pom.dependencies...)
		analysis.BuildPlugins = append(analysis.BuildPlugins, pom.plugins...)
	}
	if gradlePath != "" {
		analysis.Structure.HasBuildGradle = true
		if analysis.BuildTool == "" {
			analysis.BuildTool = "gradle"
		}
		gradle := parseGradleBuild(gradlePath)
		if analysis.JavaVersion == "" {
			analysis.JavaVersion = gradle.javaVersion
		}
		analysis.Dependencies = append(analysis.Dependencies, gradle.dependencies...)
		analysis.BuildPlugins = append(analysis.BuildPlugins, gradle.plugins...)
	}

	analysis.Structure.HasSrcMain = dirExists(filepath.Join(root, "src", "main"))
	analysis.Structure.HasSrcTest = dirExists(filepath.Join(root, "src", "test"))

	analysis.APIEndpoints = detectEndpoints(root, analysis.JavaFiles)
	analysis.BusinessIssues = scanBusinessIssues(root, analysis.JavaFiles)
	analysis.Testing = analyzeTesting(root, analysis.JavaFiles)
	analysis.Refactoring = scanRefactoring(root, analysis.JavaFiles)

	analysis.HasTests = analysis.Structure.HasSrcTest || analysis.Testing.TestFilesFound > 0

	analysis.Summary = buildSummary(&analysis)
	return analysis, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func joinRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
