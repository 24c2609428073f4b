package risk

import (
	"fmt"
	"strconv"
	"strings"

	"migration-backend/internal/analyzer"
)

// Level is the coarse migration risk classification.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Factor is one surfaced risk signal with its severity.
type Factor struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// DependencyStats are display-oriented counts derived from the dependency set.
type DependencyStats struct {
	Total      int `json:"total"`
	Outdated   int `json:"outdated"`
	Upgradable int `json:"upgradable"`
	Current    int `json:"current"`
}

// Assessment is the result of scoring one repository analysis snapshot.
type Assessment struct {
	Score           int             `json:"score"`
	Level           Level           `json:"level"`
	Factors         []Factor        `json:"factors"`
	Recommendations []string        `json:"recommendations"`
	Stats           DependencyStats `json:"dependencyStats"`
}

// Assess computes a migration risk assessment from a repository analysis.
// It is a pure function: no I/O, no shared state, identical input yields
// identical output. Absent or malformed fields score as the weakest signal
// instead of failing.
func Assess(a analyzer.RepositoryAnalysis) Assessment {
	score := 0

	buildTool := strings.TrimSpace(a.BuildTool)
	switch buildTool {
	case "":
		score += 2
	case "maven", "gradle":
		// recognized, no penalty
	default:
		score++
	}

	javaMajor, javaKnown := parseJavaMajor(a.JavaVersion)
	switch {
	case !javaKnown || javaMajor < 8:
		score += 3
	case javaMajor < 11:
		score += 2
	default:
		score++
	}

	stats := dependencyStats(a.Dependencies)
	ratio := 0.0
	if stats.Total > 0 {
		ratio = float64(stats.Outdated) / float64(stats.Total)
	}
	switch {
	case ratio > 0.5:
		score += 3
	case ratio > 0.3:
		score += 2
	case ratio > 0:
		score++
	}

	if !a.HasTests {
		score += 2
	}
	if !a.Structure.HasPomXML && !a.Structure.HasBuildGradle {
		score += 3
	}
	if !a.Structure.HasSrcMain {
		score += 2
	}
	if !a.Structure.HasSrcTest {
		score++
	}

	level := levelFor(score)

	return Assessment{
		Score:           score,
		Level:           level,
		Factors:         buildFactors(buildTool, javaKnown, javaMajor, ratio, a.HasTests, stats),
		Recommendations: buildRecommendations(level),
		Stats:           stats,
	}
}

func levelFor(score int) Level {
	switch {
	case score >= 8:
		return LevelHigh
	case score >= 5:
		return LevelMedium
	default:
		return LevelLow
	}
}

// buildFactors surfaces the curated subset of scoring signals shown to users,
// in fixed evaluation order. Structure-derived rules contribute to the score
// but are intentionally not listed here.
func buildFactors(buildTool string, javaKnown bool, javaMajor int, ratio float64, hasTests bool, stats DependencyStats) []Factor {
	factors := []Factor{}

	if buildTool == "" {
		factors = append(factors, Factor{
			Severity:    "high",
			Description: "No recognized build tool detected",
		})
	}
	if !javaKnown || javaMajor < 8 {
		factors = append(factors, Factor{
			Severity:    "high",
			Description: "Java version is below 8 or could not be determined",
		})
	}
	if ratio > 0.5 {
		factors = append(factors, Factor{
			Severity:    "high",
			Description: fmt.Sprintf("More than half of dependencies are outdated (%d of %d)", stats.Outdated, stats.Total),
		})
	}
	if !hasTests {
		factors = append(factors, Factor{
			Severity:    "medium",
			Description: "No test sources detected",
		})
	}
	if ratio > 0 && ratio <= 0.5 {
		factors = append(factors, Factor{
			Severity:    "low",
			Description: fmt.Sprintf("Some dependencies need upgrades (%d of %d)", stats.Outdated, stats.Total),
		})
	}

	return factors
}

// buildRecommendations returns exactly four entries: one level advisory
// followed by three fixed items.
func buildRecommendations(level Level) []string {
	var lead string
	switch level {
	case LevelHigh:
		lead = "High migration risk: review all flagged factors and plan a staged rollout before proceeding."
	case LevelMedium:
		lead = "Moderate migration risk: proceed with caution and validate each change."
	default:
		lead = "Low migration risk: safe to proceed with standard review."
	}
	return []string{
		lead,
		"Review recommended dependency version changes before applying them.",
		"Ensure adequate test coverage before and after migration.",
		"Consider running a code-quality scan to catch regressions early.",
	}
}

func dependencyStats(dependencies []analyzer.DependencyInfo) DependencyStats {
	stats := DependencyStats{Total: len(dependencies)}
	for _, dep := range dependencies {
		if isOutdated(dep) {
			stats.Outdated++
		}
		if dep.NewVersion != "" && dep.NewVersion != dep.CurrentVersion {
			stats.Upgradable++
		}
	}
	stats.Current = stats.Total - stats.Outdated
	return stats
}

// isOutdated implements the derived staleness predicate: an explicit status
// tag, or a suggested version different from the current one.
func isOutdated(dep analyzer.DependencyInfo) bool {
	switch dep.Status {
	case "outdated", "needs_upgrade":
		return true
	}
	return dep.NewVersion != "" && dep.NewVersion != dep.CurrentVersion
}

// parseJavaMajor extracts the major Java version from strings like "8",
// "11", "17" or the legacy "1.8" scheme. Unparseable input reports unknown,
// which callers score as the oldest possible version.
func parseJavaMajor(raw string) (int, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, false
	}
	if rest, ok := strings.CutPrefix(v, "1."); ok {
		v = rest
	}
	if dot := strings.IndexByte(v, '.'); dot >= 0 {
		v = v[:dot]
	}
	major, err := strconv.Atoi(v)
	if err != nil || major <= 0 {
		return 0, false
	}
	return major, true
}
