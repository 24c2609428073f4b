package analyzer

import (
	"os"
	"regexp"
	"sort"
	"strings"
)

const (
	maxBusinessFiles  = 50
	maxBusinessIssues = 20
)

type businessPattern struct {
	name       string
	re         *regexp.Regexp
	severity   string
	suggestion string
}

var businessPatterns = []businessPattern{
	{
		name:       "string_comparison",
		re:         regexp.MustCompile(`(\w+)\s*==\s*"([^"]+)"`),
		severity:   "HIGH",
		suggestion: "Use .equals() or .equalsIgnoreCase() instead of == for string comparison",
	},
	{
		name:       "try_catch_all",
		re:         regexp.MustCompile(`catch\s*\(\s*Exception\s+\w+\s*\)`),
		severity:   "HIGH",
		suggestion: "Catch specific exceptions instead of generic Exception",
	},
	{
		name:       "empty_catch",
		re:         regexp.MustCompile(`catch\s*\([^)]+\)\s*\{\s*\}`),
		severity:   "HIGH",
		suggestion: "Never use empty catch blocks. Log or handle the exception",
	},
	{
		name:       "null_checks",
		re:         regexp.MustCompile(`if\s*\(\s*\w+\s*==\s*null\s*\)`),
		severity:   "MEDIUM",
		suggestion: "Use Objects.requireNonNull() or Optional for null safety",
	},
	{
		name:       "hardcoded_values",
		re:         regexp.MustCompile(`(?:private|public|protected)?\s+(?:static)?\s+(?:final)?\s+(?:String|int|long|double)\s+\w+\s*=\s*["']?[A-Z0-9_]+["']?;`),
		severity:   "MEDIUM",
		suggestion: "Move hardcoded values to configuration files or constants",
	},
	{
		name:       "missing_serialversionuid",
		re:         regexp.MustCompile(`class\s+\w+\s+implements\s+Serializable`),
		severity:   "LOW",
		suggestion: "Add serialVersionUID to Serializable classes",
	},
}

var severityOrder = map[string]int{"HIGH": 0, "MEDIUM": 1, "LOW": 2}

// scanBusinessIssues flags risky patterns in Java sources. The scan is capped
// to keep analysis bounded on large repositories; results are ordered most
// severe first and truncated.
func scanBusinessIssues(root string, javaFiles []string) []BusinessIssue {
	issues := []BusinessIssue{}

	files := javaFiles
	if len(files) > maxBusinessFiles {
		files = files[:maxBusinessFiles]
	}

	for _, rel := range files {
		raw, err := os.ReadFile(joinRoot(root, rel))
		if err != nil {
			continue
		}
		content := string(raw)

		for _, pattern := range businessPatterns {
			for _, loc := range pattern.re.FindAllStringIndex(content, -1) {
				match := content[loc[0]:loc[1]]
				if len(match) > 100 {
					match = match[:100]
				}
				issues = append(issues, BusinessIssue{
					Type:       pattern.name,
					File:       rel,
					Line:       strings.Count(content[:loc[0]], "\n") + 1,
					Severity:   pattern.severity,
					Match:      match,
					Suggestion: pattern.suggestion,
				})
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return severityOrder[issues[i].Severity] < severityOrder[issues[j].Severity]
	})
	if len(issues) > maxBusinessIssues {
		issues = issues[:maxBusinessIssues]
	}
	return issues
}
