package analyzer

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const maxRefactorFiles = 100

var (
	deprecatedRe   = regexp.MustCompile(`@Deprecated`)
	methodBodyRe   = regexp.MustCompile(`(?s)(?:public|private|protected)\s+(?:static\s+)?\w+\s+\w+\s*\([^)]*\)\s*\{[^}]+\}`)
	publicMethodRe = regexp.MustCompile(`public\s+(?:static\s+)?\w+\s+\w+\s*\(`)
)

// scanRefactoring surfaces structural smells: deprecated API usage, long
// methods and classes with too many public methods.
func scanRefactoring(root string, javaFiles []string) RefactoringReport {
	report := RefactoringReport{
		TotalJavaFiles: len(javaFiles),
		Issues:         []RefactoringIssue{},
	}

	files := javaFiles
	if len(files) > maxRefactorFiles {
		files = files[:maxRefactorFiles]
	}

	for _, rel := range files {
		raw, err := os.ReadFile(joinRoot(root, rel))
		if err != nil {
			continue
		}
		content := string(raw)

		if deprecatedRe.MatchString(content) {
			report.Issues = append(report.Issues, RefactoringIssue{
				File:       rel,
				Type:       "deprecated_apis",
				Severity:   "LOW",
				Suggestion: "Update deprecated API usage to modern alternatives",
			})
		}

		for _, method := range methodBodyRe.FindAllString(content, -1) {
			if strings.Count(method, "\n") > 50 {
				report.Issues = append(report.Issues, RefactoringIssue{
					File:       rel,
					Type:       "long_methods",
					Severity:   "MEDIUM",
					Suggestion: "Break down long methods into smaller, focused methods",
				})
				break
			}
		}

		if count := len(publicMethodRe.FindAllString(content, -1)); count > 20 {
			report.Issues = append(report.Issues, RefactoringIssue{
				File:       rel,
				Type:       "god_classes",
				Severity:   "HIGH",
				Suggestion: "Split God classes into smaller, single-responsibility classes",
				Details:    fmt.Sprintf("%d public methods detected", count),
			})
		}
	}

	return report
}
