package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const maxFrameworkFiles = 20

var (
	junitImportRe   = regexp.MustCompile(`import\s+org\.junit`)
	testngImportRe  = regexp.MustCompile(`import\s+org\.testng`)
	mockitoImportRe = regexp.MustCompile(`import\s+org\.mockito`)
)

func isTestFile(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), ".java")
	return strings.HasSuffix(base, "Test") ||
		strings.HasSuffix(base, "Tests") ||
		strings.HasSuffix(base, "TestCase") ||
		strings.HasPrefix(base, "Test")
}

// analyzeTesting estimates testing health from file naming conventions and
// imported frameworks. The coverage number is a file-ratio proxy, not real
// line coverage.
func analyzeTesting(root string, javaFiles []string) TestingReport {
	report := TestingReport{
		TestFrameworks: []string{},
		Issues:         []TestingIssue{},
	}

	testFiles := []string{}
	for _, rel := range javaFiles {
		if isTestFile(rel) {
			testFiles = append(testFiles, rel)
		}
	}
	report.TestFilesFound = len(testFiles)

	frameworks := map[string]bool{}
	scan := testFiles
	if len(scan) > maxFrameworkFiles {
		scan = scan[:maxFrameworkFiles]
	}
	for _, rel := range scan {
		raw, err := os.ReadFile(joinRoot(root, rel))
		if err != nil {
			continue
		}
		if junitImportRe.Match(raw) {
			frameworks["JUnit"] = true
		}
		if testngImportRe.Match(raw) {
			frameworks["TestNG"] = true
		}
		if mockitoImportRe.Match(raw) {
			frameworks["Mockito"] = true
		}
	}
	for name := range frameworks {
		report.TestFrameworks = append(report.TestFrameworks, name)
	}
	sort.Strings(report.TestFrameworks)

	if len(javaFiles) > 0 {
		pct := report.TestFilesFound * 100 / len(javaFiles)
		if pct > 100 {
			pct = 100
		}
		report.CoveragePercentage = pct
	}

	switch {
	case report.TestFilesFound == 0:
		report.Issues = append(report.Issues, TestingIssue{
			Severity:   "CRITICAL",
			Issue:      "No test files found",
			Suggestion: "Add unit tests using JUnit 5 for all public methods",
		})
	case report.CoveragePercentage < 50:
		report.Issues = append(report.Issues, TestingIssue{
			Severity:   "HIGH",
			Issue:      fmt.Sprintf("Low test coverage: %d%%", report.CoveragePercentage),
			Suggestion: "Increase test coverage to at least 80%",
		})
	case report.CoveragePercentage < 80:
		report.Issues = append(report.Issues, TestingIssue{
			Severity:   "MEDIUM",
			Issue:      fmt.Sprintf("Test coverage could be improved: %d%%", report.CoveragePercentage),
			Suggestion: "Aim for at least 80% code coverage",
		})
	}

	if len(frameworks) == 0 {
		report.Issues = append(report.Issues, TestingIssue{
			Severity:   "HIGH",
			Issue:      "No test framework detected",
			Suggestion: "Consider using JUnit 5 (latest) or TestNG for testing",
		})
	}

	return report
}
