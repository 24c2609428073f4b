package analyzer

// buildSummary condenses the full analysis into headline numbers, including
// the 0-100 health score used by dashboards.
func buildSummary(a *RepositoryAnalysis) Summary {
	outdated := 0
	vulnerable := 0
	for _, dep := range a.Dependencies {
		if dep.Status == "outdated" || dep.Status == "needs_upgrade" {
			outdated++
		}
		if dep.Severity == "CRITICAL" || dep.Severity == "HIGH" {
			vulnerable++
		}
	}

	highPriority := 0
	for _, issue := range a.BusinessIssues {
		if issue.Severity == "HIGH" {
			highPriority++
		}
	}

	return Summary{
		TotalDependencies:        len(a.Dependencies),
		OutdatedDependencies:     outdated,
		VulnerableDependencies:   vulnerable,
		BusinessLogicIssues:      len(a.BusinessIssues),
		HighPriorityIssues:       highPriority,
		TestCoveragePercentage:   a.Testing.CoveragePercentage,
		TestFiles:                a.Testing.TestFilesFound,
		TestFrameworks:           a.Testing.TestFrameworks,
		JavaFiles:                len(a.JavaFiles),
		RefactoringOpportunities: len(a.Refactoring.Issues),
		OverallHealthScore:       healthScore(outdated, vulnerable, highPriority, a.Testing.CoveragePercentage, len(a.Refactoring.Issues)),
	}
}

// healthScore starts from 100 and deducts per finding class, floored at 0.
func healthScore(outdated, vulnerable, highPriorityIssues, coveragePct, refactoringIssues int) int {
	score := 100

	if vulnerable > 0 {
		score -= capAt(vulnerable*5, 20)
	}
	if outdated > 5 {
		score -= 10
	}

	score -= capAt(highPriorityIssues*3, 20)

	switch {
	case coveragePct < 50:
		score -= 20
	case coveragePct < 80:
		score -= 10
	}

	score -= capAt(refactoringIssues, 10)

	if score < 0 {
		score = 0
	}
	return score
}

func capAt(value, max int) int {
	if value > max {
		return max
	}
	return value
}
