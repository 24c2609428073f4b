package deps

// Coordinate identifies a dependency as declared in a build file.
type Coordinate struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

// Issue is one dependency flagged by the advisor, grouped by severity bucket.
type Issue struct {
	Dependency     string `json:"dependency"`
	Current        string `json:"current"`
	Target         string `json:"target,omitempty"`
	Reason         string `json:"reason"`
	MigrationGuide string `json:"migrationGuide,omitempty"`
}

// Summary aggregates advisor results across a dependency set.
type Summary struct {
	TotalDependencies       int     `json:"totalDependencies"`
	CriticalIssues          []Issue `json:"criticalIssues"`
	HighIssues              []Issue `json:"highIssues"`
	MediumIssues            []Issue `json:"mediumIssues"`
	LowIssues               []Issue `json:"lowIssues"`
	OKDependencies          []Issue `json:"okDependencies"`
	EstimatedMigrationHours float64 `json:"estimatedMigrationHours"`
	TotalSeverityScore      int     `json:"totalSeverityScore"`
	HasCritical             bool    `json:"hasCritical"`
	HasHigh                 bool    `json:"hasHigh"`
}

var severityScores = map[string]int{
	StatusCritical: 10,
	StatusHigh:     5,
	StatusMedium:   2,
	StatusLow:      1,
	StatusOK:       0,
}

// Summarize runs the advisor over every coordinate and buckets the results by
// severity, accumulating an effort estimate and a total severity score.
func Summarize(coords []Coordinate) Summary {
	summary := Summary{
		TotalDependencies: len(coords),
		CriticalIssues:    []Issue{},
		HighIssues:        []Issue{},
		MediumIssues:      []Issue{},
		LowIssues:         []Issue{},
		OKDependencies:    []Issue{},
	}

	for _, coord := range coords {
		update := Lookup(coord.GroupID+":"+coord.ArtifactID, coord.Version)
		issue := Issue{
			Dependency:     coord.GroupID + ":" + coord.ArtifactID,
			Current:        coord.Version,
			Target:         update.TargetVersion,
			Reason:         update.Reason,
			MigrationGuide: update.MigrationGuide,
		}

		switch update.Status {
		case StatusCritical:
			summary.CriticalIssues = append(summary.CriticalIssues, issue)
			summary.HasCritical = true
			summary.EstimatedMigrationHours += 3
		case StatusHigh:
			summary.HighIssues = append(summary.HighIssues, issue)
			summary.HasHigh = true
			summary.EstimatedMigrationHours += 2
		case StatusMedium:
			summary.MediumIssues = append(summary.MediumIssues, issue)
			summary.EstimatedMigrationHours += 1
		case StatusLow:
			summary.LowIssues = append(summary.LowIssues, issue)
			summary.EstimatedMigrationHours += 0.5
		default:
			issue.Target = ""
			issue.MigrationGuide = ""
			summary.OKDependencies = append(summary.OKDependencies, issue)
		}

		summary.TotalSeverityScore += severityScores[update.Status]
	}

	return summary
}
