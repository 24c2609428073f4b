package analyzer

// Structure records which standard project markers were found in the tree.
type Structure struct {
	HasPomXML      bool `json:"hasPomXml"`
	HasBuildGradle bool `json:"hasBuildGradle"`
	HasSrcMain     bool `json:"hasSrcMain"`
	HasSrcTest     bool `json:"hasSrcTest"`
}

// DependencyInfo is one declared dependency with its upgrade classification.
// Status is "outdated" for dependencies with known critical advisories,
// "needs_upgrade" when a newer target exists, "current" otherwise.
type DependencyInfo struct {
	GroupID        string `json:"groupId"`
	ArtifactID     string `json:"artifactId"`
	CurrentVersion string `json:"currentVersion"`
	NewVersion     string `json:"newVersion,omitempty"`
	Status         string `json:"status"`
	Scope          string `json:"scope,omitempty"`
	Severity       string `json:"severity,omitempty"`
	Issue          string `json:"issue,omitempty"`
}

// Plugin is a build plugin declared in pom.xml or build.gradle.
type Plugin struct {
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`
}

// Endpoint is a detected HTTP endpoint declaration in Java sources.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	File   string `json:"file"`
}

// BusinessIssue is one flagged business-logic pattern in a Java source file.
type BusinessIssue struct {
	Type       string `json:"type"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Severity   string `json:"severity"`
	Match      string `json:"match"`
	Suggestion string `json:"suggestion"`
}

// TestingIssue is a coverage or framework finding.
type TestingIssue struct {
	Severity   string `json:"severity"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// TestingReport summarizes test sources found in the tree.
type TestingReport struct {
	TestFilesFound     int            `json:"testFilesFound"`
	TestFrameworks     []string       `json:"testFrameworks"`
	CoveragePercentage int            `json:"coveragePercentage"`
	Issues             []TestingIssue `json:"issues"`
}

// RefactoringIssue is one refactoring opportunity found in a Java source file.
type RefactoringIssue struct {
	File       string `json:"file"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
	Details    string `json:"details,omitempty"`
}

// RefactoringReport summarizes refactoring opportunities.
type RefactoringReport struct {
	TotalJavaFiles int                `json:"totalJavaFiles"`
	Issues         []RefactoringIssue `json:"issues"`
}

// Summary condenses an analysis into the headline numbers the UI renders.
type Summary struct {
	TotalDependencies        int      `json:"totalDependencies"`
	OutdatedDependencies     int      `json:"outdatedDependencies"`
	VulnerableDependencies   int      `json:"vulnerableDependencies"`
	BusinessLogicIssues      int      `json:"businessLogicIssues"`
	HighPriorityIssues       int      `json:"highPriorityIssues"`
	TestCoveragePercentage   int      `json:"testCoveragePercentage"`
	TestFiles                int      `json:"testFiles"`
	TestFrameworks           []string `json:"testFrameworks"`
	JavaFiles                int      `json:"javaFiles"`
	RefactoringOpportunities int      `json:"refactoringOpportunities"`
	OverallHealthScore       int      `json:"overallHealthScore"`
}

// RepositoryAnalysis is the immutable snapshot produced for one repository.
// It is the input contract of the risk assessor and the payload returned to
// API clients.
type RepositoryAnalysis struct {
	Name           string             `json:"name,omitempty"`
	FullName       string             `json:"fullName,omitempty"`
	DefaultBranch  string             `json:"defaultBranch,omitempty"`
	BuildTool      string             `json:"buildTool,omitempty"`
	JavaVersion    string             `json:"javaVersion,omitempty"`
	HasTests       bool               `json:"hasTests"`
	Structure      Structure          `json:"structure"`
	Dependencies   []DependencyInfo   `json:"dependencies"`
	BuildPlugins   []Plugin           `json:"buildPlugins,omitempty"`
	JavaFiles      []string           `json:"javaFiles"`
	APIEndpoints   []Endpoint         `json:"apiEndpoints"`
	Languages      map[string]int     `json:"languages,omitempty"`
	BusinessIssues []BusinessIssue    `json:"businessLogicIssues"`
	Testing        TestingReport      `json:"testingCoverage"`
	Refactoring    RefactoringReport  `json:"codeRefactoring"`
	Summary        Summary            `json:"summary"`
}
