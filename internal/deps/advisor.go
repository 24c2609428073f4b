package deps

import (
	"strconv"
	"strings"
)

// Update statuses, ordered from most to least urgent.
const (
	StatusCritical = "CRITICAL"
	StatusHigh     = "HIGH"
	StatusMedium   = "MEDIUM"
	StatusLow      = "LOW"
	StatusOK       = "OK"
)

// Update describes the recommended upgrade path for a single dependency.
type Update struct {
	LibraryKey        string `json:"libraryKey"`
	CurrentVersion    string `json:"currentVersion"`
	TargetVersion     string `json:"targetVersion,omitempty"`
	TargetLibrary     string `json:"targetLibrary,omitempty"`
	Status            string `json:"status"`
	Reason            string `json:"reason"`
	NeedsUpdate       bool   `json:"needsUpdate"`
	CodeChangesNeeded bool   `json:"codeChangesNeeded"`
	EstimatedImpact   string `json:"estimatedImpact"`
	MigrationGuide    string `json:"migrationGuide,omitempty"`
}

// Lookup returns the upgrade recommendation for a dependency identified by its
// Maven coordinate ("group:artifact") and current version. Unknown coordinates
// yield an OK result rather than an error.
func Lookup(coordinate, currentVersion string) Update {
	lower := strings.ToLower(coordinate)

	if isLegacyLog4j(coordinate, lower) && strings.HasPrefix(currentVersion, "1.") {
		return Update{
			LibraryKey:        "log4j",
			CurrentVersion:    currentVersion,
			TargetVersion:     "2.17.1",
			TargetLibrary:     "org.apache.logging.log4j:log4j-core",
			Status:            StatusCritical,
			Reason:            "EOL since 2012, multiple known CVEs",
			NeedsUpdate:       true,
			CodeChangesNeeded: true,
			EstimatedImpact:   StatusHigh,
			MigrationGuide:    "Complete logging framework replacement required",
		}
	}

	if strings.Contains(lower, "spring-boot") {
		switch {
		case strings.HasPrefix(currentVersion, "2."):
			return Update{
				LibraryKey:        "springframework.boot",
				CurrentVersion:    currentVersion,
				TargetVersion:     "3.3.0",
				Status:            StatusHigh,
				Reason:            "Spring Boot 3 requires Java 17+, jakarta namespace mandatory",
				NeedsUpdate:       true,
				CodeChangesNeeded: true,
				EstimatedImpact:   StatusHigh,
				MigrationGuide:    "Update to Spring Boot 3.3.0, requires jakarta namespace",
			}
		case strings.HasPrefix(currentVersion, "3.") && CompareVersions(currentVersion, "3.3.0") < 0:
			return Update{
				LibraryKey:      "springframework.boot",
				CurrentVersion:  currentVersion,
				TargetVersion:   "3.3.0",
				Status:          StatusMedium,
				Reason:          "Minor version update available",
				NeedsUpdate:     true,
				EstimatedImpact: StatusLow,
				MigrationGuide:  "Update to latest Spring Boot 3.x",
			}
		}
	}

	if strings.Contains(lower, "javax") && !strings.Contains(lower, "jakarta") {
		return Update{
			LibraryKey:        "javax",
			CurrentVersion:    currentVersion,
			TargetVersion:     "Latest jakarta.*",
			Status:            StatusHigh,
			Reason:            "javax namespace is deprecated, jakarta is the standard for Java EE",
			NeedsUpdate:       true,
			CodeChangesNeeded: true,
			EstimatedImpact:   StatusHigh,
			MigrationGuide:    "Replace javax.* with jakarta.* equivalents",
		}
	}

	if coordinate == "junit:junit" || (strings.HasPrefix(lower, "junit") && strings.HasPrefix(currentVersion, "4.")) {
		return Update{
			LibraryKey:        "junit",
			CurrentVersion:    currentVersion,
			TargetVersion:     "5.9.3",
			TargetLibrary:     "org.junit.jupiter:junit-jupiter",
			Status:            StatusHigh,
			Reason:            "JUnit 4 is legacy (EOL 2014), JUnit 5 is modern standard",
			NeedsUpdate:       true,
			CodeChangesNeeded: true,
			EstimatedImpact:   StatusMedium,
			MigrationGuide:    "Update to JUnit 5, change annotations and assertions",
		}
	}

	if strings.Contains(lower, "jakarta") {
		return Update{
			LibraryKey:      "jakarta",
			CurrentVersion:  currentVersion,
			TargetVersion:   currentVersion,
			Status:          StatusOK,
			Reason:          "Jakarta namespace is current standard",
			EstimatedImpact: StatusLow,
		}
	}

	return Update{
		LibraryKey:      coordinate,
		CurrentVersion:  currentVersion,
		Status:          StatusOK,
		Reason:          "No specific update recommendation",
		EstimatedImpact: StatusLow,
	}
}

func isLegacyLog4j(coordinate, lower string) bool {
	if !strings.Contains(lower, "log4j") || !strings.Contains(coordinate, ":") {
		return false
	}
	group, artifact, _ := strings.Cut(coordinate, ":")
	return coordinate == "log4j:log4j" || (strings.HasSuffix(group, "log4j") && artifact == "log4j")
}

// VersionUpdate describes a Java runtime upgrade recommendation.
type VersionUpdate struct {
	Current     string `json:"current"`
	Target      string `json:"target"`
	Severity    string `json:"severity"`
	Reason      string `json:"reason"`
	NeedsUpdate bool   `json:"needsUpdate"`
}

var javaVersionRecommendations = map[string]VersionUpdate{
	"8":  {Target: "21", Severity: StatusHigh, Reason: "Java 8 EOL March 2022, Java 21 is LTS"},
	"11": {Target: "21", Severity: StatusHigh, Reason: "Java 11 EOL Jan 2026, Java 21 is LTS"},
	"17": {Target: "21", Severity: StatusMedium, Reason: "Java 21 is latest LTS with performance improvements"},
	"21": {Target: "21", Severity: StatusOK, Reason: "Already on latest LTS version"},
}

// JavaVersionUpdate returns the runtime upgrade recommendation for a Java version.
func JavaVersionUpdate(current string) VersionUpdate {
	if rec, ok := javaVersionRecommendations[current]; ok {
		rec.Current = current
		rec.NeedsUpdate = current != rec.Target
		return rec
	}
	return VersionUpdate{
		Current:     current,
		Target:      "21",
		Severity:    StatusMedium,
		Reason:      "Java 21 is the latest LTS version",
		NeedsUpdate: current != "21",
	}
}

var vulnerableArtifacts = map[string]string{
	"log4j-core":         StatusCritical,
	"log4j":              StatusCritical,
	"struts":             StatusCritical,
	"commons-fileupload": StatusHigh,
	"commons-beanutils":  StatusHigh,
}

// VulnerabilitySeverity reports the known security severity for an artifact.
// Artifacts without a known advisory are LOW.
func VulnerabilitySeverity(artifactID string) string {
	if sev, ok := vulnerableArtifacts[artifactID]; ok {
		return sev
	}
	return StatusLow
}

var knownIssues = map[string]string{
	"log4j":              "CVE-2021-44228 Remote Code Execution vulnerability",
	"commons-fileupload": "Arbitrary file upload vulnerability",
	"struts":             "Remote code execution vulnerability",
	"commons-beanutils":  "Arbitrary code execution via property manipulation",
}

// KnownIssue returns a short description of the known advisory for an artifact.
func KnownIssue(artifactID string) string {
	if issue, ok := knownIssues[artifactID]; ok {
		return issue
	}
	return "Potential security issue detected"
}

// CompareVersions compares two dotted version strings on their first three
// numeric components. Missing components count as zero; unparseable versions
// compare as equal.
func CompareVersions(v1, v2 string) int {
	a, ok1 := versionParts(v1)
	b, ok2 := versionParts(v2)
	if !ok1 || !ok2 {
		return 0
	}
	for i := 0; i < 3; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

func versionParts(v string) ([3]int, bool) {
	var out [3]int
	parts := strings.Split(strings.TrimSpace(v), ".")
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
