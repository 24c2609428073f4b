package deps

import "testing"

func TestLookupLegacyLog4j(t *testing.T) {
	update := Lookup("log4j:log4j", "1.2.17")
	if update.Status != StatusCritical {
		t.Fatalf("expected CRITICAL, got %s", update.Status)
	}
	if update.TargetVersion != "2.17.1" {
		t.Fatalf("expected target 2.17.1, got %s", update.TargetVersion)
	}
	if !update.NeedsUpdate || !update.CodeChangesNeeded {
		t.Fatalf("expected update with code changes, got %+v", update)
	}
}

func TestLookupModernLog4jNotFlagged(t *testing.T) {
	update := Lookup("org.apache.logging.log4j:log4j-core", "2.17.1")
	if update.Status == StatusCritical {
		t.Fatalf("log4j 2.x should not be flagged CRITICAL, got %+v", update)
	}
}

func TestLookupSpringBoot(t *testing.T) {
	tests := []struct {
		name    string
		version string
		status  string
		target  string
	}{
		{"spring boot 2", "2.7.4", StatusHigh, "3.3.0"},
		{"spring boot 3 behind", "3.1.0", StatusMedium, "3.3.0"},
		{"spring boot 3 current", "3.3.0", StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			update := Lookup("org.springframework.boot:spring-boot-starter-web", tc.version)
			if update.Status != tc.status {
				t.Fatalf("expected status %s, got %s", tc.status, update.Status)
			}
			if tc.target != "" && update.TargetVersion != tc.target {
				t.Fatalf("expected target %s, got %s", tc.target, update.TargetVersion)
			}
		})
	}
}

func TestLookupNamespaces(t *testing.T) {
	if update := Lookup("javax.servlet:servlet-api", "2.5"); update.Status != StatusHigh {
		t.Fatalf("javax should be HIGH, got %s", update.Status)
	}
	if update := Lookup("jakarta.servlet:jakarta.servlet-api", "6.0.0"); update.Status != StatusOK {
		t.Fatalf("jakarta should be OK, got %s", update.Status)
	}
}

func TestLookupJUnit4(t *testing.T) {
	update := Lookup("junit:junit", "4.12")
	if update.Status != StatusHigh {
		t.Fatalf("expected HIGH, got %s", update.Status)
	}
	if update.TargetLibrary != "org.junit.jupiter:junit-jupiter" {
		t.Fatalf("expected jupiter target library, got %s", update.TargetLibrary)
	}
}

func TestLookupUnknownIsOK(t *testing.T) {
	update := Lookup("com.example:widget", "1.0.0")
	if update.Status != StatusOK || update.NeedsUpdate {
		t.Fatalf("unknown coordinate should be OK, got %+v", update)
	}
}

func TestJavaVersionUpdate(t *testing.T) {
	tests := []struct {
		current  string
		target   string
		severity string
		needs    bool
	}{
		{"8", "21", StatusHigh, true},
		{"11", "21", StatusHigh, true},
		{"17", "21", StatusMedium, true},
		{"21", "21", StatusOK, false},
		{"14", "21", StatusMedium, true},
	}
	for _, tc := range tests {
		rec := JavaVersionUpdate(tc.current)
		if rec.Target != tc.target || rec.Severity != tc.severity || rec.NeedsUpdate != tc.needs {
			t.Fatalf("java %s: got %+v", tc.current, rec)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2", "1.2.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"3.1.0", "3.3.0", -1},
		{"garbage", "1.0.0", 0},
		{"5.9.3.RELEASE", "5.9.3", 0},
	}
	for _, tc := range tests {
		if got := CompareVersions(tc.v1, tc.v2); got != tc.want {
			t.Fatalf("CompareVersions(%q, %q) = %d, want %d", tc.v1, tc.v2, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	coords := []Coordinate{
		{GroupID: "log4j", ArtifactID: "log4j", Version: "1.2.17"},
		{GroupID: "junit", ArtifactID: "junit", Version: "4.12"},
		{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-web", Version: "3.1.0"},
		{GroupID: "com.example", ArtifactID: "widget", Version: "1.0.0"},
	}
	summary := Summarize(coords)

	if summary.TotalDependencies != 4 {
		t.Fatalf("expected 4 total, got %d", summary.TotalDependencies)
	}
	if len(summary.CriticalIssues) != 1 || !summary.HasCritical {
		t.Fatalf("expected 1 critical issue, got %+v", summary.CriticalIssues)
	}
	if len(summary.HighIssues) != 1 || !summary.HasHigh {
		t.Fatalf("expected 1 high issue, got %+v", summary.HighIssues)
	}
	if len(summary.MediumIssues) != 1 {
		t.Fatalf("expected 1 medium issue, got %+v", summary.MediumIssues)
	}
	if len(summary.OKDependencies) != 1 {
		t.Fatalf("expected 1 ok dependency, got %+v", summary.OKDependencies)
	}
	// 3h critical + 2h high + 1h medium
	if summary.EstimatedMigrationHours != 6 {
		t.Fatalf("expected 6 estimated hours, got %v", summary.EstimatedMigrationHours)
	}
	// 10 + 5 + 2
	if summary.TotalSeverityScore != 17 {
		t.Fatalf("expected severity score 17, got %d", summary.TotalSeverityScore)
	}
}

func TestVulnerabilityTables(t *testing.T) {
	if VulnerabilitySeverity("log4j-core") != StatusCritical {
		t.Fatal("log4j-core should be CRITICAL")
	}
	if VulnerabilitySeverity("some-artifact") != StatusLow {
		t.Fatal("unknown artifact should be LOW")
	}
	if KnownIssue("log4j") == KnownIssue("some-artifact") {
		t.Fatal("log4j should carry a specific advisory description")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDependencies != 0 || summary.TotalSeverityScore != 0 {
		t.Fatalf("empty input should yield zero summary, got %+v", summary)
	}
}
