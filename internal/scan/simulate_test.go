package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSimulateEmptyProject(t *testing.T) {
	got := Simulate(t.TempDir())

	if got.ComplianceStatus != StatusNotAvailable {
		t.Errorf("status = %q, want %q", got.ComplianceStatus, StatusNotAvailable)
	}
	if got.TotalDependencies != 0 {
		t.Errorf("total = %d, want 0", got.TotalDependencies)
	}
	if !got.Simulated {
		t.Error("report should be marked simulated")
	}
}

func TestSimulateMavenProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pom.xml", `<project><dependencies>
<dependency><groupId>a</groupId></dependency>
<dependency><groupId>b</groupId></dependency>
<dependency><groupId>c</groupId></dependency>
</dependencies></project>`)

	got := Simulate(dir)
	if got.TotalDependencies != 3 {
		t.Fatalf("total = %d, want 3", got.TotalDependencies)
	}
	if got.ComplianceStatus != StatusPassed {
		t.Errorf("status = %q, want %q", got.ComplianceStatus, StatusPassed)
	}
	if got.Licenses["UNKNOWN"] != 3 {
		t.Errorf("licenses = %v", got.Licenses)
	}
	if got.Vulnerabilities != (VulnerabilityCounts{}) {
		t.Errorf("small project should have no simulated findings: %+v", got.Vulnerabilities)
	}
}

func TestSimulateGradleProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "build.gradle", `plugins {
    id 'java'
}
dependencies {
    implementation 'a:b:1'
    testImplementation 'c:d:2'
    runtimeOnly 'e:f:3'
    constraints {
        implementation 'g:h:4'
    }
}
implementation 'outside:block:9'
`)

	got := Simulate(dir)
	if got.TotalDependencies != 4 {
		t.Fatalf("total = %d, want 4 (declarations outside the block are ignored)", got.TotalDependencies)
	}
}

func TestSimulateLargeProjectFlagsFindings(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("<project><dependencies>")
	for i := 0; i < 12; i++ {
		b.WriteString("<dependency><groupId>x</groupId></dependency>")
	}
	b.WriteString("</dependencies></project>")
	writeFile(t, dir, "pom.xml", b.String())

	got := Simulate(dir)
	want := VulnerabilityCounts{High: 1, Medium: 2}
	if got.Vulnerabilities != want {
		t.Fatalf("vulnerabilities = %+v, want %+v", got.Vulnerabilities, want)
	}
}
