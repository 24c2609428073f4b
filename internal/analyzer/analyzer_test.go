package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

const fixturePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <properties>
    <maven.compiler.target>11</maven.compiler.target>
  </properties>
  <dependencies>
    <dependency>
      <groupId>log4j</groupId>
      <artifactId>log4j</artifactId>
      <version>1.2.17</version>
    </dependency>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
      <version>2.7.0</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13.2</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
  <build>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>3.11.0</version>
      </plugin>
    </plugins>
  </build>
</project>
`

const fixtureController = `package com.example;

import org.springframework.web.bind.annotation.GetMapping;
import org.springframework.web.bind.annotation.RestController;

@RestController
public class UserController {

    @GetMapping("/api/users")
    public String listUsers(String role) {
        if (role == "admin") {
            return "all";
        }
        if (role == null) {
            return "none";
        }
        return "some";
    }
}
`

const fixtureControllerTest = `package com.example;

import org.junit.jupiter.api.Test;

public class UserControllerTest {

    @Test
    public void listsUsers() {
    }
}
`

func TestAnalyzeMavenProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pom.xml": fixturePOM,
		"src/main/java/com/example/UserController.java":    fixtureController,
		"src/test/java/com/example/UserControllerTest.java": fixtureControllerTest,
	})

	var a Analyzer
	got, err := a.Analyze(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	if got.BuildTool != "maven" {
		t.Errorf("buildTool = %q, want maven", got.BuildTool)
	}
	if got.JavaVersion != "11" {
		t.Errorf("javaVersion = %q, want 11", got.JavaVersion)
	}
	if !got.Structure.HasPomXML || got.Structure.HasBuildGradle {
		t.Errorf("structure flags = %+v", got.Structure)
	}
	if !got.Structure.HasSrcMain || !got.Structure.HasSrcTest {
		t.Errorf("src layout flags = %+v", got.Structure)
	}
	if !got.HasTests {
		t.Error("hasTests = false, want true")
	}

	if len(got.Dependencies) != 3 {
		t.Fatalf("dependencies = %d, want 3: %+v", len(got.Dependencies), got.Dependencies)
	}
	byArtifact := map[string]DependencyInfo{}
	for _, dep := range got.Dependencies {
		byArtifact[dep.ArtifactID] = dep
	}
	log4j := byArtifact["log4j"]
	if log4j.Status != "outdated" || log4j.NewVersion != "2.17.1" {
		t.Errorf("log4j classification = %+v", log4j)
	}
	if log4j.Severity != "CRITICAL" || log4j.Issue == "" {
		t.Errorf("log4j vulnerability = %+v", log4j)
	}
	spring := byArtifact["spring-boot-starter-web"]
	if spring.Status != "needs_upgrade" || spring.NewVersion == "" {
		t.Errorf("spring boot classification = %+v", spring)
	}
	junit := byArtifact["junit"]
	if junit.Status != "needs_upgrade" || junit.Scope != "test" {
		t.Errorf("junit classification = %+v", junit)
	}

	if len(got.BuildPlugins) != 1 || got.BuildPlugins[0].ArtifactID != "maven-compiler-plugin" {
		t.Errorf("plugins = %+v", got.BuildPlugins)
	}

	wantEndpoint := Endpoint{Method: "GET", Path: "/api/users", File: "src/main/java/com/example/UserController.java"}
	if len(got.APIEndpoints) != 1 || got.APIEndpoints[0] != wantEndpoint {
		t.Errorf("endpoints = %+v, want [%+v]", got.APIEndpoints, wantEndpoint)
	}

	types := []string{}
	for _, issue := range got.BusinessIssues {
		types = append(types, issue.Type)
	}
	if want := []string{"string_comparison", "null_checks"}; !reflect.DeepEqual(types, want) {
		t.Errorf("business issue types = %v, want %v", types, want)
	}

	if got.Testing.TestFilesFound != 1 {
		t.Errorf("test files = %d, want 1", got.Testing.TestFilesFound)
	}
	if want := []string{"JUnit"}; !reflect.DeepEqual(got.Testing.TestFrameworks, want) {
		t.Errorf("frameworks = %v, want %v", got.Testing.TestFrameworks, want)
	}
	if got.Testing.CoveragePercentage != 50 {
		t.Errorf("coverage = %d, want 50", got.Testing.CoveragePercentage)
	}

	if got.Languages["Java"] < 2 {
		t.Errorf("language counts = %v, want at least 2 Java files", got.Languages)
	}

	if got.Summary.TotalDependencies != 3 || got.Summary.OutdatedDependencies != 3 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if got.Summary.JavaFiles != 2 {
		t.Errorf("summary java files = %d, want 2", got.Summary.JavaFiles)
	}
}

func TestAnalyzeGradleProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"build.gradle": `plugins {
    id 'java'
}
sourceCompatibility = '1.8'
dependencies {
    implementation 'org.apache.commons:commons-lang3:3.12.0'
    testImplementation 'junit:junit:4.13.2'
}
`,
	})

	var a Analyzer
	got, err := a.Analyze(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	if got.BuildTool != "gradle" {
		t.Errorf("buildTool = %q, want gradle", got.BuildTool)
	}
	if got.JavaVersion != "1.8" {
		t.Errorf("javaVersion = %q, want 1.8", got.JavaVersion)
	}
	if !got.Structure.HasBuildGradle || got.Structure.HasPomXML {
		t.Errorf("structure flags = %+v", got.Structure)
	}
	if len(got.Dependencies) != 2 {
		t.Fatalf("dependencies = %+v", got.Dependencies)
	}
	if got.Dependencies[0].GroupID != "org.apache.commons" || got.Dependencies[0].Status != "current" {
		t.Errorf("commons-lang3 = %+v", got.Dependencies[0])
	}
	if got.Dependencies[1].Status != "needs_upgrade" {
		t.Errorf("junit = %+v", got.Dependencies[1])
	}
	if len(got.BuildPlugins) != 1 || got.BuildPlugins[0].ArtifactID != "java" {
		t.Errorf("plugins = %+v", got.BuildPlugins)
	}
}

func TestAnalyzeEmptyTree(t *testing.T) {
	var a Analyzer
	got, err := a.Analyze(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if got.BuildTool != "" || got.JavaVersion != "" {
		t.Errorf("build detection = %q/%q, want empty", got.BuildTool, got.JavaVersion)
	}
	if got.HasTests {
		t.Error("hasTests = true, want false")
	}
	if got.Structure != (Structure{}) {
		t.Errorf("structure = %+v, want zero", got.Structure)
	}
	if len(got.Dependencies) != 0 {
		t.Errorf("dependencies = %+v, want none", got.Dependencies)
	}
	if got.Testing.Issues[0].Severity != "CRITICAL" {
		t.Errorf("testing issues = %+v", got.Testing.Issues)
	}
}

func TestAnalyzeSkipsGitDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/objects/Fake.java": "class Fake {}",
		"src/main/java/App.java": "public class App {}",
	})

	var a Analyzer
	got, err := a.Analyze(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.JavaFiles) != 1 || got.JavaFiles[0] != "src/main/java/App.java" {
		t.Errorf("javaFiles = %v", got.JavaFiles)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"pom.xml": fixturePOM})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var a Analyzer
	if _, err := a.Analyze(ctx, root); err == nil {
		t.Fatal("expected context error")
	}
}

func TestIsTestFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"src/test/java/FooTest.java", true},
		{"src/test/java/FooTests.java", true},
		{"src/test/java/FooTestCase.java", true},
		{"src/test/java/TestFoo.java", true},
		{"src/main/java/Foo.java", false},
		{"src/main/java/Testimonial.java", true}, // prefix match is intentionally loose
	}
	for _, tc := range cases {
		if got := isTestFile(tc.name); got != tc.want {
			t.Errorf("isTestFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
