package analyzer

import (
	"os"
	"regexp"
	"strings"
)

var (
	gradleJavaRe   = regexp.MustCompile(`(?:sourceCompatibility|targetCompatibility)\s*=?\s*["']?(?:JavaVersion\.VERSION_)?([0-9_][0-9_.]*)["']?`)
	gradleDepRe    = regexp.MustCompile(`(?:implementation|api|testImplementation|testApi|compileOnly|runtimeOnly)\s*\(?\s*["']([^"']+)["']`)
	gradlePluginRe = regexp.MustCompile(`id\s*\(?\s*["']([^"']+)["']`)
)

type gradleResult struct {
	found        bool
	javaVersion  string
	dependencies []DependencyInfo
	plugins      []Plugin
}

// parseGradleBuild extracts the Java level, dependency coordinates and plugin
// ids from a Groovy or Kotlin build script with line-oriented matching.
func parseGradleBuild(path string) gradleResult {
	result := gradleResult{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return result
	}
	result.found = true
	content := string(raw)

	if m := gradleJavaRe.FindStringSubmatch(content); m != nil {
		result.javaVersion = strings.ReplaceAll(m[1], "_", ".")
	}

	for _, m := range gradleDepRe.FindAllStringSubmatch(content, -1) {
		parts := strings.Split(m[1], ":")
		if len(parts) < 3 {
			continue
		}
		result.dependencies = append(result.dependencies, classifyDependency(DependencyInfo{
			GroupID:        parts[0],
			ArtifactID:     parts[1],
			CurrentVersion: parts[2],
			Scope:          "compile",
		}))
	}

	for _, m := range gradlePluginRe.FindAllStringSubmatch(content, -1) {
		result.plugins = append(result.plugins, Plugin{ArtifactID: m[1]})
	}

	return result
}
