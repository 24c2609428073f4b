package analyzer

import (
	"encoding/xml"
	"os"
	"regexp"
	"strings"

	"migration-backend/internal/deps"
)

type pomProject struct {
	XMLName      xml.Name      `xml:"project"`
	Properties   pomProperties `xml:"properties"`
	Dependencies struct {
		Dependency []pomDependency `xml:"dependency"`
	} `xml:"dependencies"`
	Build struct {
		Plugins struct {
			Plugin []pomPlugin `xml:"plugin"`
		} `xml:"plugins"`
	} `xml:"build"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

type pomPlugin struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// pomProperties collects arbitrary <properties> children into a map.
type pomProperties struct {
	values map[string]string
}

func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.values = map[string]string{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &el); err != nil {
				return err
			}
			p.values[el.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

type mavenResult struct {
	found        bool
	javaVersion  string
	dependencies []DependencyInfo
	plugins      []Plugin
}

var compilerLevelRe = regexp.MustCompile(`<(?:source|target)>\s*([0-9][0-9.]*)\s*</(?:source|target)>`)

// parseMavenPOM reads a pom.xml and extracts the Java compiler level,
// declared dependencies and build plugins. Parse failures degrade to an
// empty result; the caller treats missing data as the weakest signal.
func parseMavenPOM(path string) mavenResult {
	result := mavenResult{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return result
	}
	result.found = true

	var project pomProject
	if err := xml.Unmarshal(raw, &project); err != nil {
		return result
	}

	result.javaVersion = javaVersionFromProperties(project.Properties.values)
	if result.javaVersion == "" {
		// Compiler plugin configuration keeps the level outside <properties>.
		if m := compilerLevelRe.FindSubmatch(raw); m != nil {
			result.javaVersion = string(m[1])
		}
	}

	for _, dep := range project.Dependencies.Dependency {
		version := strings.TrimSpace(dep.Version)
		if version == "" {
			version = "UNKNOWN"
		}
		scope := strings.TrimSpace(dep.Scope)
		if scope == "" {
			scope = "compile"
		}
		result.dependencies = append(result.dependencies, classifyDependency(DependencyInfo{
			GroupID:        strings.TrimSpace(dep.GroupID),
			ArtifactID:     strings.TrimSpace(dep.ArtifactID),
			CurrentVersion: version,
			Scope:          scope,
		}))
	}

	for _, plugin := range project.Build.Plugins.Plugin {
		result.plugins = append(result.plugins, Plugin{
			GroupID:    strings.TrimSpace(plugin.GroupID),
			ArtifactID: strings.TrimSpace(plugin.ArtifactID),
			Version:    strings.TrimSpace(plugin.Version),
		})
	}

	return result
}

func javaVersionFromProperties(props map[string]string) string {
	for _, key := range []string{"maven.compiler.target", "maven.compiler.source", "maven.compiler.release", "java.version"} {
		if v := props[key]; v != "" {
			return v
		}
	}
	for key, v := range props {
		lower := strings.ToLower(key)
		if v != "" && (strings.Contains(lower, "java") && strings.Contains(lower, "version")) {
			return v
		}
	}
	return ""
}

// classifyDependency fills the upgrade classification fields from the advisor.
func classifyDependency(dep DependencyInfo) DependencyInfo {
	update := deps.Lookup(dep.GroupID+":"+dep.ArtifactID, dep.CurrentVersion)
	switch {
	case update.Status == deps.StatusCritical:
		dep.Status = "outdated"
	case update.NeedsUpdate:
		dep.Status = "needs_upgrade"
	default:
		dep.Status = "current"
	}
	if update.NeedsUpdate && update.TargetVersion != "" && update.TargetVersion != dep.CurrentVersion {
		dep.NewVersion = update.TargetVersion
	}
	dep.Severity = deps.VulnerabilitySeverity(dep.ArtifactID)
	if dep.Severity == deps.StatusCritical || dep.Severity == deps.StatusHigh {
		dep.Issue = deps.KnownIssue(dep.ArtifactID)
	}
	return dep
}
