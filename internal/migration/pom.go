package migration

import (
	"fmt"
	"regexp"
	"strings"
)

var pomVersionRes = []*regexp.Regexp{
	regexp.MustCompile(`<maven\.compiler\.source>[^<]+</maven\.compiler\.source>`),
	regexp.MustCompile(`<maven\.compiler\.target>[^<]+</maven\.compiler\.target>`),
	regexp.MustCompile(`<java\.version>[^<]+</java\.version>`),
	regexp.MustCompile(`<source>1\.\d+</source>`),
	regexp.MustCompile(`<target>1\.\d+</target>`),
	regexp.MustCompile(`<source>\d+</source>`),
	regexp.MustCompile(`<target>\d+</target>`),
	regexp.MustCompile(`<release>\d+</release>`),
}

var pomVersionTags = []string{
	"<maven.compiler.source>%d</maven.compiler.source>",
	"<maven.compiler.target>%d</maven.compiler.target>",
	"<java.version>%d</java.version>",
	"<source>%d</source>",
	"<target>%d</target>",
	"<source>%d</source>",
	"<target>%d</target>",
	"<release>%d</release>",
}

var springBootVersionRe = regexp.MustCompile(`(<spring-boot\.version>)2\.[0-9]+\.[0-9]+(?:\.RELEASE)?(</spring-boot\.version>)`)

// Dependency coordinates renamed in the javax to jakarta move.
var jakartaCoordinates = [][2]string{
	{"javax.servlet:javax.servlet-api", "jakarta.servlet:jakarta.servlet-api"},
	{"javax.persistence:javax.persistence-api", "jakarta.persistence:jakarta.persistence-api"},
	{"javax.validation:validation-api", "jakarta.validation:jakarta.validation-api"},
	{"javax.annotation:javax.annotation-api", "jakarta.annotation:jakarta.annotation-api"},
}

// UpdateMavenPOM rewrites the compiler level in a pom.xml to targetVersion.
// When no version declaration exists, a properties section is inserted. For
// Java 17+ the Spring Boot 2.x version property and javax coordinates are
// upgraded as well. Returns the new content and whether anything changed.
func UpdateMavenPOM(content string, targetVersion int) (string, bool) {
	original := content

	for i, re := range pomVersionRes {
		content = re.ReplaceAllString(content, fmt.Sprintf(pomVersionTags[i], targetVersion))
	}

	if content == original &&
		!strings.Contains(content, "<maven.compiler.source>") &&
		!strings.Contains(content, "<java.version>") {
		properties := fmt.Sprintf(`    <properties>
        <java.version>%d</java.version>
        <maven.compiler.source>%d</maven.compiler.source>
        <maven.compiler.target>%d</maven.compiler.target>
        <project.build.sourceEncoding>UTF-8</project.build.sourceEncoding>
    </properties>
`, targetVersion, targetVersion, targetVersion)
		switch {
		case strings.Contains(content, "</modelVersion>"):
			content = strings.Replace(content, "</modelVersion>", "</modelVersion>\n"+properties, 1)
		case strings.Contains(content, "</project>"):
			content = strings.Replace(content, "</project>", properties+"</project>", 1)
		}
	}

	if targetVersion >= 17 {
		content = springBootVersionRe.ReplaceAllString(content, "${1}3.2.0${2}")
		content = migrateJakartaCoordinates(content)
	}

	return content, content != original
}

func migrateJakartaCoordinates(content string) string {
	for _, pair := range jakartaCoordinates {
		oldGroup, oldArtifact, _ := strings.Cut(pair[0], ":")
		newGroup, newArtifact, _ := strings.Cut(pair[1], ":")
		content = strings.ReplaceAll(content,
			"<groupId>"+oldGroup+"</groupId>",
			"<groupId>"+newGroup+"</groupId>")
		content = strings.ReplaceAll(content,
			"<artifactId>"+oldArtifact+"</artifactId>",
			"<artifactId>"+newArtifact+"</artifactId>")
	}
	return content
}
