package migration

import (
	"fmt"
	"regexp"
	"strings"
)

// Change records one transformation applied to a file.
type Change struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type replacement struct {
	old  string
	new  string
	desc string
}

// Wrapper constructors and reflection calls deprecated since Java 9.
var deprecatedAPIs = []replacement{
	{"new Integer(", "Integer.valueOf(", "Deprecated Integer constructor"},
	{"new Long(", "Long.valueOf(", "Deprecated Long constructor"},
	{"new Double(", "Double.valueOf(", "Deprecated Double constructor"},
	{"new Float(", "Float.valueOf(", "Deprecated Float constructor"},
	{"new Boolean(", "Boolean.valueOf(", "Deprecated Boolean constructor"},
	{"new Byte(", "Byte.valueOf(", "Deprecated Byte constructor"},
	{"new Short(", "Short.valueOf(", "Deprecated Short constructor"},
	{"new Character(", "Character.valueOf(", "Deprecated Character constructor"},
	{".newInstance()", ".getDeclaredConstructor().newInstance()", "Deprecated Class.newInstance()"},
	{"new Date().getTime()", "System.currentTimeMillis()", "Use System.currentTimeMillis()"},
}

// javax packages renamed to jakarta with Java EE 9; applies from Java 17 on.
var jakartaImports = []string{
	"servlet", "persistence", "validation", "annotation", "inject",
	"enterprise", "ws.rs", "json", "mail", "transaction",
}

var (
	unmodifiableListRe = regexp.MustCompile(`Collections\.unmodifiableList\(Arrays\.asList\(([^)]+)\)\)`)
	trimIsEmptyRe      = regexp.MustCompile(`\.trim\(\)\.isEmpty\(\)`)
	readAllBytesRe     = regexp.MustCompile(`new String\(Files\.readAllBytes\(([^)]+)\)\)`)
)

// MigrateJavaSource rewrites one Java source file for the target version.
// Transformations are version-gated: only upgrades available at the target
// level are applied.
func MigrateJavaSource(content string, sourceVersion, targetVersion int) (string, []Change) {
	changes := []Change{}

	for _, r := range deprecatedAPIs {
		if count := strings.Count(content, r.old); count > 0 {
			content = strings.ReplaceAll(content, r.old, r.new)
			changes = append(changes, Change{Description: r.desc, Count: count})
		}
	}

	if targetVersion >= 9 {
		if matches := unmodifiableListRe.FindAllString(content, -1); len(matches) > 0 {
			content = unmodifiableListRe.ReplaceAllString(content, "List.of($1)")
			changes = append(changes, Change{Description: "Use List.of()", Count: len(matches)})
		}
	}

	if targetVersion >= 11 {
		if matches := trimIsEmptyRe.FindAllString(content, -1); len(matches) > 0 {
			content = trimIsEmptyRe.ReplaceAllString(content, ".isBlank()")
			changes = append(changes, Change{Description: "Use String.isBlank()", Count: len(matches)})
		}
		if matches := readAllBytesRe.FindAllString(content, -1); len(matches) > 0 {
			content = readAllBytesRe.ReplaceAllString(content, "Files.readString($1)")
			changes = append(changes, Change{Description: "Use Files.readString()", Count: len(matches)})
		}
	}

	if targetVersion >= 17 {
		for _, pkg := range jakartaImports {
			old := "import javax." + pkg + "."
			if count := strings.Count(content, old); count > 0 {
				content = strings.ReplaceAll(content, old, "import jakarta."+pkg+".")
				changes = append(changes, Change{
					Description: fmt.Sprintf("javax.%s → jakarta.%s", pkg, pkg),
					Count:       count,
				})
			}
		}
	}

	return content, changes
}

var slf4jMigrations = []replacement{
	{"import org.apache.log4j.Logger;", "import org.slf4j.Logger;\nimport org.slf4j.LoggerFactory;", "Log4j Logger import"},
	{"Logger.getLogger(", "LoggerFactory.getLogger(", "Log4j Logger.getLogger()"},
}

// MigrateLogging rewrites Log4j 1.x logger usage to SLF4J.
func MigrateLogging(content string) (string, []Change) {
	changes := []Change{}
	for _, r := range slf4jMigrations {
		if count := strings.Count(content, r.old); count > 0 {
			content = strings.ReplaceAll(content, r.old, r.new)
			changes = append(changes, Change{Description: r.desc, Count: count})
		}
	}
	return content, changes
}

var junit4Migrations = []replacement{
	{"import org.junit.Test;", "import org.junit.jupiter.api.Test;", "JUnit 4 Test import"},
	{"import org.junit.Before;", "import org.junit.jupiter.api.BeforeEach;", "JUnit 4 Before import"},
	{"import org.junit.After;", "import org.junit.jupiter.api.AfterEach;", "JUnit 4 After import"},
	{"import org.junit.BeforeClass;", "import org.junit.jupiter.api.BeforeAll;", "JUnit 4 BeforeClass import"},
	{"import org.junit.AfterClass;", "import org.junit.jupiter.api.AfterAll;", "JUnit 4 AfterClass import"},
	{"import org.junit.Ignore;", "import org.junit.jupiter.api.Disabled;", "JUnit 4 Ignore import"},
	{"import static org.junit.Assert.", "import static org.junit.jupiter.api.Assertions.", "JUnit 4 Assert import"},
	{"@Before\n", "@BeforeEach\n", "JUnit 4 @Before"},
	{"@After\n", "@AfterEach\n", "JUnit 4 @After"},
	{"@BeforeClass\n", "@BeforeAll\n", "JUnit 4 @BeforeClass"},
	{"@AfterClass\n", "@AfterAll\n", "JUnit 4 @AfterClass"},
	{"@Ignore\n", "@Disabled\n", "JUnit 4 @Ignore"},
}

// MigrateTestSource upgrades JUnit 4 constructs to JUnit 5 equivalents.
func MigrateTestSource(content string) (string, []Change) {
	changes := []Change{}
	for _, r := range junit4Migrations {
		if count := strings.Count(content, r.old); count > 0 {
			content = strings.ReplaceAll(content, r.old, r.new)
			changes = append(changes, Change{Description: r.desc, Count: count})
		}
	}
	return content, changes
}
