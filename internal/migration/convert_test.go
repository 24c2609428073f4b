package migration

import (
	"strings"
	"testing"
)

func TestMigrateJavaSourceDeprecatedAPIs(t *testing.T) {
	src := `public class Box {
    Integer a = new Integer(5);
    Integer b = new Integer(6);
    Object o = clazz.newInstance();
    long now = new Date().getTime();
}`

	got, changes := MigrateJavaSource(src, 8, 11)

	if strings.Contains(got, "new Integer(") {
		t.Error("Integer constructor not replaced")
	}
	if !strings.Contains(got, "Integer.valueOf(5)") || !strings.Contains(got, "Integer.valueOf(6)") {
		t.Errorf("output:\n%s", got)
	}
	if !strings.Contains(got, ".getDeclaredConstructor().newInstance()") {
		t.Error("newInstance not upgraded")
	}
	if !strings.Contains(got, "System.currentTimeMillis()") {
		t.Error("Date().getTime() not upgraded")
	}

	byDesc := map[string]int{}
	for _, c := range changes {
		byDesc[c.Description] = c.Count
	}
	if byDesc["Deprecated Integer constructor"] != 2 {
		t.Errorf("changes = %+v", changes)
	}
}

func TestMigrateJavaSourceVersionGating(t *testing.T) {
	src := `import javax.servlet.http.HttpServlet;
class A {
    boolean empty = s.trim().isEmpty();
    List<String> xs = Collections.unmodifiableList(Arrays.asList(a, b));
}`

	// Target 8: none of the gated upgrades apply.
	got, changes := MigrateJavaSource(src, 7, 8)
	if got != src || len(changes) != 0 {
		t.Fatalf("target 8 should not change anything: %+v", changes)
	}

	// Target 11: collections and string upgrades, but javax stays.
	got, _ = MigrateJavaSource(src, 8, 11)
	if !strings.Contains(got, "List.of(a, b)") {
		t.Errorf("List.of missing:\n%s", got)
	}
	if !strings.Contains(got, ".isBlank()") {
		t.Errorf("isBlank missing:\n%s", got)
	}
	if !strings.Contains(got, "import javax.servlet.") {
		t.Error("javax import should survive target 11")
	}

	// Target 17: jakarta rename applies.
	got, _ = MigrateJavaSource(src, 8, 17)
	if !strings.Contains(got, "import jakarta.servlet.http.HttpServlet;") {
		t.Errorf("jakarta rename missing:\n%s", got)
	}
}

func TestMigrateTestSource(t *testing.T) {
	src := `import org.junit.Test;
import org.junit.Before;
import static org.junit.Assert.assertEquals;

public class CalcTest {
    @Before
    public void setUp() {}

    @Test
    public void adds() {
        assertEquals(2, calc.add(1, 1));
    }
}`

	got, changes := MigrateTestSource(src)

	for _, want := range []string{
		"import org.junit.jupiter.api.Test;",
		"import org.junit.jupiter.api.BeforeEach;",
		"import static org.junit.jupiter.api.Assertions.assertEquals;",
		"@BeforeEach",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "org.junit.Assert") {
		t.Error("JUnit 4 assert import should be gone")
	}
	if len(changes) == 0 {
		t.Error("expected recorded changes")
	}
}

func TestUpdateMavenPOMReplacesVersions(t *testing.T) {
	pom := `<project>
  <properties>
    <java.version>8</java.version>
    <maven.compiler.source>1.8</maven.compiler.source>
    <maven.compiler.target>1.8</maven.compiler.target>
    <spring-boot.version>2.7.18</spring-boot.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>javax.servlet</groupId>
      <artifactId>javax.servlet-api</artifactId>
    </dependency>
  </dependencies>
</project>`

	got, changed := UpdateMavenPOM(pom, 17)
	if !changed {
		t.Fatal("expected change")
	}
	for _, want := range []string{
		"<java.version>17</java.version>",
		"<maven.compiler.source>17</maven.compiler.source>",
		"<maven.compiler.target>17</maven.compiler.target>",
		"<spring-boot.version>3.2.0</spring-boot.version>",
		"<groupId>jakarta.servlet</groupId>",
		"<artifactId>jakarta.servlet-api</artifactId>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestUpdateMavenPOMInsertsProperties(t *testing.T) {
	pom := `<project>
  <modelVersion>4.0.0</modelVersion>
  <artifactId>app</artifactId>
</project>`

	got, changed := UpdateMavenPOM(pom, 11)
	if !changed {
		t.Fatal("expected change")
	}
	if !strings.Contains(got, "<java.version>11</java.version>") {
		t.Errorf("properties not inserted:\n%s", got)
	}
	idx := strings.Index(got, "</modelVersion>")
	if idx < 0 || strings.Index(got, "<properties>") < idx {
		t.Errorf("properties should follow modelVersion:\n%s", got)
	}
}

func TestUpdateMavenPOMNoChange(t *testing.T) {
	pom := `<project>
  <properties>
    <java.version>21</java.version>
  </properties>
</project>`

	if _, changed := UpdateMavenPOM(pom, 21); changed {
		t.Fatal("identical version should not report a change")
	}
}

func TestMigrateLogging(t *testing.T) {
	src := `import org.apache.log4j.Logger;

public class OrderService {
    private static final Logger log = Logger.getLogger(OrderService.class);
}
`
	got, changes := MigrateLogging(src)
	if !strings.Contains(got, "import org.slf4j.Logger;") {
		t.Errorf("missing slf4j Logger import:\n%s", got)
	}
	if !strings.Contains(got, "import org.slf4j.LoggerFactory;") {
		t.Errorf("missing LoggerFactory import:\n%s", got)
	}
	if !strings.Contains(got, "LoggerFactory.getLogger(OrderService.class)") {
		t.Errorf("getLogger call not rewritten:\n%s", got)
	}
	if strings.Contains(got, "org.apache.log4j") {
		t.Errorf("log4j import survived:\n%s", got)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
}

func TestMigrateLoggingNoOp(t *testing.T) {
	src := "import org.slf4j.Logger;\n"
	got, changes := MigrateLogging(src)
	if got != src {
		t.Errorf("content changed unexpectedly:\n%s", got)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes, got %d", len(changes))
	}
}
