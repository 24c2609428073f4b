package migration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
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

func TestRunRewritesProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pom.xml": "<project><properties><java.version>8</java.version></properties></project>",
		"src/main/java/App.java": `import javax.servlet.ServletContext;
class App { Integer x = new Integer(1); }`,
		"src/test/java/AppTest.java": `import org.junit.Test;
class AppTest {}`,
		"README.md": "not touched",
	})

	var svc Service
	result, err := svc.Run(context.Background(), root, Config{SourceVersion: 8, TargetVersion: 17})
	if err != nil {
		t.Fatal(err)
	}

	if result.FilesScanned != 3 {
		t.Errorf("scanned = %d, want 3", result.FilesScanned)
	}
	if result.FilesModified != 3 {
		t.Errorf("modified = %d, want 3: %+v", result.FilesModified, result.Files)
	}

	app, err := os.ReadFile(filepath.Join(root, "src", "main", "java", "App.java"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(app), "import jakarta.servlet.ServletContext;") {
		t.Errorf("App.java:\n%s", app)
	}
	if !strings.Contains(string(app), "Integer.valueOf(1)") {
		t.Errorf("App.java:\n%s", app)
	}

	test, err := os.ReadFile(filepath.Join(root, "src", "test", "java", "AppTest.java"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(test), "org.junit.jupiter.api.Test") {
		t.Errorf("AppTest.java:\n%s", test)
	}

	pom, err := os.ReadFile(filepath.Join(root, "pom.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pom), "<java.version>17</java.version>") {
		t.Errorf("pom.xml:\n%s", pom)
	}
}

func TestRunDryRunLeavesFilesAlone(t *testing.T) {
	root := t.TempDir()
	src := "class App { Integer x = new Integer(1); }"
	writeTree(t, root, map[string]string{"src/main/java/App.java": src})

	var svc Service
	result, err := svc.Run(context.Background(), root, Config{TargetVersion: 17, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesModified != 1 || result.TotalFixes == 0 {
		t.Fatalf("result = %+v", result)
	}

	raw, err := os.ReadFile(filepath.Join(root, "src", "main", "java", "App.java"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != src {
		t.Fatal("dry run must not rewrite files")
	}
}

func TestRunRejectsMissingTarget(t *testing.T) {
	var svc Service
	if _, err := svc.Run(context.Background(), t.TempDir(), Config{}); err == nil {
		t.Fatal("expected error without target version")
	}
}
