package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"migration-backend/internal/shared/telemetry"
)

// Service runs license and vulnerability scans via the fossa CLI, falling
// back to a simulated report when the CLI is not installed.
type Service struct {
	// APIKey authorizes CLI runs; without it only simulation is possible.
	APIKey string
	// ProjectLocator identifies the project on the scan dashboard.
	ProjectLocator string

	// run and lookPath are swapped out in tests.
	run      func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
	lookPath func(name string) (string, error)
}

// NewService constructs a Service.
func NewService(apiKey, projectLocator string) *Service {
	return &Service{
		APIKey:         apiKey,
		ProjectLocator: projectLocator,
		run:            runCommand,
		lookPath:       exec.LookPath,
	}
}

// testOutput is the JSON shape emitted by "fossa test --json".
type testOutput struct {
	Status       string `json:"status"`
	Dependencies []struct {
		License string `json:"license"`
	} `json:"dependencies"`
	Vulnerabilities []struct {
		Severity string `json:"severity"`
	} `json:"vulnerabilities"`
}

// Analyze scans the project at projectPath. CLI failures surface as errors;
// a missing CLI or API key degrades to the simulated report.
func (s *Service) Analyze(ctx context.Context, projectPath string) (Report, error) {
	if s.APIKey == "" {
		return Simulate(projectPath), nil
	}
	if _, err := s.lookPath("fossa"); err != nil {
		telemetry.Info("scan.simulated", map[string]any{
			"path":   projectPath,
			"reason": "fossa cli not found",
		})
		return Simulate(projectPath), nil
	}

	if _, err := s.run(ctx, projectPath, "fossa", "analyze"); err != nil {
		return Report{}, fmt.Errorf("fossa analyze: %w", err)
	}
	raw, err := s.run(ctx, projectPath, "fossa", "test", "--json")
	if err != nil {
		return Report{}, fmt.Errorf("fossa test: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Report{}, fmt.Errorf("fossa test: empty output")
	}

	var parsed testOutput
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Report{}, fmt.Errorf("fossa test output: %w", err)
	}

	report := s.buildReport(parsed)
	return report, nil
}

func (s *Service) buildReport(parsed testOutput) Report {
	report := Report{
		ComplianceStatus:  parsed.Status,
		Licenses:          map[string]int{},
		TotalDependencies: len(parsed.Dependencies),
		AnalysisURL:       s.DashboardURL(),
	}
	if report.ComplianceStatus == "" {
		report.ComplianceStatus = StatusUnknown
	}

	for _, dep := range parsed.Dependencies {
		license := dep.License
		if license == "" {
			license = "UNKNOWN"
		}
		report.Licenses[license]++
	}

	for _, vuln := range parsed.Vulnerabilities {
		switch vuln.Severity {
		case "critical", "CRITICAL":
			report.Vulnerabilities.Critical++
		case "high", "HIGH":
			report.Vulnerabilities.High++
		case "medium", "MEDIUM":
			report.Vulnerabilities.Medium++
		default:
			report.Vulnerabilities.Low++
		}
	}
	return report
}

// DashboardURL builds the scan dashboard link for the configured project.
func (s *Service) DashboardURL() string {
	if s.ProjectLocator == "" {
		return ""
	}
	return "https://app.fossa.com/projects/" + s.ProjectLocator + "/overview"
}

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
