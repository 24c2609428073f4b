package sonar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Report summarizes code quality measures for a project.
type Report struct {
	QualityGate     string  `json:"qualityGate"`
	Bugs            int     `json:"bugs"`
	Vulnerabilities int     `json:"vulnerabilities"`
	CodeSmells      int     `json:"codeSmells"`
	Coverage        float64 `json:"coverage"`
	Duplications    float64 `json:"duplications"`
	AnalysisURL     string  `json:"analysisUrl,omitempty"`
	Simulated       bool    `json:"simulated"`
}

const measureKeys = "bugs,vulnerabilities,code_smells,coverage,duplicated_lines_density"

// Service reads quality measures from a SonarQube or SonarCloud server.
type Service struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewService constructs a Service. baseURL defaults to SonarCloud.
func NewService(baseURL, token string) *Service {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "https://sonarcloud.io"
	}
	return &Service{
		BaseURL:    base,
		Token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ProjectQuality fetches measures and the quality gate for a project key.
// SonarCloud project keys rarely match the GitHub owner/repo form exactly, so
// several derived candidates are tried before giving up.
func (s *Service) ProjectQuality(ctx context.Context, projectKey string) (Report, error) {
	for _, candidate := range candidateKeys(projectKey) {
		measures, ok, err := s.fetchMeasures(ctx, candidate)
		if err != nil {
			return Report{}, err
		}
		if !ok {
			continue
		}

		report := Report{
			QualityGate:     s.qualityGate(ctx, candidate),
			Bugs:            toInt(measures["bugs"]),
			Vulnerabilities: toInt(measures["vulnerabilities"]),
			CodeSmells:      toInt(measures["code_smells"]),
			Coverage:        toFloat(measures["coverage"]),
			Duplications:    toFloat(measures["duplicated_lines_density"]),
			AnalysisURL:     s.BaseURL + "/dashboard?id=" + url.QueryEscape(candidate),
		}
		return report, nil
	}
	return Report{}, fmt.Errorf("no quality data for project %q", projectKey)
}

// candidateKeys derives the project key variants commonly used on SonarCloud
// for a GitHub repository, in preference order.
func candidateKeys(projectKey string) []string {
	candidates := []string{projectKey}
	if owner, repo, found := strings.Cut(projectKey, "/"); found {
		candidates = append(candidates, owner+":"+repo, owner+"_"+repo, owner+"-"+repo, repo)
	} else if owner, repo, found := strings.Cut(projectKey, ":"); found {
		candidates = append(candidates, owner+"/"+repo, owner+"_"+repo, owner+"-"+repo, repo)
	}

	seen := map[string]bool{}
	uniq := candidates[:0]
	for _, c := range candidates {
		if c != "" && !seen[c] {
			seen[c] = true
			uniq = append(uniq, c)
		}
	}
	return uniq
}

type measuresResponse struct {
	Component *struct {
		Measures []struct {
			Metric string `json:"metric"`
			Value  string `json:"value"`
		} `json:"measures"`
	} `json:"component"`
}

func (s *Service) fetchMeasures(ctx context.Context, component string) (map[string]string, bool, error) {
	query := url.Values{
		"component":  {component},
		"metricKeys": {measureKeys},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/measures/component?"+query.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	if s.Token != "" {
		req.SetBasicAuth(s.Token, "")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Unknown component; let the caller try the next candidate key.
		return nil, false, nil
	}

	var parsed measuresResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, err
	}
	if parsed.Component == nil {
		return nil, false, nil
	}

	measures := map[string]string{}
	for _, m := range parsed.Component.Measures {
		measures[m.Metric] = m.Value
	}
	return measures, true, nil
}

func (s *Service) qualityGate(ctx context.Context, projectKey string) string {
	query := url.Values{"projectKey": {projectKey}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/qualitygates/project_status?"+query.Encode(), nil)
	if err != nil {
		return "N/A"
	}
	if s.Token != "" {
		req.SetBasicAuth(s.Token, "")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "N/A"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "N/A"
	}

	var parsed struct {
		ProjectStatus struct {
			Status string `json:"status"`
		} `json:"projectStatus"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "N/A"
	}
	if parsed.ProjectStatus.Status == "" {
		return "NONE"
	}
	return parsed.ProjectStatus.Status
}

// SimulatedReport fabricates plausible quality numbers from a Java file
// count, for demos and for servers without the project registered.
func SimulatedReport(javaFiles int) Report {
	if javaFiles < 10 {
		javaFiles = 10
	}

	coverage := 85.0 - float64(javaFiles-10)*0.6
	if coverage < 20 {
		coverage = 20
	}
	if coverage > 95 {
		coverage = 95
	}

	duplications := 5.0 - float64(javaFiles)*0.05
	if duplications < 0 {
		duplications = 0
	}

	return Report{
		QualityGate:     "Passed",
		Bugs:            nonNegative(javaFiles/5 - 2),
		Vulnerabilities: nonNegative(javaFiles/10 - 1),
		CodeSmells:      javaFiles * 2,
		Coverage:        round1(coverage),
		Duplications:    round1(duplications),
		Simulated:       true,
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func toInt(v string) int {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func toFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
