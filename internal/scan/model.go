package scan

// VulnerabilityCounts buckets findings by severity.
type VulnerabilityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Report is the outcome of a license and vulnerability scan.
type Report struct {
	ComplianceStatus  string              `json:"complianceStatus"`
	Licenses          map[string]int      `json:"licenses"`
	Vulnerabilities   VulnerabilityCounts `json:"vulnerabilities"`
	TotalDependencies int                 `json:"totalDependencies"`
	AnalysisURL       string              `json:"analysisUrl,omitempty"`
	Simulated         bool                `json:"simulated"`
}

// Compliance status values reported by the policy check.
const (
	StatusPassed       = "PASSED"
	StatusNotAvailable = "N/A"
	StatusUnknown      = "UNKNOWN"
)
