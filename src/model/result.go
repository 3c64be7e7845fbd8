package model

// ErrorKind classifies per-file analysis failures
type ErrorKind string

const (
	ErrorFileUnreadable      ErrorKind = "file_unreadable"
	ErrorParseDegraded       ErrorKind = "parse_degraded"
	ErrorRuleInternalFailure ErrorKind = "rule_internal_failure"
)

// FileError records a non-fatal failure for one (file, error) pair.
// RuleID is set only for rule_internal_failure.
type FileError struct {
	FilePath string    `json:"file_path"`
	Kind     ErrorKind `json:"kind"`
	RuleID   string    `json:"rule_id,omitempty"`
	Message  string    `json:"message"`
}

// AnalysisResult holds all issues found in a single file
type AnalysisResult struct {
	File      *SourceFile `json:"-"`
	FilePath  string      `json:"file_path"`
	LineCount int         `json:"line_count"`
	Issues    []Issue     `json:"issues"`
}

// FileHotspot represents a file ranked by issue count
type FileHotspot struct {
	FilePath   string `json:"file_path"`
	IssueCount int    `json:"issue_count"`
}

// ProjectResult aggregates all per-file results of one analysis run
type ProjectResult struct {
	Results     []AnalysisResult `json:"results"`
	Errors      []FileError      `json:"errors,omitempty"`
	FileCount   int              `json:"file_count"`
	TotalLines  int              `json:"total_lines"`
	TotalIssues int              `json:"total_issues"`
	BySeverity  map[Severity]int `json:"by_severity"`
	ByCategory  map[Category]int `json:"by_category"`
}

// AllIssues returns every issue across all files in file order
func (p *ProjectResult) AllIssues() []Issue {
	issues := make([]Issue, 0, p.TotalIssues)
	for _, r := range p.Results {
		issues = append(issues, r.Issues...)
	}
	return issues
}

// Hotspots returns the topN files with the most issues, ordered worst first.
// Ties break on path so the ranking is deterministic.
func (p *ProjectResult) Hotspots(topN int) []FileHotspot {
	hotspots := make([]FileHotspot, 0, len(p.Results))
	for _, r := range p.Results {
		if len(r.Issues) == 0 {
			continue
		}
		hotspots = append(hotspots, FileHotspot{FilePath: r.FilePath, IssueCount: len(r.Issues)})
	}

	for i := 0; i < len(hotspots); i++ {
		for j := i + 1; j < len(hotspots); j++ {
			a, b := hotspots[i], hotspots[j]
			if b.IssueCount > a.IssueCount || (b.IssueCount == a.IssueCount && b.FilePath < a.FilePath) {
				hotspots[i], hotspots[j] = hotspots[j], hotspots[i]
			}
		}
	}

	if topN < len(hotspots) {
		hotspots = hotspots[:topN]
	}
	return hotspots
}
