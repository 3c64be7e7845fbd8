package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
	"garbage-hunter/src/util"
)

// Report bundles everything the generators render
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Project     *model.ProjectResult `json:"project"`
	Score       *model.ScoreReport   `json:"score"`
	Hotspots    []model.FileHotspot  `json:"hotspots,omitempty"`
}

// Generator generates reports in various formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(report *Report, format string) (string, error) {
	util.Debug("Generating %s report (%d issues)", format, report.Project.TotalIssues)
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "sarif":
		return g.generateSARIF(report)
	case "console", "table":
		return g.generateConsole(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(report *Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Code Quality Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Overall Score:** %.1f/100 (%s)\n", report.Score.OverallScore, report.Score.QualityLevel))
	sb.WriteString(fmt.Sprintf("- **Files:** %d, **Lines:** %d\n", report.Score.FileCount, report.Score.TotalLines))
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d (%.1f per 1000 lines)\n", report.Score.TotalIssues, report.Score.IssueDensity))
	sb.WriteString(fmt.Sprintf("- **Audit:** `%s`\n\n", report.Score.Expression))

	sb.WriteString("### Scores by Category\n\n")
	sb.WriteString("| Category | Score | Issues |\n")
	sb.WriteString("|----------|-------|--------|\n")
	for _, cat := range model.AllCategories() {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %d |\n",
			cat, report.Score.CategoryScores[cat], report.Project.ByCategory[cat]))
	}
	sb.WriteString("\n")

	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| nuclear | %d |\n", report.Score.Distribution.Nuclear))
	sb.WriteString(fmt.Sprintf("| spicy | %d |\n", report.Score.Distribution.Spicy))
	sb.WriteString(fmt.Sprintf("| mild | %d |\n\n", report.Score.Distribution.Mild))

	if len(report.Hotspots) > 0 {
		sb.WriteString("### Hotspot Files\n\n")
		sb.WriteString("| File | Issue Count |\n")
		sb.WriteString("|------|-------------|\n")
		for _, hs := range report.Hotspots {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", hs.FilePath, hs.IssueCount))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Issues\n\n")
	issues := g.limitIssues(report.Project.AllIssues())
	byCategory := make(map[model.Category][]model.Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range model.AllCategories() {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("### %s (%d issues)\n\n", cat, len(catIssues)))
		for _, issue := range catIssues {
			sb.WriteString(fmt.Sprintf("- %s `%s:%d:%d` **%s**: %s\n",
				severityTag(issue.Severity), issue.FilePath, issue.Line, issue.Column,
				issue.RuleID, Describe(issue)))
		}
		sb.WriteString("\n")
	}

	if len(report.Project.Errors) > 0 {
		sb.WriteString("## Analysis Errors\n\n")
		for _, e := range report.Project.Errors {
			sb.WriteString(fmt.Sprintf("- `%s`: %s (%s)\n", e.FilePath, e.Message, e.Kind))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (g *Generator) generateSARIF(report *Report) (string, error) {
	issues := report.Project.AllIssues()
	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":           "garbage-hunter",
						"version":        "1.0.0",
						"informationUri": "https://github.com/example/garbage-hunter",
						"rules":          buildSARIFRules(issues),
					},
				},
				"results": buildSARIFResults(issues),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func buildSARIFRules(issues []model.Issue) []map[string]any {
	seen := make(map[string]bool)
	rules := []map[string]any{}

	for _, issue := range issues {
		if seen[issue.RuleID] {
			continue
		}
		seen[issue.RuleID] = true

		rules = append(rules, map[string]any{
			"id":   issue.RuleID,
			"name": issue.RuleID,
			"shortDescription": map[string]any{
				"text": Describe(issue),
			},
			"defaultConfiguration": map[string]any{
				"level": sarifLevel(issue.Severity),
			},
		})
	}

	return rules
}

func buildSARIFResults(issues []model.Issue) []map[string]any {
	results := []map[string]any{}

	for _, issue := range issues {
		results = append(results, map[string]any{
			"ruleId":  issue.RuleID,
			"level":   sarifLevel(issue.Severity),
			"message": map[string]any{"text": Describe(issue)},
			"locations": []map[string]any{
				{
					"physicalLocation": map[string]any{
						"artifactLocation": map[string]any{
							"uri": issue.FilePath,
						},
						"region": map[string]any{
							"startLine":   issue.Line,
							"startColumn": issue.Column,
						},
					},
				},
			},
		})
	}

	return results
}

func (g *Generator) generateConsole(report *Report) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall score: %.1f/100 (%s)\n", report.Score.OverallScore, report.Score.QualityLevel))
	sb.WriteString(fmt.Sprintf("%d issues in %d files, %d lines (%.1f per 1000 lines)\n\n",
		report.Score.TotalIssues, report.Score.FileCount, report.Score.TotalLines, report.Score.IssueDensity))

	summary := tablewriter.NewWriter(&sb)
	summary.SetHeader([]string{"Category", "Score", "Weight", "Issues"})
	for _, cat := range model.AllCategories() {
		summary.Append([]string{
			string(cat),
			fmt.Sprintf("%.1f", report.Score.CategoryScores[cat]),
			fmt.Sprintf("%.2f", cat.Weight()),
			fmt.Sprintf("%d", report.Project.ByCategory[cat]),
		})
	}
	summary.Render()
	sb.WriteString("\n")

	if len(report.Hotspots) > 0 {
		sb.WriteString("Worst files:\n")
		hotspots := tablewriter.NewWriter(&sb)
		hotspots.SetHeader([]string{"File", "Issues"})
		for _, hs := range report.Hotspots {
			hotspots.Append([]string{hs.FilePath, fmt.Sprintf("%d", hs.IssueCount)})
		}
		hotspots.Render()
		sb.WriteString("\n")
	}

	issues := g.limitIssues(report.Project.AllIssues())
	if len(issues) > 0 {
		findings := tablewriter.NewWriter(&sb)
		findings.SetHeader([]string{"Severity", "Rule", "Location", "Finding"})
		findings.SetAutoWrapText(false)
		for _, issue := range issues {
			findings.Append([]string{
				string(issue.Severity),
				issue.RuleID,
				fmt.Sprintf("%s:%d:%d", issue.FilePath, issue.Line, issue.Column),
				Describe(issue),
			})
		}
		findings.Render()
	}

	if total := report.Project.TotalIssues; total > len(issues) {
		sb.WriteString(fmt.Sprintf("\n(%d more issues not shown)\n", total-len(issues)))
	}

	return sb.String(), nil
}

// limitIssues truncates the issue list to the configured display cap
func (g *Generator) limitIssues(issues []model.Issue) []model.Issue {
	if g.cfg.MaxIssues > 0 && len(issues) > g.cfg.MaxIssues {
		return issues[:g.cfg.MaxIssues]
	}
	return issues
}

func severityTag(s model.Severity) string {
	switch s {
	case model.SeverityNuclear:
		return "[NUCLEAR]"
	case model.SeveritySpicy:
		return "[SPICY]"
	default:
		return "[MILD]"
	}
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityNuclear:
		return "error"
	case model.SeveritySpicy:
		return "warning"
	default:
		return "note"
	}
}
