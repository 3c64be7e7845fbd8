package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

func sampleReport() *Report {
	issues := []model.Issue{
		{
			RuleID: "unwrap-abuse", Category: model.CategoryRustBasics,
			Severity: model.SeverityNuclear, FilePath: "src/main.rs",
			Line: 12, Column: 9, MessageKey: "basics.unwrap", Weight: 4.0,
		},
		{
			RuleID: "terrible-naming", Category: model.CategoryNaming,
			Severity: model.SeverityMild, FilePath: "src/main.rs",
			Line: 3, Column: 9, MessageKey: "naming.terrible",
			Data: map[string]any{"name": "foo"}, Weight: 2.0,
		},
	}
	project := &model.ProjectResult{
		Results: []model.AnalysisResult{
			{FilePath: "src/main.rs", LineCount: 40, Issues: issues},
		},
		FileCount:   1,
		TotalLines:  40,
		TotalIssues: 2,
		ByCategory: map[model.Category]int{
			model.CategoryRustBasics: 1,
			model.CategoryNaming:     1,
		},
		BySeverity: map[model.Severity]int{
			model.SeverityNuclear: 1,
			model.SeverityMild:    1,
		},
	}
	return &Report{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Project:     project,
		Score: &model.ScoreReport{
			OverallScore: 42.5,
			QualityLevel: model.QualityAverage,
			CategoryScores: map[model.Category]float64{
				model.CategoryRustBasics: 80,
				model.CategoryNaming:     10,
			},
			Distribution: model.SeverityDistribution{Nuclear: 1, Mild: 1},
			FileCount:    1,
			TotalLines:   40,
			TotalIssues:  2,
			IssueDensity: 50,
			Expression:   "10.0×0.25 + ...",
		},
		Hotspots: []model.FileHotspot{{FilePath: "src/main.rs", IssueCount: 2}},
	}
}

func TestGenerateJSON(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "score")
	assert.Contains(t, decoded, "project")
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Code Quality Report")
	assert.Contains(t, out, "42.5/100")
	assert.Contains(t, out, "unwrap-abuse")
	assert.Contains(t, out, "src/main.rs:12:9")
	assert.Contains(t, out, "[NUCLEAR]")
	assert.Contains(t, out, "Hotspot Files")
}

func TestGenerateSARIF(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(), "sarif")
	require.NoError(t, err)

	var sarif struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string           `json:"name"`
					Rules []map[string]any `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sarif))

	assert.Equal(t, "2.1.0", sarif.Version)
	require.Len(t, sarif.Runs, 1)
	assert.Equal(t, "garbage-hunter", sarif.Runs[0].Tool.Driver.Name)
	assert.Len(t, sarif.Runs[0].Tool.Driver.Rules, 2)
	require.Len(t, sarif.Runs[0].Results, 2)
	assert.Equal(t, "unwrap-abuse", sarif.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", sarif.Runs[0].Results[0].Level)
}

func TestGenerateConsole(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(), "console")
	require.NoError(t, err)

	assert.Contains(t, out, "Overall score: 42.5/100")
	assert.Contains(t, out, "rust_basics")
	assert.Contains(t, out, "unwrap-abuse")
	assert.Contains(t, out, "Worst files:")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, err := NewGenerator(config.OutputConfig{}).Generate(sampleReport(), "pdf")
	assert.Error(t, err)
}

func TestMaxIssuesLimitsOutput(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{MaxIssues: 1}).Generate(sampleReport(), "console")
	require.NoError(t, err)

	assert.Contains(t, out, "1 more issues not shown")
}

func TestDescribeRendersDataDeterministically(t *testing.T) {
	issue := model.Issue{
		MessageKey: "complexity.deep_nesting",
		Data:       map[string]any{"threshold": 3, "depth": 5},
	}

	text := Describe(issue)
	assert.Equal(t, "nesting too deep, extract the inner blocks (depth=5, threshold=3)", text)
	assert.Equal(t, text, Describe(issue))
}

func TestDescribeFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no.such_key", Describe(model.Issue{MessageKey: "no.such_key"}))
}
