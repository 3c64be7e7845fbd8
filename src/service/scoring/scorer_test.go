package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garbage-hunter/src/model"
)

// projectWith builds a minimal project result carrying the given issues
// in a single file. FileCount is independent so average-per-file cases
// can be steered directly.
func projectWith(lines, files int, issues []model.Issue) *model.ProjectResult {
	return &model.ProjectResult{
		Results: []model.AnalysisResult{
			{FilePath: "one.rs", LineCount: lines, Issues: issues},
		},
		FileCount:   files,
		TotalLines:  lines,
		TotalIssues: len(issues),
	}
}

func issue(category model.Category, severity model.Severity, weight float64) model.Issue {
	return model.Issue{
		RuleID:   "synthetic",
		Category: category,
		Severity: severity,
		Weight:   weight,
	}
}

func mildIssues(n int, category model.Category, weight float64) []model.Issue {
	issues := make([]model.Issue, n)
	for i := range issues {
		issues[i] = issue(category, model.SeverityMild, weight)
	}
	return issues
}

func TestCategoryWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, category := range model.AllCategories() {
		sum += category.Weight()
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestZeroIssuesScoreZero(t *testing.T) {
	report := NewScorer().Score(projectWith(500, 3, nil))

	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, model.QualityExcellent, report.QualityLevel)
	for _, category := range model.AllCategories() {
		assert.Equal(t, 0.0, report.CategoryScores[category])
	}
}

func TestEmptyProjectScoresZero(t *testing.T) {
	report := NewScorer().Score(&model.ProjectResult{})

	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, 0.0, report.IssueDensity)
	assert.Equal(t, 0.0, report.AvgIssuesPerFile)
}

func TestWeightedSumMatchesReference(t *testing.T) {
	// category raw sums over 1000 lines normalize to themselves:
	// 90 naming, 90 complexity, 90 duplication, 69.4 rust features.
	// All mild and only four issues, so no penalty tier engages.
	issues := []model.Issue{
		issue(model.CategoryNaming, model.SeverityMild, 45),
		issue(model.CategoryComplexity, model.SeverityMild, 45),
		issue(model.CategoryDuplication, model.SeverityMild, 45),
		issue(model.CategoryRustFeatures, model.SeverityMild, 34.7),
	}

	report := NewScorer().Score(projectWith(1000, 1, issues))

	assert.InDelta(t, 90.0, report.CategoryScores[model.CategoryNaming], 1e-9)
	assert.InDelta(t, 69.4, report.CategoryScores[model.CategoryRustFeatures], 1e-9)
	assert.Equal(t, 0.0, report.DensityPenalty)
	assert.Equal(t, 0.0, report.SeverityPenalty)
	assert.InDelta(t, 60.94, report.OverallScore, 1e-9)
	assert.Equal(t, model.QualityPoor, report.QualityLevel)
}

func TestCategoryScoreClamped(t *testing.T) {
	issues := []model.Issue{issue(model.CategoryNaming, model.SeverityNuclear, 5000)}

	report := NewScorer().Score(projectWith(100, 1, issues))

	assert.Equal(t, 100.0, report.CategoryScores[model.CategoryNaming])
}

func TestOverallScoreClamped(t *testing.T) {
	var issues []model.Issue
	for i := 0; i < 50; i++ {
		issues = append(issues, issue(model.CategoryNaming, model.SeverityNuclear, 5000))
	}

	report := NewScorer().Score(projectWith(100, 1, issues))

	assert.Equal(t, 100.0, report.OverallScore)
	assert.Equal(t, model.QualityTerrible, report.QualityLevel)
}

func TestDensityPenaltyBoundaryIsExclusiveTiers(t *testing.T) {
	// exactly 50 issues in 1000 lines pays the top tier once, +25,
	// not 25+15+10+5
	issues := mildIssues(50, model.CategoryNaming, 0.01)

	report := NewScorer().Score(projectWith(1000, 11, issues))

	assert.InDelta(t, 50.0, report.IssueDensity, 1e-9)
	assert.Less(t, report.AvgIssuesPerFile, 5.0)
	assert.Equal(t, 25.0, report.DensityPenalty)
}

func TestDensityPenaltyTiers(t *testing.T) {
	tests := []struct {
		issues  int
		penalty float64
	}{
		{5, 0},
		{10, 5},
		{20, 10},
		{30, 15},
		{50, 25},
		{80, 25},
	}
	for _, tt := range tests {
		issues := mildIssues(tt.issues, model.CategoryNaming, 0.01)
		report := NewScorer().Score(projectWith(1000, tt.issues, issues))

		assert.Equal(t, tt.penalty, report.DensityPenalty, "%d issues per 1000 lines", tt.issues)
	}
}

func TestComplexityPenaltyTiers(t *testing.T) {
	// 15 issues across one file averages 15 per file, the middle tier.
	// Density stays below 10 per 1000 lines on a large file.
	issues := mildIssues(15, model.CategoryNaming, 0.01)

	report := NewScorer().Score(projectWith(10000, 1, issues))

	assert.InDelta(t, 15.0, report.AvgIssuesPerFile, 1e-9)
	assert.Equal(t, 10.0, report.DensityPenalty)
}

func TestSeverityPenalty(t *testing.T) {
	var issues []model.Issue
	for i := 0; i < 2; i++ {
		issues = append(issues, issue(model.CategoryNaming, model.SeverityNuclear, 0.01))
	}
	for i := 0; i < 7; i++ {
		issues = append(issues, issue(model.CategoryNaming, model.SeveritySpicy, 0.01))
	}
	for i := 0; i < 25; i++ {
		issues = append(issues, issue(model.CategoryNaming, model.SeverityMild, 0.01))
	}

	report := NewScorer().Score(projectWith(100000, 100, issues))

	// 20 + 5 for the nuclears, 2x2 for spicy past five, 2.5 for mild past twenty
	assert.Equal(t, 31.5, report.SeverityPenalty)
	assert.Equal(t, 2, report.Distribution.Nuclear)
	assert.Equal(t, 7, report.Distribution.Spicy)
	assert.Equal(t, 25, report.Distribution.Mild)
}

func TestSeverityEscalationIsMonotonic(t *testing.T) {
	base := []model.Issue{
		issue(model.CategoryNaming, model.SeverityMild, 2.0),
		issue(model.CategoryComplexity, model.SeverityMild, 3.0),
	}
	escalated := []model.Issue{
		issue(model.CategoryNaming, model.SeveritySpicy, 2.0),
		issue(model.CategoryComplexity, model.SeverityMild, 3.0),
	}

	low := NewScorer().Score(projectWith(1000, 1, base))
	high := NewScorer().Score(projectWith(1000, 1, escalated))

	assert.GreaterOrEqual(t, high.OverallScore, low.OverallScore)
}

func TestScoreIsPure(t *testing.T) {
	project := projectWith(1000, 2, mildIssues(12, model.CategoryRustBasics, 2.0))

	first := NewScorer().Score(project)
	second := NewScorer().Score(project)

	assert.Equal(t, first, second)
}

func TestExpressionIsAuditable(t *testing.T) {
	report := NewScorer().Score(projectWith(1000, 1, mildIssues(3, model.CategoryNaming, 10)))

	require.NotEmpty(t, report.Expression)
	assert.Contains(t, report.Expression, "0.25")
	assert.Contains(t, report.Expression, "density")
	assert.Contains(t, report.Expression, "severity")
}
