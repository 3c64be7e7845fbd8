// Package scoring turns a project result into the bounded 0-100 quality
// score. Zero means pristine code, one hundred means a disaster.
package scoring

import (
	"fmt"
	"strings"

	"garbage-hunter/src/model"
)

// Scorer computes score reports. It carries no state; Score is a pure
// function of its input so identical results always score identically.
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the full report for a project result.
//
// Per-category raw sums are normalized per 1000 analyzed lines and
// clamped to [0, 100]. The overall score is the weighted category sum
// plus the density, file-complexity and severity penalties, clamped
// again. Penalties are purely additive after the weighted sum; they do
// not feed back into category scores.
func (s *Scorer) Score(project *model.ProjectResult) *model.ScoreReport {
	report := &model.ScoreReport{
		CategoryScores: make(map[model.Category]float64),
		FileCount:      project.FileCount,
		TotalLines:     project.TotalLines,
		TotalIssues:    project.TotalIssues,
	}

	raw := make(map[model.Category]float64)
	for _, issue := range project.AllIssues() {
		raw[issue.Category] += issue.Score()
		switch issue.Severity {
		case model.SeverityNuclear:
			report.Distribution.Nuclear++
		case model.SeveritySpicy:
			report.Distribution.Spicy++
		default:
			report.Distribution.Mild++
		}
	}

	weighted := 0.0
	for _, category := range model.AllCategories() {
		score := normalize(raw[category], project.TotalLines)
		report.CategoryScores[category] = score
		weighted += score * category.Weight()
	}

	if project.TotalLines > 0 {
		report.IssueDensity = float64(project.TotalIssues) / float64(project.TotalLines) * 1000
	}
	if project.FileCount > 0 {
		report.AvgIssuesPerFile = float64(project.TotalIssues) / float64(project.FileCount)
	}

	report.DensityPenalty = densityPenalty(report.IssueDensity) + complexityPenalty(report.AvgIssuesPerFile)
	report.SeverityPenalty = severityPenalty(report.Distribution)

	report.OverallScore = clamp(weighted + report.DensityPenalty + report.SeverityPenalty)
	report.QualityLevel = model.QualityLevelFromScore(report.OverallScore)
	report.Expression = expression(report, weighted)

	return report
}

// normalize scales a raw category sum per 1000 analyzed lines
func normalize(raw float64, totalLines int) float64 {
	if totalLines == 0 {
		return 0
	}
	return clamp(raw / float64(totalLines) * 1000)
}

// densityPenalty applies the single highest matching tier. The tier
// bounds are inclusive: exactly 50 issues per 1000 lines already pays
// the full +25.
func densityPenalty(density float64) float64 {
	switch {
	case density >= 50:
		return 25
	case density >= 30:
		return 15
	case density >= 20:
		return 10
	case density >= 10:
		return 5
	default:
		return 0
	}
}

// complexityPenalty applies the average-issues-per-file tier
func complexityPenalty(avgPerFile float64) float64 {
	switch {
	case avgPerFile >= 20:
		return 15
	case avgPerFile >= 10:
		return 10
	case avgPerFile >= 5:
		return 5
	default:
		return 0
	}
}

// severityPenalty prices the severity distribution: the first nuclear
// issue costs 20 and each further one 5; spicy issues past the fifth
// cost 2 each; mild issues past the twentieth cost 0.5 each.
func severityPenalty(d model.SeverityDistribution) float64 {
	penalty := 0.0
	if d.Nuclear > 0 {
		penalty += 20 + float64(d.Nuclear-1)*5
	}
	if d.Spicy > 5 {
		penalty += float64(d.Spicy-5) * 2
	}
	if d.Mild > 20 {
		penalty += float64(d.Mild-20) * 0.5
	}
	return penalty
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// expression renders the literal weighted-sum text kept for audit
func expression(report *model.ScoreReport, weighted float64) string {
	var terms []string
	for _, category := range model.AllCategories() {
		terms = append(terms, fmt.Sprintf("%.1f×%.2f", report.CategoryScores[category], category.Weight()))
	}
	return fmt.Sprintf("%s = %.2f, +%.1f density, +%.1f severity → %.1f",
		strings.Join(terms, " + "), weighted,
		report.DensityPenalty, report.SeverityPenalty, report.OverallScore)
}
