package model

// QualityLevel bands the overall score for reporting.
// Score 0 is pristine code; 100 is a disaster.
type QualityLevel string

const (
	QualityExcellent QualityLevel = "excellent" // 0-20
	QualityGood      QualityLevel = "good"      // 21-40
	QualityAverage   QualityLevel = "average"   // 41-60
	QualityPoor      QualityLevel = "poor"      // 61-80
	QualityTerrible  QualityLevel = "terrible"  // 81-100
)

// QualityLevelFromScore maps an overall score to its band
func QualityLevelFromScore(score float64) QualityLevel {
	switch {
	case score <= 20:
		return QualityExcellent
	case score <= 40:
		return QualityGood
	case score <= 60:
		return QualityAverage
	case score <= 80:
		return QualityPoor
	default:
		return QualityTerrible
	}
}

// SeverityDistribution counts issues per severity tier
type SeverityDistribution struct {
	Nuclear int `json:"nuclear"`
	Spicy   int `json:"spicy"`
	Mild    int `json:"mild"`
}

// ScoreReport is the scoring engine's complete output
type ScoreReport struct {
	OverallScore     float64              `json:"overall_score"`
	CategoryScores   map[Category]float64 `json:"category_scores"`
	QualityLevel     QualityLevel         `json:"quality_level"`
	IssueDensity     float64              `json:"issue_density"` // issues per 1000 lines
	AvgIssuesPerFile float64              `json:"avg_issues_per_file"`
	DensityPenalty   float64              `json:"density_penalty"`
	SeverityPenalty  float64              `json:"severity_penalty"`
	Distribution     SeverityDistribution `json:"severity_distribution"`
	FileCount        int                  `json:"file_count"`
	TotalLines       int                  `json:"total_lines"`
	TotalIssues      int                  `json:"total_issues"`

	// Expression is the literal weighted-sum text used to compute the
	// overall score, kept for auditability.
	Expression string `json:"expression"`
}
