package model

// Severity represents the impact tier of a detected issue
type Severity string

const (
	SeverityMild    Severity = "mild"
	SeveritySpicy   Severity = "spicy"
	SeverityNuclear Severity = "nuclear"
)

// severityMultipliers maps each severity to its fixed scoring multiplier.
// These values are part of the scoring contract and must not change.
var severityMultipliers = map[Severity]float64{
	SeverityNuclear: 10.0,
	SeveritySpicy:   5.0,
	SeverityMild:    2.0,
}

// Multiplier returns the fixed scoring multiplier for the severity
func (s Severity) Multiplier() float64 {
	return severityMultipliers[s]
}

// Rank returns an ordering value for the severity (higher is worse)
func (s Severity) Rank() int {
	switch s {
	case SeverityNuclear:
		return 3
	case SeveritySpicy:
		return 2
	default:
		return 1
	}
}

// Category represents one of the seven fixed issue groupings
type Category string

const (
	CategoryNaming        Category = "naming"
	CategoryComplexity    Category = "complexity"
	CategoryDuplication   Category = "duplication"
	CategoryRustBasics    Category = "rust_basics"
	CategoryAdvancedRust  Category = "advanced_rust"
	CategoryRustFeatures  Category = "rust_features"
	CategoryCodeStructure Category = "code_structure"
)

// categoryWeights holds the fixed final-score weight per category.
// Invariant: the weights sum to exactly 1.00.
var categoryWeights = map[Category]float64{
	CategoryNaming:        0.25,
	CategoryComplexity:    0.20,
	CategoryDuplication:   0.15,
	CategoryRustBasics:    0.15,
	CategoryAdvancedRust:  0.10,
	CategoryRustFeatures:  0.10,
	CategoryCodeStructure: 0.05,
}

// Weight returns the fixed final-score weight for the category
func (c Category) Weight() float64 {
	return categoryWeights[c]
}

// AllCategories returns the categories in their fixed reporting order
func AllCategories() []Category {
	return []Category{
		CategoryNaming,
		CategoryComplexity,
		CategoryDuplication,
		CategoryRustBasics,
		CategoryAdvancedRust,
		CategoryRustFeatures,
		CategoryCodeStructure,
	}
}

// Issue represents a single detected anti-pattern occurrence
type Issue struct {
	RuleID     string         `json:"rule_id"`
	Category   Category       `json:"category"`
	Severity   Severity       `json:"severity"`
	FilePath   string         `json:"file_path"`
	Line       int            `json:"line"`
	Column     int            `json:"column"`
	MessageKey string         `json:"message_key"`
	Data       map[string]any `json:"data,omitempty"`
	Weight     float64        `json:"weight"`
}

// Score returns the issue's contribution to its category's raw score
func (i Issue) Score() float64 {
	return i.Weight * i.Severity.Multiplier()
}
