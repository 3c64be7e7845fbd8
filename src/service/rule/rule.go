package rule

import (
	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

// Rule is the interface for all anti-pattern detectors. Implementations are
// stateless: Detect reads the source model and emits issues, nothing else.
type Rule interface {
	// ID returns the unique rule id
	ID() string

	// Category returns the scoring category the rule belongs to
	Category() model.Category

	// Weight returns the rule's base impact factor
	Weight() float64

	// Detect inspects the source model and returns found issues
	Detect(m *model.SourceModel) []model.Issue
}

// ruleWeights holds the base impact factor per rule on a 2.0-5.0 scale.
// unsafe-abuse, ffi-abuse, unwrap-abuse, lifetime-abuse, async-abuse,
// deep-nesting, unnecessary-clone and terrible-naming are contract-fixed;
// the rest follow their category's severity intent.
var ruleWeights = map[string]float64{
	"terrible-naming":        2.0,
	"single-letter-variable": 2.0,
	"hungarian-notation":     2.0,
	"abbreviation-abuse":     2.0,

	"deep-nesting":  3.0,
	"long-function": 2.5,
	"god-function":  3.5,

	"code-duplication": 2.5,

	"unwrap-abuse":      4.0,
	"unnecessary-clone": 2.0,
	"string-abuse":      2.0,
	"vec-abuse":         2.0,
	"iterator-abuse":    2.0,
	"match-abuse":       2.0,
	"println-debugging": 2.0,
	"panic-abuse":       3.0,

	"complex-closure":  2.5,
	"lifetime-abuse":   3.5,
	"trait-complexity": 3.0,
	"generic-abuse":    3.0,

	"unsafe-abuse":  5.0,
	"ffi-abuse":     4.5,
	"async-abuse":   3.5,
	"channel-abuse": 3.0,
	"macro-abuse":   3.0,

	"file-too-long":  2.0,
	"import-chaos":   2.0,
	"dead-code":      2.0,
	"module-nesting": 2.0,
	"magic-number":   2.0,
	"commented-code": 2.0,
	"todo-comment":   2.0,
}

// baseRule provides the identity part of the Rule contract
type baseRule struct {
	id       string
	category model.Category
}

func (b baseRule) ID() string               { return b.id }
func (b baseRule) Category() model.Category { return b.category }
func (b baseRule) Weight() float64          { return ruleWeights[b.id] }

// issue builds a fully populated Issue for the rule at the given position
func (b baseRule) issue(m *model.SourceModel, line, col int, severity model.Severity, key string, data map[string]any) model.Issue {
	return model.Issue{
		RuleID:     b.id,
		Category:   b.category,
		Severity:   severity,
		FilePath:   m.File.Path,
		Line:       line,
		Column:     col,
		MessageKey: key,
		Data:       data,
		Weight:     ruleWeights[b.id],
	}
}

// NewRegistry returns the fixed, ordered rule set. The order is stable so
// that issues sharing a location always report in the same sequence.
func NewRegistry(cfg *config.Config) []Rule {
	all := []Rule{
		NewTerribleNamingRule(),
		NewSingleLetterVariableRule(),
		NewHungarianNotationRule(),
		NewAbbreviationAbuseRule(),

		NewDeepNestingRule(cfg.Rules),
		NewLongFunctionRule(cfg.Rules),
		NewGodFunctionRule(cfg.Rules),

		NewCodeDuplicationRule(cfg.Rules),

		NewUnwrapAbuseRule(),
		NewUnnecessaryCloneRule(),
		NewStringAbuseRule(),
		NewVecAbuseRule(),
		NewIteratorAbuseRule(),
		NewMatchAbuseRule(),
		NewPrintlnDebuggingRule(),
		NewPanicAbuseRule(),

		NewComplexClosureRule(),
		NewLifetimeAbuseRule(),
		NewTraitComplexityRule(),
		NewGenericAbuseRule(),

		NewUnsafeAbuseRule(),
		NewFFIAbuseRule(),
		NewAsyncAbuseRule(),
		NewChannelAbuseRule(),
		NewMacroAbuseRule(),

		NewFileTooLongRule(cfg.Rules),
		NewImportChaosRule(),
		NewDeadCodeRule(),
		NewModuleNestingRule(),
		NewMagicNumberRule(),
		NewCommentedCodeRule(),
		NewTodoCommentRule(),
	}

	rules := make([]Rule, 0, len(all))
	for _, r := range all {
		if cfg.Rules.IsDisabled(r.ID()) {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}
