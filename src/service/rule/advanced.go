package rule

import (
	"regexp"
	"strings"

	"garbage-hunter/src/model"
)

// requires a call or binding context so boolean || chains do not match
var closurePattern = regexp.MustCompile(`[(=,]\s*(?:move\s+)?\|[^|]*\|`)

// ComplexClosureRule flags closures that have outgrown the inline form
type ComplexClosureRule struct {
	baseRule
}

// NewComplexClosureRule creates a new complex closure rule
func NewComplexClosureRule() *ComplexClosureRule {
	return &ComplexClosureRule{baseRule{id: "complex-closure", category: model.CategoryAdvancedRust}}
}

// Detect runs closure complexity detection. A closure opening a block
// that spans many lines, or several closures nested on one line, should
// be a named function instead.
func (r *ComplexClosureRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		matches := closurePattern.FindAllStringIndex(code, -1)
		if matches == nil {
			continue
		}

		if len(matches) >= 3 {
			issues = append(issues, r.issue(m, line, matches[0][0]+1, model.SeveritySpicy, "advanced.closure_pileup", map[string]any{
				"closures": len(matches),
			}))
			continue
		}

		// a closure opening a multi-line block
		last := matches[len(matches)-1]
		if !strings.HasSuffix(strings.TrimSpace(code[last[0]:]), "{") {
			continue
		}
		span := closureBlockLines(m, line)
		if span > 10 {
			severity := model.SeverityMild
			if span > 25 {
				severity = model.SeveritySpicy
			}
			issues = append(issues, r.issue(m, line, last[0]+1, severity, "advanced.closure_too_long", map[string]any{
				"lines": span,
			}))
		}
	}
	return issues
}

// closureBlockLines counts lines until the depth returns to the level
// of the opening line
func closureBlockLines(m *model.SourceModel, openLine int) int {
	openDepth := m.Depth[openLine-1]
	for line := openLine + 1; line <= m.File.LineCount; line++ {
		if m.Depth[line-1] <= openDepth {
			return line - openLine
		}
	}
	return m.File.LineCount - openLine
}

var lifetimePattern = regexp.MustCompile(`'[a-z_][a-z0-9_]*\b`)

// LifetimeAbuseRule flags signatures drowning in named lifetimes
type LifetimeAbuseRule struct {
	baseRule
}

// NewLifetimeAbuseRule creates a new lifetime abuse rule
func NewLifetimeAbuseRule() *LifetimeAbuseRule {
	return &LifetimeAbuseRule{baseRule{id: "lifetime-abuse", category: model.CategoryAdvancedRust}}
}

// Detect runs lifetime detection. Distinct named lifetimes on one line
// are counted; 'static and a single elidable lifetime pass.
func (r *LifetimeAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		distinct := map[string]bool{}
		for _, lt := range lifetimePattern.FindAllString(code, -1) {
			if lt == "'static" || lt == "'_" {
				continue
			}
			distinct[lt] = true
		}
		if len(distinct) < 2 {
			continue
		}

		severity := model.SeverityMild
		switch {
		case len(distinct) > 3:
			severity = model.SeverityNuclear
		case len(distinct) > 2:
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, strings.IndexByte(code, '\'')+1, severity, "advanced.lifetime_soup", map[string]any{
			"lifetimes": len(distinct),
		}))
	}
	return issues
}

var traitBoundPattern = regexp.MustCompile(`\bwhere\b|:\s*\w+\s*\+\s*\w+`)

// TraitComplexityRule flags trait bounds stacked past readability
type TraitComplexityRule struct {
	baseRule
}

// NewTraitComplexityRule creates a new trait complexity rule
func NewTraitComplexityRule() *TraitComplexityRule {
	return &TraitComplexityRule{baseRule{id: "trait-complexity", category: model.CategoryAdvancedRust}}
}

// Detect runs trait bound detection, counting + separated bounds on
// lines that declare generics or where clauses
func (r *TraitComplexityRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		if !traitBoundPattern.MatchString(code) {
			continue
		}

		bounds := strings.Count(code, "+") + 1
		if !strings.Contains(code, "+") {
			continue
		}
		if bounds < 4 {
			continue
		}

		severity := model.SeverityMild
		if bounds > 5 {
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, 1, severity, "advanced.trait_bound_stack", map[string]any{
			"bounds": bounds,
		}))
	}
	return issues
}

var genericParamsPattern = regexp.MustCompile(`\b(?:fn|struct|enum|trait|impl)\b[^<(]*<([^<>]*(?:<[^<>]*>[^<>]*)*)>`)

// GenericAbuseRule flags declarations with too many type parameters
type GenericAbuseRule struct {
	baseRule
}

// NewGenericAbuseRule creates a new generic abuse rule
func NewGenericAbuseRule() *GenericAbuseRule {
	return &GenericAbuseRule{baseRule{id: "generic-abuse", category: model.CategoryAdvancedRust}}
}

// Detect runs generic parameter detection
func (r *GenericAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		match := genericParamsPattern.FindStringSubmatch(code)
		if match == nil {
			continue
		}

		params := countTopLevelParams(match[1])
		if params < 3 {
			continue
		}

		severity := model.SeverityMild
		switch {
		case params > 5:
			severity = model.SeverityNuclear
		case params > 3:
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, strings.IndexByte(code, '<')+1, severity, "advanced.generic_overload", map[string]any{
			"params": params,
		}))
	}
	return issues
}

// countTopLevelParams counts comma separated entries outside nested
// angle brackets
func countTopLevelParams(list string) int {
	if strings.TrimSpace(list) == "" {
		return 0
	}
	depth, count := 0, 1
	for _, c := range list {
		switch c {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}
