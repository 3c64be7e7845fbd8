package rule

import (
	"regexp"
	"strings"

	"garbage-hunter/src/model"
)

// UnwrapAbuseRule flags .unwrap() calls, the fastest path from a
// recoverable error to a process abort
type UnwrapAbuseRule struct {
	baseRule
}

// NewUnwrapAbuseRule creates a new unwrap abuse rule
func NewUnwrapAbuseRule() *UnwrapAbuseRule {
	return &UnwrapAbuseRule{baseRule{id: "unwrap-abuse", category: model.CategoryRustBasics}}
}

// Detect runs unwrap detection. Severity scales with how many unwraps
// the enclosing function accumulates; unwraps inside test functions
// stay mild since panicking there is the point.
func (r *UnwrapAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	// keyed by span start so same-named methods in different impl
	// blocks do not pool their counts
	perFunction := make(map[int]int)
	for line := 1; line <= m.File.LineCount; line++ {
		n := strings.Count(m.CodeLine(line), ".unwrap()")
		if n == 0 {
			continue
		}
		if fn := m.FunctionAt(line); fn != nil {
			perFunction[fn.StartLine] += n
		}
	}

	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		col := strings.Index(code, ".unwrap()")
		if col < 0 {
			continue
		}

		severity := model.SeverityMild
		fn := m.FunctionAt(line)
		if fn != nil && !fn.IsTest {
			switch count := perFunction[fn.StartLine]; {
			case count > 5:
				severity = model.SeverityNuclear
			case count > 2:
				severity = model.SeveritySpicy
			}
		}

		issues = append(issues, r.issue(m, line, col+1, severity, "basics.unwrap", map[string]any{
			"count_on_line": strings.Count(code, ".unwrap()"),
		}))
	}
	return issues
}

// UnnecessaryCloneRule flags .clone() calls that usually paper over
// ownership problems
type UnnecessaryCloneRule struct {
	baseRule
}

// NewUnnecessaryCloneRule creates a new clone abuse rule
func NewUnnecessaryCloneRule() *UnnecessaryCloneRule {
	return &UnnecessaryCloneRule{baseRule{id: "unnecessary-clone", category: model.CategoryRustBasics}}
}

// Detect runs clone detection
func (r *UnnecessaryCloneRule) Detect(m *model.SourceModel) []model.Issue {
	total := 0
	for line := 1; line <= m.File.LineCount; line++ {
		total += strings.Count(m.CodeLine(line), ".clone()")
	}

	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		col := strings.Index(code, ".clone()")
		if col < 0 {
			continue
		}

		severity := model.SeverityMild
		if strings.Contains(code, ".clone().clone()") {
			severity = model.SeverityNuclear
		} else if total >= 4 {
			severity = model.SeveritySpicy
		}

		issues = append(issues, r.issue(m, line, col+1, severity, "basics.clone", map[string]any{
			"file_total": total,
		}))
	}
	return issues
}

var stringConversionPattern = regexp.MustCompile(`format!\(\s*"\{\w*\}"\s*,`)

// StringAbuseRule flags roundabout string conversions
type StringAbuseRule struct {
	baseRule
}

// NewStringAbuseRule creates a new string abuse rule
func NewStringAbuseRule() *StringAbuseRule {
	return &StringAbuseRule{baseRule{id: "string-abuse", category: model.CategoryRustBasics}}
}

// Detect runs string abuse detection. It looks for format! used as a
// plain conversion and for chains that bounce between &str and String.
// Patterns spanning string literal content match the raw line, gated on
// the code view so text inside comments or other strings cannot trigger.
func (r *StringAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		raw := m.File.Line(line)

		if col := strings.Index(code, "format!("); col >= 0 && stringConversionPattern.MatchString(raw) {
			issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.string_format_conversion", nil))
		}
		if col := strings.Index(code, ".to_string().as_str()"); col >= 0 {
			issues = append(issues, r.issue(m, line, col+1, model.SeveritySpicy, "basics.string_round_trip", nil))
		}
		if col := strings.Index(code, "String::from("); col >= 0 && strings.Contains(raw, `String::from("")`) {
			issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.string_empty_from", nil))
		}
	}
	return issues
}

// VecAbuseRule flags clumsy vector usage
type VecAbuseRule struct {
	baseRule
}

// NewVecAbuseRule creates a new vec abuse rule
func NewVecAbuseRule() *VecAbuseRule {
	return &VecAbuseRule{baseRule{id: "vec-abuse", category: model.CategoryRustBasics}}
}

// Detect runs vec abuse detection
func (r *VecAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		if col := strings.Index(code, ".len() == 0"); col >= 0 {
			issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.vec_len_zero", nil))
		}
		if col := strings.Index(code, ".len() > 0"); col >= 0 {
			issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.vec_len_positive", nil))
		}

		// Vec::new followed directly by fixed pushes is vec![] territory
		if col := strings.Index(code, "Vec::new()"); col >= 0 && line < m.File.LineCount {
			pushes := 0
			for next := line + 1; next <= m.File.LineCount && next <= line+4; next++ {
				if strings.Contains(m.CodeLine(next), ".push(") {
					pushes++
				} else {
					break
				}
			}
			if pushes >= 3 {
				issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.vec_push_literal", map[string]any{
					"pushes": pushes,
				}))
			}
		}
	}
	return issues
}

// IteratorAbuseRule flags iterator chains that fight the iterator model
type IteratorAbuseRule struct {
	baseRule
}

// NewIteratorAbuseRule creates a new iterator abuse rule
func NewIteratorAbuseRule() *IteratorAbuseRule {
	return &IteratorAbuseRule{baseRule{id: "iterator-abuse", category: model.CategoryRustBasics}}
}

var indexLoopPattern = regexp.MustCompile(`for\s+\w+\s+in\s+0\s*\.\.\s*\w+\.len\(\)`)

// Detect runs iterator abuse detection
func (r *IteratorAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		if col := strings.Index(code, ".collect::<Vec<_>>().iter()"); col >= 0 {
			issues = append(issues, r.issue(m, line, col+1, model.SeveritySpicy, "basics.iterator_collect_reiterate", nil))
		}
		if col := strings.Index(code, ".iter().cloned().collect()"); col >= 0 {
			issues = append(issues, r.issue(m, line, col+1, model.SeverityMild, "basics.iterator_clone_collect", nil))
		}
		if loc := indexLoopPattern.FindStringIndex(code); loc != nil {
			issues = append(issues, r.issue(m, line, loc[0]+1, model.SeverityMild, "basics.iterator_index_loop", nil))
		}
	}
	return issues
}

// MatchAbuseRule flags match expressions that should be if let or a
// plain boolean branch
type MatchAbuseRule struct {
	baseRule
}

// NewMatchAbuseRule creates a new match abuse rule
func NewMatchAbuseRule() *MatchAbuseRule {
	return &MatchAbuseRule{baseRule{id: "match-abuse", category: model.CategoryRustBasics}}
}

var matchBoolPattern = regexp.MustCompile(`\bmatch\b[^{]*\{\s*$`)

// Detect runs match abuse detection. A match whose arms are exactly
// true and false, or one real arm plus a discarding wildcard, gets
// flagged.
func (r *MatchAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		if !matchBoolPattern.MatchString(code) {
			continue
		}
		col := strings.Index(code, "match") + 1

		arms := collectMatchArms(m, line)
		switch {
		case len(arms) == 2 && hasArm(arms, "true") && hasArm(arms, "false"):
			issues = append(issues, r.issue(m, line, col, model.SeveritySpicy, "basics.match_on_bool", nil))
		case len(arms) == 2 && hasWildcardDiscard(arms):
			issues = append(issues, r.issue(m, line, col, model.SeverityMild, "basics.match_single_arm", nil))
		}
	}
	return issues
}

// collectMatchArms gathers the arm patterns of the match block opening
// at the given line, stopping at the closing depth
func collectMatchArms(m *model.SourceModel, openLine int) []string {
	openDepth := m.Depth[openLine-1]
	var arms []string
	for line := openLine + 1; line <= m.File.LineCount; line++ {
		if m.Depth[line-1] <= openDepth {
			break
		}
		if m.Depth[line-1] != openDepth+1 {
			continue
		}
		code := strings.TrimSpace(m.CodeLine(line))
		if idx := strings.Index(code, "=>"); idx > 0 {
			arms = append(arms, strings.TrimSpace(code[:idx]))
		}
	}
	return arms
}

func hasArm(arms []string, pattern string) bool {
	for _, arm := range arms {
		if arm == pattern {
			return true
		}
	}
	return false
}

func hasWildcardDiscard(arms []string) bool {
	for _, arm := range arms {
		if arm == "_" {
			return true
		}
	}
	return false
}

var printMacroPattern = regexp.MustCompile(`\b(println!|print!|eprintln!|eprint!|dbg!)\s*\(`)

// PrintlnDebuggingRule flags print macros left in non-test code
type PrintlnDebuggingRule struct {
	baseRule
}

// NewPrintlnDebuggingRule creates a new println debugging rule
func NewPrintlnDebuggingRule() *PrintlnDebuggingRule {
	return &PrintlnDebuggingRule{baseRule{id: "println-debugging", category: model.CategoryRustBasics}}
}

// Detect runs print macro detection. Prints inside test functions or in
// a main function are allowed; dbg! is always flagged.
func (r *PrintlnDebuggingRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		loc := printMacroPattern.FindStringSubmatchIndex(m.CodeLine(line))
		if loc == nil {
			continue
		}
		macro := m.CodeLine(line)[loc[2]:loc[3]]

		fn := m.FunctionAt(line)
		if macro != "dbg!" && fn != nil && (fn.IsTest || fn.Name == "main") {
			continue
		}

		severity := model.SeverityMild
		if macro == "dbg!" {
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, loc[0]+1, severity, "basics.print_debugging", map[string]any{
			"macro": macro,
		}))
	}
	return issues
}

var panicMacroPattern = regexp.MustCompile(`\b(panic!|unimplemented!|todo!|unreachable!)\s*\(`)

// PanicAbuseRule flags panic macros in non-test code
type PanicAbuseRule struct {
	baseRule
}

// NewPanicAbuseRule creates a new panic abuse rule
func NewPanicAbuseRule() *PanicAbuseRule {
	return &PanicAbuseRule{baseRule{id: "panic-abuse", category: model.CategoryRustBasics}}
}

// Detect runs panic macro detection
func (r *PanicAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		loc := panicMacroPattern.FindStringSubmatchIndex(m.CodeLine(line))
		if loc == nil {
			continue
		}
		fn := m.FunctionAt(line)
		if fn != nil && fn.IsTest {
			continue
		}

		macro := m.CodeLine(line)[loc[2]:loc[3]]
		severity := model.SeveritySpicy
		if macro == "unreachable!" {
			severity = model.SeverityMild
		}
		issues = append(issues, r.issue(m, line, loc[0]+1, severity, "basics.panic_macro", map[string]any{
			"macro": macro,
		}))
	}
	return issues
}
