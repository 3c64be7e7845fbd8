package rule

import (
	"regexp"
	"strconv"
	"strings"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

// FileTooLongRule flags files exceeding the configured line budget
type FileTooLongRule struct {
	baseRule
	cfg config.RulesConfig
}

// NewFileTooLongRule creates a new file length rule
func NewFileTooLongRule(cfg config.RulesConfig) *FileTooLongRule {
	return &FileTooLongRule{baseRule{id: "file-too-long", category: model.CategoryCodeStructure}, cfg}
}

// Detect runs file length detection
func (r *FileTooLongRule) Detect(m *model.SourceModel) []model.Issue {
	limit := r.cfg.MaxFileLines
	if limit <= 0 {
		limit = 1000
	}
	if m.File.LineCount <= limit {
		return nil
	}

	severity := model.SeverityMild
	switch {
	case m.File.LineCount > limit*2:
		severity = model.SeverityNuclear
	case m.File.LineCount*2 > limit*3:
		severity = model.SeveritySpicy
	}
	return []model.Issue{r.issue(m, 1, 1, severity, "structure.file_too_long", map[string]any{
		"lines": m.File.LineCount,
		"limit": limit,
	})}
}

// ImportChaosRule flags disordered, duplicated or scattered use declarations
type ImportChaosRule struct {
	baseRule
}

// NewImportChaosRule creates a new import chaos rule
func NewImportChaosRule() *ImportChaosRule {
	return &ImportChaosRule{baseRule{id: "import-chaos", category: model.CategoryCodeStructure}}
}

// Detect runs import detection. Duplicated paths are always flagged;
// imports interleaved with code after the first item indicate a file
// that grew without grooming.
func (r *ImportChaosRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue

	seen := make(map[string]int)
	dup := make(map[int]bool)
	for _, imp := range m.Imports {
		if prev, ok := seen[imp.Path]; ok {
			dup[imp.Line] = true
			issues = append(issues, r.issue(m, imp.Line, 1, model.SeveritySpicy, "structure.import_duplicate", map[string]any{
				"path":       imp.Path,
				"first_line": prev,
			}))
			continue
		}
		seen[imp.Path] = imp.Line
	}

	// imports appearing after the first function are strays
	if len(m.Functions) > 0 {
		firstFn := m.Functions[0].StartLine
		for _, imp := range m.Imports {
			if imp.Line > firstFn {
				issues = append(issues, r.issue(m, imp.Line, 1, model.SeverityMild, "structure.import_stray", map[string]any{
					"path": imp.Path,
				}))
			}
		}
	}

	// wildcard imports pull in unknown names
	for _, imp := range m.Imports {
		if strings.HasSuffix(imp.Path, "::*") && !strings.Contains(imp.Path, "prelude") {
			issues = append(issues, r.issue(m, imp.Line, 1, model.SeverityMild, "structure.import_wildcard", map[string]any{
				"path": imp.Path,
			}))
		}
	}

	// the header use block should stay alphabetized; duplicates and
	// strays after the first function are already flagged above
	header := m.Imports
	if len(m.Functions) > 0 {
		firstFn := m.Functions[0].StartLine
		for i, imp := range m.Imports {
			if imp.Line > firstFn {
				header = m.Imports[:i]
				break
			}
		}
	}
	prevPath := ""
	for _, imp := range header {
		if dup[imp.Line] {
			continue
		}
		if prevPath != "" && imp.Path < prevPath {
			issues = append(issues, r.issue(m, imp.Line, 1, model.SeverityMild, "structure.import_unordered", map[string]any{
				"path":   imp.Path,
				"before": prevPath,
			}))
		}
		prevPath = imp.Path
	}
	return issues
}

var modDeclPattern = regexp.MustCompile(`\bmod\s+\w+\s*\{`)

// ModuleNestingRule flags inline modules nested inside other modules
type ModuleNestingRule struct {
	baseRule
}

// NewModuleNestingRule creates a new module nesting rule
func NewModuleNestingRule() *ModuleNestingRule {
	return &ModuleNestingRule{baseRule{id: "module-nesting", category: model.CategoryCodeStructure}}
}

// Detect runs module nesting detection. An inline mod at depth 1 or
// deeper lives inside another block; tests modules are exempt.
func (r *ModuleNestingRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		loc := modDeclPattern.FindStringIndex(code)
		if loc == nil || strings.Contains(code, "mod tests") {
			continue
		}
		if m.Depth[line-1] < 1 {
			continue
		}

		severity := model.SeverityMild
		if m.Depth[line-1] > 1 {
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, loc[0]+1, severity, "structure.module_inline_nested", map[string]any{
			"depth": m.Depth[line-1] + 1,
		}))
	}
	return issues
}

var numberLiteralPattern = regexp.MustCompile(`\b\d[\d_]*(?:\.\d+)?\b`)

// unremarkable values that read fine inline
var allowedNumbers = map[float64]bool{
	-1: true, 0: true, 1: true, 2: true, 10: true, 100: true, 1000: true,
}

// MagicNumberRule flags bare numeric literals outside const declarations
type MagicNumberRule struct {
	baseRule
}

// NewMagicNumberRule creates a new magic number rule
func NewMagicNumberRule() *MagicNumberRule {
	return &MagicNumberRule{baseRule{id: "magic-number", category: model.CategoryCodeStructure}}
}

// Detect runs magic number detection. Const and static lines are the
// right home for literals and are skipped, as are test functions and
// array index positions.
func (r *MagicNumberRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, "const ") || strings.HasPrefix(trimmed, "static ") {
			continue
		}
		if fn := m.FunctionAt(line); fn != nil && fn.IsTest {
			continue
		}

		for _, loc := range numberLiteralPattern.FindAllStringIndex(code, -1) {
			literal := strings.ReplaceAll(code[loc[0]:loc[1]], "_", "")
			value, err := strconv.ParseFloat(literal, 64)
			if err != nil {
				continue
			}

			start := loc[0]
			// a minus bound to the literal negates it, unless the minus
			// is a binary subtraction off a preceding operand
			if start > 0 && code[start-1] == '-' && !endsOperand(code, start-1) {
				value = -value
				literal = "-" + literal
				start--
			}
			if allowedNumbers[value] {
				continue
			}
			// skip indexing and tuple field access
			if start > 0 && (code[start-1] == '[' || code[start-1] == '.') {
				continue
			}

			severity := model.SeverityMild
			if value > 1000 || value < -100 {
				severity = model.SeveritySpicy
			}
			issues = append(issues, r.issue(m, line, start+1, severity, "structure.magic_number", map[string]any{
				"value": literal,
			}))
		}
	}
	return issues
}

// endsOperand reports whether the nearest non-space character before
// idx closes an operand, making a following minus a subtraction
func endsOperand(code string, idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		c := code[i]
		if c == ' ' || c == '\t' {
			continue
		}
		return c == ')' || c == ']' || c == '_' ||
			('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
	}
	return false
}

var terminatorPattern = regexp.MustCompile(`^(?:return\b[^;]*;|break\s*;|continue\s*;|(?:panic!|unreachable!|std::process::exit)\s*\(.*\)\s*;?)$`)

// DeadCodeRule flags statements that follow a terminator in the same block
type DeadCodeRule struct {
	baseRule
}

// NewDeadCodeRule creates a new dead code rule
func NewDeadCodeRule() *DeadCodeRule {
	return &DeadCodeRule{baseRule{id: "dead-code", category: model.CategoryCodeStructure}}
}

// Detect runs dead code detection. A return, break, continue, panic or
// exit ends its block; any statement after it at the same depth, before
// the block closes, never executes.
func (r *DeadCodeRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		trimmed := strings.TrimSpace(m.CodeLine(line))
		if !terminatorPattern.MatchString(trimmed) {
			continue
		}

		depth := m.Depth[line-1]
		for next := line + 1; next <= m.File.LineCount; next++ {
			if m.Depth[next-1] < depth {
				break
			}
			code := strings.TrimSpace(m.CodeLine(next))
			if code == "" || m.Depth[next-1] > depth {
				continue
			}
			if strings.HasPrefix(code, "}") {
				break
			}
			issues = append(issues, r.issue(m, next, 1, model.SeverityMild, "structure.dead_code", map[string]any{
				"terminator_line": line,
			}))
			break
		}
	}
	return issues
}

// CommentedCodeRule flags blocks of commented-out code
type CommentedCodeRule struct {
	baseRule
}

// NewCommentedCodeRule creates a new commented code rule
func NewCommentedCodeRule() *CommentedCodeRule {
	return &CommentedCodeRule{baseRule{id: "commented-code", category: model.CategoryCodeStructure}}
}

// Detect runs commented code detection over the pre-extracted blocks
func (r *CommentedCodeRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for _, block := range m.CommentBlocks {
		severity := model.SeverityMild
		if block.LineCount > 10 {
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, block.StartLine, 1, severity, "structure.commented_code", map[string]any{
			"lines": block.LineCount,
		}))
	}
	return issues
}

var todoPattern = regexp.MustCompile(`(?i)//.*\b(TODO|FIXME|HACK|XXX)\b`)

// TodoCommentRule flags TODO style markers
type TodoCommentRule struct {
	baseRule
}

// NewTodoCommentRule creates a new todo comment rule
func NewTodoCommentRule() *TodoCommentRule {
	return &TodoCommentRule{baseRule{id: "todo-comment", category: model.CategoryCodeStructure}}
}

// Detect runs todo marker detection on raw lines, since markers live in
// comment text the code view blanks out
func (r *TodoCommentRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		match := todoPattern.FindStringSubmatchIndex(m.File.Line(line))
		if match == nil {
			continue
		}
		marker := strings.ToUpper(m.File.Line(line)[match[2]:match[3]])

		severity := model.SeverityMild
		if marker == "HACK" || marker == "XXX" {
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, match[2]+1, severity, "structure.todo_marker", map[string]any{
			"marker": marker,
		}))
	}
	return issues
}
