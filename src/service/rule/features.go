package rule

import (
	"regexp"
	"strings"

	"garbage-hunter/src/model"
)

// UnsafeAbuseRule flags unsafe blocks and the raw operations inside them
type UnsafeAbuseRule struct {
	baseRule
}

// NewUnsafeAbuseRule creates a new unsafe abuse rule
func NewUnsafeAbuseRule() *UnsafeAbuseRule {
	return &UnsafeAbuseRule{baseRule{id: "unsafe-abuse", category: model.CategoryRustFeatures}}
}

var (
	unsafeBlockPattern = regexp.MustCompile(`\bunsafe\s*\{`)
	transmutePattern   = regexp.MustCompile(`\btransmute(?:::<[^>]*>)?\s*\(`)
	rawPointerPattern  = regexp.MustCompile(`\*(?:const|mut)\s+\w`)
)

// Detect runs unsafe detection. Every unsafe block is at least spicy;
// transmute and raw pointer dereference escalate to nuclear.
func (r *UnsafeAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		if loc := transmutePattern.FindStringIndex(code); loc != nil {
			issues = append(issues, r.issue(m, line, loc[0]+1, model.SeverityNuclear, "features.unsafe_transmute", nil))
			continue
		}
		if loc := unsafeBlockPattern.FindStringIndex(code); loc != nil {
			severity := model.SeveritySpicy
			if rawPointerPattern.MatchString(code) {
				severity = model.SeverityNuclear
			}
			issues = append(issues, r.issue(m, line, loc[0]+1, severity, "features.unsafe_block", nil))
		}
	}

	for _, fn := range m.Functions {
		if fn.IsUnsafe {
			issues = append(issues, r.issue(m, fn.StartLine, 1, model.SeverityNuclear, "features.unsafe_function", map[string]any{
				"name": fn.Name,
			}))
		}
	}
	return issues
}

var (
	externBlockPattern = regexp.MustCompile(`\bextern\s+"C"\s*(fn)?`)
	noManglePattern    = regexp.MustCompile(`#\[no_mangle\]`)
	cVoidPattern       = regexp.MustCompile(`\bc_void\b|\bCString\b|\bCStr\b`)
)

// FFIAbuseRule flags foreign function interface surface
type FFIAbuseRule struct {
	baseRule
}

// NewFFIAbuseRule creates a new FFI abuse rule
func NewFFIAbuseRule() *FFIAbuseRule {
	return &FFIAbuseRule{baseRule{id: "ffi-abuse", category: model.CategoryRustFeatures}}
}

// Detect runs FFI detection. The extern "C" literal lives partly inside
// a string, so it is matched on the raw line gated on the code view; an
// extern fn qualifier is covered by no_mangle and stays unflagged here.
func (r *FFIAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		match := externBlockPattern.FindStringSubmatchIndex(m.File.Line(line))
		if match != nil && strings.Contains(code, `extern "`) {
			if match[2] < 0 { // not the fn qualifier form
				issues = append(issues, r.issue(m, line, match[0]+1, model.SeverityNuclear, "features.ffi_extern_block", nil))
				continue
			}
		}
		if loc := noManglePattern.FindStringIndex(m.File.Line(line)); loc != nil {
			issues = append(issues, r.issue(m, line, loc[0]+1, model.SeveritySpicy, "features.ffi_no_mangle", nil))
			continue
		}
		if loc := cVoidPattern.FindStringIndex(code); loc != nil {
			issues = append(issues, r.issue(m, line, loc[0]+1, model.SeverityMild, "features.ffi_c_types", nil))
		}
	}
	return issues
}

// AsyncAbuseRule flags async misuse, above all blocking inside async
type AsyncAbuseRule struct {
	baseRule
}

// NewAsyncAbuseRule creates a new async abuse rule
func NewAsyncAbuseRule() *AsyncAbuseRule {
	return &AsyncAbuseRule{baseRule{id: "async-abuse", category: model.CategoryRustFeatures}}
}

var blockingCallPattern = regexp.MustCompile(`\b(?:std::thread::sleep|thread::sleep|block_on)\s*\(`)

// Detect runs async detection. Blocking calls inside an async function
// stall the whole executor, so they go straight to nuclear.
func (r *AsyncAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		fn := m.FunctionAt(line)
		inAsync := fn != nil && fn.IsAsync

		if loc := blockingCallPattern.FindStringIndex(code); loc != nil && inAsync {
			issues = append(issues, r.issue(m, line, loc[0]+1, model.SeverityNuclear, "features.async_blocking_call", nil))
			continue
		}

		// .await chained more than twice on one expression
		if inAsync && strings.Count(code, ".await") > 2 {
			issues = append(issues, r.issue(m, line, strings.Index(code, ".await")+1, model.SeveritySpicy, "features.async_await_chain", map[string]any{
				"awaits": strings.Count(code, ".await"),
			}))
		}
	}

	// async functions that never await anything did not need to be async
	for _, fn := range m.Functions {
		if !fn.IsAsync || fn.IsTest {
			continue
		}
		awaits := 0
		for line := fn.StartLine; line <= fn.EndLine; line++ {
			awaits += strings.Count(m.CodeLine(line), ".await")
		}
		if awaits == 0 {
			issues = append(issues, r.issue(m, fn.StartLine, 1, model.SeverityMild, "features.async_without_await", map[string]any{
				"name": fn.Name,
			}))
		}
	}
	return issues
}

var channelCreatePattern = regexp.MustCompile(`\b(?:mpsc::channel|mpsc::sync_channel|crossbeam_channel::(?:bounded|unbounded))\s*[(:<]`)

// ChannelAbuseRule flags channel patterns prone to deadlock or unbounded growth
type ChannelAbuseRule struct {
	baseRule
}

// NewChannelAbuseRule creates a new channel abuse rule
func NewChannelAbuseRule() *ChannelAbuseRule {
	return &ChannelAbuseRule{baseRule{id: "channel-abuse", category: model.CategoryRustFeatures}}
}

// Detect runs channel detection
func (r *ChannelAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	creations := 0
	firstLine, firstCol := 0, 0
	var issues []model.Issue

	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)

		if loc := channelCreatePattern.FindStringIndex(code); loc != nil {
			creations++
			if firstLine == 0 {
				firstLine, firstCol = line, loc[0]+1
			}
		}

		// busy polling a channel instead of blocking on recv
		if col := strings.Index(code, ".try_recv()"); col >= 0 {
			if enclosingLoop(m, line) {
				issues = append(issues, r.issue(m, line, col+1, model.SeveritySpicy, "features.channel_busy_poll", nil))
			}
		}
	}

	if creations > 3 {
		issues = append(issues, r.issue(m, firstLine, firstCol, model.SeverityMild, "features.channel_sprawl", map[string]any{
			"channels": creations,
		}))
	}
	return issues
}

// enclosingLoop reports whether a loop/while/for header opens a block
// still covering the given line
func enclosingLoop(m *model.SourceModel, line int) bool {
	depth := m.Depth[line-1]
	for back := line - 1; back >= 1; back-- {
		if m.Depth[back-1] >= depth {
			continue
		}
		code := m.CodeLine(back)
		if strings.Contains(code, "loop") || strings.Contains(code, "while") || strings.Contains(code, "for ") {
			return true
		}
		depth = m.Depth[back-1]
		if depth == 0 {
			break
		}
	}
	return false
}

var macroDefPattern = regexp.MustCompile(`\bmacro_rules!\s+(\w+)`)

// MacroAbuseRule flags heavy declarative macro use
type MacroAbuseRule struct {
	baseRule
}

// NewMacroAbuseRule creates a new macro abuse rule
func NewMacroAbuseRule() *MacroAbuseRule {
	return &MacroAbuseRule{baseRule{id: "macro-abuse", category: model.CategoryRustFeatures}}
}

// Detect runs macro detection. Defining macros is fine in moderation;
// several per file, or one spanning many lines, is not.
func (r *MacroAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	defs := 0
	for line := 1; line <= m.File.LineCount; line++ {
		code := m.CodeLine(line)
		match := macroDefPattern.FindStringSubmatchIndex(code)
		if match == nil {
			continue
		}
		defs++

		span := closureBlockLines(m, line)
		severity := model.SeverityMild
		switch {
		case span > 50:
			severity = model.SeverityNuclear
		case span > 20 || defs > 2:
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, line, match[0]+1, severity, "features.macro_definition", map[string]any{
			"name":  code[match[2]:match[3]],
			"lines": span,
		}))
	}
	return issues
}
