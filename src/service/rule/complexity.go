package rule

import (
	"regexp"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

// DeepNestingRule flags block nesting beyond the configured threshold
type DeepNestingRule struct {
	baseRule
	cfg config.RulesConfig
}

// NewDeepNestingRule creates a new deep nesting rule
func NewDeepNestingRule(cfg config.RulesConfig) *DeepNestingRule {
	return &DeepNestingRule{baseRule{id: "deep-nesting", category: model.CategoryComplexity}, cfg}
}

// Detect runs deep nesting detection. Each contiguous region above the
// threshold yields one issue at its deepest line.
func (r *DeepNestingRule) Detect(m *model.SourceModel) []model.Issue {
	threshold := r.cfg.NestingThreshold
	if threshold <= 0 {
		threshold = 3
	}

	var issues []model.Issue
	regionMax := 0
	regionLine := 0

	flush := func() {
		if regionMax == 0 {
			return
		}
		severity := model.SeverityMild
		switch {
		case regionMax > threshold+5:
			severity = model.SeverityNuclear
		case regionMax > threshold+2:
			severity = model.SeveritySpicy
		}
		issues = append(issues, r.issue(m, regionLine, 1, severity, "complexity.deep_nesting", map[string]any{
			"depth":     regionMax,
			"threshold": threshold,
		}))
		regionMax = 0
	}

	for i, depth := range m.Depth {
		if depth > threshold {
			if depth > regionMax {
				regionMax = depth
				regionLine = i + 1
			}
			continue
		}
		flush()
	}
	flush()

	return issues
}

// LongFunctionRule flags functions exceeding the configured line count
type LongFunctionRule struct {
	baseRule
	cfg config.RulesConfig
}

// NewLongFunctionRule creates a new long function rule
func NewLongFunctionRule(cfg config.RulesConfig) *LongFunctionRule {
	return &LongFunctionRule{baseRule{id: "long-function", category: model.CategoryComplexity}, cfg}
}

// Detect runs long function detection
func (r *LongFunctionRule) Detect(m *model.SourceModel) []model.Issue {
	threshold := r.cfg.FunctionLengthThreshold
	if threshold <= 0 {
		threshold = 50
	}

	var issues []model.Issue
	for _, fn := range m.Functions {
		if fn.BodyLines <= threshold {
			continue
		}

		severity := model.SeverityMild
		switch {
		case fn.BodyLines > threshold*2:
			severity = model.SeverityNuclear
		case fn.BodyLines*2 > threshold*3:
			severity = model.SeveritySpicy
		}

		issues = append(issues, r.issue(m, fn.StartLine, 1, severity, "complexity.long_function", map[string]any{
			"name":      fn.Name,
			"lines":     fn.BodyLines,
			"threshold": threshold,
		}))
	}
	return issues
}

var controlFlowPattern = regexp.MustCompile(`\b(if|else|for|while|match|loop)\b`)

// GodFunctionRule flags functions combining high line count, deep nesting
// and many branches into one unfocused unit
type GodFunctionRule struct {
	baseRule
	cfg config.RulesConfig
}

// NewGodFunctionRule creates a new god function rule
func NewGodFunctionRule(cfg config.RulesConfig) *GodFunctionRule {
	return &GodFunctionRule{baseRule{id: "god-function", category: model.CategoryComplexity}, cfg}
}

// Detect runs god function detection
func (r *GodFunctionRule) Detect(m *model.SourceModel) []model.Issue {
	lengthThreshold := r.cfg.FunctionLengthThreshold
	if lengthThreshold <= 0 {
		lengthThreshold = 50
	}

	var issues []model.Issue
	for _, fn := range m.Functions {
		score := r.complexityScore(m, fn, lengthThreshold)
		if score <= 15 {
			continue
		}

		severity := model.SeverityMild
		switch {
		case score > 40:
			severity = model.SeverityNuclear
		case score > 25:
			severity = model.SeveritySpicy
		}

		issues = append(issues, r.issue(m, fn.StartLine, 1, severity, "complexity.god_function", map[string]any{
			"name":  fn.Name,
			"score": score,
		}))
	}
	return issues
}

// complexityScore blends parameter count, excess length, branch density
// and peak nesting into a single responsibility estimate
func (r *GodFunctionRule) complexityScore(m *model.SourceModel, fn model.FunctionSpan, lengthThreshold int) int {
	score := 0

	if fn.ParamCount > 5 {
		score += (fn.ParamCount - 5) * 2
	}
	if fn.BodyLines > lengthThreshold {
		score += (fn.BodyLines - lengthThreshold) / 10
	}

	baseDepth := m.Depth[fn.StartLine-1]
	maxDepth := 0
	for line := fn.StartLine; line <= fn.EndLine; line++ {
		score += len(controlFlowPattern.FindAllString(m.CodeLine(line), -1))
		if d := m.Depth[line-1] - baseDepth; d > maxDepth {
			maxDepth = d
		}
	}
	if maxDepth > 3 {
		score += (maxDepth - 3) * 3
	}

	return score
}
