package rule

import (
	"regexp"
	"strings"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CodeDuplicationRule flags repeated blocks of normalized code lines
// within a single file
type CodeDuplicationRule struct {
	baseRule
	cfg config.RulesConfig
}

// NewCodeDuplicationRule creates a new code duplication rule
func NewCodeDuplicationRule(cfg config.RulesConfig) *CodeDuplicationRule {
	return &CodeDuplicationRule{baseRule{id: "code-duplication", category: model.CategoryDuplication}, cfg}
}

// Detect runs duplication detection. Lines are normalized by collapsing
// whitespace, then compared as sliding windows of the configured minimum
// block size. Overlapping windows of the same repeated block collapse
// into a single issue reported at the first instance.
func (r *CodeDuplicationRule) Detect(m *model.SourceModel) []model.Issue {
	window := r.cfg.MinDuplicateBlock
	if window <= 0 {
		window = 5
	}

	normalized := make([]string, len(m.CodeLines))
	for i, line := range m.CodeLines {
		normalized[i] = whitespacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	}

	// first occurrence of each window fingerprint
	seen := make(map[string]int)
	// lines already attributed to a reported duplicate
	claimed := make(map[int]bool)
	// fingerprint -> instance count beyond the first
	counts := make(map[string]*duplicateGroup)

	for start := 0; start+window <= len(normalized); start++ {
		fingerprint, ok := windowFingerprint(normalized, start, window)
		if !ok {
			continue
		}

		first, exists := seen[fingerprint]
		if !exists {
			seen[fingerprint] = start
			continue
		}
		if start < first+window || claimed[start] {
			continue
		}

		group := counts[fingerprint]
		if group == nil {
			group = &duplicateGroup{firstLine: first + 1}
			counts[fingerprint] = group
		}
		group.instances++
		for i := 0; i < window; i++ {
			claimed[start+i] = true
		}
	}

	var issues []model.Issue
	for line := 1; line <= len(normalized); line++ {
		for _, group := range counts {
			if group.firstLine != line {
				continue
			}
			// three or more total instances of the block
			severity := model.SeverityMild
			if group.instances >= 2 {
				severity = model.SeveritySpicy
			}
			issues = append(issues, r.issue(m, line, 1, severity, "duplication.repeated_block", map[string]any{
				"block_lines": window,
				"instances":   group.instances + 1,
			}))
		}
	}
	return issues
}

type duplicateGroup struct {
	firstLine int
	instances int
}

// windowFingerprint joins the window's lines, rejecting windows that are
// mostly blank or trivially short
func windowFingerprint(normalized []string, start, window int) (string, bool) {
	substantial := 0
	var b strings.Builder
	for i := start; i < start+window; i++ {
		if len(normalized[i]) > 3 {
			substantial++
		}
		b.WriteString(normalized[i])
		b.WriteByte('\n')
	}
	if substantial*2 < window {
		return "", false
	}
	return b.String(), true
}
