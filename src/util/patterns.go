package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"garbage-hunter/src/config"
)

// ExclusionMatcher matches files and functions against exclusion patterns
type ExclusionMatcher struct {
	filePatterns     []string
	files            []string
	functionPatterns []*regexp.Regexp
}

// NewExclusionMatcher creates a new exclusion matcher from config
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{
		filePatterns: cfg.FilePatterns,
		files:        cfg.Files,
	}

	for _, p := range cfg.FunctionPatterns {
		if re, err := regexp.Compile(p); err == nil {
			m.functionPatterns = append(m.functionPatterns, re)
		}
	}

	return m
}

// MatchesFile checks if a file path should be excluded
func (m *ExclusionMatcher) MatchesFile(filePath string) bool {
	for _, f := range m.files {
		if filePath == f {
			return true
		}
	}

	for _, pattern := range m.filePatterns {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		if matchDoubleGlob(pattern, filePath) {
			return true
		}
	}

	return false
}

// MatchesFunction checks if a function name should be excluded
func (m *ExclusionMatcher) MatchesFunction(funcName string) bool {
	if funcName == "" {
		return false
	}
	for _, re := range m.functionPatterns {
		if re.MatchString(funcName) {
			return true
		}
	}
	return false
}

// matchDoubleGlob handles ** patterns in globs. Each ** matches any
// run of path segments, so the literal pieces between them must appear
// in order, bounded by separators.
func matchDoubleGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		return false
	}

	parts := strings.Split(pattern, "**")
	rest := path
	for i, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}

		idx := indexSegment(rest, part)
		if idx < 0 {
			return false
		}
		if i == 0 && idx != 0 {
			// a literal leading piece anchors at the start of the path
			return false
		}
		rest = rest[idx+len(part):]
	}

	// a literal trailing piece must consume the end of the path
	if last := strings.Trim(parts[len(parts)-1], "/"); last != "" && rest != "" {
		return false
	}
	return true
}

// indexSegment finds needle in haystack bounded by separators on both
// sides, or -1 if no such occurrence exists.
func indexSegment(haystack, needle string) int {
	for from := 0; ; {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from

		startOK := idx == 0 || haystack[idx-1] == '/'
		end := idx + len(needle)
		endOK := end == len(haystack) || haystack[end] == '/'
		if startOK && endOK {
			return idx
		}
		from = idx + 1
	}
}

// MatchGlob matches a path against a glob pattern, supporting **
func MatchGlob(pattern, path string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleGlob(pattern, path)
	}
	matched, _ := filepath.Match(pattern, path)
	return matched
}
