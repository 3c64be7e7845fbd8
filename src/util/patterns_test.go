package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"garbage-hunter/src/config"
)

func TestExclusionMatcher_Files(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FilePatterns: []string{"**/target/**", "**/vendor/**", "*.tmp.rs"},
		Files:        []string{"src/generated.rs"},
	})

	tests := []struct {
		path     string
		excluded bool
	}{
		{"src/generated.rs", true},
		{"project/target/debug/build.rs", true},
		{"target/release/app.rs", true},
		{"deps/vendor/serde/lib.rs", true},
		{"scratch.tmp.rs", true},
		{"src/main.rs", false},
		{"src/lib.rs", false},
		{"src/retarget/mod.rs", false},
		{"src/target_list.rs", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, m.MatchesFile(tt.path))
		})
	}
}

func TestExclusionMatcher_Functions(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FunctionPatterns: []string{"^test_", "_bench$"},
	})

	assert.True(t, m.MatchesFunction("test_parser"))
	assert.True(t, m.MatchesFunction("scoring_bench"))
	assert.False(t, m.MatchesFunction("parse_line"))
	assert.False(t, m.MatchesFunction(""))
}
