package config

// Config is the root configuration structure
type Config struct {
	Agent       AgentConfig       `yaml:"agent"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Rules       RulesConfig       `yaml:"rules"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Exclusions  ExclusionsConfig  `yaml:"exclusions"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// AnalysisConfig contains settings for source model construction
type AnalysisConfig struct {
	// Extensions lists the file extensions accepted for analysis
	Extensions []string `yaml:"extensions"`
}

// RulesConfig contains the tunable detection thresholds and per-rule toggles
type RulesConfig struct {
	// NestingThreshold is the block depth beyond which nesting is flagged
	NestingThreshold int `yaml:"nesting_threshold"`
	// FunctionLengthThreshold is the body line count beyond which a
	// function is considered too long
	FunctionLengthThreshold int `yaml:"function_length_threshold"`
	// MinDuplicateBlock is the minimum contiguous line count for a
	// duplicated block to be reported
	MinDuplicateBlock int `yaml:"min_duplicate_block"`
	// MaxFileLines is the file size beyond which a file is flagged
	MaxFileLines int `yaml:"max_file_lines"`
	// Disabled lists rule ids excluded from the registry
	Disabled []string `yaml:"disabled"`
}

// IsDisabled reports whether the given rule id is switched off
func (r RulesConfig) IsDisabled(ruleID string) bool {
	for _, id := range r.Disabled {
		if id == ruleID {
			return true
		}
	}
	return false
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	// MaxParallelFiles bounds the number of files analyzed concurrently
	MaxParallelFiles int `yaml:"max_parallel_files"`
}

// ExclusionsConfig contains exclusion patterns applied during traversal
type ExclusionsConfig struct {
	FilePatterns     []string `yaml:"file_patterns"`
	Files            []string `yaml:"files"`
	FunctionPatterns []string `yaml:"function_patterns"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats      []string `yaml:"formats"`
	OutputDir    string   `yaml:"output_dir"`
	HotspotsTopN int      `yaml:"hotspots_top_n"`
	MaxIssues    int      `yaml:"max_issues"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
}
