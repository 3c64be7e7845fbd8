package config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "garbage-hunter",
			Version:     "1.0.0",
			Description: "Rust anti-pattern detection and scoring engine",
		},
		Analysis: AnalysisConfig{
			Extensions: []string{".rs"},
		},
		Rules: RulesConfig{
			NestingThreshold:        3,
			FunctionLengthThreshold: 50,
			MinDuplicateBlock:       5,
			MaxFileLines:            1000,
		},
		Concurrency: ConcurrencyConfig{
			MaxParallelFiles: 8,
		},
		Exclusions: ExclusionsConfig{
			FilePatterns: []string{
				"**/target/**", "**/vendor/**", "**/node_modules/**",
			},
		},
		Output: OutputConfig{
			Formats:      []string{"console"},
			OutputDir:    ".",
			HotspotsTopN: 5,
			MaxIssues:    0,
		},
		Logging: LoggingConfig{
			Level:            "info",
			IncludeTimestamp: true,
		},
	}
}
