package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	cfg, err = loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Rules.NestingThreshold)
	assert.Equal(t, 50, cfg.Rules.FunctionLengthThreshold)
	assert.Equal(t, 5, cfg.Rules.MinDuplicateBlock)
	assert.Equal(t, 1000, cfg.Rules.MaxFileLines)
}

func TestLoad_OverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("GH_LOG_LEVEL", "debug")

	content := `
rules:
  nesting_threshold: 5
  disabled: [magic-number]
logging:
  level: ${GH_LOG_LEVEL}
output:
  output_dir: ${GH_OUTPUT_DIR:-reports}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Rules.NestingThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "reports", cfg.Output.OutputDir)
	assert.True(t, cfg.Rules.IsDisabled("magic-number"))
	assert.False(t, cfg.Rules.IsDisabled("unwrap-abuse"))

	// untouched sections keep their defaults
	assert.Equal(t, 50, cfg.Rules.FunctionLengthThreshold)
}
