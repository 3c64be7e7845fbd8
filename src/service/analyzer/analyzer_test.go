package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const messySource = `fn process(foo: u32) -> u32 {
    let temp = foo.to_string().parse().unwrap();
    println!("got {}", temp);
    temp
}
`

const cleanSource = `fn double(amount: u32) -> u32 {
    amount * 2
}
`

func TestAnalyzeFindsIssues(t *testing.T) {
	dir := t.TempDir()
	messy := writeSource(t, dir, "messy.rs", messySource)
	clean := writeSource(t, dir, "clean.rs", cleanSource)

	project, err := New(config.DefaultConfig()).Analyze(context.Background(), []string{messy, clean})

	require.NoError(t, err)
	assert.Equal(t, 2, project.FileCount)
	assert.Empty(t, project.Errors)
	assert.Greater(t, project.TotalIssues, 0)

	// results come back in path order regardless of input order
	require.Len(t, project.Results, 2)
	assert.Equal(t, clean, project.Results[0].FilePath)
	assert.Equal(t, messy, project.Results[1].FilePath)
	assert.Empty(t, project.Results[0].Issues)
	assert.NotEmpty(t, project.Results[1].Issues)
}

func TestAnalyzeIssuesSortedByPosition(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.rs", messySource)

	project, err := New(config.DefaultConfig()).Analyze(context.Background(), []string{path})
	require.NoError(t, err)

	issues := project.AllIssues()
	for i := 1; i < len(issues); i++ {
		prev, cur := issues[i-1], issues[i]
		inOrder := prev.Line < cur.Line ||
			(prev.Line == cur.Line && prev.Column <= cur.Column)
		assert.True(t, inOrder, "issue %d out of order: %v before %v", i, prev, cur)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.rs", messySource),
		writeSource(t, dir, "b.rs", messySource),
		writeSource(t, dir, "c.rs", cleanSource),
	}

	first, err := New(config.DefaultConfig()).Analyze(context.Background(), paths)
	require.NoError(t, err)
	second, err := New(config.DefaultConfig()).Analyze(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeCollectsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.rs", cleanSource)
	missing := filepath.Join(dir, "missing.rs")

	project, err := New(config.DefaultConfig()).Analyze(context.Background(), []string{good, missing})

	require.NoError(t, err, "a missing file must not abort the run")
	assert.Equal(t, 1, project.FileCount)
	require.Len(t, project.Errors, 1)
	assert.Equal(t, model.ErrorFileUnreadable, project.Errors[0].Kind)
	assert.Equal(t, missing, project.Errors[0].FilePath)
}

func TestAnalyzeFlagsDegradedFiles(t *testing.T) {
	dir := t.TempDir()
	broken := writeSource(t, dir, "broken.rs", "fn open() {\n    let s = \"unterminated\n")

	project, err := New(config.DefaultConfig()).Analyze(context.Background(), []string{broken})

	require.NoError(t, err)
	assert.Equal(t, 1, project.FileCount, "degraded files still produce results")
	require.NotEmpty(t, project.Errors)
	assert.Equal(t, model.ErrorParseDegraded, project.Errors[0].Kind)
}

func TestAnalyzeHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.rs", cleanSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(config.DefaultConfig()).Analyze(ctx, []string{path})
	assert.Error(t, err)
}

func TestAnalyzeCountsBySeverityAndCategory(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.rs", messySource)

	project, err := New(config.DefaultConfig()).Analyze(context.Background(), []string{path})
	require.NoError(t, err)

	severityTotal := 0
	for _, n := range project.BySeverity {
		severityTotal += n
	}
	categoryTotal := 0
	for _, n := range project.ByCategory {
		categoryTotal += n
	}
	assert.Equal(t, project.TotalIssues, severityTotal)
	assert.Equal(t, project.TotalIssues, categoryTotal)
}
