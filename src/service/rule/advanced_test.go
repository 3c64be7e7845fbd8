package rule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garbage-hunter/src/model"
)

func TestComplexClosurePileup(t *testing.T) {
	m := buildModel(t, `
fn transform(items: Vec<Item>) -> Vec<u32> {
    items.iter().map(|x| x.id).filter(|id| *id > 0).map(|id| id * 2).collect()
}`)

	issues := NewComplexClosureRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "advanced.closure_pileup", issues[0].MessageKey)
	assert.Equal(t, model.SeveritySpicy, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Data["closures"])
}

func TestComplexClosureTooLong(t *testing.T) {
	var b strings.Builder
	b.WriteString("fn spawn_worker() {\n")
	b.WriteString("    let worker = move |job| {\n")
	for i := 0; i < 12; i++ {
		b.WriteString("        handle(job);\n")
	}
	b.WriteString("    };\n")
	b.WriteString("}")

	issues := NewComplexClosureRule().Detect(buildModel(t, b.String()))

	require.Len(t, issues, 1)
	assert.Equal(t, "advanced.closure_too_long", issues[0].MessageKey)
	assert.Equal(t, 2, issues[0].Line)
}

func TestComplexClosureIgnoresBooleanOr(t *testing.T) {
	m := buildModel(t, `
fn admit(a: bool, b: bool, c: bool, d: bool) -> bool {
    if a || b || c || d {
        return true;
    }
    false
}`)

	issues := NewComplexClosureRule().Detect(m)
	assert.Empty(t, issues)
}

func TestLifetimeAbuseRule(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		severity model.Severity
	}{
		{"three lifetimes", "fn merge<'a, 'b, 'c>(x: &'a str, y: &'b str, z: &'c str) -> &'a str {", model.SeveritySpicy},
		{"four lifetimes", "fn weave<'a, 'b, 'c, 'd>(x: &'a A<'b>, y: &'c B<'d>) -> &'a A<'b> {", model.SeverityNuclear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.line+"\n}")

			issues := NewLifetimeAbuseRule().Detect(m)

			require.Len(t, issues, 1)
			assert.Equal(t, tt.severity, issues[0].Severity)
		})
	}
}

func TestLifetimeAbuseAllowsSimpleCases(t *testing.T) {
	m := buildModel(t, `
fn first<'a>(items: &'a [u32]) -> &'a u32 {
    &items[0]
}
fn name() -> &'static str {
    "hunter"
}`)

	issues := NewLifetimeAbuseRule().Detect(m)
	assert.Empty(t, issues)
}

func TestTraitComplexityRule(t *testing.T) {
	m := buildModel(t, `
fn process<T: Clone + Send + Sync + Debug>(item: T) {
    run(item);
}`)

	issues := NewTraitComplexityRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Data["bounds"])
	assert.Equal(t, model.SeverityMild, issues[0].Severity)
}

func TestTraitComplexityAllowsModestBounds(t *testing.T) {
	m := buildModel(t, `
fn process<T: Clone + Send>(item: T) {
    run(item);
}`)

	issues := NewTraitComplexityRule().Detect(m)
	assert.Empty(t, issues)
}

func TestGenericAbuseRule(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		severity model.Severity
	}{
		{"three params", "struct Registry<A, B, C> {", model.SeverityMild},
		{"five params", "struct Hub<A, B, C, D, E> {", model.SeveritySpicy},
		{"six params", "struct Tangle<A, B, C, D, E, F> {", model.SeverityNuclear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.line+"\n}")

			issues := NewGenericAbuseRule().Detect(m)

			require.Len(t, issues, 1)
			assert.Equal(t, tt.severity, issues[0].Severity)
		})
	}
}

func TestGenericAbuseIgnoresUsageSites(t *testing.T) {
	m := buildModel(t, `
fn collect_pairs() {
    let pairs: Vec<(String, u32, bool)> = Vec::new();
    drop(pairs);
}`)

	issues := NewGenericAbuseRule().Detect(m)
	assert.Empty(t, issues)
}
