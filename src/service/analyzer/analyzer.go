// Package analyzer runs the rule registry over a set of source files and
// folds the findings into a deterministic project result.
package analyzer

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
	"garbage-hunter/src/service/rule"
	"garbage-hunter/src/service/source"
	"garbage-hunter/src/util"
)

// Analyzer holds the configured rule registry. It is safe for concurrent
// use: rules are stateless and every file gets its own source model.
type Analyzer struct {
	cfg   *config.Config
	rules []rule.Rule
}

// New creates an analyzer from the given configuration
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		cfg:   cfg,
		rules: rule.NewRegistry(cfg),
	}
}

// fileOutcome is the per-file fan-out product before folding
type fileOutcome struct {
	result *model.AnalysisResult
	errors []model.FileError
}

// Analyze runs every rule over every file. Files are processed in
// parallel up to the configured limit; the fold is position-based over
// the sorted path list, so output order never depends on scheduling.
// Per-file failures are collected as soft errors, only context
// cancellation aborts the run.
func (a *Analyzer) Analyze(ctx context.Context, paths []string) (*model.ProjectResult, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	outcomes := make([]fileOutcome, len(sorted))

	g, ctx := errgroup.WithContext(ctx)
	limit := a.cfg.Concurrency.MaxParallelFiles
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, path := range sorted {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = a.analyzeFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	project := &model.ProjectResult{
		BySeverity: make(map[model.Severity]int),
		ByCategory: make(map[model.Category]int),
	}
	for _, outcome := range outcomes {
		project.Errors = append(project.Errors, outcome.errors...)
		if outcome.result == nil {
			continue
		}

		project.Results = append(project.Results, *outcome.result)
		project.FileCount++
		project.TotalLines += outcome.result.LineCount
		project.TotalIssues += len(outcome.result.Issues)
		for _, issue := range outcome.result.Issues {
			project.BySeverity[issue.Severity]++
			project.ByCategory[issue.Category]++
		}
	}

	util.Info("Analysis complete: %d files, %d issues", project.FileCount, project.TotalIssues)
	return project, nil
}

// analyzeFile loads, models and scans one file. Unreadable files yield
// an error entry and no result; a degraded model still runs the rules.
func (a *Analyzer) analyzeFile(path string) fileOutcome {
	var outcome fileOutcome

	file, err := source.Load(path)
	if err != nil {
		util.Warn("Skipping unreadable file %s: %v", path, err)
		outcome.errors = append(outcome.errors, model.FileError{
			FilePath: path,
			Kind:     model.ErrorFileUnreadable,
			Message:  err.Error(),
		})
		return outcome
	}

	m := source.Build(file)
	if m.Degraded {
		util.Debug("Source model degraded for %s", path)
		outcome.errors = append(outcome.errors, model.FileError{
			FilePath: path,
			Kind:     model.ErrorParseDegraded,
			Message:  "structural view incomplete, rules see fewer facts",
		})
	}

	var issues []model.Issue
	for _, r := range a.rules {
		found, failure := a.runRule(r, m)
		if failure != nil {
			outcome.errors = append(outcome.errors, *failure)
			continue
		}
		issues = append(issues, found...)
	}

	// stable sort keeps registry order for issues on the same position
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})

	outcome.result = &model.AnalysisResult{
		File:      file,
		FilePath:  path,
		LineCount: file.LineCount,
		Issues:    issues,
	}
	return outcome
}

// runRule isolates a single rule execution. A panicking rule loses its
// findings for this file but never takes the run down with it.
func (a *Analyzer) runRule(r rule.Rule, m *model.SourceModel) (issues []model.Issue, failure *model.FileError) {
	defer func() {
		if rec := recover(); rec != nil {
			util.Error("Rule %s panicked on %s: %v", r.ID(), m.File.Path, rec)
			issues = nil
			failure = &model.FileError{
				FilePath: m.File.Path,
				Kind:     model.ErrorRuleInternalFailure,
				RuleID:   r.ID(),
				Message:  fmt.Sprintf("rule panicked: %v", rec),
			}
		}
	}()

	return r.Detect(m), nil
}
