package controller

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"garbage-hunter/src/config"
	"garbage-hunter/src/model"
	"garbage-hunter/src/service/analyzer"
	"garbage-hunter/src/service/scoring"
	"garbage-hunter/src/util"
)

// AnalysisController orchestrates the hunt: file discovery, analysis
// and scoring
type AnalysisController struct {
	cfg *config.Config
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(cfg *config.Config) *AnalysisController {
	return &AnalysisController{cfg: cfg}
}

// AnalyzeRequest represents a request to analyze the given targets.
// Each target may be a file or a directory to walk.
type AnalyzeRequest struct {
	Targets []string
}

// Outcome bundles the analysis result with its score report
type Outcome struct {
	Project  *model.ProjectResult
	Score    *model.ScoreReport
	Hotspots []model.FileHotspot
}

// Analyze runs the full pipeline over the requested targets
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*Outcome, error) {
	startTime := time.Now()
	util.Info("Starting analysis of %d target(s)", len(req.Targets))

	paths, err := c.discoverFiles(req.Targets)
	if err != nil {
		util.Error("File discovery failed: %v", err)
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no source files found under %v", req.Targets)
	}
	util.Debug("Discovered %d source files", len(paths))

	project, err := analyzer.New(c.cfg).Analyze(ctx, paths)
	if err != nil {
		util.Error("Analysis failed: %v", err)
		return nil, err
	}

	score := scoring.NewScorer().Score(project)

	util.Info("Analysis complete: %d issues, score %.1f/100 (%s), took %v",
		project.TotalIssues, score.OverallScore, score.QualityLevel, time.Since(startTime))

	return &Outcome{
		Project:  project,
		Score:    score,
		Hotspots: project.Hotspots(c.cfg.Output.HotspotsTopN),
	}, nil
}

// discoverFiles expands the targets into the list of analyzable files,
// applying the configured extension filter and exclusion patterns
func (c *AnalysisController) discoverFiles(targets []string) ([]string, error) {
	matcher := util.NewExclusionMatcher(c.cfg.Exclusions)

	var paths []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat target: %w", err)
		}

		if !info.IsDir() {
			if c.wantsFile(target, matcher) {
				paths = append(paths, target)
			}
			continue
		}

		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if matcher.MatchesFile(path + "/") {
					return filepath.SkipDir
				}
				return nil
			}
			if c.wantsFile(path, matcher) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
	}

	return paths, nil
}

// wantsFile applies the extension filter and exclusion patterns
func (c *AnalysisController) wantsFile(path string, matcher *util.ExclusionMatcher) bool {
	ext := filepath.Ext(path)
	for _, allowed := range c.cfg.Analysis.Extensions {
		if ext == allowed {
			return !matcher.MatchesFile(path)
		}
	}
	return false
}
