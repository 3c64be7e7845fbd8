package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"garbage-hunter/src/config"
	"garbage-hunter/src/service/report"
	"garbage-hunter/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// buildReport assembles the render payload from an analysis outcome
func (c *ReportController) buildReport(outcome *Outcome) *report.Report {
	return &report.Report{
		GeneratedAt: time.Now().UTC(),
		Project:     outcome.Project,
		Score:       outcome.Score,
		Hotspots:    outcome.Hotspots,
	}
}

// GenerateReports writes reports in all configured formats and returns
// the output paths. The console format renders to stdout instead of a
// file.
func (c *ReportController) GenerateReports(outcome *Outcome) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	generator := report.NewGenerator(c.cfg.Output)
	payload := c.buildReport(outcome)

	var outputPaths []string
	for _, format := range c.cfg.Output.Formats {
		output, err := generator.Generate(payload, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		if format == "console" || format == "table" {
			fmt.Print(output)
			continue
		}

		outputPath := c.outputPath(format)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, err
		}
		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, err
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString generates a single report to a string
func (c *ReportController) GenerateToString(outcome *Outcome, format string) (string, error) {
	return report.NewGenerator(c.cfg.Output).Generate(c.buildReport(outcome), format)
}

func (c *ReportController) outputPath(format string) string {
	dir := c.cfg.Output.OutputDir
	if dir == "" {
		dir = "."
	}

	ext := format
	if format == "markdown" || format == "md" {
		ext = "md"
	}
	return filepath.Join(dir, "quality-report."+ext)
}
