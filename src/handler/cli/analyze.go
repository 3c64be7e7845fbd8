package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"garbage-hunter/src/controller"
	"garbage-hunter/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		outputDir string
		format    string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze Rust sources for anti-patterns",
		Long:  "Runs every enabled rule against the given files or directories and scores the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			util.Info("Analyzing %d target(s) (timeout: %v)", len(args), timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// Run analysis
			analysisCtrl := controller.NewAnalysisController(h.cfg)
			outcome, err := analysisCtrl.Analyze(ctx, controller.AnalyzeRequest{
				Targets: args,
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Output results
			if outputDir != "" {
				h.cfg.Output.OutputDir = outputDir
				if format != "" {
					h.cfg.Output.Formats = []string{format}
				}

				reportCtrl := controller.NewReportController(h.cfg)
				paths, err := reportCtrl.GenerateReports(outcome)
				if err != nil {
					return fmt.Errorf("generating reports: %w", err)
				}
				for _, path := range paths {
					fmt.Printf("Report written to %s\n", path)
				}
			} else {
				// Output to stdout
				reportCtrl := controller.NewReportController(h.cfg)
				outputFormat := format
				if outputFormat == "" {
					outputFormat = "json"
				}

				output, err := reportCtrl.GenerateToString(outcome, outputFormat)
				if err != nil {
					// Fallback to raw JSON
					data, _ := json.MarshalIndent(outcome.Score, "", "  ")
					fmt.Println(string(data))
				} else {
					fmt.Println(output)
				}
			}

			// Print summary to stderr
			fmt.Fprintf(os.Stderr, "\nAnalysis complete:\n")
			fmt.Fprintf(os.Stderr, "  Files analyzed: %d\n", outcome.Project.FileCount)
			fmt.Fprintf(os.Stderr, "  Total issues: %d\n", outcome.Project.TotalIssues)
			fmt.Fprintf(os.Stderr, "  Quality score: %.1f/100 (%s)\n",
				outcome.Score.OverallScore, outcome.Score.QualityLevel)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, sarif, console)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	return cmd
}
