package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"garbage-hunter/src/service/rule"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("garbage-hunter %s\n", h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long:  "Lists every enabled rule with its category and weight, in evaluation order",
		Run: func(cmd *cobra.Command, args []string) {
			rules := rule.NewRegistry(h.cfg)
			fmt.Printf("Enabled rules (%d):\n", len(rules))
			for _, r := range rules {
				fmt.Printf("  %-22s %-15s %.1f\n", r.ID(), r.Category(), r.Weight())
			}
		},
	}
}
