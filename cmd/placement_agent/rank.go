package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/placement-intel/internal/explanation"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Match every candidate against a requirement and allocate seats",
	Long:  "Scores the full candidate pool against one requirement in parallel, ranks the qualifiers, and partitions them into selected, waitlisted and capacity-rejected sets.",
	RunE:  runRank,
}

var (
	rankRequirementID string
	rankReportFor     string
	rankJSON          bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankRequirementID, "requirement", "r", "", "Requirement ID (required)")
	rankCmd.Flags().StringVar(&rankReportFor, "report-for", "", "Print a seat allocation report for one candidate ID")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Print the allocation as JSON")

	if err := rankCmd.MarkFlagRequired("requirement"); err != nil {
		panic(fmt.Sprintf("failed to mark requirement flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	eng, cleanup, err := newEngine(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := eng.Allocate(cmd.Context(), rankRequirementID)
	if err != nil {
		return err
	}
	log.Debug("allocated seats",
		zap.String("requirement", rankRequirementID),
		zap.Int("selected", len(result.Selected)),
		zap.Int("waitlisted", len(result.Waitlisted)),
		zap.Int("rejected", len(result.Rejected)))

	if rankJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal allocation: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	if rankReportFor != "" {
		fmt.Fprint(os.Stdout, explanation.AllocationReport(result, rankReportFor))
		return nil
	}

	fmt.Fprintf(os.Stdout, "Requirement %s: capacity %d, cutoff %.2f\n",
		result.RequirementID, result.Capacity, result.CutoffScore)
	fmt.Fprintln(os.Stdout, "Selected:")
	for _, d := range result.Selected {
		fmt.Fprintf(os.Stdout, "  %s (%.2f)\n", d.ProfileID, d.Score)
	}
	fmt.Fprintln(os.Stdout, "Waitlisted:")
	for _, d := range result.Waitlisted {
		fmt.Fprintf(os.Stdout, "  %s (%.2f)\n", d.ProfileID, d.Score)
	}
	fmt.Fprintf(os.Stdout, "Rejected: %d candidates\n", len(result.Rejected))
	return nil
}
