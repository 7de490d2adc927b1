package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a bias and fairness audit over the outcome history",
	Long:  "Breaks historical selection rates down by GPA bucket, credibility level, branch and communication band, compares skill-heavy against GPA-heavy cohorts, and reports an overall fairness score with recommendations.",
	RunE:  runAudit,
}

var auditSummaryFor string

func init() {
	auditCmd.Flags().StringVar(&auditSummaryFor, "summary-for", "", "Also print the match summary for one requirement ID")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
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

	report := eng.Audit()
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal audit report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if auditSummaryFor == "" {
		return nil
	}

	summary, err := eng.Summary(cmd.Context(), auditSummaryFor)
	if err != nil {
		return err
	}
	summaryOut, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match summary: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(summaryOut))
	return nil
}
