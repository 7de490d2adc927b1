package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/placement-intel/internal/explanation"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one requirement",
	Long:  "Runs the full decision pipeline (credibility, risk, matching) for a single candidate/requirement pair and prints the decision with an explanation.",
	RunE:  runScore,
}

var (
	scoreProfileID     string
	scoreRequirementID string
	scoreAudience      string
	scoreJSON          bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreProfileID, "profile", "p", "", "Candidate profile ID (required)")
	scoreCmd.Flags().StringVarP(&scoreRequirementID, "requirement", "r", "", "Requirement ID (required)")
	scoreCmd.Flags().StringVarP(&scoreAudience, "audience", "a", "reviewer", "Explanation audience: candidate or reviewer")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the raw decision as JSON instead of the explanation")

	if err := scoreCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("requirement"); err != nil {
		panic(fmt.Sprintf("failed to mark requirement flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreAudience != string(explanation.AudienceCandidate) && scoreAudience != string(explanation.AudienceReviewer) {
		return fmt.Errorf("invalid audience %q: want candidate or reviewer", scoreAudience)
	}

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

	decision, err := eng.Score(scoreProfileID, scoreRequirementID)
	if err != nil {
		return err
	}
	log.Debug("scored candidate",
		zap.String("profile", scoreProfileID),
		zap.String("requirement", scoreRequirementID),
		zap.String("status", string(decision.Status)),
		zap.Float64("score", decision.Score))

	if scoreJSON {
		out, err := json.MarshalIndent(decision, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal decision: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	fmt.Fprint(os.Stdout, explanation.Explain(decision, explanation.Audience(scoreAudience)))
	return nil
}
