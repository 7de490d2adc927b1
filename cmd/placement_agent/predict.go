package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-intel/internal/validation"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict placement success probability for a candidate",
	Long:  "Trains a per-requirement model on historical outcomes and predicts the probability that the candidate would succeed if placed. With too little history the prediction is neutral.",
	RunE:  runPredict,
}

var (
	predictProfileID     string
	predictRequirementID string
	predictJSON          bool
)

func init() {
	predictCmd.Flags().StringVarP(&predictProfileID, "profile", "p", "", "Candidate profile ID (required)")
	predictCmd.Flags().StringVarP(&predictRequirementID, "requirement", "r", "", "Requirement ID (required)")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "Print the prediction as JSON")

	if err := predictCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := predictCmd.MarkFlagRequired("requirement"); err != nil {
		panic(fmt.Sprintf("failed to mark requirement flag as required: %v", err))
	}

	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
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

	pred, err := eng.Predict(predictProfileID, predictRequirementID)
	if err != nil {
		var insufficient *validation.InsufficientDataError
		if !errors.As(err, &insufficient) {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v; prediction is neutral\n", insufficient)
	}

	if predictJSON {
		out, err := json.MarshalIndent(pred, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal prediction: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	fmt.Fprintf(os.Stdout, "Candidate %s vs requirement %s\n", pred.ProfileID, pred.RequirementID)
	fmt.Fprintf(os.Stdout, "Success probability: %.2f (%s confidence)\n", pred.Probability, pred.Confidence)
	for name, weight := range pred.FeatureImportance {
		fmt.Fprintf(os.Stdout, "  %-20s %.2f\n", name, weight)
	}
	return nil
}
