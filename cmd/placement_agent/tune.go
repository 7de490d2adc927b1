package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/placement-intel/internal/db"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Propose a policy adjustment for an underperforming requirement",
	Long:  "Analyzes the requirement's outcome history and, when its success rate is poor, proposes one bounded weight adjustment with a reproducible rationale. Use --persist to store the new policy version (database source only).",
	RunE:  runTune,
}

var (
	tuneRequirementID string
	tunePersist       bool
)

func init() {
	tuneCmd.Flags().StringVarP(&tuneRequirementID, "requirement", "r", "", "Requirement ID (required)")
	tuneCmd.Flags().BoolVar(&tunePersist, "persist", false, "Persist the adjusted policy version to the database")

	if err := tuneCmd.MarkFlagRequired("requirement"); err != nil {
		panic(fmt.Sprintf("failed to mark requirement flag as required: %v", err))
	}

	rootCmd.AddCommand(tuneCmd)
}

func runTune(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if tunePersist && cfg.DatabaseURL == "" {
		return fmt.Errorf("--persist requires a database source")
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

	result, err := eng.Tune(tuneRequirementID)
	if err != nil {
		return err
	}

	if !result.Adjusted {
		fmt.Fprintf(os.Stdout, "Requirement %s: no adjustment needed\n", tuneRequirementID)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tune result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	if !tunePersist {
		return nil
	}

	store, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SavePolicyVersion(cmd.Context(), result)
	if err != nil {
		return err
	}
	log.Info("persisted policy version",
		zap.String("requirement", tuneRequirementID),
		zap.Int("version", result.Policy.Version),
		zap.String("id", id.String()))
	return nil
}
