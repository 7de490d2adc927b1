// Package main implements the placement_agent CLI for candidate-requirement
// decision making over a placement data snapshot.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/placement-intel/internal/config"
	"github.com/jonathan/placement-intel/internal/db"
	"github.com/jonathan/placement-intel/internal/engine"
	"github.com/jonathan/placement-intel/internal/logger"
	"github.com/jonathan/placement-intel/internal/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "placement_agent",
	Short: "Placement decision and learning engine",
	Long:  "placement_agent scores candidates against hiring requirements, allocates capacity-bounded seats, predicts placement success from history, and tunes underperforming requirement policies.",
}

var (
	flagConfig      string
	flagDataDir     string
	flagDatabaseURL string
	flagVerbose     bool
	flagJSONLogs    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "", "Directory containing profiles.json, requirements.json, outcomes.json")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL connection URL (alternative to --data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig merges CLI flags over the optional config file and the
// environment. Flags win, then the config file, then DATABASE_URL.
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{
		DataDir:     flagDataDir,
		DatabaseURL: flagDatabaseURL,
		Verbose:     flagVerbose,
		JSONLogs:    flagJSONLogs,
	}

	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}

	if cfg.DataDir == "" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no snapshot source: pass --data or --database-url (or set DATABASE_URL)")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

// newEngine loads the snapshot from the configured source and wraps it in
// an engine. The returned cleanup closes the database pool when one was
// opened.
func newEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*engine.Engine, func(), error) {
	if cfg.DataDir != "" {
		log.Debug("loading snapshot from directory", zap.String("dir", cfg.DataDir))
		snap, err := snapshot.Load(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return engine.New(snap), func() {}, nil
	}

	log.Debug("loading snapshot from database")
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	snap, err := store.Snapshot(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return engine.New(snap), store.Close, nil
}
