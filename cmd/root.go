package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolofai/lessonreview/internal/config"
	"github.com/schoolofai/lessonreview/internal/logger"
	"github.com/schoolofai/lessonreview/internal/review"
	"github.com/schoolofai/lessonreview/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "lessonreview",
	Short:        "Spaced-repetition lesson review",
	Long:         "lessonreview ranks previously taught lessons a learner should revisit, based on overdue outcomes and current mastery.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LESSONREVIEW_DB env var)")
	pf.String("config", "", "Path to YAML config file (overrides LESSONREVIEW_CONFIG env var)")
	pf.String("log", "", "Log mode: development, production or quiet (overrides LESSONREVIEW_LOG env var)")
	pf.Bool("json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles what a command needs. Close releases the store and flushes
// the logger.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
}

func (r *env) Close() {
	r.store.Close()
	r.log.Sync()
}

func (r *env) service() *review.Service {
	return review.NewService(r.store,
		review.WithLogger(r.log),
		review.WithConfig(r.cfg.ServiceConfig()),
	)
}

// open resolves configuration, builds the logger and opens the store.
func open(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		cfg.LogMode = m
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", "path", dbPath)
	return &env{cfg: cfg, log: log, store: st}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (LESSONREVIEW_DB or the config file), then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// learnerFlags registers the --student and --course flags.
func learnerFlags(c *cobra.Command) {
	c.Flags().String("student", "", "Student id (required)")
	c.Flags().String("course", "", "Course id (required)")
	_ = c.MarkFlagRequired("student")
	_ = c.MarkFlagRequired("course")
}

func learner(cmd *cobra.Command) (studentID, courseID string) {
	studentID, _ = cmd.Flags().GetString("student")
	courseID, _ = cmd.Flags().GetString("course")
	return studentID, courseID
}
