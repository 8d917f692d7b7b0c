// Package cmd wires the CLI entry points: the reminder daemon, schema
// migration, progress stats, and an interactive study loop.
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/internal/database"
	"github.com/example/vocabot/internal/scheduler"
	"github.com/example/vocabot/internal/study"
	"github.com/example/vocabot/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vocabot",
	Short: "Vocabulary study and spaced repetition engine",
	Long: "Vocabot drills vocabulary word by word and schedules reviews with " +
		"doubling intervals. The root command runs the reminder daemon; " +
		"subcommands manage the schema and drive study sessions from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(studyCmd)
}

// runDaemon starts the reminder scheduler and blocks until SIGINT/SIGTERM.
func runDaemon() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.ReminderEnabled {
		log.Info("reminders disabled, nothing to run")
		return nil
	}

	reminder := scheduler.New(
		cfg,
		database.NewSettingsRepository(db),
		database.NewProgressRepository(db),
		scheduler.NewLogNotifier(log),
		log,
	)
	if err := reminder.Start(); err != nil {
		return err
	}
	defer reminder.Stop()

	log.Info("vocabot started, press Ctrl+C to stop")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("shutting down", zap.String("signal", sig.String()))
	return nil
}

// newStudyService builds the engine over database-backed stores.
func newStudyService(db *sqlx.DB, log *zap.Logger) *study.Service {
	return study.NewService(
		database.NewWordRepository(db),
		database.NewLanguageRepository(db),
		database.NewProgressRepository(db),
		database.NewSettingsRepository(db),
		study.NewMemorySessionStore(),
		log,
	)
}
