package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/internal/database"
	"github.com/example/vocabot/pkg/logger"
)

var (
	statsUserID     int64
	statsLanguageID int64
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's progress for one language",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context())
	},
}

func init() {
	statsCmd.Flags().Int64Var(&statsUserID, "user", 0, "user ID")
	statsCmd.Flags().Int64Var(&statsLanguageID, "language", 0, "language ID")
	_ = statsCmd.MarkFlagRequired("user")
	_ = statsCmd.MarkFlagRequired("language")
}

func runStats(ctx context.Context) error {
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

	summary, err := newStudyService(db, log).Summary(ctx, statsUserID, statsLanguageID)
	if err != nil {
		return err
	}

	fmt.Printf("Words in catalog: %d\n", summary.Total)
	fmt.Printf("Studied:          %d\n", summary.Studied)
	fmt.Printf("Known:            %d\n", summary.Known)
	fmt.Printf("Skipped:          %d\n", summary.Skipped)
	fmt.Printf("Progress:         %.1f%%\n", summary.Percentage)
	return nil
}
