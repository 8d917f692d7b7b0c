package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/internal/database"
	"github.com/example/vocabot/pkg/logger"
	"github.com/example/vocabot/pkg/models"
)

var seedDemo bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedDemo, "seed", false, "insert a small demo catalog after migrating")
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	// Connect ensures the schema as part of opening the database.
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("schema up to date", zap.String("backend", cfg.DBType))

	if !seedDemo {
		return nil
	}
	return seedDemoCatalog(ctx, db, log)
}

// demoWords is a tiny starter catalog for trying the engine out without a
// real word list.
var demoWords = []models.Word{
	{WordNumber: 1, WordForeign: "kissa", Translation: "cat", Transcription: "ˈkisːɑ"},
	{WordNumber: 2, WordForeign: "koira", Translation: "dog", Transcription: "ˈkoirɑ"},
	{WordNumber: 3, WordForeign: "talo", Translation: "house", Transcription: "ˈtɑlo"},
	{WordNumber: 4, WordForeign: "vesi", Translation: "water", Transcription: "ˈʋesi"},
	{WordNumber: 5, WordForeign: "leipä", Translation: "bread", Transcription: "ˈleipæ"},
	{WordNumber: 6, WordForeign: "kirja", Translation: "book", Transcription: "ˈkirjɑ"},
	{WordNumber: 7, WordForeign: "ystävä", Translation: "friend", Transcription: "ˈystæʋæ"},
	{WordNumber: 8, WordForeign: "kiitos", Translation: "thank you", Transcription: "ˈkiːtos"},
	{WordNumber: 9, WordForeign: "hyvä", Translation: "good", Transcription: "ˈhyʋæ"},
	{WordNumber: 10, WordForeign: "päivä", Translation: "day", Transcription: "ˈpæiʋæ"},
}

// seedDemoCatalog inserts the demo language and words unless they are
// already present, so running migrate --seed twice is safe.
func seedDemoCatalog(ctx context.Context, db *sqlx.DB, log *zap.Logger) error {
	languages := database.NewLanguageRepository(db)
	words := database.NewWordRepository(db)

	var demo *models.Language
	existing, err := languages.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Name == "Finnish" {
			demo = &existing[i]
			break
		}
	}
	if demo == nil {
		demo = &models.Language{Name: "Finnish", Code: "fi"}
		if err := languages.Create(ctx, demo); err != nil {
			return err
		}
	}

	count, err := words.CountByLanguage(ctx, demo.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("demo catalog already seeded",
			zap.Int64("language_id", demo.ID),
			zap.Int("words", count),
		)
		return nil
	}

	for i := range demoWords {
		word := demoWords[i]
		word.LanguageID = demo.ID
		if err := words.Create(ctx, &word); err != nil {
			return err
		}
	}
	log.Info("demo catalog seeded",
		zap.Int64("language_id", demo.ID),
		zap.Int("words", len(demoWords)),
	)
	return nil
}
