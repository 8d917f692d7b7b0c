package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// SettingsRepository handles database operations for per-user, per-language
// study settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new repository instance
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored settings for a user and language, falling back to
// the documented defaults when the user has never configured the language.
func (r *SettingsRepository) Get(ctx context.Context, userID, languageID int64) (*models.UserLanguageSettings, error) {
	var settings models.UserLanguageSettings
	err := r.db.GetContext(ctx, &settings, `
		SELECT user_id, language_id, start_word, skip_marked, use_check_date,
		       show_hint_meaning, show_hint_phoneticsound, show_hint_phoneticassociation, show_hint_writing,
		       created_at, updated_at
		FROM user_language_settings
		WHERE user_id = $1 AND language_id = $2
	`, userID, languageID)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(userID, languageID), nil
	}
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get settings: %v", err)
	}
	return &settings, nil
}

// Upsert stores the full settings row for (user_id, language_id).
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.UserLanguageSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	settings.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_language_settings (
			user_id, language_id, start_word, skip_marked, use_check_date,
			show_hint_meaning, show_hint_phoneticsound, show_hint_phoneticassociation, show_hint_writing,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (user_id, language_id) DO UPDATE SET
			start_word = $3,
			skip_marked = $4,
			use_check_date = $5,
			show_hint_meaning = $6,
			show_hint_phoneticsound = $7,
			show_hint_phoneticassociation = $8,
			show_hint_writing = $9,
			updated_at = $10
	`,
		settings.UserID, settings.LanguageID, settings.StartWord,
		settings.SkipMarked, settings.UseCheckDate,
		settings.ShowHintMeaning, settings.ShowHintPhoneticSound,
		settings.ShowHintPhoneticAssoc, settings.ShowHintWriting,
		now,
	)
	if err != nil {
		return errors.Wrapf(models.ErrStoreUnavailable, "failed to upsert settings: %v", err)
	}
	return nil
}

// List returns every stored settings row, one per enrolled (user, language)
// pair. The reminder job walks this to know whom to check for due words.
func (r *SettingsRepository) List(ctx context.Context) ([]models.UserLanguageSettings, error) {
	var settings []models.UserLanguageSettings
	err := r.db.SelectContext(ctx, &settings, `
		SELECT user_id, language_id, start_word, skip_marked, use_check_date,
		       show_hint_meaning, show_hint_phoneticsound, show_hint_phoneticassociation, show_hint_writing,
		       created_at, updated_at
		FROM user_language_settings
		ORDER BY user_id, language_id
	`)
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to list settings: %v", err)
	}
	return settings, nil
}
