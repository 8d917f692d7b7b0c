package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// WordRepository handles database operations for words. It is the catalog
// source for word selection: words are served in ascending word_number order
// and never mutated by the study flow.
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID returns a word by ID, or ErrNotFound if it does not exist.
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, "SELECT * FROM words WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(models.ErrNotFound, "word %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get word: %v", err)
	}
	return &word, nil
}

// WordsFrom returns up to limit words of a language whose word_number is at
// least fromNumber, ordered ascending by word_number. Callers page through
// the catalog by passing the last seen number plus one.
func (r *WordRepository) WordsFrom(ctx context.Context, languageID int64, fromNumber, limit int) ([]models.Word, error) {
	var words []models.Word
	err := r.db.SelectContext(ctx, &words, `
		SELECT * FROM words
		WHERE language_id = $1 AND word_number >= $2
		ORDER BY word_number ASC
		LIMIT $3
	`, languageID, fromNumber, limit)
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get words: %v", err)
	}
	return words, nil
}

// CountByLanguage returns the number of words in a language catalog
func (r *WordRepository) CountByLanguage(ctx context.Context, languageID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM words WHERE language_id = $1", languageID)
	if err != nil {
		return 0, errors.Wrapf(models.ErrStoreUnavailable, "failed to count words: %v", err)
	}
	return count, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	now := time.Now().UTC()

	if r.db.DriverName() == "postgres" {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO words (language_id, word_foreign, translation, transcription, word_number, sound_file_path, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING id
		`,
			word.LanguageID, word.WordForeign, word.Translation,
			word.Transcription, word.WordNumber, word.SoundFilePath, now,
		).Scan(&word.ID)
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to create word: %v", err)
		}
	} else {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO words (language_id, word_foreign, translation, transcription, word_number, sound_file_path, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		`,
			word.LanguageID, word.WordForeign, word.Translation,
			word.Transcription, word.WordNumber, word.SoundFilePath, now,
		)
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to create word: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to get last insert ID: %v", err)
		}
		word.ID = id
	}

	word.CreatedAt = now
	word.UpdatedAt = now
	return nil
}
