package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// ProgressRepository handles database operations for per-user word progress.
// Exactly one record exists per (user_id, word_id); records are created
// lazily by Upsert on the first interaction with a word.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the progress record for a user and word, or (nil, nil) when
// the user has never interacted with the word.
func (r *ProgressRepository) Get(ctx context.Context, userID, wordID int64) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM user_progress WHERE user_id = $1 AND word_id = $2", userID, wordID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get progress record: %v", err)
	}
	return &record, nil
}

// upsertQuery merges the provided fields into the row for (user_id, word_id),
// creating it with defaults first if missing. COALESCE keeps existing values
// for fields the update leaves nil, so the whole merge is a single statement
// and re-applying the same update yields the same stored state.
const upsertQuery = `
	INSERT INTO user_progress (
		user_id, word_id, language_id,
		score, is_skipped, check_interval, next_check_date,
		hint_meaning, hint_phoneticsound, hint_phoneticassociation, hint_writing,
		created_at, updated_at
	) VALUES (
		:user_id, :word_id, :language_id,
		COALESCE(:score, 0), COALESCE(:is_skipped, FALSE), COALESCE(:check_interval, 0), :next_check_date,
		:hint_meaning, :hint_phoneticsound, :hint_phoneticassociation, :hint_writing,
		:updated_at, :updated_at
	)
	ON CONFLICT (user_id, word_id) DO UPDATE SET
		score = COALESCE(:score, user_progress.score),
		is_skipped = COALESCE(:is_skipped, user_progress.is_skipped),
		check_interval = COALESCE(:check_interval, user_progress.check_interval),
		next_check_date = COALESCE(:next_check_date, user_progress.next_check_date),
		hint_meaning = COALESCE(:hint_meaning, user_progress.hint_meaning),
		hint_phoneticsound = COALESCE(:hint_phoneticsound, user_progress.hint_phoneticsound),
		hint_phoneticassociation = COALESCE(:hint_phoneticassociation, user_progress.hint_phoneticassociation),
		hint_writing = COALESCE(:hint_writing, user_progress.hint_writing),
		updated_at = :updated_at
`

// Upsert applies a partial update atomically and returns the stored record.
func (r *ProgressRepository) Upsert(ctx context.Context, update *models.ProgressUpdate) (*models.ProgressRecord, error) {
	arg := struct {
		*models.ProgressUpdate
		UpdatedAt time.Time `db:"updated_at"`
	}{update, time.Now().UTC()}

	if r.db.DriverName() == "postgres" {
		rows, err := r.db.NamedQueryContext(ctx, upsertQuery+" RETURNING *", arg)
		if err != nil {
			return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to upsert progress record: %v", err)
		}
		defer rows.Close()

		if !rows.Next() {
			return nil, errors.Wrap(models.ErrStoreUnavailable, "upsert returned no row")
		}
		var record models.ProgressRecord
		if err := rows.StructScan(&record); err != nil {
			return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to scan progress record: %v", err)
		}
		return &record, nil
	}

	// SQLite: upsert, then read the row back
	if _, err := r.db.NamedExecContext(ctx, upsertQuery, arg); err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to upsert progress record: %v", err)
	}
	record, err := r.Get(ctx, update.UserID, update.WordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Wrap(models.ErrStoreUnavailable, "upserted progress record not found")
	}
	return record, nil
}

// ListByUserAndLanguage returns every progress record a user has for a
// language, ordered by word id. Selectors load this once per pass as their
// progress snapshot.
func (r *ProgressRepository) ListByUserAndLanguage(ctx context.Context, userID, languageID int64) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM user_progress
		WHERE user_id = $1 AND language_id = $2
		ORDER BY word_id ASC
	`, userID, languageID)
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get progress records: %v", err)
	}
	return records, nil
}

// DueWordIDs returns ids of words whose review date has arrived, ascending.
// Words without a record are "new", not due; they are handled by the
// selector directly against the catalog.
func (r *ProgressRepository) DueWordIDs(ctx context.Context, userID, languageID int64, asOf time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `
		SELECT word_id FROM user_progress
		WHERE user_id = $1 AND language_id = $2
		  AND next_check_date IS NOT NULL AND next_check_date <= $3
		ORDER BY word_id ASC
	`, userID, languageID, asOf)
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get due words: %v", err)
	}
	return ids, nil
}

// CountsByUserAndLanguage returns how many words the user has studied, knows
// (score 1), and has skipped within a language.
func (r *ProgressRepository) CountsByUserAndLanguage(ctx context.Context, userID, languageID int64) (studied, known, skipped int, err error) {
	row := struct {
		Studied int `db:"studied"`
		Known   int `db:"known"`
		Skipped int `db:"skipped"`
	}{}
	err = r.db.GetContext(ctx, &row, `
		SELECT
			COUNT(*) AS studied,
			COALESCE(SUM(CASE WHEN score = 1 THEN 1 ELSE 0 END), 0) AS known,
			COALESCE(SUM(CASE WHEN is_skipped THEN 1 ELSE 0 END), 0) AS skipped
		FROM user_progress
		WHERE user_id = $1 AND language_id = $2
	`, userID, languageID)
	if err != nil {
		return 0, 0, 0, errors.Wrapf(models.ErrStoreUnavailable, "failed to count progress records: %v", err)
	}
	return row.Studied, row.Known, row.Skipped, nil
}
