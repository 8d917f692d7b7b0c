package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// LanguageRepository handles database operations for languages
type LanguageRepository struct {
	db *sqlx.DB
}

// NewLanguageRepository creates a new repository instance
func NewLanguageRepository(db *sqlx.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// GetByID returns a language by ID, or ErrNotFound if it does not exist.
func (r *LanguageRepository) GetByID(ctx context.Context, id int64) (*models.Language, error) {
	var lang models.Language
	err := r.db.GetContext(ctx, &lang, "SELECT * FROM languages WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(models.ErrNotFound, "language %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get language: %v", err)
	}
	return &lang, nil
}

// GetAll returns all languages ordered by name
func (r *LanguageRepository) GetAll(ctx context.Context) ([]models.Language, error) {
	var langs []models.Language
	err := r.db.SelectContext(ctx, &langs, "SELECT * FROM languages ORDER BY name")
	if err != nil {
		return nil, errors.Wrapf(models.ErrStoreUnavailable, "failed to get languages: %v", err)
	}
	return langs, nil
}

// Create inserts a new language
func (r *LanguageRepository) Create(ctx context.Context, lang *models.Language) error {
	now := time.Now().UTC()

	if r.db.DriverName() == "postgres" {
		err := r.db.QueryRowContext(ctx,
			"INSERT INTO languages (name, code, created_at) VALUES ($1, $2, $3) RETURNING id",
			lang.Name, lang.Code, now,
		).Scan(&lang.ID)
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to create language: %v", err)
		}
	} else {
		result, err := r.db.ExecContext(ctx,
			"INSERT INTO languages (name, code, created_at) VALUES ($1, $2, $3)",
			lang.Name, lang.Code, now,
		)
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to create language: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.Wrapf(models.ErrStoreUnavailable, "failed to get last insert ID: %v", err)
		}
		lang.ID = id
	}

	lang.CreatedAt = now
	return nil
}
