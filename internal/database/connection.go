package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocabot/internal/config"
)

// Connect opens the database selected by the configuration and makes sure the
// schema exists. The caller owns the returned handle and closes it on
// shutdown.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.DBType {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	default:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS languages (
			id %s,
			name TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create languages table: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			language_id INTEGER NOT NULL,
			word_foreign TEXT NOT NULL,
			translation TEXT NOT NULL,
			transcription TEXT NOT NULL DEFAULT '',
			word_number INTEGER NOT NULL,
			sound_file_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (language_id) REFERENCES languages(id),
			UNIQUE(language_id, word_number)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create words table: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_progress (
			id %s,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			language_id INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			is_skipped BOOLEAN NOT NULL DEFAULT FALSE,
			check_interval INTEGER NOT NULL DEFAULT 0,
			next_check_date TIMESTAMP,
			hint_meaning TEXT,
			hint_phoneticsound TEXT,
			hint_phoneticassociation TEXT,
			hint_writing TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (word_id) REFERENCES words(id),
			UNIQUE(user_id, word_id)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create user_progress table: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_language_settings (
			id %s,
			user_id INTEGER NOT NULL,
			language_id INTEGER NOT NULL,
			start_word INTEGER NOT NULL DEFAULT 1,
			skip_marked BOOLEAN NOT NULL DEFAULT FALSE,
			use_check_date BOOLEAN NOT NULL DEFAULT TRUE,
			show_hint_meaning BOOLEAN NOT NULL DEFAULT TRUE,
			show_hint_phoneticsound BOOLEAN NOT NULL DEFAULT TRUE,
			show_hint_phoneticassociation BOOLEAN NOT NULL DEFAULT TRUE,
			show_hint_writing BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (language_id) REFERENCES languages(id),
			UNIQUE(user_id, language_id)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create user_language_settings table: %w", err)
	}

	return nil
}
