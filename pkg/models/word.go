package models

import "time"

// Word represents a single foreign word in a language catalog.
// Words are ordered within their language by WordNumber, which is
// unique per language and drives study session ordering.
type Word struct {
	ID            int64     `json:"id" db:"id"`
	LanguageID    int64     `json:"language_id" db:"language_id"`
	WordForeign   string    `json:"word_foreign" db:"word_foreign"`
	Translation   string    `json:"translation" db:"translation"`
	Transcription string    `json:"transcription" db:"transcription"`
	WordNumber    int       `json:"word_number" db:"word_number"`
	SoundFilePath string    `json:"sound_file_path" db:"sound_file_path"` // Optional: path to pronunciation audio
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
