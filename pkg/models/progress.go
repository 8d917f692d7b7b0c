package models

import "time"

// ProgressRecord tracks one user's learning state for a single word.
// A record is created lazily on the first interaction with a word; a word
// without a record is "new". NextCheckDate is nil until the word has been
// scored at least once, after which it always equals the date of the last
// scoring plus CheckInterval days.
type ProgressRecord struct {
	ID                int64      `json:"id" db:"id"`
	UserID            int64      `json:"user_id" db:"user_id"`
	WordID            int64      `json:"word_id" db:"word_id"`
	LanguageID        int64      `json:"language_id" db:"language_id"`
	Score             int        `json:"score" db:"score"` // 1 = knows the word, 0 = does not
	IsSkipped         bool       `json:"is_skipped" db:"is_skipped"`
	CheckInterval     int        `json:"check_interval" db:"check_interval"` // Days until the word is due again
	NextCheckDate     *time.Time `json:"next_check_date" db:"next_check_date"`
	HintMeaning       *string    `json:"hint_meaning" db:"hint_meaning"`
	HintPhoneticSound *string    `json:"hint_phoneticsound" db:"hint_phoneticsound"`
	HintPhoneticAssoc *string    `json:"hint_phoneticassociation" db:"hint_phoneticassociation"`
	HintWriting       *string    `json:"hint_writing" db:"hint_writing"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Hint returns the stored hint text for the given type, or nil if none exists.
func (p *ProgressRecord) Hint(t HintType) *string {
	switch t {
	case HintMeaning:
		return p.HintMeaning
	case HintPhoneticSound:
		return p.HintPhoneticSound
	case HintPhoneticAssociation:
		return p.HintPhoneticAssoc
	case HintWriting:
		return p.HintWriting
	}
	return nil
}

// ProgressUpdate is a partial update for a ProgressRecord, keyed by
// (UserID, WordID). Nil fields are left untouched on existing records and
// fall back to defaults (score 0, not skipped, interval 0, no date, no
// hints) when the record is first created.
type ProgressUpdate struct {
	UserID            int64      `db:"user_id"`
	WordID            int64      `db:"word_id"`
	LanguageID        int64      `db:"language_id"`
	Score             *int       `db:"score"`
	IsSkipped         *bool      `db:"is_skipped"`
	CheckInterval     *int       `db:"check_interval"`
	NextCheckDate     *time.Time `db:"next_check_date"`
	HintMeaning       *string    `db:"hint_meaning"`
	HintPhoneticSound *string    `db:"hint_phoneticsound"`
	HintPhoneticAssoc *string    `db:"hint_phoneticassociation"`
	HintWriting       *string    `db:"hint_writing"`
}

// SetHint stores text as the update's field for the given hint type.
func (u *ProgressUpdate) SetHint(t HintType, text string) {
	switch t {
	case HintMeaning:
		u.HintMeaning = &text
	case HintPhoneticSound:
		u.HintPhoneticSound = &text
	case HintPhoneticAssociation:
		u.HintPhoneticAssoc = &text
	case HintWriting:
		u.HintWriting = &text
	}
}

// ProgressSummary aggregates a user's progress over one language catalog
type ProgressSummary struct {
	Total      int     `json:"total" db:"total"`           // Words in the catalog
	Studied    int     `json:"studied" db:"studied"`       // Words with a progress record
	Known      int     `json:"known" db:"known"`           // Words currently scored 1
	Skipped    int     `json:"skipped" db:"skipped"`       // Words marked skipped
	Percentage float64 `json:"percentage" db:"percentage"` // Known over total, 0-100
}
