package models

import (
	"time"

	"github.com/pkg/errors"
)

// UserLanguageSettings holds a user's study preferences for one language.
// They govern which words the selector offers, not how progress records are
// scored.
type UserLanguageSettings struct {
	UserID                int64     `json:"user_id" db:"user_id"`
	LanguageID            int64     `json:"language_id" db:"language_id"`
	StartWord             int       `json:"start_word" db:"start_word"` // First word_number offered, 1-based
	SkipMarked            bool      `json:"skip_marked" db:"skip_marked"`
	UseCheckDate          bool      `json:"use_check_date" db:"use_check_date"`
	ShowHintMeaning       bool      `json:"show_hint_meaning" db:"show_hint_meaning"`
	ShowHintPhoneticSound bool      `json:"show_hint_phoneticsound" db:"show_hint_phoneticsound"`
	ShowHintPhoneticAssoc bool      `json:"show_hint_phoneticassociation" db:"show_hint_phoneticassociation"`
	ShowHintWriting       bool      `json:"show_hint_writing" db:"show_hint_writing"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the documented defaults for a user who has never
// configured the language: start at word 1, honor skip marks off, honor due
// dates on, all hints visible.
func DefaultSettings(userID, languageID int64) *UserLanguageSettings {
	return &UserLanguageSettings{
		UserID:                userID,
		LanguageID:            languageID,
		StartWord:             1,
		SkipMarked:            false,
		UseCheckDate:          true,
		ShowHintMeaning:       true,
		ShowHintPhoneticSound: true,
		ShowHintPhoneticAssoc: true,
		ShowHintWriting:       true,
	}
}

// Validate rejects malformed settings before they reach the selector.
func (s *UserLanguageSettings) Validate() error {
	if s.StartWord < 1 {
		return errors.Wrapf(ErrSettingsInvalid, "start_word must be >= 1, got %d", s.StartWord)
	}
	return nil
}

// HintVisible reports whether the given hint type is enabled in these settings.
func (s *UserLanguageSettings) HintVisible(t HintType) bool {
	switch t {
	case HintMeaning:
		return s.ShowHintMeaning
	case HintPhoneticSound:
		return s.ShowHintPhoneticSound
	case HintPhoneticAssociation:
		return s.ShowHintPhoneticAssoc
	case HintWriting:
		return s.ShowHintWriting
	}
	return false
}
