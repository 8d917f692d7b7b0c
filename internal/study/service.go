// Package study implements the study session engine: word selection,
// session state, scoring, and progress aggregation. It is transport
// agnostic; callers drive it through opaque session handles.
package study

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/example/vocabot/internal/spaced_repetition"
	"github.com/example/vocabot/pkg/models"
)

// WordCatalog is the read-only word source for one or more languages.
type WordCatalog interface {
	// WordsFrom lists words with word_number >= fromNumber in ascending
	// word_number order, at most limit at a time.
	WordsFrom(ctx context.Context, languageID int64, fromNumber, limit int) ([]models.Word, error)
	CountByLanguage(ctx context.Context, languageID int64) (int, error)
}

// LanguageStore resolves language references. GetByID returns ErrNotFound
// for languages that do not exist.
type LanguageStore interface {
	GetByID(ctx context.Context, id int64) (*models.Language, error)
}

// ProgressStore persists per-user word progress behind an atomic partial
// upsert keyed by (user_id, word_id).
type ProgressStore interface {
	// Get returns (nil, nil) when the user never interacted with the word.
	Get(ctx context.Context, userID, wordID int64) (*models.ProgressRecord, error)
	Upsert(ctx context.Context, update *models.ProgressUpdate) (*models.ProgressRecord, error)
	ListByUserAndLanguage(ctx context.Context, userID, languageID int64) ([]models.ProgressRecord, error)
	DueWordIDs(ctx context.Context, userID, languageID int64, asOf time.Time) ([]int64, error)
	CountsByUserAndLanguage(ctx context.Context, userID, languageID int64) (studied, known, skipped int, err error)
}

// SettingsProvider returns a user's study settings with defaults applied
// for users who never configured the language.
type SettingsProvider interface {
	Get(ctx context.Context, userID, languageID int64) (*models.UserLanguageSettings, error)
}

// Service exposes the study session operations to transport layers.
type Service struct {
	catalog   WordCatalog
	languages LanguageStore
	progress  ProgressStore
	settings  SettingsProvider
	sessions  SessionStore
	selector  *Selector
	updater   *ScoreUpdater
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the engine together over the given stores.
func NewService(catalog WordCatalog, languages LanguageStore, progress ProgressStore, settings SettingsProvider, sessions SessionStore, logger *zap.Logger) *Service {
	s := &Service{
		catalog:   catalog,
		languages: languages,
		progress:  progress,
		settings:  settings,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
	scheduler := spaced_repetition.New()
	s.selector = NewSelector(catalog, progress, func() time.Time { return s.now() })
	s.updater = NewScoreUpdater(progress, scheduler, func() time.Time { return s.now() })
	return s
}

// BeginSession starts a study session for a user in a language and returns
// its handle. Any session the user already had is replaced. The session may
// begin already completed when nothing is eligible.
func (s *Service) BeginSession(ctx context.Context, userID, languageID int64) (string, error) {
	if _, err := s.languages.GetByID(ctx, languageID); err != nil {
		return "", err
	}
	settings, err := s.settings.Get(ctx, userID, languageID)
	if err != nil {
		return "", err
	}

	session := &SessionState{
		Handle:     uuid.NewString(),
		UserID:     userID,
		LanguageID: languageID,
		Settings:   settings,
		Cursor:     settings.StartWord,
		StartedAt:  s.now(),
	}

	word, err := s.nextCandidate(ctx, session)
	if err != nil {
		return "", err
	}
	session.advanceTo(word)

	if err := s.sessions.Put(ctx, session); err != nil {
		return "", err
	}

	s.logger.Info("study session started",
		zap.Int64("user_id", userID),
		zap.Int64("language_id", languageID),
		zap.Bool("empty", word == nil),
	)
	return session.Handle, nil
}

// CurrentWord returns the word on offer, or (nil, nil) once the session has
// completed.
func (s *Service) CurrentWord(ctx context.Context, handle string) (*models.Word, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if session.State == StateCompleted {
		return nil, nil
	}
	if session.CurrentWord == nil {
		return nil, errors.Wrap(models.ErrInvalidSessionState, "session has no current word")
	}
	return session.CurrentWord, nil
}

// Reveal shows the current word's details. Revealing does not touch the
// progress record; only answering does.
func (s *Service) Reveal(ctx context.Context, handle string) (*models.Word, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if err := session.checkOp(OpReveal); err != nil {
		return nil, err
	}

	session.WordShown = true
	session.State = StateViewingDetails
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session.CurrentWord, nil
}

// RecordAnswer stores the user's recall judgment for the revealed word and
// advances the session to the next candidate. If any hint was consumed for
// this word the stored score is forced to 0 regardless of the submitted
// judgment. Returns the stored record.
func (s *Service) RecordAnswer(ctx context.Context, handle string, score int) (*models.ProgressRecord, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if err := session.checkOp(OpAnswer); err != nil {
		return nil, err
	}

	record, err := s.updater.Apply(ctx, session.UserID, session.CurrentWord.ID, session.LanguageID, score, session.hintUsed())
	if err != nil {
		return nil, err
	}

	word, err := s.nextCandidate(ctx, session)
	if err != nil {
		return nil, err
	}
	session.advanceTo(word)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	if session.State == StateCompleted {
		s.logger.Info("study session completed",
			zap.Int64("user_id", session.UserID),
			zap.Int64("language_id", session.LanguageID),
		)
	}
	return record, nil
}

// RecordHintUse marks a hint as consumed for the current word and returns
// its stored text, nil when the user never wrote one. Consuming any hint
// makes the eventual answer score 0; the penalty is applied when the answer
// is recorded, not here.
func (s *Service) RecordHintUse(ctx context.Context, handle string, hintType models.HintType) (*string, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !hintType.Valid() {
		return nil, errors.Errorf("unknown hint type %q", hintType)
	}
	if err := session.checkOp(OpUseHint); err != nil {
		return nil, err
	}
	if !session.Settings.HintVisible(hintType) {
		return nil, errors.Errorf("hint type %q is disabled in settings", hintType)
	}

	record, err := s.progress.Get(ctx, session.UserID, session.CurrentWord.ID)
	if err != nil {
		return nil, err
	}

	session.markHintUsed(hintType)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, nil
	}
	return record.Hint(hintType), nil
}

// ToggleSkip flips the skip mark on the current word and returns the stored
// record. Toggling never changes score, interval, or check date, and never
// advances the session.
func (s *Service) ToggleSkip(ctx context.Context, handle string) (*models.ProgressRecord, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if err := session.checkOp(OpToggleSkip); err != nil {
		return nil, err
	}

	record, err := s.progress.Get(ctx, session.UserID, session.CurrentWord.ID)
	if err != nil {
		return nil, err
	}
	skipped := true
	if record != nil {
		skipped = !record.IsSkipped
	}

	return s.progress.Upsert(ctx, &models.ProgressUpdate{
		UserID:     session.UserID,
		WordID:     session.CurrentWord.ID,
		LanguageID: session.LanguageID,
		IsSkipped:  &skipped,
	})
}

// BeginHintEdit enters hint authoring for the current word. It returns the
// existing hint text, nil when the user is creating the hint from scratch.
// The session resumes its previous state on save or cancel.
func (s *Service) BeginHintEdit(ctx context.Context, handle string, hintType models.HintType) (*string, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !hintType.Valid() {
		return nil, errors.Errorf("unknown hint type %q", hintType)
	}
	if err := session.checkOp(OpBeginHintEdit); err != nil {
		return nil, err
	}

	record, err := s.progress.Get(ctx, session.UserID, session.CurrentWord.ID)
	if err != nil {
		return nil, err
	}
	var existing *string
	if record != nil {
		existing = record.Hint(hintType)
	}

	session.ReturnTo = session.State
	session.EditingHint = hintType
	if existing == nil {
		session.State = StateCreatingHint
	} else {
		session.State = StateEditingHint
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return existing, nil
}

// SaveHint stores the authored hint text and returns the session to the
// state the side trip interrupted. Authoring a hint does not count as using
// one.
func (s *Service) SaveHint(ctx context.Context, handle string, text string) (*models.ProgressRecord, error) {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if err := session.checkOp(OpSaveHint); err != nil {
		return nil, err
	}

	update := &models.ProgressUpdate{
		UserID:     session.UserID,
		WordID:     session.CurrentWord.ID,
		LanguageID: session.LanguageID,
	}
	update.SetHint(session.EditingHint, text)

	record, err := s.progress.Upsert(ctx, update)
	if err != nil {
		return nil, err
	}

	session.State = session.ReturnTo
	session.EditingHint = ""
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return record, nil
}

// CancelHintEdit abandons the hint side trip without writing anything.
func (s *Service) CancelHintEdit(ctx context.Context, handle string) error {
	session, err := s.sessions.Get(ctx, handle)
	if err != nil {
		return err
	}
	if err := session.checkOp(OpCancelHintEdit); err != nil {
		return err
	}

	session.State = session.ReturnTo
	session.EditingHint = ""
	return s.sessions.Put(ctx, session)
}

// EndSession discards a session. Ending an already dead session is fine.
func (s *Service) EndSession(ctx context.Context, handle string) error {
	return s.sessions.Delete(ctx, handle)
}

// Summary aggregates a user's progress over one language catalog.
func (s *Service) Summary(ctx context.Context, userID, languageID int64) (*models.ProgressSummary, error) {
	if _, err := s.languages.GetByID(ctx, languageID); err != nil {
		return nil, err
	}

	total, err := s.catalog.CountByLanguage(ctx, languageID)
	if err != nil {
		return nil, err
	}
	studied, known, skipped, err := s.progress.CountsByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(known) / float64(total) * 100
	}
	return &models.ProgressSummary{
		Total:      total,
		Studied:    studied,
		Known:      known,
		Skipped:    skipped,
		Percentage: percentage,
	}, nil
}

// nextCandidate pulls the first eligible word at or past the session cursor.
func (s *Service) nextCandidate(ctx context.Context, session *SessionState) (*models.Word, error) {
	candidates, err := s.selector.Candidates(ctx, session.UserID, session.LanguageID, session.Settings, session.Cursor)
	if err != nil {
		return nil, err
	}
	return candidates.Next(ctx)
}
