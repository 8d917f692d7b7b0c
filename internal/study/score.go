package study

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/example/vocabot/internal/spaced_repetition"
	"github.com/example/vocabot/pkg/models"
)

// ScoreUpdater turns a recall judgment into a stored progress update.
type ScoreUpdater struct {
	progress  ProgressStore
	scheduler *spaced_repetition.Scheduler
	now       func() time.Time
}

// NewScoreUpdater creates an updater writing through the given store
func NewScoreUpdater(progress ProgressStore, scheduler *spaced_repetition.Scheduler, now func() time.Time) *ScoreUpdater {
	if now == nil {
		now = time.Now
	}
	return &ScoreUpdater{progress: progress, scheduler: scheduler, now: now}
}

// Apply records one answer for a word: it reads the previous record, lets
// the scheduler compute the new score and interval, and writes the result
// as a single upsert. Once a word has been scored its interval never drops
// below one day. Store failures propagate; nothing is retried here, so a
// failure means nothing was written.
func (u *ScoreUpdater) Apply(ctx context.Context, userID, wordID, languageID int64, score int, hintUsed bool) (*models.ProgressRecord, error) {
	if score != 0 && score != 1 {
		return nil, errors.Errorf("score must be 0 or 1, got %d", score)
	}

	previous, err := u.progress.Get(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	result := u.scheduler.Advance(previous, score, hintUsed, u.now())

	return u.progress.Upsert(ctx, &models.ProgressUpdate{
		UserID:        userID,
		WordID:        wordID,
		LanguageID:    languageID,
		Score:         &result.Score,
		CheckInterval: &result.CheckInterval,
		NextCheckDate: &result.NextCheckDate,
	})
}
