package study

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabot/internal/spaced_repetition"
	"github.com/example/vocabot/pkg/models"
)

var selectorToday = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return selectorToday }

// collectNumbers drains the iterator and returns the word numbers in order.
func collectNumbers(t *testing.T, it *Candidates) []int {
	t.Helper()
	var numbers []int
	for {
		word, err := it.Next(context.Background())
		require.NoError(t, err)
		if word == nil {
			return numbers
		}
		numbers = append(numbers, word.WordNumber)
	}
}

func TestCandidatesStartSkipAndDueDate(t *testing.T) {
	const (
		userID     = int64(42)
		languageID = int64(1)
	)
	catalog := catalogOf(languageID, 10)
	progress := newFakeProgress()

	// Word 7 carries a skip mark, word 3 is scheduled in the future.
	_, err := progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 7, LanguageID: languageID,
		IsSkipped: boolPtr(true),
	})
	require.NoError(t, err)
	future := spaced_repetition.DateOnly(selectorToday).AddDate(0, 0, 5)
	_, err = progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 3, LanguageID: languageID,
		Score: intPtr(1), CheckInterval: intPtr(5), NextCheckDate: timePtr(future),
	})
	require.NoError(t, err)

	settings := models.DefaultSettings(userID, languageID)
	settings.StartWord = 5
	settings.SkipMarked = true
	settings.UseCheckDate = true

	selector := NewSelector(catalog, progress, fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, settings, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 6, 8, 9, 10}, collectNumbers(t, it))
}

func TestCandidatesDeterministic(t *testing.T) {
	const (
		userID     = int64(42)
		languageID = int64(1)
	)
	catalog := catalogOf(languageID, 10)
	progress := newFakeProgress()
	_, err := progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 4, LanguageID: languageID,
		IsSkipped: boolPtr(true),
	})
	require.NoError(t, err)

	settings := models.DefaultSettings(userID, languageID)
	settings.SkipMarked = true
	selector := NewSelector(catalog, progress, fixedClock)

	first, err := selector.Candidates(context.Background(), userID, languageID, settings, 1)
	require.NoError(t, err)
	second, err := selector.Candidates(context.Background(), userID, languageID, settings, 1)
	require.NoError(t, err)

	assert.Equal(t, collectNumbers(t, first), collectNumbers(t, second))
}

func TestCandidatesDueBoundary(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	catalog := catalogOf(languageID, 3)
	progress := newFakeProgress()
	today := spaced_repetition.DateOnly(selectorToday)

	// Word 1 due today, word 2 due tomorrow, word 3 untouched.
	_, err := progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 1, LanguageID: languageID,
		Score: intPtr(1), CheckInterval: intPtr(1), NextCheckDate: timePtr(today),
	})
	require.NoError(t, err)
	_, err = progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 2, LanguageID: languageID,
		Score: intPtr(1), CheckInterval: intPtr(1), NextCheckDate: timePtr(today.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)

	selector := NewSelector(catalog, progress, fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, models.DefaultSettings(userID, languageID), 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, collectNumbers(t, it))
}

func TestCandidatesCheckDateDisabled(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	catalog := catalogOf(languageID, 2)
	progress := newFakeProgress()
	future := spaced_repetition.DateOnly(selectorToday).AddDate(0, 0, 30)
	_, err := progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 1, LanguageID: languageID,
		Score: intPtr(1), CheckInterval: intPtr(30), NextCheckDate: timePtr(future),
	})
	require.NoError(t, err)

	settings := models.DefaultSettings(userID, languageID)
	settings.UseCheckDate = false

	selector := NewSelector(catalog, progress, fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, settings, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, collectNumbers(t, it))
}

func TestCandidatesSkipFilterDisabled(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	catalog := catalogOf(languageID, 2)
	progress := newFakeProgress()
	_, err := progress.Upsert(context.Background(), &models.ProgressUpdate{
		UserID: userID, WordID: 1, LanguageID: languageID,
		IsSkipped: boolPtr(true),
	})
	require.NoError(t, err)

	settings := models.DefaultSettings(userID, languageID)
	settings.SkipMarked = false

	selector := NewSelector(catalog, progress, fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, settings, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, collectNumbers(t, it))
}

func TestCandidatesInvalidSettings(t *testing.T) {
	settings := models.DefaultSettings(1, 1)
	settings.StartWord = 0

	selector := NewSelector(catalogOf(1, 3), newFakeProgress(), fixedClock)
	_, err := selector.Candidates(context.Background(), 1, 1, settings, 1)
	assert.ErrorIs(t, err, models.ErrSettingsInvalid)
}

func TestCandidatesFromNumberPastStart(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	settings := models.DefaultSettings(userID, languageID)
	settings.StartWord = 2

	selector := NewSelector(catalogOf(languageID, 6), newFakeProgress(), fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, settings, 4)
	require.NoError(t, err)

	// The cursor position wins over start_word when it is further along.
	assert.Equal(t, []int{4, 5, 6}, collectNumbers(t, it))
}

func TestCandidatesReset(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	selector := NewSelector(catalogOf(languageID, 4), newFakeProgress(), fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, models.DefaultSettings(userID, languageID), 1)
	require.NoError(t, err)

	first, err := it.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.WordNumber)

	it.Reset()
	assert.Equal(t, []int{1, 2, 3, 4}, collectNumbers(t, it))
}

func TestCandidatesPagesThroughLargeCatalog(t *testing.T) {
	const (
		userID     = int64(7)
		languageID = int64(1)
	)
	count := catalogPageSize*2 + 5
	selector := NewSelector(catalogOf(languageID, count), newFakeProgress(), fixedClock)
	it, err := selector.Candidates(context.Background(), userID, languageID, models.DefaultSettings(userID, languageID), 1)
	require.NoError(t, err)

	numbers := collectNumbers(t, it)
	require.Len(t, numbers, count)
	assert.Equal(t, 1, numbers[0])
	assert.Equal(t, count, numbers[len(numbers)-1])
}
