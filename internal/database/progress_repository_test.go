package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabot/pkg/models"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, initializeSchema(db))
	return db
}

// seedCatalog creates one language with count sequentially numbered words and
// returns the language id plus word ids indexed by word_number.
func seedCatalog(t *testing.T, db *sqlx.DB, count int) (int64, map[int]int64) {
	t.Helper()
	ctx := context.Background()

	lang := &models.Language{Name: "Finnish", Code: "fi"}
	require.NoError(t, NewLanguageRepository(db).Create(ctx, lang))

	words := NewWordRepository(db)
	ids := make(map[int]int64, count)
	for n := 1; n <= count; n++ {
		w := &models.Word{
			LanguageID:  lang.ID,
			WordForeign: "sana",
			Translation: "word",
			WordNumber:  n,
		}
		require.NoError(t, words.Create(ctx, w))
		ids[n] = w.ID
	}
	return lang.ID, ids
}

func intPtr(n int) *int              { return &n }
func boolPtr(b bool) *bool           { return &b }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestProgressGetAbsent(t *testing.T) {
	db := testDB(t)
	repo := NewProgressRepository(db)

	record, err := repo.Get(context.Background(), 1, 999)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestProgressUpsertCreatesDefaults(t *testing.T) {
	db := testDB(t)
	langID, wordIDs := seedCatalog(t, db, 1)
	repo := NewProgressRepository(db)

	record, err := repo.Upsert(context.Background(), &models.ProgressUpdate{
		UserID:     7,
		WordID:     wordIDs[1],
		LanguageID: langID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, record.Score)
	assert.False(t, record.IsSkipped)
	assert.Equal(t, 0, record.CheckInterval)
	assert.Nil(t, record.NextCheckDate)
	assert.Nil(t, record.HintMeaning)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestProgressUpsertMergesPartialFields(t *testing.T) {
	db := testDB(t)
	langID, wordIDs := seedCatalog(t, db, 1)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID,
		Score:         intPtr(1),
		CheckInterval: intPtr(4),
		NextCheckDate: timePtr(due),
	})
	require.NoError(t, err)

	// A hint-only update must leave the scoring fields untouched
	record, err := repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID,
		HintMeaning: strPtr("a thing you say"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, record.Score)
	assert.Equal(t, 4, record.CheckInterval)
	require.NotNil(t, record.NextCheckDate)
	assert.True(t, record.NextCheckDate.Equal(due))
	require.NotNil(t, record.HintMeaning)
	assert.Equal(t, "a thing you say", *record.HintMeaning)

	// A skip-only update must leave score and hint untouched
	record, err = repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID,
		IsSkipped: boolPtr(true),
	})
	require.NoError(t, err)

	assert.True(t, record.IsSkipped)
	assert.Equal(t, 1, record.Score)
	require.NotNil(t, record.HintMeaning)
}

func TestProgressUpsertIdempotent(t *testing.T) {
	db := testDB(t)
	langID, wordIDs := seedCatalog(t, db, 1)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	update := &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID,
		Score:         intPtr(1),
		CheckInterval: intPtr(2),
		NextCheckDate: timePtr(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)),
	}

	first, err := repo.Upsert(ctx, update)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, update)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.CheckInterval, second.CheckInterval)
	assert.True(t, first.NextCheckDate.Equal(*second.NextCheckDate))

	// Still exactly one row for the pair
	var count int
	require.NoError(t, db.Get(&count,
		"SELECT COUNT(*) FROM user_progress WHERE user_id = 7 AND word_id = $1", wordIDs[1]))
	assert.Equal(t, 1, count)
}

func TestDueWordIDsBoundary(t *testing.T) {
	db := testDB(t)
	langID, wordIDs := seedCatalog(t, db, 4)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	// Due exactly today
	_, err := repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID,
		Score: intPtr(0), CheckInterval: intPtr(1), NextCheckDate: timePtr(today),
	})
	require.NoError(t, err)

	// Due tomorrow: not included
	_, err = repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[2], LanguageID: langID,
		Score: intPtr(1), CheckInterval: intPtr(1), NextCheckDate: timePtr(today.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)

	// Overdue since yesterday
	_, err = repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[3], LanguageID: langID,
		Score: intPtr(0), CheckInterval: intPtr(1), NextCheckDate: timePtr(today.AddDate(0, 0, -1)),
	})
	require.NoError(t, err)

	// Never scored: no next_check_date, not "due"
	_, err = repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[4], LanguageID: langID,
	})
	require.NoError(t, err)

	ids, err := repo.DueWordIDs(ctx, 7, langID, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{wordIDs[1], wordIDs[3]}, ids)
}

func TestCountsByUserAndLanguage(t *testing.T) {
	db := testDB(t)
	langID, wordIDs := seedCatalog(t, db, 3)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[1], LanguageID: langID, Score: intPtr(1),
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &models.ProgressUpdate{
		UserID: 7, WordID: wordIDs[2], LanguageID: langID, IsSkipped: boolPtr(true),
	})
	require.NoError(t, err)

	studied, known, skipped, err := repo.CountsByUserAndLanguage(ctx, 7, langID)
	require.NoError(t, err)
	assert.Equal(t, 2, studied)
	assert.Equal(t, 1, known)
	assert.Equal(t, 1, skipped)

	// Another user's catalog is untouched
	studied, known, skipped, err = repo.CountsByUserAndLanguage(ctx, 8, langID)
	require.NoError(t, err)
	assert.Equal(t, 0, studied)
	assert.Equal(t, 0, known)
	assert.Equal(t, 0, skipped)
}

func TestSettingsDefaultsAndRoundtrip(t *testing.T) {
	db := testDB(t)
	langID, _ := seedCatalog(t, db, 1)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx, 7, langID)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.StartWord)
	assert.False(t, settings.SkipMarked)
	assert.True(t, settings.UseCheckDate)
	assert.True(t, settings.ShowHintMeaning)

	settings.StartWord = 50
	settings.SkipMarked = true
	settings.ShowHintWriting = false
	require.NoError(t, repo.Upsert(ctx, settings))

	stored, err := repo.Get(ctx, 7, langID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.StartWord)
	assert.True(t, stored.SkipMarked)
	assert.False(t, stored.ShowHintWriting)
	assert.True(t, stored.ShowHintMeaning)

	// Invalid settings are rejected before touching the store
	settings.StartWord = 0
	err = repo.Upsert(ctx, settings)
	require.ErrorIs(t, err, models.ErrSettingsInvalid)
}

func TestWordsFromPaging(t *testing.T) {
	db := testDB(t)
	langID, _ := seedCatalog(t, db, 5)
	repo := NewWordRepository(db)
	ctx := context.Background()

	words, err := repo.WordsFrom(ctx, langID, 2, 2)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, 2, words[0].WordNumber)
	assert.Equal(t, 3, words[1].WordNumber)

	words, err = repo.WordsFrom(ctx, langID, 4, 10)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, 4, words[0].WordNumber)
	assert.Equal(t, 5, words[1].WordNumber)

	count, err := repo.CountByLanguage(ctx, langID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestLanguageGetByID(t *testing.T) {
	db := testDB(t)
	langID, _ := seedCatalog(t, db, 1)
	repo := NewLanguageRepository(db)
	ctx := context.Background()

	lang, err := repo.GetByID(ctx, langID)
	require.NoError(t, err)
	assert.Equal(t, "Finnish", lang.Name)

	_, err = repo.GetByID(ctx, langID+100)
	require.ErrorIs(t, err, models.ErrNotFound)
}
