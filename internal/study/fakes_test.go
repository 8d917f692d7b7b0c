package study

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/example/vocabot/pkg/models"
)

// In-memory fakes implementing the store interfaces the engine consumes.
// They mirror the repository contracts: absent progress reads return
// (nil, nil), upserts merge only provided fields, and settings fall back
// to defaults.

type fakeCatalog struct {
	words []models.Word
}

func (c *fakeCatalog) WordsFrom(_ context.Context, languageID int64, fromNumber, limit int) ([]models.Word, error) {
	var out []models.Word
	for _, w := range c.words {
		if w.LanguageID != languageID || w.WordNumber < fromNumber {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordNumber < out[j].WordNumber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *fakeCatalog) CountByLanguage(_ context.Context, languageID int64) (int, error) {
	n := 0
	for _, w := range c.words {
		if w.LanguageID == languageID {
			n++
		}
	}
	return n, nil
}

type progressKey struct {
	userID int64
	wordID int64
}

type fakeProgress struct {
	records map[progressKey]*models.ProgressRecord
	nextID  int64
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{records: make(map[progressKey]*models.ProgressRecord)}
}

func (p *fakeProgress) Get(_ context.Context, userID, wordID int64) (*models.ProgressRecord, error) {
	rec, ok := p.records[progressKey{userID, wordID}]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (p *fakeProgress) Upsert(_ context.Context, update *models.ProgressUpdate) (*models.ProgressRecord, error) {
	key := progressKey{update.UserID, update.WordID}
	rec, ok := p.records[key]
	if !ok {
		p.nextID++
		rec = &models.ProgressRecord{
			ID:         p.nextID,
			UserID:     update.UserID,
			WordID:     update.WordID,
			LanguageID: update.LanguageID,
		}
		p.records[key] = rec
	}
	if update.Score != nil {
		rec.Score = *update.Score
	}
	if update.IsSkipped != nil {
		rec.IsSkipped = *update.IsSkipped
	}
	if update.CheckInterval != nil {
		rec.CheckInterval = *update.CheckInterval
	}
	if update.NextCheckDate != nil {
		d := *update.NextCheckDate
		rec.NextCheckDate = &d
	}
	if update.HintMeaning != nil {
		s := *update.HintMeaning
		rec.HintMeaning = &s
	}
	if update.HintPhoneticSound != nil {
		s := *update.HintPhoneticSound
		rec.HintPhoneticSound = &s
	}
	if update.HintPhoneticAssoc != nil {
		s := *update.HintPhoneticAssoc
		rec.HintPhoneticAssoc = &s
	}
	if update.HintWriting != nil {
		s := *update.HintWriting
		rec.HintWriting = &s
	}
	cp := *rec
	return &cp, nil
}

func (p *fakeProgress) ListByUserAndLanguage(_ context.Context, userID, languageID int64) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, rec := range p.records {
		if rec.UserID == userID && rec.LanguageID == languageID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordID < out[j].WordID })
	return out, nil
}

func (p *fakeProgress) DueWordIDs(_ context.Context, userID, languageID int64, asOf time.Time) ([]int64, error) {
	var out []int64
	for _, rec := range p.records {
		if rec.UserID != userID || rec.LanguageID != languageID || rec.NextCheckDate == nil {
			continue
		}
		if !rec.NextCheckDate.After(asOf) {
			out = append(out, rec.WordID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (p *fakeProgress) CountsByUserAndLanguage(_ context.Context, userID, languageID int64) (studied, known, skipped int, err error) {
	for _, rec := range p.records {
		if rec.UserID != userID || rec.LanguageID != languageID {
			continue
		}
		studied++
		if rec.Score == 1 {
			known++
		}
		if rec.IsSkipped {
			skipped++
		}
	}
	return studied, known, skipped, nil
}

type fakeSettings struct {
	byUser map[int64]*models.UserLanguageSettings
}

func (s *fakeSettings) Get(_ context.Context, userID, languageID int64) (*models.UserLanguageSettings, error) {
	if s.byUser != nil {
		if cfg, ok := s.byUser[userID]; ok {
			return cfg, nil
		}
	}
	return models.DefaultSettings(userID, languageID), nil
}

type fakeLanguages struct {
	languages map[int64]*models.Language
}

func (l *fakeLanguages) GetByID(_ context.Context, id int64) (*models.Language, error) {
	lang, ok := l.languages[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return lang, nil
}

func intPtr(v int) *int              { return &v }
func boolPtr(v bool) *bool           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// catalogOf builds sequential words 1..count for a language.
func catalogOf(languageID int64, count int) *fakeCatalog {
	words := make([]models.Word, 0, count)
	for i := 1; i <= count; i++ {
		words = append(words, models.Word{
			ID:          int64(i),
			LanguageID:  languageID,
			WordForeign: "sana" + strconv.Itoa(i),
			Translation: "word" + strconv.Itoa(i),
			WordNumber:  i,
		})
	}
	return &fakeCatalog{words: words}
}
