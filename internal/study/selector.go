package study

import (
	"context"
	"time"

	"github.com/example/vocabot/internal/spaced_repetition"
	"github.com/example/vocabot/pkg/models"
)

// catalogPageSize is how many words one catalog query fetches
const catalogPageSize = 100

// Selector produces the ordered stream of words a user should study next.
type Selector struct {
	catalog  WordCatalog
	progress ProgressStore
	now      func() time.Time
}

// NewSelector creates a selector over the given stores
func NewSelector(catalog WordCatalog, progress ProgressStore, now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	return &Selector{catalog: catalog, progress: progress, now: now}
}

// Candidates opens the eligible-word stream for one user and language.
// Settings are validated before any store access. The stream starts at the
// larger of fromNumber and settings.StartWord and reads a progress snapshot
// taken once here, so a single pass yields a deterministic order.
func (s *Selector) Candidates(ctx context.Context, userID, languageID int64, settings *models.UserLanguageSettings, fromNumber int) (*Candidates, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	start := settings.StartWord
	if fromNumber > start {
		start = fromNumber
	}

	records, err := s.progress.ListByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}
	byWord := make(map[int64]*models.ProgressRecord, len(records))
	for i := range records {
		byWord[records[i].WordID] = &records[i]
	}

	return &Candidates{
		catalog:    s.catalog,
		languageID: languageID,
		settings:   settings,
		progress:   byWord,
		today:      spaced_repetition.DateOnly(s.now()),
		start:      start,
		next:       start,
	}, nil
}

// Candidates iterates eligible words in ascending word_number order,
// pulling catalog pages lazily. Next returns (nil, nil) once the catalog is
// exhausted; Reset rewinds to the opening position without refreshing the
// progress snapshot.
type Candidates struct {
	catalog    WordCatalog
	languageID int64
	settings   *models.UserLanguageSettings
	progress   map[int64]*models.ProgressRecord
	today      time.Time
	start      int
	next       int
	buf        []models.Word
	bufIdx     int
	exhausted  bool
}

// Next returns the next eligible word, or (nil, nil) when none remain.
func (c *Candidates) Next(ctx context.Context) (*models.Word, error) {
	for {
		word, err := c.nextCatalogWord(ctx)
		if err != nil || word == nil {
			return nil, err
		}
		if c.eligible(word) {
			return word, nil
		}
	}
}

// Reset rewinds the stream to its opening position.
func (c *Candidates) Reset() {
	c.next = c.start
	c.buf = nil
	c.bufIdx = 0
	c.exhausted = false
}

// nextCatalogWord streams the raw catalog page by page.
func (c *Candidates) nextCatalogWord(ctx context.Context) (*models.Word, error) {
	if c.bufIdx >= len(c.buf) {
		if c.exhausted {
			return nil, nil
		}
		words, err := c.catalog.WordsFrom(ctx, c.languageID, c.next, catalogPageSize)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			c.exhausted = true
			return nil, nil
		}
		c.buf = words
		c.bufIdx = 0
		c.next = words[len(words)-1].WordNumber + 1
	}

	word := &c.buf[c.bufIdx]
	c.bufIdx++
	return word, nil
}

// eligible applies the selection rules to one word:
//   - skip-marked words are dropped when the settings say so
//   - words without a progress record are new and always offered
//   - otherwise the check date decides, unless the settings ignore it
func (c *Candidates) eligible(word *models.Word) bool {
	record := c.progress[word.ID]

	if c.settings.SkipMarked && record != nil && record.IsSkipped {
		return false
	}
	if record == nil {
		return true
	}
	if c.settings.UseCheckDate {
		return spaced_repetition.IsDue(record.NextCheckDate, c.today)
	}
	return true
}
