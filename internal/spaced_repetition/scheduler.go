// Package spaced_repetition computes review intervals for studied words.
//
// The algorithm is deliberately simple: a word answered correctly doubles
// its check interval, anything else sends it back to one day. Using a hint
// counts as not knowing the word.
package spaced_repetition

import (
	"time"

	"github.com/example/vocabot/pkg/models"
)

// Scheduler holds the tunable parameters of the review algorithm
type Scheduler struct {
	// Maximum check interval in days
	MaxInterval int
}

// New creates a scheduler with default settings
func New() *Scheduler {
	return &Scheduler{
		MaxInterval: 90, // About three months
	}
}

// Result is the scheduling outcome for one answered word
type Result struct {
	Score         int
	CheckInterval int       // Days until the word is due again
	NextCheckDate time.Time // Midnight UTC
}

// Advance computes the next review state from the previous progress record
// and the user's recall judgment. A nil previous record means the word has
// never been interacted with and is treated as having interval 0.
//
// Rules, in order:
//   - hint used: score forced to 0, interval reset to 1
//   - score 1: interval doubles (0 becomes 1), capped at MaxInterval
//   - score 0: interval reset to 1
func (s *Scheduler) Advance(previous *models.ProgressRecord, score int, hintUsed bool, today time.Time) Result {
	result := Result{Score: score}
	if result.Score != 1 {
		result.Score = 0
	}

	switch {
	case hintUsed:
		result.Score = 0
		result.CheckInterval = 1
	case result.Score == 1:
		prev := 0
		if previous != nil {
			prev = previous.CheckInterval
		}
		if prev == 0 {
			result.CheckInterval = 1
		} else {
			result.CheckInterval = prev * 2
		}
		if result.CheckInterval > s.MaxInterval {
			result.CheckInterval = s.MaxInterval
		}
	default:
		result.CheckInterval = 1
	}

	result.NextCheckDate = DateOnly(today).AddDate(0, 0, result.CheckInterval)
	return result
}

// IsDue reports whether a scheduled check date has arrived by today, at day
// precision. A nil date means the word was never scheduled; such words are
// treated as due.
func IsDue(nextCheckDate *time.Time, today time.Time) bool {
	if nextCheckDate == nil {
		return true
	}
	return !DateOnly(*nextCheckDate).After(DateOnly(today))
}

// DateOnly truncates a time to midnight UTC. Check dates carry day
// precision only.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
