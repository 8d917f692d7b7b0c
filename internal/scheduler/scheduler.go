// Package scheduler runs the periodic reminder sweep that tells users how
// many words are waiting for review.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/pkg/models"
)

// SettingsLister enumerates every configured (user, language) pair.
type SettingsLister interface {
	List(ctx context.Context) ([]models.UserLanguageSettings, error)
}

// DueCounter reports which of a user's words are due as of a moment.
type DueCounter interface {
	DueWordIDs(ctx context.Context, userID, languageID int64, asOf time.Time) ([]int64, error)
}

// Scheduler manages the recurring due-word check.
type Scheduler struct {
	cron     *gocron.Scheduler
	settings SettingsLister
	progress DueCounter
	notifier Notifier
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a scheduler over the given stores. Nothing runs until Start.
func New(cfg *config.Config, settings SettingsLister, progress DueCounter, notifier Notifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     gocron.NewScheduler(time.UTC),
		settings: settings,
		progress: progress,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start schedules the periodic sweep and returns immediately.
func (s *Scheduler) Start() error {
	if _, err := s.cron.Every(s.cfg.ReminderInterval).Do(s.runSweep); err != nil {
		return err
	}
	s.cron.StartAsync()
	s.logger.Info("reminder scheduler started",
		zap.Duration("interval", s.cfg.ReminderInterval),
		zap.Int("start_hour", s.cfg.ReminderStartHour),
		zap.Int("end_hour", s.cfg.ReminderEndHour),
	)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	now := s.now()
	hour := now.Hour()
	if hour < s.cfg.ReminderStartHour || hour > s.cfg.ReminderEndHour {
		s.logger.Debug("outside reminder hours, skipping sweep",
			zap.Int("hour", hour),
			zap.Int("start_hour", s.cfg.ReminderStartHour),
			zap.Int("end_hour", s.cfg.ReminderEndHour),
		)
		return
	}
	if err := s.Sweep(context.Background(), now); err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
	}
}

// Sweep checks every configured user once and notifies those with due
// words. Per-user failures are logged and skipped; the sweep continues
// with the remaining users.
func (s *Scheduler) Sweep(ctx context.Context, asOf time.Time) error {
	all, err := s.settings.List(ctx)
	if err != nil {
		return err
	}

	for _, cfg := range all {
		due, err := s.progress.DueWordIDs(ctx, cfg.UserID, cfg.LanguageID, asOf)
		if err != nil {
			s.logger.Error("failed to load due words",
				zap.Int64("user_id", cfg.UserID),
				zap.Int64("language_id", cfg.LanguageID),
				zap.Error(err),
			)
			continue
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.NotifyDueWords(cfg.UserID, cfg.LanguageID, len(due)); err != nil {
			s.logger.Error("failed to deliver reminder",
				zap.Int64("user_id", cfg.UserID),
				zap.Int64("language_id", cfg.LanguageID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// RunManualCheck forces a reminder check for one user and language,
// ignoring the hour window.
func (s *Scheduler) RunManualCheck(ctx context.Context, userID, languageID int64) error {
	due, err := s.progress.DueWordIDs(ctx, userID, languageID, s.now())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}
	return s.notifier.NotifyDueWords(userID, languageID, len(due))
}
