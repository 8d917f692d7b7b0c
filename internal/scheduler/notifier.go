package scheduler

import "go.uber.org/zap"

// Notifier delivers due-word reminders. Implementations decide the channel;
// the scheduler only decides who gets one and when.
type Notifier interface {
	NotifyDueWords(userID, languageID int64, count int) error
}

// LogNotifier writes reminders to the application log. It is the default
// delivery channel until a push or chat transport is plugged in.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier writing through the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyDueWords logs one reminder line per user and language.
func (n *LogNotifier) NotifyDueWords(userID, languageID int64, count int) error {
	n.logger.Info("words due for review",
		zap.Int64("user_id", userID),
		zap.Int64("language_id", languageID),
		zap.Int("count", count),
	)
	return nil
}
