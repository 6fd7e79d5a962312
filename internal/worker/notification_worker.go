package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/repository"
)

// NotificationPurger removes read notifications past their retention window
// so inboxes stay small.
type NotificationPurger struct {
	notifications repository.NotificationRepository
	interval      time.Duration
	retention     time.Duration
	logger        *zap.Logger
}

// NewNotificationPurger builds the worker. Non-positive interval or retention
// fall back to hourly runs and a thirty day window.
func NewNotificationPurger(
	notifications repository.NotificationRepository,
	interval, retention time.Duration,
	logger *zap.Logger,
) *NotificationPurger {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &NotificationPurger{
		notifications: notifications,
		interval:      interval,
		retention:     retention,
		logger:        logger,
	}
}

// Run loops until the context is canceled.
func (w *NotificationPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *NotificationPurger) purge(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	removed, err := w.notifications.PurgeRead(ctx, cutoff)
	if err != nil {
		w.logger.Warn("notification purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		w.logger.Info("purged notifications", zap.Int64("removed", removed))
	}
}
