package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSchedule purges expired sessions every five minutes.
const DefaultSweepSchedule = "*/5 * * * *"

// SessionSweeper periodically removes expired sessions from the store.
type SessionSweeper struct {
	store    SessionStore
	schedule string
	logger   *zap.Logger
}

func NewSessionSweeper(store SessionStore, schedule string, logger *zap.Logger) *SessionSweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SessionSweeper{store: store, schedule: schedule, logger: logger}
}

// Start runs the sweep on schedule until ctx is cancelled. It returns an
// error only when the schedule cannot be parsed.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("failed to purge expired sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")

	return nil
}

// Sweep purges expired sessions once and returns how many were removed.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	n, err := s.store.PurgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("expired sessions purged", zap.Int("count", n))
	}
	return n, nil
}
