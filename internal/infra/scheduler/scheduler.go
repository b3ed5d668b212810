package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler decides how long the poll loop sleeps. The long interval
// follows a cron schedule, the retry backoff is a fixed delay.
type PollScheduler struct {
	schedule   cron.Schedule
	retryDelay time.Duration
	logger     logrus.FieldLogger
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewPollScheduler accepts standard cron specs and descriptors such as "@every 5m".
func NewPollScheduler(spec string, retryDelay time.Duration, logger logrus.FieldLogger) (*PollScheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return &PollScheduler{
		schedule:   schedule,
		retryDelay: retryDelay,
		logger:     logger,
		now:        time.Now,
		sleep:      Sleep,
	}, nil
}

// NextPollDelay is the time left from now until the next scheduled poll.
func (s *PollScheduler) NextPollDelay(now time.Time) time.Duration {
	d := s.schedule.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Interval is the nominal gap between two consecutive scheduled polls.
func (s *PollScheduler) Interval() time.Duration {
	first := s.schedule.Next(s.now())
	return s.schedule.Next(first).Sub(first)
}

// UntilNextPoll blocks until the next scheduled poll or ctx is done.
func (s *PollScheduler) UntilNextPoll(ctx context.Context) error {
	d := s.NextPollDelay(s.now())
	s.logger.Debugf("Sleeping %s before next try", d)
	return s.sleep(ctx, d)
}

// BeforeRetry blocks for the retry delay or until ctx is done.
func (s *PollScheduler) BeforeRetry(ctx context.Context) error {
	s.logger.Debugf("Sleeping %s before retry", s.retryDelay)
	return s.sleep(ctx, s.retryDelay)
}

// Sleep waits for d, returning ctx.Err() if ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
