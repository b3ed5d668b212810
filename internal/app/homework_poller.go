// internal/app/homework_poller.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

const (
	errorMessageTemplate = "Bot is down with error: %v"
	defaultPollStep      = 5 * time.Minute
)

// Notifier sends a text message to the configured destination.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Waiter blocks between cycles. Both methods return ctx.Err() when ctx ends.
type Waiter interface {
	UntilNextPoll(ctx context.Context) error
	BeforeRetry(ctx context.Context) error
}

// HomeworkPoller runs the fetch, parse, notify cycle and owns the cursor.
// It is not safe for concurrent use; Run is the only execution context.
type HomeworkPoller struct {
	fetcher  homework.Fetcher
	parser   *StatusParser
	notifier Notifier
	waiter   Waiter
	logger   logrus.FieldLogger

	cursor   int64
	pollStep time.Duration
	now      func() time.Time
}

func NewHomeworkPoller(
	fetcher homework.Fetcher,
	parser *StatusParser,
	notifier Notifier,
	waiter Waiter,
	logger logrus.FieldLogger,
) *HomeworkPoller {
	return &HomeworkPoller{
		fetcher:  fetcher,
		parser:   parser,
		notifier: notifier,
		waiter:   waiter,
		logger:   logger,
		cursor:   time.Now().Unix(),
		pollStep: defaultPollStep,
		now:      time.Now,
	}
}

// WithCursor overrides the starting cursor (unix seconds).
func (p *HomeworkPoller) WithCursor(ts int64) *HomeworkPoller {
	p.cursor = ts
	return p
}

// WithPollStep sets how far the cursor moves when the API does not echo current_date.
func (p *HomeworkPoller) WithPollStep(d time.Duration) *HomeworkPoller {
	if d > 0 {
		p.pollStep = d
	}
	return p
}

// Cursor returns the current timestamp watermark.
func (p *HomeworkPoller) Cursor() int64 {
	return p.cursor
}

// Run polls until ctx is canceled. Cycle failures never end the loop:
// they are logged, reported to the chat best-effort and retried after a short delay.
func (p *HomeworkPoller) Run(ctx context.Context) error {
	p.logger.WithField("cursor", p.cursor).Debug("Starting an app")

	for {
		if err := p.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.reportFailure(ctx, err)
			if err := p.waiter.BeforeRetry(ctx); err != nil {
				return err
			}
			continue
		}
		if err := p.waiter.UntilNextPoll(ctx); err != nil {
			return err
		}
	}
}

// RunCycle performs one fetch and notifies every returned homework in API order.
// The cursor advances only when the whole cycle succeeds.
func (p *HomeworkPoller) RunCycle(ctx context.Context) error {
	startedAt := p.now()

	p.logger.Debug("Getting homeworks")
	resp, err := p.fetcher.FetchStatuses(ctx, p.cursor)
	if err != nil {
		return err
	}

	if len(resp.Homeworks) == 0 {
		p.logger.Info("Homeworks not found")
	} else {
		p.logger.Infof("Homeworks found: %d", len(resp.Homeworks))
	}

	for i, rec := range resp.Homeworks {
		msg, err := p.parser.Parse(rec)
		if err != nil {
			return fmt.Errorf("homework %d of %d: %w", i+1, len(resp.Homeworks), err)
		}
		if err := p.notifier.Notify(ctx, msg); err != nil {
			return fmt.Errorf("homework %d of %d: %w", i+1, len(resp.Homeworks), err)
		}
	}

	p.advanceCursor(resp.CurrentDate, startedAt)
	return nil
}

func (p *HomeworkPoller) advanceCursor(currentDate *int64, startedAt time.Time) {
	var next int64
	if currentDate != nil {
		next = *currentDate
	} else {
		next = p.cursor + int64(p.pollStep/time.Second)
		if limit := startedAt.Unix(); next > limit {
			next = limit
		}
	}

	if next < p.cursor {
		p.logger.WithFields(logrus.Fields{"cursor": p.cursor, "candidate": next}).Warn("Server time is behind cursor, keeping cursor")
		return
	}
	p.cursor = next
}

func (p *HomeworkPoller) reportFailure(ctx context.Context, err error) {
	entry := p.logger.WithError(err)

	var ne *domainTelegram.NotifyError
	if errors.As(err, &ne) && ne.Kind == domainTelegram.NotifyUnauthorized {
		entry.Error("Telegram rejected bot credentials")
	}

	var fe *homework.FetchError
	if errors.As(err, &fe) {
		entry = entry.WithField("fetch_error", fe.Kind)
	}
	entry.Errorf(errorMessageTemplate, err)

	if nerr := p.notifier.Notify(ctx, fmt.Sprintf(errorMessageTemplate, err)); nerr != nil {
		p.logger.WithError(nerr).Error("Failed to send error notification")
	}
}
