// Package reminders notifies the user about upcoming interviews on a cron schedule.
package reminders

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/job-assistant/internal/notify"
	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// DueInterview is an application whose interview falls inside the reminder window.
type DueInterview struct {
	Index  int
	Record types.ApplicationRecord
}

// Due returns applications in Interview status with an interview date in
// [today, today+withinDays], ordered by date.
func Due(rows []types.ApplicationRecord, now time.Time, withinDays int) []DueInterview {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := today.AddDate(0, 0, withinDays)

	var due []DueInterview
	for i, r := range rows {
		if r.Status != types.StatusInterview || r.InterviewDate == "" {
			continue
		}
		d, err := time.ParseInLocation(types.DateLayout, r.InterviewDate, now.Location())
		if err != nil {
			continue
		}
		if d.Before(today) || d.After(last) {
			continue
		}
		due = append(due, DueInterview{Index: i, Record: r})
	}

	slices.SortStableFunc(due, func(a, b DueInterview) int {
		return strings.Compare(a.Record.InterviewDate, b.Record.InterviewDate)
	})
	return due
}

// RowSource returns the current ledger rows.
type RowSource func() []types.ApplicationRecord

// Checker sends one reminder per due interview per day.
type Checker struct {
	rows       RowSource
	notifier   notify.Notifier
	to         string
	withinDays int
	logger     *zap.Logger
	now        func() time.Time

	mu   sync.Mutex
	sent map[string]bool
}

// NewChecker returns a checker over rows that notifies to.
func NewChecker(rows RowSource, notifier notify.Notifier, to string, withinDays int, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Checker{
		rows:       rows,
		notifier:   notifier,
		to:         to,
		withinDays: withinDays,
		logger:     logger,
		now:        time.Now,
		sent:       make(map[string]bool),
	}
}

// Check notifies every due interview not yet reminded today and returns how many were sent.
func (c *Checker) Check(ctx context.Context) int {
	now := c.now()
	today := now.Format(types.DateLayout)
	due := Due(c.rows(), now, c.withinDays)

	c.mu.Lock()
	defer c.mu.Unlock()

	sent := 0
	for _, d := range due {
		key := fmt.Sprintf("%s|%d|%s", today, d.Index, d.Record.InterviewDate)
		if c.sent[key] {
			continue
		}
		msg := notify.InterviewReminder(c.to, d.Record.Company, d.Record.Position, d.Record.InterviewDate)
		if warning := notify.Send(ctx, c.notifier, msg, c.logger); warning != "" {
			continue
		}
		c.sent[key] = true
		sent++
	}

	c.logger.Info("interview reminder check complete", zap.Int("due", len(due)), zap.Int("sent", sent))
	return sent
}
