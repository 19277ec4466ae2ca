package reminders

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule runs the reminder check once a day.
const DefaultSchedule = "@daily"

// Scheduler wraps robfig/cron and runs the reminder check.
type Scheduler struct {
	cron    *cron.Cron
	checker *Checker
	spec    string
	logger  *zap.Logger
	initial sync.WaitGroup
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler creates a Scheduler for spec, DefaultSchedule when empty.
func NewScheduler(checker *Checker, spec string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultSchedule
	}
	cl := cronLogger{s: logger.Sugar()}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		checker: checker,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the check and starts the scheduler. It also runs one check
// immediately so reminders are not delayed until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.checker.Check(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.String("spec", s.spec))

	s.initial.Go(func() { s.checker.Check(ctx) })

	return nil
}

// Stop halts the scheduler and waits for running checks to finish,
// including the one started by Start.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.logger.Info("reminder scheduler stopped")
}
