package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// ErrNotFound is returned for a row index outside the ledger.
var ErrNotFound = errors.New("application not found")

// ApplyInput is what the user supplies when recording an application.
type ApplyInput struct {
	Company  string `json:"company" validate:"required"`
	Position string `json:"position" validate:"required"`
	Platform string `json:"platform"`
	Notes    string `json:"notes"`
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	Status        *types.Status `json:"status,omitempty"`
	Response      *string       `json:"response,omitempty"`
	InterviewDate *string       `json:"interview_date,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Response == nil && p.InterviewDate == nil && p.Notes == nil
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for application dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Ledger is the in-memory application table backed by a Store.
type Ledger struct {
	mu     sync.RWMutex
	rows   []types.ApplicationRecord
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Open loads the ledger from store. Any read failure starts an empty ledger.
func Open(ctx context.Context, store Store, logger *zap.Logger, opts ...Option) *Ledger {
	l := newLedger(store, logger, opts)
	rows, err := store.Load(ctx)
	if err != nil {
		l.logger.Warn("ledger unreadable, starting empty", zap.Error(err))
		rows = nil
	}
	l.load(rows)
	return l
}

// OpenStrict is Open for stores that can fail transiently, such as a database.
// Only a *ReadError starts an empty ledger. Any other Load failure is returned,
// because the first Save would replace rows that were never loaded.
func OpenStrict(ctx context.Context, store Store, logger *zap.Logger, opts ...Option) (*Ledger, error) {
	l := newLedger(store, logger, opts)
	rows, err := store.Load(ctx)
	if err != nil {
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		l.logger.Warn("ledger unreadable, starting empty", zap.Error(err))
		rows = nil
	}
	l.load(rows)
	return l, nil
}

func newLedger(store Store, logger *zap.Logger, opts []Option) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) load(rows []types.ApplicationRecord) {
	l.rows = append([]types.ApplicationRecord{}, rows...)
	l.logger.Debug("ledger opened", zap.Int("rows", len(l.rows)))
}

// Columns returns the fixed column order.
func (l *Ledger) Columns() []string {
	return types.LedgerColumns()
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Rows returns a copy of every row in ledger order.
func (l *Ledger) Rows() []types.ApplicationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]types.ApplicationRecord{}, l.rows...)
}

// Get returns the row at index.
func (l *Ledger) Get(index int) (types.ApplicationRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.rows) {
		return types.ApplicationRecord{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return l.rows[index], nil
}

// Apply appends a new application with status Applied dated today and persists the ledger.
// It returns the new row's index.
func (l *Ledger) Apply(ctx context.Context, in ApplyInput) (int, types.ApplicationRecord, error) {
	rec := types.ApplicationRecord{
		Date:     l.now().Format(types.DateLayout),
		Company:  strings.TrimSpace(in.Company),
		Position: strings.TrimSpace(in.Position),
		Platform: strings.TrimSpace(in.Platform),
		Status:   types.StatusApplied,
		Notes:    in.Notes,
	}
	if err := rec.Validate(); err != nil {
		return 0, types.ApplicationRecord{}, fmt.Errorf("invalid application: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := append(append([]types.ApplicationRecord{}, l.rows...), rec)
	if err := l.store.Save(ctx, next); err != nil {
		return 0, types.ApplicationRecord{}, fmt.Errorf("failed to save ledger: %w", err)
	}
	l.rows = next
	index := len(next) - 1

	l.logger.Info("application recorded",
		zap.Int("index", index),
		zap.String("company", rec.Company),
		zap.String("position", rec.Position),
	)
	return index, rec, nil
}

// Update applies patch to the row at index and persists the ledger. The application date never changes.
func (l *Ledger) Update(ctx context.Context, index int, patch Patch) (types.ApplicationRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.rows) {
		return types.ApplicationRecord{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}

	rec := l.rows[index]
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Response != nil {
		rec.Response = *patch.Response
	}
	if patch.InterviewDate != nil {
		rec.InterviewDate = strings.TrimSpace(*patch.InterviewDate)
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	if err := rec.Validate(); err != nil {
		return types.ApplicationRecord{}, fmt.Errorf("invalid update: %w", err)
	}

	next := append([]types.ApplicationRecord{}, l.rows...)
	next[index] = rec
	if err := l.store.Save(ctx, next); err != nil {
		return types.ApplicationRecord{}, fmt.Errorf("failed to save ledger: %w", err)
	}
	l.rows = next

	l.logger.Info("application updated", zap.Int("index", index), zap.String("status", string(rec.Status)))
	return rec, nil
}
