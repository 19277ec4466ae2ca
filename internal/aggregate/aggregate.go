// Package aggregate fans a search out to every registered source adapter and merges the results.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-assistant/internal/sources"
	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SourceResult is the outcome of one adapter for one search.
type SourceResult struct {
	Source   types.Source  `json:"source"`
	Count    int           `json:"count"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Result is a merged search with per-source outcomes in registration order.
type Result struct {
	Listings []types.ListingRecord `json:"listings"`
	Sources  []SourceResult        `json:"sources"`
}

// Failed returns the sources that contributed nothing because of an error.
func (r *Result) Failed() []SourceResult {
	var failed []SourceResult
	for _, s := range r.Sources {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSourceTimeout bounds each adapter call. Zero means no per-source budget.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.sourceTimeout = d
	}
}

// Aggregator queries adapters concurrently.
type Aggregator struct {
	adapters      []sources.Adapter
	logger        *zap.Logger
	sourceTimeout time.Duration
}

// New returns an aggregator over adapters, queried in the given order.
func New(logger *zap.Logger, adapters []sources.Adapter, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{
		adapters: append([]sources.Adapter(nil), adapters...),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sources returns the registered source tags in order.
func (a *Aggregator) Sources() []types.Source {
	names := make([]types.Source, len(a.adapters))
	for i, ad := range a.adapters {
		names[i] = ad.Name()
	}
	return names
}

// Search queries every adapter and concatenates their listings in registration order.
// A failing adapter contributes nothing; the error is logged, never returned.
func (a *Aggregator) Search(ctx context.Context, keyword, location string) []types.ListingRecord {
	return a.SearchDetailed(ctx, keyword, location).Listings
}

// SearchDetailed is Search plus the per-source outcomes.
func (a *Aggregator) SearchDetailed(ctx context.Context, keyword, location string) *Result {
	q := sources.Query{Keyword: keyword, Location: location}

	// Each goroutine writes only its own slot.
	slots := make([][]types.ListingRecord, len(a.adapters))
	outcomes := make([]SourceResult, len(a.adapters))

	var g errgroup.Group
	for i, adapter := range a.adapters {
		g.Go(func() error {
			start := time.Now()
			listings, err := a.run(ctx, adapter, q)
			outcomes[i] = SourceResult{
				Source:   adapter.Name(),
				Count:    len(listings),
				Err:      err,
				Duration: time.Since(start),
			}
			if err != nil {
				a.logger.Warn("source failed",
					zap.String("source", string(adapter.Name())),
					zap.Error(err),
				)
				return nil
			}
			slots[i] = listings
			return nil
		})
	}
	_ = g.Wait()

	merged := []types.ListingRecord{}
	for _, s := range slots {
		merged = append(merged, s...)
	}

	a.logger.Debug("search complete",
		zap.String("keyword", keyword),
		zap.String("location", location),
		zap.Int("listings", len(merged)),
	)

	return &Result{Listings: merged, Sources: outcomes}
}

// run calls one adapter, converting panics and malformed output into errors.
func (a *Aggregator) run(ctx context.Context, adapter sources.Adapter, q sources.Query) (listings []types.ListingRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			listings, err = nil, fmt.Errorf("adapter panic: %v", r)
		}
	}()

	if a.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.sourceTimeout)
		defer cancel()
	}

	listings, err = adapter.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	for i := range listings {
		if verr := listings[i].Validate(); verr != nil {
			return nil, fmt.Errorf("malformed listing %d: %w", i, verr)
		}
	}

	if len(listings) > sources.MaxPerSource {
		listings = listings[:sources.MaxPerSource]
	}
	return listings, nil
}
