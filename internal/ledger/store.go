// Package ledger tracks submitted job applications in a flat table.
//
// The table is small and rewritten whole on every change, so a Store only
// needs to load and save complete row sets.
package ledger

import (
	"context"

	"github.com/jonathan/job-assistant/internal/types"
)

// Store persists the full set of ledger rows.
type Store interface {
	// Load returns every row in ledger order. A store that has never been saved returns no rows.
	Load(ctx context.Context) ([]types.ApplicationRecord, error)
	// Save replaces the stored rows with rows.
	Save(ctx context.Context, rows []types.ApplicationRecord) error
}

// MemoryStore keeps rows in memory. Useful for tests and dry runs.
type MemoryStore struct {
	rows    []types.ApplicationRecord
	SaveErr error
}

// Load implements Store.
func (m *MemoryStore) Load(context.Context) ([]types.ApplicationRecord, error) {
	return append([]types.ApplicationRecord(nil), m.rows...), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, rows []types.ApplicationRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.rows = append([]types.ApplicationRecord(nil), rows...)
	return nil
}
