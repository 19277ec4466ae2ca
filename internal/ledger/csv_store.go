package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/jonathan/job-assistant/internal/types"
)

// CSVStore keeps the ledger in a comma-separated file with a header row.
type CSVStore struct {
	Path string
}

// ReadError describes a ledger file that exists but cannot be used.
type ReadError struct {
	Path    string
	Line    int
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("ledger %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("ledger %s: %s", loc, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// Load implements Store. A missing file is an empty ledger.
func (s *CSVStore) Load(_ context.Context) ([]types.ApplicationRecord, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.ApplicationRecord{}, nil
	}
	if err != nil {
		return nil, &ReadError{Path: s.Path, Message: "failed to open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(types.LedgerColumns())

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []types.ApplicationRecord{}, nil
	}
	if err != nil {
		return nil, &ReadError{Path: s.Path, Line: 1, Message: "failed to read header", Cause: err}
	}
	if !slices.Equal(header, types.LedgerColumns()) {
		return nil, &ReadError{Path: s.Path, Line: 1, Message: fmt.Sprintf("unexpected header %v", header)}
	}

	rows := []types.ApplicationRecord{}
	for line := 2; ; line++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ReadError{Path: s.Path, Line: line, Message: "malformed row", Cause: err}
		}
		rec, err := types.ApplicationFromRow(fields)
		if err != nil {
			return nil, &ReadError{Path: s.Path, Line: line, Message: "invalid row", Cause: err}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Save implements Store. The file is written to a temporary sibling and renamed into place.
func (s *CSVStore) Save(_ context.Context, rows []types.ApplicationRecord) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	w := csv.NewWriter(tmp)
	if err := w.Write(types.LedgerColumns()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Row()); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write ledger row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
