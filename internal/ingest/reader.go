// Package ingest loads Airbnb listing CSV files and normalizes their rows.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/stayscope/stayscope/internal/common"
)

// RawRow is one CSV row keyed by header name, before normalization.
type RawRow map[string]string

// Source is the parsed content of one CSV file.
type Source struct {
	Header []string
	Rows   []RawRow
}

// Loader reads listing CSV files from disk.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a CSV file. The first row is the header; every
// following row becomes a header-keyed RawRow. The file is opened
// read-only and closed before Load returns.
func (l *Loader) Load(ctx context.Context, path string) (*Source, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close source file", "path", path, "error", closeErr)
		}
	}()

	// The reader enforces a consistent field count per record, so a
	// structurally malformed file surfaces here as a parse failure.
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParseFailure, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", common.ErrParseFailure)
	}

	header := records[0]
	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(RawRow, len(header))
		for i, column := range header {
			row[column] = record[i]
		}
		rows = append(rows, row)
	}

	slog.Info("Loaded CSV source",
		"path", path,
		"rows", len(rows),
		"columns", len(header))

	return &Source{Header: header, Rows: rows}, nil
}
