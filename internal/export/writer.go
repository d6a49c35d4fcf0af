// Package export serializes filtered listings back to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/stayscope/stayscope/internal/common"
	"github.com/stayscope/stayscope/internal/model"
)

// Writer writes listing sets to CSV files.
type Writer struct{}

// NewWriter creates a new CSV export writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write serializes the listings to path. The header is the column order
// of the first record; every original column, including the opaque
// pass-through ones, is written. An empty set performs no file write
// and returns ErrNoListings so the caller can report it.
func (w *Writer) Write(path string, listings []model.Listing) error {
	if len(listings) == 0 {
		return common.ErrNoListings
	}

	header := listings[0].Columns
	if len(header) == 0 {
		header = make([]string, 0, len(listings[0].Fields))
		for column := range listings[0].Fields {
			header = append(header, column)
		}
		sort.Strings(header)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrExportFailure, err)
	}

	writer := csv.NewWriter(f)

	writeErr := writer.Write(header)
	if writeErr == nil {
		for _, l := range listings {
			record := make([]string, len(header))
			for i, column := range header {
				record[i] = l.Fields[column]
			}
			if writeErr = writer.Write(record); writeErr != nil {
				break
			}
		}
	}

	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("%w: %v", common.ErrExportFailure, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", common.ErrExportFailure, closeErr)
	}

	slog.Info("Exported filtered listings", "path", path, "count", len(listings))
	return nil
}
