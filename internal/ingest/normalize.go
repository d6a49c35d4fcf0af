package ingest

import (
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/stayscope/stayscope/internal/model"
)

// nonPriceChars matches everything a raw price string may carry besides
// digits and the decimal point (currency symbols, commas, whitespace).
var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Normalizer converts raw CSV rows into typed listings.
type Normalizer struct {
	progress io.Writer
}

// NewNormalizer creates a normalizer. When progress is non-nil a
// progress bar is rendered to it while rows are processed.
func NewNormalizer(progress io.Writer) *Normalizer {
	return &Normalizer{progress: progress}
}

// Normalize applies the field rules to every row independently. Rows
// without a valid numeric host_id are dropped; all other malformed
// fields fall back to their defaults rather than failing the batch.
func (n *Normalizer) Normalize(src *Source) []model.Listing {
	var bar *progressbar.ProgressBar
	if n.progress != nil && len(src.Rows) > 0 {
		bar = progressbar.NewOptions(len(src.Rows),
			progressbar.OptionSetWriter(n.progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Normalizing listings...[reset]"),
		)
	}

	listings := make([]model.Listing, 0, len(src.Rows))
	dropped := 0

	for _, row := range src.Rows {
		if bar != nil {
			_ = bar.Add(1)
		}

		listing, ok := normalizeRow(row, src.Header)
		if !ok {
			dropped++
			slog.Debug("Dropping row with invalid host_id", "host_id", row["host_id"])
			continue
		}
		listings = append(listings, listing)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	slog.Info("Normalized listings",
		"rows", len(src.Rows),
		"listings", len(listings),
		"dropped", dropped)

	return listings
}

// normalizeRow applies the per-field rules to a single row. The second
// return value is false when the row must be excluded entirely.
func normalizeRow(row RawRow, header []string) (model.Listing, bool) {
	hostID := strings.TrimSpace(row["host_id"])
	if !isDigits(hostID) {
		return model.Listing{}, false
	}

	price := parsePrice(row["price"])
	accommodates := parseAccommodates(row["accommodates"])
	rating := parseRating(row["review_scores_rating"])

	// The opaque payload keeps every original column, with the
	// normalized fields written back as their cleaned values.
	fields := make(map[string]string, len(row))
	for k, v := range row {
		fields[k] = v
	}
	fields["host_id"] = hostID
	fields["price"] = strconv.FormatFloat(price, 'f', -1, 64)
	fields["accommodates"] = strconv.Itoa(accommodates)
	fields["review_scores_rating"] = strconv.FormatFloat(rating, 'f', -1, 64)

	return model.Listing{
		Fields:             fields,
		Columns:            header,
		HostID:             hostID,
		Price:              price,
		Accommodates:       accommodates,
		ReviewScoresRating: rating,
	}, true
}

// parsePrice strips everything except digits and the decimal point
// before parsing, so "$1,200.50" becomes 1200.50. Unparseable or
// non-finite values become 0.
func parsePrice(raw string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseAccommodates defaults to 1 for anything that is not a positive
// integer.
func parseAccommodates(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 1
	}
	return v
}

// parseRating defaults to 0 for anything that is not a non-negative
// finite number.
func parseRating(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// isDigits reports whether s is non-empty and consists solely of ASCII
// digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
