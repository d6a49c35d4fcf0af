package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stayscope/stayscope/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,price,accommodates,review_scores_rating,host_id
Loft,"$1,200.50",4,4.9,42
Studio,80,2,4.5,42
Shed,abc,1,,17
Ghost,100,2,4.0,not-a-host
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return path
}

func executeAnalyze(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := analyzeCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyze_Unattended(t *testing.T) {
	input := writeSampleCSV(t)
	output := filepath.Join(t.TempDir(), "filtered.csv")

	out, err := executeAnalyze(t, "",
		"--no-input", "-i", input, "--min-price", "50", "-o", output)
	require.NoError(t, err)

	// Ghost (invalid host_id) dropped during normalization; Shed has
	// price 0 and fails the min-price bound.
	assert.Contains(t, out, "Filtered listings: 2")
	assert.Contains(t, out, "Host ID: 42, Listings: 2")

	content, readErr := os.ReadFile(output)
	require.NoError(t, readErr)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 3) // header + two listings
	assert.Equal(t, "name,price,accommodates,review_scores_rating,host_id", lines[0])
	assert.Contains(t, lines[1], "1200.5")
}

func TestAnalyze_MissingFileIsFatal(t *testing.T) {
	_, err := executeAnalyze(t, "",
		"--no-input", "-i", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestAnalyze_NoInputWithoutFileFails(t *testing.T) {
	_, err := executeAnalyze(t, "", "--no-input")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestAnalyze_EmptyFilteredSetSkipsExport(t *testing.T) {
	input := writeSampleCSV(t)
	output := filepath.Join(t.TempDir(), "filtered.csv")

	out, err := executeAnalyze(t, "",
		"--no-input", "-i", input, "--min-price", "100000", "-o", output)
	require.NoError(t, err)

	assert.Contains(t, out, "Nothing to export")
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyze_ExportFailureDoesNotFailSession(t *testing.T) {
	input := writeSampleCSV(t)
	output := filepath.Join(t.TempDir(), "missing", "deep", "filtered.csv")

	out, err := executeAnalyze(t, "", "--no-input", "-i", input, "-o", output)
	require.NoError(t, err, "export failure must not fail the session")
	assert.Contains(t, out, "Export failed")
}

func TestAnalyze_InteractiveCriteria(t *testing.T) {
	input := writeSampleCSV(t)

	// Five criteria answers (only min price set), then a blank export
	// path to skip export.
	out, err := executeAnalyze(t, "100\n\n\n\n\n\n", "-i", input)
	require.NoError(t, err)

	assert.Contains(t, out, "Minimum price")
	assert.Contains(t, out, "Filtered listings: 2")
}

func TestAnalyze_FlagZeroIsActiveBound(t *testing.T) {
	input := writeSampleCSV(t)

	out, err := executeAnalyze(t, "",
		"--no-input", "-i", input, "--max-price", "0")
	require.NoError(t, err)

	// Only the defaulted-to-zero price listing survives a max of 0.
	assert.Contains(t, out, "Filtered listings: 1")
	assert.Contains(t, out, "No valid listings")
}

func TestAnalyze_TopFlagLimitsRanking(t *testing.T) {
	var rows strings.Builder
	rows.WriteString("price,accommodates,review_scores_rating,host_id\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&rows, "100,2,4.5,%d\n", i)
	}
	path := filepath.Join(t.TempDir(), "many.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows.String()), 0o600))

	out, err := executeAnalyze(t, "", "--no-input", "-i", path, "--top", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "3. Host ID:")
	assert.NotContains(t, out, "4. Host ID:")
}
