package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stayscope/stayscope/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeTempCSV(t, "id,price,host_id\n1,\"$1,200.50\",42\n2,80,17\n")

	src, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "price", "host_id"}, src.Header)
	require.Len(t, src.Rows, 2)
	assert.Equal(t, "$1,200.50", src.Rows[0]["price"])
	assert.Equal(t, "42", src.Rows[0]["host_id"])
	assert.Equal(t, "17", src.Rows[1]["host_id"])
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
	assert.True(t, common.IsFatal(err))
}

func TestLoader_Load_MalformedCSV(t *testing.T) {
	// A record with a field count different from the header is a
	// structural failure, not a normalization concern.
	path := writeTempCSV(t, "id,price,host_id\n1,100\n")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParseFailure)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParseFailure)
}

func TestLoader_Load_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "id,price,host_id\n")

	src, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, src.Rows)
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, "anything.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
