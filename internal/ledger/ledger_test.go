package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/ledger"
)

func TestLoadMissingFileReturnsEmptySet(t *testing.T) {
	l := ledger.New(filepath.Join(t.TempDir(), "processed_urls.log"))

	seen := l.Load()

	assert.Empty(t, seen)
}

func TestMarkAppendsOneLinePerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_urls.log")
	l := ledger.New(path)

	require.NoError(t, l.Mark("https://example.com/a"))
	require.NoError(t, l.Mark("https://example.com/b"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a\nhttps://example.com/b\n", string(data))
}

func TestMarkIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_urls.log")
	l := ledger.New(path)

	require.NoError(t, l.Mark("https://example.com/a"))
	require.NoError(t, l.Mark("https://example.com/a"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a\n", string(data))
}

func TestLoadSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_urls.log")

	first := ledger.New(path)
	require.NoError(t, first.Mark("https://example.com/a"))
	require.NoError(t, first.Close())

	second := ledger.New(path)
	seen := second.Load()

	assert.Contains(t, seen, "https://example.com/a")
	assert.True(t, second.Contains("https://example.com/a"))
	assert.Equal(t, 1, second.Len())
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_urls.log")
	require.NoError(t, os.WriteFile(path, []byte("https://example.com/a\n\n  \nhttps://example.com/b\n"), 0o644))

	l := ledger.New(path)
	seen := l.Load()

	assert.Len(t, seen, 2)
}
