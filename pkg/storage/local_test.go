package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestFileStore_SaveAndRemove(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.Save(strings.NewReader("hello world"), "report.txt", "text/plain")
	require.NoError(t, err)

	assert.Equal(t, "report.txt", stored.Name)
	assert.Equal(t, "text/plain", stored.ContentType)
	assert.Equal(t, int64(len("hello world")), stored.Size)
	assert.True(t, strings.HasSuffix(stored.Path, "_report.txt"))

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	require.NoError(t, store.Remove(stored.Path))
	_, err = os.Stat(stored.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStore_RemoveMissingFile(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Remove(filepath.Join(store.Dir(), "never_existed.txt")))
	assert.NoError(t, store.Remove(""))
}

func TestFileStore_SniffsContentType(t *testing.T) {
	store := newTestStore(t)

	// Leading "%PDF-" is enough for the sniffer.
	stored, err := store.Save(strings.NewReader("%PDF-1.4 fake"), "doc.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", stored.ContentType)
}

func TestFileStore_UniqueStoredPaths(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(strings.NewReader("a"), "same.txt", "text/plain")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "same.txt", "text/plain")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"plain.txt":            "plain.txt",
		"../../etc/passwd":     "passwd",
		"dir/evil name!.png":   "evil_name_.png",
		"":                     "file",
		"..":                   "file",
		"weird$chars%here.doc": "weird_chars_here.doc",
	}

	for in, want := range cases {
		assert.Equal(t, want, sanitizeName(in), "input %q", in)
	}
}
