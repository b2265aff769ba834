package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_WritesContentUnderGeneratedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(strings.NewReader("certificate bytes"), "marksheet.pdf")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-marksheet\.pdf$`), name)

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "certificate bytes", string(data))
}

func TestSave_CollapsesWhitespaceRuns(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(strings.NewReader("x"), "my  10th   marks sheet.pdf")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-my-10th-marks-sheet\.pdf$`), name)
}

func TestSave_StripsDirectoryComponents(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(strings.NewReader("x"), "../escape.pdf")
	require.NoError(t, err)

	assert.NotContains(t, name, "/")
	assert.Regexp(t, regexp.MustCompile(`^\d+-escape\.pdf$`), name)
}

func TestSave_SameMillisecondNeverOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// Pin the clock so both uploads contend for the same name.
	orig := nowMillis
	nowMillis = func() int64 { return 1700000000000 }
	defer func() { nowMillis = orig }()

	first, err := store.Save(strings.NewReader("first"), "marksheet.pdf")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("second"), "marksheet.pdf")
	require.NoError(t, err)

	assert.Equal(t, "1700000000000-marksheet.pdf", first)
	assert.Equal(t, "1700000000001-marksheet.pdf", second)

	data, err := os.ReadFile(filepath.Join(store.Dir(), first))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	data, err = os.ReadFile(filepath.Join(store.Dir(), second))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
