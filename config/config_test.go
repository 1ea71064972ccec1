package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.EntryTimeTable(), 5)
	assert.Len(t, cfg.DTETable(), 6)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
journal:
  db_path: /tmp/journal.sqlite
buckets:
  entry_time:
    - label: morning
      start: 540
      end: 720
    - label: afternoon
      start: 720
      end: 960
  dte:
    - label: "0-7"
      min: 0
      max: 7
    - label: "8+"
      min: 8
      max: -1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal.sqlite", cfg.Journal.DBPath)

	entry := cfg.EntryTimeTable()
	require.Len(t, entry, 2)
	assert.Equal(t, "morning", entry[0].Label)
	assert.Equal(t, "morning", entry.Bucket(600))

	dte := cfg.DTETable()
	require.Len(t, dte, 2)
	label, ok := dte.Bucket(30)
	require.True(t, ok)
	assert.Equal(t, "8+", label)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"journal": {"db_path": "./j.db"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./j.db", cfg.Journal.DBPath)
}

func TestLoadFromFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
journal:
  db_path: ./j.db
buckets:
  entry_time:
    - label: a
      start: 0
      end: 120
    - label: b
      start: 60
      end: 180
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func TestValidateMissingDBPath(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Error(t, cfg.Validate())
}
