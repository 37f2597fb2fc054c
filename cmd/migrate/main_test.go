package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"Add Press Index":   "add_press_index",
		"drop-old-columns":  "drop_old_columns",
		"  __ñandú 2024__ ": "and_2024",
		"!!!":               "",
	}
	for input, want := range tests {
		require.Equal(t, want, sanitizeName(input), input)
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps("3")
	require.NoError(t, err)
	require.Equal(t, 3, steps)

	for _, bad := range []string{"0", "-1", "two"} {
		_, err := parseSteps(bad)
		require.Error(t, err, bad)
	}
}

func TestCreateMigrationNumbersAfterLatest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"001_init.up.sql", "001_init.down.sql", "002_more.up.sql", "002_more.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0o644))
	}

	upPath, downPath, err := createMigration(dir, "Add contact notes")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "003_add_contact_notes.up.sql"), upPath)
	require.Equal(t, filepath.Join(dir, "003_add_contact_notes.down.sql"), downPath)

	contents, err := os.ReadFile(upPath)
	require.NoError(t, err)
	require.Equal(t, "-- migrate up\n", string(contents))
}

func TestCreateMigrationInEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	upPath, _, err := createMigration(dir, "init")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "001_init.up.sql"), upPath)

	_, _, err = createMigration(dir, "***")
	require.Error(t, err)
}

func TestCreateCommand(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"create", "seed channels", "--dir", dir})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "001_seed_channels.up.sql")
}

func TestUpRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"up"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL is not set")
}
