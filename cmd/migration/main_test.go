package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.sql")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	got, err := migrationsDir("", file, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = migrationsDir(filepath.Join(dir, "missing"))
	if err == nil {
		// ./db/migrations exists when run from the module root
		t.Skip("default migrations directory present")
	}
	assert.Contains(t, err.Error(), "MIGRATIONS_DIR")
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := parseVersion(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)

	for _, raw := range []string{"-1", "two", ""} {
		_, err := parseVersion(raw)
		assert.Error(t, err, raw)
	}
}

func TestRootCmd_RequiresDatabase(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("APP_ENV", "dev")

	root := newRootCmd()
	root.SetArgs([]string{"version"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
}
