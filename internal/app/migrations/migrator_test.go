package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", MigrationVersion("001_init.sql"))
	assert.Equal(t, "002", MigrationVersion("/x/y/002_add_index.sql"))
	assert.Equal(t, "003", MigrationVersion("003.sql"))
}

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000_dir.sql"), 0o700))

	files, err := ListMigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "001_a.sql"), filepath.Join(dir, "002_b.sql")}, files)

	_, err = ListMigrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRepositorySchemaIsOrdered(t *testing.T) {
	files, err := ListMigrationFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", MigrationVersion(files[0]))
}
