package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		url     string
		dialect Dialect
		dsn     string
	}{
		{"postgres://pka:secret@db:5432/pka", Postgres, "postgres://pka:secret@db:5432/pka"},
		{"postgresql://db/pka", Postgres, "postgresql://db/pka"},
		{"sqlite://data/pka.db", SQLite, "data/pka.db"},
		{"sqlite://:memory:", SQLite, ":memory:"},
		{"file:pka.db?mode=ro", SQLite, "file:pka.db?mode=ro"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			dialect, dsn, err := ParseDatabaseURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.dialect, dialect)
			assert.Equal(t, tc.dsn, dsn)
		})
	}
}

func TestParseDatabaseURL_Rejects(t *testing.T) {
	_, _, err := ParseDatabaseURL("sqlite://")
	assert.Error(t, err)

	_, _, err = ParseDatabaseURL("mysql://root:hunter2@db/pka")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadMigrations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_events.sql", "CREATE TABLE b (id INTEGER);")
	writeFile(t, dir, "001_episodes.sql", "CREATE TABLE a (id INTEGER);")
	writeFile(t, dir, "README.md", "not a migration")
	writeFile(t, dir, "abc_notes.sql", "SELECT 1;")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	migrations, err := readMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].version)
	assert.Equal(t, "001_episodes.sql", migrations[0].name)
	assert.Equal(t, 2, migrations[1].version)
}

func TestReadMigrations_MissingDir(t *testing.T) {
	_, err := readMigrations(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRunSQLiteMigrations_Idempotent(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", 4)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(db, "../../migrations/sqlite"))
	require.NoError(t, RunSQLiteMigrations(db, "../../migrations/sqlite"))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	for _, table := range []string{"pka_episode", "pka_youtube_details", "pka_event"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestRunSQLiteMigrations_FailedMigrationRollsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_broken.sql", "CREATE TABLE ok_table (id INTEGER); THIS IS NOT SQL;")

	db, err := NewSQLiteDB(":memory:", 1)
	require.NoError(t, err)
	defer db.Close()

	require.Error(t, RunSQLiteMigrations(db, dir))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 0, applied)
}

func TestNewSQLiteDB_MemoryOutlivesIdleTimeout(t *testing.T) {
	saved := sqliteConnMaxIdleTime
	sqliteConnMaxIdleTime = 50 * time.Millisecond
	t.Cleanup(func() { sqliteConnMaxIdleTime = saved })

	db, err := NewSQLiteDB(":memory:", 4)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(db, "../../migrations/sqlite"))
	_, err = db.Exec(`INSERT INTO pka_episode (number_milli, name, youtube_link, upload_date) VALUES (1000, 'PKA 1', 'https://www.youtube.com/watch?v=1', 1)`)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM pka_episode`).Scan(&count))
	assert.Equal(t, 1, count)
}
