package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesTables(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, tbl := range []string{"crops", "tasks", "kb_documents", "kb_chunks"} {
		assert.True(t, db.Migrator().HasTable(tbl), "table %s should exist", tbl)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO crops (name) VALUES ('Wheat')`).Error)
	require.NoError(t, Close(db))

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	var n int64
	require.NoError(t, db.Table("crops").Count(&n).Error)
	assert.Equal(t, int64(1), n, "reopening must keep existing rows")
}

func TestCropStatusDefaultsInSchema(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Exec(`INSERT INTO crops (name) VALUES ('Corn')`).Error)
	var status string
	require.NoError(t, db.Raw(`SELECT status FROM crops WHERE name = 'Corn'`).Scan(&status).Error)
	assert.Equal(t, "growing", status)
}

func TestForeignKeyIsNotEnforced(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	err = db.Exec(`INSERT INTO tasks (crop_id, task_name) VALUES (999, 'Weed bed 3')`).Error
	assert.NoError(t, err)
}
