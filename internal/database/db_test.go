package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evelynxu/marksearch/internal/config"
)

func setupTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	cfg := &config.Config{
		DatabasePath:  dbPath,
		DataDirectory: tempDir,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return db, dbPath
}

func TestNew(t *testing.T) {
	db, dbPath := setupTestDB(t)
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var version string
	if err := db.conn.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		t.Errorf("Failed to query SQLite version: %v", err)
	}
	if version == "" {
		t.Error("SQLite version should not be empty")
	}
}

func TestDatabaseInitialization(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	for _, table := range []string{"bookmarks", "bookmark_hashes"} {
		var tableExists int
		err := db.conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&tableExists)
		if err != nil {
			t.Fatalf("Failed to check for %s table: %v", table, err)
		}
		if tableExists != 1 {
			t.Errorf("%s table should exist", table)
		}
	}
}

func TestInitializeIdempotent(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	// Opening an existing database must not fail on CREATE TABLE IF NOT EXISTS
	if err := db.initialize(); err != nil {
		t.Errorf("Re-initialization failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	db, _ := setupTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
