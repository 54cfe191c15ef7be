package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// ErrWrongKey is returned when the database exists but cannot be decrypted with the given key
var ErrWrongKey = errors.New("database key does not match; set LUMINA_DB_KEY or reset the keyring entry")

type DB struct {
	*sql.DB
	path string
}

// Open opens an encrypted SQLite database with the given password.
// dbPath is the full path to the database file.
func Open(dbPath, password string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Escape the key for the DSN
	connStr := fmt.Sprintf("%s?_key=%s", dbPath, url.QueryEscape(password))

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection; sqlcipher applies the key per connection
	sqlDB.SetMaxOpenConns(1)

	// The key is only checked on first read
	var tables int
	if err := sqlDB.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&tables); err != nil {
		sqlDB.Close()
		if strings.Contains(err.Error(), "not a database") {
			return nil, ErrWrongKey
		}
		return nil, fmt.Errorf("failed to read database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, path: dbPath}, nil
}

// Path returns the database file location
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
