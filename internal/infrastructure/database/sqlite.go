package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sangkips/discount-label-api/internal/config"
)

// sqliteSchema mirrors the GORM models in internal/domain/entity.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scans (
	id          TEXT PRIMARY KEY,
	operator_id TEXT NOT NULL,
	code        TEXT NOT NULL,
	discount    TEXT NOT NULL DEFAULT '',
	outlet      TEXT NOT NULL DEFAULT '',
	scanned_by  TEXT NOT NULL DEFAULT '',
	payload     TEXT NOT NULL DEFAULT '',
	scanned_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_operator_id ON scans(operator_id);
CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at);

CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS idempotency_keys (
	id            TEXT PRIMARY KEY,
	key           TEXT NOT NULL,
	operator_id   TEXT NOT NULL,
	endpoint      TEXT NOT NULL,
	request_hash  TEXT NOT NULL DEFAULT '',
	response_code INTEGER NOT NULL,
	response_body TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	expires_at    DATETIME NOT NULL,
	UNIQUE(key, operator_id)
);
CREATE INDEX IF NOT EXISTS idx_idempotency_keys_expires_at ON idempotency_keys(expires_at);
`

// NewSQLiteDB opens the store-local SQLite database and creates the schema.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := OpenSQLite(cfg.SQLiteDSN())
	if err != nil {
		return nil, err
	}
	log.Printf("Successfully opened SQLite database at %s", cfg.SQLitePath)
	return db, nil
}

// OpenSQLite opens dsn and applies the schema. Tests pass ":memory:".
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one writer at a time; also keeps a :memory: database alive on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return db, nil
}
