package cache

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Local is the device-scoped entitlement cache: a small SQLite file mapping
// flag keys like "advanced_access_<uid>" to the literal string "true".
// Absence means false; nothing ever writes "false". It mirrors what the web
// client keeps in localStorage and lets access checks keep granting while
// the remote store is unreachable.
//
// Reads and writes never fail the caller: a broken cache degrades to
// "no cached grants", which the resolver treats as a denial fallback.
type Local struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open creates (if needed) and opens the cache file under dataPath.
func Open(dataPath string, logger zerolog.Logger) (*Local, error) {
	dataPath = filepath.Clean(strings.TrimSpace(dataPath))
	if dataPath == "" || dataPath == "." {
		return nil, fmt.Errorf("cache: data path is required")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("cache: ensure data dir: %w", err)
	}

	dbPath := filepath.Join(dataPath, "entitlement_cache.db")
	dsn := dbPath + "?" + url.Values{
		"_pragma": []string{
			"busy_timeout(30000)",
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
		},
	}.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	schema := `
	CREATE TABLE IF NOT EXISTS flags (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}

	return &Local{db: db, logger: logger}, nil
}

// Get returns the stored value for key, or "" when absent.
func (c *Local) Get(key string) string {
	if c == nil || c.db == nil {
		return ""
	}
	var value string
	err := c.db.QueryRow(`SELECT value FROM flags WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return ""
	}
	return value
}

// SetIfUnset writes value under key only when the key is absent. Writing the
// same flag twice is a no-op, which is what makes sync idempotent.
func (c *Local) SetIfUnset(key, value string) {
	if c == nil || c.db == nil {
		return
	}
	if _, err := c.db.Exec(`INSERT OR IGNORE INTO flags (key, value) VALUES (?, ?)`, key, value); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Set overwrites key unconditionally. Used for the subscription mirror,
// which is copied verbatim on every sync.
func (c *Local) Set(key, value string) {
	if c == nil || c.db == nil {
		return
	}
	if _, err := c.db.Exec(`INSERT INTO flags (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Close closes the underlying database.
func (c *Local) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
