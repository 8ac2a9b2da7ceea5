// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stickystore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const tokenKey = "sessionToken"

var ErrUnknownDriver = errors.New("unknown database type (want sqlite or postgres)")

// Store is a durable key-value store backed by sqlite (default, local file)
// or postgres. It holds the per-tenant sticky-altered id sets and the
// remember-me session token.
type Store struct {
	db     *sql.DB
	driver string
}

// StickyKey returns the storage key for a tenant's sticky-altered set.
// An empty tenant id maps to the shared "global" bucket.
func StickyKey(tenantID string) string {
	if tenantID == "" {
		tenantID = "global"
	}
	return "stickyAlteredIds:" + tenantID
}

// Open connects to the store and creates the schema. databaseType selects
// the driver; databaseURL is a sqlite path (or :memory:) or a postgres URL.
func Open(databaseType, databaseURL string) (*Store, error) {
	switch databaseType {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, databaseType)
	}

	db, err := sql.Open(databaseType, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if databaseType == DriverSQLite {
		// sqlite is single-writer; one pooled connection also keeps
		// :memory: stores from fragmenting across the pool.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("state store ping failed: %w", err)
	}

	s := &Store{db: db, driver: databaseType}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema is safe to call multiple times.
func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create state schema: %w", err)
	}
	return nil
}

// LoadSticky reads the sticky-altered id set for a tenant key. Missing or
// corrupt data yields an empty set, not an error: a damaged row must never
// take the watcher down.
func (s *Store) LoadSticky(tenantKey string) (map[string]struct{}, error) {
	raw, err := s.get(tenantKey)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Warn("corrupt sticky set in store, treating as empty", "key", tenantKey, "error", err)
		return map[string]struct{}{}, nil
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// SaveSticky writes the sticky-altered id set for a tenant key as a JSON
// array, replacing any previous value.
func (s *Store) SaveSticky(tenantKey string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode sticky set: %w", err)
	}
	return s.set(tenantKey, string(raw))
}

// LoadToken returns the remembered session token, or "" when absent.
func (s *Store) LoadToken() (string, error) {
	raw, err := s.get(tokenKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return raw, err
}

// SaveToken persists the session token for remember-me sessions.
func (s *Store) SaveToken(token string) error {
	return s.set(tokenKey, token)
}

// ClearToken removes the remembered session token.
func (s *Store) ClearToken() error {
	_, err := s.db.Exec(s.rebind(`DELETE FROM kv_state WHERE key = ?`), tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(s.rebind(`SELECT value FROM kv_state WHERE key = ?`), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", fmt.Errorf("state read failed for %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO kv_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("state write failed for %q: %w", key, err)
	}
	return nil
}

// rebind converts ? placeholders to $N for postgres. sqlite takes ? as-is.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
