// Package store provides a SQLite-backed cache for generated advice.
// Only a hash of each prompt is kept, never the prompt itself.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed reply caching.
type Cache struct {
	db    *sql.DB
	scope string
	ttl   time.Duration
	now   func() time.Time
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Scoped returns a view of the cache whose keys are namespaced by scope,
// usually the model name, and whose entries expire after ttl (0 = never).
func (c *Cache) Scoped(scope string, ttl time.Duration) *Cache {
	cp := *c
	cp.scope = scope
	cp.ttl = ttl
	return &cp
}

// Key returns the cache key for a prompt pair within scope.
func Key(scope, systemPrompt, prompt string) string {
	h := sha256.New()
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write([]byte(systemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached reply for the prompt pair, if present and fresh.
func (c *Cache) Get(systemPrompt, prompt string) (string, bool, error) {
	key := Key(c.scope, systemPrompt, prompt)

	var text, created string
	err := c.db.QueryRow("SELECT reply_text, created_at FROM replies WHERE reply_key = ?", key).Scan(&text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if c.ttl > 0 {
		at, perr := time.Parse(time.RFC3339, created)
		if perr != nil || c.now().Sub(at) > c.ttl {
			return "", false, nil
		}
	}

	if _, err := c.db.Exec("UPDATE replies SET hits = hits + 1 WHERE reply_key = ?", key); err != nil {
		return "", false, err
	}
	return text, true, nil
}

// Put stores a reply, replacing any previous one for the same prompt pair.
func (c *Cache) Put(systemPrompt, prompt, text string) error {
	key := Key(c.scope, systemPrompt, prompt)
	now := c.now().UTC().Format(time.RFC3339)

	_, err := c.db.Exec(`INSERT OR REPLACE INTO replies (reply_key, scope, reply_text, created_at, hits)
		VALUES (?, ?, ?, ?, 0)`, key, c.scope, text, now)
	return err
}

// Purge deletes entries older than maxAge, or every entry when maxAge <= 0.
// It returns the number of rows removed.
func (c *Cache) Purge(maxAge time.Duration) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if maxAge <= 0 {
		res, err = c.db.Exec("DELETE FROM replies")
	} else {
		cutoff := c.now().Add(-maxAge).UTC().Format(time.RFC3339)
		res, err = c.db.Exec("DELETE FROM replies WHERE created_at < ?", cutoff)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats returns the entry count and total hits.
func (c *Cache) Stats() (Stats, error) {
	var s Stats
	err := c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM replies").Scan(&s.Entries, &s.Hits)
	return s, err
}
