package scrape

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the persistent cache tier, a single SQLite table of fetched
// payloads keyed by CacheKey. It survives restarts so a relaunched server
// or a second CLI invocation in the same week serves from disk.
type Store struct {
	db         *sql.DB
	defaultTTL time.Duration
}

// OpenStore opens (or creates) the payload cache at path.
func OpenStore(path string, defaultTTL time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS fetch_cache (
		key        TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		fetched_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fetch_cache table: %w", err)
	}

	// Drop entries that expired while the process was down.
	if _, err := db.Exec(`DELETE FROM fetch_cache WHERE expires_at < ?`, time.Now().Unix()); err != nil {
		db.Close()
		return nil, fmt.Errorf("prune fetch_cache: %w", err)
	}

	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Hour
	}
	return &Store{db: db, defaultTTL: defaultTTL}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	var payload []byte
	var expiresAt int64
	err := s.db.QueryRow(
		`SELECT payload, expires_at FROM fetch_cache WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if err != nil {
		return nil, false
	}
	if time.Now().Unix() >= expiresAt {
		_, _ = s.db.Exec(`DELETE FROM fetch_cache WHERE key = ?`, key)
		return nil, false
	}
	return payload, true
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()
	_, err := s.db.Exec(
		`INSERT INTO fetch_cache (key, payload, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   payload = excluded.payload,
		   fetched_at = excluded.fetched_at,
		   expires_at = excluded.expires_at`,
		key, value, now.Unix(), now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
