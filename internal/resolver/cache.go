package resolver

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bookmate-hq/bookmate/internal/googlebooks"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Cache persists provider lookups across enrichment runs. Misses are cached
// too: a pair the provider definitively could not resolve will not be looked
// up again.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the SQLite lookup cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup cache: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate lookup cache: %w", err)
	}

	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lookups (
		key TEXT PRIMARY KEY,
		found INTEGER NOT NULL,
		volume_id TEXT,
		title TEXT,
		author TEXT,
		categories TEXT,
		page_count INTEGER,
		published_date TEXT,
		thumbnail TEXT,
		description TEXT,
		cached_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Get returns the cached volume for a fallback key. hit is true for both
// positive and negative cache entries; a negative entry returns (nil, true).
func (c *Cache) Get(key string) (vol *googlebooks.Volume, hit bool, err error) {
	row := c.db.QueryRow(`
		SELECT found, volume_id, title, author, categories, page_count,
		       published_date, thumbnail, description
		FROM lookups WHERE key = ?`, key)

	var found int
	var categoriesJSON string
	v := &googlebooks.Volume{}

	err = row.Scan(&found, &v.ID, &v.Title, &v.Author, &categoriesJSON,
		&v.PageCount, &v.PublishedDate, &v.Thumbnail, &v.Description)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read lookup: %w", err)
	}

	if found == 0 {
		return nil, true, nil
	}

	if categoriesJSON != "" {
		if err := json.Unmarshal([]byte(categoriesJSON), &v.Categories); err != nil {
			return nil, false, fmt.Errorf("failed to decode cached categories: %w", err)
		}
	}
	return v, true, nil
}

// Put stores a lookup result. A nil volume records a definitive miss.
func (c *Cache) Put(key string, vol *googlebooks.Volume) error {
	if vol == nil {
		_, err := c.db.Exec(`
			INSERT OR REPLACE INTO lookups
				(key, found, volume_id, title, author, categories,
				 page_count, published_date, thumbnail, description)
			VALUES (?, 0, '', '', '', '', 0, '', '', '')`, key)
		if err != nil {
			return fmt.Errorf("failed to cache miss: %w", err)
		}
		return nil
	}

	categoriesJSON, err := json.Marshal(vol.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO lookups
			(key, found, volume_id, title, author, categories,
			 page_count, published_date, thumbnail, description)
		VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, vol.ID, vol.Title, vol.Author, string(categoriesJSON),
		vol.PageCount, vol.PublishedDate, vol.Thumbnail, vol.Description)
	if err != nil {
		return fmt.Errorf("failed to cache lookup: %w", err)
	}
	return nil
}

// Len reports the number of cached lookups.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM lookups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count lookups: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
