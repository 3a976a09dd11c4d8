package dataset

import (
	"log/slog"
	"sync"
)

// Cache holds one Dataset in memory for the life of the serving process. The
// single load happens on first access; concurrent first callers all wait for
// and observe the same snapshot. The snapshot is never re-read until restart.
type Cache struct {
	path string
	once sync.Once
	ds   *Dataset
}

// NewCache creates a cache over the dataset artifact at path. Nothing is
// loaded until the first Get.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Get returns the cached snapshot, loading it exactly once. A load failure is
// not fatal to the serving process: the cache degrades to an empty dataset so
// search still returns well-formed responses.
func (c *Cache) Get() *Dataset {
	c.once.Do(func() {
		ds, err := Load(c.path)
		if err != nil {
			slog.Error("Failed to load dataset, serving empty snapshot", "path", c.path, "err", err)
			ds = Empty()
		} else {
			slog.Info("Dataset cached", "path", c.path, "books", len(ds.Books))
		}
		c.ds = ds
	})
	return c.ds
}
