// Package resolver derives the canonical identity for a raw title/author
// pair: the Google Books volume ID when the provider resolves it, else a
// deterministic normalized-string key.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bookmate-hq/bookmate/internal/googlebooks"
	"github.com/bookmate-hq/bookmate/internal/normalize"
)

// Provider is the external canonical-metadata lookup.
type Provider interface {
	Lookup(ctx context.Context, query string) (*googlebooks.Volume, error)
}

// Resolution is the stable identity derived for one title/author pair.
// Verified resolutions carry provider metadata; fallback resolutions carry
// only the string key.
type Resolution struct {
	Key      string
	Verified bool
	Volume   *googlebooks.Volume
}

// FallbackKey is the deterministic string identity used when the provider
// cannot resolve a pair. Reprocessing the same pair always yields the same
// key.
func FallbackKey(title, author string) string {
	return strings.TrimSpace(normalize.Normalize(title) + " " + normalize.Normalize(author))
}

// Resolver resolves identities through a provider, consulting a persistent
// lookup cache first so reruns do not re-spend API quota.
type Resolver struct {
	provider Provider
	cache    *Cache
}

// New creates a resolver. Both provider and cache may be nil; a nil provider
// always resolves to the fallback key.
func New(provider Provider, cache *Cache) *Resolver {
	return &Resolver{provider: provider, cache: cache}
}

// Resolve derives the identity for one title/author pair. A provider failure
// degrades this pair to the fallback key; it is never surfaced to the caller.
func (r *Resolver) Resolve(ctx context.Context, title, author string) Resolution {
	key := FallbackKey(title, author)
	fallback := Resolution{Key: key}

	if r.provider == nil {
		return fallback
	}

	if r.cache != nil {
		vol, hit, err := r.cache.Get(key)
		if err != nil {
			slog.Warn("Lookup cache read failed", "key", key, "err", err)
		} else if hit {
			if vol == nil {
				return fallback
			}
			return Resolution{Key: vol.ID, Verified: true, Volume: vol}
		}
	}

	query := normalize.CleanForSearch(title, author)
	vol, err := r.provider.Lookup(ctx, query)
	if err != nil {
		if errors.Is(err, googlebooks.ErrNotFound) {
			// Definitive miss: cache it so the quota isn't spent again.
			r.cachePut(key, nil)
		} else {
			// Transient failure: fall back for this run, don't cache.
			slog.Warn("Metadata lookup failed, using fallback key", "query", query, "err", err)
		}
		return fallback
	}

	if vol.ID == "" {
		return fallback
	}

	r.cachePut(key, vol)
	return Resolution{Key: vol.ID, Verified: true, Volume: vol}
}

func (r *Resolver) cachePut(key string, vol *googlebooks.Volume) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(key, vol); err != nil {
		slog.Warn("Lookup cache write failed", "key", key, "err", err)
	}
}
