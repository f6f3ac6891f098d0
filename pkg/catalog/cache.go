package catalog

import (
	"context"
	"time"

	"github.com/bluele/gcache"
)

const (
	defaultCacheSize = 128
	defaultCacheTTL  = time.Minute
)

// CachedLookup serves film lookups of the public pages from an LRU cache.
// Purge must be called whenever the catalog changes.
type CachedLookup struct {
	store *Store
	cache gcache.Cache
}

func NewCachedLookup(store *Store, size int, ttl time.Duration) *CachedLookup {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &CachedLookup{
		store: store,
		cache: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (c *CachedLookup) FilmByName(ctx context.Context, name string) (*Film, error) {
	if value, err := c.cache.Get(name); err == nil {
		film := *value.(*Film)
		return &film, nil
	}

	film, err := c.store.FilmByName(ctx, name)
	if err != nil {
		return nil, err
	}

	cached := *film
	_ = c.cache.Set(name, &cached)
	return film, nil
}

func (c *CachedLookup) EpisodesOf(ctx context.Context, filmID int64) ([]Episode, error) {
	return c.store.EpisodesOf(ctx, filmID)
}

func (c *CachedLookup) Purge() {
	c.cache.Purge()
}
