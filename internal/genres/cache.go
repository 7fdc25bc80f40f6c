// Package genres memoizes the catalog genre taxonomy, fetched at most once
// per process lifetime and never persisted.
package genres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"roomassistant/internal/gateway"
)

// Genre is one entry of the reference taxonomy used to scope ranking queries.
type Genre struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Cache fetches the genre list once and serves it from memory afterwards.
// Loadedness is tracked with an explicit flag rather than by list length,
// so a legitimately empty taxonomy is still fetched exactly once.
type Cache struct {
	gw gateway.Caller

	mu     sync.Mutex
	loaded bool
	list   []Genre
}

// NewCache constructs an unloaded cache.
func NewCache(gw gateway.Caller) *Cache {
	return &Cache{gw: gw}
}

// EnsureLoaded returns the genre list, fetching it on the first call of the
// session. Callers must not mutate the returned slice.
func (c *Cache) EnsureLoaded(ctx context.Context) ([]Genre, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.list, nil
	}

	env, err := c.gw.Call(ctx, "getGenres", nil, gateway.MethodGet)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var list []Genre
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return nil, fmt.Errorf("decode genres: %w", err)
		}
	}

	c.list = list
	c.loaded = true
	return c.list, nil
}

// Lookup finds a genre by id in the loaded list.
func (c *Cache) Lookup(id string) (Genre, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, genre := range c.list {
		if genre.ID.String() == id {
			return genre, true
		}
	}
	return Genre{}, false
}
