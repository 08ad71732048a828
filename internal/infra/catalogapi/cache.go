package catalogapi

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Outcome describes how Cache.Do satisfied a lookup.
type Outcome int

const (
	// OutcomeMiss means this caller performed the fetch.
	OutcomeMiss Outcome = iota
	// OutcomeHit means the response came from the cache.
	OutcomeHit
	// OutcomeShared means the caller joined another caller's in-flight fetch.
	OutcomeShared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeShared:
		return "shared"
	default:
		return "miss"
	}
}

// FetchFunc produces the response body for a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

type cacheEntry struct {
	body []byte
	tags []Tag
}

// Cache holds validated response bodies keyed by resource and query
// signature. Entries never expire; they are removed by tag invalidation.
//
// Bodies are stored as raw bytes and decoded by each reader, so no reader can
// observe another reader's modifications. Callers must not modify the slice
// returned by Do.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gens    map[Tag]uint64
	flights singleflight.Group
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		gens:    make(map[Tag]uint64),
	}
}

// Do returns the cached body for key or runs fetch to produce it.
//
// Concurrent calls for the same key share one fetch. The fetch runs detached
// from ctx cancellation so that one caller giving up does not fail the
// others; a cancelled caller returns ctx.Err() immediately.
//
// A successful result is stored under tags unless one of those tags was
// invalidated while the fetch was running. Callers arriving after such an
// invalidation start a new fetch instead of joining the stale one.
func (c *Cache) Do(ctx context.Context, key string, tags []Tag, fetch FetchFunc) ([]byte, Outcome, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.body, OutcomeHit, nil
	}
	stamp := c.stampLocked(tags)
	c.mu.Unlock()

	var led atomic.Bool
	ch := c.flights.DoChan(key+"#"+stamp, func() (interface{}, error) {
		led.Store(true)

		c.mu.Lock()
		if e, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return e.body, nil
		}
		c.mu.Unlock()

		body, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.stampLocked(tags) == stamp {
			c.entries[key] = cacheEntry{body: body, tags: append([]Tag(nil), tags...)}
		}
		c.mu.Unlock()
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, OutcomeMiss, ctx.Err()
	case res := <-ch:
		outcome := OutcomeShared
		if led.Load() {
			outcome = OutcomeMiss
		}
		if res.Err != nil {
			return nil, outcome, res.Err
		}
		return res.Val.([]byte), outcome, nil
	}
}

// Invalidate drops every entry carrying any of tags and prevents in-flight
// fetches for those tags from being stored. It returns the number of entries
// removed.
func (c *Cache) Invalidate(tags ...Tag) int {
	if len(tags) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range tags {
		c.gens[t]++
	}
	removed := 0
	for key, e := range c.entries {
		if hasAnyTag(e.tags, tags) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// stampLocked encodes the current generation of tags. c.mu must be held.
func (c *Cache) stampLocked(tags []Tag) string {
	sorted := make([]string, 0, len(tags))
	for _, t := range tags {
		sorted = append(sorted, string(t)+"="+strconv.FormatUint(c.gens[t], 10))
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func hasAnyTag(have, want []Tag) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
