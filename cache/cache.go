// cache/cache.go
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
)

// Key identifies a cached response. The digest is what entries are stored
// under; the logical request path is retained alongside it so that
// DeleteByPrefix can match against real paths rather than hash output.
type Key struct {
	Path   string
	Digest string
}

// MakeKey derives a deterministic key from a request path and its query
// parameters. Parameter order never changes the result: keys and repeated
// values are sorted before hashing.
func MakeKey(path string, params url.Values) Key {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteString("|")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("&")
		}
		values := append([]string(nil), params[k]...)
		sort.Strings(values)
		for j, v := range values {
			if j > 0 {
				b.WriteString("&")
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(v))
		}
	}

	sum := sha1.Sum([]byte(b.String()))
	return Key{Path: path, Digest: hex.EncodeToString(sum[:])}
}

type entry struct {
	value     interface{}
	path      string
	createdAt time.Time
	ttl       time.Duration
}

// TTLCache is an in-process key/value store with per-entry expiry and
// prefix-based bulk invalidation. It is shared by all in-flight requests;
// every operation is safe for concurrent use and none of them touch I/O.
type TTLCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

func New(defaultTTL time.Duration) *TTLCache {
	return &TTLCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value stored under key while it is still fresh. An entry
// found past its TTL is removed as a side effect of the lookup and reported
// as a miss.
func (c *TTLCache) Get(key Key) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key.Digest]
	c.mu.RUnlock()
	if !ok {
		logger.Debug("Cache miss", zap.String("path", key.Path))
		return nil, false
	}

	if c.now().Sub(e.createdAt) > e.ttl {
		c.mu.Lock()
		// A concurrent Set may have refreshed the entry in between; only
		// drop it if it is still the one we saw expire.
		if cur, ok := c.entries[key.Digest]; ok && cur.createdAt.Equal(e.createdAt) {
			delete(c.entries, key.Digest)
		}
		c.mu.Unlock()
		logger.Debug("Cache entry expired", zap.String("path", key.Path))
		return nil, false
	}

	logger.Debug("Cache hit", zap.String("path", key.Path))
	return e.value, true
}

// Set stores value under key with the default TTL, replacing any previous
// entry unconditionally.
func (c *TTLCache) Set(key Key, value interface{}) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *TTLCache) SetWithTTL(key Key, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key.Digest] = entry{
		value:     value,
		path:      key.Path,
		createdAt: c.now(),
		ttl:       ttl,
	}
	c.mu.Unlock()
	logger.Debug("Cache set", zap.String("path", key.Path), zap.Duration("ttl", ttl))
}

// DeleteByPrefix removes every entry whose logical request path starts with
// prefix and returns how many were dropped. Write handlers call this after
// their persistence commit succeeded.
func (c *TTLCache) DeleteByPrefix(prefix string) int {
	c.mu.Lock()
	deleted := 0
	for digest, e := range c.entries {
		if strings.HasPrefix(e.path, prefix) {
			delete(c.entries, digest)
			deleted++
		}
	}
	c.mu.Unlock()

	if deleted > 0 {
		logger.Debug("Cache invalidated",
			zap.String("prefix", prefix),
			zap.Int("deleted", deleted))
	}
	return deleted
}

// Len reports the number of entries currently retained, including not yet
// collected expired ones.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
