package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/source"
	"github.com/erraggy/asyncforge/source/gosource"
)

// descriptionInput represents the ways a service description can be provided
// to a tool. Exactly one of File, Content, or GoDir must be set.
type descriptionInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML service description on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline YAML service description"`
	GoDir   string `json:"go_dir,omitempty"  jsonschema:"Directory of a Go package annotated with //asyncapi: directives"`
}

// documentInput represents the ways an AsyncAPI document can be provided to
// a tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an AsyncAPI document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline AsyncAPI document content (JSON or YAML)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	value     any
	insertAt  time.Time
	expiresAt time.Time
}

// parseCacheStore provides a session-scoped cache for parsed inputs.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Entries have per-type TTLs and a background sweeper
// removes expired entries.
type parseCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var parseCache = &parseCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached value or nil. Expired entries are lazily removed.
func (c *parseCacheStore) get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.value
	}
	return nil
}

// putWithTTL stores a value with a specific TTL, evicting the oldest entry if at capacity.
func (c *parseCacheStore) putWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{value: value, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *parseCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *parseCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *parseCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *parseCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for a file or content input of the given
// kind. It returns "" when the input cannot be cached.
func makeCacheKey(kind, file, content string) string {
	switch {
	case file != "":
		absPath, err := filepath.Abs(file)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s:file:%s:%d", kind, absPath, info.ModTime().UnixNano())
	case content != "":
		h := sha256.Sum256([]byte(content))
		return fmt.Sprintf("%s:content:%s", kind, hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// readInput returns the bytes of a file or content input after enforcing the
// one-of rule and the inline size limit.
func readInput(file, content string, provided int) ([]byte, error) {
	if provided != 1 {
		return nil, fmt.Errorf("exactly one input must be provided (got %d)", provided)
	}
	if content != "" {
		if int64(len(content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set ASYNCFORGE_MCP_MAX_INLINE_SIZE to increase",
				len(content), cfg.MaxInlineSize)
		}
		return []byte(content), nil
	}
	return os.ReadFile(file)
}

// cached runs parse through the cache when caching is enabled and the input
// has a stable key.
func cached[T any](kind, file, content string, parse func() (T, error)) (T, error) {
	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(kind, file, content)
		if file != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if v, ok := parseCache.get(key).(T); ok {
			return v, nil
		}
	}
	v, err := parse()
	if err != nil {
		return v, err
	}
	if key != "" {
		parseCache.putWithTTL(key, v, ttl)
	}
	return v, nil
}

func count(vals ...string) int {
	n := 0
	for _, v := range vals {
		if v != "" {
			n++
		}
	}
	return n
}

// resolve loads the service description from whichever input was provided.
// Go package directories are never cached since their files can change
// without the directory's mtime changing.
func (d descriptionInput) resolve(ctx context.Context) (source.Graph, error) {
	n := count(d.File, d.Content, d.GoDir)
	if n != 1 {
		return nil, fmt.Errorf("exactly one of file, content, or go_dir must be provided (got %d)", n)
	}
	if d.GoDir != "" {
		return gosource.Load(ctx, d.GoDir)
	}
	g, err := cached("description", d.File, d.Content, func() (*source.MemoryGraph, error) {
		data, err := readInput(d.File, d.Content, n)
		if err != nil {
			return nil, err
		}
		return source.Parse(data)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// resolve parses the AsyncAPI document from whichever input was provided.
func (d documentInput) resolve() (*document.Document, error) {
	n := count(d.File, d.Content)
	if n != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", n)
	}
	return cached("document", d.File, d.Content, func() (*document.Document, error) {
		data, err := readInput(d.File, d.Content, n)
		if err != nil {
			return nil, err
		}
		return document.Parse(data)
	})
}
