// Package cache stores pipeline results keyed by source content hash, so
// batch runs skip files whose content has not changed. Results persist to
// disk with msgpack between runs.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Result is one cached pipeline outcome.
type Result struct {
	ContentHash string          `msgpack:"content_hash"`
	Pattern     string          `msgpack:"pattern"`
	DOT         string          `msgpack:"dot"`
	Checks      map[string]bool `msgpack:"checks"`
	CreatedAt   int64           `msgpack:"created_at"`
}

// Options configures the result cache.
type Options struct {
	MaxEntries int // 0 means the default of 1024
	OnEvict    func(hash string, res Result)
}

// ResultCache is a thread-safe LRU cache of pipeline results.
type ResultCache struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	lru     *list.List // front is most recently used
	max     int
	onEvict func(hash string, res Result)
}

// New creates a result cache.
func New(opts Options) *ResultCache {
	max := opts.MaxEntries
	if max <= 0 {
		max = 1024
	}
	return &ResultCache{
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		max:     max,
		onEvict: opts.OnEvict,
	}
}

// HashContent returns the cache key for a source file's content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached result by content hash.
func (c *ResultCache) Get(hash string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[hash]
	if !ok {
		return Result{}, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(Result), true
}

// Set stores a result, evicting the least recently used entry when full.
func (c *ResultCache) Set(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.CreatedAt == 0 {
		res.CreatedAt = time.Now().Unix()
	}

	if el, ok := c.items[res.ContentHash]; ok {
		el.Value = res
		c.lru.MoveToFront(el)
		return
	}

	c.items[res.ContentHash] = c.lru.PushFront(res)
	for c.lru.Len() > c.max {
		c.evictOldest()
	}
}

// Delete removes an entry.
func (c *ResultCache) Delete(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[hash]; ok {
		c.lru.Remove(el)
		delete(c.items, hash)
	}
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *ResultCache) evictOldest() {
	el := c.lru.Back()
	if el == nil {
		return
	}
	res := el.Value.(Result)
	c.lru.Remove(el)
	delete(c.items, res.ContentHash)
	if c.onEvict != nil {
		c.onEvict(res.ContentHash, res)
	}
}

// Save persists all entries, most recently used first.
func (c *ResultCache) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Result, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		entries = append(entries, el.Value.(Result))
	}
	return msgpack.NewEncoder(w).Encode(entries)
}

// Load restores entries from a reader, replacing current contents.
func (c *ResultCache) Load(r io.Reader) error {
	var entries []Result
	if err := msgpack.NewDecoder(r).Decode(&entries); err != nil {
		return fmt.Errorf("decoding cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, len(entries))
	c.lru = list.New()
	// Reverse order so the first saved entry ends up most recently used.
	for i := len(entries) - 1; i >= 0; i-- {
		c.items[entries[i].ContentHash] = c.lru.PushFront(entries[i])
	}
	return nil
}

// SaveFile writes the cache to path, creating the file if needed.
func (c *ResultCache) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()
	return c.Save(f)
}

// LoadFile reads the cache from path. A missing file leaves the cache empty
// and is not an error.
func (c *ResultCache) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}
