package module

import "sync"

// cacheEntry pairs a module's last-seen content fingerprint with the
// declarations it checked to.
type cacheEntry struct {
	fp    [32]byte
	decls []CheckedDecl
}

// Cache is an in-memory, content-hash-keyed cache of checked modules,
// grounded on the teacher's internal/ext.Cache (same
// fingerprint-of-config-bytes strategy, applied here to module source
// instead of a Go ext dependency set). A Cache is safe for concurrent
// use; CheckModule calls for independent modules may run from multiple
// goroutines sharing one Cache (each still owns its own *checker.Context
// — the checker itself is not goroutine-safe, spec §5).
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache creates an empty module cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) get(path string, content []byte) ([]CheckedDecl, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e.fp != fingerprint(content) {
		return nil, false
	}
	return e.decls, true
}

func (c *Cache) put(path string, content []byte, decls []CheckedDecl) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{fp: fingerprint(content), decls: decls}
}
