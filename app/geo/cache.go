package geo

import "sync"

// Cache is a process-lifetime, write-once-per-key IP cache. The first record
// stored for an IP is retained for the rest of the run, including the empty
// record of a failed resolution, so each IP is attempted at most once.
//
// Unbounded: a single run touches at most a few hundred distinct IPs. A
// long-lived service reusing the resolver would want eviction here.
type Cache struct {
	mu sync.Mutex
	m  map[string]Record
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{m: make(map[string]Record)}
}

// Get returns the cached record for ip, if any.
func (c *Cache) Get(ip string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[ip]
	return r, ok
}

// Put stores the record for ip unless one is already present, and returns
// the record that ended up cached.
func (c *Cache) Put(ip string, r Record) Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.m[ip]; ok {
		return existing
	}
	c.m[ip] = r
	return r
}

// Len returns the number of cached IPs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
