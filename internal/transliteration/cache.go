package transliteration

import "sync"

// DefaultCache is shared by Transliterate.
var DefaultCache = NewTableCache()

// TableCache memoizes effective tables per configuration. The simple-IPA flag
// does not affect the table, so configurations differing only in it share one.
type TableCache struct {
	mu     sync.RWMutex
	tables map[Configuration]*RuleTable
	builds int
}

func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[Configuration]*RuleTable)}
}

// Table returns the cached table for cfg, building it on first use.
func (c *TableCache) Table(cfg Configuration) *RuleTable {
	key := cfg.tableKey()

	c.mu.RLock()
	t, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[key]; ok {
		return t
	}
	t = BuildEffectiveTable(key)
	c.tables[key] = t
	c.builds++
	return t
}

// Builds reports how many tables have been constructed.
func (c *TableCache) Builds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builds
}
