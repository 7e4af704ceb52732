package tables

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"tabular/model"
)

const DefaultMapCacheSize = 256

type cacheEntry struct {
	table *model.Node
	tm    *TableMap
}

// MapCache keeps computed table maps keyed by table content hash. Hits are
// verified against the table node, so hash collisions only cost a recompute.
type MapCache struct {
	limit   atomic.Int64
	entries *xsync.Map[uint64, cacheEntry]
}

// NewMapCache creates cache holding up to limit maps, 0 disables caching.
func NewMapCache(limit int) *MapCache {
	c := &MapCache{entries: xsync.NewMap[uint64, cacheEntry]()}
	c.limit.Store(int64(limit))
	return c
}

func (c *MapCache) SetLimit(limit int) {
	c.limit.Store(int64(limit))
	if c.entries.Size() > limit {
		c.entries.Clear()
	}
}

func (c *MapCache) Len() int {
	return c.entries.Size()
}

// Get returns map for table computing it on miss.
func (c *MapCache) Get(table *model.Node) (*TableMap, error) {
	if e, ok := c.entries.Load(table.Hash()); ok && (e.table == table || e.table.Eq(table)) {
		return e.tm, nil
	}
	tm, err := ComputeMap(table)
	if err != nil {
		return nil, err
	}
	limit := int(c.limit.Load())
	if limit <= 0 {
		return tm, nil
	}
	if c.entries.Size() >= limit {
		// cheap eviction, maps are easy to recompute
		c.entries.Clear()
	}
	c.entries.Store(table.Hash(), cacheEntry{table: table, tm: tm})
	return tm, nil
}

var defaultCache = NewMapCache(DefaultMapCacheSize)

// GetMap returns map of the table using package cache.
func GetMap(table *model.Node) (*TableMap, error) {
	return defaultCache.Get(table)
}
