// Package stations answers station-name autocomplete queries.
package stations

import (
	"strings"
	"time"

	"github.com/bluele/gcache"
)

// Index matches query substrings against a fixed, sorted list of station
// names. Recent answers are kept in an LRU cache.
type Index struct {
	names   []string
	lowered []string
	limit   int
	cache   gcache.Cache
}

// Options configures an Index.
type Options struct {
	Limit     int
	CacheSize int
	CacheTTL  time.Duration
}

// NewIndex builds an Index over names, which must already be sorted.
// A CacheSize of zero disables caching.
func NewIndex(names []string, opts Options) *Index {
	idx := &Index{
		names:   names,
		lowered: make([]string, len(names)),
		limit:   opts.Limit,
	}
	for i, n := range names {
		idx.lowered[i] = strings.ToLower(n)
	}

	if opts.CacheSize > 0 {
		b := gcache.New(opts.CacheSize).LRU()
		if opts.CacheTTL > 0 {
			b = b.Expiration(opts.CacheTTL)
		}
		idx.cache = b.Build()
	}
	return idx
}

// Search returns up to Limit station names containing q, ignoring case, in
// sorted order.
func (idx *Index) Search(q string) []string {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []string{}
	}

	if idx.cache != nil {
		if v, err := idx.cache.Get(q); err == nil {
			return v.([]string)
		}
	}

	matches := []string{}
	for i, name := range idx.lowered {
		if strings.Contains(name, q) {
			matches = append(matches, idx.names[i])
			if idx.limit > 0 && len(matches) == idx.limit {
				break
			}
		}
	}

	if idx.cache != nil {
		_ = idx.cache.Set(q, matches)
	}
	return matches
}

// Len reports the number of indexed stations.
func (idx *Index) Len() int {
	return len(idx.names)
}
