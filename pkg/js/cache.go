package js

import (
	"github.com/edwingeng/deque"
	"github.com/zeebo/blake3"
)

type scriptKey [32]byte

// ScriptCache keeps parsed Programs keyed by the content hash of their
// source, so a page that runs the same script text again skips lexing
// and parsing. Programs are immutable and may be executed any number of
// times. When full, the oldest entry is evicted first.
//
// A ScriptCache is not safe for concurrent use.
type ScriptCache struct {
	limit   int
	entries map[scriptKey]*Program
	order   deque.Deque

	hits   int
	misses int
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

func NewScriptCache(limit int) *ScriptCache {
	if limit < 1 {
		limit = 1
	}
	return &ScriptCache{
		limit:   limit,
		entries: make(map[scriptKey]*Program, limit),
		order:   deque.NewDeque(),
	}
}

// Parse returns the cached Program for src, parsing and storing it on a
// miss. Sources that fail to parse are not cached.
func (c *ScriptCache) Parse(src string, debug DebugConfig) (*Program, error) {
	key := scriptKey(blake3.Sum256([]byte(src)))
	if prog, ok := c.entries[key]; ok {
		c.hits++
		if debug.Parse {
			LogDebugf("cache hit %x", key[:8])
		}
		return prog, nil
	}
	c.misses++

	prog, err := parse(Tokenize(src).Debug(debug.Lex), debug.Parse)
	if err != nil {
		return nil, err
	}

	for c.order.Len() >= c.limit {
		oldest := c.order.PopFront().(scriptKey)
		delete(c.entries, oldest)
	}
	c.entries[key] = prog
	c.order.PushBack(key)
	return prog, nil
}

func (c *ScriptCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: len(c.entries),
	}
}
