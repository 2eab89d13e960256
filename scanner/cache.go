package scanner

import (
	"sync"

	"lukechampine.com/blake3"

	"github.com/sip-protocol/sip-go/types"
)

// announcementCache holds recently fetched announcements keyed by the block
// range they were observed in, so pollers can rescan after registry changes
// without refetching. Bounded: when the total announcement count exceeds
// capacity, the oldest ranges are evicted first.
type announcementCache struct {
	mu       sync.Mutex
	capacity int
	entries  []cacheEntry
	seen     map[[32]byte]struct{}
	size     int
}

type cacheEntry struct {
	fromBlock uint64
	toBlock   uint64
	anns      []types.Announcement
	keys      [][32]byte
}

func newAnnouncementCache(capacity int) *announcementCache {
	return &announcementCache{
		capacity: capacity,
		seen:     map[[32]byte]struct{}{},
	}
}

// announcementKey is a stable digest of an announcement's identifying
// fields, used for cross-range deduplication.
func announcementKey(ann types.Announcement) [32]byte {
	h := blake3.New(32, nil)
	h.Write([]byte(ann.StealthAddress))
	h.Write([]byte{0, ann.ViewTag, 0})
	h.Write([]byte(ann.EphemeralPublicKey))
	h.Write([]byte{0})
	h.Write([]byte(ann.Chain))
	h.Write([]byte{0})
	h.Write([]byte(ann.TxHash))
	var key [32]byte
	h.Sum(key[:0])
	return key
}

func (c *announcementCache) put(fromBlock, toBlock uint64, anns []types.Announcement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cacheEntry{fromBlock: fromBlock, toBlock: toBlock}
	for _, ann := range anns {
		key := announcementKey(ann)
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		entry.anns = append(entry.anns, ann)
		entry.keys = append(entry.keys, key)
	}
	if len(entry.anns) == 0 {
		return
	}
	c.entries = append(c.entries, entry)
	c.size += len(entry.anns)

	for c.size > c.capacity && len(c.entries) > 1 {
		c.dropEntry(0)
	}
}

func (c *announcementCache) get(fromBlock, toBlock uint64) []types.Announcement {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []types.Announcement
	for _, e := range c.entries {
		if e.fromBlock > toBlock || e.toBlock < fromBlock {
			continue
		}
		out = append(out, e.anns...)
	}
	return out
}

// clearFrom drops every cached range that touches blockHeight or anything
// above it. Called on chain reorganization.
func (c *announcementCache) clearFrom(blockHeight uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < len(c.entries); {
		if c.entries[i].toBlock >= blockHeight {
			c.dropEntry(i)
			continue
		}
		i++
	}
}

// dropEntry removes entry i, releasing its dedup keys. Caller holds c.mu.
func (c *announcementCache) dropEntry(i int) {
	e := c.entries[i]
	for _, key := range e.keys {
		delete(c.seen, key)
	}
	c.size -= len(e.anns)
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

// CacheAnnouncements stores announcements observed in [fromBlock, toBlock].
// Duplicates already cached under any range are dropped. A no-op when
// caching is disabled.
func (s *Scanner) CacheAnnouncements(fromBlock, toBlock uint64, anns []types.Announcement) {
	if s.cache == nil {
		return
	}
	s.cache.put(fromBlock, toBlock, anns)
}

// CachedAnnouncements returns all cached announcements whose block range
// overlaps [fromBlock, toBlock].
func (s *Scanner) CachedAnnouncements(fromBlock, toBlock uint64) []types.Announcement {
	if s.cache == nil {
		return nil
	}
	return s.cache.get(fromBlock, toBlock)
}

// ClearCacheFrom invalidates every cached range reaching blockHeight or
// beyond, for reorg handling.
func (s *Scanner) ClearCacheFrom(blockHeight uint64) {
	if s.cache == nil {
		return
	}
	s.cache.clearFrom(blockHeight)
}
