package scanner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/types"
)

func fakeAnnouncement(i int) types.Announcement {
	return types.Announcement{
		StealthAddress:     fmt.Sprintf("0x%066x", i),
		EphemeralPublicKey: fmt.Sprintf("0x%066x", i+1_000_000),
		ViewTag:            byte(i),
		Chain:              chains.ChainEthereum,
		TxHash:             fmt.Sprintf("0x%064x", i),
	}
}

func fakeRange(start, n int) []types.Announcement {
	anns := make([]types.Announcement, n)
	for i := range anns {
		anns[i] = fakeAnnouncement(start + i)
	}
	return anns
}

func TestCachePutGet(t *testing.T) {
	s := New(nil)
	s.CacheAnnouncements(100, 199, fakeRange(0, 3))
	s.CacheAnnouncements(200, 299, fakeRange(3, 2))

	require.Len(t, s.CachedAnnouncements(100, 199), 3)
	require.Len(t, s.CachedAnnouncements(150, 250), 5, "overlapping both ranges")
	require.Empty(t, s.CachedAnnouncements(300, 400))
	require.Len(t, s.CachedAnnouncements(199, 200), 5, "inclusive bounds")
}

func TestCacheDeduplicates(t *testing.T) {
	s := New(nil)
	anns := fakeRange(0, 3)
	s.CacheAnnouncements(100, 199, anns)
	s.CacheAnnouncements(150, 249, anns) // same announcements, new range

	require.Len(t, s.CachedAnnouncements(0, 1000), 3)
}

func TestCacheClearFrom(t *testing.T) {
	s := New(nil)
	s.CacheAnnouncements(100, 199, fakeRange(0, 2))
	s.CacheAnnouncements(200, 299, fakeRange(2, 2))
	s.CacheAnnouncements(300, 399, fakeRange(4, 2))

	// Reorg at height 250: every range reaching 250 or beyond goes.
	s.ClearCacheFrom(250)

	require.Len(t, s.CachedAnnouncements(0, 1000), 2)
	require.Empty(t, s.CachedAnnouncements(200, 1000))

	// Dropped announcements may be re-cached after the reorg.
	s.CacheAnnouncements(200, 299, fakeRange(2, 2))
	require.Len(t, s.CachedAnnouncements(0, 1000), 4)
}

func TestCacheEviction(t *testing.T) {
	s := New(&Config{CacheCapacity: 5})
	s.CacheAnnouncements(100, 199, fakeRange(0, 3))
	s.CacheAnnouncements(200, 299, fakeRange(3, 3))
	s.CacheAnnouncements(300, 399, fakeRange(6, 3))

	// Oldest range evicted first; the newest range always survives.
	require.Empty(t, s.CachedAnnouncements(100, 199))
	require.Len(t, s.CachedAnnouncements(300, 399), 3)
}

func TestCacheOversizedRangeKept(t *testing.T) {
	// A single range larger than capacity is still cached whole; eviction
	// never drops the most recent entry.
	s := New(&Config{CacheCapacity: 2})
	s.CacheAnnouncements(100, 199, fakeRange(0, 4))
	require.Len(t, s.CachedAnnouncements(100, 199), 4)
}

func TestCacheDisabled(t *testing.T) {
	s := New(&Config{CacheCapacity: -1})
	s.CacheAnnouncements(100, 199, fakeRange(0, 3))
	require.Nil(t, s.CachedAnnouncements(0, 1000))
	s.ClearCacheFrom(0) // no-op, must not panic
}
