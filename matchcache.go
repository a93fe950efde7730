package hcscrgen

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// matchCacheKey is the fixed HighwayHash key. Keys only need to be
// stable within one process.
var matchCacheKey = []byte("hcscrgen tile match cache key 01")

// MatchCache remembers the best glyph of tiles already matched. Screens
// drawn with text characters repeat the same tile many times, so most
// lookups after the first few lines are hits.
//
// The key of the map is the HighwayHash of the tile pixels. Different
// tiles may share a key, so every hit is compared pixel by pixel before
// it is used.
type MatchCache struct {
	entries map[uint64][]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	tile  PixelBlock
	glyph GlyphIndex
}

// NewMatchCache returns an empty cache.
func NewMatchCache() *MatchCache {
	return &MatchCache{entries: make(map[uint64][]cacheEntry)}
}

func blockKey(b PixelBlock) uint64 {
	buf := make([]byte, 4, 4+3*len(b.pix))
	binary.LittleEndian.PutUint16(buf[0:], uint16(b.width))
	binary.LittleEndian.PutUint16(buf[2:], uint16(b.height))
	for _, p := range b.pix {
		buf = append(buf, p.R, p.G, p.B)
	}
	return highwayhash.Sum64(buf, matchCacheKey)
}

// get returns the cached glyph for tile.
func (c *MatchCache) get(tile PixelBlock) (GlyphIndex, bool) {
	for _, e := range c.entries[blockKey(tile)] {
		if e.tile.Equal(tile) {
			c.hits++
			return e.glyph, true
		}
	}
	c.misses++
	return GlyphIndex{}, false
}

func (c *MatchCache) add(tile PixelBlock, glyph GlyphIndex) {
	k := blockKey(tile)
	c.entries[k] = append(c.entries[k], cacheEntry{tile: tile, glyph: glyph})
}

// Stats returns hits, misses and the hit rate.
func (c *MatchCache) Stats() (hits, misses int, rate float64) {
	total := c.hits + c.misses
	if total == 0 {
		return 0, 0, 0
	}
	return c.hits, c.misses, float64(c.hits) / float64(total)
}

// Reset drops every entry. A cache is only valid for one set of charsets.
func (c *MatchCache) Reset() {
	c.entries = make(map[uint64][]cacheEntry)
	c.hits = 0
	c.misses = 0
}
