package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// ExtractionCache remembers extracted text per (content hash, format) so a
// re-upload of the same bytes skips parsing.
type ExtractionCache struct {
	cache *cache.Cache
}

func NewExtractionCache(ttl time.Duration) *ExtractionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ExtractionCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func extractionKey(data []byte, format string) string {
	sum := sha256.Sum256(data)
	return format + ":" + hex.EncodeToString(sum[:])
}

func (c *ExtractionCache) Get(data []byte, format string) (string, bool) {
	if x, found := c.cache.Get(extractionKey(data, format)); found {
		return x.(string), true
	}
	return "", false
}

func (c *ExtractionCache) Set(data []byte, format string, text string) {
	c.cache.Set(extractionKey(data, format), text, cache.DefaultExpiration)
}

func (c *ExtractionCache) ItemCount() int {
	return c.cache.ItemCount()
}
