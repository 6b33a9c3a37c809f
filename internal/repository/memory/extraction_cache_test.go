package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractionCache(t *testing.T) {
	c := NewExtractionCache(time.Minute)
	data := []byte("%PDF-1.4 fake")

	_, ok := c.Get(data, "pdf")
	assert.False(t, ok)

	c.Set(data, "pdf", "hello")

	text, ok := c.Get(data, "pdf")
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = c.Get(data, "text")
	assert.False(t, ok, "format is part of the key")

	_, ok = c.Get([]byte("other"), "pdf")
	assert.False(t, ok)
	assert.Equal(t, 1, c.ItemCount())
}

func TestExtractionCacheDefaultTTL(t *testing.T) {
	c := NewExtractionCache(0)
	c.Set([]byte("a"), "text", "a")
	_, ok := c.Get([]byte("a"), "text")
	assert.True(t, ok)
}
