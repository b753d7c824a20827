package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFragmentCacheHitWithinTTL(t *testing.T) {
	c := NewFragmentCache(20 * time.Second)

	c.Set(IndexFeedKey, []byte("rendered page"))

	data, ok := c.Get(IndexFeedKey)
	assert.True(t, ok)
	assert.Equal(t, []byte("rendered page"), data)
}

func TestFragmentCacheMiss(t *testing.T) {
	c := NewFragmentCache(20 * time.Second)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestFragmentCacheExpiry(t *testing.T) {
	c := NewFragmentCache(20 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(IndexFeedKey, []byte("rendered page"))

	// one second before expiry the entry is still served
	c.now = func() time.Time { return base.Add(19 * time.Second) }
	_, ok := c.Get(IndexFeedKey)
	assert.True(t, ok)

	// past the TTL it is gone
	c.now = func() time.Time { return base.Add(21 * time.Second) }
	_, ok = c.Get(IndexFeedKey)
	assert.False(t, ok)
}

// A Set does not extend old entries: each write starts its own TTL window.
func TestFragmentCacheSetRestartsTTL(t *testing.T) {
	c := NewFragmentCache(20 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(IndexFeedKey, []byte("first"))

	c.now = func() time.Time { return base.Add(15 * time.Second) }
	c.Set(IndexFeedKey, []byte("second"))

	// 25s after the first write but only 10s after the second
	c.now = func() time.Time { return base.Add(25 * time.Second) }
	data, ok := c.Get(IndexFeedKey)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), data)
}

func TestFragmentCacheClear(t *testing.T) {
	c := NewFragmentCache(20 * time.Second)

	c.Set(IndexFeedKey, []byte("rendered page"))
	c.Clear()

	_, ok := c.Get(IndexFeedKey)
	assert.False(t, ok)
}
