package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("key", "value")
	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_ExpiredEntriesAreMisses(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.SetWithTTL("key", "value", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCache_InvalidateByPrefix(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("catalog:video:a.mp4", 1)
	c.Set("catalog:video:b.mp4", 2)
	c.Set("other:key", 3)

	c.Invalidate("catalog:video:")

	_, ok := c.Get("catalog:video:a.mp4")
	assert.False(t, ok)
	_, ok = c.Get("catalog:video:b.mp4")
	assert.False(t, ok)
	_, ok = c.Get("other:key")
	assert.True(t, ok)
}

func TestCache_GetOrSetLoadsOnce(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(context.Background(), "key", loader, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, "loaded", got)
	}
	assert.Equal(t, 1, loads)
}

func TestCache_GetOrSetDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	loadErr := errors.New("load failed")
	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return nil, loadErr
	}

	_, err := c.GetOrSet(context.Background(), "key", loader, time.Minute)
	assert.ErrorIs(t, err, loadErr)
	_, err = c.GetOrSet(context.Background(), "key", loader, time.Minute)
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, 2, loads)
}

func TestCache_StopIsIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Stop()
	c.Stop()
}
