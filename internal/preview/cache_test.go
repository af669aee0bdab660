package preview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", Entry{Name: "cv.md", Data: []byte("x")}, time.Minute))
	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cv.md", got.Name)

	now = now.Add(time.Minute)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCacheWithoutTTLKeepsEntry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", Entry{Name: "a"}, 0))
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisEntryRoundTripKeepsBinary(t *testing.T) {
	entry := Entry{Name: "cv.docx", ContentType: "application/zip", Data: []byte{0x50, 0x4b, 0x00, 0xff}}
	raw, err := encodeEntry(entry)
	require.NoError(t, err)

	got, err := decodeEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = decodeEntry([]byte("{"))
	assert.Error(t, err)
}

func TestNewRedisCacheRequiresAddress(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "")
	assert.Error(t, err)
}
