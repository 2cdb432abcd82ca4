package theme

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOffline = errors.New("offline")

type brokenCache struct{}

func (brokenCache) Get(string) ([]byte, error) { return nil, errOffline }
func (brokenCache) Set(string, []byte, time.Duration) error { return errOffline }

func failing() Source {
	return SourceFunc(func(context.Context) (Palette, error) {
		return Palette{}, errOffline
	})
}

func serving(p Palette) Source {
	return SourceFunc(func(context.Context) (Palette, error) {
		return p, nil
	})
}

func TestResolveFromSourceMirrorsIntoCache(t *testing.T) {
	store := memory.New()
	defer store.Close()

	blue := Presets()[1].Palette
	r := NewResolver(serving(blue), store)

	res := r.Resolve(context.Background())
	assert.Equal(t, OriginSource, res.Origin)
	assert.Equal(t, blue, res.Palette)
	assert.Equal(t, Variables(blue), res.Variables)

	raw, err := store.Get(DefaultCacheKey)
	require.NoError(t, err)

	var mirrored Palette
	require.NoError(t, json.Unmarshal(raw, &mirrored))
	assert.Equal(t, blue, mirrored)
}

func TestResolveFallsBackToCache(t *testing.T) {
	store := memory.New()
	defer store.Close()

	green := Presets()[2].Palette

	// a successful resolution fills the cache
	NewResolver(serving(green), store).Resolve(context.Background())

	res := NewResolver(failing(), store).Resolve(context.Background())
	assert.Equal(t, OriginCache, res.Origin)
	assert.Equal(t, green, res.Palette)
	assert.Contains(t, res.CSS(), "--color-primary: #10b981;")
}

func TestResolveKeepsDefaultStyling(t *testing.T) {
	tests := []struct {
		name  string
		cache Cache
	}{
		{name: "no cache"},
		{name: "empty cache", cache: memory.New()},
		{name: "broken cache", cache: brokenCache{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewResolver(failing(), tt.cache).Resolve(context.Background())
			assert.Equal(t, OriginDefault, res.Origin)
			assert.True(t, res.Palette.IsZero())
			assert.Empty(t, res.Variables)
			assert.Empty(t, res.CSS())
		})
	}
}

func TestResolveIgnoresCorruptCache(t *testing.T) {
	store := memory.New()
	defer store.Close()

	require.NoError(t, store.Set("palette", []byte("{not json"), 0))

	r := NewResolver(failing(), store)
	r.CacheKey = "palette"

	assert.Equal(t, OriginDefault, r.Resolve(context.Background()).Origin)
}

func TestResolveSurvivesCacheWriteFailure(t *testing.T) {
	purple := Presets()[3].Palette

	res := NewResolver(serving(purple), brokenCache{}).Resolve(context.Background())
	assert.Equal(t, OriginSource, res.Origin)
	assert.Equal(t, purple, res.Palette)
}

func TestResolveWithoutSource(t *testing.T) {
	res := (&Resolver{}).Resolve(context.Background())
	assert.Equal(t, OriginDefault, res.Origin)
}
