// Package cachetest holds a reusable test suite for cache.Cache
// implementations.
package cachetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark/pkg/cache"
)

// RunContract verifies that c behaves as a cache.Cache.
func RunContract(t *testing.T, c cache.Cache) {
	t.Helper()
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		_, err := c.Get(ctx, "missing")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("SetGet", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", "<p>v1</p>"))
		got, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "<p>v1</p>", got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", "old"))
		require.NoError(t, c.Set(ctx, "k2", "new"))
		got, err := c.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k3", ""))
		got, err := c.Get(ctx, "k3")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
