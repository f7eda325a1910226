package collectable_test

import (
	"testing"

	"github.com/amp-labs/collections/collectable"
	"github.com/amp-labs/collections/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	t.Parallel()

	assert.True(t, collectable.Int(1).Equals(collectable.Int(1)))
	assert.False(t, collectable.Int(1).Equals(collectable.Int(2)))
	assert.True(t, collectable.String("a").Equals(collectable.String("a")))
	assert.True(t, collectable.Bool(true).Equals(collectable.Bool(true)))
	assert.False(t, collectable.Float64(1.5).Equals(collectable.Float64(2.5)))
}

func TestPrimitiveHashing(t *testing.T) {
	t.Parallel()

	t.Run("wrappers hash identically to the hashing package", func(t *testing.T) {
		t.Parallel()

		fromCollectable, err := hashing.XXH3(collectable.Int(42))
		require.NoError(t, err)

		fromHashing, err := hashing.XXH3(hashing.HashableInt(42))
		require.NoError(t, err)

		assert.Equal(t, fromHashing, fromCollectable)
	})

	t.Run("different values hash differently", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.XXH3(collectable.String("a"))
		require.NoError(t, err)

		b, err := hashing.XXH3(collectable.String("b"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}
