package hashing_test

import (
	"testing"

	"github.com/amp-labs/collections/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXXH3(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := hashing.XXH3(hashing.HashableString("hello"))
		require.NoError(t, err)

		second, err := hashing.XXH3(hashing.HashableString("hello"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("distinguishes different values", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.XXH3(hashing.HashableString("hello"))
		require.NoError(t, err)

		b, err := hashing.XXH3(hashing.HashableString("world"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("equal values hash equally across wrappers", func(t *testing.T) {
		t.Parallel()

		fromString, err := hashing.XXH3(hashing.HashableString("abc"))
		require.NoError(t, err)

		fromBytes, err := hashing.XXH3(hashing.HashableBytes([]byte("abc")))
		require.NoError(t, err)

		assert.Equal(t, fromString, fromBytes)
	})
}

func TestXXHash64(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := hashing.XXHash64(hashing.HashableInt(12345))
		require.NoError(t, err)

		second, err := hashing.XXHash64(hashing.HashableInt(12345))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("is independent of XXH3", func(t *testing.T) {
		t.Parallel()

		// the two hashes of the same value should not agree, otherwise one
		// is useless as a tie break for the other
		primary, err := hashing.XXH3(hashing.HashableString("tie-break"))
		require.NoError(t, err)

		secondary, err := hashing.XXHash64(hashing.HashableString("tie-break"))
		require.NoError(t, err)

		assert.NotEqual(t, primary, secondary)
	})
}

func TestHashablePrimitives(t *testing.T) {
	t.Parallel()

	t.Run("numeric wrappers hash by encoded width", func(t *testing.T) {
		t.Parallel()

		wide, err := hashing.XXH3(hashing.HashableInt64(1))
		require.NoError(t, err)

		narrow, err := hashing.XXH3(hashing.HashableInt8(1))
		require.NoError(t, err)

		assert.NotEqual(t, wide, narrow)
	})

	t.Run("float wrappers hash by bit pattern", func(t *testing.T) {
		t.Parallel()

		a, err := hashing.XXH3(hashing.HashableFloat64(1.5))
		require.NoError(t, err)

		b, err := hashing.XXH3(hashing.HashableFloat64(1.5))
		require.NoError(t, err)

		assert.Equal(t, a, b)

		c, err := hashing.XXH3(hashing.HashableFloat64(-1.5))
		require.NoError(t, err)

		assert.NotEqual(t, a, c)
	})

	t.Run("bool wrapper distinguishes true and false", func(t *testing.T) {
		t.Parallel()

		yes, err := hashing.XXH3(hashing.HashableBool(true))
		require.NoError(t, err)

		no, err := hashing.XXH3(hashing.HashableBool(false))
		require.NoError(t, err)

		assert.NotEqual(t, yes, no)
	})

	t.Run("HashableString equality", func(t *testing.T) {
		t.Parallel()

		assert.True(t, hashing.HashableString("a").Equals(hashing.HashableString("a")))
		assert.False(t, hashing.HashableString("a").Equals(hashing.HashableString("b")))
	})
}
