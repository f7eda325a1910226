package maps_test

import (
	"math/rand"
	"testing"

	"github.com/amp-labs/collections/compare"
	"github.com/amp-labs/collections/maps"
	"github.com/amp-labs/collections/sortable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreeMap(t *testing.T) {
	t.Parallel()

	t.Run("creates empty map", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()
		require.NotNil(t, m)
		assert.Equal(t, 0, m.Size())
	})

	t.Run("map is usable immediately", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()
		err := m.Add(sortable.Int(1), 42)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Size())
	})
}

func TestNewTreeMapFunc(t *testing.T) {
	t.Parallel()

	t.Run("orders by the supplied comparison", func(t *testing.T) {
		t.Parallel()

		// reverse numeric order
		m, err := maps.NewTreeMapFunc[int, string](func(a, b int) int { return b - a })
		require.NoError(t, err)

		for _, k := range []int{3, 1, 2} {
			require.NoError(t, m.Add(k, ""))
		}

		keys := make([]int, 0, 3)
		for k := range m.Keys() {
			keys = append(keys, k)
		}

		assert.Equal(t, []int{3, 2, 1}, keys)
	})

	t.Run("rejects nil comparison", func(t *testing.T) {
		t.Parallel()

		var cmp compare.Func[int]

		_, err := maps.NewTreeMapFunc[int, string](cmp)
		require.ErrorIs(t, err, maps.ErrInvalidArgument)
	})
}

func TestTreeMap_Put(t *testing.T) {
	t.Parallel()

	t.Run("returns None for a new key", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		previous, err := m.Put(sortable.Int(1), "value")
		require.NoError(t, err)
		assert.True(t, previous.Empty())
		assert.Equal(t, 1, m.Size())
	})

	t.Run("returns previous value when overwriting", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		_, err := m.Put(sortable.Int(1), "first")
		require.NoError(t, err)

		previous, err := m.Put(sortable.Int(1), "second")
		require.NoError(t, err)
		assert.Equal(t, "first", previous.GetOrElse(""))
		assert.Equal(t, 1, m.Size())

		val, found, err := m.Get(sortable.Int(1))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", val)
	})

	t.Run("maintains sorted order regardless of insertion order", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()

		inserted := []int{10, 85, 15, 70, 20, 60, 30, 50}
		for _, k := range inserted {
			require.NoError(t, m.Add(sortable.Int(k), k))
		}

		keys := make([]int, 0, len(inserted))
		for k := range m.Keys() {
			keys = append(keys, int(k))
		}

		assert.Equal(t, []int{10, 15, 20, 30, 50, 60, 70, 85}, keys)
	})
}

func TestTreeMap_PutIfAbsent(t *testing.T) {
	t.Parallel()

	t.Run("inserts when key is absent", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		existing, err := m.PutIfAbsent(sortable.Int(1), "value")
		require.NoError(t, err)
		assert.True(t, existing.Empty())
	})

	t.Run("keeps existing value when key is present", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()
		require.NoError(t, m.Add(sortable.Int(1), "original"))

		existing, err := m.PutIfAbsent(sortable.Int(1), "replacement")
		require.NoError(t, err)
		assert.Equal(t, "original", existing.GetOrElse(""))

		val, _, err := m.Get(sortable.Int(1))
		require.NoError(t, err)
		assert.Equal(t, "original", val)
	})
}

func TestTreeMap_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns not found on empty map", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		_, found, err := m.Get(sortable.Int(1))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("GetOrElse falls back to the default", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()
		require.NoError(t, m.Add(sortable.Int(1), "present"))

		val, err := m.GetOrElse(sortable.Int(1), "fallback")
		require.NoError(t, err)
		assert.Equal(t, "present", val)

		val, err = m.GetOrElse(sortable.Int(2), "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", val)
	})
}

func TestTreeMap_Remove(t *testing.T) {
	t.Parallel()

	t.Run("returns removed value", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()
		require.NoError(t, m.Add(sortable.Int(1), "value"))

		removed, err := m.Remove(sortable.Int(1))
		require.NoError(t, err)
		assert.Equal(t, "value", removed.GetOrElse(""))
		assert.Equal(t, 0, m.Size())
	})

	t.Run("returns None for a missing key", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		removed, err := m.Remove(sortable.Int(1))
		require.NoError(t, err)
		assert.True(t, removed.Empty())
	})

	t.Run("keeps remaining entries sorted after interleaved removals", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()

		rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data

		keys := rng.Perm(500)
		for _, k := range keys {
			require.NoError(t, m.Add(sortable.Int(k), k))
		}

		for _, k := range keys {
			if k%3 == 0 {
				_, err := m.Remove(sortable.Int(k))
				require.NoError(t, err)
			}
		}

		prev := -1
		count := 0

		for k, v := range m.Seq() {
			assert.NotZero(t, int(k)%3)
			assert.Equal(t, int(k), v)
			assert.Greater(t, int(k), prev)

			prev = int(k)
			count++
		}

		assert.Equal(t, m.Size(), count)
	})
}

func TestTreeMap_FirstLast(t *testing.T) {
	t.Parallel()

	t.Run("empty map has neither", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()
		assert.True(t, m.First().Empty())
		assert.True(t, m.Last().Empty())
	})

	t.Run("returns smallest and largest keys", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, string]()

		for _, k := range []int{42, 7, 99, 13} {
			require.NoError(t, m.Add(sortable.Int(k), "v"))
		}

		first, ok := m.First().Get()
		require.True(t, ok)
		assert.Equal(t, sortable.Int(7), first.Key)

		last, ok := m.Last().Get()
		require.True(t, ok)
		assert.Equal(t, sortable.Int(99), last.Key)
	})
}

func TestTreeMap_Iterator(t *testing.T) {
	t.Parallel()

	t.Run("walks entries in sorted order", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()

		for _, k := range []int{3, 1, 2} {
			require.NoError(t, m.Add(sortable.Int(k), k*10))
		}

		it := m.Iterator()

		var keys []int

		for {
			pair, ok, err := it.Next()
			require.NoError(t, err)

			if !ok {
				break
			}

			keys = append(keys, int(pair.Key))
		}

		assert.Equal(t, []int{1, 2, 3}, keys)
	})

	t.Run("fails fast after modification", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()
		require.NoError(t, m.Add(sortable.Int(1), 1))
		require.NoError(t, m.Add(sortable.Int(2), 2))

		it := m.Iterator()

		_, ok, err := it.Next()
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, m.Add(sortable.Int(3), 3))

		_, _, err = it.Next()
		require.ErrorIs(t, err, maps.ErrConcurrentModification)
	})

	t.Run("Seq panics on modification during iteration", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()

		for i := range 10 {
			require.NoError(t, m.Add(sortable.Int(i), i))
		}

		assert.Panics(t, func() {
			for k := range m.Keys() {
				if k == 3 {
					_, _ = m.Remove(sortable.Int(0))
				}
			}
		})
	})

	t.Run("ForEach reports modification by the callback", func(t *testing.T) {
		t.Parallel()

		m := maps.NewTreeMap[sortable.Int, int]()

		for i := range 5 {
			require.NoError(t, m.Add(sortable.Int(i), i))
		}

		err := m.ForEach(func(key sortable.Int, _ int) {
			if key == 2 {
				_, _ = m.Remove(sortable.Int(4))
			}
		})
		require.ErrorIs(t, err, maps.ErrConcurrentModification)
	})
}

func TestTreeMap_Clear(t *testing.T) {
	t.Parallel()

	m := maps.NewTreeMap[sortable.Int, int]()

	for i := range 10 {
		require.NoError(t, m.Add(sortable.Int(i), i))
	}

	m.Clear()
	assert.Equal(t, 0, m.Size())

	_, found, err := m.Get(sortable.Int(5))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTreeMap_Clone(t *testing.T) {
	t.Parallel()

	m := maps.NewTreeMap[sortable.Int, int]()

	for i := range 20 {
		require.NoError(t, m.Add(sortable.Int(i), i))
	}

	cloned := m.Clone()
	require.Equal(t, m.Size(), cloned.Size())

	// mutating the clone leaves the original untouched
	_, err := cloned.Remove(sortable.Int(0))
	require.NoError(t, err)

	found, err := m.Contains(sortable.Int(0))
	require.NoError(t, err)
	assert.True(t, found)

	prev := -1
	for k := range cloned.Keys() {
		assert.Greater(t, int(k), prev)
		prev = int(k)
	}
}
