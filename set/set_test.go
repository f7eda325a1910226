package set_test

import (
	"testing"

	"github.com/amp-labs/collections/collectable"
	"github.com/amp-labs/collections/set"
	"github.com/amp-labs/collections/sortable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSet(t *testing.T) {
	t.Parallel()

	t.Run("Add and Contains", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.String]()

		err := s.Add(collectable.String("foo"))
		require.NoError(t, err)

		contains, err := s.Contains(collectable.String("foo"))
		require.NoError(t, err)
		assert.True(t, contains)

		contains, err = s.Contains(collectable.String("bar"))
		require.NoError(t, err)
		assert.False(t, contains)
	})

	t.Run("adding a duplicate is a no-op", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.String]()

		require.NoError(t, s.Add(collectable.String("foo")))
		require.NoError(t, s.Add(collectable.String("foo")))

		assert.Equal(t, 1, s.Size())
	})

	t.Run("AddAll and Entries", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.Int]()

		err := s.AddAll(collectable.Int(1), collectable.Int(2), collectable.Int(3))
		require.NoError(t, err)

		assert.Equal(t, 3, s.Size())
		assert.ElementsMatch(t,
			[]collectable.Int{1, 2, 3},
			s.Entries())
	})

	t.Run("Remove", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.Int]()
		require.NoError(t, s.AddAll(collectable.Int(1), collectable.Int(2)))

		require.NoError(t, s.Remove(collectable.Int(1)))
		assert.Equal(t, 1, s.Size())

		// removing an absent element is fine
		require.NoError(t, s.Remove(collectable.Int(99)))
		assert.Equal(t, 1, s.Size())
	})

	t.Run("Clear", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.Int]()
		require.NoError(t, s.AddAll(collectable.Int(1), collectable.Int(2)))

		s.Clear()
		assert.Equal(t, 0, s.Size())
		assert.Empty(t, s.Entries())
	})

	t.Run("handles many elements", func(t *testing.T) {
		t.Parallel()

		s := set.NewHashSet[collectable.Int]()

		for i := range 5000 {
			require.NoError(t, s.Add(collectable.Int(i)))
		}

		assert.Equal(t, 5000, s.Size())

		for i := range 5000 {
			contains, err := s.Contains(collectable.Int(i))
			require.NoError(t, err)
			require.True(t, contains)
		}
	})
}

func TestTreeSet(t *testing.T) {
	t.Parallel()

	t.Run("iterates in sorted order", func(t *testing.T) {
		t.Parallel()

		s := set.NewTreeSet[sortable.Int]()

		err := s.AddAll(sortable.Int(42), sortable.Int(10), sortable.Int(25))
		require.NoError(t, err)

		assert.Equal(t,
			[]sortable.Int{10, 25, 42},
			s.Entries())
	})

	t.Run("Seq yields sorted elements", func(t *testing.T) {
		t.Parallel()

		s := set.NewTreeSet[sortable.Int]()

		for _, v := range []int{5, 1, 4, 2, 3} {
			require.NoError(t, s.Add(sortable.Int(v)))
		}

		prev := 0
		for v := range s.Seq() {
			assert.Greater(t, int(v), prev)
			prev = int(v)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()

		s := set.NewTreeSet[sortable.String]()

		require.NoError(t, s.AddAll(
			sortable.String("b"),
			sortable.String("a"),
			sortable.String("b"),
		))

		assert.Equal(t, []sortable.String{"a", "b"}, s.Entries())
	})
}

func TestSetOperations(t *testing.T) {
	t.Parallel()

	t.Run("Union", func(t *testing.T) {
		t.Parallel()

		a := set.NewHashSet[collectable.Int]()
		require.NoError(t, a.AddAll(collectable.Int(1), collectable.Int(2)))

		b := set.NewHashSet[collectable.Int]()
		require.NoError(t, b.AddAll(collectable.Int(2), collectable.Int(3)))

		union, err := a.Union(b)
		require.NoError(t, err)

		assert.Equal(t, 3, union.Size())
		assert.ElementsMatch(t,
			[]collectable.Int{1, 2, 3},
			union.Entries())
	})

	t.Run("Intersection", func(t *testing.T) {
		t.Parallel()

		a := set.NewHashSet[collectable.Int]()
		require.NoError(t, a.AddAll(collectable.Int(1), collectable.Int(2), collectable.Int(3)))

		b := set.NewHashSet[collectable.Int]()
		require.NoError(t, b.AddAll(collectable.Int(2), collectable.Int(3), collectable.Int(4)))

		intersection, err := a.Intersection(b)
		require.NoError(t, err)

		assert.Equal(t, 2, intersection.Size())
		assert.ElementsMatch(t,
			[]collectable.Int{2, 3},
			intersection.Entries())
	})

	t.Run("tree set union stays sorted", func(t *testing.T) {
		t.Parallel()

		a := set.NewTreeSet[sortable.Int]()
		require.NoError(t, a.AddAll(sortable.Int(3), sortable.Int(1)))

		b := set.NewTreeSet[sortable.Int]()
		require.NoError(t, b.AddAll(sortable.Int(2), sortable.Int(4)))

		union, err := a.Union(b)
		require.NoError(t, err)

		assert.Equal(t, []sortable.Int{1, 2, 3, 4}, union.Entries())
	})
}
