// Package maps provides generic map containers with explicit ordering and
// hashing semantics: a sorted map backed by a red-black tree, a hash map with
// bucketed storage that treeifies hot buckets, and an insertion/access
// ordered hash map suitable for building LRU caches.
package maps

import (
	"errors"
	"iter"

	"github.com/amp-labs/collections/optional"
)

var (
	// ErrInvalidArgument is returned by constructors when given an argument
	// outside its legal range, such as a negative capacity or a nil
	// comparison function.
	ErrInvalidArgument = errors.New("maps: invalid argument")

	// ErrConcurrentModification is returned by iterators when the underlying
	// map was structurally modified after the iterator was created.
	ErrConcurrentModification = errors.New("maps: concurrent modification")
)

// KeyValuePair is a single entry of a map.
type KeyValuePair[K any, V any] struct {
	Key   K
	Value V
}

// Iterator walks the entries of a map one at a time. Next returns the next
// entry and true while entries remain, and the zero pair and false once the
// iteration is exhausted. If the map is structurally modified while the
// iterator is live, Next fails fast with ErrConcurrentModification.
type Iterator[K any, V any] interface {
	Next() (KeyValuePair[K, V], bool, error)
}

// Map is a mutable mapping from keys to values. Implementations are not safe
// for concurrent use; callers that share a Map across goroutines must
// synchronize externally.
type Map[K any, V any] interface {
	// Get returns the value mapped to key, and whether a mapping exists.
	Get(key K) (V, bool, error)

	// GetOrElse returns the value mapped to key, or defaultValue when no
	// mapping exists.
	GetOrElse(key K, defaultValue V) (V, error)

	// Put maps key to value, returning the previous value if the key was
	// already present.
	Put(key K, value V) (optional.Value[V], error)

	// PutIfAbsent maps key to value only when no mapping exists, returning
	// the existing value otherwise.
	PutIfAbsent(key K, value V) (optional.Value[V], error)

	// Add maps key to value, discarding any previous value.
	Add(key K, value V) error

	// Remove deletes the mapping for key, returning the removed value if a
	// mapping existed.
	Remove(key K) (optional.Value[V], error)

	// Contains reports whether a mapping exists for key.
	Contains(key K) (bool, error)

	// Size returns the number of mappings.
	Size() int

	// Clear removes all mappings.
	Clear()

	// Seq returns an iterator over all entries in the map's iteration order.
	// The sequence panics if the map is structurally modified during
	// iteration, matching the contract of ranging over a built-in map.
	Seq() iter.Seq2[K, V]

	// Keys returns an iterator over all keys in the map's iteration order.
	Keys() iter.Seq[K]

	// ForEach applies f to every entry in the map's iteration order.
	ForEach(f func(key K, value V)) error

	// Iterator returns a fail-fast iterator over the map's entries.
	Iterator() Iterator[K, V]

	// Clone returns a shallow copy of the map with the same entries.
	Clone() Map[K, V]
}

// SortedMap is a Map whose iteration order is the sorted order of its keys.
type SortedMap[K any, V any] interface {
	Map[K, V]

	// First returns the entry with the smallest key, or None when empty.
	First() optional.Value[KeyValuePair[K, V]]

	// Last returns the entry with the largest key, or None when empty.
	Last() optional.Value[KeyValuePair[K, V]]
}

// OrderedMap is a Map whose iteration order is the order entries were
// inserted, or the order they were last accessed when constructed in
// access-order mode.
type OrderedMap[K any, V any] interface {
	Map[K, V]

	// Eldest returns the entry at the head of the iteration order, or None
	// when empty. In access-order mode this is the least recently used
	// entry.
	Eldest() optional.Value[KeyValuePair[K, V]]
}
