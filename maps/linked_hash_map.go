// This file contains linkedHashMap, a hash map that threads a doubly linked
// list through its entries to give them a predictable iteration order. The
// order is insertion order by default, or least-recently-used to
// most-recently-used when the map is constructed in access order. An
// optional eviction callback runs after every insertion and may discard the
// eldest entry, which together with access order makes the map a ready-made
// LRU cache.
//
// The hash table itself is untouched: hashMap drives all bucket and tree
// operations and reports node life-cycle events through its hooks, and
// linkedHashMap maintains the order links purely in those hooks.
package maps

import (
	"fmt"
	"iter"
	"math"

	"github.com/amp-labs/collections/collectable"
	"github.com/amp-labs/collections/hashing"
	"github.com/amp-labs/collections/optional"
	"github.com/amp-labs/collections/zero"
)

// EvictionFunc decides, after each insertion, whether the eldest entry
// should be evicted. It receives the eldest entry and the map's current
// size. Returning true removes the entry.
type EvictionFunc[K any, V any] func(eldest KeyValuePair[K, V], size int) bool

// linkedHashMap is the ordered implementation of the Map interface. head is
// the eldest entry and tail the youngest; in access-order mode every Get
// and overwriting Put moves the touched entry to the tail.
type linkedHashMap[K collectable.Collectable[K], V any] struct {
	hashMap[K, V]

	head        *hmNode[K, V]
	tail        *hmNode[K, V]
	accessOrder bool
	evict       EvictionFunc[K, V]
}

// NewLinkedHashMap creates an empty map that iterates in insertion order.
func NewLinkedHashMap[K collectable.Collectable[K], V any]() OrderedMap[K, V] {
	lm := &linkedHashMap[K, V]{}
	lm.init(defaultLoadFactor, 0)

	return lm
}

// NewLinkedHashMapWith creates an empty ordered map sized for
// initialCapacity entries with the given load factor. When accessOrder is
// true the iteration order is least recently accessed first instead of
// insertion order. It returns ErrInvalidArgument for a negative capacity or
// a non-positive load factor.
func NewLinkedHashMapWith[K collectable.Collectable[K], V any](
	initialCapacity int, loadFactor float64, accessOrder bool,
) (OrderedMap[K, V], error) {
	if initialCapacity < 0 {
		return nil, fmt.Errorf("%w: negative initial capacity %d", ErrInvalidArgument, initialCapacity)
	}

	if loadFactor <= 0 || math.IsNaN(loadFactor) || math.IsInf(loadFactor, 0) {
		return nil, fmt.Errorf("%w: load factor %v", ErrInvalidArgument, loadFactor)
	}

	if initialCapacity > maximumCapacity {
		initialCapacity = maximumCapacity
	}

	lm := &linkedHashMap[K, V]{accessOrder: accessOrder}
	lm.init(loadFactor, tableSizeFor(initialCapacity))

	return lm, nil
}

// NewLinkedHashMapEvicting creates an empty ordered map whose evict
// callback runs after every insertion and may discard the eldest entry. It
// returns ErrInvalidArgument when evict is nil.
func NewLinkedHashMapEvicting[K collectable.Collectable[K], V any](
	accessOrder bool, evict EvictionFunc[K, V],
) (OrderedMap[K, V], error) {
	if evict == nil {
		return nil, fmt.Errorf("%w: nil eviction function", ErrInvalidArgument)
	}

	lm := &linkedHashMap[K, V]{accessOrder: accessOrder, evict: evict}
	lm.init(defaultLoadFactor, 0)

	return lm, nil
}

// NewLRUMap creates a least-recently-used cache holding at most maxEntries
// entries. Get and Put both count as use. Inserting into a full cache
// evicts the least recently used entry. It returns ErrInvalidArgument when
// maxEntries is not positive.
func NewLRUMap[K collectable.Collectable[K], V any](maxEntries int) (OrderedMap[K, V], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w: LRU capacity %d", ErrInvalidArgument, maxEntries)
	}

	return NewLinkedHashMapEvicting[K, V](true, func(_ KeyValuePair[K, V], size int) bool {
		return size > maxEntries
	})
}

// init wires the order-maintenance hooks into the embedded hash table.
// thresholdCapacity, when non-zero, is stashed in threshold the same way
// the hashMap constructors stash a requested capacity.
func (lm *linkedHashMap[K, V]) init(loadFactor float64, thresholdCapacity int) {
	lm.loadFactor = loadFactor
	lm.threshold = thresholdCapacity
	lm.fingerprint = hashing.XXH3
	lm.hooks = nodeHooks[K, V]{
		created:  lm.linkNodeLast,
		accessed: lm.afterNodeAccess,
		removed:  lm.afterNodeRemoval,
		inserted: lm.afterNodeInsertion,
		cleared: func() {
			lm.head = nil
			lm.tail = nil
		},
	}
}

// linkNodeLast appends a newly created node at the tail of the order list.
func (lm *linkedHashMap[K, V]) linkNodeLast(node *hmNode[K, V]) {
	last := lm.tail
	lm.tail = node

	if last == nil {
		lm.head = node
	} else {
		node.before = last
		last.after = node
	}
}

// afterNodeAccess moves the accessed node to the tail in access-order mode.
// The move is a structural modification for iteration purposes, so it bumps
// modCount.
func (lm *linkedHashMap[K, V]) afterNodeAccess(node *hmNode[K, V]) {
	if !lm.accessOrder || lm.tail == node {
		return
	}

	before, after := node.before, node.after
	node.after = nil

	if before == nil {
		lm.head = after
	} else {
		before.after = after
	}

	if after != nil {
		after.before = before
	}

	node.before = lm.tail

	if lm.tail == nil {
		lm.head = node
	} else {
		lm.tail.after = node
	}

	lm.tail = node
	lm.modCount++
}

// afterNodeRemoval unlinks a removed node from the order list.
func (lm *linkedHashMap[K, V]) afterNodeRemoval(node *hmNode[K, V]) {
	before, after := node.before, node.after
	node.before = nil
	node.after = nil

	if before == nil {
		lm.head = after
	} else {
		before.after = after
	}

	if after == nil {
		lm.tail = before
	} else {
		after.before = before
	}
}

// afterNodeInsertion gives the evict callback a chance to discard the
// eldest entry after a new mapping was added.
func (lm *linkedHashMap[K, V]) afterNodeInsertion() {
	eldest := lm.head
	if lm.evict == nil || eldest == nil {
		return
	}

	if lm.evict(KeyValuePair[K, V]{Key: eldest.key, Value: eldest.value}, lm.size) {
		lm.removeNode(eldest.hash, eldest.key)
	}
}

// Get retrieves the value associated with the given key. In access-order
// mode a hit moves the entry to the most recently used position.
func (lm *linkedHashMap[K, V]) Get(key K) (V, bool, error) {
	hash, err := lm.hash(key)
	if err != nil {
		return zero.Value[V](), false, err
	}

	node := lm.getNode(hash, key)
	if node == nil {
		return zero.Value[V](), false, nil
	}

	lm.afterNodeAccess(node)

	return node.value, true, nil
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if not found.
func (lm *linkedHashMap[K, V]) GetOrElse(key K, defaultValue V) (V, error) {
	value, found, err := lm.Get(key)
	if err != nil {
		return zero.Value[V](), err
	}

	if found {
		return value, nil
	}

	return defaultValue, nil
}

// Eldest returns the entry at the head of the iteration order, or None when
// the map is empty. In access-order mode this is the least recently used
// entry, the next to be evicted.
func (lm *linkedHashMap[K, V]) Eldest() optional.Value[KeyValuePair[K, V]] {
	if lm.head == nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	return optional.Some(KeyValuePair[K, V]{Key: lm.head.key, Value: lm.head.value})
}

// Seq returns an iterator over the map's entries in iteration order. The
// sequence panics if the map is structurally modified during iteration; in
// access-order mode that includes Get.
func (lm *linkedHashMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		expectedModCount := lm.modCount

		for node := lm.head; node != nil; node = node.after {
			if !yield(node.key, node.value) {
				return
			}

			if lm.modCount != expectedModCount {
				panic("maps: linked hash map modified during iteration")
			}
		}
	}
}

// Keys returns an iterator over the map's keys in iteration order.
func (lm *linkedHashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range lm.Seq() {
			if !yield(key) {
				return
			}
		}
	}
}

// ForEach applies the given function to each key-value pair in iteration order.
// It returns ErrConcurrentModification if f structurally modifies the map.
func (lm *linkedHashMap[K, V]) ForEach(f func(key K, value V)) error {
	expectedModCount := lm.modCount

	for node := lm.head; node != nil; node = node.after {
		f(node.key, node.value)

		if lm.modCount != expectedModCount {
			return ErrConcurrentModification
		}
	}

	return nil
}

// linkedHashMapIterator walks the order list from eldest to youngest,
// failing fast when the map is modified underneath it.
type linkedHashMapIterator[K collectable.Collectable[K], V any] struct {
	owner            *linkedHashMap[K, V]
	next             *hmNode[K, V]
	expectedModCount int
}

func (it *linkedHashMapIterator[K, V]) Next() (KeyValuePair[K, V], bool, error) {
	if it.owner.modCount != it.expectedModCount {
		return KeyValuePair[K, V]{}, false, ErrConcurrentModification
	}

	if it.next == nil {
		return KeyValuePair[K, V]{}, false, nil
	}

	node := it.next
	it.next = node.after

	return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true, nil
}

// Iterator returns a fail-fast iterator over the map's entries in iteration order.
func (lm *linkedHashMap[K, V]) Iterator() Iterator[K, V] {
	return &linkedHashMapIterator[K, V]{
		owner:            lm,
		next:             lm.head,
		expectedModCount: lm.modCount,
	}
}

// Clone returns a shallow copy of the map with the same entries, iteration
// order, ordering mode, and eviction callback.
func (lm *linkedHashMap[K, V]) Clone() Map[K, V] {
	cloned := &linkedHashMap[K, V]{accessOrder: lm.accessOrder, evict: lm.evict}
	cloned.init(lm.loadFactor, len(lm.table))
	cloned.fingerprint = lm.fingerprint

	for node := lm.head; node != nil; node = node.after {
		_, _ = cloned.Put(node.key, node.value)
	}

	return cloned
}
