// This file contains hashMap, a bucketed hash table in which each bucket
// holds either a short linked chain or, once the chain grows past a
// threshold, a red-black tree keyed by fingerprint. A tree bucket converts
// back to a chain only when a resize split leaves a half at or below
// untreeifyThreshold, or when removals shrink its tree to a handful of
// nodes; ordinary removal below the treeify threshold does not demote it.
// The table doubles in capacity when the entry
// count passes the load-factor threshold, and entries split between their
// old bucket and old bucket plus old capacity, so a resize never recomputes
// fingerprints.
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

const (
	// defaultInitialCapacity is the table size used when no capacity is
	// requested. Must be a power of two.
	defaultInitialCapacity = 1 << 4

	// maximumCapacity caps the table size. The table never grows past this
	// many buckets even if the load factor is exceeded.
	maximumCapacity = 1 << 30

	// defaultLoadFactor is the occupancy ratio that triggers a resize when
	// no load factor is requested.
	defaultLoadFactor = 0.75

	// treeifyThreshold is the chain length at which a bucket converts from
	// a linked chain to a red-black tree.
	treeifyThreshold = 8

	// untreeifyThreshold is the bucket size at or below which a tree bucket
	// converts back to a linked chain during a resize split.
	untreeifyThreshold = 6

	// minTreeifyCapacity is the smallest table size at which buckets may
	// treeify. Below it an overlong chain triggers a resize instead, since
	// the crowding is more likely poor table sizing than fingerprint
	// collisions.
	minTreeifyCapacity = 64
)

// hmNode is a single hash map entry. A node lives either on a bucket chain
// (next) or inside a bucket tree (parent, left, right, red), and tree nodes
// additionally keep their chain links intact so untreeify and iteration can
// walk them linearly. The before and after links are unused by hashMap
// itself and carry the iteration order overlay for linkedHashMap.
type hmNode[K collectable.Collectable[K], V any] struct {
	hash  uint64
	key   K
	value V
	next  *hmNode[K, V]

	// tree bucket links
	parent *hmNode[K, V]
	left   *hmNode[K, V]
	right  *hmNode[K, V]
	prev   *hmNode[K, V]
	red    bool
	tree   bool

	// ordering overlay links
	before *hmNode[K, V]
	after  *hmNode[K, V]
}

// nodeHooks lets an embedding container observe the structural life cycle of
// nodes. hashMap calls each hook at a fixed point: created when a node is
// linked into the table, accessed when Put overwrites an existing mapping,
// removed after a node is unlinked, inserted after a new mapping is added,
// and cleared when the table is emptied. Nil hooks are skipped.
type nodeHooks[K collectable.Collectable[K], V any] struct {
	created  func(node *hmNode[K, V])
	accessed func(node *hmNode[K, V])
	removed  func(node *hmNode[K, V])
	inserted func()
	cleared  func()
}

func (h *nodeHooks[K, V]) nodeCreated(node *hmNode[K, V]) {
	if h.created != nil {
		h.created(node)
	}
}

func (h *nodeHooks[K, V]) nodeAccessed(node *hmNode[K, V]) {
	if h.accessed != nil {
		h.accessed(node)
	}
}

func (h *nodeHooks[K, V]) nodeRemoved(node *hmNode[K, V]) {
	if h.removed != nil {
		h.removed(node)
	}
}

func (h *nodeHooks[K, V]) nodeInserted() {
	if h.inserted != nil {
		h.inserted()
	}
}

func (h *nodeHooks[K, V]) tableCleared() {
	if h.cleared != nil {
		h.cleared()
	}
}

// hashMap is the bucketed hash table implementation of the Map interface.
// The table length is always a power of two, so a bucket index is just the
// low bits of the spread fingerprint.
type hashMap[K collectable.Collectable[K], V any] struct {
	table       []*hmNode[K, V]
	size        int
	modCount    int
	threshold   int
	loadFactor  float64
	fingerprint hashing.Fingerprint64Func
	hooks       nodeHooks[K, V]
}

// NewHashMap creates an empty hash map with the default capacity, load
// factor, and fingerprint function.
func NewHashMap[K collectable.Collectable[K], V any]() Map[K, V] {
	return &hashMap[K, V]{
		loadFactor:  defaultLoadFactor,
		fingerprint: hashing.XXH3,
	}
}

// NewHashMapWith creates an empty hash map sized for initialCapacity entries
// with the given load factor. It returns ErrInvalidArgument when
// initialCapacity is negative or loadFactor is not a positive finite number.
func NewHashMapWith[K collectable.Collectable[K], V any](
	initialCapacity int, loadFactor float64,
) (Map[K, V], error) {
	if initialCapacity < 0 {
		return nil, fmt.Errorf("%w: negative initial capacity %d", ErrInvalidArgument, initialCapacity)
	}

	if loadFactor <= 0 || math.IsNaN(loadFactor) || math.IsInf(loadFactor, 0) {
		return nil, fmt.Errorf("%w: load factor %v", ErrInvalidArgument, loadFactor)
	}

	if initialCapacity > maximumCapacity {
		initialCapacity = maximumCapacity
	}

	return &hashMap[K, V]{
		// threshold holds the requested capacity until the table is
		// allocated lazily on first insert.
		threshold:   tableSizeFor(initialCapacity),
		loadFactor:  loadFactor,
		fingerprint: hashing.XXH3,
	}, nil
}

// NewHashMapFingerprint creates an empty hash map that fingerprints keys
// with the given function instead of the default. It returns
// ErrInvalidArgument when fingerprint is nil.
func NewHashMapFingerprint[K collectable.Collectable[K], V any](
	fingerprint hashing.Fingerprint64Func,
) (Map[K, V], error) {
	if fingerprint == nil {
		return nil, fmt.Errorf("%w: nil fingerprint function", ErrInvalidArgument)
	}

	return &hashMap[K, V]{
		loadFactor:  defaultLoadFactor,
		fingerprint: fingerprint,
	}, nil
}

// tableSizeFor returns the smallest power of two greater than or equal to
// capacity, capped at maximumCapacity. It smears the highest set bit into
// every lower position and adds one.
func tableSizeFor(capacity int) int {
	n := capacity - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16

	switch {
	case n < 0:
		return 1
	case n >= maximumCapacity:
		return maximumCapacity
	default:
		return n + 1
	}
}

// hash fingerprints the key and spreads the high bits down so that tables
// with few buckets still see entropy from the whole fingerprint.
func (m *hashMap[K, V]) hash(key K) (uint64, error) {
	fp, err := m.fingerprint(key)
	if err != nil {
		return 0, err
	}

	return fp ^ (fp >> 16), nil
}

// bucketIndex masks the spread fingerprint down to a table slot. The table
// length is a power of two, so masking is equivalent to modulo.
func bucketIndex(hash uint64, tableLen int) int {
	return int(hash & uint64(tableLen-1))
}

// getNode finds the node holding key in the bucket for hash, walking the
// tree when the bucket is treeified and the chain otherwise.
func (m *hashMap[K, V]) getNode(hash uint64, key K) *hmNode[K, V] {
	n := len(m.table)
	if n == 0 {
		return nil
	}

	first := m.table[bucketIndex(hash, n)]
	if first == nil {
		return nil
	}

	if first.hash == hash && first.key.Equals(key) {
		return first
	}

	if first.tree {
		return m.getTreeNode(first, hash, key)
	}

	for node := first.next; node != nil; node = node.next {
		if node.hash == hash && node.key.Equals(key) {
			return node
		}
	}

	return nil
}

// Get retrieves the value associated with the given key.
// Returns (value, true, nil) if found, (zero, false, nil) if not found.
func (m *hashMap[K, V]) Get(key K) (V, bool, error) {
	hash, err := m.hash(key)
	if err != nil {
		return zero.Value[V](), false, err
	}

	node := m.getNode(hash, key)
	if node == nil {
		return zero.Value[V](), false, nil
	}

	return node.value, true, nil
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if not found.
func (m *hashMap[K, V]) GetOrElse(key K, defaultValue V) (V, error) {
	value, found, err := m.Get(key)
	if err != nil {
		return zero.Value[V](), err
	}

	if found {
		return value, nil
	}

	return defaultValue, nil
}

// Contains checks whether the map contains the given key.
func (m *hashMap[K, V]) Contains(key K) (bool, error) {
	hash, err := m.hash(key)
	if err != nil {
		return false, err
	}

	return m.getNode(hash, key) != nil, nil
}

// Size returns the number of key-value pairs in the map.
func (m *hashMap[K, V]) Size() int {
	return m.size
}

// Put inserts or updates a key-value pair, returning the previous value if
// the key was already present.
func (m *hashMap[K, V]) Put(key K, value V) (optional.Value[V], error) {
	hash, err := m.hash(key)
	if err != nil {
		return optional.None[V](), err
	}

	return m.putVal(hash, key, value, false)
}

// PutIfAbsent inserts the key-value pair only when the key is not already
// present, returning the existing value otherwise.
func (m *hashMap[K, V]) PutIfAbsent(key K, value V) (optional.Value[V], error) {
	hash, err := m.hash(key)
	if err != nil {
		return optional.None[V](), err
	}

	return m.putVal(hash, key, value, true)
}

// Add inserts or updates a key-value pair, discarding any previous value.
func (m *hashMap[K, V]) Add(key K, value V) error {
	_, err := m.Put(key, value)

	return err
}

// newNode allocates a chain node and reports it to the hooks before it
// becomes reachable from the table.
func (m *hashMap[K, V]) newNode(hash uint64, key K, value V, next *hmNode[K, V]) *hmNode[K, V] {
	node := &hmNode[K, V]{hash: hash, key: key, value: value, next: next}

	m.hooks.nodeCreated(node)

	return node
}

// putVal inserts the mapping into the bucket for hash. When the key is
// already mapped it returns the previous value, overwriting it unless
// onlyIfAbsent is set. New mappings grow the table once size passes the
// threshold, and a chain that reaches treeifyThreshold converts to a tree.
func (m *hashMap[K, V]) putVal(hash uint64, key K, value V, onlyIfAbsent bool) (optional.Value[V], error) {
	if len(m.table) == 0 {
		m.resize()
	}

	idx := bucketIndex(hash, len(m.table))

	var existing *hmNode[K, V]

	if first := m.table[idx]; first == nil {
		m.table[idx] = m.newNode(hash, key, value, nil)
	} else {
		switch {
		case first.hash == hash && first.key.Equals(key):
			existing = first
		case first.tree:
			existing = m.putTreeVal(idx, hash, key, value)
		default:
			binCount := 0

			for node := first; ; binCount++ {
				if node.next == nil {
					node.next = m.newNode(hash, key, value, nil)

					// the new node is the binCount+2'th entry of the chain
					if binCount >= treeifyThreshold-1 {
						m.treeifyBin(idx)
					}

					break
				}

				node = node.next

				if node.hash == hash && node.key.Equals(key) {
					existing = node

					break
				}
			}
		}
	}

	if existing != nil {
		previous := existing.value

		if !onlyIfAbsent {
			existing.value = value
		}

		m.hooks.nodeAccessed(existing)

		return optional.Some(previous), nil
	}

	m.modCount++
	m.size++

	if m.size > m.threshold {
		m.resize()
	}

	m.hooks.nodeInserted()

	return optional.None[V](), nil
}

// Remove deletes the mapping for key, returning the removed value if a
// mapping existed.
func (m *hashMap[K, V]) Remove(key K) (optional.Value[V], error) {
	hash, err := m.hash(key)
	if err != nil {
		return optional.None[V](), err
	}

	node := m.removeNode(hash, key)
	if node == nil {
		return optional.None[V](), nil
	}

	return optional.Some(node.value), nil
}

// removeNode unlinks and returns the node holding key, or nil when no
// mapping exists.
func (m *hashMap[K, V]) removeNode(hash uint64, key K) *hmNode[K, V] {
	n := len(m.table)
	if n == 0 {
		return nil
	}

	idx := bucketIndex(hash, n)

	first := m.table[idx]
	if first == nil {
		return nil
	}

	var node, prev *hmNode[K, V]

	switch {
	case first.hash == hash && first.key.Equals(key):
		node = first
	case first.tree:
		node = m.getTreeNode(first, hash, key)
	default:
		for candidate := first.next; candidate != nil; candidate = candidate.next {
			if candidate.hash == hash && candidate.key.Equals(key) {
				node = candidate

				break
			}

			first = candidate
		}

		prev = first
	}

	if node == nil {
		return nil
	}

	if node.tree {
		m.removeTreeNode(node, idx)
	} else if node == m.table[idx] {
		m.table[idx] = node.next
	} else {
		prev.next = node.next
	}

	m.modCount++
	m.size--

	m.hooks.nodeRemoved(node)

	return node
}

// Clear removes all entries from the map, keeping the allocated table.
func (m *hashMap[K, V]) Clear() {
	if m.size > 0 || len(m.table) > 0 {
		m.modCount++

		for i := range m.table {
			m.table[i] = nil
		}

		m.size = 0
	}

	m.hooks.tableCleared()
}

// resize doubles the table capacity, or allocates the initial table when
// none exists yet. Every entry lands either in its old bucket or in the old
// bucket plus the old capacity, decided by a single bit of its hash, so the
// relative order of entries that stay together is preserved.
func (m *hashMap[K, V]) resize() {
	oldTab := m.table
	oldCap := len(oldTab)
	oldThr := m.threshold

	var newCap, newThr int

	switch {
	case oldCap > 0:
		if oldCap >= maximumCapacity {
			m.threshold = math.MaxInt

			return
		}

		newCap = oldCap << 1
		if newCap < maximumCapacity && oldCap >= defaultInitialCapacity {
			newThr = oldThr << 1
		}
	case oldThr > 0:
		// initial capacity was stashed in threshold by the constructor
		newCap = oldThr
	default:
		newCap = defaultInitialCapacity
		newThr = int(defaultLoadFactor * defaultInitialCapacity)
	}

	if newThr == 0 {
		ft := float64(newCap) * m.loadFactor
		if newCap < maximumCapacity && ft < maximumCapacity {
			newThr = int(ft)
		} else {
			newThr = math.MaxInt
		}
	}

	m.threshold = newThr
	m.table = make([]*hmNode[K, V], newCap)

	for idx := range oldTab {
		node := oldTab[idx]
		if node == nil {
			continue
		}

		oldTab[idx] = nil

		switch {
		case node.next == nil:
			m.table[bucketIndex(node.hash, newCap)] = node
		case node.tree:
			m.splitTreeBin(node, idx, oldCap)
		default:
			// split the chain into a low half that stays at idx and a
			// high half that moves to idx+oldCap, preserving order
			var loHead, loTail, hiHead, hiTail *hmNode[K, V]

			for ; node != nil; node = node.next {
				if node.hash&uint64(oldCap) == 0 {
					if loTail == nil {
						loHead = node
					} else {
						loTail.next = node
					}

					loTail = node
				} else {
					if hiTail == nil {
						hiHead = node
					} else {
						hiTail.next = node
					}

					hiTail = node
				}
			}

			if loTail != nil {
				loTail.next = nil
				m.table[idx] = loHead
			}

			if hiTail != nil {
				hiTail.next = nil
				m.table[idx+oldCap] = hiHead
			}
		}
	}
}

// Seq returns an iterator over the map's entries in table order. The
// sequence panics if the map is structurally modified during iteration.
func (m *hashMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		expectedModCount := m.modCount

		for _, bucket := range m.table {
			for node := bucket; node != nil; node = node.next {
				if !yield(node.key, node.value) {
					return
				}

				if m.modCount != expectedModCount {
					panic("maps: hash map modified during iteration")
				}
			}
		}
	}
}

// Keys returns an iterator over the map's keys in table order.
func (m *hashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.Seq() {
			if !yield(key) {
				return
			}
		}
	}
}

// ForEach applies the given function to each key-value pair.
// It returns ErrConcurrentModification if f structurally modifies the map.
func (m *hashMap[K, V]) ForEach(f func(key K, value V)) error {
	expectedModCount := m.modCount

	for _, bucket := range m.table {
		for node := bucket; node != nil; node = node.next {
			f(node.key, node.value)

			if m.modCount != expectedModCount {
				return ErrConcurrentModification
			}
		}
	}

	return nil
}

// hashMapIterator walks the table bucket by bucket, following chain links
// inside each bucket. Tree buckets keep their chain links, so the same walk
// covers them.
type hashMapIterator[K collectable.Collectable[K], V any] struct {
	owner            *hashMap[K, V]
	next             *hmNode[K, V]
	bucket           int
	expectedModCount int
}

func (it *hashMapIterator[K, V]) advance() {
	for it.next == nil && it.bucket < len(it.owner.table) {
		it.next = it.owner.table[it.bucket]
		it.bucket++
	}
}

func (it *hashMapIterator[K, V]) Next() (KeyValuePair[K, V], bool, error) {
	if it.owner.modCount != it.expectedModCount {
		return KeyValuePair[K, V]{}, false, ErrConcurrentModification
	}

	if it.next == nil {
		return KeyValuePair[K, V]{}, false, nil
	}

	node := it.next

	it.next = node.next
	it.advance()

	return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true, nil
}

// Iterator returns a fail-fast iterator over the map's entries in table order.
func (m *hashMap[K, V]) Iterator() Iterator[K, V] {
	it := &hashMapIterator[K, V]{owner: m, expectedModCount: m.modCount}
	it.advance()

	return it
}

// Clone returns a shallow copy of the map with the same entries, load
// factor, and fingerprint function.
func (m *hashMap[K, V]) Clone() Map[K, V] {
	cloned := &hashMap[K, V]{
		loadFactor:  m.loadFactor,
		fingerprint: m.fingerprint,
	}

	if len(m.table) > 0 {
		cloned.threshold = len(m.table)
	}

	for key, value := range m.Seq() {
		_, _ = cloned.Put(key, value)
	}

	return cloned
}
