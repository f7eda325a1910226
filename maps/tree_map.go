// This file contains treeMap, a self-balancing binary search tree that
// maintains sorted key-value pairs with guaranteed O(log n) performance for
// insertions, deletions, and lookups.
//
// Red-black trees enforce the following properties to maintain balance:
//  1. Every node is either red or black
//  2. The root is always black
//  3. All leaves (nil nodes) are considered black
//  4. Red nodes cannot have red children (no two consecutive red nodes on any path)
//  5. Every path from root to leaf contains the same number of black nodes
//
// These properties ensure the tree remains approximately balanced, preventing
// the worst-case O(n) behavior of unbalanced binary search trees.
package maps

import (
	"fmt"
	"iter"

	"github.com/amp-labs/collections/compare"
	"github.com/amp-labs/collections/optional"
	"github.com/amp-labs/collections/sortable"
	"github.com/amp-labs/collections/zero"
)

// color represents the color of a red-black tree node.
// Red-black trees use node colors to maintain balance during insertions and deletions.
type color bool

// String returns a human-readable representation of the node color.
func (c color) String() string {
	switch c {
	case true:
		return "Black"
	default:
		return "Red"
	}
}

// black and red are the two node colors in a red-black tree.
// Black is represented as true for a default zero-value of black when nodes are created.
const black, red color = true, false

// tmNode represents a single node in the red-black tree.
// Each node stores a key-value pair, maintains pointers to its children and parent,
// and tracks its color for tree balancing.
type tmNode[K any, V any] struct {
	key    K
	value  V
	color  color
	left   *tmNode[K, V]
	right  *tmNode[K, V]
	parent *tmNode[K, V]
}

// String returns a string representation of the node showing its key and color.
func (n *tmNode[K, V]) String() string {
	return fmt.Sprintf("(%#v : %s)", n.key, n.color)
}

// treeMap is a self-balancing binary search tree implementation of the
// SortedMap interface. Keys are ordered by the comparison function supplied
// at construction, and iteration always yields entries in ascending key
// order. Structural changes bump modCount so live iterators fail fast.
type treeMap[K any, V any] struct {
	root     *tmNode[K, V]
	cmp      compare.Func[K]
	size     int
	modCount int
}

// NewTreeMap creates an empty sorted map ordered by the keys' natural
// ordering, as defined by their Sortable implementation.
func NewTreeMap[K sortable.Sortable[K], V any]() SortedMap[K, V] {
	return &treeMap[K, V]{cmp: sortable.Compare[K]}
}

// NewTreeMapFunc creates an empty sorted map ordered by the given comparison
// function. It returns ErrInvalidArgument when cmp is nil.
func NewTreeMapFunc[K any, V any](cmp compare.Func[K]) (SortedMap[K, V], error) {
	if cmp == nil {
		return nil, fmt.Errorf("%w: nil comparison function", ErrInvalidArgument)
	}

	return &treeMap[K, V]{cmp: cmp}, nil
}

// getNode retrieves the node containing the specified key.
// Returns the node and true if found, nil and false otherwise.
func (t *treeMap[K, V]) getNode(key K) (*tmNode[K, V], bool) {
	node := t.root

	for node != nil {
		switch c := t.cmp(key, node.key); {
		case c < 0:
			node = node.left
		case c > 0:
			node = node.right
		default:
			return node, true
		}
	}

	return nil, false
}

// Get retrieves the value associated with the given key.
// Returns (value, true, nil) if found, (zero, false, nil) if not found.
func (t *treeMap[K, V]) Get(key K) (value V, found bool, err error) {
	node, ok := t.getNode(key)
	if ok {
		return node.value, true, nil
	} else {
		return zero.Value[V](), false, nil
	}
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if not found.
func (t *treeMap[K, V]) GetOrElse(key K, defaultValue V) (value V, err error) {
	value, found, err := t.Get(key)
	if err != nil {
		return zero.Value[V](), err
	}

	if found {
		return value, nil
	}

	return defaultValue, nil
}

// Contains checks whether the map contains the given key.
func (t *treeMap[K, V]) Contains(key K) (bool, error) {
	_, found := t.getNode(key)

	return found, nil
}

// Size returns the number of key-value pairs in the map.
func (t *treeMap[K, V]) Size() int {
	return t.size
}

// Clear removes all entries from the map, resetting it to empty.
func (t *treeMap[K, V]) Clear() {
	t.root = nil
	t.size = 0
	t.modCount++
}

// Put inserts or updates a key-value pair in the map, returning the previous
// value if the key was already present.
// After insertion, the tree is rebalanced to maintain red-black properties.
func (t *treeMap[K, V]) Put(key K, value V) (optional.Value[V], error) {
	if t.root == nil {
		t.root = &tmNode[K, V]{key: key, value: value, color: black}
		t.size = 1
		t.modCount++

		return optional.None[V](), nil
	}

	var (
		parent *tmNode[K, V]
		cmp    int
	)

	node := t.root
	for node != nil {
		parent = node

		cmp = t.cmp(key, node.key)
		switch {
		case cmp < 0:
			node = node.left
		case cmp > 0:
			node = node.right
		default:
			previous := node.value
			node.value = value

			return optional.Some(previous), nil
		}
	}

	newNode := &tmNode[K, V]{key: key, value: value, color: red, parent: parent}
	if cmp < 0 {
		parent.left = newNode
	} else {
		parent.right = newNode
	}

	t.fixAfterInsertion(newNode)

	t.size++
	t.modCount++

	return optional.None[V](), nil
}

// PutIfAbsent inserts the key-value pair only when the key is not already
// present, returning the existing value otherwise.
func (t *treeMap[K, V]) PutIfAbsent(key K, value V) (optional.Value[V], error) {
	if node, found := t.getNode(key); found {
		return optional.Some(node.value), nil
	}

	return t.Put(key, value)
}

// Add inserts or updates a key-value pair in the map, discarding any
// previous value.
func (t *treeMap[K, V]) Add(key K, value V) error {
	_, err := t.Put(key, value)

	return err
}

// Remove deletes the key-value pair with the given key from the map,
// returning the removed value if the key was present.
// After deletion, the tree is rebalanced to maintain red-black properties.
func (t *treeMap[K, V]) Remove(key K) (optional.Value[V], error) {
	node, found := t.getNode(key)
	if !found {
		return optional.None[V](), nil
	}

	removed := node.value

	t.deleteNode(node)

	t.size--
	t.modCount++

	return optional.Some(removed), nil
}

// First returns the entry with the smallest key, or None when the map is empty.
func (t *treeMap[K, V]) First() optional.Value[KeyValuePair[K, V]] {
	node := t.firstNode()
	if node == nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	return optional.Some(KeyValuePair[K, V]{Key: node.key, Value: node.value})
}

// Last returns the entry with the largest key, or None when the map is empty.
func (t *treeMap[K, V]) Last() optional.Value[KeyValuePair[K, V]] {
	node := t.root
	if node == nil {
		return optional.None[KeyValuePair[K, V]]()
	}

	for node.right != nil {
		node = node.right
	}

	return optional.Some(KeyValuePair[K, V]{Key: node.key, Value: node.value})
}

// firstNode returns the leftmost node, which holds the smallest key.
func (t *treeMap[K, V]) firstNode() *tmNode[K, V] {
	node := t.root
	if node == nil {
		return nil
	}

	for node.left != nil {
		node = node.left
	}

	return node
}

// successor returns the node holding the next larger key, or nil when node
// holds the largest key.
func successor[K any, V any](node *tmNode[K, V]) *tmNode[K, V] {
	if node == nil {
		return nil
	}

	if node.right != nil {
		next := node.right
		for next.left != nil {
			next = next.left
		}

		return next
	}

	parent := node.parent
	child := node

	for parent != nil && child == parent.right {
		child = parent
		parent = parent.parent
	}

	return parent
}

// Seq returns an iterator over the map's key-value pairs in sorted order (by key).
// This enables range-based iteration: for k, v := range m.Seq() { ... }.
// The sequence panics if the map is structurally modified during iteration.
func (t *treeMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		expectedModCount := t.modCount

		for node := t.firstNode(); node != nil; node = successor(node) {
			if !yield(node.key, node.value) {
				return
			}

			if t.modCount != expectedModCount {
				panic("maps: tree map modified during iteration")
			}
		}
	}
}

// Keys returns an iterator over the map's keys in sorted order.
func (t *treeMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range t.Seq() {
			if !yield(key) {
				return
			}
		}
	}
}

// ForEach applies the given function to each key-value pair in sorted order.
// It returns ErrConcurrentModification if f structurally modifies the map.
func (t *treeMap[K, V]) ForEach(f func(key K, value V)) error {
	expectedModCount := t.modCount

	for node := t.firstNode(); node != nil; node = successor(node) {
		f(node.key, node.value)

		if t.modCount != expectedModCount {
			return ErrConcurrentModification
		}
	}

	return nil
}

// treeMapIterator walks the tree in sorted order via successor links,
// failing fast when the tree is modified underneath it.
type treeMapIterator[K any, V any] struct {
	owner            *treeMap[K, V]
	next             *tmNode[K, V]
	expectedModCount int
}

func (it *treeMapIterator[K, V]) Next() (KeyValuePair[K, V], bool, error) {
	if it.owner.modCount != it.expectedModCount {
		return KeyValuePair[K, V]{}, false, ErrConcurrentModification
	}

	if it.next == nil {
		return KeyValuePair[K, V]{}, false, nil
	}

	node := it.next
	it.next = successor(node)

	return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true, nil
}

// Iterator returns a fail-fast iterator over the map's entries in sorted order.
func (t *treeMap[K, V]) Iterator() Iterator[K, V] {
	return &treeMapIterator[K, V]{
		owner:            t,
		next:             t.firstNode(),
		expectedModCount: t.modCount,
	}
}

// Clone returns a shallow copy of the map with the same key-value pairs and ordering.
func (t *treeMap[K, V]) Clone() Map[K, V] {
	cloned := &treeMap[K, V]{cmp: t.cmp}

	for key, value := range t.Seq() {
		_, _ = cloned.Put(key, value)
	}

	return cloned
}

// rotateLeft performs a left rotation around node x.
// This is a fundamental operation for rebalancing the tree:
//
//	  x                y
//	 / \              / \
//	A   y      =>    x   C
//	   / \          / \
//	  B   C        A   B
//
// nolint:varnamelen // Standard red-black tree variable names
func (t *treeMap[K, V]) rotateLeft(x *tmNode[K, V]) {
	if x == nil {
		return
	}

	if x.right == nil {
		return
	}

	y := x.right //nolint:varnamelen // Standard red-black tree variable names from CLRS
	x.right = y.left

	if y.left != nil {
		y.left.parent = x
	}

	y.parent = x.parent

	if x.parent == nil {
		t.root = y
	} else {
		if x == x.parent.left {
			x.parent.left = y
		} else {
			x.parent.right = y
		}
	}

	y.left = x
	x.parent = y
}

// rotateRight performs a right rotation around node y.
// This is a fundamental operation for rebalancing the tree:
//
//	    y              x
//	   / \            / \
//	  x   C   =>     A   y
//	 / \                / \
//	A   B              B   C
//
// nolint:dupword,varnamelen // ASCII art; standard RB tree variable names
func (t *treeMap[K, V]) rotateRight(y *tmNode[K, V]) {
	if y == nil {
		return
	}

	if y.left == nil {
		return
	}

	x := y.left //nolint:varnamelen // Standard red-black tree variable names from CLRS
	y.left = x.right

	if x.right != nil {
		x.right.parent = y
	}

	x.parent = y.parent

	if y.parent == nil {
		t.root = x
	} else {
		if y == y.parent.left {
			y.parent.left = x
		} else {
			y.parent.right = x
		}
	}

	x.right = y
	y.parent = x
}

// colorOf, parentOf, leftOf, rightOf, and setColor treat nil nodes as black
// leaves, which lets the fixup loops walk off the edge of the tree without
// nil checks at every step.
func colorOf[K any, V any](node *tmNode[K, V]) color {
	if node == nil {
		return black
	}

	return node.color
}

func parentOf[K any, V any](node *tmNode[K, V]) *tmNode[K, V] {
	if node == nil {
		return nil
	}

	return node.parent
}

func leftOf[K any, V any](node *tmNode[K, V]) *tmNode[K, V] {
	if node == nil {
		return nil
	}

	return node.left
}

func rightOf[K any, V any](node *tmNode[K, V]) *tmNode[K, V] {
	if node == nil {
		return nil
	}

	return node.right
}

func setColor[K any, V any](node *tmNode[K, V], c color) {
	if node != nil {
		node.color = c
	}
}

// fixAfterInsertion restores red-black tree properties after inserting a new node.
// New nodes are inserted as red, which may violate the property that red nodes
// cannot have red children. This method fixes violations by recoloring and rotating.
//
// The algorithm handles several cases:
//  1. New node is root - color it black
//  2. Parent is black - no violation, done
//  3. Parent is red:
//     a. Uncle is red - recolor parent, uncle, and grandparent
//     b. Uncle is black - perform rotations and recoloring
//
// The method continues fixing violations up the tree until no violations remain.
// nolint:varnamelen // Standard red-black tree variable names
func (t *treeMap[K, V]) fixAfterInsertion(x *tmNode[K, V]) {
	x.color = red

	for x != nil && x != t.root && colorOf(x.parent) == red {
		if parentOf(x) == leftOf(parentOf(parentOf(x))) { //nolint:nestif // Red-black tree algorithm complexity
			y := rightOf(parentOf(parentOf(x)))
			if colorOf(y) == red {
				setColor(parentOf(x), black)
				setColor(y, black)
				setColor(parentOf(parentOf(x)), red)
				x = parentOf(parentOf(x))
			} else {
				if x == rightOf(parentOf(x)) {
					x = parentOf(x)
					t.rotateLeft(x)
				}

				setColor(parentOf(x), black)
				setColor(parentOf(parentOf(x)), red)
				t.rotateRight(parentOf(parentOf(x)))
			}
		} else {
			y := leftOf(parentOf(parentOf(x)))
			if colorOf(y) == red {
				setColor(parentOf(x), black)
				setColor(y, black)
				setColor(parentOf(parentOf(x)), red)
				x = parentOf(parentOf(x))
			} else {
				if x == leftOf(parentOf(x)) {
					x = parentOf(x)
					t.rotateRight(x)
				}

				setColor(parentOf(x), black)
				setColor(parentOf(parentOf(x)), red)
				t.rotateLeft(parentOf(parentOf(x)))
			}
		}
	}

	t.root.color = black
}

// deleteNode unlinks p from the tree and rebalances.
//
// When p has two children, its key and value are overwritten with those of
// its in-order successor and the successor node (which has at most one
// child) is unlinked instead. When the node being unlinked has no children,
// the fixup runs on the node itself before it is detached, using it as a
// phantom stand-in for the nil leaf that replaces it.
// nolint:varnamelen // Standard red-black tree variable names
func (t *treeMap[K, V]) deleteNode(p *tmNode[K, V]) {
	if p.left != nil && p.right != nil {
		s := successor(p)
		p.key = s.key
		p.value = s.value
		p = s
	}

	var replacement *tmNode[K, V]
	if p.left != nil {
		replacement = p.left
	} else {
		replacement = p.right
	}

	switch {
	case replacement != nil:
		replacement.parent = p.parent

		switch {
		case p.parent == nil:
			t.root = replacement
		case p == p.parent.left:
			p.parent.left = replacement
		default:
			p.parent.right = replacement
		}

		p.left = nil
		p.right = nil
		p.parent = nil

		if p.color == black {
			t.fixAfterDeletion(replacement)
		}
	case p.parent == nil:
		t.root = nil
	default:
		if p.color == black {
			t.fixAfterDeletion(p)
		}

		if p.parent != nil {
			if p == p.parent.left {
				p.parent.left = nil
			} else if p == p.parent.right {
				p.parent.right = nil
			}

			p.parent = nil
		}
	}
}

// fixAfterDeletion restores red-black tree properties after deleting a node.
// Deletion can violate the property that all paths from root to leaf have the
// same number of black nodes. This method fixes violations by recoloring and rotating.
//
// The algorithm handles several cases based on the sibling of the node being fixed:
//  1. Node is root or red - can be colored black, done
//  2. Sibling is red - rotate and recolor to create a black sibling
//  3. Sibling is black with two black children - recolor sibling, move problem up
//  4. Sibling is black with red child - rotate and recolor to fix the violation
//
// nolint:varnamelen,dupl // Standard red-black tree variable names; symmetric cases
func (t *treeMap[K, V]) fixAfterDeletion(x *tmNode[K, V]) {
	for x != t.root && colorOf(x) == black {
		if x == leftOf(parentOf(x)) { //nolint:nestif // Red-black tree algorithm complexity
			sib := rightOf(parentOf(x))

			if colorOf(sib) == red {
				setColor(sib, black)
				setColor(parentOf(x), red)
				t.rotateLeft(parentOf(x))
				sib = rightOf(parentOf(x))
			}

			if colorOf(leftOf(sib)) == black && colorOf(rightOf(sib)) == black {
				setColor(sib, red)
				x = parentOf(x) // recurse up tree
			} else {
				if colorOf(rightOf(sib)) == black {
					setColor(leftOf(sib), black)
					setColor(sib, red)
					t.rotateRight(sib)
					sib = rightOf(parentOf(x))
				}

				setColor(sib, colorOf(parentOf(x)))
				setColor(parentOf(x), black)
				setColor(rightOf(sib), black)
				t.rotateLeft(parentOf(x))
				x = t.root
			}
		} else {
			sib := leftOf(parentOf(x))

			if colorOf(sib) == red {
				setColor(sib, black)
				setColor(parentOf(x), red)
				t.rotateRight(parentOf(x))
				sib = leftOf(parentOf(x))
			}

			if colorOf(rightOf(sib)) == black && colorOf(leftOf(sib)) == black {
				setColor(sib, red)
				x = parentOf(x) // recurse up tree
			} else {
				if colorOf(leftOf(sib)) == black {
					setColor(rightOf(sib), black)
					setColor(sib, red)
					t.rotateLeft(sib)
					sib = leftOf(parentOf(x))
				}

				setColor(sib, colorOf(parentOf(x)))
				setColor(parentOf(x), black)
				setColor(leftOf(sib), black)
				t.rotateRight(parentOf(x))
				x = t.root
			}
		}
	}

	setColor(x, black)
}
