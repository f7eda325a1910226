// This file contains the tree bucket operations of hashMap. A bucket whose
// chain grows past treeifyThreshold is rebuilt as a red-black tree ordered
// by fingerprint, with a secondary hash as the tie break for equal
// fingerprints. Tree nodes keep their chain links so the bucket can be
// walked linearly, untreeified in place, and split across a resize without
// rebuilding.
//
// The balancing routines here are root-returning: every rotation and fixup
// takes the bucket's current root and hands back the possibly new one,
// which the caller then moves to the front of the bucket chain so the table
// slot always references the root.
package maps

import (
	"github.com/amp-labs/collections/collectable"
	"github.com/amp-labs/collections/hashing"
)

// tieBreakOrder orders two keys with equal fingerprints by a second,
// independent hash of each key. It never returns zero: when the secondary
// hashes also collide, or either hash fails, a stays left of b. The
// resulting order is arbitrary but consistent within a bucket, which is all
// the tree needs.
func tieBreakOrder[K hashing.Hashable](a, b K) int {
	ha, errA := hashing.XXHash64(a)
	hb, errB := hashing.XXHash64(b)

	if errA == nil && errB == nil && ha > hb {
		return 1
	}

	return -1
}

// newTreeNode allocates a tree node linked after next on the bucket chain
// and reports it to the hooks before it becomes reachable from the table.
func (m *hashMap[K, V]) newTreeNode(hash uint64, key K, value V, next *hmNode[K, V]) *hmNode[K, V] {
	node := &hmNode[K, V]{hash: hash, key: key, value: value, next: next, tree: true}

	m.hooks.nodeCreated(node)

	return node
}

// treeifyBin converts the chain in the bucket at idx into a tree, or grows
// the table instead when it is still below minTreeifyCapacity. Small tables
// resize first because a long chain there usually means the table is
// undersized rather than that fingerprints collide.
func (m *hashMap[K, V]) treeifyBin(idx int) {
	if len(m.table) < minTreeifyCapacity {
		m.resize()

		return
	}

	first := m.table[idx]
	if first == nil {
		return
	}

	var prev *hmNode[K, V]
	for node := first; node != nil; node = node.next {
		node.tree = true
		node.prev = prev
		prev = node
	}

	m.treeify(first, idx)
}

// treeify builds a red-black tree from the bucket chain starting at first
// and leaves the root at the front of the chain and in the table slot.
// Nodes insert in chain order: descend by fingerprint, tie-breaking equal
// fingerprints, and rebalance after each link.
func (m *hashMap[K, V]) treeify(first *hmNode[K, V], idx int) {
	var root *hmNode[K, V]

	for x := first; x != nil; x = x.next {
		x.left = nil
		x.right = nil

		if root == nil {
			x.parent = nil
			x.red = false
			root = x

			continue
		}

		for p := root; ; {
			var dir int

			switch {
			case p.hash > x.hash:
				dir = -1
			case p.hash < x.hash:
				dir = 1
			default:
				dir = tieBreakOrder(x.key, p.key)
			}

			xp := p //nolint:varnamelen // JDK-style tree bin variable names

			if dir <= 0 {
				p = p.left
			} else {
				p = p.right
			}

			if p == nil {
				x.parent = xp

				if dir <= 0 {
					xp.left = x
				} else {
					xp.right = x
				}

				root = balanceInsertion(root, x)

				break
			}
		}
	}

	m.moveRootToFront(root, idx)
}

// untreeify converts the bucket rooted chain starting at first back into a
// plain linked chain by resetting the tree links in place, and returns the
// chain head.
func untreeify[K collectable.Collectable[K], V any](first *hmNode[K, V]) *hmNode[K, V] {
	for node := first; node != nil; node = node.next {
		node.tree = false
		node.parent = nil
		node.left = nil
		node.right = nil
		node.prev = nil
		node.red = false
	}

	return first
}

// getTreeNode finds the node for (hash, key) in the tree bucket whose chain
// starts at first. It searches from the root, which may sit behind first if
// the bucket is mid-restructure.
func (m *hashMap[K, V]) getTreeNode(first *hmNode[K, V], hash uint64, key K) *hmNode[K, V] {
	root := first
	for root.parent != nil {
		root = root.parent
	}

	return findTreeNode(root, hash, key)
}

// findTreeNode descends from node looking for the entry with the given
// fingerprint and key. Because equal fingerprints are ordered by an
// arbitrary tie break, a hash match without a key match must search both
// subtrees: it recurses right and continues iteratively down the left.
func findTreeNode[K collectable.Collectable[K], V any](node *hmNode[K, V], hash uint64, key K) *hmNode[K, V] {
	for p := node; p != nil; {
		switch {
		case p.hash > hash:
			p = p.left
		case p.hash < hash:
			p = p.right
		case p.key.Equals(key):
			return p
		case p.left == nil:
			p = p.right
		case p.right == nil:
			p = p.left
		default:
			if q := findTreeNode(p.right, hash, key); q != nil {
				return q
			}

			p = p.left
		}
	}

	return nil
}

// putTreeVal inserts (hash, key, value) into the tree bucket at idx, or
// returns the existing node when the key is already present. On the first
// fingerprint collision it searches both subtrees once for the key before
// falling back to tie-break ordering, so an existing entry is always found
// rather than duplicated.
func (m *hashMap[K, V]) putTreeVal(idx int, hash uint64, key K, value V) *hmNode[K, V] {
	first := m.table[idx]

	root := first
	for root.parent != nil {
		root = root.parent
	}

	searched := false

	for p := root; ; {
		var dir int

		switch {
		case p.hash > hash:
			dir = -1
		case p.hash < hash:
			dir = 1
		case p.key.Equals(key):
			return p
		default:
			if !searched {
				searched = true

				if q := findTreeNode(p.left, hash, key); q != nil {
					return q
				}

				if q := findTreeNode(p.right, hash, key); q != nil {
					return q
				}
			}

			dir = tieBreakOrder(key, p.key)
		}

		xp := p //nolint:varnamelen // JDK-style tree bin variable names

		if dir <= 0 {
			p = p.left
		} else {
			p = p.right
		}

		if p == nil {
			xpn := xp.next

			x := m.newTreeNode(hash, key, value, xpn)
			if dir <= 0 {
				xp.left = x
			} else {
				xp.right = x
			}

			xp.next = x
			x.parent = xp
			x.prev = xp

			if xpn != nil {
				xpn.prev = x
			}

			m.moveRootToFront(balanceInsertion(root, x), idx)

			return nil
		}
	}
}

// removeTreeNode unlinks node from the tree bucket at idx. The node leaves
// the bucket chain first, then the tree. A bucket that has become too small
// collapses back into a plain chain; the structural check on the root's
// shape is a cheap proxy for the exact count. When the node has two
// children it swaps places with its in-order successor, node for node
// rather than by copying the entry, so the node's identity (and any
// ordering overlay attached to it) survives the removal of other entries.
//
// nolint:varnamelen,gocognit,cyclop,funlen // JDK-style tree bin removal
func (m *hashMap[K, V]) removeTreeNode(node *hmNode[K, V], idx int) {
	first := m.table[idx]
	succ := node.next
	pred := node.prev

	if pred == nil {
		first = succ
		m.table[idx] = succ
	} else {
		pred.next = succ
	}

	if succ != nil {
		succ.prev = pred
	}

	if first == nil {
		return
	}

	root := first
	for root.parent != nil {
		root = root.parent
	}

	if root.right == nil || root.left == nil || root.left.left == nil {
		m.table[idx] = untreeify(first)

		return
	}

	p := node
	pl := p.left
	pr := p.right

	var replacement *hmNode[K, V]

	switch {
	case pl != nil && pr != nil:
		s := pr
		for s.left != nil {
			s = s.left
		}

		s.red, p.red = p.red, s.red // swap colors

		sr := s.right
		pp := p.parent

		if s == pr { // p was s's direct parent
			p.parent = s
			s.right = p
		} else {
			sp := s.parent

			p.parent = sp
			if sp != nil {
				if s == sp.left {
					sp.left = p
				} else {
					sp.right = p
				}
			}

			s.right = pr
			pr.parent = s
		}

		p.left = nil

		p.right = sr
		if sr != nil {
			sr.parent = p
		}

		s.left = pl
		pl.parent = s

		s.parent = pp
		switch {
		case pp == nil:
			root = s
		case p == pp.left:
			pp.left = s
		default:
			pp.right = s
		}

		if sr != nil {
			replacement = sr
		} else {
			replacement = p
		}
	case pl != nil:
		replacement = pl
	case pr != nil:
		replacement = pr
	default:
		replacement = p
	}

	if replacement != p {
		pp := p.parent
		replacement.parent = pp

		switch {
		case pp == nil:
			root = replacement
		case p == pp.left:
			pp.left = replacement
		default:
			pp.right = replacement
		}

		p.left = nil
		p.right = nil
		p.parent = nil
	}

	if !p.red {
		root = balanceDeletion(root, replacement)
	}

	if replacement == p { // detach the childless node after the fixup
		pp := p.parent
		p.parent = nil

		if pp != nil {
			if p == pp.left {
				pp.left = nil
			} else if p == pp.right {
				pp.right = nil
			}
		}
	}

	m.moveRootToFront(root, idx)
}

// splitTreeBin redistributes the tree bucket whose chain starts at first
// between the bucket at idx and the bucket at idx+bit during a resize.
// Each half that stays tree-sized is re-treeified; a half at or below
// untreeifyThreshold collapses to a plain chain. A half left alone in the
// new table keeps its existing tree shape.
//
// nolint:varnamelen // JDK-style tree bin variable names
func (m *hashMap[K, V]) splitTreeBin(first *hmNode[K, V], idx int, bit int) {
	var loHead, loTail, hiHead, hiTail *hmNode[K, V]

	var loCount, hiCount int

	var next *hmNode[K, V]

	for e := first; e != nil; e = next {
		next = e.next
		e.next = nil

		if e.hash&uint64(bit) == 0 {
			e.prev = loTail

			if loTail == nil {
				loHead = e
			} else {
				loTail.next = e
			}

			loTail = e
			loCount++
		} else {
			e.prev = hiTail

			if hiTail == nil {
				hiHead = e
			} else {
				hiTail.next = e
			}

			hiTail = e
			hiCount++
		}
	}

	if loHead != nil {
		if loCount <= untreeifyThreshold {
			m.table[idx] = untreeify(loHead)
		} else {
			m.table[idx] = loHead

			if hiHead != nil { // otherwise the whole tree moved intact
				m.treeify(loHead, idx)
			}
		}
	}

	if hiHead != nil {
		if hiCount <= untreeifyThreshold {
			m.table[idx+bit] = untreeify(hiHead)
		} else {
			m.table[idx+bit] = hiHead

			if loHead != nil {
				m.treeify(hiHead, idx+bit)
			}
		}
	}
}

// moveRootToFront splices root to the front of its bucket chain and points
// the table slot at it, so lookups land on the tree root directly.
func (m *hashMap[K, V]) moveRootToFront(root *hmNode[K, V], idx int) {
	if root == nil || len(m.table) == 0 {
		return
	}

	first := m.table[idx]
	if root == first {
		return
	}

	m.table[idx] = root

	rp := root.prev
	rn := root.next

	if rn != nil {
		rn.prev = rp
	}

	if rp != nil {
		rp.next = rn
	}

	if first != nil {
		first.prev = root
	}

	root.next = first
	root.prev = nil
}

// binRotateLeft rotates the tree bucket left around p and returns the
// possibly new root. A node that becomes root is recolored black.
//
// nolint:varnamelen // JDK-style tree bin variable names
func binRotateLeft[K collectable.Collectable[K], V any](root, p *hmNode[K, V]) *hmNode[K, V] {
	if p == nil || p.right == nil {
		return root
	}

	r := p.right

	p.right = r.left
	if p.right != nil {
		p.right.parent = p
	}

	r.parent = p.parent

	switch pp := r.parent; {
	case pp == nil:
		root = r
		root.red = false
	case pp.left == p:
		pp.left = r
	default:
		pp.right = r
	}

	r.left = p
	p.parent = r

	return root
}

// binRotateRight rotates the tree bucket right around p and returns the
// possibly new root. A node that becomes root is recolored black.
//
// nolint:varnamelen // JDK-style tree bin variable names
func binRotateRight[K collectable.Collectable[K], V any](root, p *hmNode[K, V]) *hmNode[K, V] {
	if p == nil || p.left == nil {
		return root
	}

	l := p.left

	p.left = l.right
	if p.left != nil {
		p.left.parent = p
	}

	l.parent = p.parent

	switch pp := l.parent; {
	case pp == nil:
		root = l
		root.red = false
	case pp.right == p:
		pp.right = l
	default:
		pp.left = l
	}

	l.right = p
	p.parent = l

	return root
}

// balanceInsertion restores the red-black properties of a tree bucket after
// linking x as a red leaf, and returns the possibly new root.
//
// nolint:varnamelen,gocognit,cyclop // JDK-style tree bin balancing
func balanceInsertion[K collectable.Collectable[K], V any](root, x *hmNode[K, V]) *hmNode[K, V] {
	x.red = true

	for {
		xp := x.parent
		if xp == nil {
			x.red = false

			return x
		}

		xpp := xp.parent
		if !xp.red || xpp == nil {
			return root
		}

		if xp == xpp.left {
			if xppr := xpp.right; xppr != nil && xppr.red {
				xppr.red = false
				xp.red = false
				xpp.red = true
				x = xpp
			} else {
				if x == xp.right {
					x = xp
					root = binRotateLeft(root, x)

					xp = x.parent
					if xp == nil {
						xpp = nil
					} else {
						xpp = xp.parent
					}
				}

				if xp != nil {
					xp.red = false

					if xpp != nil {
						xpp.red = true
						root = binRotateRight(root, xpp)
					}
				}
			}
		} else {
			if xppl := xpp.left; xppl != nil && xppl.red {
				xppl.red = false
				xp.red = false
				xpp.red = true
				x = xpp
			} else {
				if x == xp.left {
					x = xp
					root = binRotateRight(root, x)

					xp = x.parent
					if xp == nil {
						xpp = nil
					} else {
						xpp = xp.parent
					}
				}

				if xp != nil {
					xp.red = false

					if xpp != nil {
						xpp.red = true
						root = binRotateLeft(root, xpp)
					}
				}
			}
		}
	}
}

// balanceDeletion restores the red-black properties of a tree bucket after
// a removal left x carrying a black deficit, and returns the possibly new
// root.
//
// nolint:varnamelen,gocognit,cyclop,funlen // JDK-style tree bin balancing
func balanceDeletion[K collectable.Collectable[K], V any](root, x *hmNode[K, V]) *hmNode[K, V] {
	for {
		if x == nil || x == root {
			return root
		}

		xp := x.parent

		switch {
		case xp == nil:
			x.red = false

			return x
		case x.red:
			x.red = false

			return root
		}

		if xp.left == x { //nolint:nestif // symmetric halves of the fixup
			xpr := xp.right
			if xpr != nil && xpr.red {
				xpr.red = false
				xp.red = true
				root = binRotateLeft(root, xp)

				xp = x.parent
				if xp == nil {
					xpr = nil
				} else {
					xpr = xp.right
				}
			}

			if xpr == nil {
				x = xp
			} else {
				sl := xpr.left
				sr := xpr.right

				if (sr == nil || !sr.red) && (sl == nil || !sl.red) {
					xpr.red = true
					x = xp
				} else {
					if sr == nil || !sr.red {
						if sl != nil {
							sl.red = false
						}

						xpr.red = true
						root = binRotateRight(root, xpr)

						xp = x.parent
						if xp == nil {
							xpr = nil
						} else {
							xpr = xp.right
						}
					}

					if xpr != nil {
						if xp == nil {
							xpr.red = false
						} else {
							xpr.red = xp.red
						}

						if sr = xpr.right; sr != nil {
							sr.red = false
						}
					}

					if xp != nil {
						xp.red = false
						root = binRotateLeft(root, xp)
					}

					x = root
				}
			}
		} else {
			xpl := xp.left
			if xpl != nil && xpl.red {
				xpl.red = false
				xp.red = true
				root = binRotateRight(root, xp)

				xp = x.parent
				if xp == nil {
					xpl = nil
				} else {
					xpl = xp.left
				}
			}

			if xpl == nil {
				x = xp
			} else {
				sl := xpl.left
				sr := xpl.right

				if (sl == nil || !sl.red) && (sr == nil || !sr.red) {
					xpl.red = true
					x = xp
				} else {
					if sl == nil || !sl.red {
						if sr != nil {
							sr.red = false
						}

						xpl.red = true
						root = binRotateLeft(root, xpl)

						xp = x.parent
						if xp == nil {
							xpl = nil
						} else {
							xpl = xp.left
						}
					}

					if xpl != nil {
						if xp == nil {
							xpl.red = false
						} else {
							xpl.red = xp.red
						}

						if sl = xpl.left; sl != nil {
							sl.red = false
						}
					}

					if xp != nil {
						xp.red = false
						root = binRotateRight(root, xp)
					}

					x = root
				}
			}
		}
	}
}
