// Package set provides generic set containers built on the map engines:
// hash sets with O(1) average membership tests and tree sets that keep
// their elements sorted.
package set

import (
	"iter"

	"github.com/amp-labs/collections/collectable"
	"github.com/amp-labs/collections/empty"
	"github.com/amp-labs/collections/maps"
	"github.com/amp-labs/collections/sortable"
)

// A Set is a collection of unique elements. Uniqueness is determined by how
// the element type implements equality, together with hashing for hash sets
// and ordering for tree sets.
type Set[T any] interface {
	// AddAll adds multiple elements to the set. Returns an error if hashing fails.
	AddAll(elements ...T) error

	// Add adds a single element to the set. Returns an error if hashing fails.
	// If the element already exists in the set, no error is returned.
	Add(element T) error

	// Remove removes an element from the set. Returns an error if hashing fails.
	// If the element is not in the set, no error is returned.
	Remove(element T) error

	// Clear removes all elements from the set.
	Clear()

	// Contains checks if an element exists in the set. Returns true if the
	// element exists, false otherwise. Returns an error if hashing fails.
	Contains(element T) (bool, error)

	// Size returns the number of elements in the set.
	Size() int

	// Entries returns all elements in the set as a slice, in the set's
	// iteration order.
	Entries() []T

	// Seq returns an iterator over the set's elements in its iteration order.
	Seq() iter.Seq[T]

	// Union returns a new set containing all elements from both sets.
	Union(other Set[T]) (Set[T], error)

	// Intersection returns a new set containing only elements present in both sets.
	Intersection(other Set[T]) (Set[T], error)
}

// mapSet implements Set on top of any Map, storing elements as keys mapped
// to the empty struct. fresh creates an empty set of the same kind for
// Union and Intersection results.
type mapSet[T any] struct {
	entries maps.Map[T, empty.T]
	fresh   func() Set[T]
}

// NewHashSet creates an empty set backed by a hash map. Iteration order is
// unspecified.
func NewHashSet[T collectable.Collectable[T]]() Set[T] {
	return &mapSet[T]{
		entries: maps.NewHashMap[T, empty.T](),
		fresh:   func() Set[T] { return NewHashSet[T]() },
	}
}

// NewTreeSet creates an empty set backed by a red-black tree. Iteration
// yields elements in ascending order.
func NewTreeSet[T sortable.Sortable[T]]() Set[T] {
	return &mapSet[T]{
		entries: maps.NewTreeMap[T, empty.T](),
		fresh:   func() Set[T] { return NewTreeSet[T]() },
	}
}

func (s *mapSet[T]) AddAll(elements ...T) error {
	for _, elem := range elements {
		if err := s.Add(elem); err != nil {
			return err
		}
	}

	return nil
}

func (s *mapSet[T]) Add(element T) error {
	return s.entries.Add(element, empty.V)
}

func (s *mapSet[T]) Remove(element T) error {
	_, err := s.entries.Remove(element)

	return err
}

func (s *mapSet[T]) Clear() {
	s.entries.Clear()
}

func (s *mapSet[T]) Contains(element T) (bool, error) {
	return s.entries.Contains(element)
}

func (s *mapSet[T]) Size() int {
	return s.entries.Size()
}

func (s *mapSet[T]) Entries() []T {
	out := empty.Slice[T]()

	for element := range s.entries.Keys() {
		out = append(out, element)
	}

	return out
}

func (s *mapSet[T]) Seq() iter.Seq[T] {
	return s.entries.Keys()
}

func (s *mapSet[T]) Union(other Set[T]) (Set[T], error) {
	out := s.fresh()

	for element := range s.Seq() {
		if err := out.Add(element); err != nil {
			return nil, err
		}
	}

	for element := range other.Seq() {
		if err := out.Add(element); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *mapSet[T]) Intersection(other Set[T]) (Set[T], error) {
	out := s.fresh()

	for element := range s.Seq() {
		found, err := other.Contains(element)
		if err != nil {
			return nil, err
		}

		if found {
			if err := out.Add(element); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
