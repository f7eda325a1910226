package sortable

import (
	"github.com/amp-labs/collections/compare"
)

type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare adapts a Sortable type to a three-way comparison, returning -1, 0,
// or 1. It is the bridge between the Sortable interface and components that
// consume a compare.Func, such as the tree map's natural-ordering constructor.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.Equals(b):
		return 0
	case a.LessThan(b):
		return -1
	default:
		return 1
	}
}
