// Package compare provides utilities for comparing values.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Func is a three-way comparison function. It returns a negative value when
// a orders before b, zero when they are equal, and a positive value when a
// orders after b. It is the functional counterpart of the sortable.Sortable
// interface, for callers that need to supply an ordering at runtime instead
// of through a method set.
type Func[T any] func(a, b T) int

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
