// Package empty provides zero-size placeholder values for collections and channels.
package empty

// T is an empty struct type that occupies zero bytes of memory.
// It's commonly used for signaling channels or as map keys where
// only the presence of a key matters, not its value.
//
// Example:
//
//	type Set map[string]empty.T
//	set := make(Set)
//	set["key"] = empty.V
type T struct{}

// V is a pre-allocated instance of the empty struct T.
// Use this to avoid repeated allocations of empty structs.
var V = T{}

// Slice returns an empty slice of the specified type T.
// The returned slice has zero length and zero capacity.
//
// This is useful when you need to return a non-nil empty slice
// instead of nil, which can be important for JSON serialization
// or API responses.
func Slice[T any]() []T {
	return []T{}
}

// Map returns an empty initialized map with the specified key type K and value type V.
// The returned map is not nil and has zero length.
func Map[K comparable, V any]() map[K]V {
	return make(map[K]V)
}
