// Package collectable provides interfaces and wrapper types for values that can be stored in collections.
//
// # Overview
//
// The collectable package defines the [Collectable] interface, which combines hashing
// and equality comparison capabilities. Types implementing this interface can be used
// in hash-based collections like hash sets and hash maps.
//
// The package provides ready-to-use wrapper types for common primitive types:
//   - [Int], [Int8], [Int16], [Int32], [Int64]: Signed integer types
//   - [Uint], [Uint8], [Uint16], [Uint32], [Uint64]: Unsigned integer types
//   - [Float32], [Float64]: Floating-point types
//   - [String]: String type
//   - [Bool]: Boolean type
//
// # Usage
//
// Use the provided wrapper types directly in collections:
//
//	hashSet := set.NewHashSet[collectable.Int]()
//	hashSet.Add(collectable.Int(42))
//	hashSet.Add(collectable.Int(100))
//
//	if hashSet.Contains(collectable.Int(42)) {
//	    fmt.Println("Found 42!")
//	}
//
// # Creating Custom Collectable Types
//
// To create a custom collectable type, implement the Collectable interface:
//
//	type MyType struct {
//	    ID   int
//	    Name string
//	}
//
//	func (m MyType) UpdateHash(state hash.Hash) error {
//	    if err := collectable.Int(m.ID).UpdateHash(state); err != nil {
//	        return err
//	    }
//	    return collectable.String(m.Name).UpdateHash(state)
//	}
//
//	func (m MyType) Equals(other MyType) bool {
//	    return m.ID == other.ID && m.Name == other.Name
//	}
//
// # Design Notes
//
// The Collectable interface combines two capabilities:
//   - Hashing (via [github.com/amp-labs/collections/hashing.Hashable]): enables efficient
//     bucket placement in hash-based collections
//   - Equality (via [github.com/amp-labs/collections/compare.Comparable]): enables
//     resolving hash collisions inside a bucket
//
// Two values that are Equals must produce the same hash. The reverse does not
// hold: distinct values may collide, and collections resolve those collisions
// with Equals.
package collectable

import (
	"github.com/amp-labs/collections/compare"
	"github.com/amp-labs/collections/hashing"
)

// Collectable is a generic interface for types that can be stored in hash-based collections.
// It combines the Hashable interface (for computing hash values) with the Comparable
// interface (for equality testing), both of which are required for hash-based data structures.
type Collectable[T any] interface {
	hashing.Hashable
	compare.Comparable[T]
}
