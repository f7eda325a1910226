// Package hashing provides utilities for hashing values.
package hashing

import (
	"hash"

	"github.com/OneOfOne/xxhash"
	"github.com/zeebo/xxh3"
)

// Hashable is a generic interface for types that can feed themselves into a
// hash computation. Implementations write their canonical byte representation
// into the supplied hash state. Two values that are Equals must write the
// same bytes.
type Hashable interface {
	UpdateHash(state hash.Hash) error
}

// Fingerprint64Func reduces a Hashable value to a 64-bit fingerprint.
// Hash-based containers use the fingerprint to place values in buckets,
// so implementations should distribute well across the full 64 bits.
type Fingerprint64Func func(value Hashable) (uint64, error)

// XXH3 fingerprints a value with the XXH3 64-bit hash. It is the default
// fingerprint for hash-based containers.
func XXH3(value Hashable) (uint64, error) {
	state := xxh3.New()

	if err := value.UpdateHash(state); err != nil {
		return 0, err
	}

	return state.Sum64(), nil
}

// XXHash64 fingerprints a value with the classic XXHash 64-bit hash. It is
// kept alongside XXH3 so containers that need a second, independent hash of
// the same value (for collision tie-breaking) have one available.
func XXHash64(value Hashable) (uint64, error) {
	state := xxhash.New64()

	if err := value.UpdateHash(state); err != nil {
		return 0, err
	}

	return state.Sum64(), nil
}
