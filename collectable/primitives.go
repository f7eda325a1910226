package collectable

import (
	"hash"

	"github.com/amp-labs/collections/hashing"
)

// Collectable wrappers for the primitive types. Hashing delegates to the
// corresponding hashing package wrapper so a primitive hashes the same no
// matter which package wrapped it.

type Int int

var _ Collectable[Int] = (*Int)(nil)

func (i Int) UpdateHash(state hash.Hash) error {
	return hashing.HashableInt(i).UpdateHash(state)
}

func (i Int) Equals(other Int) bool {
	return int(i) == int(other)
}

type Int8 int8

var _ Collectable[Int8] = (*Int8)(nil)

func (i Int8) UpdateHash(state hash.Hash) error {
	return hashing.HashableInt8(i).UpdateHash(state)
}

func (i Int8) Equals(other Int8) bool {
	return int8(i) == int8(other)
}

type Int16 int16

var _ Collectable[Int16] = (*Int16)(nil)

func (i Int16) UpdateHash(state hash.Hash) error {
	return hashing.HashableInt16(i).UpdateHash(state)
}

func (i Int16) Equals(other Int16) bool {
	return int16(i) == int16(other)
}

type Int32 int32

var _ Collectable[Int32] = (*Int32)(nil)

func (i Int32) UpdateHash(state hash.Hash) error {
	return hashing.HashableInt32(i).UpdateHash(state)
}

func (i Int32) Equals(other Int32) bool {
	return int32(i) == int32(other)
}

type Int64 int64

var _ Collectable[Int64] = (*Int64)(nil)

func (i Int64) UpdateHash(state hash.Hash) error {
	return hashing.HashableInt64(i).UpdateHash(state)
}

func (i Int64) Equals(other Int64) bool {
	return int64(i) == int64(other)
}

type Uint uint

var _ Collectable[Uint] = (*Uint)(nil)

func (u Uint) UpdateHash(state hash.Hash) error {
	return hashing.HashableUint(u).UpdateHash(state)
}

func (u Uint) Equals(other Uint) bool {
	return uint(u) == uint(other)
}

type Uint8 uint8

var _ Collectable[Uint8] = (*Uint8)(nil)

func (u Uint8) UpdateHash(state hash.Hash) error {
	return hashing.HashableUint8(u).UpdateHash(state)
}

func (u Uint8) Equals(other Uint8) bool {
	return uint8(u) == uint8(other)
}

type Uint16 uint16

var _ Collectable[Uint16] = (*Uint16)(nil)

func (u Uint16) UpdateHash(state hash.Hash) error {
	return hashing.HashableUint16(u).UpdateHash(state)
}

func (u Uint16) Equals(other Uint16) bool {
	return uint16(u) == uint16(other)
}

type Uint32 uint32

var _ Collectable[Uint32] = (*Uint32)(nil)

func (u Uint32) UpdateHash(state hash.Hash) error {
	return hashing.HashableUint32(u).UpdateHash(state)
}

func (u Uint32) Equals(other Uint32) bool {
	return uint32(u) == uint32(other)
}

type Uint64 uint64

var _ Collectable[Uint64] = (*Uint64)(nil)

func (u Uint64) UpdateHash(state hash.Hash) error {
	return hashing.HashableUint64(u).UpdateHash(state)
}

func (u Uint64) Equals(other Uint64) bool {
	return uint64(u) == uint64(other)
}

type Float32 float32

var _ Collectable[Float32] = (*Float32)(nil)

func (f Float32) UpdateHash(state hash.Hash) error {
	return hashing.HashableFloat32(f).UpdateHash(state)
}

func (f Float32) Equals(other Float32) bool {
	return float32(f) == float32(other)
}

type Float64 float64

var _ Collectable[Float64] = (*Float64)(nil)

func (f Float64) UpdateHash(state hash.Hash) error {
	return hashing.HashableFloat64(f).UpdateHash(state)
}

func (f Float64) Equals(other Float64) bool {
	return float64(f) == float64(other)
}

type String string

var _ Collectable[String] = (*String)(nil)

func (s String) UpdateHash(state hash.Hash) error {
	return hashing.HashableString(s).UpdateHash(state)
}

func (s String) Equals(other String) bool {
	return string(s) == string(other)
}

type Bool bool

var _ Collectable[Bool] = (*Bool)(nil)

func (b Bool) UpdateHash(state hash.Hash) error {
	return hashing.HashableBool(b).UpdateHash(state)
}

func (b Bool) Equals(other Bool) bool {
	return bool(b) == bool(other)
}
