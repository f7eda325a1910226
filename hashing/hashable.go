package hashing

import (
	"encoding/binary"
	"hash"
	"math"
)

// This file provides Hashable wrappers for the primitive types, mirroring the
// wrapper types in the sortable package. Each wrapper writes a fixed-width
// little-endian encoding of its value into the hash state.

type HashableString string

var _ Hashable = (*HashableString)(nil)

func (s HashableString) UpdateHash(state hash.Hash) error {
	_, err := state.Write([]byte(s))

	return err
}

func (s HashableString) Equals(other HashableString) bool {
	return string(s) == string(other)
}

type HashableBytes []byte

var _ Hashable = (*HashableBytes)(nil)

func (b HashableBytes) UpdateHash(state hash.Hash) error {
	_, err := state.Write(b)

	return err
}

type HashableBool bool

var _ Hashable = (*HashableBool)(nil)

func (b HashableBool) UpdateHash(state hash.Hash) error {
	encoded := byte(0)
	if b {
		encoded = 1
	}

	_, err := state.Write([]byte{encoded})

	return err
}

type HashableInt int

var _ Hashable = (*HashableInt)(nil)

func (i HashableInt) UpdateHash(state hash.Hash) error {
	return writeUint64(state, uint64(i))
}

type HashableInt8 int8

var _ Hashable = (*HashableInt8)(nil)

func (i HashableInt8) UpdateHash(state hash.Hash) error {
	_, err := state.Write([]byte{byte(i)})

	return err
}

type HashableInt16 int16

var _ Hashable = (*HashableInt16)(nil)

func (i HashableInt16) UpdateHash(state hash.Hash) error {
	var buf [2]byte

	binary.LittleEndian.PutUint16(buf[:], uint16(i))

	_, err := state.Write(buf[:])

	return err
}

type HashableInt32 int32

var _ Hashable = (*HashableInt32)(nil)

func (i HashableInt32) UpdateHash(state hash.Hash) error {
	return writeUint32(state, uint32(i))
}

type HashableInt64 int64

var _ Hashable = (*HashableInt64)(nil)

func (i HashableInt64) UpdateHash(state hash.Hash) error {
	return writeUint64(state, uint64(i))
}

type HashableUint uint

var _ Hashable = (*HashableUint)(nil)

func (u HashableUint) UpdateHash(state hash.Hash) error {
	return writeUint64(state, uint64(u))
}

type HashableUint8 uint8

var _ Hashable = (*HashableUint8)(nil)

func (u HashableUint8) UpdateHash(state hash.Hash) error {
	_, err := state.Write([]byte{byte(u)})

	return err
}

type HashableUint16 uint16

var _ Hashable = (*HashableUint16)(nil)

func (u HashableUint16) UpdateHash(state hash.Hash) error {
	var buf [2]byte

	binary.LittleEndian.PutUint16(buf[:], uint16(u))

	_, err := state.Write(buf[:])

	return err
}

type HashableUint32 uint32

var _ Hashable = (*HashableUint32)(nil)

func (u HashableUint32) UpdateHash(state hash.Hash) error {
	return writeUint32(state, uint32(u))
}

type HashableUint64 uint64

var _ Hashable = (*HashableUint64)(nil)

func (u HashableUint64) UpdateHash(state hash.Hash) error {
	return writeUint64(state, uint64(u))
}

type HashableFloat32 float32

var _ Hashable = (*HashableFloat32)(nil)

func (f HashableFloat32) UpdateHash(state hash.Hash) error {
	return writeUint32(state, math.Float32bits(float32(f)))
}

type HashableFloat64 float64

var _ Hashable = (*HashableFloat64)(nil)

func (f HashableFloat64) UpdateHash(state hash.Hash) error {
	return writeUint64(state, math.Float64bits(float64(f)))
}

func writeUint32(state hash.Hash, value uint32) error {
	var buf [4]byte

	binary.LittleEndian.PutUint32(buf[:], value)

	_, err := state.Write(buf[:])

	return err
}

func writeUint64(state hash.Hash, value uint64) error {
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], value)

	_, err := state.Write(buf[:])

	return err
}
