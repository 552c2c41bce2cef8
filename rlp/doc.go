// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

/*
Package rlp implements the RLP serialization format.

The purpose of RLP (Recursive Linear Prefix) is to encode arbitrarily nested arrays of
binary data. The only purpose of RLP is to encode structure; encoding specific atomic
data types (eg. strings, ints, floats) is left up to higher-order protocols. Integers
are represented in big endian binary form with no leading zeroes, making the integer
value zero equivalent to the empty string.

RLP 的唯一目的是编码结构；特定原子数据类型的编码留给更高层协议。

# Item trees

The codec operates on Item values. An Item is either a string (a byte sequence) or a
list of Items:

	item := rlp.NewList(rlp.NewString([]byte("cat")), rlp.NewList())
	enc := rlp.Encode(item) // 0xc5 83636174 c0

Decode is the exact inverse and is strict: the whole input must be consumed by a
single top-level item, every list must contain exactly the bytes its header claims,
and size information must be minimal.

# Encoding Go values

EncodeToBytes and ToItem convert Go values into Items using these rules:

  - Item values are used as-is, and types implementing Encoder provide their own Item.
  - []byte, byte arrays and Go strings are encoded as RLP strings.
  - Unsigned integers, *big.Int and *uint256.Int are encoded as big endian strings
    without leading zeroes. Negative big integers are an error.
  - Booleans encode as 0x01 (true) and the empty string (false).
  - Slices, non-byte arrays and structs are encoded as lists. Struct fields are
    encoded in declaration order; a field tagged `rlp:"-"` is skipped.
  - A nil pointer encodes as the empty value of its element type: the empty list
    for structs and slices, the empty string otherwise.
*/
package rlp
