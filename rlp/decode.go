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

package rlp

import (
	"errors"

	"github.com/sunyihoo/goethers/errs"
)

var (
	// ErrExpectedString is returned if a list is found where a string was expected.
	ErrExpectedString = errors.New("rlp: expected String or Byte")
	// ErrExpectedList is returned if a string is found where a list was expected.
	ErrExpectedList = errors.New("rlp: expected List")
	// ErrCanonInt is returned for integers with leading zero bytes.
	ErrCanonInt = errors.New("rlp: non-canonical integer format")
	// ErrCanonSize is returned for size information that is not minimal.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	errUintOverflow = errors.New("rlp: uint overflow")
)

// Decode parses exactly one RLP item from data. It fails if the input is empty, if
// any header claims more bytes than available, if a list child crosses the end of
// its list, if size information is not minimal, or if bytes remain after the item.
//
// Decode 从 data 中精确解析一个 RLP 项。如果输入为空、任何头部声称的字节多于可用字节、
// 列表子项越过其列表末尾、大小信息不是最小的，或者项之后还有剩余字节，则失败。
func Decode(data []byte) (Item, error) {
	if len(data) == 0 {
		return Item{}, errs.NewBufferOverrun("data too short", data, 1, 0)
	}
	item, consumed, err := decodeAt(data, 0)
	if err != nil {
		return Item{}, err
	}
	if consumed != len(data) {
		return Item{}, errs.NewInvalidArgument("unexpected junk after rlp payload", "data", data)
	}
	return item, nil
}

// decodeAt decodes the item starting at offset and returns it together with the
// number of bytes it occupies.
func decodeAt(data []byte, offset int) (Item, int, error) {
	if offset >= len(data) {
		return Item{}, 0, errs.NewBufferOverrun("data short segment too short", data, offset+1, len(data))
	}
	checkOffset := func(end int) error {
		if end > len(data) {
			return errs.NewBufferOverrun("data short segment too short", data, end, len(data))
		}
		return nil
	}
	b := data[offset]
	switch {
	case b >= 0xF8:
		lenlen := int(b - 0xF7)
		if err := checkOffset(offset + 1 + lenlen); err != nil {
			return Item{}, 0, err
		}
		size, err := readLength(data, offset+1, lenlen)
		if err != nil {
			return Item{}, 0, err
		}
		if err := checkOffset(offset + 1 + lenlen + size); err != nil {
			return Item{}, 0, err
		}
		return decodeChildren(data, offset, offset+1+lenlen, lenlen+size)

	case b >= 0xC0:
		size := int(b - 0xC0)
		if err := checkOffset(offset + 1 + size); err != nil {
			return Item{}, 0, err
		}
		return decodeChildren(data, offset, offset+1, size)

	case b >= 0xB8:
		lenlen := int(b - 0xB7)
		if err := checkOffset(offset + 1 + lenlen); err != nil {
			return Item{}, 0, err
		}
		size, err := readLength(data, offset+1, lenlen)
		if err != nil {
			return Item{}, 0, err
		}
		start := offset + 1 + lenlen
		if err := checkOffset(start + size); err != nil {
			return Item{}, 0, err
		}
		return NewString(copyOf(data[start : start+size])), 1 + lenlen + size, nil

	case b >= 0x80:
		size := int(b - 0x80)
		if err := checkOffset(offset + 1 + size); err != nil {
			return Item{}, 0, err
		}
		if size == 1 && data[offset+1] < 0x80 {
			return Item{}, 0, nonCanonical(data, offset)
		}
		return NewString(copyOf(data[offset+1 : offset+1+size])), 1 + size, nil
	}
	return NewString([]byte{b}), 1, nil
}

// decodeChildren decodes the children of the list whose header starts at offset.
// The payload of length size (counted from offset+1) must be consumed exactly.
func decodeChildren(data []byte, offset, childOffset, size int) (Item, int, error) {
	end := offset + 1 + size
	items := []Item{}
	for childOffset < end {
		child, consumed, err := decodeAt(data, childOffset)
		if err != nil {
			return Item{}, 0, err
		}
		items = append(items, child)
		childOffset += consumed
		if childOffset > end {
			return Item{}, 0, errs.NewBufferOverrun("child data too short", data, offset, size)
		}
	}
	return NewList(items...), 1 + size, nil
}

// readLength reads a big endian length of lenlen bytes. Lengths must be minimal:
// no leading zero byte and at least 56, otherwise the short form applies.
func readLength(data []byte, offset, lenlen int) (int, error) {
	if data[offset] == 0 {
		return 0, nonCanonical(data, offset-1)
	}
	var size uint64
	for i := 0; i < lenlen; i++ {
		size = size<<8 | uint64(data[offset+i])
	}
	if size < 56 {
		return 0, nonCanonical(data, offset-1)
	}
	if size > uint64(len(data)) {
		return 0, errs.NewBufferOverrun("data short segment too short", data, offset+lenlen+int(min(size, uint64(len(data))+1)), len(data))
	}
	return int(size), nil
}

func nonCanonical(data []byte, offset int) error {
	return &errs.Error{
		Code:         errs.InvalidArgument,
		ShortMessage: "non-canonical size information",
		Argument:     "data",
		Value:        data,
		Offset:       offset,
		Err:          ErrCanonSize,
	}
}

func copyOf(b []byte) []byte {
	return append([]byte{}, b...)
}
