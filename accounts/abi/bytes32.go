// Copyright 2024 The go-ethereum Authors
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

package abi

import (
	"bytes"

	"github.com/sunyihoo/goethers/errs"
)

// FormatBytes32String encodes s as a null terminated bytes32 value. At most 31
// bytes fit, the last byte is reserved for the terminator.
// FormatBytes32String 将 s 编码为以空字符结尾的 bytes32 值。最多容纳 31 字节。
func FormatBytes32String(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > 31 {
		return out, errs.NewInvalidArgument("bytes32 string must be less than 32 bytes", "text", s)
	}
	copy(out[:], s)
	return out, nil
}

// ParseBytes32String decodes a null terminated bytes32 value.
// ParseBytes32String 解码以空字符结尾的 bytes32 值。
func ParseBytes32String(b []byte) (string, error) {
	if len(b) != 32 {
		return "", errs.NewInvalidArgument("invalid bytes32 string - not 32 bytes long", "bytes", b)
	}
	if b[31] != 0 {
		return "", errs.NewInvalidArgument("invalid bytes32 string - no null terminator", "bytes", b)
	}
	return string(bytes.TrimRight(b, "\x00")), nil
}
