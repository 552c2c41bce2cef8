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

package hexutil

import (
	"encoding/hex"
	"math/big"

	"github.com/sunyihoo/goethers/errs"
)

// BytesLike is implemented by fixed-size byte types such as common.Address and
// common.Hash.
// BytesLike 由 common.Address 和 common.Hash 等固定大小的字节类型实现。
type BytesLike interface {
	Bytes() []byte
}

// IsHexString reports whether s is a 0x-prefixed string made only of hex digits.
// An odd number of digits is allowed.
// IsHexString 报告 s 是否是仅由十六进制数字组成的带 0x 前缀的字符串。
func IsHexString(s string) bool {
	if !has0xPrefix(s) {
		return false
	}
	for i := 2; i < len(s); i++ {
		if decodeNibble(s[i]) == badNibble {
			return false
		}
	}
	return true
}

// IsBytesLike reports whether s is a valid 0x-prefixed byte sequence, i.e. a hex
// string with an even number of digits.
func IsBytesLike(s string) bool {
	return IsHexString(s) && len(s)%2 == 0
}

// GetBytes normalizes a bytes-like value into a byte slice. Accepted inputs are
// []byte, Bytes, any BytesLike and 0x-prefixed even length hex strings. The name
// is reported as the offending argument on failure.
//
// The returned slice may alias the input; use GetBytesCopy when the caller
// intends to modify it.
//
// GetBytes 将类字节值规范化为字节切片。失败时 name 作为出错参数报告。
func GetBytes(value interface{}, name string) ([]byte, error) {
	if name == "" {
		name = "value"
	}
	switch v := value.(type) {
	case []byte:
		return v, nil
	case Bytes:
		return []byte(v), nil
	case *big.Int:
		// numbers are not byte sequences, use math.ToBeArray
	case BytesLike:
		return v.Bytes(), nil
	case string:
		if IsBytesLike(v) {
			b, _ := hex.DecodeString(v[2:])
			return b, nil
		}
	}
	return nil, errs.NewInvalidArgument("invalid BytesLike value", name, value)
}

// GetBytesCopy is like GetBytes but always returns a fresh slice.
func GetBytesCopy(value interface{}, name string) ([]byte, error) {
	b, err := GetBytes(value, name)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// DataLength returns the number of bytes in a bytes-like value.
// DataLength 返回类字节值中的字节数。
func DataLength(value interface{}) (int, error) {
	b, err := GetBytes(value, "data")
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Concat joins the given byte slices into a single new slice.
func Concat(datas ...[]byte) []byte {
	var size int
	for _, d := range datas {
		size += len(d)
	}
	out := make([]byte, 0, size)
	for _, d := range datas {
		out = append(out, d...)
	}
	return out
}

// DataSlice returns data[start:end]. An end beyond the data is a BUFFER_OVERRUN;
// a negative end means "to the end of the data".
// DataSlice 返回 data[start:end]。end 超出数据范围时返回 BUFFER_OVERRUN。
func DataSlice(data []byte, start, end int) ([]byte, error) {
	if end < 0 {
		end = len(data)
	}
	if end > len(data) {
		return nil, errs.NewBufferOverrun("cannot slice beyond data bounds", data, end, len(data))
	}
	if start > end {
		start = end
	}
	return data[start:end], nil
}

func zeroPad(data []byte, length int, left bool) ([]byte, error) {
	if length < len(data) {
		return nil, errs.NewBufferOverrun("padding exceeds data length", data, length+1, length)
	}
	out := make([]byte, length)
	if left {
		copy(out[length-len(data):], data)
	} else {
		copy(out, data)
	}
	return out, nil
}

// ZeroPadValue left-pads data with zeros to length bytes, as big-endian numeric
// values are padded.
// ZeroPadValue 用零将数据左填充至 length 字节。
func ZeroPadValue(data []byte, length int) ([]byte, error) {
	return zeroPad(data, length, true)
}

// ZeroPadBytes right-pads data with zeros to length bytes.
// ZeroPadBytes 用零将数据右填充至 length 字节。
func ZeroPadBytes(data []byte, length int) ([]byte, error) {
	return zeroPad(data, length, false)
}

// StripZerosLeft returns the hex encoding of data without leading zero bytes.
func StripZerosLeft(data []byte) string {
	i := 0
	for i < len(data) && data[i] == 0 {
		i++
	}
	return Encode(data[i:])
}
