// Copyright 2017 The go-ethereum Authors
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

// Package math provides integer math utilities and the normalization of
// heterogeneous numeric inputs into canonical big integers.
// Package math 提供整数数学工具，以及将各种数值输入规范化为标准大整数的功能。
package math

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/errs"
)

var (
	tt255     = BigPow(2, 255)
	tt256     = BigPow(2, 256)
	tt256m1   = new(big.Int).Sub(tt256, big.NewInt(1))
	bigMaxI64 = big.NewInt(1<<63 - 1)
	bigMinI64 = big.NewInt(-1 << 63)
)

const (
	// number of bits in a big.Word
	wordBits = 32 << (uint64(^big.Word(0)) >> 63)
	// number of bytes in a big.Word
	wordBytes = wordBits / 8
)

var (
	// MaxBig256 is the largest value representable by a uint256.
	MaxBig256 = new(big.Int).Set(tt256m1)
	// MaxBig63 is the largest value representable by an int64.
	MaxBig63 = new(big.Int).Set(bigMaxI64)
)

// GetBigInt converts a BigNumberish value into a new *big.Int. Accepted inputs are
// *big.Int, big.Int, *uint256.Int, *hexutil.Big, every Go integer kind and strings
// in decimal or 0x-prefixed hex form, optionally with a leading '-'.
//
// GetBigInt 将 BigNumberish 值转换为新的 *big.Int。
func GetBigInt(value interface{}, name string) (*big.Int, error) {
	if name == "" {
		name = "value"
	}
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			break
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			break
		}
		return v.ToBig(), nil
	case *hexutil.Big:
		if v == nil {
			break
		}
		return new(big.Int).Set(v.ToInt()), nil
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(v)), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		if n, ok := parseBigNumberish(v); ok {
			return n, nil
		}
		return nil, errs.NewInvalidArgument("invalid BigNumberish string", name, value)
	}
	return nil, errs.NewInvalidArgument("invalid BigNumberish value", name, value)
}

// parseBigNumberish parses decimal and 0x-prefixed hex strings. A single leading
// '-' negates the result.
func parseBigNumberish(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	neg := false
	if s[0] == '-' {
		if len(s) > 1 && s[1] == '-' {
			return nil, false
		}
		neg, s = true, s[1:]
	}
	var (
		n  *big.Int
		ok bool
	)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		if len(s) == 2 {
			return nil, false
		}
		n, ok = new(big.Int).SetString(s[2:], 16)
	} else {
		if strings.ContainsAny(s, "+-_") {
			return nil, false
		}
		n, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, false
	}
	if neg {
		n.Neg(n)
	}
	return n, true
}

// GetUint is like GetBigInt but fails with a NUMERIC_FAULT for negative values.
// GetUint 与 GetBigInt 类似，但对负值返回 NUMERIC_FAULT。
func GetUint(value interface{}, name string) (*big.Int, error) {
	n, err := GetBigInt(value, name)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, errs.NewNumericFault("unsigned value cannot be negative", "overflow", "getUint", value)
	}
	return n, nil
}

// GetNumber converts a BigNumberish value into an int64. Values outside the int64
// range are rejected with "overflow".
// GetNumber 将 BigNumberish 值转换为 int64。
func GetNumber(value interface{}, name string) (int64, error) {
	if name == "" {
		name = "value"
	}
	if s, ok := value.(string); ok {
		n, ok := parseBigNumberish(s)
		if !ok {
			return 0, errs.NewInvalidArgument("invalid numeric string", name, value)
		}
		value = n
	}
	n, err := GetBigInt(value, name)
	if err != nil {
		return 0, err
	}
	if n.Cmp(bigMinI64) < 0 || n.Cmp(bigMaxI64) > 0 {
		return 0, errs.NewInvalidArgument("overflow", name, value)
	}
	return n.Int64(), nil
}

// ToBigInt interprets b as a big-endian unsigned integer.
func ToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ToBeArray returns the minimal big-endian byte representation of a non-negative
// value. Zero is the empty slice.
// ToBeArray 返回非负值的最小大端字节表示。零是空切片。
func ToBeArray(value interface{}) ([]byte, error) {
	n, err := GetUint(value, "value")
	if err != nil {
		return nil, err
	}
	return n.Bytes(), nil
}

// ToBeHex returns the 0x-prefixed big-endian hex encoding of a non-negative value,
// always with an even number of digits. If width is positive the result is
// left-padded to width bytes, and a value that does not fit is a NUMERIC_FAULT.
//
// ToBeHex 返回非负值的带 0x 前缀的大端十六进制编码，数字个数始终为偶数。
func ToBeHex(value interface{}, width int) (string, error) {
	n, err := GetUint(value, "value")
	if err != nil {
		return "", err
	}
	result := n.Text(16)
	if width <= 0 {
		if len(result)%2 == 1 {
			result = "0" + result
		}
		return "0x" + result, nil
	}
	if width*2 < len(result) {
		return "", errs.NewNumericFault(fmt.Sprintf("value exceeds width (%d bytes)", width), "overflow", "toBeHex", value)
	}
	return "0x" + strings.Repeat("0", width*2-len(result)) + result, nil
}

// ToQuantity returns the canonical JSON-RPC quantity form of value: minimal hex with
// no leading zero nibble, "0x0" for zero. Byte sequences (including 0x strings of
// even length) are interpreted as big-endian numbers.
//
// ToQuantity 返回值的规范 JSON-RPC 数量形式：无前导零半字节的最小十六进制，零为 "0x0"。
func ToQuantity(value interface{}) (string, error) {
	var raw []byte
	if b, err := hexutil.GetBytes(value, "value"); err == nil {
		raw = b
	} else {
		if raw, err = ToBeArray(value); err != nil {
			return "", err
		}
	}
	result := strings.TrimLeft(fmt.Sprintf("%x", raw), "0")
	if result == "" {
		result = "0"
	}
	return "0x" + result, nil
}

// FromTwos interprets value as a width-bit two's complement number.
// FromTwos 将 value 解释为 width 位的二进制补码数。
func FromTwos(value *big.Int, width uint) *big.Int {
	if value.Bit(int(width)-1) == 0 {
		return new(big.Int).Set(value)
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(common1, width), common1)
	n := new(big.Int).Not(value)
	n.And(n, mask)
	n.Add(n, common1)
	return n.Neg(n)
}

// ToTwos converts value into its width-bit two's complement representation. Values
// outside [-2^(width-1), 2^(width-1)) are a NUMERIC_FAULT.
// ToTwos 将值转换为 width 位的二进制补码表示。
func ToTwos(value *big.Int, width uint) (*big.Int, error) {
	limit := new(big.Int).Lsh(common1, width-1)
	if value.Sign() < 0 {
		abs := new(big.Int).Neg(value)
		if abs.Cmp(limit) > 0 {
			return nil, errs.NewNumericFault("too low", "overflow", "toTwos", value)
		}
		mask := new(big.Int).Sub(new(big.Int).Lsh(common1, width), common1)
		n := new(big.Int).Not(abs)
		n.And(n, mask)
		return n.Add(n, common1), nil
	}
	if value.Cmp(limit) >= 0 {
		return nil, errs.NewNumericFault("too high", "overflow", "toTwos", value)
	}
	return new(big.Int).Set(value), nil
}

// Mask returns the low bits of value.
// Mask 返回 value 的低 bits 位。
func Mask(value *big.Int, bits uint) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(common1, bits), common1)
	return new(big.Int).And(value, mask)
}

var common1 = big.NewInt(1)

// BigPow returns a ** b as a big integer.
func BigPow(a, b int64) *big.Int {
	r := big.NewInt(a)
	return r.Exp(r, big.NewInt(b), nil)
}

// PaddedBigBytes encodes a big integer as a big-endian byte slice. The length
// of the slice is at least n bytes.
// PaddedBigBytes 将大整数编码为大端字节切片。切片长度至少为 n 字节。
func PaddedBigBytes(bigint *big.Int, n int) []byte {
	if bigint.BitLen()/8 >= n {
		return bigint.Bytes()
	}
	ret := make([]byte, n)
	ReadBits(bigint, ret)
	return ret
}

// ReadBits encodes the absolute value of bigint as big-endian bytes. Callers must ensure
// that buf has enough space. If buf is too short the result will be incomplete.
func ReadBits(bigint *big.Int, buf []byte) {
	i := len(buf)
	for _, d := range bigint.Bits() {
		for j := 0; j < wordBytes && i > 0; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}

// U256 encodes x as a 256 bit two's complement number. This operation is destructive.
func U256(x *big.Int) *big.Int {
	return x.And(x, tt256m1)
}

// U256Bytes converts a big Int into a 256bit EVM number.
// This operation is destructive.
func U256Bytes(n *big.Int) []byte {
	return PaddedBigBytes(U256(n), 32)
}

// S256 interprets x as a two's complement number.
// x must not exceed 256 bits (the result is undefined if it does) and is not modified.
//
//	S256(0)        = 0
//	S256(1)        = 1
//	S256(2**255)   = -2**255
//	S256(2**256-1) = -1
func S256(x *big.Int) *big.Int {
	if x.Cmp(tt255) < 0 {
		return x
	}
	return new(big.Int).Sub(x, tt256)
}
