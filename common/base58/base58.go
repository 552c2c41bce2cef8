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

// Package base58 implements the Bitcoin-alphabet Base58 encoding.
// Package base58 实现比特币字母表的 Base58 编码。
package base58

import (
	"math/big"

	"github.com/sunyihoo/goethers/errs"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	bigRadix = big.NewInt(58)
	// lookup maps a character to its digit value, -1 for characters outside the alphabet.
	// lookup 将字符映射到其数字值，字母表之外的字符为 -1。
	lookup [256]int8
)

func init() {
	for i := range lookup {
		lookup[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		lookup[alphabet[i]] = int8(i)
	}
}

// Encode returns the Base58 encoding of data, interpreted as a big-endian number.
// Every leading zero byte is rendered as a leading '1'.
// Encode 返回 data 的 Base58 编码，data 被解释为大端数字。每个前导零字节呈现为前导 '1'。
func Encode(data []byte) string {
	value := new(big.Int).SetBytes(data)
	mod := new(big.Int)

	var out []byte
	for value.Sign() > 0 {
		value.DivMod(value, bigRadix, mod)
		out = append(out, alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Decode returns the number encoded by the Base58 string s.
// Decode 返回 Base58 字符串 s 编码的数字。
func Decode(s string) (*big.Int, error) {
	result := new(big.Int)
	for i := 0; i < len(s); i++ {
		digit := lookup[s[i]]
		if digit < 0 {
			return nil, errs.NewInvalidArgument("invalid base58 value", "letter", string(s[i]))
		}
		result.Mul(result, bigRadix)
		result.Add(result, big.NewInt(int64(digit)))
	}
	return result, nil
}
