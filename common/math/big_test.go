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

package math

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/goethers/errs"
)

func TestGetBigInt(t *testing.T) {
	tests := []struct {
		input interface{}
		want  string
	}{
		{"0x10", "16"},
		{"0X10", "16"},
		{"1234", "1234"},
		{"-42", "-42"},
		{"-0x10", "-16"},
		{int(-3), "-3"},
		{uint8(255), "255"},
		{uint64(1 << 63), "9223372036854775808"},
		{big.NewInt(99), "99"},
		{uint256.NewInt(7), "7"},
	}
	for i, test := range tests {
		have, err := GetBigInt(test.input, "value")
		if err != nil {
			t.Errorf("test %d: unexpected error: %v", i, err)
			continue
		}
		if have.String() != test.want {
			t.Errorf("test %d: have %s want %s", i, have, test.want)
		}
	}
}

func TestGetBigIntErrors(t *testing.T) {
	for _, input := range []string{"", "0x", "--1", "1.5", "0xzz", "abc", "+1"} {
		_, err := GetBigInt(input, "value")
		require.Error(t, err, "input %q", input)
		require.True(t, errs.IsError(err, errs.InvalidArgument), "input %q", input)
		require.True(t, strings.HasPrefix(err.Error(), "invalid BigNumberish string"), "input %q: %v", input, err)
	}
	_, err := GetBigInt(1.5, "value")
	require.True(t, strings.HasPrefix(err.Error(), "invalid BigNumberish value"))
}

func TestGetUintNegative(t *testing.T) {
	_, err := GetUint(-1, "value")
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, errs.NumericFault, e.Code)
	require.Equal(t, "overflow", e.Fault)
	require.Equal(t, "unsigned value cannot be negative", e.ShortMessage)
}

func TestGetNumber(t *testing.T) {
	n, err := GetNumber("0x20", "value")
	require.NoError(t, err)
	require.Equal(t, int64(32), n)

	_, err = GetNumber("twelve", "value")
	require.True(t, strings.HasPrefix(err.Error(), "invalid numeric string"))

	_, err = GetNumber(new(big.Int).Lsh(big.NewInt(1), 64), "value")
	require.True(t, errs.IsError(err, errs.InvalidArgument))
	require.True(t, strings.HasPrefix(err.Error(), "overflow"))
}

func TestToBeHex(t *testing.T) {
	tests := []struct {
		value interface{}
		width int
		want  string
	}{
		{0, 0, "0x00"},
		{15, 0, "0x0f"},
		{256, 0, "0x0100"},
		{1, 4, "0x00000001"},
		{"0xabcdef", 3, "0xabcdef"},
	}
	for i, test := range tests {
		have, err := ToBeHex(test.value, test.width)
		if err != nil {
			t.Fatalf("test %d: unexpected error: %v", i, err)
		}
		if have != test.want {
			t.Errorf("test %d: have %s want %s", i, have, test.want)
		}
	}

	_, err := ToBeHex(-4, 0)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, errs.NumericFault, e.Code)
	require.Equal(t, "overflow", e.Fault)
	require.Equal(t, "unsigned value cannot be negative", e.ShortMessage)

	_, err = ToBeHex(0x10000, 2)
	require.ErrorAs(t, err, &e)
	require.Equal(t, errs.NumericFault, e.Code)
	require.True(t, strings.HasPrefix(e.ShortMessage, "value exceeds width"))
}

func TestToQuantity(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{[]byte{0x0f, 0xfe, 0xfd, 0xfc}, "0xffefdfc"},
		{[]byte{}, "0x0"},
		{[]byte{0, 0}, "0x0"},
		{"0x0001", "0x1"},
		{0, "0x0"},
		{255, "0xff"},
		{"1000", "0x3e8"},
	}
	for i, test := range tests {
		have, err := ToQuantity(test.value)
		if err != nil {
			t.Fatalf("test %d: unexpected error: %v", i, err)
		}
		if have != test.want {
			t.Errorf("test %d: have %s want %s", i, have, test.want)
		}
	}
}

func TestTwos(t *testing.T) {
	tests := []struct {
		value int64
		width uint
		twos  string
	}{
		{0, 8, "0"},
		{1, 8, "1"},
		{-1, 8, "255"},
		{-128, 8, "128"},
		{127, 8, "127"},
		{-1, 256, new(big.Int).Sub(BigPow(2, 256), big.NewInt(1)).String()},
	}
	for i, test := range tests {
		v := big.NewInt(test.value)
		twos, err := ToTwos(v, test.width)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if twos.String() != test.twos {
			t.Errorf("test %d: twos have %s want %s", i, twos, test.twos)
		}
		if back := FromTwos(twos, test.width); back.Cmp(v) != 0 {
			t.Errorf("test %d: from twos have %s want %d", i, back, test.value)
		}
	}
	if _, err := ToTwos(big.NewInt(128), 8); !errs.IsError(err, errs.NumericFault) {
		t.Errorf("expected NUMERIC_FAULT for too high value, got %v", err)
	}
	if _, err := ToTwos(big.NewInt(-129), 8); !errs.IsError(err, errs.NumericFault) {
		t.Errorf("expected NUMERIC_FAULT for too low value, got %v", err)
	}
	if m := Mask(big.NewInt(0x1ff), 8); m.Int64() != 0xff {
		t.Errorf("mask mismatch: %v", m)
	}
}

func TestPaddedBigBytes(t *testing.T) {
	tests := []struct {
		num    *big.Int
		n      int
		result []byte
	}{
		{num: big.NewInt(0), n: 4, result: []byte{0, 0, 0, 0}},
		{num: big.NewInt(1), n: 4, result: []byte{0, 0, 0, 1}},
		{num: big.NewInt(512), n: 4, result: []byte{0, 0, 2, 0}},
		{num: BigPow(2, 32), n: 4, result: []byte{1, 0, 0, 0, 0}},
	}
	for _, test := range tests {
		if result := PaddedBigBytes(test.num, test.n); !bytes.Equal(result, test.result) {
			t.Errorf("PaddedBigBytes(%d, %d) = %v, want %v", test.num, test.n, result, test.result)
		}
	}
}

func TestHexOrDecimal256(t *testing.T) {
	tests := []struct {
		input string
		num   *big.Int
		ok    bool
	}{
		{"", big.NewInt(0), true},
		{"0", big.NewInt(0), true},
		{"0x0", big.NewInt(0), true},
		{"12345678", big.NewInt(12345678), true},
		{"0x12345678", big.NewInt(0x12345678), true},
		{"0X12345678", big.NewInt(0x12345678), true},
		{"0x", nil, false},
		{"0x1" + strings.Repeat("0", 64), nil, false},
	}
	for _, test := range tests {
		var num HexOrDecimal256
		err := num.UnmarshalText([]byte(test.input))
		if (err == nil) != test.ok {
			t.Errorf("ParseBig(%q) -> (err == nil) == %t, want %t", test.input, err == nil, test.ok)
			continue
		}
		if test.num != nil && (*big.Int)(&num).Cmp(test.num) != 0 {
			t.Errorf("ParseBig(%q) -> %d, want %d", test.input, (*big.Int)(&num), test.num)
		}
	}
}
