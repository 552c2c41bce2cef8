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
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/errs"
)

func str(s string) Item { return NewString([]byte(s)) }

func unhex(str string) []byte {
	b, err := hex.DecodeString(strings.Replace(str, " ", "", -1))
	if err != nil {
		panic(fmt.Sprintf("invalid hex string: %q", str))
	}
	return b
}

var itemTests = []struct {
	item   Item
	output string
}{
	// strings
	{NewString(nil), "80"},
	{NewString([]byte{0x00}), "00"},
	{NewString([]byte{0x7f}), "7F"},
	{NewString([]byte{0x80}), "8180"},
	{str("dog"), "83646F67"},
	{NewString(bytes.Repeat([]byte{0xaa}, 55)), "B7" + strings.Repeat("AA", 55)},
	{NewString(bytes.Repeat([]byte{0xaa}, 56)), "B838" + strings.Repeat("AA", 56)},
	{NewString(bytes.Repeat([]byte{0xaa}, 1024)), "B90400" + strings.Repeat("AA", 1024)},
	{
		str("Lorem ipsum dolor sit amet, consectetur adipisicing elit"),
		"B8384C6F72656D20697073756D20646F6C6F722073697420616D65742C20636F6E7365637465747572206164697069736963696E6720656C6974",
	},

	// lists
	{NewList(), "C0"},
	{NewList(str("cat"), str("dog")), "C88363617483646F67"},
	{
		NewList(NewList(NewString([]byte{0x42, 0x43})), NewList(NewString([]byte{0x31, 0x45}))),
		"C8C3824243C3823145",
	},
	// the set theoretical representation of three
	{
		NewList(NewList(), NewList(NewList()), NewList(NewList(), NewList(NewList()))),
		"C7C0C1C0C3C0C1C0",
	},
	{
		NewList(NewString(bytes.Repeat([]byte{0x01}, 60))),
		"F83EB83C" + strings.Repeat("01", 60),
	},
	{NewList(NewUint(0), NewUint(1), NewUint(0x400)), "C58001820400"},
}

func TestEncodeItem(t *testing.T) {
	for i, test := range itemTests {
		have := Encode(test.item)
		if want := unhex(test.output); !bytes.Equal(have, want) {
			t.Errorf("test %d: output mismatch:\ngot   %X\nwant  %s\nvalue %s", i, have, test.output, test.item)
		}
	}
}

type simplestruct struct {
	A uint
	B string
}

type skipstruct struct {
	A    uint
	skip uint
	C    []byte `rlp:"-"`
	D    *big.Int
}

type byteEncoder byte

func (e byteEncoder) EncodeRLP() (Item, error) {
	return NewList(NewUint(uint64(e))), nil
}

var valueTests = []struct {
	val    interface{}
	output string
	error  string
}{
	// booleans
	{val: true, output: "01"},
	{val: false, output: "80"},

	// integers
	{val: uint32(0), output: "80"},
	{val: uint32(127), output: "7F"},
	{val: uint32(128), output: "8180"},
	{val: uint32(256), output: "820100"},
	{val: uint64(0xFFFFFF), output: "83FFFFFF"},
	{val: uint64(0xFFFFFFFFFFFFFFFF), output: "88FFFFFFFFFFFFFFFF"},

	// big integers (should match uint for small values)
	{val: big.NewInt(0), output: "80"},
	{val: big.NewInt(1), output: "01"},
	{val: big.NewInt(0xFFFFFF), output: "83FFFFFF"},
	{val: (*big.Int)(nil), output: "80"},
	{val: *big.NewInt(0x400), output: "820400"},
	{val: big.NewInt(-1), error: "rlp: cannot encode negative big.Int"},
	{val: uint256.NewInt(0x400), output: "820400"},

	// byte slices, strings, arrays
	{val: []byte{}, output: "80"},
	{val: []byte{0x7E}, output: "7E"},
	{val: []byte{1, 2, 3}, output: "83010203"},
	{val: [3]byte{1, 2, 3}, output: "83010203"},
	{val: "dog", output: "83646F67"},
	{val: (*[20]byte)(nil), output: "80"},

	// slices
	{val: []uint{}, output: "C0"},
	{val: []uint{1, 2, 3}, output: "C3010203"},
	{val: []interface{}{uint(1), "a", []interface{}{}}, output: "C30161C0"},
	{val: [][]string{{"asdf", "qwer", "zxcv"}}, output: "D0CF84617364668471776572847A786376"},

	// structs
	{val: simplestruct{}, output: "C28080"},
	{val: simplestruct{A: 3, B: "foo"}, output: "C50383666F6F"},
	{val: &simplestruct{A: 3, B: "foo"}, output: "C50383666F6F"},
	{val: (*simplestruct)(nil), output: "C0"},
	{val: skipstruct{A: 1, skip: 2, C: []byte{3}, D: big.NewInt(4)}, output: "C20104"},

	// encoders
	{val: byteEncoder(5), output: "C105"},
	{val: []byteEncoder{1, 2}, output: "C4C101C102"},

	// unsupported
	{val: 1.5, error: "rlp: type float64 is not RLP-serializable"},
	{val: int(-1), error: "rlp: type int is not RLP-serializable"},
}

func TestEncodeToBytes(t *testing.T) {
	for i, test := range valueTests {
		output, err := EncodeToBytes(test.val)
		if err != nil && test.error == "" {
			t.Errorf("test %d: unexpected error: %v\nvalue %#v\ntype  %T", i, err, test.val, test.val)
			continue
		}
		if test.error != "" {
			if err == nil {
				t.Errorf("test %d: expected error %q, got none", i, test.error)
			} else if !strings.HasPrefix(err.Error(), test.error) {
				t.Errorf("test %d: error mismatch\ngot   %v\nwant  %v", i, err, test.error)
			}
			continue
		}
		if want := unhex(test.output); !bytes.Equal(output, want) {
			t.Errorf("test %d: output mismatch:\ngot   %X\nwant  %s\nvalue %#v", i, output, test.output, test.val)
		}
	}
}

func TestEncodeUnsupportedIsArgumentError(t *testing.T) {
	_, err := EncodeToBytes([]interface{}{[]byte{0x12, 0x34}, 1.5})
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected taxonomy error, got %v", err)
	}
	if e.Code != errs.InvalidArgument || e.Argument != "object" || e.Value != 1.5 {
		t.Fatalf("unexpected error fields: %+v", e)
	}
}
