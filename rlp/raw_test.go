// Copyright 2015 The go-ethereum Authors
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
	"io"
	"testing"
)

func TestCountValues(t *testing.T) {
	tests := []struct {
		input string // note: spaces in input are stripped by unhex
		count int
		err   error
	}{
		// simple cases
		{"", 0, nil},
		{"00", 1, nil},
		{"80", 1, nil},
		{"C0", 1, nil},
		{"01 02 03", 3, nil},
		{"01 C406070809 02", 3, nil},
		{"820101 820202 8403030303 04", 4, nil},

		// size errors
		{"8142", 0, ErrCanonSize},
		{"01 01 8142", 0, ErrCanonSize},
		{"02 84020202", 0, ErrValueTooLarge},

		{
			input: "A12000BF49F440A1CD0527E4D06E2765654C0F56452257516D793A9B8D604DCFDF2AB853F851808D10000000000000000000000000A056E81F171BCC55A6FF8345E692C0F86E5B48E01B996CADC001622FB5E363B421A0C5D2460186F7233C927E7DB2DCC703C0E500B653CA82273B7BFAD8045D85A470",
			count: 2,
		},
	}
	for i, test := range tests {
		count, err := CountValues(unhex(test.input))
		if count != test.count {
			t.Errorf("test %d: count mismatch, got %d want %d\ninput: %s", i, count, test.count, test.input)
		}
		if err != test.err {
			t.Errorf("test %d: err mismatch, got %q want %q\ninput: %s", i, err, test.err, test.input)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input     string
		kind      Kind
		val, rest string
		err       error
	}{
		{input: "01FFFF", kind: Byte, val: "01", rest: "FFFF"},
		{input: "80FFFF", kind: String, val: "", rest: "FFFF"},
		{input: "C3010203", kind: List, val: "010203"},

		{input: "00", kind: Byte, val: "00"},
		{input: "7F", kind: Byte, val: "7F"},
		{input: "8180", kind: String, val: "80"},
		{input: "C0", kind: List},
		{input: "C20102 FF", kind: List, val: "0102", rest: "FF"},

		// Non-canonical sizes.
		{input: "8100", err: ErrCanonSize, rest: "8100"},
		{input: "B800", err: ErrCanonSize, rest: "B800"},
		{input: "B837", err: ErrCanonSize, rest: "B837"},
		{input: "F800", err: ErrCanonSize, rest: "F800"},

		// Size claims beyond the input.
		{input: "", err: io.ErrUnexpectedEOF},
		{input: "B8", err: io.ErrUnexpectedEOF, rest: "B8"},
		{input: "81", err: ErrValueTooLarge, rest: "81"},
		{input: "C1", err: ErrValueTooLarge, rest: "C1"},
		{input: "C80102", err: ErrValueTooLarge, rest: "C80102"},
		{input: "B838" + "00", err: ErrValueTooLarge, rest: "B83800"},
	}
	for i, test := range tests {
		kind, val, rest, err := Split(unhex(test.input))
		if kind != test.kind {
			t.Errorf("test %d: kind mismatch: got %v, want %v", i, kind, test.kind)
		}
		if !bytes.Equal(val, unhex(test.val)) {
			t.Errorf("test %d: val mismatch: got %x, want %s", i, val, test.val)
		}
		if !bytes.Equal(rest, unhex(test.rest)) {
			t.Errorf("test %d: rest mismatch: got %x, want %s", i, rest, test.rest)
		}
		if err != test.err {
			t.Errorf("test %d: error mismatch: got %q, want %q", i, err, test.err)
		}
	}
}

func TestSplitTypes(t *testing.T) {
	if _, _, err := SplitList(unhex("01")); err != ErrExpectedList {
		t.Errorf("SplitList returned %q, want %q", err, ErrExpectedList)
	}
	if _, _, err := SplitList(unhex("81FF")); err != ErrExpectedList {
		t.Errorf("SplitList returned %q, want %q", err, ErrExpectedList)
	}
	content, rest, err := SplitList(unhex("C483646F6701"))
	if err != nil || !bytes.Equal(content, unhex("83646F67")) || !bytes.Equal(rest, unhex("01")) {
		t.Errorf("SplitList returned %x %x %v", content, rest, err)
	}
}
