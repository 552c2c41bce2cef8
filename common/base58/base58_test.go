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

package base58

import (
	"encoding/hex"
	"testing"

	"github.com/sunyihoo/goethers/errs"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		input string // hex
		want  string
	}{
		{"", ""},
		{"00", "1"},
		{"0000", "11"},
		{"39", "z"},
		{"3a", "21"},
		{"61", "2g"},
		{"626262", "a3gV"},
		{"636363", "aPEr"},
		{"00010966776006953d5567439e5e39f86a0d273beed61967f6", "16UwLL9Risc3QfPqBUvKofHmBQ7wMtjvM"},
	}
	for _, test := range tests {
		data, _ := hex.DecodeString(test.input)
		if have := Encode(data); have != test.want {
			t.Errorf("Encode(%s): have %q want %q", test.input, have, test.want)
		}
	}
}

func TestDecode(t *testing.T) {
	for _, s := range []string{"z", "21", "a3gV", "16UwLL9Risc3QfPqBUvKofHmBQ7wMtjvM"} {
		n, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		// leading '1's carry no numeric value, so compare on the trimmed encoding
		if have := Encode(n.Bytes()); have != trimOnes(s) {
			t.Errorf("round trip of %q gave %q", s, have)
		}
	}
	for _, s := range []string{"0", "O", "I", "l", "abc+"} {
		if _, err := Decode(s); !errs.IsError(err, errs.InvalidArgument) {
			t.Errorf("Decode(%q): expected INVALID_ARGUMENT, got %v", s, err)
		}
	}
}

func trimOnes(s string) string {
	for len(s) > 0 && s[0] == '1' {
		s = s[1:]
	}
	return s
}
