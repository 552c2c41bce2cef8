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

package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			NewBufferOverrun("child data too short", []byte{0xc8, 0x88}, 0, 8),
			`child data too short (buffer="0xc888", offset=0, length=8, code=BUFFER_OVERRUN)`,
		},
		{
			NewInvalidArgument("unexpected junk after rlp payload", "data", "0x0042"),
			`unexpected junk after rlp payload (argument="data", value="0x0042", code=INVALID_ARGUMENT)`,
		},
		{
			NewNumericFault("unsigned value cannot be negative", "overflow", "toBeHex", nil),
			`unsigned value cannot be negative (fault="overflow", operation="toBeHex", code=NUMERIC_FAULT)`,
		},
		{
			NewUnsupported("missing provider", "estimateGas"),
			`missing provider (operation="estimateGas", code=UNSUPPORTED_OPERATION)`,
		},
	}
	for i, test := range tests {
		if have := test.err.Error(); have != test.want {
			t.Errorf("test %d: message mismatch\nhave %s\nwant %s", i, have, test.want)
		}
	}
}

func TestCodeThroughWrapping(t *testing.T) {
	inner := NewBufferOverrun("data too short", nil, 1, 0)
	wrapped := fmt.Errorf("decoding transaction: %w", inner)

	if !IsError(wrapped, BufferOverrun) {
		t.Fatalf("wrapped error lost its code")
	}
	if IsError(wrapped, InvalidArgument) {
		t.Fatalf("wrong code matched")
	}
	if !errors.Is(wrapped, &Error{Code: BufferOverrun}) {
		t.Fatalf("errors.Is by code failed")
	}
	if errors.Is(wrapped, &Error{Code: BufferOverrun, ShortMessage: "other"}) {
		t.Fatalf("errors.Is matched a different message")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain error carries a code")
	}
}

func TestCheckArgumentCount(t *testing.T) {
	if err := CheckArgumentCount(2, 2, "types"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := CheckArgumentCount(1, 2, "types")
	if !IsError(err, MissingArgument) || !strings.HasPrefix(err.Error(), "missing argument: types") {
		t.Fatalf("wrong error for missing: %v", err)
	}
	err = CheckArgumentCount(3, 2, "")
	if !IsError(err, UnexpectedArgument) || !strings.HasPrefix(err.Error(), "too many arguments (") {
		t.Fatalf("wrong error for unexpected: %v", err)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(NetworkError, "could not reach node", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), `error="connection refused"`) {
		t.Fatalf("cause missing from message: %s", err)
	}
}
