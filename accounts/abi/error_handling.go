// Copyright 2016 The go-ethereum Authors
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
	"errors"
	"fmt"
)

var (
	// errBadBool is returned when a boolean value is improperly encoded.
	// errBadBool 在布尔值编码不正确时返回。
	errBadBool = errors.New("abi: improperly encoded boolean value")

	// errBadAddress is returned when the padding of an address word is not zero.
	// errBadAddress 在地址字的填充不为零时返回。
	errBadAddress = errors.New("abi: improperly encoded address value")

	// errBadFixedBytes is returned when the padding of a bytes<M> word is not zero.
	errBadFixedBytes = errors.New("abi: improperly encoded fixed bytes value")
)

// DeferredError stands in for a value that could not be decoded. It is stored in
// the Result in place of the value and surfaces when the value is accessed.
// DeferredError 代替无法解码的值。它存储在 Result 中值的位置，并在访问该值时显现。
type DeferredError struct {
	BaseType string // coder family, e.g. "uint" or "tuple"
	Name     string // field name, empty for positional values
	Type     string // canonical type string
	Err      error
}

func (e *DeferredError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("deferred error during ABI decoding of %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("deferred error during ABI decoding of %s %s: %v", e.Type, e.Name, e.Err)
}

func (e *DeferredError) Unwrap() error { return e.Err }
