// Copyright 2021 The go-ethereum Authors
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
	"fmt"
	"strings"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

// Error represents a custom error defined in the ABI, e.g.
// error InsufficientBalance(uint256 available, uint256 required).
// Error 表示在 ABI 中定义的自定义错误。
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g. error foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string

	// ID returns the canonical representation of the error's signature used by the
	// abi definition to identify event names and types.
	ID common.Hash
}

// NewError creates a new Error instance with the given name and inputs.
// Unnamed inputs are named argN so the decoded result can be addressed by name.
// NewError 使用给定的名称和输入参数创建一个新的 Error 实例。未命名的输入被命名为 argN。
func NewError(name string, inputs Arguments) Error {
	names := make([]string, len(inputs))
	types := make([]string, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			inputs[i] = Argument{
				Name:    fmt.Sprintf("arg%d", i),
				Indexed: input.Indexed,
				Type:    input.Type,
			}
		} else {
			inputs[i] = input
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, inputs[i].Name)
		types[i] = input.Type.String()
	}
	sig := fmt.Sprintf("%v(%v)", name, strings.Join(types, ","))

	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %v(%v)", name, strings.Join(names, ", ")),
		Sig:    sig,
		ID:     common.BytesToHash(crypto.Keccak256([]byte(sig))),
	}
}

// String returns the string representation of the error.
func (e Error) String() string {
	return e.str
}

// Selector returns the four byte identifier prefixed to encoded error data.
func (e Error) Selector() []byte {
	return common.CopyBytes(e.ID[:4])
}

// Unpack decodes revert data raised with this error. The data must start with
// the error's selector.
// Unpack 解码使用此错误引发的 revert 数据。数据必须以该错误的选择器开头。
func (e *Error) Unpack(data []byte) (*Result, error) {
	if len(data) < 4 {
		return nil, errs.NewBufferOverrun("insufficient data for unpacking", data, 4, len(data))
	}
	if !bytes.Equal(data[:4], e.ID[:4]) {
		return nil, errs.NewInvalidArgument(fmt.Sprintf("invalid identifier, have %#x want %#x", data[:4], e.ID[:4]), "data", data)
	}
	return e.Inputs.Unpack(data[4:])
}
