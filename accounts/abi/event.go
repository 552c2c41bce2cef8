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
	"fmt"
	"strings"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
)

// Event is an event potentially triggered by the EVM's LOG mechanism. The Event
// holds type information (inputs) about the yielded output. Anonymous events
// don't get the signature canonical representation as the first LOG topic.
// Event 是可能由 EVM 的 LOG 机制触发的事件。匿名事件不会将签名的规范表示作为第一个 LOG 主题。
type Event struct {
	// Name is the event name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of event overloading.
	Name string

	// RawName is the raw event name parsed from ABI.
	RawName   string
	Anonymous bool
	Inputs    Arguments
	str       string

	// Sig contains the string signature according to the ABI spec.
	// e.g.	 event foo(uint32 a, int b) = "foo(uint32,int256)"
	Sig string

	// ID is the keccak hash of Sig, emitted as the first topic of non-anonymous
	// events.
	ID common.Hash
}

// NewEvent creates a new Event. Unnamed inputs are named argN, and the id,
// signature and string representation are computed up front.
// NewEvent 创建一个新的 Event，并预先计算 ID、签名和字符串表示形式。
func NewEvent(name, rawName string, anonymous bool, inputs Arguments) Event {
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
		if input.Indexed {
			names[i] = fmt.Sprintf("%v indexed %v", input.Type, inputs[i].Name)
		}
		types[i] = input.Type.String()
	}
	sig := fmt.Sprintf("%v(%v)", rawName, strings.Join(types, ","))

	return Event{
		Name:      name,
		RawName:   rawName,
		Anonymous: anonymous,
		Inputs:    inputs,
		str:       fmt.Sprintf("event %v(%v)", rawName, strings.Join(names, ", ")),
		Sig:       sig,
		ID:        common.BytesToHash(crypto.Keccak256([]byte(sig))),
	}
}

// String returns the string representation of the event.
func (e Event) String() string {
	return e.str
}

// Unpack decodes the data section of a log emitted by the event. Indexed inputs
// live in the topics and are skipped.
// Unpack 解码事件发出的日志的数据部分。索引输入位于主题中，会被跳过。
func (e Event) Unpack(data []byte) (*Result, error) {
	return e.Inputs.NonIndexed().Unpack(data)
}
