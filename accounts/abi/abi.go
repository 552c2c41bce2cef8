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

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

// The ABI holds information about a contract's context and available
// invocable methods. It will allow you to type check function calls and
// packs data accordingly.
// ABI 包含有关合约上下文和可用可调用方法的信息。它将允许您对函数调用进行类型检查并相应地打包数据。
type ABI struct {
	Constructor Method
	Methods     map[string]Method
	Events      map[string]Event
	Errors      map[string]Error

	// Additional "special" functions introduced in solidity v0.6.0.
	// It's separated from the original default fallback. Each contract
	// can only define one fallback and receive function.
	Fallback Method // Note it's also used to represent legacy fallback before v0.6.0
	Receive  Method
}

// JSON returns a parsed ABI interface and error if it failed.
// JSON 返回解析后的 ABI 接口，如果失败则返回错误。
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// Pack the given method name to conform the ABI. Method call's data
// will consist of method_id, args0, arg1, ... argN. Method id consists
// of 4 bytes and arguments are all 32 bytes.
// Method ids are created from the first 4 bytes of the hash of the
// methods string signature. (signature = baz(uint32,string32))
// Pack 将给定的方法名称打包以符合 ABI。方法调用的数据将包括 method_id、args0、arg1 ... argN。
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	if name == "" {
		// constructor
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, exist := abi.Methods[name]
	if !exist {
		return nil, errs.NewInvalidArgument(fmt.Sprintf("method '%s' not found", name), "name", name)
	}
	arguments, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	// Pack up the method ID too if not a constructor and return
	return append(common.CopyBytes(method.ID), arguments...), nil
}

func (abi ABI) getArguments(name string, data []byte) (Arguments, error) {
	// since there can't be naming collisions with contracts and events,
	// we need to decide whether we're calling a method, event or an error
	var args Arguments
	if method, ok := abi.Methods[name]; ok {
		if len(data)%WordSize != 0 {
			return nil, errs.NewInvalidArgument("abi: improperly formatted output", "data", data)
		}
		args = method.Outputs
	}
	if event, ok := abi.Events[name]; ok {
		args = event.Inputs
	}
	if err, ok := abi.Errors[name]; ok {
		args = err.Inputs
	}
	if args == nil {
		return nil, errs.NewInvalidArgument(fmt.Sprintf("abi: could not locate named method, event or error: %s", name), "name", name)
	}
	return args, nil
}

// Unpack unpacks the output according to the abi specification.
// Unpack 根据 ABI 规范解包输出。
func (abi ABI) Unpack(name string, data []byte) (*Result, error) {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// UnpackIntoInterface unpacks the output in v according to the abi specification.
// It performs an additional copy. Please only use, if you want to unpack into a
// structure that does not strictly conform to the abi structure (e.g. has additional arguments)
// UnpackIntoInterface 根据 ABI 规范将输出解包到 v 中。
func (abi ABI) UnpackIntoInterface(v interface{}, name string, data []byte) error {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return err
	}
	unpacked, err := args.Unpack(data)
	if err != nil {
		return err
	}
	return args.NonIndexed().Copy(v, unpacked)
}

// UnpackIntoMap unpacks a log into the provided map[string]interface{}.
// UnpackIntoMap 将日志解包到提供的 map[string]interface{} 中。
func (abi ABI) UnpackIntoMap(v map[string]interface{}, name string, data []byte) (err error) {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return err
	}
	return args.UnpackIntoMap(v, data)
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 实现 json.Unmarshaler 接口。
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []struct {
		Type    string
		Name    string
		Inputs  []Argument
		Outputs []Argument

		// Status indicator which can be: "pure", "view",
		// "nonpayable" or "payable".
		StateMutability string

		// Deprecated Status indicators, but removed in v0.6.0.
		Constant bool // True if function is either pure or view
		Payable  bool // True if function is payable

		// Event relevant indicator represents the event is
		// declared as anonymous.
		Anonymous bool
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	abi.Methods = make(map[string]Method)
	abi.Events = make(map[string]Event)
	abi.Errors = make(map[string]Error)
	for _, field := range fields {
		switch field.Type {
		case "constructor":
			abi.Constructor = NewMethod("", "", Constructor, field.StateMutability, field.Constant, field.Payable, field.Inputs, nil)
		case "function":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			abi.Methods[name] = NewMethod(name, field.Name, Function, field.StateMutability, field.Constant, field.Payable, field.Inputs, field.Outputs)
		case "fallback":
			// New introduced function type in v0.6.0, check more detail
			// here https://solidity.readthedocs.io/en/v0.6.0/contracts.html#fallback-function
			if abi.HasFallback() {
				return errs.New(errs.InvalidArgument, "only single fallback is allowed", nil)
			}
			abi.Fallback = NewMethod("", "", Fallback, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "receive":
			if abi.HasReceive() {
				return errs.New(errs.InvalidArgument, "only single receive is allowed", nil)
			}
			if field.StateMutability != "payable" {
				return errs.New(errs.InvalidArgument, "the statemutability of receive can only be payable", nil)
			}
			abi.Receive = NewMethod("", "", Receive, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "event":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
			abi.Events[name] = NewEvent(name, field.Name, field.Anonymous, field.Inputs)
		case "error":
			// Errors cannot be overloaded or overridden but are inherited,
			// no need to resolve the name conflict here.
			abi.Errors[field.Name] = NewError(field.Name, field.Inputs)
		default:
			return errs.NewInvalidArgument(fmt.Sprintf("abi: could not recognize type %v of field %v", field.Type, field.Name), "type", field.Type)
		}
	}
	return nil
}

// MethodById looks up a method by the 4-byte id,
// returns nil if none found.
// MethodById 通过 4 字节 ID 查找方法，如果未找到则返回 nil。
func (abi *ABI) MethodById(sigdata []byte) (*Method, error) {
	if len(sigdata) < 4 {
		return nil, errs.NewBufferOverrun(fmt.Sprintf("data too short (%d bytes) for abi method lookup", len(sigdata)), sigdata, 4, len(sigdata))
	}
	for _, method := range abi.Methods {
		if bytes.Equal(method.ID, sigdata[:4]) {
			return &method, nil
		}
	}
	return nil, errs.NewInvalidArgument(fmt.Sprintf("no method with id: %#x", sigdata[:4]), "sigdata", sigdata[:4])
}

// EventByID looks an event up by its topic hash in the
// ABI and returns nil if none found.
func (abi *ABI) EventByID(topic common.Hash) (*Event, error) {
	for _, event := range abi.Events {
		if event.ID == topic {
			return &event, nil
		}
	}
	return nil, errs.NewInvalidArgument(fmt.Sprintf("no event with id: %s", topic.Hex()), "topic", topic)
}

// ErrorByID looks up an error by the 4-byte id,
// returns nil if none found.
// ErrorByID 通过 4 字节 ID 查找错误，如果未找到则返回 nil。
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, errABI := range abi.Errors {
		if bytes.Equal(errABI.ID[:4], sigdata[:]) {
			return &errABI, nil
		}
	}
	return nil, errs.NewInvalidArgument(fmt.Sprintf("no error with id: %#x", sigdata[:]), "sigdata", sigdata[:])
}

// HasFallback returns an indicator whether a fallback function is included.
func (abi *ABI) HasFallback() bool {
	return abi.Fallback.Type == Fallback
}

// HasReceive returns an indicator whether a receive function is included.
func (abi *ABI) HasReceive() bool {
	return abi.Receive.Type == Receive
}

// ResolveNameConflict returns the next available name for a given thing.
// In solidity function overloading is supported, this function can fix
// the name conflicts of overloaded functions.
//
// Name conflicts are mostly resolved by adding number suffix. e.g. if the abi contains
// Methods "send" and "send1", ResolveNameConflict would return "send2" for input "send".
// ResolveNameConflict 返回给定事物的下一个可用名称，通过添加数字后缀解决名称冲突。
func ResolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// revertSelector is a special function selector for revert reason unpacking.
var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// panicSelector is a special function selector for panic reason unpacking.
var panicSelector = crypto.Keccak256([]byte("Panic(uint256)"))[:4]

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

func invalidRevertData(data []byte) error {
	return errs.NewInvalidArgument("invalid data for unpacking", "data", data)
}

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`. So it's a special tool for it.
// UnpackRevert 解析 ABI 编码的 revert 原因，它被编码为如同调用函数 `Error(string)` 或 `Panic(uint256)`。
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", invalidRevertData(data)
	}
	var kind string
	switch {
	case bytes.Equal(data[:4], revertSelector):
		kind = "string"
	case bytes.Equal(data[:4], panicSelector):
		kind = "uint256"
	default:
		return "", invalidRevertData(data)
	}
	typ, err := NewType(kind, "", nil)
	if err != nil {
		return "", err
	}
	unpacked, err := (Arguments{{Type: typ}}).Unpack(data[4:])
	if err != nil {
		return "", err
	}
	value, err := unpacked.Index(0)
	if err != nil {
		return "", err
	}
	if reason, ok := value.(string); ok {
		return reason, nil
	}
	pCode := value.(*big.Int)
	if pCode.IsUint64() {
		if reason, ok := panicReasons[pCode.Uint64()]; ok {
			return reason, nil
		}
	}
	return fmt.Sprintf("unknown panic code: %#x", pCode), nil
}

// UnpackRevert resolves revert data against the custom errors of the ABI before
// falling back to the builtin Error(string) and Panic(uint256). A custom error is
// rendered as its name followed by the decoded arguments.
// UnpackRevert 先根据 ABI 的自定义错误解析 revert 数据，然后回退到内置的 Error(string) 和 Panic(uint256)。
func (abi *ABI) UnpackRevert(data []byte) (string, error) {
	if len(data) >= 4 {
		var id [4]byte
		copy(id[:], data[:4])
		if errABI, err := abi.ErrorByID(id); err == nil {
			result, err := errABI.Unpack(data)
			if err != nil {
				return "", err
			}
			values := make([]string, result.Len())
			for i := range values {
				v, err := result.Index(i)
				if err != nil {
					return "", err
				}
				values[i] = formatValue(v)
			}
			return fmt.Sprintf("%s(%s)", errABI.Name, strings.Join(values, ", ")), nil
		}
	}
	return UnpackRevert(data)
}
