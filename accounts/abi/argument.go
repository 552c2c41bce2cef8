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
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/sunyihoo/goethers/errs"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 结构体保存参数的名称和对应的类型。这些类型在打包和测试参数时使用。
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events (仅适用于事件)
}

type Arguments []Argument

type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 方法实现了 json.Unmarshaler 接口。
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	argument.Type, err = NewType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed
	return nil
}

// NewArguments builds positional arguments from type strings such as
// "uint256" or "(address,bytes)[]".
// NewArguments 从类型字符串构建位置参数。
func NewArguments(types ...string) (Arguments, error) {
	args := make(Arguments, len(types))
	for i, t := range types {
		marshaling, err := parseParameter(t)
		if err != nil {
			return nil, err
		}
		typ, err := NewType(marshaling.Type, "", marshaling.Components)
		if err != nil {
			return nil, err
		}
		args[i] = Argument{Name: marshaling.Name, Type: typ}
	}
	return args, nil
}

// NonIndexed returns the arguments with indexed arguments filtered out.
// NonIndexed 方法返回过滤掉索引参数后的参数列表。
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

func (arguments Arguments) types() []*Type {
	types := make([]*Type, len(arguments))
	for i := range arguments {
		types[i] = &arguments[i].Type
	}
	return types
}

func (arguments Arguments) names() []string {
	names := make([]string, len(arguments))
	for i, arg := range arguments {
		names[i] = arg.Name
	}
	return names
}

// Sig returns the canonical type list, e.g. "(uint256,(address,bytes)[])".
func (arguments Arguments) Sig() string {
	kinds := make([]string, len(arguments))
	for i, arg := range arguments {
		kinds[i] = arg.Type.String()
	}
	return "(" + strings.Join(kinds, ",") + ")"
}

// Unpack performs the operation hexdata -> Go format. Values that fail to decode
// are reported through the returned Result; running out of data fails the call.
// Unpack 方法将 ABI 编码的十六进制数据解包为 Go 格式。
func (arguments Arguments) Unpack(data []byte) (*Result, error) {
	return arguments.unpack(data, false)
}

// UnpackLoose is like Unpack but tolerates non-zero padding, malformed booleans
// and a missing final padding after dynamic bytes.
func (arguments Arguments) UnpackLoose(data []byte) (*Result, error) {
	return arguments.unpack(data, true)
}

func (arguments Arguments) unpack(data []byte, loose bool) (*Result, error) {
	nonIndexed := arguments.NonIndexed()
	return unpack(newReader(data, loose), nonIndexed.types(), nonIndexed.names())
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to argument value.
// UnpackIntoMap 方法将 ABI 编码的十六进制数据解包为参数名到参数值的映射。
func (arguments Arguments) UnpackIntoMap(v map[string]interface{}, data []byte) error {
	// Make sure map is not nil 确保目标映射不为空。
	if v == nil {
		return errs.NewInvalidArgument("abi: cannot unpack into a nil map", "v", v)
	}
	result, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		value, err := result.Index(i)
		if err != nil {
			return err
		}
		v[arg.Name] = value
	}
	return nil
}

// Copy performs the operation decoded result -> provided Go value. A single
// argument is copied into v directly, or into its first field if v is a struct;
// several arguments are spread over a struct, slice or array.
// Copy 方法将解码结果复制到提供的 Go 值中。
func (arguments Arguments) Copy(v interface{}, values *Result) error {
	// make sure the passed value is arguments pointer 确保传入的值是指针类型。
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errs.NewInvalidArgument(fmt.Sprintf("abi: Unpack(non-pointer %T)", v), "v", v)
	}
	if values.Len() == 0 {
		if len(arguments.NonIndexed()) != 0 {
			return errs.CheckArgumentCount(0, len(arguments.NonIndexed()), "abi: attempting to copy no values while arguments are expected")
		}
		return nil
	}
	dst := rv.Elem()
	if values.Len() > 1 {
		return set(dst, values)
	}
	value, err := values.Index(0)
	if err != nil {
		return err
	}
	if dst.Kind() == reflect.Struct {
		if _, isTuple := value.(*Result); !isTuple {
			return set(dst.Field(0), value)
		}
	}
	return set(dst, value)
}

// PackValues performs the operation Go format -> Hexdata on a prepared list.
func (arguments Arguments) PackValues(args []interface{}) ([]byte, error) {
	return arguments.Pack(args...)
}

// Pack performs the operation Go format -> Hexdata. Each value may be a Go
// value of the matching shape, a *Result from a previous decode, or for tuples
// a map[string]interface{} keyed by component name.
// Pack 方法将 Go 格式的参数打包为 ABI 编码的十六进制数据。
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	if err := errs.CheckArgumentCount(len(args), len(arguments), "types/values length mismatch"); err != nil {
		return nil, err
	}
	w := new(writer)
	if err := pack(w, arguments.types(), arguments.names(), args); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// ToCamelCase converts an under-score string to a camel-case string.
// ToCamelCase 方法将下划线分隔的字符串转换为驼峰命名法的字符串。
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
