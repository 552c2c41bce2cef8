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
	"math/big"
	"reflect"
	"strings"

	"github.com/sunyihoo/goethers/errs"
)

var bigIntType = reflect.TypeOf(big.Int{})

func structErr(msg string, value interface{}) error {
	return errs.NewInvalidArgument(msg, "struct", value)
}

// structValues lists the fields of a struct value in the order of the tuple
// names, pairing them up the way mapArgNamesToStructFields does.
// structValues 按元组名称的顺序列出结构体值的字段。
func structValues(names []string, value reflect.Value) ([]interface{}, error) {
	abi2struct, err := mapArgNamesToStructFields(names, value)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(names))
	for i, name := range names {
		field := value.FieldByName(abi2struct[name])
		if !field.IsValid() {
			return nil, structErr(fmt.Sprintf("abi: field %s can't be found in the given value", name), value.Interface())
		}
		values[i] = field.Interface()
	}
	return values, nil
}

// set attempts to assign the decoded src to dst by either setting, copying or
// converting.
//
// set is a bit more lenient when it comes to assignment and doesn't force an as
// strict ruleset as bare `reflect` does: a nested *Result fills structs, slices
// and arrays, and *big.Int fills any Go integer it fits into.
//
// set 尝试通过设置、复制或转换将解码后的 src 赋值给 dst。
// set 在赋值时比纯粹的 `reflect` 更宽松：嵌套的 *Result 可以填充结构体、切片和数组，
// *big.Int 可以填充任何能容纳它的 Go 整数。
func set(dst reflect.Value, src interface{}) error {
	if result, ok := src.(*Result); ok && dst.Kind() != reflect.Interface {
		if dst.Kind() == reflect.Ptr {
			if dst.IsNil() {
				dst.Set(reflect.New(dst.Type().Elem()))
			}
			return set(dst.Elem(), src)
		}
		return setResult(dst, result)
	}
	sv := reflect.ValueOf(src)
	dstType := dst.Type()
	switch {
	case sv.IsValid() && sv.Type().AssignableTo(dstType) && dst.CanSet():
		dst.Set(sv)
	case dstType.Kind() == reflect.Ptr && dstType.Elem() != bigIntType:
		if dst.IsNil() {
			dst.Set(reflect.New(dstType.Elem()))
		}
		return set(dst.Elem(), src)
	case isIntegerKind(dstType.Kind()):
		n, ok := src.(*big.Int)
		if !ok {
			return cannotUnmarshal(src, dstType)
		}
		return setInteger(dst, n)
	case dstType.Kind() == reflect.Array && sv.Kind() == reflect.Slice:
		return setArray(dst, sv)
	case dstType.Kind() == reflect.Slice && sv.Kind() == reflect.Slice:
		return setSlice(dst, sv)
	default:
		return cannotUnmarshal(src, dstType)
	}
	return nil
}

func cannotUnmarshal(src interface{}, dst reflect.Type) error {
	return errs.NewInvalidArgument(fmt.Sprintf("abi: cannot unmarshal %T in to %v", src, dst), "value", src)
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// setInteger stores n into a Go integer, failing if it does not fit.
func setInteger(dst reflect.Value, n *big.Int) error {
	bits := uint(dst.Type().Bits())
	switch dst.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n.Sign() < 0 || n.BitLen() > int(bits) {
			return errs.NewNumericFault("value out-of-bounds", "overflow", "set", n.String())
		}
		dst.SetUint(n.Uint64())
	default:
		bound := new(big.Int).Lsh(big.NewInt(1), bits-1)
		if n.Cmp(bound) >= 0 || n.Cmp(new(big.Int).Neg(bound)) < 0 {
			return errs.NewNumericFault("value out-of-bounds", "overflow", "set", n.String())
		}
		dst.SetInt(n.Int64())
	}
	return nil
}

// setSlice attempts to assign src to dst when slices are not assignable by default
// e.g. src: [][]byte -> dst: [][15]byte
// setSlice 在切片默认不可赋值时尝试将 src 赋值给 dst
// 例如 src: [][]byte -> dst: [][15]byte
func setSlice(dst, src reflect.Value) error {
	slice := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		if err := set(slice.Index(i), src.Index(i).Interface()); err != nil {
			return err
		}
	}
	dst.Set(slice)
	return nil
}

// setArray fills a fixed array, typically [N]byte from decoded bytes<N>.
func setArray(dst, src reflect.Value) error {
	if src.Len() != dst.Len() {
		return cannotUnmarshal(src.Interface(), dst.Type())
	}
	array := reflect.New(dst.Type()).Elem()
	for i := 0; i < src.Len(); i++ {
		if err := set(array.Index(i), src.Index(i).Interface()); err != nil {
			return err
		}
	}
	dst.Set(array)
	return nil
}

// setResult spreads a decoded tuple or array over a struct, slice or array.
// Deferred errors surface here when the position is copied.
// setResult 将解码后的元组或数组分散到结构体、切片或数组中。
func setResult(dst reflect.Value, src *Result) error {
	switch dst.Kind() {
	case reflect.Struct:
		abi2struct, err := mapArgNamesToStructFields(src.Names(), dst)
		if err != nil {
			return err
		}
		for i, name := range src.Names() {
			field := dst.FieldByName(abi2struct[name])
			if !field.IsValid() {
				return structErr(fmt.Sprintf("abi: field %s can't be found in the given value", name), name)
			}
			value, err := src.Index(i)
			if err != nil {
				return err
			}
			if err := set(field, value); err != nil {
				return err
			}
		}
	case reflect.Slice:
		slice := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		if err := setElements(slice, src); err != nil {
			return err
		}
		dst.Set(slice)
	case reflect.Array:
		if dst.Len() != src.Len() {
			return errs.CheckArgumentCount(src.Len(), dst.Len(), "abi: unpack into array")
		}
		return setElements(dst, src)
	default:
		return cannotUnmarshal(src, dst.Type())
	}
	return nil
}

func setElements(dst reflect.Value, src *Result) error {
	for i := 0; i < src.Len(); i++ {
		value, err := src.Index(i)
		if err != nil {
			return err
		}
		if err := set(dst.Index(i), value); err != nil {
			return err
		}
	}
	return nil
}

// mapArgNamesToStructFields maps a slice of argument names to struct fields.
//
// first round: for each Exportable field that contains a `abi:""` tag and this field name
// exists in the given argument name list, pair them together.
//
// second round: for each argument name that has not been already linked, find what
// variable is expected to be mapped into, if it exists and has not been used, pair them.
//
// Note this function assumes the given value is a struct value.
// mapArgNamesToStructFields 将参数名称切片映射到结构体字段。
//
// 第一轮：对于每个包含 `abi:""` 标签的可导出字段，如果该字段名称存在于给定的参数名称列表中，将它们配对。
//
// 第二轮：对于每个尚未链接的参数名称，找到预期映射到的变量，如果它存在且未被使用，将它们配对。
func mapArgNamesToStructFields(argNames []string, value reflect.Value) (map[string]string, error) {
	typ := value.Type()

	abi2struct := make(map[string]string)
	struct2abi := make(map[string]string)

	// first round ~~~
	for i := 0; i < typ.NumField(); i++ {
		structFieldName := typ.Field(i).Name

		// skip private struct fields.
		if structFieldName[:1] != strings.ToUpper(structFieldName[:1]) {
			continue
		}
		tagName, ok := typ.Field(i).Tag.Lookup("abi")
		if !ok {
			continue
		}
		if tagName == "" {
			return nil, structErr(fmt.Sprintf("struct: abi tag in '%s' is empty", structFieldName), typ.String())
		}
		found := false
		for _, arg := range argNames {
			if arg == tagName {
				if abi2struct[arg] != "" {
					return nil, structErr(fmt.Sprintf("struct: abi tag in '%s' already mapped", structFieldName), typ.String())
				}
				abi2struct[arg] = structFieldName
				struct2abi[structFieldName] = arg
				found = true
			}
		}
		if !found {
			return nil, structErr(fmt.Sprintf("struct: abi tag '%s' defined but not found in abi", tagName), typ.String())
		}
	}

	// second round ~~~
	for _, argName := range argNames {
		structFieldName := ToCamelCase(argName)

		if structFieldName == "" {
			return nil, structErr("abi: purely underscored output cannot unpack to struct", typ.String())
		}

		// this abi has already been paired, skip it... unless there exists another, yet unassigned
		// struct field with the same field name. If so, raise an error:
		//    abi: [ { "name": "value" } ]
		//    struct { Value  *big.Int , Value1 *big.Int `abi:"value"`}
		if abi2struct[argName] != "" {
			if abi2struct[argName] != structFieldName &&
				struct2abi[structFieldName] == "" &&
				value.FieldByName(structFieldName).IsValid() {
				return nil, structErr(fmt.Sprintf("abi: multiple variables maps to the same abi field '%s'", argName), typ.String())
			}
			continue
		}

		if struct2abi[structFieldName] != "" {
			return nil, structErr(fmt.Sprintf("abi: multiple outputs mapping to the same struct field '%s'", structFieldName), typ.String())
		}

		if value.FieldByName(structFieldName).IsValid() {
			abi2struct[argName] = structFieldName
			struct2abi[structFieldName] = argName
		} else {
			// not paired, but annotate as used, to detect cases like
			//   abi : [ { "name": "value" }, { "name": "_value" } ]
			//   struct { Value *big.Int }
			struct2abi[structFieldName] = argName
		}
	}
	return abi2struct, nil
}
