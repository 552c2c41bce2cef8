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
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/common/math"
	"github.com/sunyihoo/goethers/errs"
)

// coder is the encode/decode pair of one type kind.
type coder struct {
	encode func(t *Type, w *writer, name string, value interface{}) error
	decode func(t *Type, r *reader) (interface{}, error)
}

// coders is the function table indexed by Type.T. It is filled in init because
// the array and tuple coders recurse through it.
var coders [FunctionTy + 1]coder

func init() {
	coders = [FunctionTy + 1]coder{
		IntTy:        {encodeNumber, decodeNumber},
		UintTy:       {encodeNumber, decodeNumber},
		BoolTy:       {encodeBool, decodeBool},
		StringTy:     {encodeString, decodeString},
		SliceTy:      {encodeArray, decodeArray},
		ArrayTy:      {encodeArray, decodeArray},
		TupleTy:      {encodeTuple, decodeTuple},
		AddressTy:    {encodeAddress, decodeAddress},
		FixedBytesTy: {encodeFixedBytes, decodeFixedBytes},
		BytesTy:      {encodeBytes, decodeBytes},
		FunctionTy:   {encodeFixedBytes, decodeFixedBytes},
	}
}

func (t *Type) encode(w *writer, name string, value interface{}) error {
	return coders[t.T].encode(t, w, name, value)
}

func (t *Type) decode(r *reader) (interface{}, error) {
	return coders[t.T].decode(t, r)
}

// pack encodes values as one block: the head words of all types first, then the
// payloads of the dynamic ones. Each dynamic head word is an offset relative to
// the start of the block, patched in once the head length is known.
//
// (T1,...,Tk) for k >= 0 and any types T1, …, Tk
// enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
//
// pack 将 values 编码为一个块：先是所有类型的头部字，然后是动态类型的负载。
// 每个动态头部字是相对于块起点的偏移量，在头部长度已知后回填。
func pack(w *writer, types []*Type, names []string, values []interface{}) error {
	if len(types) != len(values) {
		return errs.NewInvalidArgument("types/value length mismatch", "tuple", values)
	}
	var (
		static  = new(writer)
		dynamic = new(writer)
		updates []func(int)
	)
	for i, typ := range types {
		name := nameAt(names, i)
		if !typ.dynamic {
			if err := typ.encode(static, name, values[i]); err != nil {
				return err
			}
			continue
		}
		offset := dynamic.length
		if err := typ.encode(dynamic, name, values[i]); err != nil {
			return err
		}
		update := static.writeUpdatableValue()
		updates = append(updates, func(base int) { update(base + offset) })
	}
	// Backfill the dynamic offsets now that the head length is known
	for _, update := range updates {
		update(static.length)
	}
	w.appendWriter(static)
	w.appendWriter(dynamic)
	return nil
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}

func argName(name string) string {
	if name == "" {
		return "value"
	}
	return name
}

func encodeNumber(t *Type, w *writer, name string, value interface{}) error {
	n, err := getInteger(value, argName(name))
	if err != nil {
		return err
	}
	if t.T == UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return outOfBounds(name, value)
		}
		v, _ := uint256.FromBig(n)
		w.writeValue(v)
		return nil
	}
	bound := new(big.Int).Lsh(common.Big1, uint(t.Size-1))
	if n.Cmp(bound) >= 0 || n.Cmp(new(big.Int).Neg(bound)) < 0 {
		return outOfBounds(name, value)
	}
	// two's complement over the full word
	v, _ := uint256.FromBig(new(big.Int).Abs(n))
	if n.Sign() < 0 {
		v.Neg(v)
	}
	w.writeValue(v)
	return nil
}

// getInteger accepts everything math.GetBigInt does plus Go integer kinds that
// are not spelled out there, such as named integer types.
func getInteger(value interface{}, name string) (*big.Int, error) {
	n, err := math.GetBigInt(value, name)
	if err == nil {
		return n, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, err
}

func outOfBounds(name string, value interface{}) error {
	err := errs.NewNumericFault("value out-of-bounds", "overflow", "encode", value)
	err.Argument = argName(name)
	return err
}

func encodeBool(t *Type, w *writer, name string, value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		if p, isPtr := value.(*bool); isPtr && p != nil {
			b, ok = *p, true
		}
	}
	if !ok {
		return errs.NewInvalidArgument("invalid boolean value", argName(name), value)
	}
	if b {
		w.writeValue(uint256.NewInt(1))
	} else {
		w.writeValue(new(uint256.Int))
	}
	return nil
}

func encodeAddress(t *Type, w *writer, name string, value interface{}) error {
	addr, err := toAddress(value, argName(name))
	if err != nil {
		return err
	}
	w.writeBytes(common.LeftPadBytes(addr.Bytes(), WordSize))
	return nil
}

func toAddress(value interface{}, name string) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v != nil {
			return *v, nil
		}
	case string:
		if common.IsHexAddress(v) {
			return common.HexToAddress(v), nil
		}
	case []byte:
		if len(v) == common.AddressLength {
			return common.BytesToAddress(v), nil
		}
	}
	return common.Address{}, errs.NewInvalidArgument("invalid address", name, value)
}

// toBytes normalizes a bytes-like value. Besides hexutil.GetBytes inputs it takes
// any byte array, such as [4]byte selectors.
func toBytes(value interface{}, name string) ([]byte, error) {
	b, err := hexutil.GetBytes(value, name)
	if err == nil {
		return b, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	}
	return nil, err
}

func encodeFixedBytes(t *Type, w *writer, name string, value interface{}) error {
	b, err := toBytes(value, argName(name))
	if err != nil {
		return err
	}
	if len(b) != t.Size {
		return errs.NewInvalidArgument("incorrect data length", argName(name), value)
	}
	w.writeBytes(b)
	return nil
}

func encodeBytes(t *Type, w *writer, name string, value interface{}) error {
	b, err := toBytes(value, argName(name))
	if err != nil {
		return err
	}
	w.writeValue(uint256.NewInt(uint64(len(b))))
	w.writeBytes(b)
	return nil
}

func encodeString(t *Type, w *writer, name string, value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errs.NewInvalidArgument("invalid string value", argName(name), value)
	}
	w.writeValue(uint256.NewInt(uint64(len(s))))
	w.writeBytes([]byte(s))
	return nil
}

func encodeArray(t *Type, w *writer, name string, value interface{}) error {
	values, ok, err := toList(value)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewInvalidArgument("expected array value", argName(name), value)
	}
	count := t.Size
	if t.T == SliceTy {
		count = len(values)
		w.writeValue(uint256.NewInt(uint64(count)))
	}
	msg := "coder array"
	if name != "" {
		msg += " " + name
	}
	if err := errs.CheckArgumentCount(len(values), count, msg); err != nil {
		return err
	}
	types := make([]*Type, len(values))
	for i := range types {
		types[i] = t.Elem
	}
	return pack(w, types, nil, values)
}

func encodeTuple(t *Type, w *writer, name string, value interface{}) error {
	values, err := tupleValues(t.TupleElems, t.TupleRawNames, value)
	if err != nil {
		return err
	}
	return pack(w, t.TupleElems, t.TupleRawNames, values)
}

// toList flattens a list-like value into its elements. Results, []interface{}
// and any Go slice or array are accepted; ok is false for everything else.
func toList(value interface{}) ([]interface{}, bool, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, true, nil
	case *Result:
		values, err := v.Values()
		return values, true, err
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false, nil
	}
	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true, nil
}

// tupleValues orders the value of a tuple positionally. A keyed value, given as
// map or struct, is looked up by field name; every field must then be named and
// names must be unique.
// tupleValues 按位置排列元组的值。以 map 或结构体给出的键控值按字段名查找；
// 此时每个字段都必须有名称且名称唯一。
func tupleValues(types []*Type, names []string, value interface{}) ([]interface{}, error) {
	if m, ok := value.(map[string]interface{}); ok {
		values := make([]interface{}, len(types))
		unique := make(map[string]bool, len(types))
		for i := range types {
			name := nameAt(names, i)
			if name == "" {
				return nil, &errs.Error{Code: errs.InvalidArgument, ShortMessage: "cannot encode object for signature with missing names", Argument: "values", Value: value}
			}
			if unique[name] {
				return nil, &errs.Error{Code: errs.InvalidArgument, ShortMessage: "cannot encode object for signature with duplicate names", Argument: "values", Value: value}
			}
			unique[name] = true
			values[i] = m[name]
		}
		if len(m) != len(types) {
			return nil, errs.NewInvalidArgument("types/value length mismatch", "tuple", value)
		}
		return values, nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if _, isResult := value.(*Result); !isResult && rv.Kind() == reflect.Struct {
		return structValues(names, rv)
	}
	values, ok, err := toList(value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewInvalidArgument("invalid tuple value", "tuple", value)
	}
	if len(values) != len(types) {
		return nil, errs.NewInvalidArgument("types/value length mismatch", "tuple", value)
	}
	return values, nil
}
