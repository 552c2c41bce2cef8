// Copyright 2014 The go-ethereum Authors
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
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/errs"
)

var (
	// Common encoded values.
	// These are useful when implementing EncodeRLP.

	// EmptyString is the encoding of an empty string.
	// EmptyString 是空字符串的编码。
	EmptyString = []byte{0x80}
	// EmptyList is the encoding of an empty list.
	// EmptyList 是空列表的编码。
	EmptyList = []byte{0xC0}
)

// ErrNegativeBigInt is returned when encoding a negative big integer.
var ErrNegativeBigInt = errors.New("rlp: cannot encode negative big.Int")

// Encoder is implemented by types that require custom encoding rules or want to
// encode private fields.
// Encoder 由需要自定义编码规则或希望编码私有字段的类型实现。
type Encoder interface {
	// EncodeRLP returns the item tree representing the receiver.
	EncodeRLP() (Item, error)
}

// Encode returns the RLP encoding of the item tree.
//
// A string of length one whose byte is below 0x80 is its own encoding. Other
// strings get a 0x80+len header (up to 55 bytes) or 0xB7+len(len) followed by the
// big endian length. Lists use the same scheme with 0xC0 and 0xF7 as base tags and
// the concatenated encoding of their children as payload.
//
// Encode 返回项树的 RLP 编码。
func Encode(item Item) []byte {
	return appendItem(make([]byte, 0, 64), item)
}

func appendItem(dst []byte, item Item) []byte {
	if !item.list {
		if len(item.str) == 1 && item.str[0] < 0x80 {
			return append(dst, item.str[0])
		}
		dst = appendHead(dst, 0x80, 0xB7, uint64(len(item.str)))
		return append(dst, item.str...)
	}
	var payload []byte
	for _, child := range item.items {
		payload = appendItem(payload, child)
	}
	dst = appendHead(dst, 0xC0, 0xF7, uint64(len(payload)))
	return append(dst, payload...)
}

func appendHead(dst []byte, smalltag, largetag byte, size uint64) []byte {
	var head [9]byte
	n := puthead(head[:], smalltag, largetag, size)
	return append(dst, head[:n]...)
}

// puthead writes a list or string header to buf.
// buf must be at least 9 bytes long.
// puthead 将列表或字符串头部写入 buf。buf 长度必须至少为 9 字节。
func puthead(buf []byte, smalltag, largetag byte, size uint64) int {
	if size < 56 {
		buf[0] = smalltag + byte(size)
		return 1
	}
	sizesize := putint(buf[1:], size)
	buf[0] = largetag + byte(sizesize)
	return sizesize + 1
}

// putint writes i to the beginning of b in big endian byte
// order, using the least number of bytes needed to represent i.
func putint(b []byte, i uint64) (size int) {
	size = intsize(i)
	for j := size - 1; j >= 0; j-- {
		b[j] = byte(i)
		i >>= 8
	}
	return size
}

// intsize computes the minimum number of bytes required to store i.
func intsize(i uint64) (size int) {
	for size = 1; ; size++ {
		if i >>= 8; i == 0 {
			return size
		}
	}
}

// EncodeToBytes returns the RLP encoding of val. Please see package-level
// documentation for the encoding rules.
// EncodeToBytes 返回 val 的 RLP 编码。
func EncodeToBytes(val interface{}) ([]byte, error) {
	item, err := ToItem(val)
	if err != nil {
		return nil, err
	}
	return Encode(item), nil
}

var (
	itemType     = reflect.TypeOf(Item{})
	bigInt       = reflect.TypeOf(big.Int{})
	u256Int      = reflect.TypeOf(uint256.Int{})
	encoderIface = reflect.TypeOf(new(Encoder)).Elem()
)

// ToItem converts a Go value into an item tree.
// ToItem 将 Go 值转换为项树。
func ToItem(val interface{}) (Item, error) {
	switch v := val.(type) {
	case Item:
		return v, nil
	case Encoder:
		return v.EncodeRLP()
	case []byte:
		return NewString(v), nil
	case string:
		return NewString([]byte(v)), nil
	case uint64:
		return NewUint(v), nil
	case *big.Int:
		return bigItem(v)
	case *uint256.Int:
		if v == nil {
			return Item{}, nil
		}
		return NewString(v.Bytes()), nil
	case []interface{}:
		items := make([]Item, len(v))
		for i, elem := range v {
			item, err := ToItem(elem)
			if err != nil {
				return Item{}, err
			}
			items[i] = item
		}
		return NewList(items...), nil
	case nil:
		return Item{}, unsupported(val)
	}
	return valueItem(reflect.ValueOf(val))
}

func bigItem(i *big.Int) (Item, error) {
	if i == nil {
		return Item{}, nil
	}
	if i.Sign() < 0 {
		return Item{}, ErrNegativeBigInt
	}
	return NewString(i.Bytes()), nil
}

func unsupported(val interface{}) error {
	return errs.NewInvalidArgument(fmt.Sprintf("rlp: type %T is not RLP-serializable", val), "object", val)
}

// valueItem is the reflection based fallback of ToItem.
func valueItem(val reflect.Value) (Item, error) {
	typ := val.Type()
	kind := typ.Kind()

	if kind != reflect.Ptr && val.CanAddr() && reflect.PointerTo(typ).Implements(encoderIface) {
		return val.Addr().Interface().(Encoder).EncodeRLP()
	}
	if typ.Implements(encoderIface) && !(kind == reflect.Ptr && val.IsNil()) {
		return val.Interface().(Encoder).EncodeRLP()
	}
	switch {
	case typ == itemType:
		return val.Interface().(Item), nil
	case typ == bigInt:
		v := val.Interface().(big.Int)
		return bigItem(&v)
	case typ == u256Int:
		v := val.Interface().(uint256.Int)
		return NewString(v.Bytes()), nil
	case kind == reflect.Ptr:
		if val.IsNil() {
			return nilItem(typ.Elem()), nil
		}
		return valueItem(val.Elem())
	case kind == reflect.Interface:
		if val.IsNil() {
			return NewList(), nil
		}
		return ToItem(val.Elem().Interface())
	case isUint(kind):
		return NewUint(val.Uint()), nil
	case kind == reflect.Bool:
		if val.Bool() {
			return NewString([]byte{0x01}), nil
		}
		return Item{}, nil
	case kind == reflect.String:
		return NewString([]byte(val.String())), nil
	case kind == reflect.Slice && isByte(typ.Elem()):
		return NewString(val.Bytes()), nil
	case kind == reflect.Array && isByte(typ.Elem()):
		b := make([]byte, val.Len())
		reflect.Copy(reflect.ValueOf(b), val)
		return NewString(b), nil
	case kind == reflect.Slice || kind == reflect.Array:
		items := make([]Item, val.Len())
		for i := range items {
			item, err := valueItem(val.Index(i))
			if err != nil {
				return Item{}, err
			}
			items[i] = item
		}
		return NewList(items...), nil
	case kind == reflect.Struct:
		var items []Item
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if !f.IsExported() || f.Tag.Get("rlp") == "-" {
				continue
			}
			item, err := valueItem(val.Field(i))
			if err != nil {
				return Item{}, fmt.Errorf("rlp: field %s.%s: %w", typ.Name(), f.Name, err)
			}
			items = append(items, item)
		}
		return NewList(items...), nil
	}
	return Item{}, unsupported(val.Interface())
}

// nilItem returns the encoding used for a nil pointer to typ.
func nilItem(typ reflect.Type) Item {
	switch typ.Kind() {
	case reflect.Struct, reflect.Interface:
		if typ == bigInt || typ == u256Int {
			return Item{}
		}
		return NewList()
	case reflect.Slice, reflect.Array:
		if isByte(typ.Elem()) {
			return Item{}
		}
		return NewList()
	}
	return Item{}
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isByte(typ reflect.Type) bool {
	return typ.Kind() == reflect.Uint8 && !typ.Implements(encoderIface)
}
