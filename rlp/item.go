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

package rlp

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
)

// Kind represents the kind of value contained in an RLP stream.
// Kind 表示 RLP 流中包含的值的类型。
type Kind int8

const (
	Byte Kind = iota
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// Item is a node of an RLP tree: either a string holding a byte sequence or a list
// of child items. The zero Item is the empty string.
// Item 是 RLP 树的节点：要么是持有字节序列的字符串，要么是子项列表。零值 Item 是空字符串。
type Item struct {
	list  bool
	str   []byte
	items []Item
}

// NewString returns a string item holding b.
func NewString(b []byte) Item {
	return Item{str: b}
}

// NewList returns a list item with the given children.
func NewList(items ...Item) Item {
	if items == nil {
		items = []Item{}
	}
	return Item{list: true, items: items}
}

// NewUint returns the canonical string item for an unsigned integer.
func NewUint(i uint64) Item {
	if i == 0 {
		return Item{}
	}
	var b [8]byte
	n := putint(b[:], i)
	return Item{str: append([]byte{}, b[:n]...)}
}

// NewBig returns the canonical string item for a non-negative big integer. A nil
// value is the empty string.
func NewBig(i *big.Int) Item {
	if i == nil {
		return Item{}
	}
	return Item{str: i.Bytes()}
}

// IsList reports whether the item is a list.
func (it Item) IsList() bool { return it.list }

// Kind returns String or List. Single bytes are reported as String, the encoding
// decides whether the short form is used.
func (it Item) Kind() Kind {
	if it.list {
		return List
	}
	return String
}

// Bytes returns the content of a string item, nil for lists.
func (it Item) Bytes() []byte { return it.str }

// Items returns the children of a list item, nil for strings.
func (it Item) Items() []Item { return it.items }

// Len returns the number of bytes of a string or the number of children of a list.
func (it Item) Len() int {
	if it.list {
		return len(it.items)
	}
	return len(it.str)
}

// Equal reports whether two item trees are identical.
// Equal 报告两个项树是否相同。
func (it Item) Equal(other Item) bool {
	if it.list != other.list {
		return false
	}
	if !it.list {
		return bytes.Equal(it.str, other.str)
	}
	if len(it.items) != len(other.items) {
		return false
	}
	for i := range it.items {
		if !it.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Uint64 interprets a string item as a canonical big endian integer.
// Uint64 将字符串项解释为规范的大端整数。
func (it Item) Uint64() (uint64, error) {
	if it.list {
		return 0, ErrExpectedString
	}
	switch n := len(it.str); {
	case n == 0:
		return 0, nil
	case n > 8:
		return 0, errUintOverflow
	case it.str[0] == 0:
		return 0, ErrCanonInt
	default:
		var x uint64
		for _, b := range it.str {
			x = x<<8 | uint64(b)
		}
		return x, nil
	}
}

// BigInt interprets a string item as a canonical big endian integer.
func (it Item) BigInt() (*big.Int, error) {
	if it.list {
		return nil, ErrExpectedString
	}
	if len(it.str) > 0 && it.str[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(big.Int).SetBytes(it.str), nil
}

// String renders the item as nested JSON-style arrays of hex strings, for example
// ["0x4243",["0x"]].
func (it Item) String() string {
	var sb strings.Builder
	it.writeTo(&sb)
	return sb.String()
}

func (it Item) writeTo(sb *strings.Builder) {
	if !it.list {
		sb.WriteString(`"0x`)
		sb.WriteString(hex.EncodeToString(it.str))
		sb.WriteByte('"')
		return
	}
	sb.WriteByte('[')
	for i, child := range it.items {
		if i > 0 {
			sb.WriteByte(',')
		}
		child.writeTo(sb)
	}
	sb.WriteByte(']')
}

// MarshalJSON encodes the tree as nested arrays of 0x-prefixed hex strings.
func (it Item) MarshalJSON() ([]byte, error) {
	return []byte(it.String()), nil
}

// UnmarshalJSON parses nested arrays of 0x-prefixed hex strings.
// UnmarshalJSON 解析嵌套的带 0x 前缀十六进制字符串数组。
func (it *Item) UnmarshalJSON(input []byte) error {
	var raw interface{}
	if err := json.Unmarshal(input, &raw); err != nil {
		return err
	}
	item, err := itemFromJSON(raw)
	if err != nil {
		return err
	}
	*it = item
	return nil
}

func itemFromJSON(v interface{}) (Item, error) {
	switch v := v.(type) {
	case string:
		if len(v) < 2 || v[:2] != "0x" {
			return Item{}, errors.New("rlp: json string without 0x prefix")
		}
		b, err := hex.DecodeString(v[2:])
		if err != nil {
			return Item{}, err
		}
		return NewString(b), nil
	case []interface{}:
		items := make([]Item, len(v))
		for i, child := range v {
			item, err := itemFromJSON(child)
			if err != nil {
				return Item{}, err
			}
			items[i] = item
		}
		return NewList(items...), nil
	}
	return Item{}, errors.New("rlp: json value must be a hex string or an array")
}
