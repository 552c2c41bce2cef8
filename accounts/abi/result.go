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

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/errs"
)

// Result is the decoded form of a tuple or an array. Each position holds either
// a value or a *DeferredError; the error only surfaces when the position is read.
//
// Values are typed as follows: integers as *big.Int, bool as bool, address as
// common.Address, bytes<M>, bytes and function as []byte, string as string and
// nested arrays and tuples as *Result.
//
// Result 是元组或数组的解码形式。每个位置保存一个值或一个 *DeferredError；
// 只有在读取该位置时才会显现错误。
type Result struct {
	values []interface{}
	names  []string // parallel to values, nil for arrays
}

// NewResult assembles a result from positional values and optional names.
func NewResult(values []interface{}, names []string) *Result {
	return &Result{values: values, names: names}
}

// Len returns the number of positions.
func (r *Result) Len() int { return len(r.values) }

// Names returns the field names; positions without a name hold "".
func (r *Result) Names() []string {
	names := make([]string, len(r.values))
	copy(names, r.names)
	return names
}

// Index returns the value at position i, or the error that replaced it.
// Index 返回位置 i 的值，或替代该值的错误。
func (r *Result) Index(i int) (interface{}, error) {
	if i < 0 || i >= len(r.values) {
		return nil, errs.NewInvalidArgument("index out of range", "index", i)
	}
	if err, ok := r.values[i].(*DeferredError); ok {
		return nil, err
	}
	return r.values[i], nil
}

// Get returns the value of the named field. Names occurring more than once are
// not addressable by name.
// Get 返回命名字段的值。出现多次的名称不能按名称寻址。
func (r *Result) Get(name string) (interface{}, error) {
	index := -1
	for i, n := range r.names {
		if n != name || name == "" {
			continue
		}
		if index != -1 {
			return nil, errs.NewInvalidArgument("ambiguous key", "name", name)
		}
		index = i
	}
	if index == -1 {
		return nil, errs.NewInvalidArgument("no named key", "name", name)
	}
	return r.Index(index)
}

// Values returns all positional values. It fails with the first deferred error.
// Values 返回所有位置值。遇到第一个延迟错误即失败。
func (r *Result) Values() ([]interface{}, error) {
	for _, v := range r.values {
		if err, ok := v.(*DeferredError); ok {
			return nil, err
		}
	}
	out := make([]interface{}, len(r.values))
	copy(out, r.values)
	return out, nil
}

// ToMap returns the fields keyed by name. Every position must be named.
// ToMap 返回按名称索引的字段。每个位置都必须有名称。
func (r *Result) ToMap() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(r.values))
	for i, v := range r.values {
		name := nameAt(r.names, i)
		if name == "" {
			return nil, errs.NewUnsupported("value at index "+strconv.Itoa(i)+" unnamed", "toMap")
		}
		if err, ok := v.(*DeferredError); ok {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// Equal reports whether both results hold the same names and values. Deferred
// errors compare by message.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if nameAt(r.names, i) != nameAt(other.names, i) {
			return false
		}
		if !equalValue(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func equalValue(a, b interface{}) bool {
	switch a := a.(type) {
	case *big.Int:
		b, ok := b.(*big.Int)
		return ok && a.Cmp(b) == 0
	case []byte:
		b, ok := b.([]byte)
		return ok && bytes.Equal(a, b)
	case *Result:
		b, ok := b.(*Result)
		return ok && a.Equal(b)
	case *DeferredError:
		b, ok := b.(*DeferredError)
		return ok && a.Error() == b.Error()
	}
	return reflect.DeepEqual(a, b)
}

// String renders the result for diagnostics, e.g. Result(2) [ 1, "0xab" ].
func (r *Result) String() string {
	items := make([]string, len(r.values))
	for i, v := range r.values {
		items[i] = formatValue(v)
		if name := nameAt(r.names, i); name != "" {
			items[i] = name + ": " + items[i]
		}
	}
	return fmt.Sprintf("Result(%d) [ %s ]", len(r.values), strings.Join(items, ", "))
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case []byte:
		return hexutil.Encode(v)
	case string:
		return strconv.Quote(v)
	case *DeferredError:
		return "<" + v.Error() + ">"
	}
	return fmt.Sprint(v)
}

// MarshalJSON encodes the result as a JSON array. Integers become decimal
// strings and byte values hex strings; deferred errors fail the encoding.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make([]interface{}, len(r.values))
	for i, v := range r.values {
		switch v := v.(type) {
		case *DeferredError:
			return nil, v
		case *big.Int:
			out[i] = v.String()
		case []byte:
			out[i] = hexutil.Bytes(v)
		default:
			out[i] = v
		}
	}
	return json.Marshal(out)
}
