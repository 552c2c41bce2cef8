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
	"regexp"
	"strconv"
	"strings"

	"github.com/sunyihoo/goethers/errs"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	FunctionTy
)

// Type is the descriptor of an ABI type. It is immutable once built by NewType;
// whether the type is dynamic is decided at construction.
// Type 是 ABI 类型的描述符。由 NewType 构建后不可变；类型是否为动态在构造时确定。
type Type struct {
	Elem *Type // element type of arrays and slices
	Size int   // bit width of integers, byte width of fixed bytes, length of fixed arrays
	T    byte  // kind, one of the enumerator above

	stringKind string // canonical type string used in signatures
	dynamic    bool

	// Tuple relative fields
	TupleRawName  string   // struct name from the internalType, may be empty
	TupleElems    []*Type  // type information of all tuple fields
	TupleRawNames []string // raw field names of all tuple fields, may be empty
}

// elementaryRegex splits an elementary type into its base and its size suffix.
var elementaryRegex = regexp.MustCompile(`^([a-z]+)([0-9]*)$`)

func invalidType(t string) error {
	return errs.NewInvalidArgument("invalid type", "type", t)
}

// NewType creates a new type descriptor for the abi type given in t. Tuples take
// their fields from components. The shorthands int and uint stand for int256 and
// uint256.
// NewType 为 t 中给出的 ABI 类型创建新的类型描述符。元组的字段取自 components。
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	// check that array brackets are balanced if they exist
	// 检查数组括号是否平衡
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, invalidType(t)
	}
	if i := strings.LastIndex(t, "["); i != -1 {
		if !strings.HasSuffix(t, "]") {
			return Type{}, invalidType(t)
		}
		// Note internalType can be empty here.
		subInternal := internalType
		if j := strings.LastIndex(internalType, "["); j != -1 {
			subInternal = subInternal[:j]
		}
		embedded, err := NewType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		sliced := t[i:]
		typ.Elem = &embedded
		typ.stringKind = embedded.stringKind + sliced

		if size := sliced[1 : len(sliced)-1]; size == "" {
			typ.T = SliceTy
			typ.dynamic = true
		} else {
			n, err := strconv.Atoi(size)
			if err != nil || n < 0 {
				return Type{}, invalidType(t)
			}
			typ.T = ArrayTy
			typ.Size = n
			typ.dynamic = embedded.dynamic
		}
		return typ, nil
	}
	matches := elementaryRegex.FindStringSubmatch(t)
	if matches == nil {
		return Type{}, invalidType(t)
	}
	base, suffix := matches[1], matches[2]
	size := 0
	if suffix != "" {
		if suffix[0] == '0' {
			return Type{}, invalidType(t)
		}
		if size, err = strconv.Atoi(suffix); err != nil {
			return Type{}, invalidType(t)
		}
	}
	typ.stringKind = t

	switch base {
	case "int", "uint":
		if suffix == "" {
			size = 256
		}
		if size%8 != 0 || size < 8 || size > 256 {
			return Type{}, invalidType(t)
		}
		typ.Size = size
		typ.T = IntTy
		if base == "uint" {
			typ.T = UintTy
		}
		typ.stringKind = base + strconv.Itoa(size)
	case "bytes":
		if suffix == "" {
			typ.T = BytesTy
			typ.dynamic = true
			break
		}
		if size > 32 {
			return Type{}, invalidType(t)
		}
		typ.T = FixedBytesTy
		typ.Size = size
	case "bool", "address", "string", "function", "tuple":
		if suffix != "" {
			return Type{}, invalidType(t)
		}
		switch base {
		case "bool":
			typ.T = BoolTy
		case "address":
			typ.T = AddressTy
			typ.Size = 20
		case "string":
			typ.T = StringTy
			typ.dynamic = true
		case "function":
			// address ‖ selector
			typ.T = FunctionTy
			typ.Size = 24
		case "tuple":
			if err := typ.setTuple(internalType, components); err != nil {
				return Type{}, err
			}
		}
	default:
		if !strings.HasPrefix(internalType, "contract ") {
			return Type{}, invalidType(t)
		}
		typ.T = AddressTy
		typ.Size = 20
		typ.stringKind = "address"
	}
	return typ, nil
}

func (t *Type) setTuple(internalType string, components []ArgumentMarshaling) error {
	var (
		elems = make([]*Type, 0, len(components))
		names = make([]string, 0, len(components))
		kinds = make([]string, 0, len(components))
	)
	for _, c := range components {
		cType, err := NewType(c.Type, c.InternalType, c.Components)
		if err != nil {
			return err
		}
		elems = append(elems, &cType)
		names = append(names, c.Name)
		kinds = append(kinds, cType.stringKind)
		if cType.dynamic {
			t.dynamic = true
		}
	}
	t.T = TupleTy
	t.TupleElems = elems
	t.TupleRawNames = names
	t.stringKind = "(" + strings.Join(kinds, ",") + ")"

	// After solidity 0.5.10 the internalType carries the struct name defined in
	// the source code. Foo.Bar is not a valid go identifier, flatten it to FooBar.
	const structPrefix = "struct "
	if strings.HasPrefix(internalType, structPrefix) {
		t.TupleRawName = strings.ReplaceAll(strings.TrimSuffix(internalType[len(structPrefix):], "[]"), ".", "")
	}
	return nil
}

// String implements Stringer and returns the canonical form used in signatures.
func (t Type) String() string {
	return t.stringKind
}

// IsDynamic reports whether values of the type are stored in the tail region.
// The following types are dynamic:
//   - bytes and string
//   - T[] for any T
//   - T[k] for any dynamic T and any k >= 0
//   - (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
//
// IsDynamic 报告该类型的值是否存储在尾部区域。
func (t Type) IsDynamic() bool {
	return t.dynamic
}

// headSize returns the number of bytes the type occupies in the head region of
// its enclosing block. Dynamic types take a single offset word; static arrays and
// tuples are encoded in place.
// headSize 返回该类型在其所在块的头部区域中占用的字节数。
func (t Type) headSize() int {
	if t.dynamic {
		return WordSize
	}
	switch t.T {
	case ArrayTy:
		return t.Size * t.Elem.headSize()
	case TupleTy:
		total := 0
		for _, elem := range t.TupleElems {
			total += elem.headSize()
		}
		return total
	}
	return WordSize
}

// baseType names the coder family, reported by deferred decode errors.
func (t Type) baseType() string {
	switch t.T {
	case IntTy:
		return "int"
	case UintTy:
		return "uint"
	case BoolTy:
		return "bool"
	case StringTy:
		return "string"
	case SliceTy, ArrayTy:
		return "array"
	case TupleTy:
		return "tuple"
	case AddressTy:
		return "address"
	case FixedBytesTy, BytesTy:
		return "bytes"
	case FunctionTy:
		return "function"
	}
	return "unknown"
}
