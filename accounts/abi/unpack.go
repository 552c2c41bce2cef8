// Copyright 2017 The go-ethereum Authors
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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/errs"
)

var (
	// MaxUint256 is the maximum value that can be represented by a uint256.
	// MaxUint256 是 uint256 可以表示的最大值。
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 256), common.Big1)
	// MaxInt256 is the maximum value that can be represented by a int256.
	// MaxInt256 是 int256 可以表示的最大值。
	MaxInt256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 255), common.Big1)
)

// unpack decodes one block laid out by pack. Static values are read at the
// cursor, dynamic ones through a reader re-anchored at base+offset where base is
// the first head word of the block.
//
// A value that fails to decode is kept as a *DeferredError in the result, so
// the remaining fields stay accessible. Running out of data aborts the whole
// decode.
//
// unpack 解码由 pack 布局的一个块。静态值在游标处读取，动态值通过重新锚定在 base+offset
// 的 reader 读取，其中 base 是该块的第一个头部字。解码失败的值以 *DeferredError 形式
// 保留在结果中；数据耗尽则中止整个解码。
func unpack(r *reader, types []*Type, names []string) (*Result, error) {
	var (
		base   = r.subReader(0)
		values = make([]interface{}, len(types))
	)
	for i, typ := range types {
		var (
			value interface{}
			err   error
		)
		if typ.dynamic {
			var offset int
			if offset, err = r.readIndex(); err == nil {
				value, err = typ.decode(base.subReader(offset))
			}
		} else {
			value, err = typ.decode(r)
		}
		if err != nil {
			if errs.IsError(err, errs.BufferOverrun) {
				return nil, err
			}
			value = &DeferredError{
				BaseType: typ.baseType(),
				Name:     nameAt(names, i),
				Type:     typ.String(),
				Err:      err,
			}
		}
		values[i] = value
	}
	return &Result{values: values, names: names}, nil
}

func decodeNumber(t *Type, r *reader) (interface{}, error) {
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if t.T == UintTy {
		if v.BitLen() > t.Size {
			return nil, errs.NewNumericFault("value out-of-bounds", "overflow", "decode", v.Hex())
		}
		return v.ToBig(), nil
	}
	// big.SetBytes can't tell if a number is negative or positive in itself.
	// The word is negative if the bit at position 255 is set.
	var n *big.Int
	if v.Sign() < 0 {
		n = new(uint256.Int).Neg(v).ToBig()
		n.Neg(n)
	} else {
		n = v.ToBig()
	}
	if t.Size < 256 {
		bound := new(big.Int).Lsh(common.Big1, uint(t.Size-1))
		if n.Cmp(bound) >= 0 || n.Cmp(new(big.Int).Neg(bound)) < 0 {
			return nil, errs.NewNumericFault("value out-of-bounds", "overflow", "decode", v.Hex())
		}
	}
	return n, nil
}

func decodeBool(t *Type, r *reader) (interface{}, error) {
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if v.GtUint64(1) && !r.loose {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid boolean value", errBadBool)
	}
	return !v.IsZero(), nil
}

func decodeAddress(t *Type, r *reader) (interface{}, error) {
	word, err := r.readWord()
	if err != nil {
		return nil, err
	}
	if !r.loose && !isZero(word[:WordSize-common.AddressLength]) {
		return nil, errs.Wrap(errs.InvalidArgument, "non-zero padding", errBadAddress)
	}
	return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil
}

// decodeFixedBytes serves bytes<M> and function, both left aligned in a word.
func decodeFixedBytes(t *Type, r *reader) (interface{}, error) {
	word, err := r.readWord()
	if err != nil {
		return nil, err
	}
	if !r.loose && !isZero(word[t.Size:]) {
		return nil, errs.Wrap(errs.InvalidArgument, "non-zero padding", errBadFixedBytes)
	}
	return common.CopyBytes(word[:t.Size]), nil
}

func readDynamicBytes(r *reader) ([]byte, error) {
	length, err := r.readIndex()
	if err != nil {
		return nil, err
	}
	b, _, err := r.readBytes(length, true)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

func decodeBytes(t *Type, r *reader) (interface{}, error) {
	return readDynamicBytes(r)
}

func decodeString(t *Type, r *reader) (interface{}, error) {
	b, err := readDynamicBytes(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeArray(t *Type, r *reader) (interface{}, error) {
	count := t.Size
	if t.T == SliceTy {
		n, err := r.readIndex()
		if err != nil {
			return nil, err
		}
		// Each element needs at least a word, either for its value or for the
		// offset of its payload. Reject counts the data cannot back before
		// allocating anything.
		if n*WordSize > len(r.data) {
			return nil, errs.NewBufferOverrun("insufficient data length", r.data, n*WordSize, len(r.data))
		}
		count = n
	}
	types := make([]*Type, count)
	for i := range types {
		types[i] = t.Elem
	}
	return unpack(r, types, nil)
}

func decodeTuple(t *Type, r *reader) (interface{}, error) {
	return unpack(r, t.TupleElems, t.TupleRawNames)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
