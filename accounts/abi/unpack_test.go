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
	"errors"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/errs"
)

func TestUnpackRoundTrip(t *testing.T) {
	addr := common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	tests := []struct {
		types  []string
		values []interface{}
		want   *Result
	}{
		{
			types:  []string{"uint256", "int8", "bool", "address"},
			values: []interface{}{big.NewInt(42), -5, true, addr},
			want:   NewResult([]interface{}{big.NewInt(42), big.NewInt(-5), true, addr}, []string{"", "", "", ""}),
		},
		{
			types:  []string{"bytes4", "bytes", "string"},
			values: []interface{}{"0xdeadbeef", []byte{1, 2, 3}, "héllo"},
			want:   NewResult([]interface{}{[]byte{0xde, 0xad, 0xbe, 0xef}, []byte{1, 2, 3}, "héllo"}, nil),
		},
		{
			types:  []string{"uint16[2][]"},
			values: []interface{}{[][2]uint16{{1, 2}, {3, 4}}},
			want: NewResult([]interface{}{
				NewResult([]interface{}{
					NewResult([]interface{}{big.NewInt(1), big.NewInt(2)}, nil),
					NewResult([]interface{}{big.NewInt(3), big.NewInt(4)}, nil),
				}, nil),
			}, nil),
		},
		{
			// nested dynamic arrays of dynamic tuples
			types: []string{"(string name, uint256[] ids)[]", "string[][]"},
			values: []interface{}{
				[]interface{}{
					[]interface{}{"a", []*big.Int{big.NewInt(1), big.NewInt(2)}},
					map[string]interface{}{"name": "bc", "ids": []*big.Int{}},
				},
				[][]string{{"x"}, {}, {"y", "zz"}},
			},
			want: NewResult([]interface{}{
				NewResult([]interface{}{
					NewResult([]interface{}{"a", NewResult([]interface{}{big.NewInt(1), big.NewInt(2)}, nil)}, []string{"name", "ids"}),
					NewResult([]interface{}{"bc", NewResult([]interface{}{}, nil)}, []string{"name", "ids"}),
				}, nil),
				NewResult([]interface{}{
					NewResult([]interface{}{"x"}, nil),
					NewResult([]interface{}{}, nil),
					NewResult([]interface{}{"y", "zz"}, nil),
				}, nil),
			}, nil),
		},
	}
	for i, test := range tests {
		args := mustArguments(t, test.types...)
		packed, err := args.Pack(test.values...)
		require.NoError(t, err, "test %d", i)

		have, err := args.Unpack(packed)
		require.NoError(t, err, "test %d", i)
		if diff := cmp.Diff(test.want, have); diff != "" {
			t.Errorf("test %d: result mismatch (-want +have):\n%s\n%s", i, diff, spew.Sdump(have))
		}
		// a decoded result packs back to the same bytes
		values, err := have.Values()
		require.NoError(t, err)
		repacked, err := args.Pack(values...)
		require.NoError(t, err)
		require.Equal(t, packed, repacked, "test %d", i)
	}
}

func TestUnpackArrayLengthGuard(t *testing.T) {
	args := mustArguments(t, "uint256[]")
	data := words(`
		0000000000000000000000000000000000000000000000000000000000000020
		0000000000000000000000000000000000000000000000000000000001000000
		0000000000000000000000000000000000000000000000000000000000000001`)

	_, err := args.Unpack(data)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, errs.BufferOverrun, e.Code)
	require.Equal(t, "insufficient data length", e.ShortMessage)
	require.Equal(t, 0x1000000*32, e.Offset)
	require.Equal(t, 64, e.Length)
}

func TestUnpackHugeIndex(t *testing.T) {
	tests := []struct {
		types []string
		data  []byte
	}{
		// counts no buffer can back
		{[]string{"uint256[]"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			00000000000000000000000000000000000000000000000000000000ffffffff`)},
		{[]string{"uint256[]"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000010000000000`)},
		{[]string{"uint256[]"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			000000000000000000000000000000000000000000000000ffffffffffffffff`)},
		{[]string{"uint256[]"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff`)},
		// byte length past the data
		{[]string{"bytes"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			00000000000000000000000000000000000000000000000000000000ffffffff
			6161616161616161616161616161616161616161616161616161616161616161`)},
		// offset past the data
		{[]string{"uint256", "string"}, words(`
			0000000000000000000000000000000000000000000000000000000000000001
			ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff`)},
	}
	for i, test := range tests {
		_, err := mustArguments(t, test.types...).Unpack(test.data)
		require.True(t, errs.IsError(err, errs.BufferOverrun), "test %d: got %v", i, err)
	}
}

func TestUnpackOverrun(t *testing.T) {
	tests := []struct {
		types []string
		data  []byte
	}{
		{[]string{"uint256"}, make([]byte, 31)},
		{[]string{"uint256", "uint256"}, make([]byte, 32)},
		// offset pointing past the end
		{[]string{"bytes"}, words("0000000000000000000000000000000000000000000000000000000000000040")},
		// length larger than the payload
		{[]string{"string"}, words(`
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000021
			6161616161616161616161616161616161616161616161616161616161616161`)},
	}
	for i, test := range tests {
		_, err := mustArguments(t, test.types...).Unpack(test.data)
		if !errs.IsError(err, errs.BufferOverrun) {
			t.Errorf("test %d: expected BUFFER_OVERRUN, got %v", i, err)
		}
	}
}

func TestUnpackDeferredErrors(t *testing.T) {
	args := mustArguments(t, "(uint8 small, bool flag, address who)")
	data := words(`
		0000000000000000000000000000000000000000000000000000000000000100
		0000000000000000000000000000000000000000000000000000000000000002
		ff00000000000000000000000000000000000000000000000000000000000001`)

	result, err := args.Unpack(data)
	require.NoError(t, err)
	tuple, err := result.Index(0)
	require.NoError(t, err)
	fields := tuple.(*Result)

	_, err = fields.Get("small")
	require.True(t, errs.IsError(err, errs.NumericFault), "got %v", err)
	var deferred *DeferredError
	require.True(t, errors.As(err, &deferred))
	require.Equal(t, "uint", deferred.BaseType)
	require.Equal(t, "small", deferred.Name)
	require.Equal(t, "uint8", deferred.Type)

	_, err = fields.Get("flag")
	require.True(t, errs.IsError(err, errs.InvalidArgument), "got %v", err)
	require.ErrorIs(t, err, errBadBool)

	_, err = fields.Get("who")
	require.ErrorIs(t, err, errBadAddress)

	_, err = fields.Values()
	require.Error(t, err)
	_, err = fields.ToMap()
	require.Error(t, err)

	// loose decoding tolerates dirty padding and non-canonical booleans
	loose, err := args.UnpackLoose(data)
	require.NoError(t, err)
	tuple, err = loose.Index(0)
	require.NoError(t, err)
	flag, err := tuple.(*Result).Get("flag")
	require.NoError(t, err)
	require.Equal(t, true, flag)
	who, err := tuple.(*Result).Get("who")
	require.NoError(t, err)
	require.Equal(t, common.BytesToAddress(common.FromHex("0x0000000000000000000000000000000000000001")), who)
}

func TestUnpackSignedRange(t *testing.T) {
	args := mustArguments(t, "int8")
	tests := []struct {
		word string
		want int64
		ok   bool
	}{
		{"000000000000000000000000000000000000000000000000000000000000007f", 127, true},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80", -128, true},
		{"0000000000000000000000000000000000000000000000000000000000000080", 0, false},
		{"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", 0, false},
	}
	for i, test := range tests {
		result, err := args.Unpack(words(test.word))
		require.NoError(t, err)
		value, err := result.Index(0)
		if !test.ok {
			require.True(t, errs.IsError(err, errs.NumericFault), "test %d: got %v", i, err)
			continue
		}
		require.NoError(t, err, "test %d", i)
		require.Equal(t, 0, value.(*big.Int).Cmp(big.NewInt(test.want)), "test %d: have %v", i, value)
	}
}

func TestResultAccess(t *testing.T) {
	result := NewResult([]interface{}{big.NewInt(1), "x", true}, []string{"a", "b", "a"})

	_, err := result.Get("a")
	require.True(t, errs.IsError(err, errs.InvalidArgument), "ambiguous key must fail")
	v, err := result.Get("b")
	require.NoError(t, err)
	require.Equal(t, "x", v)
	_, err = result.Get("c")
	require.Error(t, err)
	_, err = result.Index(3)
	require.Error(t, err)

	m, err := NewResult([]interface{}{"v"}, []string{"k"}).ToMap()
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"k": "v"}, m)

	_, err = NewResult([]interface{}{"v"}, nil).ToMap()
	require.Error(t, err)
}

func TestCopyIntoStruct(t *testing.T) {
	args := mustArguments(t, "uint64 amount", "address owner", "bytes4 tag", "(string label, uint8[] levels) meta")
	packed, err := args.Pack(
		big.NewInt(99),
		common.Address{0xaa},
		[4]byte{1, 2, 3, 4},
		[]interface{}{"gold", []uint8{1, 2}},
	)
	require.NoError(t, err)
	result, err := args.Unpack(packed)
	require.NoError(t, err)

	var out struct {
		Amount uint64
		Owner  common.Address
		Tag    [4]byte
		Meta   struct {
			Label  string
			Levels []uint8
		}
	}
	require.NoError(t, args.Copy(&out, result))
	require.Equal(t, uint64(99), out.Amount)
	require.Equal(t, common.Address{0xaa}, out.Owner)
	require.Equal(t, [4]byte{1, 2, 3, 4}, out.Tag)
	require.Equal(t, "gold", out.Meta.Label)
	require.Equal(t, []uint8{1, 2}, out.Meta.Levels)

	var single *big.Int
	one := mustArguments(t, "uint256")
	result, err = one.Unpack(words("0000000000000000000000000000000000000000000000000000000000000007"))
	require.NoError(t, err)
	require.NoError(t, one.Copy(&single, result))
	require.Equal(t, int64(7), single.Int64())

	var small uint8
	result, err = one.Unpack(words("0000000000000000000000000000000000000000000000000000000000000100"))
	require.NoError(t, err)
	require.True(t, errs.IsError(one.Copy(&small, result), errs.NumericFault))
}

func FuzzUnpack(f *testing.F) {
	args, err := NewArguments("(uint8,bytes)[]", "string[2]", "bool", "int256[][]")
	if err != nil {
		f.Fatal(err)
	}
	seed, err := args.Pack(
		[]interface{}{[]interface{}{1, []byte{1}}},
		[2]string{"a", "b"},
		true,
		[][]*big.Int{{big.NewInt(-1)}},
	)
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		result, err := args.Unpack(data)
		if err != nil {
			if !errs.IsError(err, errs.BufferOverrun) {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			return
		}
		if result.Len() != len(args) {
			t.Fatalf("result has %d values, want %d", result.Len(), len(args))
		}
		_ = result.String()
	})
}
