// Copyright 2022 The go-ethereum Authors
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
	"log"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/errs"
)

func TestParseSelector(t *testing.T) {
	t.Parallel()
	mkType := func(types ...interface{}) []ArgumentMarshaling {
		var result []ArgumentMarshaling
		for i, typeOrComponents := range types {
			name := fmt.Sprintf("name%d", i)
			if typeName, ok := typeOrComponents.(string); ok {
				result = append(result, ArgumentMarshaling{name, typeName, typeName, nil, false})
			} else if components, ok := typeOrComponents.([]ArgumentMarshaling); ok {
				result = append(result, ArgumentMarshaling{name, "tuple", "tuple", components, false})
			} else if components, ok := typeOrComponents.([][]ArgumentMarshaling); ok {
				result = append(result, ArgumentMarshaling{name, "tuple[]", "tuple[]", components[0], false})
			} else {
				log.Fatalf("unexpected type %T", typeOrComponents)
			}
		}
		return result
	}
	// strip names and internal types, the parser only fills Type, Name and Components
	var normalize func(args []ArgumentMarshaling) []ArgumentMarshaling
	normalize = func(args []ArgumentMarshaling) []ArgumentMarshaling {
		out := make([]ArgumentMarshaling, len(args))
		for i, arg := range args {
			out[i] = ArgumentMarshaling{Type: arg.Type}
			if arg.Components != nil {
				out[i].Components = normalize(arg.Components)
			}
		}
		return out
	}
	tests := []struct {
		input string
		name  string
		args  []ArgumentMarshaling
	}{
		{"noargs()", "noargs", []ArgumentMarshaling{}},
		{"simple(uint256,uint256,uint256)", "simple", mkType("uint256", "uint256", "uint256")},
		{"other(uint256,address)", "other", mkType("uint256", "address")},
		{"withArray(uint256[],address[2],uint8[4][][5])", "withArray", mkType("uint256[]", "address[2]", "uint8[4][][5]")},
		{"singleNest(bytes32,uint8,(uint256,uint256),address)", "singleNest", mkType("bytes32", "uint8", mkType("uint256", "uint256"), "address")},
		{"multiNest(address,(uint256[],uint256),((address,bytes32),uint256))", "multiNest",
			mkType("address", mkType("uint256[]", "uint256"), mkType(mkType("address", "bytes32"), "uint256"))},
		{"arrayNest((uint256,uint256)[],bytes32)", "arrayNest", mkType([][]ArgumentMarshaling{mkType("uint256", "uint256")}, "bytes32")},
		{"singleElementNestedArray(((uint256,uint256)[]))", "singleElementNestedArray", mkType(mkType([][]ArgumentMarshaling{mkType("uint256", "uint256")}))},
	}
	for i, tt := range tests {
		selector, err := ParseSelector(tt.input)
		if err != nil {
			t.Errorf("test %d: failed to parse selector '%v': %v", i, tt.input, err)
			continue
		}
		if selector.Name != tt.name {
			t.Errorf("test %d: unexpected function name: '%s' != '%s'", i, selector.Name, tt.name)
		}
		if selector.Type != "function" {
			t.Errorf("test %d: unexpected type: '%s' != '%s'", i, selector.Type, "function")
		}
		if !reflect.DeepEqual(normalize(selector.Inputs), normalize(tt.args)) {
			t.Errorf("test %d: unexpected args: '%v' != '%v'", i, selector.Inputs, tt.args)
		}
	}
}

func TestParseSelectorNames(t *testing.T) {
	selector, err := ParseSelector("function swap(address to, (uint256 amount, bytes data)[] legs, bool)")
	require.NoError(t, err)
	require.Equal(t, "swap", selector.Name)
	require.Len(t, selector.Inputs, 3)

	require.Equal(t, "to", selector.Inputs[0].Name)
	require.Equal(t, "address", selector.Inputs[0].Type)

	legs := selector.Inputs[1]
	require.Equal(t, "legs", legs.Name)
	require.Equal(t, "tuple[]", legs.Type)
	require.Len(t, legs.Components, 2)
	require.Equal(t, "amount", legs.Components[0].Name)
	require.Equal(t, "data", legs.Components[1].Name)

	require.Equal(t, "", selector.Inputs[2].Name)
	require.Equal(t, "bool", selector.Inputs[2].Type)
}

func TestParseSelectorErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"1abc()",
		"f(",
		"f(uint256",
		"f(uint256[)",
		"f(uint256;)",
		"f() trailing",
	} {
		_, err := ParseSelector(input)
		require.True(t, errs.IsError(err, errs.InvalidArgument), "input %q: got %v", input, err)
	}
}

func TestNewMethodFromSignature(t *testing.T) {
	method, err := NewMethodFromSignature("transfer(address to, uint256 amount)")
	require.NoError(t, err)
	require.Equal(t, "transfer(address,uint256)", method.Sig)
	require.Equal(t, "a9059cbb", common.Bytes2Hex(method.ID))
	require.Equal(t, "to", method.Inputs[0].Name)

	cached, ok := selectorCache.Get("transfer(address to, uint256 amount)")
	require.True(t, ok)
	require.Equal(t, method.Sig, cached.Sig)

	// "uint" is an alias for its canonical form
	alias, err := NewMethodFromSignature("transfer(address,uint)")
	require.NoError(t, err)
	require.Equal(t, method.ID, alias.ID)

	_, err = NewMethodFromSignature("transfer(address,uint7)")
	require.Error(t, err)
}
