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
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

const tokenABI = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"ok","type":"bool"}]},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"memo","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"info","inputs":[],"outputs":[{"name":"symbol","type":"string"},{"name":"decimals","type":"uint8"}]},
	{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256"}]},
	{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]},
	{"type":"receive","stateMutability":"payable"}
]`

func mustABI(t *testing.T) ABI {
	t.Helper()
	parsed, err := JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	return parsed
}

func TestReader(t *testing.T) {
	parsed := mustABI(t)

	require.Len(t, parsed.Methods, 4)
	require.Contains(t, parsed.Methods, "transfer0", "overloads get a numeric suffix")
	require.True(t, parsed.HasReceive())
	require.False(t, parsed.HasFallback())
	require.True(t, parsed.Methods["balanceOf"].IsConstant())

	transfer := parsed.Methods["transfer"]
	require.Equal(t, "transfer(address,uint256)", transfer.Sig)
	require.Equal(t, "a9059cbb", common.Bytes2Hex(transfer.ID))
	require.Equal(t, "function transfer(address to, uint256 amount) returns(bool ok)", transfer.String())

	event := parsed.Events["Transfer"]
	require.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), event.ID)
	require.Equal(t, "event Transfer(address indexed from, address indexed to, uint256 value)", event.String())
}

func TestABIPackUnpack(t *testing.T) {
	parsed := mustABI(t)
	to := common.HexToAddress("0x00000000000000000000000000000000000000ff")

	data, err := parsed.Pack("transfer", to, big.NewInt(1000))
	require.NoError(t, err)
	require.Len(t, data, 4+2*32)

	method, err := parsed.MethodById(data)
	require.NoError(t, err)
	require.Equal(t, "transfer", method.Name)

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	v, err := args.Get("amount")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.(*big.Int).Int64())

	_, err = parsed.Pack("approve", to)
	require.True(t, errs.IsError(err, errs.InvalidArgument))

	// constructor arguments carry no selector
	ctor, err := parsed.Pack("", big.NewInt(1))
	require.NoError(t, err)
	require.Len(t, ctor, 32)

	out, err := parsed.Methods["info"].Outputs.Pack("TKN", uint8(18))
	require.NoError(t, err)
	result, err := parsed.Unpack("info", out)
	require.NoError(t, err)
	m, err := result.ToMap()
	require.NoError(t, err)
	assert.Equal(t, "TKN", m["symbol"])
	assert.Equal(t, int64(18), m["decimals"].(*big.Int).Int64())

	var info struct {
		Symbol   string
		Decimals uint8
	}
	require.NoError(t, parsed.UnpackIntoInterface(&info, "info", out))
	assert.Equal(t, "TKN", info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)

	values := make(map[string]interface{})
	require.NoError(t, parsed.UnpackIntoMap(values, "info", out))
	assert.Equal(t, "TKN", values["symbol"])

	_, err = parsed.MethodById([]byte{1, 2})
	require.True(t, errs.IsError(err, errs.BufferOverrun))
}

func TestEventUnpack(t *testing.T) {
	parsed := mustABI(t)
	event := parsed.Events["Transfer"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(5))
	require.NoError(t, err)

	result, err := event.Unpack(data)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	v, err := result.Get("value")
	require.NoError(t, err)
	require.Equal(t, int64(5), v.(*big.Int).Int64())

	found, err := parsed.EventByID(event.ID)
	require.NoError(t, err)
	require.Equal(t, "Transfer", found.Name)
}

func TestUnpackRevert(t *testing.T) {
	str, _ := NewArguments("string")
	reason, err := str.Pack("insufficient allowance")
	require.NoError(t, err)
	data := append(common.CopyBytes(revertSelector), reason...)

	have, err := UnpackRevert(data)
	require.NoError(t, err)
	require.Equal(t, "insufficient allowance", have)

	code, _ := NewArguments("uint256")
	for value, want := range map[int64]string{0x11: "arithmetic underflow or overflow", 0x99: "unknown panic code: 0x99"} {
		packed, err := code.Pack(big.NewInt(value))
		require.NoError(t, err)
		have, err := UnpackRevert(append(common.CopyBytes(panicSelector), packed...))
		require.NoError(t, err)
		require.Equal(t, want, have)
	}

	_, err = UnpackRevert([]byte{1, 2, 3})
	require.True(t, errs.IsError(err, errs.InvalidArgument))
	_, err = UnpackRevert([]byte{1, 2, 3, 4, 5})
	require.True(t, errs.IsError(err, errs.InvalidArgument))

	// custom errors are resolved through the ABI
	parsed := mustABI(t)
	custom := parsed.Errors["InsufficientBalance"]
	packed, err := custom.Inputs.Pack(big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	have, err = parsed.UnpackRevert(append(custom.Selector(), packed...))
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance(1, 2)", have)

	have, err = parsed.UnpackRevert(data)
	require.NoError(t, err)
	require.Equal(t, "insufficient allowance", have)
}

func TestBytes32String(t *testing.T) {
	b, err := FormatBytes32String("hello world")
	require.NoError(t, err)
	require.Equal(t, "68656c6c6f20776f726c64000000000000000000000000000000000000000000", common.Bytes2Hex(b[:]))

	s, err := ParseBytes32String(b[:])
	require.NoError(t, err)
	require.Equal(t, "hello world", s)

	_, err = FormatBytes32String(strings.Repeat("a", 32))
	require.True(t, errs.IsError(err, errs.InvalidArgument))
	_, err = FormatBytes32String(strings.Repeat("a", 31))
	require.NoError(t, err)

	_, err = ParseBytes32String(make([]byte, 31))
	require.ErrorContains(t, err, "not 32 bytes long")
	full := []byte(strings.Repeat("a", 32))
	_, err = ParseBytes32String(full)
	require.ErrorContains(t, err, "no null terminator")
}

func TestResolveNameConflict(t *testing.T) {
	used := map[string]bool{"send": true, "send0": true}
	name := ResolveNameConflict("send", func(s string) bool { return used[s] })
	require.Equal(t, "send1", name)
	require.Equal(t, "fresh", ResolveNameConflict("fresh", func(string) bool { return false }))
}
