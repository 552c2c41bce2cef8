// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runEthkit runs the app in-process and returns what it printed.
func runEthkit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app.Writer = out
	defer func() { app.Writer = os.Stdout }()
	err := app.Run(append([]string{"ethkit", "--verbosity", "0"}, args...))
	return out.String(), err
}

func TestRLPCommands(t *testing.T) {
	out, err := runEthkit(t, "rlp", "encode", `["0x636174",["0x646f67"],"0x"]`)
	require.NoError(t, err)
	assert.Equal(t, "0xca83636174c483646f6780\n", out)

	out, err = runEthkit(t, "rlp", "decode", "0xca83636174c483646f6780")
	require.NoError(t, err)
	assert.Equal(t, `["0x636174",["0x646f67"],"0x"]`+"\n", out)

	_, err = runEthkit(t, "rlp", "decode", "0xcb8363")
	assert.Error(t, err)

	_, err = runEthkit(t, "rlp", "decode")
	assert.ErrorIs(t, err, errArgs)
}

func TestABICommands(t *testing.T) {
	out, err := runEthkit(t, "abi", "selector", "transfer(address to, uint256 amount)")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb transfer(address,uint256)\n", out)

	word := func(last string) string { return strings.Repeat("0", 64-len(last)) + last }
	encoded := "0x" + word("1") + word("1")

	out, err = runEthkit(t, "abi", "encode", "uint256,bool", "[1,true]")
	require.NoError(t, err)
	assert.Equal(t, encoded+"\n", out)

	out, err = runEthkit(t, "abi", "encode", "(uint256,bool)", `["0x1",true]`)
	require.NoError(t, err)
	assert.Equal(t, encoded+"\n", out)

	out, err = runEthkit(t, "abi", "decode", "uint256,bool", encoded)
	require.NoError(t, err)
	assert.Equal(t, `["1",true]`+"\n", out)

	// values beyond 2^53 keep their precision
	out, err = runEthkit(t, "abi", "encode", "uint256", "[36893488147419103232]")
	require.NoError(t, err)
	assert.Equal(t, "0x"+word("20000000000000000")+"\n", out)

	_, err = runEthkit(t, "abi", "encode", "uint8", "[256]")
	assert.Error(t, err)
}

func TestParseTypes(t *testing.T) {
	args, err := parseTypes("(uint256,bool),(address)")
	require.NoError(t, err)
	assert.Len(t, args, 2)

	args, err = parseTypes("(uint256,bool)")
	require.NoError(t, err)
	assert.Len(t, args, 2)
}

func TestTxSignOffline(t *testing.T) {
	keyfile := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyfile, []byte("4646464646464646464646464646464646464646464646464646464646464646\n"), 0600))

	out, err := runEthkit(t, "--chainid", "1", "tx", "sign",
		"--keyfile", keyfile,
		"--type", "legacy",
		"--nonce", "9",
		"--gasprice", "20000000000",
		"--gas", "21000",
		"--to", "0x3535353535353535353535353535353535353535",
		"--value", "1000000000000000000",
	)
	require.NoError(t, err)
	raw := "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"
	assert.Equal(t, raw+"\n", out)

	// the same transaction with amounts given in units
	out, err = runEthkit(t, "--chainid", "1", "tx", "sign",
		"--keyfile", keyfile,
		"--type", "legacy",
		"--nonce", "9",
		"--gasprice", "20gwei",
		"--gas", "21000",
		"--to", "0x3535353535353535353535353535353535353535",
		"--value", "1 ether",
	)
	require.NoError(t, err)
	assert.Equal(t, raw+"\n", out)

	_, err = runEthkit(t, "--chainid", "1", "tx", "sign", "--keyfile", keyfile, "--value", "0.5wei")
	assert.ErrorContains(t, err, "too many decimals")

	out, err = runEthkit(t, "tx", "decode", raw)
	require.NoError(t, err)
	assert.Contains(t, out, `"nonce": "0x9"`)
	assert.Contains(t, out, "sender: 0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F")

	out, err = runEthkit(t, "sig", "split", "0x28ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa63627667cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d831c")
	require.NoError(t, err)
	assert.Regexp(t, `yParity:\s+1\n`, out)
	assert.Regexp(t, `v:\s+28\n`, out)

	_, err = runEthkit(t, "tx", "send", "--keyfile", keyfile, "--to", "0x3535353535353535353535353535353535353535")
	assert.ErrorContains(t, err, "missing node endpoint")

	_, err = runEthkit(t, "tx", "sign", "--to", "0x3535353535353535353535353535353535353535")
	assert.ErrorContains(t, err, "missing key file")
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ethkit.toml")
	config := `[Node]
RPC = "http://127.0.0.1:8545"
Timeout = 5000000000

[Signer]
TxType = "eip1559"

[Log]
Verbosity = 2
`
	require.NoError(t, os.WriteFile(file, []byte(config), 0644))

	secret := filepath.Join(dir, "jwt.hex")
	out, err := runEthkit(t, "--config", file, "--chainid", "5", "--rpc.jwtsecret", secret, "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, out, `RPC = "http://127.0.0.1:8545"`)
	assert.Contains(t, out, `JWTSecret = "`+secret+`"`)
	assert.Contains(t, out, "Timeout = 5000000000")
	assert.Contains(t, out, "ChainID = 5")
	assert.Contains(t, out, `TxType = "eip1559"`)

	require.NoError(t, os.WriteFile(file, []byte("[Node]\nEndpoint = \"x\"\n"), 0644))
	_, err = runEthkit(t, "--config", file, "dumpconfig")
	assert.ErrorContains(t, err, "field 'Endpoint' is not defined")
}
