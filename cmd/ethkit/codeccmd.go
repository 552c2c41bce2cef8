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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/goethers/accounts/abi"
	"github.com/sunyihoo/goethers/cmd/utils"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/rlp"
	"github.com/urfave/cli/v2"
)

var (
	rlpCommand = &cli.Command{
		Name:  "rlp",
		Usage: "Encode and decode RLP data",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode nested JSON arrays of hex strings",
				ArgsUsage: `<json>, e.g. '["0x01",["0x"]]'`,
				Action:    rlpEncode,
			},
			{
				Name:      "decode",
				Usage:     "Decode hex encoded RLP into nested JSON arrays",
				ArgsUsage: "<hex>",
				Action:    rlpDecode,
			},
		},
	}

	abiCommand = &cli.Command{
		Name:  "abi",
		Usage: "Encode and decode contract ABI data",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "ABI encode a JSON array of values",
				ArgsUsage: `<types> <json-values>, e.g. 'uint256,address[]' '[1,["0x..."]]'`,
				Action:    abiEncode,
			},
			{
				Name:      "decode",
				Usage:     "Decode ABI data into a JSON array",
				ArgsUsage: "<types> <hex>",
				Flags:     []cli.Flag{utils.DumpFlag},
				Action:    abiDecode,
			},
			{
				Name:      "selector",
				Usage:     "Print the 4 byte selector of a function signature",
				ArgsUsage: `<signature>, e.g. 'transfer(address to, uint256 amount)'`,
				Action:    abiSelector,
			},
		},
	}
)

var errArgs = errors.New("wrong number of arguments")

func checkArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return fmt.Errorf("%w: want %d, have %d (usage: %s)", errArgs, n, ctx.NArg(), ctx.Command.ArgsUsage)
	}
	return nil
}

func rlpEncode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	var item rlp.Item
	if err := json.Unmarshal([]byte(ctx.Args().First()), &item); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(rlp.Encode(item)))
	return nil
}

func rlpDecode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return err
	}
	item, err := rlp.Decode(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, item.String())
	return nil
}

// parseTypes turns a comma separated type list such as "uint256,(bool,bytes)[]"
// into positional arguments.
func parseTypes(list string) (abi.Arguments, error) {
	list = strings.TrimSpace(list)
	if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") && balanced(list[1:len(list)-1]) {
		list = list[1 : len(list)-1]
	}
	method, err := abi.NewMethodFromSignature("f(" + list + ")")
	if err != nil {
		return nil, err
	}
	return method.Inputs, nil
}

// balanced reports whether the parentheses of s pair up, so "(a),(b)" is not
// mistaken for a single outer tuple.
func balanced(s string) bool {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			if depth--; depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// jsonValues decodes a JSON array, keeping numbers as decimal strings so large
// integers survive.
func jsonValues(input string) ([]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var values []interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	for i := range values {
		values[i] = normalizeNumbers(values[i])
	}
	return values, nil
}

func normalizeNumbers(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		return v.String()
	case []interface{}:
		for i := range v {
			v[i] = normalizeNumbers(v[i])
		}
		return v
	case map[string]interface{}:
		for k := range v {
			v[k] = normalizeNumbers(v[k])
		}
		return v
	}
	return v
}

func abiEncode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	args, err := parseTypes(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	values, err := jsonValues(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	data, err := args.Pack(values...)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return nil
}

func abiDecode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 2); err != nil {
		return err
	}
	args, err := parseTypes(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	result, err := args.Unpack(data)
	if err != nil {
		return err
	}
	if ctx.Bool(utils.DumpFlag.Name) {
		values, _ := result.Values()
		spew.Fdump(ctx.App.Writer, values)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	return nil
}

func abiSelector(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	method, err := abi.NewMethodFromSignature(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(method.ID), method.Sig)
	return nil
}
