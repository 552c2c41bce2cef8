// Copyright 2014 The go-ethereum Authors
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

package utils

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"runtime"
	"strings"

	"github.com/sunyihoo/goethers/accounts"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/internal/flags"
	"github.com/sunyihoo/goethers/params"
	"github.com/urfave/cli/v2"
)

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
// Fatalf 将消息格式化输出到标准错误并退出程序。
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// ParseTxType maps the --type names to transaction types. The empty name
// returns nil, leaving the type to inference.
// ParseTxType 将 --type 名称映射为交易类型，空名称返回 nil。
func ParseTxType(name string) (*uint8, error) {
	var typ uint8
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case "legacy", "0":
		typ = types.LegacyTxType
	case "accesslist", "eip2930", "1":
		typ = types.AccessListTxType
	case "eip1559", "dynamicfee", "2":
		typ = types.DynamicFeeTxType
	default:
		return nil, errs.NewInvalidArgument("unknown transaction type", "type", name)
	}
	return &typ, nil
}

// MakeTxFields collects the transaction fields given on the command line.
// Flags that are not set stay absent so the signer can fill them in.
// MakeTxFields 收集命令行给出的交易字段，未设置的标志保持缺失。
func MakeTxFields(ctx *cli.Context, defaultType string) (types.TxFields, error) {
	var f types.TxFields

	name := defaultType
	if ctx.IsSet(TxTypeFlag.Name) {
		name = ctx.String(TxTypeFlag.Name)
	}
	typ, err := ParseTxType(name)
	if err != nil {
		return f, err
	}
	f.Type = typ

	if to := ctx.String(ToFlag.Name); to != "" {
		if !common.IsHexAddress(to) {
			return f, errs.NewInvalidArgument("invalid address", "to", to)
		}
		addr := common.HexToAddress(to)
		f.To = &addr
	}
	if data := ctx.String(DataFlag.Name); data != "" {
		if f.Data, err = hexutil.Decode(data); err != nil {
			return f, errs.Wrap(errs.InvalidArgument, "invalid call data", err)
		}
	}
	if ctx.IsSet(NonceFlag.Name) {
		nonce := ctx.Uint64(NonceFlag.Name)
		f.Nonce = &nonce
	}
	if ctx.IsSet(GasLimitFlag.Name) {
		gas := ctx.Uint64(GasLimitFlag.Name)
		f.GasLimit = &gas
	}
	for _, amount := range []struct {
		flag *cli.StringFlag
		dst  **big.Int
	}{
		{ValueFlag, &f.Value},
		{GasPriceFlag, &f.GasPrice},
		{MaxFeeFlag, &f.MaxFeePerGas},
		{MaxPriorityFeeFlag, &f.MaxPriorityFeePerGas},
	} {
		if !ctx.IsSet(amount.flag.Name) {
			continue
		}
		if *amount.dst, err = params.ParseAmount(ctx.String(amount.flag.Name)); err != nil {
			return f, err
		}
	}
	f.ChainID = flags.GlobalBig(ctx, ChainIDFlag.Name)
	return f, nil
}

// MakeWallet loads the signing key from the --keyfile flag, falling back to
// the given path from the config file.
// MakeWallet 从 --keyfile 标志加载签名私钥，未设置时使用配置文件中的路径。
func MakeWallet(ctx *cli.Context, fallback string) (*accounts.Wallet, error) {
	path := fallback
	if ctx.IsSet(KeyFileFlag.Name) {
		path = ctx.String(KeyFileFlag.Name)
	}
	if path == "" {
		return nil, errs.New(errs.MissingArgument, "missing key file, use --keyfile", nil)
	}
	return accounts.LoadWallet(flags.ExpandPath(path))
}
