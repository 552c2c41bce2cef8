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
	"context"
	"encoding/json"
	"fmt"

	"github.com/sunyihoo/goethers/accounts"
	"github.com/sunyihoo/goethers/cmd/utils"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/ethclient"
	"github.com/sunyihoo/goethers/log"
	"github.com/sunyihoo/goethers/rpc"
	"github.com/urfave/cli/v2"
)

var (
	txCommand = &cli.Command{
		Name:  "tx",
		Usage: "Decode, sign and send transactions",
		Subcommands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "Print the JSON view and the sender of a serialized transaction",
				ArgsUsage: "<hex>",
				Action:    txDecode,
			},
			{
				Name:  "sign",
				Usage: "Sign a transaction and print its serialized form",
				Description: `
Signs the transaction described by the flags with the key in --keyfile. When
--rpc is given, missing nonce, gas, fee and chain id fields are fetched from
the node, otherwise they default to zero and --chainid should be set.`,
				Flags:  utils.TxFlags,
				Action: txSign,
			},
			{
				Name:        "send",
				Usage:       "Sign a transaction and broadcast it to the node",
				Description: `Like 'tx sign', then submits the transaction with eth_sendRawTransaction.`,
				Flags:       utils.TxFlags,
				Action:      txSend,
			},
		},
	}

	sigCommand = &cli.Command{
		Name:  "sig",
		Usage: "Inspect signatures",
		Subcommands: []*cli.Command{
			{
				Name:      "split",
				Usage:     "Print the components of a 64 or 65 byte signature",
				ArgsUsage: "<hex>",
				Action:    sigSplit,
			},
		},
	}
)

func txDecode(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return err
	}
	tx, err := types.DecodeTransaction(data)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	if sender, err := types.Sender(tx); err == nil {
		fmt.Fprintln(ctx.App.Writer, "sender:", sender.Hex())
	} else {
		fmt.Fprintln(ctx.App.Writer, "sender: unsigned")
	}
	return nil
}

// makeSigner builds the signer of the tx commands. The provider is only
// attached when an endpoint is configured or required.
func makeSigner(ctx *cli.Context, cfg *ethkitConfig, needProvider bool) (*accounts.Signer, func(), error) {
	wallet, err := utils.MakeWallet(ctx, cfg.Signer.KeyFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Node.RPC == "" {
		if needProvider {
			return nil, nil, errs.New(errs.MissingArgument, "missing node endpoint, use --rpc", nil)
		}
		return accounts.NewSigner(wallet, nil), func() {}, nil
	}
	var opts []rpc.ClientOption
	if cfg.Node.JWTSecret != "" {
		secret, err := rpc.ReadJWTSecret(cfg.Node.JWTSecret)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, rpc.WithHTTPAuth(rpc.NewJWTAuth(secret)))
	}
	client, err := ethclient.DialOptions(ctx.Context, cfg.Node.RPC, opts...)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Connected to node", "url", cfg.Node.RPC, "account", wallet.Address())
	return accounts.NewSigner(wallet, client), client.Close, nil
}

func txSign(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	fields, err := utils.MakeTxFields(ctx, cfg.Signer.TxType)
	if err != nil {
		return err
	}
	signer, closeFn, err := makeSigner(ctx, &cfg, false)
	if err != nil {
		return err
	}
	defer closeFn()

	c, cancel := context.WithTimeout(ctx.Context, cfg.Node.Timeout)
	defer cancel()

	if signer.Provider() != nil {
		if fields, err = signer.PopulateTransaction(c, fields); err != nil {
			return err
		}
	} else if fields.ChainID == nil {
		fields.ChainID = cfg.Node.chainID()
	}
	tx, err := signer.SignTransaction(c, fields)
	if err != nil {
		return err
	}
	raw, err := tx.Serialized()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(raw))
	return nil
}

func txSend(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	fields, err := utils.MakeTxFields(ctx, cfg.Signer.TxType)
	if err != nil {
		return err
	}
	signer, closeFn, err := makeSigner(ctx, &cfg, true)
	if err != nil {
		return err
	}
	defer closeFn()

	c, cancel := context.WithTimeout(ctx.Context, cfg.Node.Timeout)
	defer cancel()

	resp, err := signer.SendTransaction(c, fields)
	if err != nil {
		return err
	}
	log.Info("Submitted transaction", "hash", resp.Hash, "from", resp.From, "nonce", resp.Tx.Nonce())
	fmt.Fprintln(ctx.App.Writer, resp.Hash.Hex())
	return nil
}

func sigSplit(ctx *cli.Context) error {
	if err := checkArgs(ctx, 1); err != nil {
		return err
	}
	sig, err := crypto.SignatureFrom(ctx.Args().First())
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintln(w, "r:       ", hexutil.Encode(sig.R()))
	fmt.Fprintln(w, "s:       ", hexutil.Encode(sig.S()))
	fmt.Fprintln(w, "v:       ", sig.V())
	fmt.Fprintln(w, "yParity: ", sig.YParity())
	if nv := sig.NetworkV(); nv != nil {
		fmt.Fprintln(w, "networkV:", nv)
	} else {
		fmt.Fprintln(w, "networkV: null")
	}
	fmt.Fprintln(w, "compact: ", hexutil.Encode(sig.CompactSerialized()))
	fmt.Fprintln(w, "full:    ", hexutil.Encode(sig.Serialized()))
	return nil
}
