// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for the ethkit command.
package utils

import (
	"time"

	"github.com/sunyihoo/goethers/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Node settings
	RPCFlag = &cli.StringFlag{
		Name:     "rpc",
		Usage:    "JSON-RPC endpoint of the node (http://, https://, ws:// or wss://)",
		Category: flags.NodeCategory,
	}
	RPCTimeoutFlag = &cli.DurationFlag{
		Name:     "rpc.timeout",
		Usage:    "Timeout of a single command talking to the node",
		Value:    30 * time.Second,
		Category: flags.NodeCategory,
	}
	JWTSecretFlag = &flags.PathFlag{
		Name:     "rpc.jwtsecret",
		Usage:    "Path to a hex encoded JWT secret used to authenticate against the node",
		Category: flags.NodeCategory,
	}
	ChainIDFlag = &flags.BigFlag{
		Name:     "chainid",
		Usage:    "Chain id used for offline signing and checked against the node",
		Category: flags.NodeCategory,
	}

	// Account settings
	KeyFileFlag = &flags.PathFlag{
		Name:     "keyfile",
		Usage:    "File holding the hex encoded private key of the signing account",
		Category: flags.AccountCategory,
	}

	// Transaction fields
	TxTypeFlag = &cli.StringFlag{
		Name:     "type",
		Usage:    "Transaction type (legacy|accesslist|eip1559), inferred from the fee fields if empty",
		Category: flags.TxCategory,
	}
	ToFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "Recipient address, empty for contract creation",
		Category: flags.TxCategory,
	}
	ValueFlag = &cli.StringFlag{
		Name:     "value",
		Usage:    "Amount to transfer, in wei unless suffixed with gwei or ether",
		Category: flags.TxCategory,
	}
	DataFlag = &cli.StringFlag{
		Name:     "data",
		Usage:    "Hex encoded call data",
		Category: flags.TxCategory,
	}
	NonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Account nonce, fetched from the node if not set",
		Category: flags.TxCategory,
	}
	GasLimitFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit, estimated by the node if not set",
		Category: flags.TxCategory,
	}
	GasPriceFlag = &cli.StringFlag{
		Name:     "gasprice",
		Usage:    "Gas price of pre-eip-1559 transactions (e.g. 20gwei)",
		Category: flags.TxCategory,
	}
	MaxFeeFlag = &cli.StringFlag{
		Name:     "maxfee",
		Usage:    "Maximum fee per gas (e.g. 30gwei)",
		Category: flags.TxCategory,
	}
	MaxPriorityFeeFlag = &cli.StringFlag{
		Name:     "tip",
		Usage:    "Maximum priority fee per gas (e.g. 1.5gwei)",
		Category: flags.TxCategory,
	}

	// Output
	DumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "Dump decoded Go values in addition to the JSON view",
		Category: flags.MiscCategory,
	}
)

// NodeFlags are the flags needed to reach the node.
var NodeFlags = []cli.Flag{
	RPCFlag,
	RPCTimeoutFlag,
	JWTSecretFlag,
	ChainIDFlag,
}

// TxFlags are the flags describing a transaction to build.
var TxFlags = []cli.Flag{
	KeyFileFlag,
	TxTypeFlag,
	ToFlag,
	ValueFlag,
	DataFlag,
	NonceFlag,
	GasLimitFlag,
	GasPriceFlag,
	MaxFeeFlag,
	MaxPriorityFeeFlag,
}
