// Copyright 2016 The go-ethereum Authors
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

// Package ethereum defines interfaces for interacting with Ethereum.
// Package ethereum 定义了与以太坊交互的接口。
package ethereum

import (
	"context"
	"errors"
	"math/big"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/core/types"
)

// NotFound is returned by API methods if the requested item does not exist.
// NotFound 由 API 方法返回，如果请求的项不存在。
var NotFound = errors.New("not found")

// Block tags understood by the nonce and call methods.
// nonce 和调用方法支持的区块标签。
const (
	BlockLatest  = "latest"
	BlockPending = "pending"
)

// CallMsg contains parameters for contract calls and gas estimation.
// CallMsg 包含合约调用和 Gas 估算的参数。
type CallMsg struct {
	From      *common.Address // the sender of the 'transaction', nil if unknown
	To        *common.Address // the destination contract (nil for contract creation)
	Gas       uint64          // if 0, the call executes with near-infinite gas
	GasPrice  *big.Int        // wei <-> gas exchange ratio
	GasFeeCap *big.Int        // EIP-1559 fee cap per gas.
	GasTipCap *big.Int        // EIP-1559 tip per gas.
	Value     *big.Int        // amount of wei sent along with the call
	Data      []byte          // input data, usually an ABI-encoded contract method invocation

	AccessList types.AccessList // EIP-2930 access list.
	Type       *uint8           // transaction type, nil lets the node decide
	ChainID    *big.Int
	Nonce      *uint64
}

// FeeData holds the current fee suggestions of a network. Fields are nil when the
// network does not support them: GasPrice on every network, the max fee fields
// only where blocks carry a base fee.
// FeeData 保存网络当前的费用建议，网络不支持的字段为 nil。
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Network identifies the chain a provider is connected to.
// Network 标识 provider 所连接的链。
type Network struct {
	Name    string
	ChainID *big.Int
}

// TransactionResponse is a transaction accepted by a node for inclusion.
// TransactionResponse 是节点已接受、等待打包的交易。
type TransactionResponse struct {
	Hash common.Hash
	From common.Address
	Tx   *types.Transaction
}

// A ContractCaller provides contract calls, essentially transactions that are executed by
// the EVM but not mined into the blockchain.
// ContractCaller 提供合约调用，即由 EVM 执行但不被打包进区块链的交易。
type ContractCaller interface {
	Call(ctx context.Context, call CallMsg, blockTag string) ([]byte, error)
}

// GasEstimator wraps EstimateGas, which tries to estimate the gas needed to execute a
// specific transaction based on the pending state. There is no guarantee that this is the
// true gas limit requirement, but it should provide a basis for setting a reasonable default.
// GasEstimator 封装了 EstimateGas，它尝试根据待处理状态估算执行特定交易所需的 Gas。
type GasEstimator interface {
	EstimateGas(ctx context.Context, call CallMsg) (uint64, error)
}

// NonceReader provides the transaction count of an account at a block tag.
// NonceReader 提供账户在指定区块标签下的交易计数。
type NonceReader interface {
	GetTransactionCount(ctx context.Context, account common.Address, blockTag string) (uint64, error)
}

// FeeDataReader provides the fee suggestions of the network.
// FeeDataReader 提供网络的费用建议。
type FeeDataReader interface {
	GetFeeData(ctx context.Context) (*FeeData, error)
}

// NetworkReader provides the network the backend is connected to.
type NetworkReader interface {
	GetNetwork(ctx context.Context) (*Network, error)
}

// TransactionBroadcaster submits signed transactions to the network.
// TransactionBroadcaster 将已签名交易提交到网络。
type TransactionBroadcaster interface {
	BroadcastTransaction(ctx context.Context, signedRaw []byte) (*TransactionResponse, error)
}

// Provider is the read and broadcast access to a chain that signers need.
// Provider 是签名者所需的链读取与广播访问。
type Provider interface {
	NonceReader
	GasEstimator
	FeeDataReader
	NetworkReader
	TransactionBroadcaster
	ContractCaller
}
