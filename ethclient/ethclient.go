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


// Package ethclient provides a client for the Ethereum RPC API.
// Package ethclient 提供以太坊 RPC API 的客户端。
package ethclient

import (
	"context"
	"math/big"

	"github.com/sunyihoo/goethers"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/log"
	"github.com/sunyihoo/goethers/params"
	"github.com/sunyihoo/goethers/rpc"
	"golang.org/x/sync/errgroup"
)

// defaultPriorityFee is used when the node cannot suggest a tip (1 gwei).
var defaultPriorityFee = big.NewInt(params.GWei)

// Client defines typed wrappers for the Ethereum RPC API. It implements
// ethereum.Provider.
//
// Client 定义了以太坊 RPC API 的类型化包装，实现了 ethereum.Provider。
type Client struct {
	c   *rpc.Client
	log log.Logger
}

var _ ethereum.Provider = (*Client)(nil)

// Dial connects a client to the given URL.
// Dial 连接到给定的 URL。
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects a client to the given URL with context.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions connects a client to the given URL, configuring the underlying
// RPC client with the given options.
// DialOptions 使用给定的 RPC 客户端选项连接到指定 URL。
func DialOptions(ctx context.Context, rawurl string, opts ...rpc.ClientOption) (*Client, error) {
	c, err := rpc.DialOptions(ctx, rawurl, opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient creates a client that uses the given RPC client.
// NewClient 创建一个使用给定 RPC 客户端的 Client。
func NewClient(c *rpc.Client) *Client {
	return &Client{c: c, log: log.New("module", "ethclient")}
}

// Close closes the underlying RPC connection.
func (ec *Client) Close() {
	ec.c.Close()
}

// Client gets the underlying RPC client.
func (ec *Client) Client() *rpc.Client {
	return ec.c
}

// call performs the RPC call and classifies a failure.
func (ec *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if err := ec.c.CallContext(ctx, result, method, args...); err != nil {
		return classifyError(method, err)
	}
	return nil
}

// ChainID retrieves the current chain ID for transaction replay protection.
// ChainID 检索当前的链 ID，用于交易重放保护。
func (ec *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := ec.call(ctx, &result, "eth_chainId"); err != nil {
		return nil, err
	}
	return (*big.Int)(&result), nil
}

// BlockNumber returns the most recent block number.
func (ec *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := ec.call(ctx, &result, "eth_blockNumber")
	return uint64(result), err
}

// BalanceAt returns the wei balance of the given account at a block tag.
// BalanceAt 返回给定账户在区块标签下的 wei 余额。
func (ec *Client) BalanceAt(ctx context.Context, account common.Address, blockTag string) (*big.Int, error) {
	var result hexutil.Big
	if err := ec.call(ctx, &result, "eth_getBalance", account, toBlockTag(blockTag)); err != nil {
		return nil, err
	}
	return (*big.Int)(&result), nil
}

// GetNetwork returns the chain id of the node with its well known name, or
// "unknown".
// GetNetwork 返回节点的链 ID 及其常用名称。
func (ec *Client) GetNetwork(ctx context.Context) (*ethereum.Network, error) {
	id, err := ec.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	return &ethereum.Network{Name: params.NetworkName(id), ChainID: id}, nil
}

// GetTransactionCount returns the account nonce at the given block tag.
// GetTransactionCount 返回账户在给定区块标签下的 nonce。
func (ec *Client) GetTransactionCount(ctx context.Context, account common.Address, blockTag string) (uint64, error) {
	var result hexutil.Uint64
	err := ec.call(ctx, &result, "eth_getTransactionCount", account, toBlockTag(blockTag))
	return uint64(result), err
}

// Call executes a message call transaction, which is directly executed in the VM
// of the node, but never mined into the blockchain.
//
// Call 执行消息调用交易，直接在节点的 VM 中执行，但不会被打包进区块链。
func (ec *Client) Call(ctx context.Context, msg ethereum.CallMsg, blockTag string) ([]byte, error) {
	var hex hexutil.Bytes
	if err := ec.call(ctx, &hex, "eth_call", toCallArg(msg), toBlockTag(blockTag)); err != nil {
		return nil, err
	}
	return hex, nil
}

// EstimateGas tries to estimate the gas needed to execute a specific transaction based on
// the current pending state of the backend blockchain. There is no guarantee that this is
// the true gas limit requirement as other transactions may be added or removed by miners,
// but it should provide a basis for setting a reasonable default.
//
// EstimateGas 尝试估计执行特定交易所需的 gas。
func (ec *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var hex hexutil.Uint64
	if err := ec.call(ctx, &hex, "eth_estimateGas", toCallArg(msg)); err != nil {
		return 0, err
	}
	return uint64(hex), nil
}

// SuggestGasPrice retrieves the currently suggested gas price.
// SuggestGasPrice 检索当前建议的 gas 价格。
func (ec *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	var hex hexutil.Big
	if err := ec.call(ctx, &hex, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return (*big.Int)(&hex), nil
}

// SuggestGasTipCap retrieves the currently suggested gas tip cap after 1559.
func (ec *Client) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	var hex hexutil.Big
	if err := ec.call(ctx, &hex, "eth_maxPriorityFeePerGas"); err != nil {
		return nil, err
	}
	return (*big.Int)(&hex), nil
}

// latestBaseFee returns the base fee of the latest block, nil before London.
func (ec *Client) latestBaseFee(ctx context.Context) (*big.Int, error) {
	var head *struct {
		BaseFee *hexutil.Big `json:"baseFeePerGas"`
	}
	if err := ec.call(ctx, &head, "eth_getBlockByNumber", ethereum.BlockLatest, false); err != nil {
		return nil, err
	}
	if head == nil {
		return nil, errs.New(errs.BadData, "latest block not found", nil)
	}
	return (*big.Int)(head.BaseFee), nil
}

// GetFeeData returns the gas price of the node and, on networks whose blocks
// carry a base fee, the EIP-1559 fee suggestion:
//
//	maxFeePerGas = 2 * baseFee + maxPriorityFeePerGas
//
// A node without eth_maxPriorityFeePerGas gets a 1 gwei tip, a failing
// eth_gasPrice leaves GasPrice nil.
//
// GetFeeData 返回节点的 gas 价格，以及在区块带有 base fee 的网络上的 EIP-1559 费用建议。
func (ec *Client) GetFeeData(ctx context.Context) (*ethereum.FeeData, error) {
	var (
		gasPrice *big.Int
		baseFee  *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if gasPrice, err = ec.SuggestGasPrice(gctx); err != nil {
			ec.log.Debug("Gas price unavailable", "err", err)
			gasPrice = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		baseFee, err = ec.latestBaseFee(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fees := &ethereum.FeeData{GasPrice: gasPrice}
	if baseFee != nil {
		tip, err := ec.SuggestGasTipCap(ctx)
		if err != nil {
			ec.log.Debug("Priority fee suggestion unavailable", "err", err)
			tip = new(big.Int).Set(defaultPriorityFee)
		}
		fees.MaxPriorityFeePerGas = tip
		fees.MaxFeePerGas = new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), tip)
	}
	ec.log.Trace("Fetched fee data", "gasPrice", fees.GasPrice, "baseFee", baseFee, "maxFee", fees.MaxFeePerGas, "tip", fees.MaxPriorityFeePerGas)
	return fees, nil
}

// BroadcastTransaction submits a signed, serialized transaction. The hash reported
// by the node must match the hash of the transaction.
//
// BroadcastTransaction 提交已签名并序列化的交易，节点返回的哈希必须与交易哈希一致。
func (ec *Client) BroadcastTransaction(ctx context.Context, signedRaw []byte) (*ethereum.TransactionResponse, error) {
	tx, err := types.DecodeTransaction(signedRaw)
	if err != nil {
		return nil, err
	}
	from, err := types.Sender(tx)
	if err != nil {
		return nil, err
	}
	var hash common.Hash
	if err := ec.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(signedRaw)); err != nil {
		return nil, err
	}
	if hash != tx.Hash() {
		e := errs.New(errs.BadData, "transaction hash mismatch", map[string]interface{}{"expected": tx.Hash().Hex(), "returned": hash.Hex()})
		e.Operation = "broadcastTransaction"
		return nil, e
	}
	ec.log.Debug("Broadcast transaction", "hash", hash, "from", from, "nonce", tx.Nonce())
	return &ethereum.TransactionResponse{Hash: hash, From: from, Tx: tx}, nil
}

// SendTransaction injects a signed transaction into the pending pool for execution.
// SendTransaction 将已签名的交易注入待处理池以执行。
func (ec *Client) SendTransaction(ctx context.Context, tx *types.Transaction) (*ethereum.TransactionResponse, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return ec.BroadcastTransaction(ctx, data)
}

func toBlockTag(tag string) string {
	if tag == "" {
		return ethereum.BlockLatest
	}
	return tag
}

func toCallArg(msg ethereum.CallMsg) interface{} {
	arg := map[string]interface{}{
		"from": msg.From,
		"to":   msg.To,
	}
	if len(msg.Data) > 0 {
		arg["input"] = hexutil.Bytes(msg.Data)
	}
	if msg.Value != nil {
		arg["value"] = (*hexutil.Big)(msg.Value)
	}
	if msg.Gas != 0 {
		arg["gas"] = hexutil.Uint64(msg.Gas)
	}
	if msg.GasPrice != nil {
		arg["gasPrice"] = (*hexutil.Big)(msg.GasPrice)
	}
	if msg.GasFeeCap != nil {
		arg["maxFeePerGas"] = (*hexutil.Big)(msg.GasFeeCap)
	}
	if msg.GasTipCap != nil {
		arg["maxPriorityFeePerGas"] = (*hexutil.Big)(msg.GasTipCap)
	}
	if msg.AccessList != nil {
		arg["accessList"] = msg.AccessList
	}
	if msg.Type != nil {
		arg["type"] = hexutil.Uint64(*msg.Type)
	}
	if msg.ChainID != nil {
		arg["chainId"] = (*hexutil.Big)(msg.ChainID)
	}
	if msg.Nonce != nil {
		arg["nonce"] = hexutil.Uint64(*msg.Nonce)
	}
	return arg
}
