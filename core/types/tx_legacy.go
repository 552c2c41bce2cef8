// Copyright 2021 The go-ethereum Authors
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

package types

import (
	"math/big"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/rlp"
)

// LegacyTx is the transaction data of the original Ethereum transactions.
//
// ChainID is not part of the legacy wire format. A non-zero value selects the
// EIP-155 signing payload and is folded into V once the transaction is signed.
//
// LegacyTx 是原始以太坊交易的数据。ChainID 不属于 legacy 的线格式，非零时使用
// EIP-155 签名负载，签名后编码进 V。
type LegacyTx struct {
	Nonce    uint64          // nonce of sender account 发送者账户的 nonce
	GasPrice *big.Int        // wei per gas 每单位 Gas 的价格（单位 Wei）
	Gas      uint64          // gas limit Gas 限制
	To       *common.Address // nil means contract creation；nil 表示合约创建
	Value    *big.Int        // wei amount Wei 金额
	Data     []byte          // contract invocation input data 合约调用的输入数据
	ChainID  *big.Int        // EIP-155 chain id, zero for pre-EIP-155 transactions
	V, R, S  *big.Int        // signature values 签名值
}

// NewTransaction creates an unsigned legacy transaction.
// Deprecated: use NewTx instead.
// NewTransaction 创建一个未签名的 legacy 交易。
func NewTransaction(nonce uint64, to common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return NewTx(&LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    amount,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
}

// NewContractCreation creates an unsigned legacy transaction.
// Deprecated: use NewTx instead.
func NewContractCreation(nonce uint64, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return NewTx(&LegacyTx{
		Nonce:    nonce,
		Value:    amount,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
}

// copy creates a deep copy of the transaction data and initializes all fields.
// copy 创建交易数据的深拷贝并初始化所有字段。
func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce:    tx.Nonce,
		To:       copyAddressPtr(tx.To),
		Data:     common.CopyBytes(tx.Data),
		Gas:      tx.Gas,
		Value:    copyBig(tx.Value),
		GasPrice: copyBig(tx.GasPrice),
		ChainID:  copyBig(tx.ChainID),
	}
	cpy.V, cpy.R, cpy.S = copySignatureValues(tx.V, tx.R, tx.S)
	return cpy
}

// accessors for innerTx.
func (tx *LegacyTx) txType() byte           { return LegacyTxType }
func (tx *LegacyTx) chainID() *big.Int      { return tx.ChainID }
func (tx *LegacyTx) accessList() AccessList { return nil }
func (tx *LegacyTx) data() []byte           { return tx.Data }
func (tx *LegacyTx) gas() uint64            { return tx.Gas }
func (tx *LegacyTx) gasPrice() *big.Int     { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *big.Int    { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *big.Int    { return tx.GasPrice }
func (tx *LegacyTx) value() *big.Int        { return tx.Value }
func (tx *LegacyTx) nonce() uint64          { return tx.Nonce }
func (tx *LegacyTx) to() *common.Address    { return tx.To }

func (tx *LegacyTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *LegacyTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

// fields returns [nonce, gasPrice, gasLimit, to, value, data].
func (tx *LegacyTx) fields() []rlp.Item {
	return []rlp.Item{
		rlp.NewUint(tx.Nonce),
		rlp.NewBig(tx.GasPrice),
		rlp.NewUint(tx.Gas),
		addressItem(tx.To),
		rlp.NewBig(tx.Value),
		rlp.NewString(tx.Data),
	}
}

func (tx *LegacyTx) decodeFields(f []rlp.Item) error {
	d := fieldDecoder{items: f}
	tx.Nonce = d.uint("nonce")
	tx.GasPrice = d.big("gasPrice")
	tx.Gas = d.uint("gasLimit")
	tx.To = d.address("to")
	tx.Value = d.big("value")
	tx.Data = d.bytes("data")
	tx.ChainID = new(big.Int)
	return d.err
}
