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

// DynamicFeeTx represents an EIP-1559 transaction.
// DynamicFeeTx 表示 EIP-1559 交易。
type DynamicFeeTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int // a.k.a. maxPriorityFeePerGas 又称 maxPriorityFeePerGas
	GasFeeCap  *big.Int // a.k.a. maxFeePerGas 又称 maxFeePerGas
	Gas        uint64
	To         *common.Address // nil means contract creation
	Value      *big.Int
	Data       []byte
	AccessList AccessList

	// Signature values
	// 签名值，V 为 y 奇偶性（0 或 1）
	V *big.Int
	R *big.Int
	S *big.Int
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *DynamicFeeTx) copy() TxData {
	cpy := &DynamicFeeTx{
		Nonce:      tx.Nonce,
		To:         copyAddressPtr(tx.To),
		Data:       common.CopyBytes(tx.Data),
		Gas:        tx.Gas,
		AccessList: tx.AccessList.copy(),
		Value:      copyBig(tx.Value),
		ChainID:    copyBig(tx.ChainID),
		GasTipCap:  copyBig(tx.GasTipCap),
		GasFeeCap:  copyBig(tx.GasFeeCap),
	}
	cpy.V, cpy.R, cpy.S = copySignatureValues(tx.V, tx.R, tx.S)
	return cpy
}

// accessors for innerTx.
func (tx *DynamicFeeTx) txType() byte           { return DynamicFeeTxType }
func (tx *DynamicFeeTx) chainID() *big.Int      { return tx.ChainID }
func (tx *DynamicFeeTx) accessList() AccessList { return tx.AccessList }
func (tx *DynamicFeeTx) data() []byte           { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64            { return tx.Gas }
func (tx *DynamicFeeTx) gasFeeCap() *big.Int    { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *big.Int    { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasPrice() *big.Int     { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *big.Int        { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64          { return tx.Nonce }
func (tx *DynamicFeeTx) to() *common.Address    { return tx.To }

func (tx *DynamicFeeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *DynamicFeeTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

// fields returns [chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit,
// to, value, data, accessList].
func (tx *DynamicFeeTx) fields() []rlp.Item {
	return []rlp.Item{
		rlp.NewBig(tx.ChainID),
		rlp.NewUint(tx.Nonce),
		rlp.NewBig(tx.GasTipCap),
		rlp.NewBig(tx.GasFeeCap),
		rlp.NewUint(tx.Gas),
		addressItem(tx.To),
		rlp.NewBig(tx.Value),
		rlp.NewString(tx.Data),
		tx.AccessList.item(),
	}
}

func (tx *DynamicFeeTx) decodeFields(f []rlp.Item) error {
	d := fieldDecoder{items: f}
	tx.ChainID = d.big("chainId")
	tx.Nonce = d.uint("nonce")
	tx.GasTipCap = d.big("maxPriorityFeePerGas")
	tx.GasFeeCap = d.big("maxFeePerGas")
	tx.Gas = d.uint("gasLimit")
	tx.To = d.address("to")
	tx.Value = d.big("value")
	tx.Data = d.bytes("data")
	tx.AccessList = d.accessList("accessList")
	return d.err
}
