// Copyright 2024 The go-ethereum Authors
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
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

// TxFields is a partially populated transaction. Nil fields are absent and get
// filled in by a signer or defaulted when the transaction is built.
//
// A nil AccessList is absent, a non-nil empty one is present.
//
// TxFields 是部分填充的交易，nil 字段表示缺失。
type TxFields struct {
	Type                 *uint8
	To                   *common.Address
	From                 *common.Address
	Nonce                *uint64
	GasLimit             *uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Data                 []byte
	Value                *big.Int
	ChainID              *big.Int
	AccessList           AccessList
	Signature            *crypto.Signature
	Hash                 *common.Hash
}

// Copy returns a deep copy of the fields.
// Copy 返回字段的深拷贝。
func (f *TxFields) Copy() TxFields {
	cpy := TxFields{
		To:         copyAddressPtr(f.To),
		From:       copyAddressPtr(f.From),
		Data:       common.CopyBytes(f.Data),
		AccessList: f.AccessList.copy(),
	}
	if f.Type != nil {
		t := *f.Type
		cpy.Type = &t
	}
	if f.Nonce != nil {
		n := *f.Nonce
		cpy.Nonce = &n
	}
	if f.GasLimit != nil {
		g := *f.GasLimit
		cpy.GasLimit = &g
	}
	if f.Hash != nil {
		h := *f.Hash
		cpy.Hash = &h
	}
	if f.Signature != nil {
		cpy.Signature = f.Signature.Clone()
	}
	cpy.GasPrice = copyBigPtr(f.GasPrice)
	cpy.MaxFeePerGas = copyBigPtr(f.MaxFeePerGas)
	cpy.MaxPriorityFeePerGas = copyBigPtr(f.MaxPriorityFeePerGas)
	cpy.Value = copyBigPtr(f.Value)
	cpy.ChainID = copyBigPtr(f.ChainID)
	return cpy
}

// copyBigPtr copies a big integer, keeping nil as nil.
func copyBigPtr(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func (f *TxFields) hasFeeMarket() bool {
	return f.MaxFeePerGas != nil || f.MaxPriorityFeePerGas != nil
}

// InferTypes returns the transaction types compatible with the populated fields,
// most preferred first.
//
//   - an explicit Type must agree with the populated fee fields
//   - maxFeePerGas or maxPriorityFeePerGas select the fee market type
//   - gasPrice selects legacy or access list, the latter only with an access list
//   - an access list alone allows access list and fee market
//   - nothing set allows every type, fee market first
//
// InferTypes 返回与已填充字段兼容的交易类型，优先级最高的在前。
func (f *TxFields) InferTypes() ([]uint8, error) {
	hasGasPrice := f.GasPrice != nil
	hasFee := f.hasFeeMarket()
	hasAccessList := f.AccessList != nil

	if f.MaxFeePerGas != nil && f.MaxPriorityFeePerGas != nil && f.MaxFeePerGas.Cmp(f.MaxPriorityFeePerGas) < 0 {
		return nil, errs.NewInvalidArgument("priority fee cannot be more than maxFee", "maxPriorityFeePerGas", f.MaxPriorityFeePerGas)
	}
	if hasGasPrice && hasFee {
		return nil, errs.NewInvalidArgument("eip-1559 transaction do not support gasPrice", "gasPrice", f.GasPrice)
	}
	if f.Type != nil {
		switch *f.Type {
		case LegacyTxType:
			if hasAccessList {
				return nil, errs.NewInvalidArgument("legacy transaction cannot have accessList", "accessList", f.AccessList)
			}
			fallthrough
		case AccessListTxType:
			if hasFee {
				return nil, errs.NewInvalidArgument("pre-eip-1559 transaction do not support maxFeePerGas/maxPriorityFeePerGas", "type", *f.Type)
			}
		case DynamicFeeTxType:
			if hasGasPrice {
				return nil, errs.NewInvalidArgument("eip-1559 transaction do not support gasPrice", "gasPrice", f.GasPrice)
			}
		default:
			e := errs.NewUnsupported("unsupported transaction type", "inferTypes")
			e.Info = map[string]interface{}{"type": *f.Type}
			e.Err = ErrTxTypeNotSupported
			return nil, e
		}
		return []uint8{*f.Type}, nil
	}

	switch {
	case hasFee:
		return []uint8{DynamicFeeTxType}, nil
	case hasGasPrice && hasAccessList:
		return []uint8{AccessListTxType}, nil
	case hasGasPrice:
		return []uint8{LegacyTxType, AccessListTxType}, nil
	case hasAccessList:
		return []uint8{AccessListTxType, DynamicFeeTxType}, nil
	default:
		return []uint8{DynamicFeeTxType, AccessListTxType, LegacyTxType}, nil
	}
}

// NewTransactionFromFields builds a transaction of the first inferred type.
// Absent numeric fields default to zero. A supplied signature produces a signed
// transaction, and a supplied From or Hash must match it.
//
// NewTransactionFromFields 使用第一个推断出的类型构建交易。
func NewTransactionFromFields(f TxFields) (*Transaction, error) {
	types, err := f.InferTypes()
	if err != nil {
		return nil, err
	}
	var (
		nonce uint64
		gas   uint64
	)
	if f.Nonce != nil {
		nonce = *f.Nonce
	}
	if f.GasLimit != nil {
		gas = *f.GasLimit
	}

	var inner TxData
	switch types[0] {
	case LegacyTxType:
		inner = &LegacyTx{
			Nonce:    nonce,
			GasPrice: f.GasPrice,
			Gas:      gas,
			To:       f.To,
			Value:    f.Value,
			Data:     f.Data,
			ChainID:  f.ChainID,
		}
	case AccessListTxType:
		inner = &AccessListTx{
			ChainID:    f.ChainID,
			Nonce:      nonce,
			GasPrice:   f.GasPrice,
			Gas:        gas,
			To:         f.To,
			Value:      f.Value,
			Data:       f.Data,
			AccessList: nonNilAccessList(f.AccessList),
		}
	default:
		inner = &DynamicFeeTx{
			ChainID:    f.ChainID,
			Nonce:      nonce,
			GasTipCap:  f.MaxPriorityFeePerGas,
			GasFeeCap:  f.MaxFeePerGas,
			Gas:        gas,
			To:         f.To,
			Value:      f.Value,
			Data:       f.Data,
			AccessList: nonNilAccessList(f.AccessList),
		}
	}
	tx := NewTx(inner)
	if f.Signature != nil {
		if tx, err = tx.WithSignature(f.Signature); err != nil {
			return nil, err
		}
	}
	if f.From != nil {
		if !tx.IsSigned() {
			return nil, errs.NewInvalidArgument("unsigned transaction cannot define from", "from", f.From.Hex())
		}
		from, err := tx.From()
		if err != nil {
			return nil, err
		}
		if *from != *f.From {
			return nil, errs.NewInvalidArgument("from mismatch", "from", f.From.Hex())
		}
	}
	if f.Hash != nil {
		if !tx.IsSigned() {
			return nil, errs.NewInvalidArgument("unsigned transaction cannot define hash", "hash", f.Hash.Hex())
		}
		if tx.Hash() != *f.Hash {
			return nil, errs.NewInvalidArgument("hash mismatch", "hash", f.Hash.Hex())
		}
	}
	return tx, nil
}

func nonNilAccessList(al AccessList) AccessList {
	if al == nil {
		return AccessList{}
	}
	return al
}

// Fields returns the populated field set of the transaction. From is included
// when the sender can be recovered.
// Fields 返回交易的字段集合，发送者可恢复时包含 From。
func (tx *Transaction) Fields() TxFields {
	typ := tx.Type()
	nonce, gas := tx.Nonce(), tx.Gas()
	f := TxFields{
		Type:      &typ,
		To:        tx.To(),
		Nonce:     &nonce,
		GasLimit:  &gas,
		Data:      tx.Data(),
		Value:     tx.Value(),
		ChainID:   tx.ChainId(),
		Signature: tx.Signature(),
	}
	switch typ {
	case LegacyTxType:
		f.GasPrice = tx.GasPrice()
	case AccessListTxType:
		f.GasPrice = tx.GasPrice()
		f.AccessList = nonNilAccessList(tx.AccessList())
	default:
		f.MaxFeePerGas = tx.GasFeeCap()
		f.MaxPriorityFeePerGas = tx.GasTipCap()
		f.AccessList = nonNilAccessList(tx.AccessList())
	}
	if tx.IsSigned() {
		if from, err := tx.From(); err == nil {
			f.From = from
		}
		hash := tx.Hash()
		f.Hash = &hash
	}
	return f
}
