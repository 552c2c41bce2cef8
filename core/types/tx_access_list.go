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
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/rlp"
)

// AccessList is an EIP-2930 access list.
// AccessList 是 EIP-2930 访问列表。
type AccessList []AccessTuple

// AccessTuple is the element type of an access list.
// AccessTuple 是访问列表的元素类型。
type AccessTuple struct {
	Address     common.Address `json:"address"`
	StorageKeys []common.Hash  `json:"storageKeys"`
}

// StorageKeys returns the total number of storage keys in the access list.
// StorageKeys 返回访问列表中存储键的总数。
func (al AccessList) StorageKeys() int {
	sum := 0
	for _, tuple := range al {
		sum += len(tuple.StorageKeys)
	}
	return sum
}

// copy returns a deep copy of the list. A nil list stays nil.
func (al AccessList) copy() AccessList {
	if al == nil {
		return nil
	}
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		cpy[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: append([]common.Hash{}, tuple.StorageKeys...),
		}
	}
	return cpy
}

// item encodes the list as [[address, [key, ...]], ...].
// item 将访问列表编码为 [[address, [key, ...]], ...]。
func (al AccessList) item() rlp.Item {
	tuples := make([]rlp.Item, len(al))
	for i := range al {
		keys := make([]rlp.Item, len(al[i].StorageKeys))
		for j := range al[i].StorageKeys {
			keys[j] = rlp.NewString(al[i].StorageKeys[j].Bytes())
		}
		tuples[i] = rlp.NewList(rlp.NewString(al[i].Address.Bytes()), rlp.NewList(keys...))
	}
	return rlp.NewList(tuples...)
}

func decodeAccessList(item rlp.Item) (AccessList, error) {
	invalid := func() error {
		return errs.NewInvalidArgument("invalid access list", "accessList", item.String())
	}
	if !item.IsList() {
		return nil, invalid()
	}
	al := make(AccessList, 0, item.Len())
	for _, tuple := range item.Items() {
		if !tuple.IsList() || tuple.Len() != 2 {
			return nil, invalid()
		}
		addr, keys := tuple.Items()[0], tuple.Items()[1]
		if addr.IsList() || len(addr.Bytes()) != common.AddressLength || !keys.IsList() {
			return nil, invalid()
		}
		entry := AccessTuple{
			Address:     common.BytesToAddress(addr.Bytes()),
			StorageKeys: make([]common.Hash, 0, keys.Len()),
		}
		for _, key := range keys.Items() {
			if key.IsList() || len(key.Bytes()) != common.HashLength {
				return nil, invalid()
			}
			entry.StorageKeys = append(entry.StorageKeys, common.BytesToHash(key.Bytes()))
		}
		al = append(al, entry)
	}
	return al, nil
}

// AccessListTx is the data of EIP-2930 access list transactions.
// AccessListTx 是 EIP-2930 访问列表交易的数据。
type AccessListTx struct {
	ChainID    *big.Int        // destination chain ID
	Nonce      uint64          // nonce of sender account
	GasPrice   *big.Int        // wei per gas
	Gas        uint64          // gas limit
	To         *common.Address // nil means contract creation
	Value      *big.Int        // wei amount
	Data       []byte          // contract invocation input data
	AccessList AccessList      // EIP-2930 access list
	V, R, S    *big.Int        // signature values, V is the y parity
}

// copy creates a deep copy of the transaction data and initializes all fields.
// Signature values stay nil when they are not set.
func (tx *AccessListTx) copy() TxData {
	cpy := &AccessListTx{
		Nonce:      tx.Nonce,
		To:         copyAddressPtr(tx.To),
		Data:       common.CopyBytes(tx.Data),
		Gas:        tx.Gas,
		AccessList: tx.AccessList.copy(),
		Value:      copyBig(tx.Value),
		ChainID:    copyBig(tx.ChainID),
		GasPrice:   copyBig(tx.GasPrice),
	}
	cpy.V, cpy.R, cpy.S = copySignatureValues(tx.V, tx.R, tx.S)
	return cpy
}

// accessors for innerTx.
func (tx *AccessListTx) txType() byte           { return AccessListTxType }
func (tx *AccessListTx) chainID() *big.Int      { return tx.ChainID }
func (tx *AccessListTx) accessList() AccessList { return tx.AccessList }
func (tx *AccessListTx) data() []byte           { return tx.Data }
func (tx *AccessListTx) gas() uint64            { return tx.Gas }
func (tx *AccessListTx) gasPrice() *big.Int     { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *big.Int    { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *big.Int    { return tx.GasPrice }
func (tx *AccessListTx) value() *big.Int        { return tx.Value }
func (tx *AccessListTx) nonce() uint64          { return tx.Nonce }
func (tx *AccessListTx) to() *common.Address    { return tx.To }

func (tx *AccessListTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *AccessListTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

// fields returns [chainId, nonce, gasPrice, gasLimit, to, value, data, accessList].
func (tx *AccessListTx) fields() []rlp.Item {
	return []rlp.Item{
		rlp.NewBig(tx.ChainID),
		rlp.NewUint(tx.Nonce),
		rlp.NewBig(tx.GasPrice),
		rlp.NewUint(tx.Gas),
		addressItem(tx.To),
		rlp.NewBig(tx.Value),
		rlp.NewString(tx.Data),
		tx.AccessList.item(),
	}
}

func (tx *AccessListTx) decodeFields(f []rlp.Item) error {
	d := fieldDecoder{items: f}
	tx.ChainID = d.big("chainId")
	tx.Nonce = d.uint("nonce")
	tx.GasPrice = d.big("gasPrice")
	tx.Gas = d.uint("gasLimit")
	tx.To = d.address("to")
	tx.Value = d.big("value")
	tx.Data = d.bytes("data")
	tx.AccessList = d.accessList("accessList")
	return d.err
}
