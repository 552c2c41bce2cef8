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

package types

import (
	"crypto/ecdsa"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

// SignTx signs the unsigned hash of the transaction with the given private key
// and returns the signed copy.
// SignTx 使用给定私钥对交易的未签名哈希签名，并返回已签名的副本。
func SignTx(tx *Transaction, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := tx.UnsignedHash()
	sig, err := crypto.SignDigest(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(sig)
}

// SignNewTx creates a transaction and signs it.
// SignNewTx 创建交易并签名。
func SignNewTx(prv *ecdsa.PrivateKey, txdata TxData) (*Transaction, error) {
	return SignTx(NewTx(txdata), prv)
}

// MustSignNewTx creates a transaction and signs it.
// This panics if the transaction cannot be signed.
func MustSignNewTx(prv *ecdsa.PrivateKey, txdata TxData) *Transaction {
	tx, err := SignNewTx(prv, txdata)
	if err != nil {
		panic(err)
	}
	return tx
}

// Sender returns the address derived from the signature using secp256k1
// recovery, and an error if the transaction is unsigned or recovery fails.
//
// The recovered address is cached on the transaction.
//
// Sender 返回通过 secp256k1 恢复得到的签名者地址，交易未签名或恢复失败时返回错误。
func Sender(tx *Transaction) (common.Address, error) {
	from, err := tx.From()
	if err != nil {
		return common.Address{}, err
	}
	if from == nil {
		return common.Address{}, errs.Wrap(errs.InvalidArgument, "transaction is not signed", ErrInvalidSig)
	}
	return *from, nil
}
