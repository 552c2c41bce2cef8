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


package accounts

import (
	"context"
	"crypto/ecdsa"

	"github.com/sunyihoo/goethers"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
)

// Wallet is a KeyHolder backed by an in-memory secp256k1 private key.
// Wallet 是由内存中的 secp256k1 私钥支持的 KeyHolder。
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewWallet creates a wallet for the given private key.
// NewWallet 为给定私钥创建钱包。
func NewWallet(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// HexToWallet parses a hex encoded private key, with or without 0x prefix.
// HexToWallet 解析十六进制编码的私钥，可带或不带 0x 前缀。
func HexToWallet(hexkey string) (*Wallet, error) {
	if len(hexkey) >= 2 && hexkey[0] == '0' && (hexkey[1] == 'x' || hexkey[1] == 'X') {
		hexkey = hexkey[2:]
	}
	key, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid private key", err)
	}
	return NewWallet(key), nil
}

// LoadWallet reads a hex encoded private key from file.
// LoadWallet 从文件读取十六进制编码的私钥。
func LoadWallet(file string) (*Wallet, error) {
	key, err := crypto.LoadECDSA(file)
	if err != nil {
		return nil, err
	}
	return NewWallet(key), nil
}

// Address implements KeyHolder.
func (w *Wallet) Address() common.Address {
	return w.address
}

// PrivateKey returns the key of the wallet.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.key
}

// SignTransaction implements KeyHolder. Legacy transactions bound to a chain id
// get an EIP-155 v value.
// SignTransaction 实现 KeyHolder，绑定链 ID 的传统交易会得到 EIP-155 的 v 值。
func (w *Wallet) SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	return types.SignTx(tx, w.key)
}

// SignMessage implements KeyHolder.
func (w *Wallet) SignMessage(ctx context.Context, msg []byte) (*crypto.Signature, error) {
	return crypto.SignDigest(TextHash(msg), w.key)
}

// VoidSigner is a KeyHolder for an address without a key. It can populate,
// estimate and call but every sign operation fails.
//
// VoidSigner 是没有私钥的地址对应的 KeyHolder，可以填充、估算和调用，但所有签名操作都会失败。
type VoidSigner struct {
	address common.Address
}

// NewVoidSigner returns a signer for address that cannot sign.
// NewVoidSigner 返回一个无法签名的 address 签名者。
func NewVoidSigner(address common.Address, provider ethereum.Provider) *Signer {
	return NewSigner(&VoidSigner{address: address}, provider)
}

// Address implements KeyHolder.
func (v *VoidSigner) Address() common.Address {
	return v.address
}

// SignTransaction implements KeyHolder, it always fails.
func (v *VoidSigner) SignTransaction(context.Context, *types.Transaction) (*types.Transaction, error) {
	return nil, cannotSign("transactions", "signTransaction")
}

// SignMessage implements KeyHolder, it always fails.
func (v *VoidSigner) SignMessage(context.Context, []byte) (*crypto.Signature, error) {
	return nil, cannotSign("messages", "signMessage")
}
