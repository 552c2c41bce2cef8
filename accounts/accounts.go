// Copyright 2017 The go-ethereum Authors
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


// Package accounts implements transaction signing on top of a network provider.
//
// A Signer couples a KeyHolder, which owns the key material, with an
// ethereum.Provider, which supplies nonces, gas estimates, fee data and the
// network identity. The Signer fills in the missing fields of a partial
// transaction, builds the envelope, has the key holder sign it and broadcasts
// the result.
//
// Package accounts 在网络 provider 之上实现交易签名。
package accounts

import (
	"context"
	"fmt"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/crypto"
	"golang.org/x/crypto/sha3"
)

// KeyHolder owns the key material of one account.
// KeyHolder 持有一个账户的密钥材料。
type KeyHolder interface {
	// Address returns the account the holder signs for.
	Address() common.Address

	// SignTransaction signs the unsigned hash of tx and returns the signed copy.
	// SignTransaction 对 tx 的未签名哈希签名并返回已签名的副本。
	SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error)

	// SignMessage signs the EIP-191 text hash of msg.
	// SignMessage 对 msg 的 EIP-191 文本哈希签名。
	SignMessage(ctx context.Context, msg []byte) (*crypto.Signature, error)
}

// TextHash is a helper function that calculates a hash for the given message that can be
// safely used to calculate a signature from.
//
// The hash is calculated as
//
//	keccak256("\x19Ethereum Signed Message:\n"${message length}${message}).
//
// This gives context to the signed message and prevents signing of transactions.
// TextHash 计算给定消息的哈希值，该哈希值可以安全地用于计算签名。
func TextHash(data []byte) []byte {
	hash, _ := TextAndHash(data)
	return hash
}

// TextAndHash is like TextHash but also returns the prefixed message that was hashed.
// TextAndHash 与 TextHash 相同，但同时返回被哈希的带前缀消息。
func TextAndHash(data []byte) ([]byte, string) {
	msg := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(msg))
	return hasher.Sum(nil), msg
}

// VerifyMessage returns the address that signed msg with SignMessage.
// VerifyMessage 返回使用 SignMessage 对 msg 签名的地址。
func VerifyMessage(msg []byte, sig *crypto.Signature) (common.Address, error) {
	return crypto.RecoverAddress(TextHash(msg), sig)
}
