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

	"github.com/sunyihoo/goethers"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/crypto"
)

// WrappedSigner forwards every operation to an inner signer. It is meant to be
// embedded by signers that override a subset of the operations, such as nonce
// management.
//
// WrappedSigner 将所有操作转发给内部签名者，用于被只覆盖部分操作的签名者嵌入。
type WrappedSigner struct {
	signer *Signer
}

// NewWrappedSigner wraps s.
func NewWrappedSigner(s *Signer) *WrappedSigner {
	return &WrappedSigner{signer: s}
}

// Unwrap returns the inner signer.
func (w *WrappedSigner) Unwrap() *Signer {
	return w.signer
}

// Connect returns a wrapper around the inner signer connected to provider.
// Connect 返回包装了连接到 provider 的内部签名者的新 WrappedSigner。
func (w *WrappedSigner) Connect(provider ethereum.Provider) *WrappedSigner {
	return NewWrappedSigner(w.signer.Connect(provider))
}

func (w *WrappedSigner) Address() common.Address {
	return w.signer.Address()
}

func (w *WrappedSigner) Provider() ethereum.Provider {
	return w.signer.Provider()
}

func (w *WrappedSigner) GetNonce(ctx context.Context, blockTag string) (uint64, error) {
	return w.signer.GetNonce(ctx, blockTag)
}

func (w *WrappedSigner) PopulateCall(ctx context.Context, tx types.TxFields) (types.TxFields, error) {
	return w.signer.PopulateCall(ctx, tx)
}

func (w *WrappedSigner) PopulateTransaction(ctx context.Context, tx types.TxFields) (types.TxFields, error) {
	return w.signer.PopulateTransaction(ctx, tx)
}

func (w *WrappedSigner) EstimateGas(ctx context.Context, tx types.TxFields) (uint64, error) {
	return w.signer.EstimateGas(ctx, tx)
}

func (w *WrappedSigner) Call(ctx context.Context, tx types.TxFields) ([]byte, error) {
	return w.signer.Call(ctx, tx)
}

func (w *WrappedSigner) SignTransaction(ctx context.Context, tx types.TxFields) (*types.Transaction, error) {
	return w.signer.SignTransaction(ctx, tx)
}

func (w *WrappedSigner) SendTransaction(ctx context.Context, tx types.TxFields) (*ethereum.TransactionResponse, error) {
	return w.signer.SendTransaction(ctx, tx)
}

func (w *WrappedSigner) SignMessage(ctx context.Context, msg []byte) (*crypto.Signature, error) {
	return w.signer.SignMessage(ctx, msg)
}
