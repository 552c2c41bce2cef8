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
	"math/big"

	"github.com/sunyihoo/goethers"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/core/types"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/log"
	"golang.org/x/sync/errgroup"
)

// Signer populates, signs and broadcasts transactions for the account of its
// key holder. The provider may be nil, in which case only the offline
// operations (signing) are available.
//
// Signer 为其密钥持有者的账户填充、签名并广播交易。
type Signer struct {
	holder   KeyHolder
	provider ethereum.Provider
	log      log.Logger
}

// NewSigner creates a signer for the given key holder.
// NewSigner 为给定的密钥持有者创建签名者。
func NewSigner(holder KeyHolder, provider ethereum.Provider) *Signer {
	return &Signer{
		holder:   holder,
		provider: provider,
		log:      log.New("account", holder.Address()),
	}
}

// Address returns the account of the signer.
func (s *Signer) Address() common.Address {
	return s.holder.Address()
}

// Provider returns the connected provider, nil if there is none.
func (s *Signer) Provider() ethereum.Provider {
	return s.provider
}

// Connect returns a signer with the same key holder using the given provider.
// Connect 返回使用相同密钥持有者和给定 provider 的签名者。
func (s *Signer) Connect(provider ethereum.Provider) *Signer {
	return NewSigner(s.holder, provider)
}

func (s *Signer) checkProvider(operation string) (ethereum.Provider, error) {
	if s.provider == nil {
		return nil, missingProvider(operation)
	}
	return s.provider, nil
}

// GetNonce returns the transaction count of the account at blockTag.
// GetNonce 返回账户在 blockTag 下的交易计数。
func (s *Signer) GetNonce(ctx context.Context, blockTag string) (uint64, error) {
	provider, err := s.checkProvider("getTransactionCount")
	if err != nil {
		return 0, err
	}
	return provider.GetTransactionCount(ctx, s.Address(), blockTag)
}

// populate copies the request and sets From to the signer's address, checking
// a supplied From against it.
func (s *Signer) populate(tx types.TxFields) (types.TxFields, error) {
	pop := tx.Copy()
	address := s.Address()
	if pop.From != nil && *pop.From != address {
		return types.TxFields{}, errs.NewInvalidArgument("transaction from mismatch", "tx.from", pop.From.Hex())
	}
	pop.From = &address
	return pop, nil
}

// PopulateCall returns a copy of the request with From filled in.
// PopulateCall 返回填充了 From 的请求副本。
func (s *Signer) PopulateCall(ctx context.Context, tx types.TxFields) (types.TxFields, error) {
	return s.populate(tx)
}

// PopulateTransaction returns a copy of the request with every field needed for
// signing filled in:
//
//   - the nonce from the "pending" transaction count
//   - the gas limit from the provider's estimate
//   - the chain id of the connected network, which a supplied chain id must match
//   - the fee fields, choosing the transaction type from the network's fee data
//
// An untyped request is upgraded to a fee market transaction on networks that
// report EIP-1559 fee data, a supplied gasPrice then becomes both max fee fields.
// Mixing gasPrice with the EIP-1559 fee fields is always rejected.
//
// PopulateTransaction 返回填充了签名所需全部字段的请求副本。
func (s *Signer) PopulateTransaction(ctx context.Context, tx types.TxFields) (types.TxFields, error) {
	provider, err := s.checkProvider("populateTransaction")
	if err != nil {
		return types.TxFields{}, err
	}
	pop, err := s.populate(tx)
	if err != nil {
		return types.TxFields{}, err
	}

	// The goroutines only write their own results, pop is updated after Wait.
	var (
		network *ethereum.Network
		nonce   uint64
		gas     uint64
		call    = toCallMsg(&pop)
	)
	g, gctx := errgroup.WithContext(ctx)
	if pop.Nonce == nil {
		g.Go(func() (err error) {
			nonce, err = s.GetNonce(gctx, ethereum.BlockPending)
			return err
		})
	}
	if pop.GasLimit == nil {
		g.Go(func() (err error) {
			gas, err = provider.EstimateGas(gctx, call)
			return err
		})
	}
	g.Go(func() (err error) {
		network, err = provider.GetNetwork(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.TxFields{}, err
	}
	if pop.Nonce == nil {
		pop.Nonce = &nonce
	}
	if pop.GasLimit == nil {
		pop.GasLimit = &gas
	}

	if pop.ChainID != nil {
		if pop.ChainID.Cmp(network.ChainID) != 0 {
			return types.TxFields{}, errs.NewInvalidArgument("transaction chainId mismatch", "tx.chainId", tx.ChainID)
		}
	} else {
		pop.ChainID = new(big.Int).Set(network.ChainID)
	}

	if err := s.populateFees(ctx, provider, &pop); err != nil {
		return types.TxFields{}, err
	}
	s.log.Trace("Populated transaction", "nonce", *pop.Nonce, "gas", *pop.GasLimit, "chainid", pop.ChainID, "type", *pop.Type)
	return pop, nil
}

// populateFees fills the fee fields and the type of pop.
func (s *Signer) populateFees(ctx context.Context, provider ethereum.Provider, pop *types.TxFields) error {
	var (
		hasEip1559 = pop.MaxFeePerGas != nil || pop.MaxPriorityFeePerGas != nil
		typ        = -1
	)
	if pop.Type != nil {
		typ = int(*pop.Type)
	}
	// Do not allow mixing pre-eip-1559 and eip-1559 properties
	if pop.GasPrice != nil && (typ == types.DynamicFeeTxType || hasEip1559) {
		return errs.NewInvalidArgument("eip-1559 transaction do not support gasPrice", "tx", pop)
	} else if (typ == types.LegacyTxType || typ == types.AccessListTxType) && hasEip1559 {
		return errs.NewInvalidArgument("pre-eip-1559 transaction do not support maxFeePerGas/maxPriorityFeePerGas", "tx", pop)
	}

	setType := func(t uint8) { pop.Type = &t }

	switch {
	case (typ == -1 || typ == types.DynamicFeeTxType) && pop.MaxFeePerGas != nil && pop.MaxPriorityFeePerGas != nil:
		// Fully-formed EIP-1559 transaction, no fee data needed
		setType(types.DynamicFeeTxType)

	case typ == types.LegacyTxType || typ == types.AccessListTxType:
		fees, err := provider.GetFeeData(ctx)
		if err != nil {
			return err
		}
		if fees.GasPrice == nil {
			return errs.NewUnsupported("network does not support gasPrice", "getGasPrice")
		}
		if pop.GasPrice == nil {
			pop.GasPrice = new(big.Int).Set(fees.GasPrice)
		}

	default:
		fees, err := provider.GetFeeData(ctx)
		if err != nil {
			return err
		}
		if typ == -1 {
			switch {
			case fees.MaxFeePerGas != nil && fees.MaxPriorityFeePerGas != nil:
				setType(types.DynamicFeeTxType)
				if pop.GasPrice != nil {
					// a legacy gasPrice on a fee market network is used for both fields
					pop.MaxFeePerGas = new(big.Int).Set(pop.GasPrice)
					pop.MaxPriorityFeePerGas = new(big.Int).Set(pop.GasPrice)
					pop.GasPrice = nil
				} else {
					fillFeeMarket(pop, fees)
				}

			case fees.GasPrice != nil:
				if hasEip1559 {
					return errs.NewUnsupported("network does not support EIP-1559", "populateTransaction")
				}
				if pop.GasPrice == nil {
					pop.GasPrice = new(big.Int).Set(fees.GasPrice)
				}
				setType(types.LegacyTxType)

			default:
				return errs.NewUnsupported("failed to get consistent fee data", "signer.getFeeData")
			}
		} else {
			fillFeeMarket(pop, fees)
		}
	}
	return nil
}

func fillFeeMarket(pop *types.TxFields, fees *ethereum.FeeData) {
	if pop.MaxFeePerGas == nil && fees.MaxFeePerGas != nil {
		pop.MaxFeePerGas = new(big.Int).Set(fees.MaxFeePerGas)
	}
	if pop.MaxPriorityFeePerGas == nil && fees.MaxPriorityFeePerGas != nil {
		pop.MaxPriorityFeePerGas = new(big.Int).Set(fees.MaxPriorityFeePerGas)
	}
}

// EstimateGas estimates the gas of the request sent from the signer's account.
// EstimateGas 估算从签名者账户发送该请求所需的 gas。
func (s *Signer) EstimateGas(ctx context.Context, tx types.TxFields) (uint64, error) {
	provider, err := s.checkProvider("estimateGas")
	if err != nil {
		return 0, err
	}
	pop, err := s.PopulateCall(ctx, tx)
	if err != nil {
		return 0, err
	}
	return provider.EstimateGas(ctx, toCallMsg(&pop))
}

// Call executes the request as a call from the signer's account against the
// latest block.
// Call 以签名者账户的身份在最新区块上执行该请求。
func (s *Signer) Call(ctx context.Context, tx types.TxFields) ([]byte, error) {
	provider, err := s.checkProvider("call")
	if err != nil {
		return nil, err
	}
	pop, err := s.PopulateCall(ctx, tx)
	if err != nil {
		return nil, err
	}
	return provider.Call(ctx, toCallMsg(&pop), ethereum.BlockLatest)
}

// SignTransaction builds the transaction described by tx and has the key holder
// sign it. No field is populated from the network.
//
// SignTransaction 构建 tx 描述的交易并由密钥持有者签名，不会从网络填充任何字段。
func (s *Signer) SignTransaction(ctx context.Context, tx types.TxFields) (*types.Transaction, error) {
	pop, err := s.populate(tx)
	if err != nil {
		return nil, err
	}
	pop.From = nil
	unsigned, err := types.NewTransactionFromFields(pop)
	if err != nil {
		return nil, err
	}
	return s.holder.SignTransaction(ctx, unsigned)
}

// SendTransaction populates, signs and broadcasts the transaction.
// SendTransaction 填充、签名并广播交易。
func (s *Signer) SendTransaction(ctx context.Context, tx types.TxFields) (*ethereum.TransactionResponse, error) {
	provider, err := s.checkProvider("sendTransaction")
	if err != nil {
		return nil, err
	}
	pop, err := s.PopulateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	pop.From = nil
	unsigned, err := types.NewTransactionFromFields(pop)
	if err != nil {
		return nil, err
	}
	signed, err := s.holder.SignTransaction(ctx, unsigned)
	if err != nil {
		return nil, err
	}
	raw, err := signed.Serialized()
	if err != nil {
		return nil, err
	}
	resp, err := provider.BroadcastTransaction(ctx, raw)
	if err != nil {
		s.log.Debug("Transaction broadcast failed", "nonce", signed.Nonce(), "err", err)
		return nil, err
	}
	s.log.Debug("Sent transaction", "hash", resp.Hash, "nonce", signed.Nonce())
	return resp, nil
}

// SignMessage signs the EIP-191 hash of msg.
// SignMessage 对 msg 的 EIP-191 哈希签名。
func (s *Signer) SignMessage(ctx context.Context, msg []byte) (*crypto.Signature, error) {
	return s.holder.SignMessage(ctx, msg)
}

func toCallMsg(f *types.TxFields) ethereum.CallMsg {
	msg := ethereum.CallMsg{
		From:       f.From,
		To:         f.To,
		GasPrice:   f.GasPrice,
		GasFeeCap:  f.MaxFeePerGas,
		GasTipCap:  f.MaxPriorityFeePerGas,
		Value:      f.Value,
		Data:       f.Data,
		AccessList: f.AccessList,
		Type:       f.Type,
		ChainID:    f.ChainID,
		Nonce:      f.Nonce,
	}
	if f.GasLimit != nil {
		msg.Gas = *f.GasLimit
	}
	return msg
}
