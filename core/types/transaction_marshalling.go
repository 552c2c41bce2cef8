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
	"encoding/json"
	"errors"
	"math/big"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
)

// txJSON is the JSON representation of transactions.
// txJSON 是交易的 JSON 表示。
type txJSON struct {
	Type hexutil.Uint64 `json:"type"`

	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
	Nonce                *hexutil.Uint64 `json:"nonce"`
	To                   *common.Address `json:"to"`
	Gas                  *hexutil.Uint64 `json:"gas"`
	GasPrice             *hexutil.Big    `json:"gasPrice"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas"`
	Value                *hexutil.Big    `json:"value"`
	Input                *hexutil.Bytes  `json:"input"`
	AccessList           *AccessList     `json:"accessList,omitempty"`
	V                    *hexutil.Big    `json:"v"`
	R                    *hexutil.Big    `json:"r"`
	S                    *hexutil.Big    `json:"s"`
	YParity              *hexutil.Uint64 `json:"yParity,omitempty"`

	// Only used for encoding:
	Hash *common.Hash    `json:"hash,omitempty"`
	From *common.Address `json:"from,omitempty"`
}

// yParityValue returns the signature parity, checking yParity against v when
// both are present.
func (tx *txJSON) yParityValue() (*big.Int, error) {
	if tx.YParity != nil {
		val := uint64(*tx.YParity)
		if val != 0 && val != 1 {
			return nil, errInvalidYParity
		}
		bigval := new(big.Int).SetUint64(val)
		if tx.V != nil && tx.V.ToInt().Cmp(bigval) != 0 {
			return nil, errVYParityMismatch
		}
		return bigval, nil
	}
	if tx.V != nil {
		return tx.V.ToInt(), nil
	}
	return nil, errVYParityMissing
}

// MarshalJSON marshals as JSON. Signed transactions include the hash and the
// recovered sender.
// MarshalJSON 将交易序列化为 JSON，已签名交易包含哈希和恢复出的发送者。
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	enc.Type = hexutil.Uint64(tx.Type())
	if tx.IsSigned() {
		hash := tx.Hash()
		enc.Hash = &hash
		if from, err := tx.From(); err == nil {
			enc.From = from
		}
	}

	switch itx := tx.inner.(type) {
	case *LegacyTx:
		enc.Nonce = (*hexutil.Uint64)(&itx.Nonce)
		enc.To = tx.To()
		enc.Gas = (*hexutil.Uint64)(&itx.Gas)
		enc.GasPrice = (*hexutil.Big)(tx.GasPrice())
		enc.Value = (*hexutil.Big)(tx.Value())
		enc.Input = (*hexutil.Bytes)(&itx.Data)
		enc.V = (*hexutil.Big)(itx.V)
		enc.R = (*hexutil.Big)(itx.R)
		enc.S = (*hexutil.Big)(itx.S)
		if id := tx.ChainId(); id.Sign() != 0 {
			enc.ChainID = (*hexutil.Big)(id)
		}

	case *AccessListTx:
		enc.ChainID = (*hexutil.Big)(tx.ChainId())
		enc.Nonce = (*hexutil.Uint64)(&itx.Nonce)
		enc.To = tx.To()
		enc.Gas = (*hexutil.Uint64)(&itx.Gas)
		enc.GasPrice = (*hexutil.Big)(tx.GasPrice())
		enc.Value = (*hexutil.Big)(tx.Value())
		enc.Input = (*hexutil.Bytes)(&itx.Data)
		al := nonNilAccessList(itx.AccessList)
		enc.AccessList = &al
		enc.setParity(itx.V, itx.R, itx.S)

	case *DynamicFeeTx:
		enc.ChainID = (*hexutil.Big)(tx.ChainId())
		enc.Nonce = (*hexutil.Uint64)(&itx.Nonce)
		enc.To = tx.To()
		enc.Gas = (*hexutil.Uint64)(&itx.Gas)
		enc.MaxFeePerGas = (*hexutil.Big)(tx.GasFeeCap())
		enc.MaxPriorityFeePerGas = (*hexutil.Big)(tx.GasTipCap())
		enc.Value = (*hexutil.Big)(tx.Value())
		enc.Input = (*hexutil.Bytes)(&itx.Data)
		al := nonNilAccessList(itx.AccessList)
		enc.AccessList = &al
		enc.setParity(itx.V, itx.R, itx.S)
	}
	return json.Marshal(&enc)
}

func (enc *txJSON) setParity(v, r, s *big.Int) {
	enc.V = (*hexutil.Big)(v)
	enc.R = (*hexutil.Big)(r)
	enc.S = (*hexutil.Big)(s)
	if v != nil {
		yparity := v.Uint64()
		enc.YParity = (*hexutil.Uint64)(&yparity)
	}
}

// UnmarshalJSON unmarshals from JSON.
// UnmarshalJSON 从 JSON 反序列化交易。
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Nonce == nil {
		return errors.New("missing required field 'nonce' in transaction")
	}
	if dec.Gas == nil {
		return errors.New("missing required field 'gas' in transaction")
	}
	if dec.Value == nil {
		return errors.New("missing required field 'value' in transaction")
	}
	if dec.Input == nil {
		return errors.New("missing required field 'input' in transaction")
	}

	// Decode / verify fields according to transaction type.
	var inner TxData
	switch dec.Type {
	case LegacyTxType:
		if dec.GasPrice == nil {
			return errors.New("missing required field 'gasPrice' in transaction")
		}
		inner = &LegacyTx{
			Nonce:    uint64(*dec.Nonce),
			GasPrice: (*big.Int)(dec.GasPrice),
			Gas:      uint64(*dec.Gas),
			To:       dec.To,
			Value:    (*big.Int)(dec.Value),
			Data:     *dec.Input,
			ChainID:  (*big.Int)(dec.ChainID),
		}

	case AccessListTxType:
		if dec.ChainID == nil {
			return errors.New("missing required field 'chainId' in transaction")
		}
		if dec.GasPrice == nil {
			return errors.New("missing required field 'gasPrice' in transaction")
		}
		if dec.AccessList == nil {
			return errors.New("missing required field 'accessList' in transaction")
		}
		inner = &AccessListTx{
			ChainID:    (*big.Int)(dec.ChainID),
			Nonce:      uint64(*dec.Nonce),
			GasPrice:   (*big.Int)(dec.GasPrice),
			Gas:        uint64(*dec.Gas),
			To:         dec.To,
			Value:      (*big.Int)(dec.Value),
			Data:       *dec.Input,
			AccessList: *dec.AccessList,
		}

	case DynamicFeeTxType:
		if dec.ChainID == nil {
			return errors.New("missing required field 'chainId' in transaction")
		}
		if dec.MaxPriorityFeePerGas == nil {
			return errors.New("missing required field 'maxPriorityFeePerGas' for txdata")
		}
		if dec.MaxFeePerGas == nil {
			return errors.New("missing required field 'maxFeePerGas' for txdata")
		}
		if dec.AccessList == nil {
			return errors.New("missing required field 'accessList' in transaction")
		}
		inner = &DynamicFeeTx{
			ChainID:    (*big.Int)(dec.ChainID),
			Nonce:      uint64(*dec.Nonce),
			GasTipCap:  (*big.Int)(dec.MaxPriorityFeePerGas),
			GasFeeCap:  (*big.Int)(dec.MaxFeePerGas),
			Gas:        uint64(*dec.Gas),
			To:         dec.To,
			Value:      (*big.Int)(dec.Value),
			Data:       *dec.Input,
			AccessList: *dec.AccessList,
		}

	default:
		return ErrTxTypeNotSupported
	}

	unsigned := NewTx(inner)
	if dec.R == nil && dec.S == nil && dec.V == nil && dec.YParity == nil {
		tx.setDecoded(unsigned.inner, nil)
		return nil
	}
	if dec.R == nil {
		return errors.New("missing required field 'r' in transaction")
	}
	if dec.S == nil {
		return errors.New("missing required field 's' in transaction")
	}
	var v *big.Int
	if dec.Type == LegacyTxType {
		if dec.V == nil {
			return errors.New("missing required field 'v' in transaction")
		}
		v = dec.V.ToInt()
	} else {
		var err error
		if v, err = dec.yParityValue(); err != nil {
			return err
		}
	}
	sig, err := signatureFromValues(uint8(dec.Type), v, dec.R.ToInt(), dec.S.ToInt())
	if err != nil {
		return err
	}
	signed, err := unsigned.WithSignature(sig)
	if err != nil {
		return err
	}
	tx.setDecoded(signed.inner, signed.sig)
	return nil
}
