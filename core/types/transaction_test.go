// Copyright 2014 The go-ethereum Authors
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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/rlp"
)

// The transaction from the EIP-155 specification.
var (
	eip155Key, _ = crypto.HexToECDSA("4646464646464646464646464646464646464646464646464646464646464646")
	eip155Addr   = common.HexToAddress("0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F")
	eip155To     = common.HexToAddress("0x3535353535353535353535353535353535353535")

	eip155Unsigned = "0xec098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a764000080018080"
	eip155SigHash  = "0xdaf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53"
	eip155Signed   = "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"
)

func eip155Tx() *Transaction {
	return NewTx(&LegacyTx{
		Nonce:    9,
		GasPrice: big.NewInt(20000000000),
		Gas:      21000,
		To:       &eip155To,
		Value:    new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
		ChainID:  big.NewInt(1),
	})
}

func testAccessList() AccessList {
	return AccessList{{
		Address:     common.HexToAddress("0x0000000000000000000000000000000000000001"),
		StorageKeys: []common.Hash{{0x01}, {0x02}},
	}}
}

func TestEIP155Signing(t *testing.T) {
	tx := eip155Tx()
	require.False(t, tx.IsSigned())
	require.Equal(t, eip155Unsigned, hexutil.Encode(tx.UnsignedSerialized()))
	require.Equal(t, eip155SigHash, tx.UnsignedHash().Hex())

	signed, err := SignTx(tx, eip155Key)
	require.NoError(t, err)
	raw, err := signed.Serialized()
	require.NoError(t, err)
	require.Equal(t, eip155Signed, hexutil.Encode(raw))

	from, err := Sender(signed)
	require.NoError(t, err)
	require.Equal(t, eip155Addr, from)

	v, _, _ := signed.RawSignatureValues()
	require.Equal(t, int64(37), v.Int64())
	require.Equal(t, int64(37), signed.Signature().NetworkV().Int64())
	require.Equal(t, crypto.Keccak256Hash(raw), signed.Hash())

	// the original stays unsigned
	require.False(t, tx.IsSigned())
	_, err = tx.Serialized()
	require.True(t, errs.IsError(err, errs.UnsupportedOperation))
	require.Equal(t, common.Hash{}, tx.Hash())
}

func TestDecodeLegacy(t *testing.T) {
	tx, err := DecodeTransaction(common.FromHex(eip155Signed))
	require.NoError(t, err)
	require.True(t, tx.IsSigned())
	require.Equal(t, uint8(LegacyTxType), tx.Type())
	require.Equal(t, int64(1), tx.ChainId().Int64())
	require.Equal(t, uint64(9), tx.Nonce())
	require.Equal(t, eip155To, *tx.To())

	from, err := tx.From()
	require.NoError(t, err)
	require.Equal(t, eip155Addr, *from)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, eip155Signed, hexutil.Encode(raw))

	// the unsigned EIP-155 payload keeps the chain id
	unsigned, err := DecodeTransaction(common.FromHex(eip155Unsigned))
	require.NoError(t, err)
	require.False(t, unsigned.IsSigned())
	require.Equal(t, int64(1), unsigned.ChainId().Int64())
	require.Equal(t, eip155Unsigned, hexutil.Encode(unsigned.UnsignedSerialized()))

	var viaBinary Transaction
	require.NoError(t, viaBinary.UnmarshalBinary(common.FromHex(eip155Signed)))
	require.Equal(t, tx.Hash(), viaBinary.Hash())
}

func TestPreEIP155Legacy(t *testing.T) {
	tx := NewTransaction(0, eip155To, big.NewInt(1), 21000, big.NewInt(1), nil)
	signed, err := SignTx(tx, eip155Key)
	require.NoError(t, err)

	v, _, _ := signed.RawSignatureValues()
	require.True(t, v.Int64() == 27 || v.Int64() == 28)
	require.Nil(t, signed.Signature().NetworkV())

	raw, err := signed.Serialized()
	require.NoError(t, err)
	dec, err := DecodeTransaction(raw)
	require.NoError(t, err)
	require.Equal(t, int64(0), dec.ChainId().Int64())
	from, err := Sender(dec)
	require.NoError(t, err)
	require.Equal(t, eip155Addr, from)
}

func TestTypedRoundTrip(t *testing.T) {
	for _, inner := range []TxData{
		&AccessListTx{
			ChainID:    big.NewInt(5),
			Nonce:      3,
			GasPrice:   big.NewInt(10),
			Gas:        50000,
			To:         &eip155To,
			Value:      big.NewInt(1),
			Data:       []byte{0xca, 0xfe},
			AccessList: testAccessList(),
		},
		&DynamicFeeTx{
			ChainID:    big.NewInt(1337),
			Nonce:      7,
			GasTipCap:  big.NewInt(2),
			GasFeeCap:  big.NewInt(100),
			Gas:        60000,
			Value:      big.NewInt(0),
			Data:       []byte{0x60, 0x00},
			AccessList: testAccessList(),
		},
	} {
		signed, err := SignNewTx(eip155Key, inner)
		require.NoError(t, err)
		raw, err := signed.Serialized()
		require.NoError(t, err)
		require.Equal(t, signed.Type(), raw[0])

		dec, err := DecodeTransaction(raw)
		require.NoError(t, err)
		require.Equal(t, signed.Type(), dec.Type())
		require.Equal(t, signed.Hash(), dec.Hash())
		require.Equal(t, signed.ChainId(), dec.ChainId())
		require.Equal(t, signed.GasFeeCap(), dec.GasFeeCap())
		require.Equal(t, signed.GasTipCap(), dec.GasTipCap())
		require.Equal(t, signed.Data(), dec.Data())
		require.Equal(t, signed.AccessList(), dec.AccessList())
		require.Equal(t, signed.To(), dec.To())
		require.True(t, signed.Signature().Equal(dec.Signature()))

		from, err := Sender(dec)
		require.NoError(t, err)
		require.Equal(t, eip155Addr, from)

		v, _, _ := dec.RawSignatureValues()
		require.Equal(t, uint64(dec.Signature().YParity()), v.Uint64())
	}
}

func TestDecodeErrors(t *testing.T) {
	signed := MustSignNewTx(eip155Key, &DynamicFeeTx{ChainID: big.NewInt(1), Gas: 21000})
	_, r, s := signed.RawSignatureValues()
	badParity := append([]byte{DynamicFeeTxType}, rlp.Encode(rlp.NewList(append(signed.inner.fields(),
		rlp.NewUint(2), rlp.NewBig(r), rlp.NewBig(s))...))...)

	tests := []struct {
		name  string
		input []byte
		code  errs.Code
	}{
		{"empty", nil, errs.BufferOverrun},
		{"unknown type", []byte{0x03, 0xc0}, errs.UnsupportedOperation},
		{"legacy field count", rlp.Encode(rlp.NewList(rlp.NewUint(1), rlp.NewUint(2))), errs.InvalidArgument},
		{"typed field count", append([]byte{AccessListTxType}, rlp.Encode(rlp.NewList(rlp.NewUint(1)))...), errs.InvalidArgument},
		{"typed without payload", []byte{DynamicFeeTxType}, errs.InvalidArgument},
		{"invalid yParity", badParity, errs.InvalidArgument},
		{"not a list", []byte{0x80}, errs.InvalidArgument},
	}
	for _, test := range tests {
		_, err := DecodeTransaction(test.input)
		if !errs.IsError(err, test.code) {
			t.Errorf("%s: expected %v, got %v", test.name, test.code, err)
		}
	}
	_, err := DecodeTransaction([]byte{0x03, 0xc0})
	require.ErrorIs(t, err, ErrTxTypeNotSupported)
}

func TestDecodeFieldCount(t *testing.T) {
	fields := func(n int) []rlp.Item {
		items := make([]rlp.Item, n)
		for i := range items {
			items[i] = rlp.NewUint(uint64(i))
		}
		return items
	}
	tests := []struct {
		input []byte
		msg   string
	}{
		{rlp.Encode(rlp.NewList(fields(7)...)), "invalid field count for legacy transaction"},
		{rlp.Encode(rlp.NewList(fields(10)...)), "invalid field count for legacy transaction"},
		{append([]byte{DynamicFeeTxType}, rlp.Encode(rlp.NewList(fields(10)...))...), "invalid field count for transaction type: 2"},
		{append([]byte{AccessListTxType}, rlp.Encode(rlp.NewList(fields(9)...))...), "invalid field count for transaction type: 1"},
	}
	for i, test := range tests {
		_, err := DecodeTransaction(test.input)
		var e *errs.Error
		require.ErrorAs(t, err, &e, "test %d", i)
		require.Equal(t, errs.InvalidArgument, e.Code, "test %d", i)
		require.Equal(t, test.msg, e.ShortMessage, "test %d", i)
	}
}

func TestWithSignatureChainID(t *testing.T) {
	signed, err := SignTx(eip155Tx(), eip155Key)
	require.NoError(t, err)
	sig := signed.Signature()

	// a chain id 0 transaction adopts the chain id of the signature
	adopted, err := NewTransaction(9, eip155To, big.NewInt(1), 21000, big.NewInt(1), nil).WithSignature(sig)
	require.NoError(t, err)
	require.Equal(t, int64(1), adopted.ChainId().Int64())

	other := NewTx(&LegacyTx{ChainID: big.NewInt(5), GasPrice: big.NewInt(1)})
	_, err = other.WithSignature(sig)
	require.True(t, errs.IsError(err, errs.InvalidArgument))
	require.ErrorContains(t, err, "tx chainId mismatch")
}

func TestInferTypes(t *testing.T) {
	one := big.NewInt(1)
	two := big.NewInt(2)
	typ := func(t uint8) *uint8 { return &t }
	tests := []struct {
		fields TxFields
		want   []uint8
		code   errs.Code
	}{
		{fields: TxFields{}, want: []uint8{2, 1, 0}},
		{fields: TxFields{GasPrice: one}, want: []uint8{0, 1}},
		{fields: TxFields{GasPrice: one, AccessList: AccessList{}}, want: []uint8{1}},
		{fields: TxFields{AccessList: AccessList{}}, want: []uint8{1, 2}},
		{fields: TxFields{MaxFeePerGas: two}, want: []uint8{2}},
		{fields: TxFields{MaxPriorityFeePerGas: one, MaxFeePerGas: two}, want: []uint8{2}},
		{fields: TxFields{Type: typ(1)}, want: []uint8{1}},
		{fields: TxFields{GasPrice: one, MaxFeePerGas: two}, code: errs.InvalidArgument},
		{fields: TxFields{MaxPriorityFeePerGas: two, MaxFeePerGas: one}, code: errs.InvalidArgument},
		{fields: TxFields{Type: typ(0), MaxFeePerGas: one}, code: errs.InvalidArgument},
		{fields: TxFields{Type: typ(1), MaxPriorityFeePerGas: one}, code: errs.InvalidArgument},
		{fields: TxFields{Type: typ(0), AccessList: AccessList{}}, code: errs.InvalidArgument},
		{fields: TxFields{Type: typ(2), GasPrice: one}, code: errs.InvalidArgument},
		{fields: TxFields{Type: typ(3)}, code: errs.UnsupportedOperation},
	}
	for i, test := range tests {
		have, err := test.fields.InferTypes()
		if test.want == nil {
			if !errs.IsError(err, test.code) {
				t.Errorf("test %d: expected %v, got %v", i, test.code, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: unexpected error: %v", i, err)
			continue
		}
		require.Equal(t, test.want, have, "test %d", i)
	}
}

func TestNewTransactionFromFields(t *testing.T) {
	nonce := uint64(4)
	gas := uint64(21000)
	fields := TxFields{
		To:                   &eip155To,
		Nonce:                &nonce,
		GasLimit:             &gas,
		MaxFeePerGas:         big.NewInt(30),
		MaxPriorityFeePerGas: big.NewInt(1),
		ChainID:              big.NewInt(1),
	}
	tx, err := NewTransactionFromFields(fields)
	require.NoError(t, err)
	require.Equal(t, uint8(DynamicFeeTxType), tx.Type())
	require.Equal(t, AccessList{}, tx.AccessList())
	require.Equal(t, int64(0), tx.Value().Int64())

	signed, err := SignTx(tx, eip155Key)
	require.NoError(t, err)

	// Fields of a signed transaction rebuild the same transaction
	rebuilt, err := NewTransactionFromFields(signed.Fields())
	require.NoError(t, err)
	require.Equal(t, signed.Hash(), rebuilt.Hash())

	withSig := fields.Copy()
	withSig.Signature = signed.Signature()
	withSig.From = &eip155Addr
	_, err = NewTransactionFromFields(withSig)
	require.NoError(t, err)

	wrong := common.HexToAddress("0x0000000000000000000000000000000000000bad")
	withSig.From = &wrong
	_, err = NewTransactionFromFields(withSig)
	require.ErrorContains(t, err, "from mismatch")

	withSig.From = nil
	badHash := common.Hash{0x01}
	withSig.Hash = &badHash
	_, err = NewTransactionFromFields(withSig)
	require.ErrorContains(t, err, "hash mismatch")

	unsigned := fields.Copy()
	unsigned.From = &eip155Addr
	_, err = NewTransactionFromFields(unsigned)
	require.True(t, errs.IsError(err, errs.InvalidArgument))
}

func TestTransactionJSON(t *testing.T) {
	signedLegacy, err := SignTx(eip155Tx(), eip155Key)
	require.NoError(t, err)
	signedDynamic := MustSignNewTx(eip155Key, &DynamicFeeTx{
		ChainID:    big.NewInt(10),
		Nonce:      1,
		GasTipCap:  big.NewInt(1),
		GasFeeCap:  big.NewInt(2),
		Gas:        30000,
		To:         &eip155To,
		Value:      big.NewInt(5),
		AccessList: testAccessList(),
	})
	unsigned := NewTx(&AccessListTx{ChainID: big.NewInt(1), GasPrice: big.NewInt(3), Gas: 21000})

	for _, tx := range []*Transaction{signedLegacy, signedDynamic, unsigned} {
		data, err := json.Marshal(tx)
		require.NoError(t, err)

		var dec Transaction
		require.NoError(t, json.Unmarshal(data, &dec), "json: %s", data)
		require.Equal(t, tx.Type(), dec.Type())
		require.Equal(t, tx.IsSigned(), dec.IsSigned())
		require.Equal(t, tx.UnsignedHash(), dec.UnsignedHash())
		require.Equal(t, tx.Hash(), dec.Hash())
	}

	var fields map[string]interface{}
	data, _ := json.Marshal(signedLegacy)
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Equal(t, "0x25", fields["v"])
	require.Equal(t, "0x1", fields["chainId"])
	require.Equal(t, signedLegacy.Hash().Hex(), fields["hash"])
}
