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
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync/atomic"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/crypto"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/rlp"
)

var (
	ErrInvalidSig         = errors.New("invalid transaction v, r, s values")
	ErrTxTypeNotSupported = errors.New("transaction type not supported")
	errShortTypedTx       = errors.New("typed transaction too short")
	errInvalidYParity     = errors.New("'yParity' field must be 0 or 1")
	errVYParityMismatch   = errors.New("'v' and 'yParity' fields do not match")
	errVYParityMissing    = errors.New("missing 'yParity' or 'v' field in transaction")
)

// Transaction types.
// 交易类型。
const (
	LegacyTxType     = 0x00 // 传统交易类型
	AccessListTxType = 0x01 // 访问列表交易（EIP-2930）
	DynamicFeeTxType = 0x02 // 动态费用交易（EIP-1559）
)

// Transaction is an Ethereum transaction. Instances are immutable: WithSignature
// returns a new signed copy.
// Transaction 是以太坊交易，实例不可变：WithSignature 返回新的已签名副本。
type Transaction struct {
	inner TxData            // Consensus contents of a transaction 交易的共识内容
	sig   *crypto.Signature // nil for unsigned transactions 未签名交易为 nil

	// caches
	hash atomic.Pointer[common.Hash]
	from atomic.Pointer[common.Address]
}

// NewTx creates a new unsigned transaction. Signature values in inner are
// ignored, use WithSignature to attach one.
// NewTx 创建一个新的未签名交易，inner 中的签名值被忽略。
func NewTx(inner TxData) *Transaction {
	cpy := inner.copy()
	cpy.setSignatureValues(cpy.chainID(), nil, nil, nil)
	return &Transaction{inner: cpy}
}

// TxData is the underlying data of a transaction.
//
// This is implemented by DynamicFeeTx, LegacyTx and AccessListTx.
//
// TxData 是交易的底层数据，由 DynamicFeeTx、LegacyTx 和 AccessListTx 实现。
type TxData interface {
	txType() byte // returns the type ID  返回类型 ID
	copy() TxData // creates a deep copy and initializes all fields 创建一个深拷贝并初始化所有字段

	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasPrice() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *common.Address

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(chainID, v, r, s *big.Int)

	// fields returns the unsigned payload fields in wire order.
	// fields 按线格式顺序返回未签名的负载字段。
	fields() []rlp.Item
	// decodeFields fills the data from the unsigned payload fields.
	decodeFields([]rlp.Item) error
}

// Type returns the transaction type.
// Type 返回交易类型。
func (tx *Transaction) Type() uint8 {
	return tx.inner.txType()
}

// ChainId returns the chain ID of the transaction. The return value will always be
// non-nil. For legacy transactions without replay protection it is zero.
// ChainId 返回交易的链 ID，总是非 nil。
func (tx *Transaction) ChainId() *big.Int {
	if id := tx.inner.chainID(); id != nil {
		return new(big.Int).Set(id)
	}
	return new(big.Int)
}

// Data returns the input data of the transaction.
// Data 返回交易的输入数据。
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.inner.data()) }

// AccessList returns the access list of the transaction.
// AccessList 返回交易的访问列表。
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList().copy() }

// Gas returns the gas limit of the transaction.
// Gas 返回交易的 Gas 限制。
func (tx *Transaction) Gas() uint64 { return tx.inner.gas() }

// GasPrice returns the gas price of the transaction. For fee market transactions
// this is the fee cap.
// GasPrice 返回交易的 Gas 价格。
func (tx *Transaction) GasPrice() *big.Int { return copyBig(tx.inner.gasPrice()) }

// GasTipCap returns the gasTipCap per gas of the transaction.
// GasTipCap 返回交易每单位 Gas 的小费上限。
func (tx *Transaction) GasTipCap() *big.Int { return copyBig(tx.inner.gasTipCap()) }

// GasFeeCap returns the fee cap per gas of the transaction.
// GasFeeCap 返回交易每单位 Gas 的费用上限。
func (tx *Transaction) GasFeeCap() *big.Int { return copyBig(tx.inner.gasFeeCap()) }

// Value returns the ether amount of the transaction.
// Value 返回交易的以太币金额。
func (tx *Transaction) Value() *big.Int { return copyBig(tx.inner.value()) }

// Nonce returns the sender account nonce of the transaction.
// Nonce 返回交易发送者账户的 nonce。
func (tx *Transaction) Nonce() uint64 { return tx.inner.nonce() }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
// To 返回交易的接收者地址，合约创建交易返回 nil。
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.to())
}

// Cost returns (gas * gasFeeCap) + value, the most the sender can be charged.
// Cost 返回 (gas * gasFeeCap) + value，即发送者最多被收取的金额。
func (tx *Transaction) Cost() *big.Int {
	total := new(big.Int).Mul(tx.GasFeeCap(), new(big.Int).SetUint64(tx.Gas()))
	return total.Add(total, tx.Value())
}

// IsSigned reports whether the transaction carries a signature.
// IsSigned 报告交易是否带有签名。
func (tx *Transaction) IsSigned() bool {
	return tx.sig != nil
}

// Signature returns a copy of the transaction signature, or nil when unsigned.
// Signature 返回交易签名的副本，未签名时返回 nil。
func (tx *Transaction) Signature() *crypto.Signature {
	if tx.sig == nil {
		return nil
	}
	return tx.sig.Clone()
}

// RawSignatureValues returns the V, R, S signature values of the transaction
// as they appear on the wire. The return values should not be modified by the
// caller. They are nil for unsigned transactions.
// RawSignatureValues 返回交易在线格式中的 V、R、S 签名值，调用者不应修改返回值。
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// payload returns the RLP list of the transaction, without the type prefix.
// Unsigned legacy transactions with a chain id use the EIP-155 form
// [..., chainId, 0, 0].
// payload 返回交易的 RLP 列表（不含类型前缀）。
func (tx *Transaction) payload(signed bool) []byte {
	fields := tx.inner.fields()
	switch {
	case signed:
		v, r, s := tx.inner.rawSignatureValues()
		fields = append(fields, rlp.NewBig(v), rlp.NewBig(r), rlp.NewBig(s))
	case tx.Type() == LegacyTxType:
		if id := tx.inner.chainID(); id != nil && id.Sign() != 0 {
			fields = append(fields, rlp.NewBig(id), rlp.NewUint(0), rlp.NewUint(0))
		}
	}
	return rlp.Encode(rlp.NewList(fields...))
}

// withPrefix prepends the EIP-2718 type byte to typed transaction payloads.
func (tx *Transaction) withPrefix(payload []byte) []byte {
	if tx.Type() == LegacyTxType {
		return payload
	}
	return append([]byte{tx.Type()}, payload...)
}

// UnsignedSerialized returns the payload that is hashed for signing.
// UnsignedSerialized 返回用于签名哈希的负载。
func (tx *Transaction) UnsignedSerialized() []byte {
	return tx.withPrefix(tx.payload(false))
}

// UnsignedHash returns the digest a sender signs.
// UnsignedHash 返回发送者签名的摘要。
func (tx *Transaction) UnsignedHash() common.Hash {
	return prefixedHash(tx.Type(), tx.payload(false))
}

// Serialized returns the canonical wire encoding of the signed transaction.
// Serialized 返回已签名交易的规范线格式编码。
func (tx *Transaction) Serialized() ([]byte, error) {
	if !tx.IsSigned() {
		return nil, errs.NewUnsupported("cannot serialize unsigned transaction", "serialized")
	}
	return tx.withPrefix(tx.payload(true)), nil
}

// MarshalBinary returns the canonical encoding of the transaction.
// For legacy transactions, it returns the RLP encoding. For EIP-2718 typed
// transactions, it returns the type and payload.
// MarshalBinary 返回交易的规范编码。
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	return tx.Serialized()
}

// UnmarshalBinary decodes the canonical encoding of transactions.
// It supports legacy RLP transactions and EIP-2718 typed transactions.
// UnmarshalBinary 解码交易的规范编码，支持 legacy RLP 交易和 EIP-2718 类型化交易。
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	dec, err := DecodeTransaction(b)
	if err != nil {
		return err
	}
	tx.setDecoded(dec.inner, dec.sig)
	return nil
}

// EncodeRLP implements rlp.Encoder. Legacy transactions encode as their list,
// typed transactions as a string holding the typed envelope.
// EncodeRLP 实现 rlp.Encoder。
func (tx *Transaction) EncodeRLP() (rlp.Item, error) {
	raw, err := tx.Serialized()
	if err != nil {
		return rlp.Item{}, err
	}
	if tx.Type() == LegacyTxType {
		return rlp.Decode(raw)
	}
	return rlp.NewString(raw), nil
}

// setDecoded sets the inner transaction and signature after decoding.
func (tx *Transaction) setDecoded(inner TxData, sig *crypto.Signature) {
	tx.inner = inner
	tx.sig = sig
	tx.hash.Store(nil)
	tx.from.Store(nil)
}

// Hash returns the transaction hash, keccak256 of the serialized form. Unsigned
// transactions have no hash and return the zero hash.
// Hash 返回交易哈希，即序列化形式的 keccak256。未签名交易返回零哈希。
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	if !tx.IsSigned() {
		return common.Hash{}
	}
	h := prefixedHash(tx.Type(), tx.payload(true))
	tx.hash.Store(&h)
	return h
}

// From returns the sender recovered from the signature, or nil for unsigned
// transactions. The address is cached after the first recovery.
// From 返回从签名恢复出的发送者，未签名交易返回 nil。地址在首次恢复后缓存。
func (tx *Transaction) From() (*common.Address, error) {
	if !tx.IsSigned() {
		return nil, nil
	}
	if from := tx.from.Load(); from != nil {
		addr := *from
		return &addr, nil
	}
	addr, err := crypto.RecoverAddress(tx.UnsignedHash().Bytes(), tx.sig)
	if err != nil {
		return nil, err
	}
	tx.from.Store(&addr)
	cpy := addr
	return &cpy, nil
}

// WithSignature returns a new transaction carrying the given signature. Legacy
// transactions with a chain id use the EIP-155 v value; a legacy signature that
// already encodes a different chain id is rejected.
// WithSignature 返回带有给定签名的新交易。
func (tx *Transaction) WithSignature(sig *crypto.Signature) (*Transaction, error) {
	if sig == nil {
		return nil, errs.NewInvalidArgument("missing signature", "signature", nil)
	}
	cpy := tx.inner.copy()
	chainID := cpy.chainID()
	if chainID == nil {
		chainID = new(big.Int)
	}
	r, s := new(big.Int).SetBytes(sig.R()), new(big.Int).SetBytes(sig.S())

	var v *big.Int
	if cpy.txType() == LegacyTxType {
		if legacy := sig.LegacyChainID(); legacy != nil {
			if chainID.Sign() == 0 {
				chainID = legacy
			} else if legacy.Cmp(chainID) != 0 {
				return nil, errs.NewInvalidArgument("tx chainId mismatch", "signature", sig.String())
			}
		}
		if chainID.Sign() != 0 {
			v = crypto.GetChainIDV(chainID, uint64(sig.V()))
		} else {
			v = new(big.Int).SetUint64(uint64(sig.V()))
		}
	} else {
		v = new(big.Int).SetUint64(uint64(sig.YParity()))
	}
	cpy.setSignatureValues(chainID, v, r, s)

	signed, err := signatureFromValues(cpy.txType(), v, r, s)
	if err != nil {
		return nil, err
	}
	return &Transaction{inner: cpy, sig: signed}, nil
}

// signatureFromValues builds the signature of raw wire values. Legacy v values
// carry the network v, typed transactions the y parity.
func signatureFromValues(txType byte, v, r, s *big.Int) (*crypto.Signature, error) {
	like := crypto.SignatureLike{R: bigTo32(r), S: bigTo32(s)}
	if txType == LegacyTxType {
		like.V = v
	} else {
		if !v.IsUint64() || v.Uint64() > 1 {
			e := errs.NewInvalidArgument("invalid yParity", "yParity", v)
			e.Err = errInvalidYParity
			return nil, e
		}
		parity := uint8(v.Uint64())
		like.YParity = &parity
	}
	return crypto.SignatureFrom(like)
}

// bigTo32 returns the 32 byte big endian form of v. Values that do not fit are
// returned as is, so that signature parsing reports them.
func bigTo32(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) > 32 {
		return b
	}
	return common.LeftPadBytes(b, 32)
}

// DecodeTransaction decodes a serialized transaction. A first byte of 0x7f or
// more marks a legacy RLP list, 0x01 and 0x02 the typed envelopes.
// DecodeTransaction 解码序列化交易。首字节 >= 0x7f 表示 legacy RLP 列表，0x01 和 0x02 表示类型化交易。
func DecodeTransaction(data []byte) (*Transaction, error) {
	if len(data) == 0 || data[0] >= 0x7f {
		return decodeLegacy(data)
	}
	var inner TxData
	switch data[0] {
	case AccessListTxType:
		inner = new(AccessListTx)
	case DynamicFeeTxType:
		inner = new(DynamicFeeTx)
	default:
		e := errs.NewUnsupported("unsupported transaction type", "from")
		e.Info = map[string]interface{}{"type": data[0]}
		e.Err = ErrTxTypeNotSupported
		return nil, e
	}
	if len(data) <= 1 {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid serialized transaction", errShortTypedTx)
	}
	n := len(inner.fields())
	fields, err := decodeList(data[1:], fmt.Sprintf("invalid field count for transaction type: %d", data[0]), n, n+3)
	if err != nil {
		return nil, err
	}
	if err := inner.decodeFields(fields[:n]); err != nil {
		return nil, err
	}
	tx := &Transaction{inner: inner}
	if len(fields) == n {
		return tx, nil
	}
	d := fieldDecoder{items: fields[n:]}
	v, r, s := d.big("yParity"), d.big("r"), d.big("s")
	if d.err != nil {
		return nil, d.err
	}
	sig, err := signatureFromValues(inner.txType(), v, r, s)
	if err != nil {
		return nil, err
	}
	inner.setSignatureValues(inner.chainID(), v, r, s)
	tx.sig = sig
	return tx, nil
}

func decodeLegacy(data []byte) (*Transaction, error) {
	fields, err := decodeList(data, "invalid field count for legacy transaction", 6, 9)
	if err != nil {
		return nil, err
	}
	inner := new(LegacyTx)
	if err := inner.decodeFields(fields[:6]); err != nil {
		return nil, err
	}
	tx := &Transaction{inner: inner}
	if len(fields) == 6 {
		return tx, nil
	}
	d := fieldDecoder{items: fields[6:]}
	v, r, s := d.big("v"), d.big("r"), d.big("s")
	if d.err != nil {
		return nil, d.err
	}
	// unsigned EIP-155 payload
	if r.Sign() == 0 && s.Sign() == 0 {
		inner.ChainID = v
		return tx, nil
	}
	chainID, err := crypto.GetChainID(v)
	if err != nil {
		return nil, err
	}
	sig, err := signatureFromValues(LegacyTxType, v, r, s)
	if err != nil {
		return nil, err
	}
	inner.setSignatureValues(chainID, v, r, s)
	tx.sig = sig
	return tx, nil
}

// decodeList strictly decodes data as a single RLP list and returns its items.
// decodeList decodes the field list of a serialized transaction, which must
// hold one of the given numbers of fields. The count is taken from the raw
// encoding before any item is built.
func decodeList(data []byte, countMsg string, counts ...int) ([]rlp.Item, error) {
	content, _, err := rlp.SplitList(data)
	switch {
	case errors.Is(err, rlp.ErrExpectedList):
		return nil, errs.NewInvalidArgument("invalid serialized transaction", "data", hexutil.Encode(data))
	case err == nil:
		n, err := rlp.CountValues(content)
		if err == nil && !slices.Contains(counts, n) {
			return nil, errs.NewInvalidArgument(countMsg, "data", hexutil.Encode(data))
		}
	}
	// malformed encodings are reported by the item decoder
	item, err := rlp.Decode(data)
	if err != nil {
		return nil, err
	}
	if !item.IsList() {
		return nil, errs.NewInvalidArgument("invalid serialized transaction", "data", hexutil.Encode(data))
	}
	return item.Items(), nil
}

// fieldDecoder reads the fields of a decoded transaction list in order. The
// first failure is kept in err and turns every later read into a no-op.
// fieldDecoder 按顺序读取交易列表的字段，第一个错误保存在 err 中。
type fieldDecoder struct {
	items []rlp.Item
	pos   int
	err   error
}

func (d *fieldDecoder) next(name string) (rlp.Item, bool) {
	if d.err != nil {
		return rlp.Item{}, false
	}
	if d.pos >= len(d.items) {
		d.err = errs.NewInvalidArgument("missing "+name, name, nil)
		return rlp.Item{}, false
	}
	it := d.items[d.pos]
	d.pos++
	return it, true
}

func (d *fieldDecoder) fail(name string, it rlp.Item, cause error) {
	e := errs.NewInvalidArgument("invalid "+name, name, it.String())
	e.Err = cause
	d.err = e
}

func (d *fieldDecoder) uint(name string) uint64 {
	it, ok := d.next(name)
	if !ok {
		return 0
	}
	v, err := it.Uint64()
	if err != nil {
		d.fail(name, it, err)
	}
	return v
}

func (d *fieldDecoder) big(name string) *big.Int {
	it, ok := d.next(name)
	if !ok {
		return nil
	}
	v, err := it.BigInt()
	if err != nil {
		d.fail(name, it, err)
		return nil
	}
	return v
}

func (d *fieldDecoder) bytes(name string) []byte {
	it, ok := d.next(name)
	if !ok {
		return nil
	}
	if it.IsList() {
		d.fail(name, it, rlp.ErrExpectedString)
		return nil
	}
	return common.CopyBytes(it.Bytes())
}

func (d *fieldDecoder) address(name string) *common.Address {
	b := d.bytes(name)
	if d.err != nil || len(b) == 0 {
		return nil
	}
	if len(b) != common.AddressLength {
		d.fail(name, d.items[d.pos-1], nil)
		return nil
	}
	addr := common.BytesToAddress(b)
	return &addr
}

func (d *fieldDecoder) accessList(name string) AccessList {
	it, ok := d.next(name)
	if !ok {
		return nil
	}
	al, err := decodeAccessList(it)
	if err != nil {
		d.err = err
	}
	return al
}

// addressItem encodes a recipient, an empty string for contract creation.
func addressItem(a *common.Address) rlp.Item {
	if a == nil {
		return rlp.NewString(nil)
	}
	return rlp.NewString(a.Bytes())
}

// copyAddressPtr copies an address.
// copyAddressPtr 复制一个地址。
func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// copyBig copies a big integer, nil becomes zero.
func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// copySignatureValues copies v, r and s, keeping them nil when unset.
func copySignatureValues(v, r, s *big.Int) (*big.Int, *big.Int, *big.Int) {
	if v == nil || r == nil || s == nil {
		return nil, nil, nil
	}
	return new(big.Int).Set(v), new(big.Int).Set(r), new(big.Int).Set(s)
}
