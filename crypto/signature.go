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

package crypto

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/errs"
)

var (
	big27 = big.NewInt(27)
	big28 = big.NewInt(28)
	big35 = big.NewInt(35)
)

// Signature is a canonical secp256k1 signature: s is always in the lower half of
// the curve order and v is either 27 or 28. Instances are immutable and only
// created through SignatureFrom and SignDigest.
//
// NetworkV carries the original EIP-155 v value of a legacy transaction
// signature. It is informational and plays no part in recovery.
//
// Signature 是规范的 secp256k1 签名：s 总是位于曲线阶的低半部分，v 为 27 或 28。
// 实例不可变，只能通过 SignatureFrom 和 SignDigest 创建。
type Signature struct {
	r, s     [32]byte
	v        uint8
	networkV *big.Int
}

// SignatureLike is the structured form accepted by SignatureFrom. Nil fields are
// absent. At least R, one of S/YParityAndS and one of V/YParity/YParityAndS must
// be supplied; redundant fields must agree with each other.
// SignatureLike 是 SignatureFrom 接受的结构化形式，nil 字段表示缺失。
type SignatureLike struct {
	R           []byte
	S           []byte
	YParityAndS []byte
	V           *big.Int
	YParity     *uint8
}

func sigErr(msg string, value interface{}) *errs.Error {
	return errs.NewInvalidArgument(msg, "signature", value)
}

// SignatureFrom builds a Signature from any supported representation:
//
//   - a 64 byte compact signature (EIP-2098), as []byte or hex string
//   - a 65 byte r || s || v signature, as []byte or hex string
//   - a *Signature or Signature, which is cloned
//   - a SignatureLike or *SignatureLike
//   - nil, which yields the zero signature with v = 27
//
// Non-canonical s values are always rejected.
// SignatureFrom 从任意受支持的表示形式构建签名，总是拒绝非规范的 s 值。
func SignatureFrom(sig interface{}) (*Signature, error) {
	switch v := sig.(type) {
	case nil:
		return &Signature{v: 27}, nil
	case *Signature:
		return v.Clone(), nil
	case Signature:
		return v.Clone(), nil
	case SignatureLike:
		return signatureFromLike(&v)
	case *SignatureLike:
		return signatureFromLike(v)
	}
	raw, err := hexutil.GetBytes(sig, "signature")
	if err != nil {
		return nil, err
	}
	return signatureFromBytes(raw)
}

func signatureFromBytes(raw []byte) (*Signature, error) {
	out := new(Signature)
	switch len(raw) {
	case 64:
		copy(out.r[:], raw[:32])
		copy(out.s[:], raw[32:])
		out.v = 27
		if out.s[0]&0x80 != 0 {
			out.v = 28
		}
		out.s[0] &= 0x7f
	case 65:
		copy(out.r[:], raw[:32])
		copy(out.s[:], raw[32:64])
		if out.s[0]&0x80 != 0 {
			return nil, sigErr("non-canonical s", hexutil.Encode(raw))
		}
		v, err := GetNormalizedV(new(big.Int).SetUint64(uint64(raw[64])))
		if err != nil {
			return nil, err
		}
		out.v = uint8(v)
	default:
		e := sigErr("invalid raw signature length", hexutil.Encode(raw))
		e.Err = ErrInvalidSignatureLen
		return nil, e
	}
	return out, nil
}

func signatureFromLike(like *SignatureLike) (*Signature, error) {
	out := new(Signature)

	if like.R == nil {
		return nil, sigErr("missing r", like)
	}
	if len(like.R) != 32 {
		return nil, sigErr("invalid r", hexutil.Encode(like.R))
	}
	copy(out.r[:], like.R)

	if like.YParityAndS != nil && len(like.YParityAndS) != 32 {
		return nil, sigErr("invalid yParityAndS", hexutil.Encode(like.YParityAndS))
	}
	switch {
	case like.S != nil:
		if len(like.S) != 32 {
			return nil, sigErr("invalid s", hexutil.Encode(like.S))
		}
		copy(out.s[:], like.S)
	case like.YParityAndS != nil:
		copy(out.s[:], like.YParityAndS)
		out.s[0] &= 0x7f
	default:
		return nil, sigErr("missing s", like)
	}
	if out.s[0]&0x80 != 0 {
		return nil, sigErr("non-canonical s", hexutil.Encode(out.s[:]))
	}

	switch {
	case like.V != nil:
		v, err := GetNormalizedV(like.V)
		if err != nil {
			return nil, err
		}
		out.v = uint8(v)
		if like.V.Cmp(big35) >= 0 {
			out.networkV = new(big.Int).Set(like.V)
		}
	case like.YParityAndS != nil:
		out.v = 27
		if like.YParityAndS[0]&0x80 != 0 {
			out.v = 28
		}
	case like.YParity != nil:
		switch *like.YParity {
		case 0:
			out.v = 27
		case 1:
			out.v = 28
		default:
			return nil, sigErr("invalid yParity", *like.YParity)
		}
	default:
		return nil, sigErr("missing v", like)
	}

	if like.YParity != nil && *like.YParity != out.YParity() {
		return nil, sigErr("yParity mismatch", *like.YParity)
	}
	if like.YParityAndS != nil && !bytes.Equal(like.YParityAndS, out.YParityAndS()) {
		return nil, sigErr("yParityAndS mismatch", hexutil.Encode(like.YParityAndS))
	}
	return out, nil
}

// R returns a copy of the r value.
func (sig *Signature) R() []byte { return common.CopyBytes(sig.r[:]) }

// S returns a copy of the canonical s value.
func (sig *Signature) S() []byte { return common.CopyBytes(sig.s[:]) }

// V returns the normalized v value, 27 or 28.
func (sig *Signature) V() uint8 { return sig.v }

// NetworkV returns the EIP-155 v value the signature was parsed from, or nil.
func (sig *Signature) NetworkV() *big.Int {
	if sig.networkV == nil {
		return nil
	}
	return new(big.Int).Set(sig.networkV)
}

// YParity returns the recovery parity of the signature, 0 or 1.
func (sig *Signature) YParity() uint8 {
	if sig.v == 27 {
		return 0
	}
	return 1
}

// YParityAndS returns the EIP-2098 packed form of s: the y parity in the top bit.
// YParityAndS 返回 EIP-2098 紧凑形式的 s：最高位存放 y 奇偶性。
func (sig *Signature) YParityAndS() []byte {
	out := sig.S()
	if sig.YParity() == 1 {
		out[0] |= 0x80
	}
	return out
}

// LegacyChainID returns the chain id encoded in NetworkV, or nil if the
// signature carries no EIP-155 v.
func (sig *Signature) LegacyChainID() *big.Int {
	if sig.networkV == nil {
		return nil
	}
	// networkV is always >= 35, so this can't fail
	id, _ := GetChainID(sig.networkV)
	return id
}

// CompactSerialized returns the 64 byte EIP-2098 form r || yParityAndS.
func (sig *Signature) CompactSerialized() []byte {
	return append(sig.R(), sig.YParityAndS()...)
}

// Serialized returns the 65 byte form r || s || v with v as 0x1b or 0x1c.
func (sig *Signature) Serialized() []byte {
	out := make([]byte, 0, SignatureLength)
	out = append(out, sig.r[:]...)
	out = append(out, sig.s[:]...)
	return append(out, sig.v)
}

// recoverable returns the r || s || recid form consumed by Ecrecover.
func (sig *Signature) recoverable() []byte {
	out := sig.Serialized()
	out[RecoveryIDOffset] = sig.YParity()
	return out
}

// Clone returns a deep copy of the signature.
func (sig *Signature) Clone() *Signature {
	cpy := *sig
	cpy.networkV = sig.NetworkV()
	return &cpy
}

// Equal reports whether both signatures have the same r, s and v. NetworkV is
// informational and not compared.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.r == other.r && sig.s == other.s && sig.v == other.v
}

func (sig *Signature) String() string {
	networkV := "null"
	if sig.networkV != nil {
		networkV = sig.networkV.String()
	}
	return fmt.Sprintf("Signature { r: %q, s: %q, yParity: %d, networkV: %s }",
		hexutil.Encode(sig.r[:]), hexutil.Encode(sig.s[:]), sig.YParity(), networkV)
}

type signatureJSON struct {
	Type     string  `json:"_type"`
	NetworkV *string `json:"networkV"`
	R        string  `json:"r"`
	S        string  `json:"s"`
	V        uint8   `json:"v"`
}

// MarshalJSON implements json.Marshaler.
func (sig *Signature) MarshalJSON() ([]byte, error) {
	enc := signatureJSON{
		Type: "signature",
		R:    hexutil.Encode(sig.r[:]),
		S:    hexutil.Encode(sig.s[:]),
		V:    sig.v,
	}
	if sig.networkV != nil {
		s := sig.networkV.String()
		enc.NetworkV = &s
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON implements json.Unmarshaler, accepting the form written by
// MarshalJSON.
func (sig *Signature) UnmarshalJSON(input []byte) error {
	var dec signatureJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	like := SignatureLike{V: big.NewInt(int64(dec.V))}
	var err error
	if like.R, err = hexutil.Decode(dec.R); err != nil {
		return err
	}
	if like.S, err = hexutil.Decode(dec.S); err != nil {
		return err
	}
	if dec.NetworkV != nil {
		nv, ok := new(big.Int).SetString(*dec.NetworkV, 10)
		if !ok {
			return sigErr("invalid networkV", *dec.NetworkV)
		}
		like.V = nv
	}
	parsed, err := signatureFromLike(&like)
	if err != nil {
		return err
	}
	if parsed.v != dec.V {
		return sigErr("v mismatch", dec.V)
	}
	*sig = *parsed
	return nil
}

// GetChainID returns the chain id encoded in a legacy v value. The pre-EIP-155
// values 27 and 28 yield chain id 0.
// GetChainID 返回编码在 legacy v 值中的链 ID。EIP-155 之前的 27 和 28 对应链 ID 0。
func GetChainID(v *big.Int) (*big.Int, error) {
	if v.Cmp(big27) == 0 || v.Cmp(big28) == 0 {
		return new(big.Int), nil
	}
	if v.Cmp(big35) < 0 {
		return nil, errs.NewInvalidArgument("invalid EIP-155 v", "v", v)
	}
	id := new(big.Int).Sub(v, big35)
	return id.Rsh(id, 1), nil
}

// GetChainIDV returns the EIP-155 v value for the given chain id and a
// normalized v of 27 or 28: chainId*2 + 35 + (v - 27).
func GetChainIDV(chainID *big.Int, v uint64) *big.Int {
	out := new(big.Int).Lsh(chainID, 1)
	out.Add(out, big35)
	return out.Add(out, new(big.Int).SetUint64(v-27))
}

// GetNormalizedV maps any supported v representation to 27 or 28: the raw
// parities 0 and 1, the legacy 27 and 28, and EIP-155 values (odd means 27).
// GetNormalizedV 将任意受支持的 v 表示规范化为 27 或 28。
func GetNormalizedV(v *big.Int) (uint64, error) {
	if v.IsUint64() {
		switch v.Uint64() {
		case 0, 27:
			return 27, nil
		case 1, 28:
			return 28, nil
		}
	}
	if v.Cmp(big35) < 0 {
		return 0, errs.NewInvalidArgument("invalid v", "v", v)
	}
	if v.Bit(0) == 1 {
		return 27, nil
	}
	return 28, nil
}

// SignDigest signs a 32 byte digest and returns the canonical signature.
// SignDigest 对 32 字节摘要签名并返回规范签名。
func SignDigest(digest []byte, prv *ecdsa.PrivateKey) (*Signature, error) {
	raw, err := Sign(digest, prv)
	if err != nil {
		return nil, err
	}
	return signatureFromBytes(raw)
}

// RecoverPubkey recovers the public key that produced sig over digest.
func RecoverPubkey(digest []byte, sig *Signature) (*ecdsa.PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, errs.NewInvalidArgument("invalid digest length", "digest", hexutil.Encode(digest))
	}
	r, s := new(big.Int).SetBytes(sig.r[:]), new(big.Int).SetBytes(sig.s[:])
	if !ValidateSignatureValues(sig.YParity(), r, s) {
		return nil, sigErr("invalid signature values", sig.String())
	}
	pub, err := SigToPub(digest, sig.recoverable())
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "cannot recover public key", err)
	}
	return pub, nil
}

// RecoverAddress recovers the address of the account that produced sig over
// digest.
// RecoverAddress 恢复对摘要生成签名的账户地址。
func RecoverAddress(digest []byte, sig *Signature) (common.Address, error) {
	pub, err := RecoverPubkey(digest, sig)
	if err != nil {
		return common.Address{}, err
	}
	return PubkeyToAddress(*pub), nil
}
