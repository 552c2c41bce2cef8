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

package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// compactHeader is the offset decred adds to the recovery id in the first byte
// of a compact signature, for keys in uncompressed form.
const compactHeader = 27

var (
	secp256k1N     = secp256k1.S256().N
	secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)

	errInvalidPubkey = errors.New("invalid secp256k1 public key")
)

// S256 returns the secp256k1 curve.
// S256 返回 secp256k1 曲线。
func S256() elliptic.Curve {
	return secp256k1.S256()
}

// decredPrivateKey converts a private key, rejecting scalars outside [1, N).
func decredPrivateKey(prv *ecdsa.PrivateKey) (*secp256k1.PrivateKey, error) {
	if prv == nil || prv.D == nil {
		return nil, errors.New("missing private key")
	}
	if prv.Curve != S256() {
		return nil, errors.New("private key curve is not secp256k1")
	}
	var scalar secp256k1.ModNScalar
	if prv.D.BitLen() > 256 || scalar.SetByteSlice(prv.D.Bytes()) || scalar.IsZero() {
		return nil, errors.New("invalid private key")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

func toDecredPub(pub *ecdsa.PublicKey) *secp256k1.PublicKey {
	var x, y secp256k1.FieldVal
	x.SetByteSlice(pub.X.Bytes())
	y.SetByteSlice(pub.Y.Bytes())
	return secp256k1.NewPublicKey(&x, &y)
}

// ToECDSA creates a private key from its 32 byte big endian scalar.
// ToECDSA 使用 32 字节大端标量创建私钥。
func ToECDSA(d []byte) (*ecdsa.PrivateKey, error) {
	if len(d) != 32 {
		return nil, errors.New("invalid length, need 256 bits")
	}
	var scalar secp256k1.ModNScalar
	if scalar.SetByteSlice(d) {
		return nil, errors.New("invalid private key, >=N")
	}
	if scalar.IsZero() {
		return nil, errors.New("invalid private key, zero or negative")
	}
	return secp256k1.NewPrivateKey(&scalar).ToECDSA(), nil
}

// GenerateKey generates a new private key from crypto/rand.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return key.ToECDSA(), nil
}

// UnmarshalPubkey parses a public key in the 65 byte uncompressed form
// 0x04 || X || Y. Points off the curve are rejected.
// UnmarshalPubkey 解析 65 字节未压缩格式的公钥，拒绝不在曲线上的点。
func UnmarshalPubkey(pub []byte) (*ecdsa.PublicKey, error) {
	if len(pub) != 65 || pub[0] != secp256k1.PubKeyFormatUncompressed {
		return nil, errInvalidPubkey
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPubkey, err)
	}
	return key.ToECDSA(), nil
}

// FromECDSAPub serializes a public key in the 65 byte uncompressed form.
func FromECDSAPub(pub *ecdsa.PublicKey) []byte {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return nil
	}
	return toDecredPub(pub).SerializeUncompressed()
}

// CompressPubkey encodes a valid public key in the 33 byte compressed form.
// CompressPubkey 将有效公钥编码为 33 字节压缩格式。
func CompressPubkey(pubkey *ecdsa.PublicKey) []byte {
	return toDecredPub(pubkey).SerializeCompressed()
}

// DecompressPubkey parses a public key in the 33 byte compressed form.
func DecompressPubkey(pubkey []byte) (*ecdsa.PublicKey, error) {
	if len(pubkey) != secp256k1.PubKeyBytesLenCompressed {
		return nil, errors.New("invalid compressed public key length")
	}
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return nil, err
	}
	return key.ToECDSA(), nil
}

// Sign signs a 32 byte digest. The result is r || s || v, 65 bytes, with v the
// recovery id (0 or 1) and s in the lower half of the curve order.
//
// The digest must not be chosen by an adversary; hash any input first.
//
// Sign 对 32 字节摘要签名，返回 r || s || v 共 65 字节，v 为恢复 ID（0 或 1）。
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly %d bytes (%d)", DigestLength, len(hash))
	}
	key, err := decredPrivateKey(prv)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	// decred emits v || r || s with v offset by compactHeader
	compact := decred_ecdsa.SignCompact(key, hash, false)
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[RecoveryIDOffset] = compact[0] - compactHeader
	return sig, nil
}

// recoverKey recovers the signing key of a 65 byte r || s || v signature.
func recoverKey(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, errors.New("invalid signature")
	}
	if v := sig[RecoveryIDOffset]; v > 1 {
		return nil, fmt.Errorf("invalid signature recovery id %d", v)
	}
	compact := make([]byte, SignatureLength)
	compact[0] = sig[RecoveryIDOffset] + compactHeader
	copy(compact[1:], sig[:RecoveryIDOffset])

	pub, _, err := decred_ecdsa.RecoverCompact(compact, hash)
	return pub, err
}

// Ecrecover returns the uncompressed public key that produced sig over hash.
// Ecrecover 返回对哈希生成签名的未压缩公钥。
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := recoverKey(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// SigToPub is Ecrecover returning the key as an *ecdsa.PublicKey.
func SigToPub(hash, sig []byte) (*ecdsa.PublicKey, error) {
	pub, err := recoverKey(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.ToECDSA(), nil
}

// VerifySignature checks a 64 byte r || s signature over hash against a public
// key in compressed or uncompressed form. Signatures with s in the upper half
// of the curve order are rejected.
//
// VerifySignature 使用压缩或未压缩格式的公钥验证 64 字节 r || s 签名，拒绝高 S 值签名。
func VerifySignature(pubkey, hash, signature []byte) bool {
	if len(signature) != 64 {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) || s.SetByteSlice(signature[32:]) || s.IsOverHalfOrder() {
		return false
	}
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	return decred_ecdsa.NewSignature(&r, &s).Verify(hash, key)
}

// ValidateSignatureValues reports whether v, r and s form a canonical
// signature: v is 0 or 1, r is in [1, N) and s in [1, N/2].
// ValidateSignatureValues 报告 v、r、s 是否构成规范签名。
func ValidateSignatureValues(v byte, r, s *big.Int) bool {
	if v > 1 || r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	return r.Cmp(secp256k1N) < 0 && s.Cmp(secp256k1halfN) <= 0
}
