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

package crypto

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"os"
	"strings"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/common/math"
	"github.com/sunyihoo/goethers/rlp"
	"golang.org/x/crypto/sha3"
)

const (
	// SignatureLength is the size of a raw signature with its recovery id.
	// SignatureLength 是带恢复 ID 的原始签名长度。
	SignatureLength = 64 + 1

	// RecoveryIDOffset is the position of the recovery id in a raw signature.
	RecoveryIDOffset = 64

	// DigestLength is the size of a signed digest.
	DigestLength = 32

	// keyFileHexLen is the number of hex characters of a key file.
	keyFileHexLen = 64
)

// ErrInvalidSignatureLen is wrapped by every error reporting a raw signature
// that is neither 64 nor 65 bytes long.
var ErrInvalidSignatureLen = errors.New("invalid signature length")

// KeccakState is a keccak256 hash that can also be Read, which squeezes output
// without the copy Sum makes. Reading changes the state.
//
// KeccakState 是可以 Read 的 keccak256 哈希，Read 不像 Sum 那样复制状态，但会改变状态。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState returns an empty keccak256 state.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData resets kh and returns the keccak256 hash of data.
// HashData 重置 kh 并返回 data 的 keccak256 哈希。
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256Hash returns the keccak256 hash of the concatenated inputs.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(h[:])
	return h
}

// Keccak256 is Keccak256Hash returning a byte slice.
// Keccak256 与 Keccak256Hash 相同，但返回字节切片。
func Keccak256(data ...[]byte) []byte {
	h := Keccak256Hash(data...)
	return h[:]
}

// PubkeyToAddress derives the account address of a public key, the last 20
// bytes of keccak256(X || Y).
// PubkeyToAddress 从公钥推导账户地址：keccak256(X || Y) 的后 20 字节。
func PubkeyToAddress(p ecdsa.PublicKey) common.Address {
	return common.BytesToAddress(Keccak256(FromECDSAPub(&p)[1:])[12:])
}

// CreateAddress returns the address of a contract deployed by sender at the
// given nonce, the last 20 bytes of keccak256(rlp([sender, nonce])).
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{sender, nonce})
	return common.BytesToAddress(Keccak256(data)[12:])
}

// FromECDSA returns the 32 byte scalar of a private key.
// FromECDSA 返回私钥的 32 字节标量。
func FromECDSA(priv *ecdsa.PrivateKey) []byte {
	if priv == nil {
		return nil
	}
	return math.PaddedBigBytes(priv.D, 32)
}

// HexToECDSA parses a hex encoded private key. A leading 0x is accepted.
func HexToECDSA(hexkey string) (*ecdsa.PrivateKey, error) {
	hexkey = strings.TrimPrefix(strings.TrimPrefix(hexkey, "0x"), "0X")
	b, err := hex.DecodeString(hexkey)
	var byteErr hex.InvalidByteError
	switch {
	case errors.As(err, &byteErr):
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	case err != nil:
		return nil, errors.New("invalid hex data for private key")
	}
	return ToECDSA(b)
}

// LoadECDSA reads a private key file: 64 hex characters followed by at most two
// line ending bytes.
// LoadECDSA 读取私钥文件：64 个十六进制字符，后跟最多两个换行字节。
func LoadECDSA(file string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	end := bytes.IndexFunc(data, func(r rune) bool { return r < '!' })
	if end < 0 {
		end = len(data)
	}
	if end < keyFileHexLen {
		return nil, errors.New("key file too short, want 64 hex characters")
	}
	for i, b := range data[keyFileHexLen:] {
		if b != '\n' && b != '\r' {
			return nil, fmt.Errorf("invalid character %q at end of key file", b)
		}
		if i >= 2 {
			return nil, errors.New("key file too long, want 64 hex characters")
		}
	}
	return HexToECDSA(string(data[:keyFileHexLen]))
}

// SaveECDSA writes a private key file readable by LoadECDSA, with 0600
// permissions.
func SaveECDSA(file string, key *ecdsa.PrivateKey) error {
	return os.WriteFile(file, []byte(hex.EncodeToString(FromECDSA(key))), 0600)
}
