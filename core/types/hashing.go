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
	"sync"

	"github.com/sunyihoo/goethers/common"
	"github.com/sunyihoo/goethers/crypto"
	"golang.org/x/crypto/sha3"
)

// hasherPool holds LegacyKeccak256 hashers for keccakHash.
// hasherPool 保存用于 keccakHash 的 LegacyKeccak256 哈希器。
var hasherPool = sync.Pool{
	New: func() interface{} { return sha3.NewLegacyKeccak256() },
}

// keccakHash hashes the concatenation of the given byte slices.
// keccakHash 对给定字节切片的拼接结果计算哈希。
func keccakHash(data ...[]byte) (h common.Hash) {
	sha := hasherPool.Get().(crypto.KeccakState)
	defer hasherPool.Put(sha)
	sha.Reset()
	for _, b := range data {
		sha.Write(b)
	}
	sha.Read(h[:])
	return h
}

// prefixedHash writes the prefix into the hasher before the payload. Legacy
// transactions have no type prefix, which is signalled by LegacyTxType.
// prefixedHash 在负载之前把类型前缀写入哈希器，legacy 交易没有前缀。
func prefixedHash(prefix byte, payload []byte) common.Hash {
	if prefix == LegacyTxType {
		return keccakHash(payload)
	}
	return keccakHash([]byte{prefix}, payload)
}
