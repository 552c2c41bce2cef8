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


package params

import "math/big"

// Chain ids of well known networks.
// 常见网络的链 ID。
const (
	MainnetChainID  = 1
	GoerliChainID   = 5
	OptimismChainID = 10
	BNBChainID      = 56
	MaticChainID    = 137
	HoleskyChainID  = 17000
	ArbitrumChainID = 42161
	SepoliaChainID  = 11155111
)

var networkNames = map[uint64]string{
	MainnetChainID:  "mainnet",
	GoerliChainID:   "goerli",
	OptimismChainID: "optimism",
	BNBChainID:      "bnb",
	MaticChainID:    "matic",
	HoleskyChainID:  "holesky",
	ArbitrumChainID: "arbitrum",
	SepoliaChainID:  "sepolia",
}

// NetworkName returns the name of a well known chain id, or "unknown".
// NetworkName 返回常见链 ID 的名称，未知时返回 "unknown"。
func NetworkName(chainID *big.Int) string {
	if chainID != nil && chainID.IsUint64() {
		if name, ok := networkNames[chainID.Uint64()]; ok {
			return name
		}
	}
	return "unknown"
}
