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

package params

import (
	"math/big"
	"strings"

	"github.com/sunyihoo/goethers/errs"
)

// Multipliers of the ether denominations, in wei.
//
//	new(big.Int).Mul(value, big.NewInt(params.GWei))
//
// 以太币各单位相对 wei 的乘数。
const (
	Wei   = 1
	GWei  = 1e9
	Ether = 1e18
)

// denominations accepted as amount suffixes, longest match first.
var denominations = []struct {
	suffix   string
	decimals int
}{
	{"ether", 18},
	{"gwei", 9},
	{"wei", 0},
}

// ParseAmount parses an amount of wei. A plain integer, decimal or 0x hex, is
// taken as wei. A decimal number may carry a unit suffix, "20gwei" or
// "0.05 ether", with no more fraction digits than the unit has.
//
// ParseAmount 解析以 wei 计的数量，十进制数可以带单位后缀，例如 "20gwei" 或 "0.05 ether"。
func ParseAmount(s string) (*big.Int, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(input, "0x") {
		v, ok := new(big.Int).SetString(input[2:], 16)
		if !ok {
			return nil, errs.NewInvalidArgument("invalid amount", "amount", s)
		}
		return v, nil
	}
	decimals := 0
	for _, d := range denominations {
		if strings.HasSuffix(input, d.suffix) {
			input = strings.TrimSpace(strings.TrimSuffix(input, d.suffix))
			decimals = d.decimals
			break
		}
	}
	whole, frac, _ := strings.Cut(input, ".")
	if len(frac) > decimals {
		return nil, errs.NewInvalidArgument("too many decimals for unit", "amount", s)
	}
	digits := whole + frac
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return nil, errs.NewInvalidArgument("invalid amount", "amount", s)
	}
	v, _ := new(big.Int).SetString(digits+strings.Repeat("0", decimals-len(frac)), 10)
	return v, nil
}
