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


package accounts

import (
	"errors"

	"github.com/sunyihoo/goethers/errs"
)

// ErrNoProvider is the cause of errors returned by operations that need a
// network provider when the signer has none.
// ErrNoProvider 是签名者没有网络 provider 时需要 provider 的操作所返回错误的原因。
var ErrNoProvider = errors.New("missing provider")

func missingProvider(operation string) error {
	return &errs.Error{
		Code:         errs.UnsupportedOperation,
		ShortMessage: "missing provider",
		Operation:    operation,
		Err:          ErrNoProvider,
	}
}

// cannotSign is returned by key holders that have no key.
func cannotSign(what, operation string) error {
	return errs.NewUnsupported("VoidSigner cannot sign "+what, operation)
}
