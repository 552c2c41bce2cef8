// Copyright 2022 The go-ethereum Authors
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

package rpc

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sunyihoo/goethers/common"
)

// NewJWTAuth creates an HTTPAuth that signs a fresh HS256 token with the given
// secret on every request. Nodes guarding their endpoint with a JWT secret
// accept tokens whose iat is within a few seconds of their clock.
//
// NewJWTAuth 创建一个 HTTPAuth，每次请求都用给定密钥签发新的 HS256 令牌。
func NewJWTAuth(secret [32]byte) HTTPAuth {
	return func(h http.Header) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iat": &jwt.NumericDate{Time: time.Now()},
		})
		s, err := token.SignedString(secret[:])
		if err != nil {
			return fmt.Errorf("failed to create JWT token: %w", err)
		}
		h.Set("Authorization", "Bearer "+s)
		return nil
	}
}

// ReadJWTSecret loads a hex encoded 32 byte secret from a file, the format
// written by execution clients.
// ReadJWTSecret 从文件读取十六进制编码的 32 字节密钥。
func ReadJWTSecret(path string) ([32]byte, error) {
	var secret [32]byte
	data, err := os.ReadFile(path)
	if err != nil {
		return secret, err
	}
	raw := common.FromHex(strings.TrimSpace(string(data)))
	if len(raw) != len(secret) {
		return secret, fmt.Errorf("invalid JWT secret in %s: want 32 bytes, have %d", path, len(raw))
	}
	copy(secret[:], raw)
	return secret, nil
}
