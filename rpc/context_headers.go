// Copyright 2015 The go-ethereum Authors
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
	"context"
	"net/http"
)

type mdHeaderKey struct{}

// NewContextWithHeaders returns a context carrying extra HTTP headers. The client
// adds them to every HTTP request, and to the WebSocket handshake, made with the
// returned context. Headers already present in ctx are kept unless overridden.
//
// NewContextWithHeaders 返回携带额外 HTTP 头部的上下文，客户端使用该上下文发起请求时会附加这些头部。
func NewContextWithHeaders(ctx context.Context, h http.Header) context.Context {
	if len(h) == 0 {
		return ctx
	}
	merged := h.Clone()
	if prev := headersFromContext(ctx); prev != nil {
		merged = setHeaders(prev.Clone(), h)
	}
	return context.WithValue(ctx, mdHeaderKey{}, merged)
}

func headersFromContext(ctx context.Context) http.Header {
	source, _ := ctx.Value(mdHeaderKey{}).(http.Header)
	return source
}

// requestHeaders combines the base headers of a connection with the headers
// stored in ctx, then applies auth.
// requestHeaders 合并连接的基础头部与上下文中的头部，然后执行认证。
func requestHeaders(ctx context.Context, base http.Header, auth HTTPAuth) (http.Header, error) {
	h := base.Clone()
	if h == nil {
		h = make(http.Header)
	}
	setHeaders(h, headersFromContext(ctx))
	if auth != nil {
		if err := auth(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// setHeaders sets all headers from src in dst.
func setHeaders(dst http.Header, src http.Header) http.Header {
	for key, values := range src {
		dst[http.CanonicalHeaderKey(key)] = values
	}
	return dst
}
