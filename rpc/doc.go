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


/*
Package rpc implements the client side of JSON-RPC 2.0 over HTTP and WebSocket.

A Client is created with Dial or DialOptions. The URL scheme selects the transport:
"http" and "https" post every request as its own HTTP call, "ws" and "wss" keep one
connection open and match responses to requests by id.

	client, _ := rpc.Dial("http://localhost:8545")
	var hexNonce string
	err := client.CallContext(ctx, &hexNonce, "eth_getTransactionCount", addr, "pending")

Several calls can be sent in one round trip with BatchCallContext. Each BatchElem carries
its own result and error.

Errors returned by the server implement the Error interface, giving access to the
JSON-RPC error code. Errors that carry a data member also implement DataError.

Package rpc 实现了基于 HTTP 和 WebSocket 的 JSON-RPC 2.0 客户端。
*/
package rpc
