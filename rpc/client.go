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
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/sunyihoo/goethers/log"
)

// transport carries encoded requests to the server and returns the matching responses.
// transport 将编码后的请求发送到服务器，并返回对应的响应。
type transport interface {
	send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error)
	sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error)
	close()
}

// Client represents a connection to an RPC server.
// Client 表示到 RPC 服务器的连接。
type Client struct {
	idCounter atomic.Uint32
	conn      transport
	closed    atomic.Bool
	log       log.Logger
}

// BatchElem is an element in a batch request.
// BatchElem 是批量请求中的一个元素。
type BatchElem struct {
	Method string
	Args   []interface{}
	// The result is unmarshaled into this field. Result must be set to a
	// non-nil pointer value of the desired type, otherwise the response will be
	// discarded.
	Result interface{}
	// Error is set if the server returns an error for this request, or if
	// unmarshalling into Result fails. It is not set for I/O errors.
	Error error
}

// Dial creates a new client for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss".
//
// Dial 为给定的 URL 创建一个新客户端。
func Dial(rawurl string) (*Client, error) {
	return DialOptions(context.Background(), rawurl)
}

// DialContext creates a new RPC client, just like Dial.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions creates a new RPC client for the given URL. You can supply any of the
// pre-defined client options to configure the underlying transport.
//
// DialOptions 为给定的 URL 创建一个新的 RPC 客户端，可以传入预定义的客户端选项来配置底层传输。
func DialOptions(ctx context.Context, rawurl string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	cfg := new(clientConfig)
	for _, opt := range options {
		opt.applyOption(cfg)
	}

	var conn transport
	switch u.Scheme {
	case "http", "https":
		conn = newClientTransportHTTP(rawurl, cfg)
	case "ws", "wss":
		if conn, err = newClientTransportWS(ctx, rawurl, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
	return newClient(conn, cfg), nil
}

func newClient(conn transport, cfg *clientConfig) *Client {
	c := &Client{conn: conn, log: cfg.logger}
	if c.log == nil {
		c.log = log.Root()
	}
	return c
}

func (c *Client) nextID() uint32 {
	return c.idCounter.Add(1)
}

// Close closes the client, aborting any in-flight requests.
// Close 关闭客户端，中止所有进行中的请求。
func (c *Client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		c.conn.close()
	}
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// Call 使用给定参数执行 JSON-RPC 调用，若无错误则将结果反序列化到 result 中。
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	return c.CallContext(context.Background(), result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// CallContext 使用给定参数执行 JSON-RPC 调用。如果上下文在调用成功返回前被取消，CallContext 会立即返回。
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	if c.closed.Load() {
		return ErrClientQuit
	}
	msg, err := newRequest(c.nextID(), method, args...)
	if err != nil {
		return err
	}
	start := time.Now()
	c.log.Trace("Sending RPC request", "method", method, "reqid", string(msg.ID))
	resp, err := c.conn.send(ctx, msg)
	if err != nil {
		c.log.Debug("RPC request failed", "method", method, "reqid", string(msg.ID), "err", err)
		return err
	}
	c.log.Trace("Received RPC response", "method", method, "reqid", string(msg.ID), "duration", time.Since(start))

	switch {
	case resp.Error != nil:
		return resp.Error
	case len(resp.Result) == 0:
		return ErrNoResult
	default:
		if result == nil {
			return nil
		}
		return json.Unmarshal(resp.Result, result)
	}
}

// BatchCall sends all given requests as a single batch and waits for the server
// to return a response for all of them.
//
// In contrast to Call, BatchCall only returns I/O errors. Any error specific to
// a request is reported through the Error field of the corresponding BatchElem.
//
// Note that batch calls may not be executed atomically on the server side.
func (c *Client) BatchCall(b []BatchElem) error {
	return c.BatchCallContext(context.Background(), b)
}

// BatchCallContext sends all given requests as a single batch and waits for the server
// to return a response for all of them. The wait duration is bounded by the
// context's deadline.
//
// In contrast to CallContext, BatchCallContext only returns errors that have occurred
// while sending the request. Any error specific to a request is reported through the
// Error field of the corresponding BatchElem.
//
// BatchCallContext 将所有请求作为一个批次发送，并等待服务器返回全部响应。
func (c *Client) BatchCallContext(ctx context.Context, b []BatchElem) error {
	if c.closed.Load() {
		return ErrClientQuit
	}
	var (
		msgs = make([]*jsonrpcMessage, len(b))
		byID = make(map[string]int, len(b))
	)
	for i, elem := range b {
		msg, err := newRequest(c.nextID(), elem.Method, elem.Args...)
		if err != nil {
			return err
		}
		msgs[i] = msg
		byID[string(msg.ID)] = i
	}
	c.log.Trace("Sending RPC batch", "len", len(msgs))
	resps, err := c.conn.sendBatch(ctx, msgs)
	if err != nil {
		c.log.Debug("RPC batch failed", "len", len(msgs), "err", err)
		return err
	}

	answered := make([]bool, len(b))
	for _, resp := range resps {
		index, ok := byID[string(resp.ID)]
		if !ok || answered[index] {
			continue
		}
		answered[index] = true

		elem := &b[index]
		switch {
		case resp.Error != nil:
			elem.Error = resp.Error
		case resp.Result == nil:
			elem.Error = ErrNoResult
		default:
			if elem.Result != nil {
				elem.Error = json.Unmarshal(resp.Result, elem.Result)
			}
		}
	}
	for i := range b {
		if !answered[i] {
			b[i].Error = ErrMissingBatchResponse
		}
	}
	return nil
}
