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
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sunyihoo/goethers/log"
)

const (
	wsReadBuffer       = 1024
	wsWriteBuffer      = 1024
	wsPingInterval     = 30 * time.Second
	wsPingWriteTimeout = 5 * time.Second
	wsPongTimeout      = 30 * time.Second
	wsDefaultReadLimit = 32 * 1024 * 1024
)

var wsBufferPool = new(sync.Pool)

// wsConn multiplexes requests over one WebSocket connection. Responses are routed
// to the waiting caller by request id.
//
// wsConn 在一个 WebSocket 连接上复用请求，响应按请求 id 分发给等待的调用方。
type wsConn struct {
	conn *websocket.Conn
	log  log.Logger

	writeMu sync.Mutex // guards writes on conn

	mu      sync.Mutex
	pending map[string]chan *jsonrpcMessage
	err     error // set once the read loop has failed

	closeOnce    sync.Once
	closeCh      chan struct{}
	pingReset    chan struct{}
	pongReceived chan struct{}
	wg           sync.WaitGroup
}

func newClientTransportWS(ctx context.Context, endpoint string, cfg *clientConfig) (*wsConn, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint, "")
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.httpHeaders {
		header[key] = values
	}
	if header, err = requestHeaders(ctx, header, cfg.httpAuth); err != nil {
		return nil, err
	}
	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	limit := int64(wsDefaultReadLimit)
	if cfg.wsMessageSizeLimit != nil && *cfg.wsMessageSizeLimit >= 0 {
		limit = *cfg.wsMessageSizeLimit
	}
	conn.SetReadLimit(limit)

	logger := cfg.logger
	if logger == nil {
		logger = log.Root()
	}
	wc := &wsConn{
		conn:         conn,
		log:          logger.New("url", dialURL),
		pending:      make(map[string]chan *jsonrpcMessage),
		closeCh:      make(chan struct{}),
		pingReset:    make(chan struct{}, 1),
		pongReceived: make(chan struct{}),
	}
	conn.SetPongHandler(func(appData string) error {
		select {
		case wc.pongReceived <- struct{}{}:
		case <-wc.closeCh:
		}
		return nil
	})
	wc.wg.Add(2)
	go wc.readLoop()
	go wc.pingLoop()
	return wc, nil
}

// wsClientHeaders moves URL credentials into a basic auth header.
func wsClientHeaders(endpoint, origin string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if origin != "" {
		header.Add("origin", origin)
	}
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

func (wc *wsConn) close() {
	wc.closeOnce.Do(func() {
		close(wc.closeCh)
		wc.conn.Close()
	})
	wc.wg.Wait()
}

func (wc *wsConn) send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	resps, err := wc.roundTrip(ctx, msg, []*jsonrpcMessage{msg})
	if err != nil {
		return nil, err
	}
	return resps[0], nil
}

func (wc *wsConn) sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	return wc.roundTrip(ctx, msgs, msgs)
}

// roundTrip registers the ids of msgs, writes payload and waits for one response
// per id.
func (wc *wsConn) roundTrip(ctx context.Context, payload interface{}, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	chans, err := wc.register(msgs)
	if err != nil {
		return nil, err
	}
	defer wc.unregister(msgs)

	if err := wc.write(ctx, payload); err != nil {
		return nil, err
	}
	resps := make([]*jsonrpcMessage, 0, len(msgs))
	for _, ch := range chans {
		select {
		case resp := <-ch:
			resps = append(resps, resp)
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wc.closeCh:
			return nil, wc.readErr()
		}
	}
	return resps, nil
}

func (wc *wsConn) register(msgs []*jsonrpcMessage) ([]chan *jsonrpcMessage, error) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if wc.err != nil {
		return nil, wc.err
	}
	chans := make([]chan *jsonrpcMessage, len(msgs))
	for i, msg := range msgs {
		chans[i] = make(chan *jsonrpcMessage, 1)
		wc.pending[string(msg.ID)] = chans[i]
	}
	return chans, nil
}

func (wc *wsConn) unregister(msgs []*jsonrpcMessage) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	for _, msg := range msgs {
		delete(wc.pending, string(msg.ID))
	}
}

func (wc *wsConn) readErr() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if wc.err != nil {
		return wc.err
	}
	return ErrClientQuit
}

func (wc *wsConn) write(ctx context.Context, v interface{}) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteTimeout)
	}
	wc.writeMu.Lock()
	wc.conn.SetWriteDeadline(deadline)
	err := wc.conn.WriteJSON(v)
	wc.writeMu.Unlock()

	if err == nil {
		select {
		case wc.pingReset <- struct{}{}:
		default:
		}
	}
	return err
}

// readLoop dispatches incoming responses until the connection fails.
// readLoop 分发收到的响应，直到连接失败。
func (wc *wsConn) readLoop() {
	defer wc.wg.Done()

	for {
		var raw json.RawMessage
		if err := wc.conn.ReadJSON(&raw); err != nil {
			wc.fail(err)
			return
		}
		msgs, _, err := decodeMessages(raw)
		if err != nil {
			wc.log.Debug("Dropping invalid WebSocket message", "err", err)
			continue
		}
		for _, msg := range msgs {
			wc.dispatch(msg)
		}
	}
}

func (wc *wsConn) dispatch(msg *jsonrpcMessage) {
	if !msg.isResponse() {
		wc.log.Trace("Ignoring non-response message", "msg", msg)
		return
	}
	wc.mu.Lock()
	ch, ok := wc.pending[string(msg.ID)]
	delete(wc.pending, string(msg.ID))
	wc.mu.Unlock()

	if !ok {
		wc.log.Trace("Unsolicited RPC response", "reqid", string(msg.ID))
		return
	}
	ch <- msg
}

// fail records the read error and wakes all waiting callers.
func (wc *wsConn) fail(err error) {
	wc.mu.Lock()
	select {
	case <-wc.closeCh:
		err = ErrClientQuit
	default:
	}
	if wc.err == nil {
		wc.err = err
	}
	wc.mu.Unlock()

	if err != ErrClientQuit {
		wc.log.Debug("WebSocket connection failed", "err", err)
	}
	wc.closeOnce.Do(func() {
		close(wc.closeCh)
		wc.conn.Close()
	})
}

// pingLoop sends periodic ping frames while the connection is idle.
// pingLoop 在连接空闲时周期性地发送 ping 帧。
func (wc *wsConn) pingLoop() {
	var pingTimer = time.NewTimer(wsPingInterval)
	defer wc.wg.Done()
	defer pingTimer.Stop()

	for {
		select {
		case <-wc.closeCh:
			return

		case <-wc.pingReset:
			if !pingTimer.Stop() {
				<-pingTimer.C
			}
			pingTimer.Reset(wsPingInterval)

		case <-pingTimer.C:
			wc.writeMu.Lock()
			wc.conn.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout))
			wc.conn.WriteMessage(websocket.PingMessage, nil)
			wc.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			wc.writeMu.Unlock()
			pingTimer.Reset(wsPingInterval)

		case <-wc.pongReceived:
			wc.conn.SetReadDeadline(time.Time{})
		}
	}
}
