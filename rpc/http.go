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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const (
	contentType = "application/json"
	// responses larger than this are rejected
	defaultBodyLimit = 5 * 1024 * 1024
)

// httpConn posts each request as a separate HTTP call.
// httpConn 将每个请求作为单独的 HTTP 调用发送。
type httpConn struct {
	client  *http.Client
	url     string
	headers http.Header
	auth    HTTPAuth
	closeCh chan struct{}
}

func newClientTransportHTTP(endpoint string, cfg *clientConfig) *httpConn {
	headers := make(http.Header, 2+len(cfg.httpHeaders))
	headers.Set("accept", contentType)
	headers.Set("content-type", contentType)
	for key, values := range cfg.httpHeaders {
		headers[key] = values
	}

	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	return &httpConn{
		client:  client,
		headers: headers,
		url:     endpoint,
		auth:    cfg.httpAuth,
		closeCh: make(chan struct{}),
	}
}

func (hc *httpConn) close() {
	close(hc.closeCh)
}

func (hc *httpConn) send(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	respBody, err := hc.doRequest(ctx, msg)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var resp jsonrpcMessage
	if err := json.NewDecoder(io.LimitReader(respBody, defaultBodyLimit)).Decode(&resp); err != nil {
		return nil, err
	}
	if !resp.isResponse() {
		return nil, errInvalidResponse
	}
	return &resp, nil
}

func (hc *httpConn) sendBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	respBody, err := hc.doRequest(ctx, msgs)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var respmsgs []*jsonrpcMessage
	if err := json.NewDecoder(io.LimitReader(respBody, defaultBodyLimit)).Decode(&respmsgs); err != nil {
		return nil, err
	}
	return respmsgs, nil
}

// doRequest posts msg and returns the response body. Non-2xx answers are
// returned as HTTPError.
// doRequest 发送 msg 并返回响应体，非 2xx 响应以 HTTPError 返回。
func (hc *httpConn) doRequest(ctx context.Context, msg interface{}) (io.ReadCloser, error) {
	select {
	case <-hc.closeCh:
		return nil, ErrClientQuit
	default:
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.url, io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(body)), nil }
	if req.Header, err = requestHeaders(ctx, hc.headers, hc.auth); err != nil {
		return nil, err
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		var body []byte
		if _, err := buf.ReadFrom(io.LimitReader(resp.Body, defaultBodyLimit)); err == nil {
			body = buf.Bytes()
		}
		resp.Body.Close()
		return nil, HTTPError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return resp.Body, nil
}
