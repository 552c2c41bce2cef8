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
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	vsn                 = "2.0"
	defaultWriteTimeout = 10 * time.Second // used if context has no deadline
)

// A value of this type can a JSON-RPC request, notification, successful response or
// error response. Which one it is depends on the fields.
//
// 此类型的值可以是 JSON-RPC 请求、通知、成功响应或错误响应。具体是哪种类型取决于字段。
type jsonrpcMessage struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Error   *jsonError      `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

func (msg *jsonrpcMessage) isResponse() bool {
	return msg.hasValidVersion() && msg.hasValidID() && msg.Method == "" && msg.Params == nil && (msg.Result != nil || msg.Error != nil)
}

func (msg *jsonrpcMessage) hasValidID() bool {
	return len(msg.ID) > 0 && msg.ID[0] != '{' && msg.ID[0] != '['
}

func (msg *jsonrpcMessage) hasValidVersion() bool {
	return msg.Version == vsn
}

func (msg *jsonrpcMessage) String() string {
	b, _ := json.Marshal(msg)
	return string(b)
}

// newRequest builds a call message. The parameters are encoded as a JSON array.
// newRequest 构造一个调用消息，参数编码为 JSON 数组。
func newRequest(id uint32, method string, paramsIn ...interface{}) (*jsonrpcMessage, error) {
	msg := &jsonrpcMessage{Version: vsn, ID: strconv.AppendUint(nil, uint64(id), 10), Method: method}
	if paramsIn != nil { // prevent sending "params":null
		var err error
		if msg.Params, err = json.Marshal(paramsIn); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// jsonError is the error member of a JSON-RPC response.
type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}
	return err.Message
}

func (err *jsonError) ErrorCode() int {
	return err.Code
}

func (err *jsonError) ErrorData() interface{} {
	return err.Data
}

// decodeMessages parses a single response object or a batch of them.
// decodeMessages 解析单个响应对象或一批响应。
func decodeMessages(raw json.RawMessage) ([]*jsonrpcMessage, bool, error) {
	if !isBatch(raw) {
		msgs := []*jsonrpcMessage{{}}
		if err := json.Unmarshal(raw, &msgs[0]); err != nil {
			return nil, false, err
		}
		return msgs, false, nil
	}
	var msgs []*jsonrpcMessage
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, true, err
	}
	return msgs, true, nil
}

// isBatch returns true when the first non-whitespace characters is '['
// isBatch 在第一个非空白字符为 '[' 时返回 true。
func isBatch(raw json.RawMessage) bool {
	for _, c := range raw {
		// skip insignificant whitespace (http://www.ietf.org/rfc/rfc4627.txt)
		if c == 0x20 || c == 0x09 || c == 0x0a || c == 0x0d {
			continue
		}
		return c == '['
	}
	return false
}
