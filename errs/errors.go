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

// Package errs defines the closed set of typed failures returned by every layer of
// the library, from the codecs up to the signer.
// Package errs 定义了库中每一层（从编解码器到签名器）返回的封闭类型化错误集合。
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code identifies the kind of failure carried by an Error.
// Code 标识 Error 携带的失败类型。
type Code string

const (
	// Generic errors
	// 通用错误
	UnknownError         Code = "UNKNOWN_ERROR"
	NotImplemented       Code = "NOT_IMPLEMENTED"
	UnsupportedOperation Code = "UNSUPPORTED_OPERATION"
	NetworkError         Code = "NETWORK_ERROR"
	ServerError          Code = "SERVER_ERROR"
	Timeout              Code = "TIMEOUT"
	BadData              Code = "BAD_DATA"
	Cancelled            Code = "CANCELLED"

	// Operational errors
	// 操作错误
	BufferOverrun Code = "BUFFER_OVERRUN"
	NumericFault  Code = "NUMERIC_FAULT"

	// Argument errors
	// 参数错误
	InvalidArgument    Code = "INVALID_ARGUMENT"
	MissingArgument    Code = "MISSING_ARGUMENT"
	UnexpectedArgument Code = "UNEXPECTED_ARGUMENT"
	ValueMismatch      Code = "VALUE_MISMATCH"

	// Blockchain errors, produced from node responses
	// 区块链错误，由节点响应产生
	CallException          Code = "CALL_EXCEPTION"
	InsufficientFunds      Code = "INSUFFICIENT_FUNDS"
	NonceExpired           Code = "NONCE_EXPIRED"
	ReplacementUnderpriced Code = "REPLACEMENT_UNDERPRICED"
	TransactionReplaced    Code = "TRANSACTION_REPLACED"
	UnpredictableGasLimit  Code = "UNPREDICTABLE_GAS_LIMIT"

	// User interaction
	// 用户交互
	ActionRejected Code = "ACTION_REJECTED"
)

// Error is the single error type of the library. Which of the context fields are
// populated depends on Code:
//
//   - INVALID_ARGUMENT: Argument and Value
//   - MISSING_ARGUMENT / UNEXPECTED_ARGUMENT: Count and ExpectedCount
//   - BUFFER_OVERRUN: Buffer, Offset and Length
//   - NUMERIC_FAULT: Fault, Operation and Value
//   - UNSUPPORTED_OPERATION: Operation
//
// Error 是库中唯一的错误类型。填充哪些上下文字段取决于 Code。
type Error struct {
	Code         Code
	ShortMessage string

	Argument string
	Value    interface{}

	Buffer []byte
	Offset int
	Length int

	Fault     string
	Operation string

	Count         int
	ExpectedCount int

	Info map[string]interface{}
	Err  error // underlying cause, if any 底层原因（如果有）
}

// Error renders the short message followed by the populated context, e.g.
//
//	child data too short (buffer=0xc888..., offset=0, length=8, code=BUFFER_OVERRUN)
func (e *Error) Error() string {
	var details []string
	add := func(k string, v interface{}) {
		details = append(details, k+"="+render(v))
	}
	switch e.Code {
	case InvalidArgument:
		add("argument", e.Argument)
		add("value", e.Value)
	case MissingArgument, UnexpectedArgument:
		add("count", e.Count)
		add("expectedCount", e.ExpectedCount)
	case BufferOverrun:
		add("buffer", e.Buffer)
		add("offset", e.Offset)
		add("length", e.Length)
	case NumericFault:
		add("fault", e.Fault)
		add("operation", e.Operation)
		if e.Value != nil {
			add("value", e.Value)
		}
	default:
		if e.Operation != "" {
			add("operation", e.Operation)
		}
	}
	if len(e.Info) > 0 {
		keys := make([]string, 0, len(e.Info))
		for k := range e.Info {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k, e.Info[k])
		}
	}
	if e.Err != nil {
		details = append(details, "error="+render(e.Err.Error()))
	}
	details = append(details, "code="+string(e.Code))
	return e.ShortMessage + " (" + strings.Join(details, ", ") + ")"
}

// ErrorCode returns the taxonomy code of the error.
func (e *Error) ErrorCode() Code { return e.Code }

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code and no message, which
// makes sentinel comparisons like errors.Is(err, &Error{Code: BufferOverrun}) work.
// Is 报告 target 是否为具有相同代码且无消息的 *Error。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.ShortMessage == "" || t.ShortMessage == e.ShortMessage)
}

// render formats a context value the way it is shown in error messages. Byte
// slices are rendered as hex, everything else as JSON where possible.
// render 按错误消息中显示的方式格式化上下文值。
func render(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case []byte:
		return fmt.Sprintf("\"0x%x\"", v)
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	case error:
		return fmt.Sprintf("%q", v.Error())
	}
	enc, err := json.Marshal(v)
	if err != nil {
		return "[could not serialize object]"
	}
	return string(enc)
}

// New creates an error with the given code and optional info map.
// New 使用给定代码和可选信息映射创建错误。
func New(code Code, msg string, info map[string]interface{}) *Error {
	return &Error{Code: code, ShortMessage: msg, Info: info}
}

// Wrap creates an error with the given code whose cause is err.
// Wrap 创建一个给定代码的错误，其原因为 err。
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, ShortMessage: msg, Err: err}
}

// NewInvalidArgument returns an INVALID_ARGUMENT error for the named argument.
// NewInvalidArgument 为命名参数返回 INVALID_ARGUMENT 错误。
func NewInvalidArgument(msg, argument string, value interface{}) *Error {
	return &Error{Code: InvalidArgument, ShortMessage: msg, Argument: argument, Value: value}
}

// AssertArgument returns an INVALID_ARGUMENT error if check does not hold.
// AssertArgument 如果 check 不成立则返回 INVALID_ARGUMENT 错误。
func AssertArgument(check bool, msg, argument string, value interface{}) error {
	if check {
		return nil
	}
	return NewInvalidArgument(msg, argument, value)
}

// NewBufferOverrun returns a BUFFER_OVERRUN error describing the read that failed.
// NewBufferOverrun 返回描述失败读取的 BUFFER_OVERRUN 错误。
func NewBufferOverrun(msg string, buffer []byte, offset, length int) *Error {
	return &Error{Code: BufferOverrun, ShortMessage: msg, Buffer: buffer, Offset: offset, Length: length}
}

// NewNumericFault returns a NUMERIC_FAULT error with the given fault sub-reason
// (overflow, underflow, ...).
// NewNumericFault 返回带有给定故障子原因的 NUMERIC_FAULT 错误。
func NewNumericFault(msg, fault, operation string, value interface{}) *Error {
	return &Error{Code: NumericFault, ShortMessage: msg, Fault: fault, Operation: operation, Value: value}
}

// NewUnsupported returns an UNSUPPORTED_OPERATION error for the named operation.
// NewUnsupported 为命名操作返回 UNSUPPORTED_OPERATION 错误。
func NewUnsupported(msg, operation string) *Error {
	return &Error{Code: UnsupportedOperation, ShortMessage: msg, Operation: operation}
}

// CheckArgumentCount returns MISSING_ARGUMENT or UNEXPECTED_ARGUMENT when count
// differs from expected.
// CheckArgumentCount 当 count 与 expected 不同时返回 MISSING_ARGUMENT 或 UNEXPECTED_ARGUMENT。
func CheckArgumentCount(count, expected int, msg string) error {
	if msg != "" {
		msg = ": " + msg
	}
	switch {
	case count < expected:
		return &Error{Code: MissingArgument, ShortMessage: "missing argument" + msg, Count: count, ExpectedCount: expected}
	case count > expected:
		return &Error{Code: UnexpectedArgument, ShortMessage: "too many arguments" + msg, Count: count, ExpectedCount: expected}
	}
	return nil
}

// CodeOf returns the taxonomy code of err, or "" if err does not carry one.
// CodeOf 返回 err 的分类代码；如果 err 不携带代码则返回 ""。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsError reports whether err, or any error it wraps, carries the given code.
// IsError 报告 err 或其包装的任何错误是否携带给定代码。
func IsError(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
