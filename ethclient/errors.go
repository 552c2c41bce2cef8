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


package ethclient

import (
	"context"
	"errors"
	"strings"

	"github.com/sunyihoo/goethers/accounts/abi"
	"github.com/sunyihoo/goethers/common/hexutil"
	"github.com/sunyihoo/goethers/errs"
	"github.com/sunyihoo/goethers/rpc"
)

// nodeErrors maps substrings of node error messages to error codes. The first
// match wins.
// nodeErrors 将节点错误消息的子串映射到错误代码，第一个匹配项生效。
var nodeErrors = []struct {
	match string
	code  errs.Code
	msg   string
}{
	{"insufficient funds", errs.InsufficientFunds, "insufficient funds for intrinsic transaction cost"},
	{"nonce too low", errs.NonceExpired, "nonce has already been used"},
	{"nonce has already been used", errs.NonceExpired, "nonce has already been used"},
	{"replacement transaction underpriced", errs.ReplacementUnderpriced, "replacement fee too low"},
	{"replacement fee too low", errs.ReplacementUnderpriced, "replacement fee too low"},
	{"gas required exceeds allowance", errs.UnpredictableGasLimit, "cannot estimate gas; transaction may fail or may require manual gas limit"},
	{"method not found", errs.UnsupportedOperation, "unsupported operation"},
}

// classifyError converts an RPC failure into the error taxonomy. Node errors
// are matched on their message, transport failures become NETWORK_ERROR and
// context errors become CANCELLED or TIMEOUT. The original error is kept as the
// cause.
//
// classifyError 将 RPC 失败转换为错误分类。
func classifyError(method string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return &errs.Error{Code: errs.Cancelled, ShortMessage: "request cancelled", Operation: method, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &errs.Error{Code: errs.Timeout, ShortMessage: "request timeout", Operation: method, Err: err}
	}

	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return &errs.Error{Code: errs.NetworkError, ShortMessage: "could not reach node", Operation: method, Err: err}
	}
	info := map[string]interface{}{"code": rpcErr.ErrorCode(), "message": rpcErr.Error()}
	message := strings.ToLower(rpcErr.Error())

	if strings.Contains(message, "execution reverted") {
		e := &errs.Error{Code: errs.CallException, ShortMessage: "execution reverted", Operation: method, Info: info, Err: err}
		if data, ok := RevertErrorData(err); ok {
			info["data"] = hexutil.Encode(data)
			if reason, uerr := abi.UnpackRevert(data); uerr == nil {
				info["reason"] = reason
				e.ShortMessage = "execution reverted: " + reason
			}
		}
		return e
	}
	for _, ne := range nodeErrors {
		if strings.Contains(message, ne.match) {
			return &errs.Error{Code: ne.code, ShortMessage: ne.msg, Operation: method, Info: info, Err: err}
		}
	}
	if rpcErr.ErrorCode() == rpc.ErrcodeMethodNotFound {
		return &errs.Error{Code: errs.UnsupportedOperation, ShortMessage: "unsupported operation", Operation: method, Info: info, Err: err}
	}
	return &errs.Error{Code: errs.ServerError, ShortMessage: "server response error", Operation: method, Info: info, Err: err}
}

// RevertErrorData returns the 'revert reason' data of a contract call.
//
// This can be used with Call and EstimateGas, and only when the server is Geth.
// RevertErrorData 返回合约调用的 'revert reason' 数据。
func RevertErrorData(err error) ([]byte, bool) {
	var ec rpc.Error
	var ed rpc.DataError
	if errors.As(err, &ec) && errors.As(err, &ed) && ec.ErrorCode() == 3 {
		if eds, ok := ed.ErrorData().(string); ok {
			revertData, err := hexutil.Decode(eds)
			if err == nil {
				return revertData, true
			}
		}
	}
	return nil, false
}
