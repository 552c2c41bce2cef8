// Copyright 2016 The go-ethereum Authors
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

// Package abi implements the Ethereum ABI (Application Binary
// Interface).
//
// Values are laid out on a tape of 32 byte words. Static types are encoded in
// place, dynamic types (bytes, string, T[] and any array or tuple containing
// one) leave an offset word in the head of their enclosing block and put their
// payload in its tail.
//
// Decoding never panics on hostile input. Running out of data fails the decode
// as a whole, while a single malformed value is recorded in the returned Result
// and reported when that value is read.
//
// abi 包实现了以太坊的 ABI（应用二进制接口）。
//
// 值被布置在由 32 字节字组成的字带上。静态类型就地编码，动态类型在其所在块的头部留下
// 偏移字，并将负载放在块的尾部。解码在数据耗尽时整体失败，而单个格式错误的值记录在返回的
// Result 中，并在读取该值时报告。
package abi
