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

package abi

import (
	"encoding/binary"
	"math"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/goethers/errs"
)

// WordSize is the size of an ABI word in bytes.
const WordSize = 32

// maxIndex bounds offsets and counts read from the tape.
const maxIndex = math.MaxInt32

// writer accumulates the encoded words of one block. Chunks are kept as separate
// slices so that offset words reserved by writeUpdatableValue can be patched after
// the writer has been appended to its parent.
// writer 累积一个块的编码字。块以独立切片保存，以便 writeUpdatableValue 预留的偏移字在
// writer 被追加到父级之后仍可回填。
type writer struct {
	chunks [][]byte
	length int
}

func (w *writer) bytes() []byte {
	out := make([]byte, 0, w.length)
	for _, chunk := range w.chunks {
		out = append(out, chunk...)
	}
	return out
}

func (w *writer) appendWriter(other *writer) int {
	w.chunks = append(w.chunks, other.chunks...)
	w.length += other.length
	return other.length
}

// writeBytes appends b right padded to a word boundary.
func (w *writer) writeBytes(b []byte) int {
	padded := make([]byte, (len(b)+WordSize-1)/WordSize*WordSize)
	copy(padded, b)
	w.chunks = append(w.chunks, padded)
	w.length += len(padded)
	return len(padded)
}

func (w *writer) writeValue(v *uint256.Int) int {
	word := v.Bytes32()
	return w.writeBytes(word[:])
}

// writeUpdatableValue reserves a zero word and returns a function that fills it
// in later.
// writeUpdatableValue 预留一个零字，并返回一个稍后填充它的函数。
func (w *writer) writeUpdatableValue() func(int) {
	word := make([]byte, WordSize)
	w.chunks = append(w.chunks, word)
	w.length += WordSize
	return func(value int) {
		binary.BigEndian.PutUint64(word[WordSize-8:], uint64(value))
	}
}

// reader walks a word tape. Every reader is anchored at the start of its data:
// offsets read from the tape are relative to that anchor.
// reader 遍历字带。每个 reader 锚定在其数据的起点：从字带读出的偏移量相对于该锚点。
type reader struct {
	data   []byte
	offset int
	loose  bool // tolerate missing padding after dynamic bytes and dirty padding
}

func newReader(data []byte, loose bool) *reader {
	return &reader{data: data, loose: loose}
}

// subReader returns a reader anchored offset bytes past the current cursor. An
// anchor beyond the data yields an empty reader, reads from it overrun.
func (r *reader) subReader(offset int) *reader {
	start := r.offset + offset
	if start > len(r.data) {
		start = len(r.data)
	}
	return &reader{data: r.data[start:], loose: r.loose}
}

func (r *reader) peekBytes(offset, length int, loose bool) ([]byte, error) {
	aligned := (length + WordSize - 1) / WordSize * WordSize
	if offset+aligned > len(r.data) {
		if r.loose && loose && offset+length <= len(r.data) {
			aligned = length
		} else {
			return nil, errs.NewBufferOverrun("data out-of-bounds", r.data, offset+aligned, len(r.data))
		}
	}
	return r.data[offset : offset+aligned], nil
}

// readBytes consumes length bytes plus their padding.
func (r *reader) readBytes(length int, loose bool) ([]byte, []byte, error) {
	b, err := r.peekBytes(r.offset, length, loose)
	if err != nil {
		return nil, nil, err
	}
	r.offset += len(b)
	return b[:length], b[length:], nil
}

func (r *reader) readWord() ([]byte, error) {
	word, _, err := r.readBytes(WordSize, false)
	return word, err
}

func (r *reader) readValue() (*uint256.Int, error) {
	word, err := r.readWord()
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(word), nil
}

// readIndex reads a word holding an offset, a count or a length. Values past
// maxIndex can never be backed by the data and overrun.
func (r *reader) readIndex() (int, error) {
	v, err := r.readValue()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() || v.Uint64() > maxIndex {
		return 0, errs.NewBufferOverrun("data out-of-bounds", r.data, r.offset-WordSize, len(r.data))
	}
	return int(v.Uint64()), nil
}
