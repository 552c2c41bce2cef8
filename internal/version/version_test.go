// Copyright 2022 The go-ethereum Authors
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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVCSFromSettings(t *testing.T) {
	vcs, ok := vcsFromSettings([]debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.time", Value: "2024-03-07T09:05:03Z"},
		{Key: "vcs.modified", Value: "true"},
	})
	assert.True(t, ok)
	assert.Equal(t, VCSInfo{Commit: "0123456789abcdef0123456789abcdef01234567", Date: "20240307", Dirty: true}, vcs)

	_, ok = vcsFromSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "01234567"}})
	assert.False(t, ok)
}

func TestWithCommit(t *testing.T) {
	assert.Equal(t, WithMeta, WithCommit("", ""))
	assert.Equal(t, WithMeta+"-01234567-20240307", WithCommit("0123456789abcdef", "20240307"))
	assert.Equal(t, WithMeta+"-20240307", WithCommit("0123", "20240307"))
}
