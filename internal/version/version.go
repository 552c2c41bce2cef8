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

// Package version reports the release and build version of the module.
// Package version 报告模块的发布版本和构建版本。
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

const ourPath = "github.com/sunyihoo/goethers"

// Version components of the current release.
// 当前发布版本的各组成部分。
const (
	Major = 0
	Minor = 3
	Patch = 0
	Meta  = "unstable" // appended to the version string when not empty
)

// Semantic holds the textual version string for major.minor.patch.
var Semantic = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)

// WithMeta holds the textual version string including the metadata.
var WithMeta = func() string {
	if Meta == "" {
		return Semantic
	}
	return Semantic + "-" + Meta
}()

// Set with -ldflags "-X github.com/sunyihoo/goethers/internal/version.gitCommit=..."
// when the binary is built outside a module aware checkout.
var gitCommit, gitDate string

// VCSInfo is the source control state the binary was built from.
// VCSInfo 是构建二进制文件时的源码控制状态。
type VCSInfo struct {
	Commit string // full revision hash
	Date   string // commit date as YYYYMMDD
	Dirty  bool   // built with uncommitted changes
}

// VCS returns the source control state of the running binary. Linker provided
// values win over the build info the go tool embeds. The result is false when
// neither source knows the commit and its date.
//
// VCS 返回当前二进制文件的源码控制状态，链接器注入的值优先于 go 工具嵌入的构建信息。
func VCS() (VCSInfo, bool) {
	if gitCommit != "" {
		return VCSInfo{Commit: gitCommit, Date: gitDate}, true
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path != ourPath {
		return VCSInfo{}, false
	}
	return vcsFromSettings(info.Settings)
}

func vcsFromSettings(settings []debug.BuildSetting) (VCSInfo, bool) {
	var vcs VCSInfo
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			vcs.Commit = s.Value
		case "vcs.modified":
			vcs.Dirty = s.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				vcs.Date = t.UTC().Format("20060102")
			}
		}
	}
	return vcs, vcs.Commit != "" && vcs.Date != ""
}

// WithCommit returns the version string extended with the short commit hash
// and, for non stable releases, the commit date.
// WithCommit 返回附加了短提交哈希以及（非稳定版时）提交日期的版本字符串。
func WithCommit(gitCommit, gitDate string) string {
	vsn := WithMeta
	if len(gitCommit) >= 8 {
		vsn += "-" + gitCommit[:8]
	}
	if Meta != "stable" && gitDate != "" {
		vsn += "-" + gitDate
	}
	return vsn
}
