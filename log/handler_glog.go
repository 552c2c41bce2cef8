// Copyright 2017 The go-ethereum Authors
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

package log

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// errVmoduleSyntax is returned when a user vmodule pattern is invalid.
var errVmoduleSyntax = errors.New("expect comma-separated list of filename=N")

// GlogHandler filters records the way glog does: a global verbosity ceiling,
// which can be raised for single files or packages with vmodule rules.
//
// Handlers derived through WithAttrs share the filter of their parent, so a
// later Verbosity or Vmodule call applies to every logger built from it.
//
// GlogHandler 以 glog 的方式过滤记录：全局详细级别上限，可通过 vmodule 规则为单个文件或包提高。
type GlogHandler struct {
	origin slog.Handler
	filter *glogFilter
}

type glogFilter struct {
	level   atomic.Int32
	vmodule atomic.Pointer[vmodule]
}

// vmodule is an immutable rule set plus the levels already resolved per call site.
// vmodule 是不可变的规则集，以及已解析的各调用点级别缓存。
type vmodule struct {
	rules []vmoduleRule
	sites sync.Map // uintptr -> siteLevel
}

type vmoduleRule struct {
	file  *regexp.Regexp
	level slog.Level
}

// NewGlogHandler wraps h with glog style filtering. Until Verbosity is called
// only records at info and above pass.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	return &GlogHandler{origin: h, filter: new(glogFilter)}
}

// Verbosity sets the global level ceiling.
// Verbosity 设置全局级别上限。
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.filter.level.Store(int32(level))
}

// Vmodule sets the per file verbosity rules. The argument is a comma separated
// list of pattern=N, N being a legacy verbosity (0 crit ... 5 trace):
//
//	signer.go=5     every file named signer.go
//	ethclient=4     files of packages whose import path ends in ethclient
//	accounts/*=4    files of packages whose import path contains accounts
//
// An empty argument removes all rules.
//
// Vmodule 设置按文件的详细级别规则，格式为逗号分隔的 pattern=N 列表。
func (h *GlogHandler) Vmodule(ruleset string) error {
	var rules []vmoduleRule
	for _, rule := range strings.Split(ruleset, ",") {
		if rule == "" {
			continue
		}
		pattern, verbosity, ok := strings.Cut(rule, "=")
		pattern, verbosity = strings.TrimSpace(pattern), strings.TrimSpace(verbosity)
		if !ok || pattern == "" || verbosity == "" || strings.Contains(verbosity, "=") {
			return errVmoduleSyntax
		}
		n, err := strconv.Atoi(verbosity)
		if err != nil {
			return errVmoduleSyntax
		}
		level := FromLegacyLevel(n)
		if level == LevelCrit {
			continue // never stricter than the global ceiling
		}
		rules = append(rules, vmoduleRule{compileFilePattern(pattern), level})
	}
	if len(rules) == 0 {
		h.filter.vmodule.Store(nil)
	} else {
		h.filter.vmodule.Store(&vmodule{rules: rules})
	}
	return nil
}

// compileFilePattern turns a vmodule pattern into a regexp over source paths.
func compileFilePattern(pattern string) *regexp.Regexp {
	var expr strings.Builder
	expr.WriteString(".*")
	for _, comp := range strings.Split(pattern, "/") {
		switch comp {
		case "":
		case "*":
			expr.WriteString("(/.*)?")
		default:
			expr.WriteString("/" + regexp.QuoteMeta(comp))
		}
	}
	if !strings.HasSuffix(pattern, ".go") {
		expr.WriteString(`/[^/]+\.go`)
	}
	expr.WriteString("$")
	return regexp.MustCompile(expr.String())
}

// siteLevel is a resolved call site, ok is false when no rule matched it.
type siteLevel struct {
	level slog.Level
	ok    bool
}

// levelAt returns the level of the last rule matching the call site, and false
// when no rule matches.
func (vm *vmodule) levelAt(pc uintptr) (slog.Level, bool) {
	if cached, ok := vm.sites.Load(pc); ok {
		site := cached.(siteLevel)
		return site.level, site.ok
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	var site siteLevel
	for _, rule := range vm.rules {
		if rule.file.MatchString("+" + frame.File) {
			site = siteLevel{rule.level, true}
		}
	}
	vm.sites.Store(pc, site)
	return site.level, site.ok
}

// Enabled reports whether a record at lvl may pass. With vmodule rules active
// the answer depends on the call site, so every level is let through to Handle.
func (h *GlogHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return h.filter.vmodule.Load() != nil || slog.Level(h.filter.level.Load()) <= lvl
}

func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &GlogHandler{origin: h.origin.WithAttrs(attrs), filter: h.filter}
}

func (h *GlogHandler) WithGroup(name string) slog.Handler {
	return &GlogHandler{origin: h.origin.WithGroup(name), filter: h.filter}
}

// Handle passes the record on when the global ceiling or a matching vmodule
// rule allows its level.
// Handle 在全局上限或匹配的 vmodule 规则允许时转发记录。
func (h *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if slog.Level(h.filter.level.Load()) <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	vm := h.filter.vmodule.Load()
	if vm == nil {
		return nil
	}
	if lvl, ok := vm.levelAt(r.PC); ok && lvl <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	return nil
}
