package log

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"time"
)

// errorKey is attached to records whose key/value list had an odd length.
const errorKey = "LOG_ERROR"

// Levels understood by the handlers. Trace and Crit extend the slog range on
// both ends.
// 处理器支持的日志级别，Trace 与 Crit 分别扩展了 slog 的两端。
const (
	levelMaxVerbosity slog.Level = math.MinInt
	LevelTrace        slog.Level = -8
	LevelDebug                   = slog.LevelDebug
	LevelInfo                    = slog.LevelInfo
	LevelWarn                    = slog.LevelWarn
	LevelError                   = slog.LevelError
	LevelCrit         slog.Level = 12
)

// levelInfo names a level in its different spellings.
type levelInfo struct {
	level   slog.Level
	name    string   // lower case, used by logfmt and json output
	aligned string   // five characters wide, used by the terminal output
	aliases []string // extra spellings accepted by LvlFromString
	color   string   // ANSI color of the terminal level column
}

// levels is ordered by legacy verbosity: index 0 is crit, index 5 is trace.
// levels 按旧版详细级别排序：下标 0 为 crit，下标 5 为 trace。
var levels = []levelInfo{
	{LevelCrit, "crit", "CRIT ", nil, "\x1b[35m"},
	{LevelError, "error", "ERROR", []string{"eror"}, "\x1b[31m"},
	{LevelWarn, "warn", "WARN ", nil, "\x1b[33m"},
	{LevelInfo, "info", "INFO ", nil, "\x1b[32m"},
	{LevelDebug, "debug", "DEBUG", []string{"dbug"}, "\x1b[36m"},
	{LevelTrace, "trace", "TRACE", []string{"trce"}, "\x1b[34m"},
}

func lookupLevel(l slog.Level) (levelInfo, bool) {
	for _, info := range levels {
		if info.level == l {
			return info, true
		}
	}
	return levelInfo{}, false
}

// FromLegacyLevel converts a numeric verbosity (0 crit ... 5 trace), as used by
// the --verbosity flag and vmodule rules, into a slog level. Values outside the
// range clamp to the nearest end.
//
// FromLegacyLevel 将数值详细级别（0 为 crit，5 为 trace）转换为 slog 级别，超出范围时取最近的端点。
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl < 0:
		return LevelCrit
	case lvl >= len(levels):
		return LevelTrace
	default:
		return levels[lvl].level
	}
}

// LevelAlignedString returns the five character name of a level.
func LevelAlignedString(l slog.Level) string {
	if info, ok := lookupLevel(l); ok {
		return info.aligned
	}
	return "unknown level"
}

// LevelString returns the lower case name of a level.
// LevelString 返回级别的小写名称。
func LevelString(l slog.Level) string {
	if info, ok := lookupLevel(l); ok {
		return info.name
	}
	return "unknown"
}

// LvlFromString parses a level name as written in config files and on the
// command line. Matching is case insensitive.
// LvlFromString 解析配置文件和命令行中的级别名称，不区分大小写。
func LvlFromString(lvlString string) (slog.Level, error) {
	want := strings.ToLower(lvlString)
	for _, info := range levels {
		if want == info.name {
			return info.level, nil
		}
		for _, alias := range info.aliases {
			if want == alias {
				return info.level, nil
			}
		}
	}
	return LevelDebug, fmt.Errorf("unknown level: %v", lvlString)
}

// A Logger writes key/value pairs to a Handler.
// Logger 将键值对写入处理器。
type Logger interface {
	// With returns a new Logger carrying the given attributes in addition to
	// the ones of this logger.
	With(ctx ...interface{}) Logger

	// New is an alias of With.
	New(ctx ...interface{}) Logger

	// Log writes a record at an arbitrary level.
	Log(level slog.Level, msg string, ctx ...interface{})

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})

	// Crit logs at the crit level and terminates the process.
	// Crit 以 crit 级别记录日志并终止进程。
	Crit(msg string, ctx ...interface{})

	// Write is the shared entry point of the level methods. It keeps the
	// call depth constant so the recorded source is the caller's.
	Write(level slog.Level, msg string, attrs ...any)

	// Enabled reports whether a record at the level would be emitted.
	Enabled(ctx context.Context, level slog.Level) bool

	// Handler returns the handler records are written to.
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger writing to the given handler.
// NewLogger 返回写入给定处理器的日志记录器。
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	// skip runtime.Callers, Write and the level method
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Log(level slog.Level, msg string, attrs ...any) {
	l.Write(level, msg, attrs...)
}

func (l *logger) With(ctx ...interface{}) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) New(ctx ...interface{}) Logger {
	return l.With(ctx...)
}

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.Write(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
