package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Value

// The root logger discards everything until the application installs one.
// 在应用安装日志记录器之前，根日志记录器丢弃所有记录。
func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault replaces the root logger. A logger created by this package is
// also installed as the slog default.
// SetDefault 替换根日志记录器。
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// The package level functions call Write directly, so the call depth matches
// the one of the Logger methods and the recorded source stays the caller's.
//
//	log.Info("Sent transaction", "hash", tx.Hash(), "nonce", tx.Nonce())

// Trace logs on the root logger at the trace level.
func Trace(msg string, ctx ...interface{}) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug logs on the root logger at the debug level.
func Debug(msg string, ctx ...interface{}) {
	Root().Write(LevelDebug, msg, ctx...)
}

// Info logs on the root logger at the info level.
// Info 在根日志记录器上以 info 级别记录。
func Info(msg string, ctx ...interface{}) {
	Root().Write(LevelInfo, msg, ctx...)
}

// Warn logs on the root logger at the warn level.
func Warn(msg string, ctx ...interface{}) {
	Root().Write(LevelWarn, msg, ctx...)
}

// Error logs on the root logger at the error level.
func Error(msg string, ctx ...interface{}) {
	Root().Write(LevelError, msg, ctx...)
}

// Crit logs on the root logger at the crit level and exits.
// Crit 以 crit 级别记录后退出进程。
func Crit(msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a child of the root logger carrying the given attributes.
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
