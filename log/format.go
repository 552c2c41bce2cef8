package log

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40 // message column width when attributes follow
	termCtxMaxPad  = 40 // values wider than this do not widen their column

	// byte slices longer than this are shortened on the terminal
	termMaxBytes = 32
)

var spaces = bytes.Repeat([]byte{' '}, termMsgJust)

// TerminalStringer is implemented by values that have a shorter form for
// terminal output, such as hashes and addresses.
// TerminalStringer 由在终端输出时有更短表示形式的值实现，例如哈希和地址。
type TerminalStringer interface {
	TerminalString() string
}

func (h *TerminalHandler) format(buf []byte, r slog.Record) []byte {
	b := bytes.NewBuffer(buf)

	var color string
	if h.useColor {
		if info, ok := lookupLevel(r.Level); ok {
			color = info.color
		}
	}
	if color != "" {
		b.WriteString(color)
		b.WriteString(LevelAlignedString(r.Level))
		b.WriteString("\x1b[0m")
	} else {
		b.WriteString(LevelAlignedString(r.Level))
	}
	b.WriteByte('[')
	writeTimeTermFormat(b, r.Time)
	b.WriteString("] ")

	if src := recordSource(r); src != "" {
		b.WriteString(src)
		b.WriteByte(' ')
	}
	msg := escapeMessage(r.Message)
	b.WriteString(msg)

	if n := r.NumAttrs() + len(h.attrs); n > 0 && len(msg) < termMsgJust {
		b.Write(spaces[:termMsgJust-len(msg)])
	}
	h.formatAttributes(b, r, color)
	return b.Bytes()
}

// recordSource returns the file:line of the call site, file without directory.
func recordSource(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

func (h *TerminalHandler) formatAttributes(buf *bytes.Buffer, r slog.Record, color string) {
	total := len(h.attrs) + r.NumAttrs()
	n := 0
	write := func(attr slog.Attr) {
		n++
		buf.WriteByte(' ')
		if color != "" {
			buf.WriteString(color)
		}
		buf.Write(appendEscapeString(buf.AvailableBuffer(), attr.Key))
		if color != "" {
			buf.WriteString("\x1b[0m")
		}
		buf.WriteByte('=')

		val := FormatSlogValue(attr.Value, buf.AvailableBuffer())
		width := utf8.RuneCount(val)
		pad := h.fieldPadding[attr.Key]
		if width > pad && width <= termCtxMaxPad {
			pad = width
			h.fieldPadding[attr.Key] = pad
		}
		buf.Write(val)
		if n < total && pad > width {
			buf.Write(spaces[:pad-width])
		}
	}
	for _, attr := range h.attrs {
		write(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(attr)
		return true
	})
	buf.WriteByte('\n')
}

// FormatSlogValue renders a value for the terminal. Integers get thousands
// separators, byte slices are shown in hex and shortened when long, and
// TerminalStringer takes precedence over fmt.Stringer.
//
// FormatSlogValue 为终端输出格式化值：整数带千位分隔符，字节切片以十六进制显示。
func FormatSlogValue(v slog.Value, tmp []byte) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendEscapeString(tmp, v.String())
	case slog.KindInt64:
		return appendInt64(tmp, v.Int64())
	case slog.KindUint64:
		return appendUint64(tmp, v.Uint64(), false)
	case slog.KindFloat64:
		return strconv.AppendFloat(tmp, v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.AppendBool(tmp, v.Bool())
	case slog.KindDuration:
		return appendEscapeString(tmp, v.Duration().String())
	case slog.KindTime:
		return v.Time().AppendFormat(tmp, timeFormat)
	}
	value := v.Any()
	if isNilPointer(value) {
		return append(tmp, "<nil>"...)
	}
	switch x := value.(type) {
	case *big.Int:
		return appendBigInt(tmp, x)
	case *uint256.Int:
		return appendU256(tmp, x)
	case []byte:
		return appendTermBytes(tmp, x)
	case error:
		return appendEscapeString(tmp, x.Error())
	case TerminalStringer:
		return appendEscapeString(tmp, x.TerminalString())
	case fmt.Stringer:
		return appendEscapeString(tmp, x.String())
	}
	formatted := fmt.Sprintf("%+v", value)
	return appendEscapeString(tmp, formatted)
}

// appendTermBytes writes b as 0x hex, keeping the head and tail of long slices.
func appendTermBytes(dst []byte, b []byte) []byte {
	dst = append(dst, "0x"...)
	if len(b) <= termMaxBytes {
		return hex.AppendEncode(dst, b)
	}
	dst = hex.AppendEncode(dst, b[:4])
	dst = append(dst, ".."...)
	dst = hex.AppendEncode(dst, b[len(b)-4:])
	return fmt.Appendf(dst, "(%d bytes)", len(b))
}

func appendInt64(dst []byte, n int64) []byte {
	if n < 0 {
		return appendUint64(dst, uint64(-n), true)
	}
	return appendUint64(dst, uint64(n), false)
}

func appendUint64(dst []byte, n uint64, neg bool) []byte {
	if neg {
		dst = append(dst, '-')
	}
	return appendGrouped(dst, strconv.FormatUint(n, 10))
}

// FormatLogfmtUint64 formats n with thousands separators.
func FormatLogfmtUint64(n uint64) string {
	return string(appendUint64(nil, n, false))
}

func appendBigInt(dst []byte, n *big.Int) []byte {
	if n.Sign() < 0 {
		dst = append(dst, '-')
	}
	return appendGrouped(dst, new(big.Int).Abs(n).String())
}

func appendU256(dst []byte, n *uint256.Int) []byte {
	return appendGrouped(dst, n.Dec())
}

// appendGrouped writes a string of decimal digits, inserting a comma every
// three digits from the right. Numbers below 100000 are written as is.
// appendGrouped 写出十进制数字串，从右起每三位插入一个逗号，小于 100000 的数原样写出。
func appendGrouped(dst []byte, digits string) []byte {
	if len(digits) <= 5 {
		return append(dst, digits...)
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	dst = append(dst, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		dst = append(dst, ',')
		dst = append(dst, digits[i:i+3]...)
	}
	return dst
}

// appendEscapeString appends s, quoted when it holds a space or '=', and
// escaped when it holds quotes, control or non-ASCII characters.
func appendEscapeString(dst []byte, s string) []byte {
	quote := false
	for _, r := range s {
		if r == ' ' || r == '=' {
			quote = true
			continue
		}
		if r <= '"' || r > '~' {
			return strconv.AppendQuote(dst, s)
		}
	}
	if quote {
		dst = append(dst, '"')
		dst = append(dst, s...)
		return append(dst, '"')
	}
	return append(dst, s...)
}

// escapeMessage quotes the log message only when it holds control or non-ASCII
// characters or '='. Tabs and line breaks are left alone so multi-line
// messages stay readable.
// escapeMessage 仅在消息包含控制字符、非 ASCII 字符或 '=' 时加引号。
func escapeMessage(s string) string {
	for _, r := range s {
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < ' ' || r > '~' || r == '=' {
			return strconv.Quote(s)
		}
	}
	return s
}

// writeTimeTermFormat writes t as "MM-DD|HH:MM:SS.mmm".
func writeTimeTermFormat(buf *bytes.Buffer, t time.Time) {
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), termTimeFormat))
}
