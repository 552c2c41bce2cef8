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

package abi

import (
	"fmt"
	"strings"

	"github.com/sunyihoo/goethers/errs"
)

// SelectorMarshaling is a struct that represents the JSON-serializable form of a method selector.
// It includes the method name, type, and input arguments.
// SelectorMarshaling 是一个结构体，表示方法选择器的可 JSON 序列化形式。
type SelectorMarshaling struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Inputs []ArgumentMarshaling `json:"inputs"`
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func selectorErr(format string, args ...interface{}) error {
	return errs.NewInvalidArgument(fmt.Sprintf(format, args...), "selector", nil)
}

// parseToken parses a token from the unescapedSelector string based on whether it's an identifier.
// parseToken 从 unescapedSelector 字符串中解析一个标记，基于它是否是标识符。
func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", selectorErr("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", selectorErr("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseArraySuffix consumes any number of [] and [N] suffixes.
// parseArraySuffix 消耗任意数量的 [] 和 [N] 后缀。
func parseArraySuffix(rest string) (string, string, error) {
	var suffix strings.Builder
	for len(rest) > 0 && rest[0] == '[' {
		suffix.WriteByte('[')
		rest = rest[1:]
		for len(rest) > 0 && isDigit(rest[0]) {
			suffix.WriteByte(rest[0])
			rest = rest[1:]
		}
		if len(rest) == 0 || rest[0] != ']' {
			return "", "", selectorErr("failed to parse array: expected ']'")
		}
		suffix.WriteByte(']')
		rest = rest[1:]
	}
	return suffix.String(), rest, nil
}

// parseElementaryType parses an elementary type (e.g., uint256, address) from the unescapedSelector string.
// parseElementaryType 从 unescapedSelector 字符串中解析一个基本类型（例如 uint256、address）。
func parseElementaryType(unescapedSelector string) (string, string, error) {
	parsedType, rest, err := parseToken(unescapedSelector, false)
	if err != nil {
		return "", "", err
	}
	suffix, rest, err := parseArraySuffix(rest)
	if err != nil {
		return "", "", err
	}
	return parsedType + suffix, rest, nil
}

// parseCompositeType parses a parenthesized parameter list, e.g. "(uint256,bytes)".
// parseCompositeType 解析括号括起的参数列表。
func parseCompositeType(unescapedSelector string) ([]ArgumentMarshaling, string, error) {
	if len(unescapedSelector) == 0 || unescapedSelector[0] != '(' {
		return nil, "", selectorErr("expected '('")
	}
	rest := strings.TrimLeft(unescapedSelector[1:], " ")
	components := []ArgumentMarshaling{}
	if len(rest) > 0 && rest[0] == ')' {
		return components, rest[1:], nil
	}
	for {
		var (
			param ArgumentMarshaling
			err   error
		)
		param, rest, err = parseParameterPrefix(rest)
		if err != nil {
			return nil, "", err
		}
		components = append(components, param)
		rest = strings.TrimLeft(rest, " ")
		if len(rest) == 0 {
			return nil, "", selectorErr("expected ')'")
		}
		if rest[0] == ')' {
			return components, rest[1:], nil
		}
		if rest[0] != ',' {
			return nil, "", selectorErr("expected ',' or ')', got '%s'", rest)
		}
		rest = strings.TrimLeft(rest[1:], " ")
	}
}

// parseParameterPrefix parses one parameter, a type optionally followed by a
// name, from the head of s.
// parseParameterPrefix 从 s 的开头解析一个参数，即一个类型，后面可选地跟一个名称。
func parseParameterPrefix(s string) (ArgumentMarshaling, string, error) {
	var (
		param ArgumentMarshaling
		rest  string
		err   error
	)
	s = strings.TrimLeft(s, " ")
	if strings.HasPrefix(s, "tuple(") {
		s = s[len("tuple"):]
	}
	if len(s) > 0 && s[0] == '(' {
		param.Components, rest, err = parseCompositeType(s)
		if err != nil {
			return param, "", err
		}
		var suffix string
		if suffix, rest, err = parseArraySuffix(rest); err != nil {
			return param, "", err
		}
		param.Type = "tuple" + suffix
	} else {
		if param.Type, rest, err = parseElementaryType(s); err != nil {
			return param, "", err
		}
	}
	trimmed := strings.TrimLeft(rest, " ")
	if len(trimmed) < len(rest) && len(trimmed) > 0 && trimmed[0] != ',' && trimmed[0] != ')' {
		if param.Name, rest, err = parseIdentifier(trimmed); err != nil {
			return param, "", err
		}
	}
	return param, rest, nil
}

// parseParameter parses a single standalone parameter such as "uint256[2]" or
// "(address to, uint256 amount)[]".
func parseParameter(s string) (ArgumentMarshaling, error) {
	param, rest, err := parseParameterPrefix(s)
	if err != nil {
		return ArgumentMarshaling{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return ArgumentMarshaling{}, selectorErr("unexpected string '%s' in type '%s'", rest, s)
	}
	return param, nil
}

// ParseSelector converts a method selector into a struct that can be JSON encoded
// and consumed by other functions in this package. Parameters may carry names,
// as in "transfer(address to, uint256 amount)".
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
// ParseSelector 将方法选择器转换为可以 JSON 编码的结构体，并供此包中的其他函数使用。
// 注意：尽管大写字母不是 ABI 规范的一部分，但此函数仍然接受它们，因为通用格式是有效的。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	selector := strings.TrimPrefix(strings.TrimSpace(unescapedSelector), "function ")
	name, rest, err := parseIdentifier(selector)
	if err != nil {
		return SelectorMarshaling{}, selectorErr("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	inputs, rest, err := parseCompositeType(rest)
	if err != nil {
		return SelectorMarshaling{}, selectorErr("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	if len(strings.TrimSpace(rest)) > 0 {
		return SelectorMarshaling{}, selectorErr("failed to parse selector '%s': unexpected string '%s'", unescapedSelector, rest)
	}
	return SelectorMarshaling{name, "function", inputs}, nil
}
