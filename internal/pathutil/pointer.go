// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// EscapeToken escapes a single JSON pointer reference token ("~" -> "~0", "/" -> "~1").
func EscapeToken(token string) string {
	return jsonpointer.Escape(token)
}

// UnescapeToken reverses [EscapeToken].
func UnescapeToken(token string) string {
	return jsonpointer.Unescape(token)
}

// ParsePointer decodes a JSON pointer ("" or "/a/b~1c") into its unescaped tokens.
func ParsePointer(pointer string) ([]string, error) {
	p, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, err
	}
	return p.DecodedTokens(), nil
}

// JoinPointer encodes tokens as a JSON pointer. An empty slice yields "".
func JoinPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}
