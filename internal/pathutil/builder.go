// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strconv"

// PathBuilder tracks a JSON pointer during recursive traversal.
// Uses push/pop semantics so the walk itself does not allocate strings;
// the pointer is only encoded when String() or Tokens() is called.
type PathBuilder struct {
	segments []string
}

// Push adds an unescaped token to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index token.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, strconv.Itoa(i))
}

// Pop removes the last token.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Len returns the number of tokens.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Tokens returns a copy of the current tokens.
func (p *PathBuilder) Tokens() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// String encodes the path as a JSON pointer ("/components/schemas/Pet").
func (p *PathBuilder) String() string {
	return JoinPointer(p.segments)
}
