// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// Reference prefixes understood by the rebaser.
const (
	// RefPrefixSchemas is the canonical OpenAPI 3 schema pointer prefix.
	RefPrefixSchemas = "#/components/schemas/"
	// RefPrefixComponents marks a pointer that is already document-absolute.
	RefPrefixComponents = "#/components/"
	// RefPrefixDefinitions is the JSON Schema nested definitions prefix.
	RefPrefixDefinitions = "#/definitions/"
	// RefPrefixProperties is the JSON Schema relative properties prefix.
	RefPrefixProperties = "#/properties/"
)

// Keywords that introduce a named or indexed child schema in a pointer.
const (
	KeywordDefinitions = "definitions"
	KeywordDefs        = "$defs"
	KeywordProperties  = "properties"
)

// SchemaRef builds "#/components/schemas/{name}" followed by any extra
// pointer tokens. All tokens are escaped.
func SchemaRef(name string, tokens ...string) string {
	var b strings.Builder
	b.WriteString(RefPrefixSchemas)
	b.WriteString(EscapeToken(name))
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// IsAbsoluteURL reports whether ref carries a URL scheme and authority
// ("https://host/...", "file:///..."), which the rebaser leaves untouched.
func IsAbsoluteURL(ref string) bool {
	i := strings.Index(ref, "://")
	if i <= 0 {
		return false
	}
	// A scheme may not contain '#' or '/'; "a#/b://c" is a fragment, not a URL.
	scheme := ref[:i]
	return !strings.ContainsAny(scheme, "#/")
}

// SplitRef splits a $ref into the part before '#' and the fragment after it.
// hasHash reports whether '#' was present at all.
func SplitRef(ref string) (base, fragment string, hasHash bool) {
	base, fragment, hasHash = strings.Cut(ref, "#")
	return base, fragment, hasHash
}
