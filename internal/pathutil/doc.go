// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON pointer and $ref helpers shared by the
// schema, rebase, and extref packages.
//
// # PathBuilder Usage
//
// [PathBuilder] tracks the JSON pointer of the node currently being visited
// with push/pop semantics. The pointer string is only materialized when
// [PathBuilder.String] is called, which in practice means only when an error
// is reported or a location is recorded:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("components")
//	path.Push("schemas")
//	path.Push(name)
//	// ... recurse ...
//	path.Pop()
//
// Tokens are escaped on output, so "/pets/{id}" is rendered as "~1pets~1{id}".
//
// # Reference Builders
//
//	ref := pathutil.SchemaRef("Pet")               // "#/components/schemas/Pet"
//	ref := pathutil.SchemaRef("Pet", "properties", "id") // "#/components/schemas/Pet/properties/id"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for the CLI.
package pathutil
