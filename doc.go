// Package oasrebase turns JSON-Schema style documents with nested definitions
// into flat OpenAPI 3 documents.
//
// JSON Schema allows named sub-schemas in `definitions` containers at any depth
// and several $ref spellings ("name#/definitions/x", "#/definitions/x", bare
// names). OpenAPI 3 wants every schema as one top-level entry of
// components.schemas, addressed as "#/components/schemas/<name>". oasrebase
// performs that translation while keeping every reference pointing at the
// same content.
//
// # Overview
//
// The module consists of these packages:
//
//   - schema: document model, YAML/JSON decoding and order-preserving output
//   - rebase: hoists nested definitions and rewrites references
//   - extref: inlines absolute-URL references before rebasing
//   - oaserrors: error types shared by all packages
//
// # Quick Start
//
// Rebase a document:
//
//	import (
//		"github.com/erraggy/oasrebase/rebase"
//		"github.com/erraggy/oasrebase/schema"
//	)
//
//	doc, err := schema.ParseFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	flat, err := rebase.Definitions(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := flat.MarshalOrderedYAML()
//
// Canonicalize a single reference:
//
//	ref, err := rebase.Pointer("my_schema", "#/definitions/a")
//	// ref == "#/components/schemas/my_schema/definitions/a"
//
// Inline remote references first, then rebase:
//
//	resolver := extref.NewCachingResolver(extref.NewHTTPResolver())
//	local, err := extref.Materialize(ctx, doc, resolver)
//
// # Command Line
//
// The oasrebase command exposes the same operations:
//
//	oasrebase rebase api.yaml -o flat.yaml
//	oasrebase pointer my_schema '#/definitions/a'
//	oasrebase check flat.yaml
//	oasrebase mcp
package oasrebase
