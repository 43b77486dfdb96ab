// Package rebase flattens JSON-Schema style documents into an OpenAPI 3
// schema registry.
//
// JSON Schema lets a schema carry named sub-schemas in a nested `definitions`
// container, at any depth. OpenAPI wants every schema as a single top-level
// entry of components.schemas. This package hoists every nested definition to
// the top level, removes the emptied `definitions` keywords, and rewrites every
// $ref in the document (schemas, parameters, responses, request bodies, path
// items, webhooks and discriminator mappings) to point at the new location.
//
// # Quick Start
//
//	doc, err := schema.ParseFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	flat, err := rebase.Definitions(doc)
//
// Or with options:
//
//	result, err := rebase.RebaseWithOptions(
//		rebase.WithFilePath("api.yaml"),
//		rebase.WithNamingPolicy(rebase.NamingQualified),
//		rebase.WithLogger(schema.NewSlogAdapter(slog.Default())),
//	)
//
// # Reference Rewriting
//
// A $ref whose pointer passes through one or more definitions containers is
// rewritten to "#/components/schemas/<flat>" followed by whatever came after
// the last definitions segment:
//
//	#/components/schemas/a/definitions/b/properties/x -> #/components/schemas/b/properties/x
//
// Refs without a definitions segment are left as they are, as are absolute
// URLs. Relative refs inside a schema ("#/definitions/b") are resolved against
// the top-level schema they appear in.
//
// # Naming
//
// The flat name of a hoisted definition is its own name when that is unique
// across the document. Otherwise it is qualified by its path, with the
// definitions keywords dropped: a/definitions/b/definitions/c becomes "a_b_c".
// See [NamingPolicy] for the strict and always-qualified alternatives.
//
// # Single Pointers
//
// [Pointer] canonicalizes one ref without touching the rest of a document,
// accepting "name#/pointer", bare "name" and relative "#/pointer" forms.
//
// # Concurrency
//
// Rebasing is a pure function of its input and never modifies it. Use
// [Memoized] to build a document once and share it between goroutines.
package rebase
