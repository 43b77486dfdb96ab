// Package schema models the documents oasrebase transforms.
//
// A [Document] is an OpenAPI-like document whose components.schemas section is
// decoded into typed [Schema] values held in an insertion-ordered [Map]. Every
// other section (info, paths, components.responses, ...) is kept as its raw
// YAML node, so a document survives a decode/encode round trip with its keys in
// their original order.
//
// A [Schema] has explicit fields for each keyword that can hold sub-schemas
// (definitions, properties, items, allOf, ...). Remaining keywords are kept
// verbatim in [Schema.Keywords].
//
// # Parsing and Output
//
//	doc, err := schema.ParseFile("api.yaml") // YAML or JSON
//	if err != nil {
//		return err
//	}
//	out, err := doc.MarshalOrderedJSONIndent("", "  ")
//
// A schema entry that is null or a scalar is reported as an
// [oaserrors.StructuralError] carrying the JSON pointer of the entry.
//
// # Logging
//
// [Logger] is the structured logging interface shared by the rebase and extref
// packages, with adapters for log/slog ([NewSlogAdapter]) and zap ([NewZapAdapter]).
package schema
