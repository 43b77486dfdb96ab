// Package extref inlines schemas referenced by absolute URL.
//
// The rebase engine never performs I/O: an absolute-URL $ref such as
// "https://example.com/common.json#/definitions/Money" is left as-is. When a
// self-contained document is wanted, run [Materialize] first. It fetches each
// referenced document through a [Resolver], applies the URL fragment as a
// JSON pointer, and replaces the referencing schema with a copy of the target.
// References inside fetched documents are resolved against the URL they came
// from, so relative pointers keep working.
//
// # Resolvers
//
// [HTTPResolver] fetches http and https URLs with a timeout, a response size
// limit and a User-Agent header. [FileResolver] reads file:// URLs below a base
// directory and rejects paths that escape it. [CachingResolver] wraps either
// one and keeps a bounded number of parsed documents. [SchemeMux] dispatches on
// the URL scheme:
//
//	resolver := extref.SchemeMux{
//		"http":  extref.NewCachingResolver(extref.NewHTTPResolver()),
//		"https": extref.NewCachingResolver(extref.NewHTTPResolver()),
//		"file":  extref.NewFileResolver("./schemas"),
//	}
//	local, err := extref.Materialize(ctx, doc, resolver)
//
// # Errors
//
// Retrieval failures are returned as [*oaserrors.ReferenceError] with RefType
// "http" or "file". A reference that reaches itself again while it is being
// inlined is reported with IsCircular set, and exceeding [MaxRefDepth] or the
// cache size yields [*oaserrors.ResourceLimitError].
package extref
