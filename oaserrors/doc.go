// Package oaserrors provides structured error types for the oasrebase library.
//
// Import path: github.com/erraggy/oasrebase/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a malformed input document from a naming clash
// or a failed external retrieval.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures
//   - [StructuralError]: a document that cannot be walked (a null or scalar where a schema is required)
//   - [NamingCollisionError]: two nested definitions that would occupy the same flat name
//   - [ReferenceError]: malformed, unresolvable, circular, or unretrievable $ref values
//   - [ResourceLimitError]: depth, size, or count limits exceeded
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrStructure]: Matches any [StructuralError]
//   - [ErrNamingCollision]: Matches any [NamingCollisionError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrInvalidReference]: Matches [ReferenceError] with IsInvalid=true
//   - [ErrUnresolvableReference]: Matches [ReferenceError] with IsUnresolvable=true
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: Matches [ReferenceError] with IsPathTraversal=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	doc, err := rebase.Definitions(input)
//	if err != nil {
//	    var collision *oaserrors.NamingCollisionError
//	    if errors.As(err, &collision) {
//	        fmt.Println("clashing definitions:", collision.Paths)
//	    }
//	    if errors.Is(err, oaserrors.ErrStructure) {
//	        // input was not walkable
//	    }
//	}
package oaserrors
