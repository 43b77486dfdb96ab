package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a decoding failure occurred.
	ErrParse = errors.New("parse error")

	// ErrStructure indicates the document is not well-formed enough to walk.
	ErrStructure = errors.New("structural error")

	// ErrNamingCollision indicates two definitions resolved to the same flat name.
	ErrNamingCollision = errors.New("naming collision")

	// ErrReference indicates a reference failure.
	ErrReference = errors.New("reference error")

	// ErrInvalidReference indicates a $ref string that cannot be parsed.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUnresolvableReference indicates a $ref whose target does not exist.
	ErrUnresolvableReference = errors.New("unresolvable reference")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// StructuralError reports a location in the document where a schema object
// was required but something else (null, a scalar, a sequence) was found.
type StructuralError struct {
	// Path is the JSON pointer of the offending value (e.g., "/components/schemas/Pet")
	Path string
	// Found describes what was found instead (e.g., "null", "string")
	Found string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Found != "" {
		msg += " (found " + e.Found + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructure
}

// NamingCollisionError reports that distinct nested definitions would be
// hoisted under the same flat name.
type NamingCollisionError struct {
	// Name is the contested flat name
	Name string
	// Paths are the definition locations competing for Name, in discovery order
	Paths []string
}

// Error returns a human-readable error message.
func (e *NamingCollisionError) Error() string {
	msg := "naming collision"
	if e.Name != "" {
		msg += fmt.Sprintf(": %q", e.Name)
	}
	if len(e.Paths) > 0 {
		msg += " claimed by " + strings.Join(e.Paths, ", ")
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *NamingCollisionError) Is(target error) bool {
	return target == ErrNamingCollision
}

// ReferenceError represents a failure involving a $ref.
// This includes malformed refs, targets that do not exist, circular external
// references, path traversal attempts, and failed remote retrievals.
type ReferenceError struct {
	// Ref is the reference string involved
	Ref string
	// RefType indicates the reference type: "local", "file", or "http"
	RefType string
	// Location is the JSON pointer of the node carrying the $ref, if known
	Location string
	// StatusCode is the HTTP status of a failed retrieval (0 if not applicable)
	StatusCode int
	// IsInvalid is true if the ref string itself could not be parsed
	IsInvalid bool
	// IsUnresolvable is true if the ref parsed but points nowhere
	IsUnresolvable bool
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// IsPathTraversal is true if this error is due to a path traversal attempt
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCircular:
		msg = "circular reference"
	case e.IsPathTraversal:
		msg = "path traversal detected"
	case e.IsInvalid:
		msg = "invalid reference"
	case e.IsUnresolvable:
		msg = "unresolvable reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and the narrower sentinels when their flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrInvalidReference:
		return e.IsInvalid
	case ErrUnresolvableReference:
		return e.IsUnresolvable
	case ErrCircularReference:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	}
	return false
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "cached_documents", "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
