package rebase

import (
	"strings"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// Pointer rewrites one $ref into canonical "#/components/schemas/..." form.
// contextName is the name of the top-level schema the ref appears in and is
// only needed for refs relative to it ("#/definitions/a", "#").
//
//	https://h/x                 -> unchanged
//	global#/definitions/s       -> #/components/schemas/global/definitions/s
//	global#/properties/a        -> #/components/schemas/global/properties/a
//	global# or global           -> #/components/schemas/global
//	#/definitions/a (in "ctx")  -> #/components/schemas/ctx/definitions/a
//	#/components/schemas/x      -> unchanged
//
// Empty or unparseable refs return an *oaserrors.ReferenceError.
func Pointer(contextName, ref string) (string, error) {
	if ref == "" {
		return "", invalidRef(ref, "empty reference")
	}
	if pathutil.IsAbsoluteURL(ref) {
		return ref, nil
	}

	base, fragment, _ := pathutil.SplitRef(ref)
	if fragment != "" {
		if !strings.HasPrefix(fragment, "/") {
			return "", invalidRef(ref, "fragment must be a JSON pointer starting with /")
		}
		if _, err := pathutil.ParsePointer(fragment); err != nil {
			return "", &oaserrors.ReferenceError{Ref: ref, IsInvalid: true, Cause: err}
		}
	}

	if base != "" {
		return pathutil.RefPrefixSchemas + pathutil.EscapeToken(base) + fragment, nil
	}

	if strings.HasPrefix(ref, pathutil.RefPrefixComponents) {
		return ref, nil
	}
	if contextName == "" {
		return "", invalidRef(ref, "relative reference needs the name of its enclosing schema")
	}
	return pathutil.RefPrefixSchemas + pathutil.EscapeToken(contextName) + fragment, nil
}

// RebasePointer returns a shallow copy of node with its $ref rewritten by
// [Pointer]. The input node is never modified.
func RebasePointer(contextName string, node *schema.Schema) (*schema.Schema, error) {
	if node == nil {
		return nil, &oaserrors.StructuralError{Found: "nothing", Message: "schema must be an object"}
	}
	ref, err := Pointer(contextName, node.Ref)
	if err != nil {
		return nil, err
	}
	cp := node.Copy()
	cp.Ref = ref
	return cp, nil
}

func invalidRef(ref, msg string) error {
	return &oaserrors.ReferenceError{Ref: ref, IsInvalid: true, Message: msg}
}
