package rebase

import (
	"strings"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// DefinitionPath locates one nested definition.
type DefinitionPath struct {
	// Names is the root schema name followed by every definitions key
	// traversed to reach the definition. It always has at least two entries.
	Names []string

	// Location is the full token path from the root schema name, including
	// keywords: [root, "definitions", "a", "properties", "p", "definitions", "b"].
	Location []string
}

// Root returns the name of the top-level schema the definition lives in.
func (p DefinitionPath) Root() string {
	return p.Names[0]
}

// Leaf returns the innermost definition name.
func (p DefinitionPath) Leaf() string {
	return p.Names[len(p.Names)-1]
}

// Pointer returns the definition's original $ref target,
// "#/components/schemas/<root>/definitions/...".
func (p DefinitionPath) Pointer() string {
	return pathutil.SchemaRef(p.Location[0], p.Location[1:]...)
}

// Qualified returns the path-qualified name: Location without the
// definitions keyword tokens, joined by "_".
func (p DefinitionPath) Qualified() string {
	parts := make([]string, 1, len(p.Location))
	parts[0] = p.Location[0]
	for i := 1; i < len(p.Location); {
		n := keywordArity(p.Location, i)
		if p.Location[i] == schema.KeyDefinitions && n == 2 {
			parts = append(parts, p.Location[i+1])
		} else {
			parts = append(parts, p.Location[i:i+n]...)
		}
		i += n
	}
	return strings.Join(parts, "_")
}

func (p DefinitionPath) String() string {
	return strings.Join(p.Location, "/")
}

// key is the lookup key for a definition location.
func (p DefinitionPath) key() string {
	return locationKey(p.Location)
}

func locationKey(tokens []string) string {
	return pathutil.JoinPointer(tokens)
}

// HoistedDefinition is one nested definition together with the flat name it
// occupies in the output registry.
type HoistedDefinition struct {
	Path     DefinitionPath
	FlatName string
	Node     *schema.Schema
}

// RefSite is one $ref found inside a schema.
type RefSite struct {
	// Root is the top-level schema the ref appears in.
	Root string
	// Location is the token path of the schema carrying the ref, from Root.
	Location []string
	Ref      string
}

// Pointer returns the JSON pointer of the schema carrying the ref.
func (r RefSite) Pointer() string {
	return "/components/schemas" + pathutil.JoinPointer(r.Location)
}

// WalkResult is everything the walker found.
type WalkResult struct {
	// Definitions lists every nested definition depth-first, pre-order,
	// in key order.
	Definitions []*HoistedDefinition
	// Refs lists every schema $ref in the same traversal order.
	Refs []RefSite
}

// Walk visits every top-level schema and returns all nested definitions and
// $ref occurrences. A nil schema anywhere in the tree is reported as an
// *oaserrors.StructuralError and nothing else is returned.
func Walk(schemas *schema.Map) (*WalkResult, error) {
	w := &walker{result: &WalkResult{}}
	for name, s := range schemas.All() {
		if err := w.visit(s, []string{name}, []string{name}); err != nil {
			return nil, err
		}
	}
	return w.result, nil
}

type walker struct {
	result *WalkResult
}

func (w *walker) visit(s *schema.Schema, loc, names []string) error {
	if s == nil {
		return &oaserrors.StructuralError{
			Path:    "/components/schemas" + pathutil.JoinPointer(loc),
			Found:   "null",
			Message: "schema must be an object",
		}
	}
	if s.Ref != "" {
		w.result.Refs = append(w.result.Refs, RefSite{Root: loc[0], Location: loc, Ref: s.Ref})
	}

	for tokens, child := range s.Children() {
		childLoc := append(append(make([]string, 0, len(loc)+len(tokens)), loc...), tokens...)
		childNames := names
		if tokens[0] == schema.KeyDefinitions {
			childNames = append(append(make([]string, 0, len(names)+1), names...), tokens[1])
			if child != nil {
				w.result.Definitions = append(w.result.Definitions, &HoistedDefinition{
					Path: DefinitionPath{Names: childNames, Location: childLoc},
					Node: child,
				})
			}
		}
		if err := w.visit(child, childLoc, childNames); err != nil {
			return err
		}
	}
	return nil
}
