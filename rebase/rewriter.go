package rebase

import (
	"strings"

	"github.com/erraggy/oasrebase/internal/pathutil"
	"github.com/erraggy/oasrebase/schema"
	"go.yaml.in/yaml/v4"
)

// keywordArity returns how many pointer tokens the keyword at tokens[i]
// consumes: two for keywords followed by a name or index, one otherwise.
func keywordArity(tokens []string, i int) int {
	if i+1 >= len(tokens) {
		return 1
	}
	switch tokens[i] {
	case schema.KeyDefinitions, schema.KeyDefs, schema.KeyProperties,
		schema.KeyPatternProperties, schema.KeyDependentSchemas, schema.KeyDependencies,
		schema.KeyPrefixItems, schema.KeyAllOf, schema.KeyAnyOf, schema.KeyOneOf:
		return 2
	case schema.KeyItems:
		if isIndex(tokens[i+1]) {
			return 2
		}
	}
	return 1
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// lastDefinitionsPair returns the index of the last "definitions" keyword
// that is followed by a name, scanning keyword positions from start.
// It returns -1 when there is none.
func lastDefinitionsPair(tokens []string, start int) int {
	last := -1
	for i := start; i < len(tokens); {
		n := keywordArity(tokens, i)
		if tokens[i] == schema.KeyDefinitions && n == 2 {
			last = i
		}
		i += n
	}
	return last
}

// rewriter builds the output registry and rewrites references.
type rewriter struct {
	names  *nameTable
	roots  *schema.Map
	out    *schema.Map
	logger schema.Logger

	rewritten int
}

func newRewriter(roots *schema.Map, names *nameTable, logger schema.Logger) *rewriter {
	return &rewriter{
		names:  names,
		roots:  roots,
		out:    schema.NewMap(),
		logger: logger,
	}
}

// rewriteRef returns the rebased form of ref. contextName is the top-level
// schema the ref appears in, or "" outside components.schemas.
func (rw *rewriter) rewriteRef(ref, contextName string) string {
	if ref == "" || pathutil.IsAbsoluteURL(ref) {
		return ref
	}

	var tokens []string
	start := 1
	canonical, err := Pointer(contextName, ref)
	switch {
	case err == nil && strings.HasPrefix(canonical, pathutil.RefPrefixSchemas):
		tokens, err = pathutil.ParsePointer(canonical[1:])
		if err != nil || len(tokens) < 3 {
			return ref
		}
		tokens = rw.expand(tokens[2:])
	case err == nil:
		// Points at another component section.
		return ref
	default:
		// A document-level pointer such as "#/definitions/Pet" outside any
		// schema; scan it from its first token.
		_, fragment, hasHash := pathutil.SplitRef(ref)
		if !hasHash || !strings.HasPrefix(fragment, "/") {
			return ref
		}
		tokens, err = pathutil.ParsePointer(fragment)
		if err != nil {
			return ref
		}
		start = 0
	}

	i := lastDefinitionsPair(tokens, start)
	if i < 0 {
		return ref
	}
	flat := rw.flatName(tokens[:i+2])
	out := pathutil.SchemaRef(flat, tokens[i+2:]...)
	if out != ref {
		rw.rewritten++
		rw.logger.Debug("rewrote reference", "from", ref, "to", out)
	}
	return out
}

// expand replaces a leading hoisted flat name with the definition's original
// location, so refs into an already hoisted schema collapse fully.
func (rw *rewriter) expand(tokens []string) []string {
	if rw.roots.Has(tokens[0]) {
		return tokens
	}
	def, ok := rw.names.byFlatName[tokens[0]]
	if !ok {
		return tokens
	}
	expanded := make([]string, 0, len(def.Path.Location)+len(tokens)-1)
	expanded = append(expanded, def.Path.Location...)
	return append(expanded, tokens[1:]...)
}

// flatName returns the flat name for the definition at loc. A location the
// document does not contain falls back to the hoisted definition sharing its
// innermost name when there is exactly one, and to that name itself otherwise.
func (rw *rewriter) flatName(loc []string) string {
	if name, ok := rw.names.byLocation[locationKey(loc)]; ok {
		return name
	}
	leaf := loc[len(loc)-1]
	defs := rw.names.byLeaf[leaf]
	if len(defs) == 1 {
		return defs[0].FlatName
	}
	rw.logger.Warn("reference target not found, using bare name",
		"location", strings.Join(loc, "/"),
		"name", leaf,
		"candidates", len(defs))
	return leaf
}

// rebaseRoot rewrites one top-level schema in place and appends it, preceded
// by its hoisted definitions innermost first, to the output registry.
func (rw *rewriter) rebaseRoot(name string, s *schema.Schema) {
	rw.rebaseSchema(s, []string{name})
	rw.out.Set(name, s)
}

func (rw *rewriter) rebaseSchema(s *schema.Schema, loc []string) {
	if s == nil || s.IsBool() {
		return
	}
	root := loc[0]
	if s.Ref != "" {
		s.Ref = rw.rewriteRef(s.Ref, root)
	}
	if node, ok := s.Keyword(schema.KeyDiscriminator); ok {
		rw.rewriteDiscriminator(node, root)
	}

	for tokens, child := range s.Children() {
		childLoc := append(append(make([]string, 0, len(loc)+len(tokens)), loc...), tokens...)
		rw.rebaseSchema(child, childLoc)
		if tokens[0] == schema.KeyDefinitions {
			flat := rw.names.byLocation[locationKey(childLoc)]
			rw.logger.Debug("hoisted definition", "path", strings.Join(childLoc, "/"), "name", flat)
			rw.out.Set(flat, child)
		}
	}
	s.Definitions = nil
}

// rewriteDiscriminator rewrites the values of discriminator.mapping.
func (rw *rewriter) rewriteDiscriminator(node *yaml.Node, contextName string) {
	mapping := mappingValue(node, "mapping")
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return
	}
	for i := 1; i < len(mapping.Content); i += 2 {
		v := mapping.Content[i]
		if v.Kind == yaml.ScalarNode && strings.Contains(v.Value, "#") {
			v.Value = rw.rewriteRef(v.Value, contextName)
		}
	}
}

// rewriteSection rewrites a top-level or components field. Both the document
// root and the components object have fixed field names.
func (rw *rewriter) rewriteSection(f schema.Field) {
	if next, literal := schema.DocumentScope.Enter(f.Key, f.Value); !literal {
		rw.rewriteNode(f.Value, next)
	}
}

// rewriteNode rewrites every "$ref" string in a raw section in place. sc is
// the scope of node; literal values such as examples are left untouched.
func (rw *rewriter) rewriteNode(node *yaml.Node, sc schema.Scope) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			rw.rewriteNode(child, sc)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			if !sc.IsNames() {
				switch {
				case key == schema.KeyRef && value.Kind == yaml.ScalarNode:
					value.Value = rw.rewriteRef(value.Value, "")
					continue
				case key == schema.KeyDiscriminator:
					rw.rewriteDiscriminator(value, "")
					continue
				}
			}
			if next, literal := sc.Enter(key, value); !literal {
				rw.rewriteNode(value, next)
			}
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
