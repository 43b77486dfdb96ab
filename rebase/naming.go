package rebase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasrebase/internal/severity"
	"github.com/erraggy/oasrebase/oaserrors"
	"github.com/erraggy/oasrebase/schema"
)

// Severity indicates how notable a naming decision is.
type Severity = severity.Severity

const (
	// SeverityInfo marks a name chosen exactly as the policy prescribes.
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning marks a bare name that had to be qualified to stay unique.
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical marks a clash that aborted the rebase.
	SeverityCritical = severity.SeverityCritical
)

// NamingPolicy decides the flat name of each hoisted definition.
type NamingPolicy int

const (
	// NamingLeaf uses the innermost definition name when it is unique among
	// all nested definitions and top-level schemas, and a path-qualified name
	// otherwise. This is the default.
	NamingLeaf NamingPolicy = iota
	// NamingStrict uses the innermost definition name and fails with an
	// *oaserrors.NamingCollisionError on any clash.
	NamingStrict
	// NamingQualified always uses the path-qualified name
	// (root_def_nested, with "definitions" keywords dropped).
	NamingQualified
)

var namingPolicyNames = map[NamingPolicy]string{
	NamingLeaf:      "leaf",
	NamingStrict:    "strict",
	NamingQualified: "qualified",
}

// String returns the policy's configuration name.
func (p NamingPolicy) String() string {
	if name, ok := namingPolicyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseNamingPolicy parses "leaf", "strict" or "qualified" (case-insensitive).
// An empty string selects NamingLeaf.
func ParseNamingPolicy(s string) (NamingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leaf":
		return NamingLeaf, nil
	case "strict":
		return NamingStrict, nil
	case "qualified":
		return NamingQualified, nil
	}
	return NamingLeaf, &oaserrors.ConfigError{
		Option:  "naming policy",
		Value:   s,
		Message: "must be one of leaf, strict, qualified",
	}
}

// NamingEvent records the name given to one hoisted definition when it is
// not simply its innermost definition name.
type NamingEvent struct {
	Path     DefinitionPath
	Leaf     string
	FlatName string
	Severity Severity
	Message  string
}

// nameTable maps definition locations to flat names.
type nameTable struct {
	byLocation map[string]string
	byFlatName map[string]*HoistedDefinition
	byLeaf     map[string][]*HoistedDefinition
}

// resolveNames assigns a unique FlatName to every definition in defs.
// roots holds the top-level schema names, which hoisted names never shadow.
func resolveNames(roots *schema.Map, defs []*HoistedDefinition, policy NamingPolicy) (*nameTable, []NamingEvent, error) {
	table := &nameTable{
		byLocation: make(map[string]string, len(defs)),
		byFlatName: make(map[string]*HoistedDefinition, len(defs)),
		byLeaf:     make(map[string][]*HoistedDefinition),
	}
	for _, def := range defs {
		leaf := def.Path.Leaf()
		table.byLeaf[leaf] = append(table.byLeaf[leaf], def)
	}

	taken := make(map[string]bool, roots.Len()+len(defs))
	for name := range roots.All() {
		taken[name] = true
	}

	var events []NamingEvent

	// Bare leaf names go first so a qualified name assigned later can never
	// steal a leaf that was unique on its own.
	if policy != NamingQualified {
		for _, def := range defs {
			leaf := def.Path.Leaf()
			if len(table.byLeaf[leaf]) == 1 && !taken[leaf] {
				table.assign(def, leaf)
				taken[leaf] = true
				continue
			}
			if policy == NamingStrict {
				err := collision(leaf, roots, table.byLeaf[leaf])
				return nil, nil, err
			}
		}
	}

	for _, def := range defs {
		if def.FlatName != "" {
			continue
		}
		name := uniqueName(def.Path.Qualified(), taken)
		taken[name] = true
		table.assign(def, name)

		event := NamingEvent{
			Path:     def.Path,
			Leaf:     def.Path.Leaf(),
			FlatName: name,
			Severity: SeverityInfo,
			Message:  "qualified by path",
		}
		if policy == NamingLeaf {
			event.Severity = SeverityWarning
			event.Message = fmt.Sprintf("name %q is not unique, qualified by path", event.Leaf)
		}
		events = append(events, event)
	}
	return table, events, nil
}

func (t *nameTable) assign(def *HoistedDefinition, name string) {
	def.FlatName = name
	t.byLocation[def.Path.key()] = name
	t.byFlatName[name] = def
}

// uniqueName returns name, or name_2, name_3, ... when name is taken.
func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func collision(leaf string, roots *schema.Map, defs []*HoistedDefinition) error {
	var paths []string
	if roots.Has(leaf) {
		paths = append(paths, DefinitionPath{Location: []string{leaf}}.Pointer())
	}
	for _, def := range defs {
		paths = append(paths, def.Path.Pointer())
	}
	return &oaserrors.NamingCollisionError{Name: leaf, Paths: paths}
}
