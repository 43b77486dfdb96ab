package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type rebaseInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The document to rebase"`
	NamingPolicy    string    `json:"naming_policy,omitempty"    jsonschema:"Naming policy: leaf, strict or qualified. Default from OASREBASE_NAMING_POLICY."`
	ResolveExternal *bool     `json:"resolve_external,omitempty" jsonschema:"Inline absolute-URL $refs before rebasing. Default from OASREBASE_RESOLVE_EXTERNAL."`
	Format          string    `json:"format,omitempty"           jsonschema:"Output format: yaml (default) or json"`
}

type hoistedItem struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type namingEventItem struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type rebaseOutput struct {
	SchemaCount   int               `json:"schema_count"`
	HoistedCount  int               `json:"hoisted_count"`
	RewrittenRefs int               `json:"rewritten_refs"`
	Hoisted       []hoistedItem     `json:"hoisted,omitempty"`
	Events        []namingEventItem `json:"events,omitempty"`
	Document      string            `json:"document"`
}

func handleRebaseDefinitions(ctx context.Context, _ *mcp.CallToolRequest, input rebaseInput) (*mcp.CallToolResult, rebaseOutput, error) {
	policy := cfg.NamingPolicy
	if input.NamingPolicy != "" {
		p, err := rebase.ParseNamingPolicy(input.NamingPolicy)
		if err != nil {
			return errResult(err), rebaseOutput{}, nil
		}
		policy = p
	}
	resolveExternal := cfg.ResolveExternal
	if input.ResolveExternal != nil {
		resolveExternal = *input.ResolveExternal
	}

	doc, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), rebaseOutput{}, nil
	}
	doc, err = input.Spec.materialize(ctx, doc, resolveExternal)
	if err != nil {
		return errResult(err), rebaseOutput{}, nil
	}

	result, err := rebase.RebaseWithOptions(
		rebase.WithDocument(doc),
		rebase.WithNamingPolicy(policy),
	)
	if err != nil {
		return errResult(err), rebaseOutput{}, nil
	}

	var data []byte
	switch input.Format {
	case "", "yaml":
		data, err = result.Document.MarshalOrderedYAML()
	case "json":
		data, err = result.Document.MarshalOrderedJSONIndent("", "  ")
	default:
		err = fmt.Errorf("invalid format %q; valid values: yaml, json", input.Format)
	}
	if err != nil {
		return errResult(err), rebaseOutput{}, nil
	}

	output := rebaseOutput{
		HoistedCount:  len(result.Hoisted),
		RewrittenRefs: result.RewrittenRefs,
		Document:      string(data),
	}
	if result.Document.Schemas != nil {
		output.SchemaCount = result.Document.Schemas.Len()
	}
	for _, h := range result.Hoisted {
		output.Hoisted = append(output.Hoisted, hoistedItem{Path: h.Path.Pointer(), Name: h.FlatName})
	}
	for _, e := range result.Events {
		output.Events = append(output.Events, namingEventItem{
			Path:     e.Path.Pointer(),
			Name:     e.FlatName,
			Severity: e.Severity.String(),
			Message:  e.Message,
		})
	}
	return nil, output, nil
}
