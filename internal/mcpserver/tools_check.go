package mcpserver

import (
	"context"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type checkInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to check"`
	Rebase bool      `json:"rebase,omitempty" jsonschema:"Rebase the document (default naming policy) before checking"`
}

type refIssue struct {
	Ref      string `json:"ref"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

type checkOutput struct {
	Valid      bool       `json:"valid"`
	ErrorCount int        `json:"error_count"`
	Errors     []refIssue `json:"errors,omitempty"`
}

func handleCheckRefs(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	doc, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}
	if input.Rebase {
		result, err := rebase.RebaseWithOptions(
			rebase.WithDocument(doc),
			rebase.WithNamingPolicy(cfg.NamingPolicy),
		)
		if err != nil {
			return errResult(err), checkOutput{}, nil
		}
		doc = result.Document
	}

	errs := rebase.CheckReferences(doc)
	output := checkOutput{Valid: len(errs) == 0, ErrorCount: len(errs)}
	for _, e := range errs {
		output.Errors = append(output.Errors, refIssue{
			Ref:      e.Ref,
			Location: e.Location,
			Message:  e.Error(),
		})
	}
	return nil, output, nil
}
