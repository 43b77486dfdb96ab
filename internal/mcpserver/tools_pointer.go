package mcpserver

import (
	"context"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type pointerInput struct {
	Context string `json:"context" jsonschema:"Name of the top-level schema the $ref appears in"`
	Ref     string `json:"ref"     jsonschema:"The $ref string to canonicalize"`
}

type pointerOutput struct {
	Ref     string `json:"ref"`
	Changed bool   `json:"changed"`
}

func handleRebasePointer(_ context.Context, _ *mcp.CallToolRequest, input pointerInput) (*mcp.CallToolResult, pointerOutput, error) {
	ref, err := rebase.Pointer(input.Context, input.Ref)
	if err != nil {
		return errResult(err), pointerOutput{}, nil
	}
	return nil, pointerOutput{Ref: ref, Changed: ref != input.Ref}, nil
}
