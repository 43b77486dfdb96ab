// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasrebase capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasrebase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasrebase MCP server: flattens JSON-Schema style nested definitions into an OpenAPI 3 components.schemas registry and rewrites every $ref to match.

Configuration: All defaults are configurable via OASREBASE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASREBASE_NAMING_POLICY (default: leaf) - leaf, strict or qualified
- OASREBASE_RESOLVE_EXTERNAL (default: false) - inline absolute-URL $refs before rebasing
- OASREBASE_HTTP_TIMEOUT (default: 30s) - timeout for url inputs and external refs
- OASREBASE_MAX_INLINE_SIZE (default: 10MB) - maximum size of inline content
- OASREBASE_MAX_REF_DEPTH (default: 100) - maximum nesting of external refs
- OASREBASE_ALLOW_PRIVATE_IPS (default: false) - allow fetching from private networks`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasrebase", Version: oasrebase.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rebase_definitions",
		Description: "Hoist every nested `definitions` entry of components.schemas to a top-level schema and rewrite all $refs (schemas, paths, responses, parameters, discriminator mappings) to #/components/schemas/<name>. Returns the rebased document plus the hoisted names and naming events. naming_policy: leaf (default; falls back to qualified names on clashes), strict (fail on clashes), qualified (always root_parent_leaf). Use resolve_external to inline absolute-URL refs first.",
	}, handleRebaseDefinitions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rebase_pointer",
		Description: "Canonicalize a single $ref written inside the schema named context into an absolute #/components/schemas/... pointer. Accepts 'name#/definitions/x', '#/definitions/x', '#/properties/x', bare names and already-absolute pointers.",
	}, handleRebasePointer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_refs",
		Description: "Report every local $ref in a document whose target does not exist. Set rebase=true to check the document as it would be after rebase_definitions. Absolute URLs are not checked.",
	}, handleCheckRefs)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
