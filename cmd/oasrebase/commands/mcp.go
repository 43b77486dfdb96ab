package commands

import (
	"github.com/erraggy/oasrebase/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the rebase tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
rebase_definitions, rebase_pointer and check_refs tools. Defaults are read from
OASREBASE_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
