package commands

import (
	"fmt"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/spf13/cobra"
)

func newPointerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pointer <context> <ref>",
		Short: "Canonicalize a single $ref",
		Long: `Print the absolute #/components/schemas/... form of a $ref written inside
the top-level schema named <context>.`,
		Example: `  oasrebase pointer my_schema '#/definitions/a'
  oasrebase pointer my_schema 'other#/properties/b'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := rebase.Pointer(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ref)
			return err
		},
	}
}
