package commands

import (
	"github.com/erraggy/oasrebase/extref"
	"github.com/erraggy/oasrebase/rebase"
	"github.com/erraggy/oasrebase/schema"
	"github.com/spf13/cobra"
)

type rebaseFlags struct {
	output          string
	format          string
	naming          string
	resolveExternal bool
	baseDir         string
}

func newRebaseCommand(g *globalFlags) *cobra.Command {
	flags := &rebaseFlags{}
	cmd := &cobra.Command{
		Use:   "rebase [flags] <file|url|->",
		Short: "Hoist nested definitions into components.schemas",
		Long: `Hoist every nested definition of components.schemas to a top-level schema
and rewrite every $ref in the document to point at its new location.

Naming policies:
  leaf       use the definition name, qualifying it by path when not unique (default)
  strict     use the definition name and fail when two definitions share it
  qualified  always name definitions root_parent_leaf`,
		Example: `  oasrebase rebase api.yaml -o flat.yaml
  oasrebase rebase --naming strict --format json api.yaml
  cat api.yaml | oasrebase rebase -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebase(cmd, g, flags, args[0])
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.output, "output", "o", "", "write the result to a file instead of stdout")
	fs.StringVarP(&flags.format, "format", "f", "", "output format: yaml or json (default: match the input)")
	fs.StringVar(&flags.naming, "naming", "leaf", "naming policy: leaf, strict or qualified")
	fs.BoolVar(&flags.resolveExternal, "resolve-external", false, "inline absolute-URL $refs before rebasing")
	fs.StringVar(&flags.baseDir, "base-dir", "", "directory file:// references must stay in (default: the input's directory)")
	return cmd
}

func runRebase(cmd *cobra.Command, g *globalFlags, flags *rebaseFlags, source string) error {
	format := flags.format
	if format == "" {
		format = defaultFormat(source)
	}
	if err := ValidateOutputFormat(format, FormatYAML, FormatJSON); err != nil {
		return err
	}
	policy, err := rebase.ParseNamingPolicy(flags.naming)
	if err != nil {
		return err
	}

	zl := g.logger(cmd.ErrOrStderr())
	defer func() { _ = zl.Sync() }()
	logger := schema.NewZapAdapter(zl)

	doc, err := loadDocument(cmd.Context(), cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	if flags.resolveExternal {
		baseDir := flags.baseDir
		if baseDir == "" {
			baseDir = inputDir(source)
		}
		doc, err = extref.Materialize(cmd.Context(), doc, newResolver(baseDir), extref.WithLogger(logger))
		if err != nil {
			return err
		}
	}

	result, err := rebase.RebaseWithOptions(
		rebase.WithDocument(doc),
		rebase.WithNamingPolicy(policy),
		rebase.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	data, err := marshalDocument(result.Document, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), data, flags.output)
}
