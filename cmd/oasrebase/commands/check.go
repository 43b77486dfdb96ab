package commands

import (
	"fmt"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/erraggy/oasrebase/schema"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	rebase bool
	format string
}

// refIssue is the structured form of one unresolvable reference.
type refIssue struct {
	Ref      string `json:"ref"      yaml:"ref"`
	Location string `json:"location" yaml:"location"`
	Message  string `json:"message"  yaml:"message"`
}

func newCheckCommand(g *globalFlags) *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check [flags] <file|url|->",
		Short: "Report $refs whose target does not exist",
		Long: `Report every local $ref in the document whose target does not exist.
Absolute URLs are not checked. Exits non-zero when any reference is unresolved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, flags, args[0])
		},
	}
	cmd.Flags().BoolVar(&flags.rebase, "rebase", false, "rebase the document before checking")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, json or yaml")
	return cmd
}

func runCheck(cmd *cobra.Command, g *globalFlags, flags *checkFlags, source string) error {
	if err := ValidateOutputFormat(flags.format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Context(), cmd.InOrStdin(), source)
	if err != nil {
		return err
	}
	if flags.rebase {
		zl := g.logger(cmd.ErrOrStderr())
		defer func() { _ = zl.Sync() }()
		result, err := rebase.RebaseWithOptions(
			rebase.WithDocument(doc),
			rebase.WithLogger(schema.NewZapAdapter(zl)),
		)
		if err != nil {
			return err
		}
		doc = result.Document
	}

	errs := rebase.CheckReferences(doc)
	out := cmd.OutOrStdout()
	if flags.format == FormatText {
		for _, e := range errs {
			if _, err := fmt.Fprintln(out, e.Error()); err != nil {
				return err
			}
		}
	} else {
		issues := make([]refIssue, 0, len(errs))
		for _, e := range errs {
			issues = append(issues, refIssue{Ref: e.Ref, Location: e.Location, Message: e.Error()})
		}
		if err := OutputStructured(out, issues, flags.format); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d unresolved reference(s)", len(errs))
	}
	return nil
}
