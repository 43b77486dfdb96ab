// Package commands provides the cobra commands of the oasrebase CLI.
package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
}

// NewRootCommand builds the oasrebase command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "oasrebase",
		Short: "Flatten nested JSON Schema definitions into OpenAPI components",
		Long: `oasrebase hoists every schema nested in a "definitions" container to a
top-level entry of components.schemas and rewrites every $ref in the document
so it still points at the same content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log every hoisting decision")

	root.AddCommand(
		newRebaseCommand(g),
		newPointerCommand(),
		newCheckCommand(g),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}

// logger builds the zap logger for one command run. Verbose mode uses the
// development encoder at debug level; otherwise only warnings and errors are
// written.
func (g *globalFlags) logger(w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	level := zapcore.WarnLevel
	if g.verbose {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
	}
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
