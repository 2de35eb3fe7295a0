package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/frostyard/forgeexec/internal/config"
	"github.com/frostyard/forgeexec/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ClientBinary is the name the package's wrapper script executes. When the
// binary is invoked under this name it behaves like "forgeexec ipc".
const ClientBinary = "forge-exec-ipc-client"

var (
	rootDir string
	verbose bool

	logger = log.New(io.Discard)
	appFs  = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "forgeexec",
	Short: "Install and run the forge-exec IPC client",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		logger.Debug("starting", "version", version.Short())
	},
}

func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root containing the modules directory (default current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Args maps the process arguments to the command tree, routing invocations
// under ClientBinary to the ipc subcommands.
func Args(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	if filepath.Base(argv[0]) == ClientBinary {
		return append([]string{"ipc"}, argv[1:]...)
	}
	return argv[1:]
}

func projectRoot() string {
	if rootDir == "" {
		return config.DefaultRoot()
	}
	return rootDir
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	formatter := log.LogfmtFormatter
	if f, ok := w.(*os.File); ok && term.IsTerminal(f.Fd()) {
		formatter = log.TextFormatter
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:    "forgeexec",
		Level:     level,
		Formatter: formatter,
	})
}
