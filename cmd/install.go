package cmd

import (
	"errors"
	"fmt"

	"github.com/frostyard/forgeexec/internal/config"
	"github.com/frostyard/forgeexec/internal/install"
	"github.com/frostyard/forgeexec/internal/prereq"
	"github.com/spf13/cobra"
)

// exitMissingDependency is used with --strict when the dependency is absent.
const exitMissingDependency = 2

var (
	installDependency string
	installBinDir     string
	installStrict     bool
	installDryRun     bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Link the dependency's wrapper script into the modules bin directory",
	Long: `Copies the vendored wrapper script of the dependency into the package
manager's bin directory, rewriting its relative path so it keeps finding the
platform binaries. Meant to run from a postinstall hook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(appFs, projectRoot())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dependency") {
			cfg.Dependency = installDependency
		}
		if cmd.Flags().Changed("bin-dir") {
			cfg.BinDir = installBinDir
		}
		if cmd.Flags().Changed("strict") {
			cfg.Strict = installStrict
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		in := install.New(appFs, logger)
		in.DryRun = installDryRun

		_, err = in.Run(cfg)
		var missing *prereq.MissingError
		if errors.As(err, &missing) {
			if cfg.Strict {
				return &ExitError{Code: exitMissingDependency, Err: err}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Please install %q, this contains %s\n",
				missing.Requirement.Name, missing.Requirement.Purpose)
			return nil
		}
		return err
	},
}

func init() {
	installCmd.Flags().StringVar(&installDependency, "dependency", "", "dependency package providing the wrapper (default forge-exec-ipc-client)")
	installCmd.Flags().StringVar(&installBinDir, "bin-dir", "", "bin directory name inside the modules directory (default .bin)")
	installCmd.Flags().BoolVar(&installStrict, "strict", false, "exit with status 2 when the dependency is not installed")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "show what would be installed without changing anything")
	rootCmd.AddCommand(installCmd)
}
