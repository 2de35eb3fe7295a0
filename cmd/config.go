package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/frostyard/forgeexec/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var forceConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage forgeexec configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(appFs, projectRoot())
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n# source: %s\n# target: %s\n", cfg.SourcePath(), cfg.TargetPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a " + config.FileName + " with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := projectRoot()
		path := filepath.Join(root, config.FileName)
		if ok, _ := afero.Exists(appFs, path); ok && !forceConfigInit {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		cfg, err := config.Load(appFs, root)
		if err != nil {
			return err
		}
		if err := cfg.Save(appFs, root); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("wrote config", "path", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceConfigInit, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
