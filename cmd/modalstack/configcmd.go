package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/config"
)

var configOpts struct {
	format string
	force  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration",
	Long: `Print the effective configuration.

Examples:
  modalstack config
  modalstack config --format yaml
  modalstack config init`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configCmd.Flags().StringVarP(&configOpts.format, "format", "f", "toml",
		"Output format (toml, yaml)")
	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing file")
}

func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var name string
	switch configOpts.format {
	case "toml":
		name = "config.toml"
	case "yaml", "yml":
		name = "config.yaml"
	default:
		return fmt.Errorf("unknown format %q (use toml or yaml)", configOpts.format)
	}

	data, err := getConfig().Marshal(name)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}
