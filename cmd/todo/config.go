package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/model"
)

// todo config
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// todo config init
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if rootConfigPath != "" {
		return rootConfigPath
	}
	return model.DefaultConfigPath()
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := env.cfg
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config:          %s\n", configPath())
	fmt.Fprintf(out, "storage.backend: %s\n", cfg.Storage.Backend)
	fmt.Fprintf(out, "storage.path:    %s\n", cfg.DataPath())
	fmt.Fprintf(out, "display.theme:   %s\n", cfg.DefaultTheme())
	fmt.Fprintf(out, "log.level:       %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "log.file:        %s\n", cfg.Log.File)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := model.SaveConfig(path, env.cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
