package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed config_default.yml
var defaultConfigYAML []byte

func newConfigCommand(flags *runFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the " + appName + " config file",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(flags))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: "Create the config directory and write a commented " + configFileName + ".\n\n" +
			"The default config directory is resolved in this order:\n" +
			"  $" + envConfigDir + " > $XDG_CONFIG_HOME/" + appName + " > ~/.config/" + appName,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			dir, _ := cmd.Flags().GetString("dir")

			if dir == "" {
				var err error
				dir, err = resolveConfigDir()
				if err != nil {
					return err
				}
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}

			path := filepath.Join(dir, configFileName)
			if err := writeInitFile(path, defaultConfigYAML, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "initialised %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing file")
	cmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
	return cmd
}

func newConfigShowCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func writeInitFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	_, err = f.Write(content)
	return err
}
