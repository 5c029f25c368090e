package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dovetale/pkg/auth"
	"dovetale/pkg/config"
)

const configHeader = `# Dovetale CLI configuration
#
# Every value can also be set with an environment variable, for example
# DOVETALE_CLIENT_ID, DOVETALE_CLIENT_SECRET or DOVETALE_LOG_LEVEL.
# Prefer 'dovetale auth login' over storing the client secret here.

`

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage dovetale configuration files.

Configuration is loaded from:
  - Command line flags (highest priority)
  - Environment variables (DOVETALE_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".dovetale.yaml"
			if a.opts.configFile != "" {
				path = a.opts.configFile
			}
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			if err := os.WriteFile(path, append([]byte(configHeader), data...), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			a.printer.Success("Configuration file created: " + path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging all sources.

The client secret is masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			display := *a.cfg
			if display.Dovetale.ClientSecret != "" {
				display.Dovetale.ClientSecret = auth.MaskString(display.Dovetale.ClientSecret)
			}

			data, err := yaml.Marshal(&display)
			if err != nil {
				return fmt.Errorf("failed to format configuration: %w", err)
			}
			fmt.Fprint(a.out, string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// loading already validated every source; report what is left
			if !a.cfg.HasCredentials() {
				a.printer.Warning("No credentials in configuration; stored credentials will be used")
			}
			if dir := a.cfg.Output.Directory; dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("cannot create output directory: %w", err)
				}
			}

			a.printer.Success("Configuration is valid")
			a.printer.Info("Base URL", a.cfg.Dovetale.BaseURL)
			a.printer.Info("Auth URL", a.cfg.Dovetale.AuthURL)
			a.printer.Info("Log level", a.cfg.Logging.Level)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, validateCmd)
	return configCmd
}
