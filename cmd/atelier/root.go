package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/atelier-agent/internal/config"
	"github.com/PabloGalante/atelier-agent/internal/observability"
)

type rootOptions struct {
	cfgFile string
	logMode string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "atelier",
		Short: "Course advisor for the fashion school atelier",
		Long: `atelier runs the conversational course advisor.

Commands:
  serve     Run the HTTP API
  chat      Talk to the advisor in the terminal
  catalog   Inspect and validate the course catalog`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfgFile != "" {
				if err := os.Setenv("ATELIER_CONFIG", opts.cfgFile); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (overrides ATELIER_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.logMode, "log-mode", "", "Log mode: development, production or nop (overrides ATELIER_LOG_MODE)")

	cmd.AddCommand(
		newServeCmd(opts),
		newChatCmd(opts),
		newCatalogCmd(opts),
	)
	return cmd
}

// loadConfig reads and validates the config and installs the global logger.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.logMode != "" {
		cfg.LogMode = o.logMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := observability.Init(cfg.LogMode); err != nil {
		return nil, err
	}
	return cfg, nil
}
