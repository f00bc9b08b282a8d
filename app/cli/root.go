// Package cli holds the beancatalog cobra commands.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"beancatalog/config"
	"beancatalog/logging"
)

// globals holds what the persistent pre-run resolves for every subcommand
type globals struct {
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
}

// NewRootCmd creates the root command with the serve and list subcommands
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "beancatalog",
		Short:         "Jelly bean flavor catalog",
		Long:          "beancatalog serves a filterable, sortable and paginated catalog of jelly bean flavors.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			if g.logLevel != "" {
				cfg.Log.Level = g.logLevel
			}
			g.cfg = cfg
			g.log = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.AddCommand(newServeCmd(g), newListCmd(g))

	return cmd
}
