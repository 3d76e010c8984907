package main

import (
	"github.com/spf13/cobra"

	"github.com/brettbedarf/namefs/config"
	"github.com/brettbedarf/namefs/internal/util"
)

// options are the persistent flags shared by every subcommand
type options struct {
	verbose    int
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "namefs",
		Short: "Inspect hierarchical names and build name trees",
		Long: `namefs parses, escapes and renders delimited names, and builds trees of
directories, files and links from YAML or JSON definitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().IntVarP(&opts.verbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON config file")

	cmd.AddCommand(newNameCommand(opts))
	cmd.AddCommand(newTreeCommand(opts))
	return cmd
}

// load builds the config from the optional file and flags and sets up
// logging. An explicit -v wins over the file's log level.
func (o *options) load(cmd *cobra.Command) error {
	override := &config.ConfigOverride{}
	if o.configPath != "" {
		var err error
		if override, err = config.LoadConfigOverrideFile(o.configPath); err != nil {
			return err
		}
	}
	if override.LogLvl == nil || cmd.Flags().Changed("verbose") {
		override.LogLvl = &o.verbose
	}

	cfg := config.NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return err
	}
	util.InitializeLoggerTo(cmd.ErrOrStderr(), cfg.LogLvl)
	logger := util.GetLogger("main")
	logger.Debug().Str("config", o.configPath).Interface("cfg", cfg).Msg("Config loaded")
	o.cfg = cfg
	return nil
}
