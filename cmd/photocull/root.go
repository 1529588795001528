package main

import (
	"photocull/internal/config"
	"photocull/internal/log"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the config they load.
type rootOptions struct {
	cfgFile string
	debug   bool
	logJSON bool
	cfg     *config.Config
}

// logOptions returns the logger options the flags ask for, plus extra.
func (o *rootOptions) logOptions(extra ...log.Option) []log.Option {
	if o.logJSON {
		extra = append(extra, log.WithJSON())
	}
	return extra
}

// configPath returns --config or the default location.
func (o *rootOptions) configPath() (string, error) {
	if o.cfgFile != "" {
		return o.cfgFile, nil
	}
	return config.DefaultPath()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "photocull [folder]",
		Short: "Sort a folder of photos into keepers and discards",
		Long: `photocull shows every photo of a folder in a terminal grid. Mark photos
Keep or Discard with the keyboard or mouse, then move the discards into a
"Discarded" subfolder in one go.

Without a folder the last opened one is used, then the current directory.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logJSON {
				log.Configure(opts.logOptions(log.WithOutput(cmd.ErrOrStderr()))...)
			}
			log.SetDebug(opts.debug)

			path, err := opts.configPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfigFile(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, folderArg(args), dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/photocull/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write log lines as JSON")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "log moves without touching files")

	// Add subcommands
	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewScanCmd(opts))
	rootCmd.AddCommand(NewConfigCmd(opts))

	return rootCmd
}

func folderArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
