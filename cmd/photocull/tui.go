package main

import (
	"context"
	"os"

	"photocull/internal/config"
	"photocull/internal/log"
	"photocull/internal/session"
	"photocull/internal/store"
	"photocull/internal/tui"

	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command
func NewTUICmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "tui [folder]",
		Short: "Start the terminal user interface",
		Long:  `Start the interactive triage screen on folder.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, folderArg(args), dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "log moves without touching files")
	return cmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions, folder string, dryRun bool) error {
	cfg := opts.cfg
	if cmd.Flags().Changed("dry-run") {
		cfg.Move.DryRun = dryRun
	}

	// The terminal belongs to bubbletea from here on
	if logPath, err := config.LogPath(); err == nil {
		log.Configure(opts.logOptions(log.WithFile(logPath))...)
		log.SetDebug(opts.debug)
		defer log.Close()
	}

	ctx := context.Background()
	var sessOpts []session.Option
	if dbPath, err := cfg.StorePath(); err == nil {
		db, err := store.Open(ctx, dbPath)
		if err != nil {
			log.LogWithError(err).Warn("Layout will not be saved")
		} else {
			sessOpts = append(sessOpts, session.WithStore(db))
		}
	}

	sess, err := session.New(ctx, cfg, sessOpts...)
	if err != nil {
		return err
	}

	if folder == "" && sess.Layout().LastFolder == "" {
		if wd, err := os.Getwd(); err == nil {
			folder = wd
		}
	}

	runErr := tui.Run(sess, folder)
	if err := sess.Close(ctx); err != nil {
		log.LogWithError(err).Warn("Failed to save layout")
	}
	return runErr
}
