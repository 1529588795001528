package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"photocull/internal/config"
	"photocull/internal/errors"
	"photocull/internal/scan"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command
func NewScanCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool
	var order string

	cmd := &cobra.Command{
		Use:   "scan [folder]",
		Short: "List the photos of a folder in triage order",
		Long:  `Scan a folder the way the triage screen does and print the photos it would show.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := folderArg(args)
			if folder == "" {
				wd, err := os.Getwd()
				if err != nil {
					return errors.Wrap(err, "error getting current directory")
				}
				folder = wd
			}

			scanOpts := scan.OptionsFromConfig(opts.cfg)
			if order != "" {
				switch order {
				case config.OrderName, config.OrderModTime, config.OrderTaken:
					scanOpts.Order = order
				default:
					return errors.NewConfigError("invalid value", "--order", errors.InvalidConfig,
						errors.Newf("unknown order %q", order))
				}
			}

			scanner, err := scan.New(scanOpts)
			if err != nil {
				return err
			}
			records, err := scanner.Scan(context.Background(), folder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No photos found.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, r := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Name(), humanize.Bytes(uint64(r.Size)), r.Taken.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d photos\n", len(records))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results in JSON format")
	cmd.Flags().StringVarP(&order, "order", "o", "", "Order by name, modtime or taken (default from config)")

	return cmd
}
