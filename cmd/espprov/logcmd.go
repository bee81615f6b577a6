package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/cmd/espprov/logview"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect protocol capture files",
	}

	var viewLayer, viewDir, viewCat, viewEndpoint string
	view := &cobra.Command{
		Use:   "view FILE",
		Short: "Print events in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := logview.ViewFilter{Endpoint: viewEndpoint}
			if viewLayer != "" {
				l, err := logview.ParseLayerFlag(viewLayer)
				if err != nil {
					return err
				}
				filter.Layer = &l
			}
			if viewDir != "" {
				d, err := logview.ParseDirectionFlag(viewDir)
				if err != nil {
					return err
				}
				filter.Direction = &d
			}
			if viewCat != "" {
				c, err := logview.ParseCategoryFlag(viewCat)
				if err != nil {
					return err
				}
				filter.Category = &c
			}
			return logview.RunView(args[0], filter, cmd.OutOrStdout())
		},
	}
	vf := view.Flags()
	vf.StringVar(&viewLayer, "layer", "", "Filter by layer: transport, security, provisioning")
	vf.StringVar(&viewDir, "dir", "", "Filter by direction: in, out")
	vf.StringVar(&viewCat, "category", "", "Filter by category: message, state, error")
	vf.StringVar(&viewEndpoint, "endpoint", "", "Filter by endpoint name")

	var format, output string
	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Export events as jsonl or csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return logview.RunExport(args[0], format, output)
		},
	}
	export.Flags().StringVar(&format, "format", "jsonl", "Output format: jsonl, csv")
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	var opts logview.FilterOptions
	filter := &cobra.Command{
		Use:   "filter FILE",
		Short: "Copy matching events to a new capture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := logview.RunFilter(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtered %d events to %s\n", n, opts.Output)
			return nil
		},
	}
	ff := filter.Flags()
	ff.StringVarP(&opts.Output, "output", "o", "", "Output capture file")
	ff.StringVar(&opts.ConnID, "conn", "", "Connection ID")
	ff.StringVar(&opts.Endpoint, "endpoint", "", "Endpoint name")
	ff.StringVar(&opts.Transport, "transport", "", "Transport: ble, softap")
	ff.StringVar(&opts.TimeStart, "time-start", "", "Start time (RFC3339)")
	ff.StringVar(&opts.TimeEnd, "time-end", "", "End time (RFC3339)")
	ff.StringVar(&opts.Layer, "layer", "", "Layer: transport, security, provisioning")
	ff.StringVar(&opts.Direction, "dir", "", "Direction: in, out")
	ff.StringVar(&opts.Category, "category", "", "Category: message, state, error")
	_ = filter.MarkFlagRequired("output")

	stats := &cobra.Command{
		Use:   "stats FILE",
		Short: "Summarise a capture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return logview.RunStats(args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(view, export, filter, stats)
	return cmd
}
