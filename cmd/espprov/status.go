package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the device's WiFi station status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, done, err := target.session(ctx, a)
			if err != nil {
				return err
			}
			defer done()

			st, err := d.FetchWiFiStatus(ctx)
			if err != nil {
				return err
			}
			return a.out.wifiStatus(st)
		},
	}
	target.register(cmd)
	return cmd
}
