package main

import (
	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/wire"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		target targetFlags
		params = wire.DefaultScanParams()
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the access points a device can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, done, err := target.session(ctx, a)
			if err != nil {
				return err
			}
			defer done()

			aps, err := d.ScanWiFiListWithParams(ctx, params)
			if err != nil {
				return err
			}
			return a.out.accessPoints(aps)
		},
	}
	target.register(cmd)
	f := cmd.Flags()
	f.BoolVar(&params.Passive, "passive", params.Passive, "Passive scan")
	f.Uint32Var(&params.GroupChannels, "group-channels", params.GroupChannels, "Channels scanned per group (0 = all at once)")
	f.Uint32Var(&params.PeriodMs, "period", params.PeriodMs, "Dwell time per channel in ms")
	return cmd
}
