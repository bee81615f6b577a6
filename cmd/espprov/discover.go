package main

import (
	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/discovery"
)

func newDiscoverCmd(a *app) *cobra.Command {
	var (
		bleOnly, mdnsOnly bool
		prefix, iface     string
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List provisionable devices over BLE and mDNS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			if !mdnsOnly {
				if !cmd.Flags().Changed("prefix") {
					prefix = a.cfg.NamePrefix
				}
				scanner, err := a.bleScanner(prefix, a.cfg.ServiceUUID)
				if err != nil {
					return err
				}
				devs, err := scanner.Scan(ctx)
				if err != nil {
					return err
				}
				if err := a.out.radioDevices(devs); err != nil {
					return err
				}
			}

			if !bleOnly {
				b := a.mdnsBrowser(iface)
				defer b.Stop()
				devs, err := b.FindAll(ctx)
				if err != nil {
					return err
				}
				return a.out.networkDevices(devs)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&bleOnly, "ble-only", false, "Only scan BLE")
	f.BoolVar(&mdnsOnly, "mdns-only", false, "Only browse mDNS")
	f.StringVar(&prefix, "prefix", discovery.DefaultNamePrefix, "BLE name prefix to match")
	f.StringVar(&iface, "iface", "", "Network interface for mDNS")
	cmd.MarkFlagsMutuallyExclusive("ble-only", "mdns-only")
	return cmd
}
