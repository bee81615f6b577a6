package main

import (
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the device's provisioning protocol version and capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, _, err := target.resolve(ctx, a)
			if err != nil {
				return err
			}
			// proto-ver is readable before any session exists.
			if err := a.connect(ctx, d, nil); err != nil {
				return err
			}
			defer d.Disconnect()

			v, err := d.ProtoVersion(ctx)
			if err != nil {
				return err
			}
			return a.out.protoVersion(v)
		},
	}
	target.register(cmd)
	return cmd
}
