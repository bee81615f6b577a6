package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

func newQRCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Build or decode provisioning QR payloads",
	}

	var (
		name, kind, pop string
		scheme          int
	)
	build := &cobra.Command{
		Use:   "build",
		Short: "Print the QR payload for a device",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			qr, err := discovery.NewQRCode(name, kind, security.Scheme(scheme), pop)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out.w, qr.String())
			return nil
		},
	}
	bf := build.Flags()
	bf.StringVar(&name, "name", "", "Device name")
	bf.StringVar(&kind, "transport", transport.KindBLE, "Transport: ble or softap")
	bf.IntVar(&scheme, "sec", 1, "Security scheme (0, 1 or 2)")
	bf.StringVar(&pop, "pop", "", "Proof of possession")
	_ = build.MarkFlagRequired("name")

	parse := &cobra.Command{
		Use:   "parse PAYLOAD",
		Short: "Decode a QR payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			qr, err := discovery.ParseQRCode(args[0])
			if err != nil {
				return err
			}
			if a.out.yamlMode {
				return a.out.yaml(map[string]any{
					"name":      qr.Name,
					"transport": qr.Transport,
					"security":  int(qr.Security),
					"pop":       qr.ProofOfPossession != "",
				})
			}
			fmt.Fprintf(a.out.w, "Name: %s\nTransport: %s\nSecurity: %s\n", qr.Name, qr.Transport, qr.Security)
			return nil
		},
	}

	cmd.AddCommand(build, parse)
	return cmd
}
