// Command espprov provisions WiFi credentials onto headless devices over
// BLE or the device's SoftAP.
//
// Usage:
//
//	espprov discover [--ble-only|--mdns-only]
//	espprov scan [target flags]
//	espprov provision --ssid NAME [--passphrase PASS] [--wait] [target flags]
//	espprov status [target flags]
//	espprov version [target flags]
//	espprov shell [target flags]
//	espprov history [list|prune]
//	espprov log [view|export|filter|stats] FILE
//
// Target flags select the device: --ble ADDR, --url URL, --qr PAYLOAD,
// --name NAME or --mdns. Without one, the first BLE device advertising the
// provisioning name prefix or service is used.
//
// Settings can be read from a YAML or TOML file given with --config. Keys:
//
//	service_uuid, name_prefix, mdns_service, fallback, timeout,
//	log_level, protocol_log, history_db, hci_device, poll
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes one command line. Resources opened by the command are
// released before it returns, also on error.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := newApp(out, errOut)
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "espprov",
		Short:         "Provision WiFi credentials onto devices over BLE or SoftAP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out.w)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Config file (.yaml or .toml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.protocolLog, "protocol-log", "", "Append protocol events to this capture file")
	pf.StringVar(&a.flags.historyDB, "history-db", "", "Attempt history database (empty keeps the configured path)")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "Overall timeout per command (default 30s)")
	pf.IntVar(&a.flags.hciDevice, "hci", 0, "HCI device index for BLE")
	pf.IntVar(&a.flags.retries, "retries", 2, "Extra connect attempts on transport failure")
	pf.BoolVar(&a.flags.yaml, "yaml", false, "Print results as YAML")

	root.AddCommand(
		newDiscoverCmd(a),
		newScanCmd(a),
		newProvisionCmd(a),
		newStatusCmd(a),
		newVersionCmd(a),
		newShellCmd(a),
		newHistoryCmd(a),
		newQRCmd(a),
		newLogCmd(),
	)
	return root
}
