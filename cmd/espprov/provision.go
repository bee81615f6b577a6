package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/history"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/wire"
)

// errStationFailed reports a device that gave up joining the network.
var errStationFailed = errors.New("station failed to connect")

func newProvisionCmd(a *app) *cobra.Command {
	var (
		target          targetFlags
		ssid, pass      string
		open, wait      bool
		passphraseStdin bool
	)
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Send WiFi credentials to a device and apply them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !open && !cmd.Flags().Changed("passphrase") {
				p, err := readPassphrase(cmd.InOrStdin(), cmd.ErrOrStderr(), passphraseStdin)
				if err != nil {
					return err
				}
				pass = p
			}

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			d, sec, err := target.resolve(ctx, a)
			if err != nil {
				return err
			}

			attempt := history.NewAttempt(d.Locator(), ssid)
			if sec != nil {
				attempt.Scheme = sec.Scheme.String()
			}
			err = a.provision(ctx, d, sec, ssid, pass, wait, attempt)
			attempt.Finish(err)
			a.record(cmd.Context(), attempt)
			if err != nil {
				return err
			}

			if a.out.yamlMode {
				return a.out.yaml(attempt)
			}
			fmt.Fprintf(a.out.w, "Provisioned %s with %q", d.Locator(), ssid)
			if attempt.IPv4Addr != "" {
				fmt.Fprintf(a.out.w, " (%s)", attempt.IPv4Addr)
			}
			fmt.Fprintln(a.out.w)
			return nil
		},
	}
	target.register(cmd)
	f := cmd.Flags()
	f.StringVar(&ssid, "ssid", "", "Network name")
	f.StringVar(&pass, "passphrase", "", "Network passphrase")
	f.BoolVar(&passphraseStdin, "passphrase-stdin", false, "Read the passphrase from stdin")
	f.BoolVar(&open, "open", false, "The network has no passphrase")
	f.BoolVar(&wait, "wait", false, "Poll until the device joins the network")
	_ = cmd.MarkFlagRequired("ssid")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "passphrase-stdin", "open")
	return cmd
}

// provision runs connect, credentials and the optional station wait,
// filling in attempt as it goes.
func (a *app) provision(ctx context.Context, d *device.Device, sec *security.Config, ssid, pass string, wait bool, attempt *history.Attempt) error {
	if err := a.connect(ctx, d, sec); err != nil {
		return err
	}
	defer d.Disconnect()

	if err := d.Provision(ctx, ssid, pass); err != nil {
		return err
	}
	a.logger.Info("credentials applied", "device", d.Locator().String(), "ssid", ssid)
	if !wait {
		return nil
	}

	st, err := d.WaitForStation(ctx, a.cfg.Poll)
	attempt.Observe(st)
	if err != nil {
		return err
	}
	if st.State == wire.StationFailed {
		reason := "unknown"
		if st.FailReason != nil {
			reason = st.FailReason.String()
		}
		return fmt.Errorf("%w: %s", errStationFailed, reason)
	}
	return nil
}

// record stores attempt. Store failures are logged, never returned.
func (a *app) record(ctx context.Context, attempt *history.Attempt) {
	store, err := a.openHistory(ctx, false)
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return
	}
	if store == nil {
		return
	}
	if err := store.Record(ctx, attempt); err != nil {
		a.logger.Warn("history record failed", "error", err)
	}
}

// readPassphrase prompts without echo on a terminal, or reads one line
// from in otherwise.
func readPassphrase(in io.Reader, prompt io.Writer, fromStdin bool) (string, error) {
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Passphrase: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
