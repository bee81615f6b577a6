package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

func newShellCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with one device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd.Context())
			d, sec, err := target.resolve(ctx, a)
			cancel()
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "espprov> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			// Route printer output through readline so it does not clobber the prompt.
			a.out.w = rl.Stdout()
			s := &shell{app: a, dev: d, sec: sec, rl: rl, out: rl.Stdout()}
			defer d.Disconnect()
			s.run(cmd.Context())
			return nil
		},
	}
	target.register(cmd)
	return cmd
}

// shell is the interactive command loop.
type shell struct {
	app *app
	dev *device.Device
	sec *security.Config
	rl  *readline.Instance
	out io.Writer
}

func (s *shell) run(ctx context.Context) {
	fmt.Fprintf(s.out, "Device: %s (type 'help' for commands)\n", s.dev.Locator())

	for {
		if ctx.Err() != nil {
			return
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if quit := s.dispatch(ctx, strings.ToLower(parts[0]), parts[1:]); quit {
			return
		}
	}
}

// dispatch runs one command and reports whether the shell should exit.
func (s *shell) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "connect", "c":
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			return s.app.connect(ctx, s.dev, s.sec)
		})
	case "disconnect", "d":
		s.dev.Disconnect()
	case "state":
		fmt.Fprintln(s.out, s.dev.State())
	case "version", "v":
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			v, err := s.dev.ProtoVersion(ctx)
			if err != nil {
				return err
			}
			return s.app.out.protoVersion(v)
		})
	case "scan", "s":
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			aps, err := s.dev.ScanWiFiList(ctx)
			if err != nil {
				return err
			}
			return s.app.out.accessPoints(aps)
		})
	case "provision", "p":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(s.out, "Usage: provision <ssid> [passphrase]")
			return false
		}
		ssid, pass := args[0], ""
		if len(args) == 2 {
			pass = args[1]
		}
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			return s.dev.Provision(ctx, ssid, pass)
		})
		if err == nil {
			fmt.Fprintln(s.out, "Credentials applied")
		}
	case "status":
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			st, err := s.dev.FetchWiFiStatus(ctx)
			if err != nil {
				return err
			}
			return s.app.out.wifiStatus(st)
		})
	case "wait":
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			st, err := s.dev.WaitForStation(ctx, s.app.cfg.Poll)
			if st != nil {
				_ = s.app.out.wifiStatus(st)
			}
			return err
		})
	case "send":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "Usage: send <endpoint> <hex>")
			return false
		}
		payload, derr := hex.DecodeString(args[1])
		if derr != nil {
			fmt.Fprintf(s.out, "Invalid hex: %v\n", derr)
			return false
		}
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			resp, err := s.dev.SendData(ctx, transport.Endpoint(args[0]), payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, hex.EncodeToString(resp))
			return nil
		})
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *shell) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := s.app.context(ctx)
	defer cancel()
	return fn(ctx)
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  connect              - Open the channel and session
  disconnect           - Close the session
  state                - Show the session state
  version              - Show protocol version and capabilities
  scan                 - List access points seen by the device
  provision <ssid> [p] - Send and apply credentials
  status               - Show station status
  wait                 - Poll until the station connects or fails
  send <ep> <hex>      - Exchange a raw payload on an endpoint
  quit                 - Exit`)
}
