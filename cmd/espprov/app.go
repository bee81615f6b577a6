package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/connection"
	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/history"
	"github.com/espprov/espprov-go/pkg/log"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

// globalFlags are the persistent root flags.
type globalFlags struct {
	configPath  string
	logLevel    string
	protocolLog string
	historyDB   string
	timeout     time.Duration
	hciDevice   int
	retries     int
	yaml        bool
}

// app carries the state shared by every subcommand.
type app struct {
	flags  globalFlags
	cfg    Config
	out    printer
	errOut io.Writer
	logger *slog.Logger

	// plog is nil unless a capture file or debug logging is enabled.
	plog log.Logger

	closers  []func() error
	bleReady bool

	// openHost installs the host BLE adapter.
	openHost func(id int) (func() error, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:      printer{w: out},
		errOut:   errOut,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		openHost: openHostDevice,
	}
}

// setup loads the config file and overlays explicitly set flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("protocol-log") {
		cfg.ProtocolLog = a.flags.protocolLog
	}
	if flags.Changed("history-db") {
		cfg.HistoryDB = a.flags.historyDB
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
	}
	if flags.Changed("hci") {
		cfg.HCIDevice = a.flags.hciDevice
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.out.yamlMode = a.flags.yaml

	level, _ := parseLogLevel(cfg.LogLevel)
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	var loggers []log.Logger
	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("open protocol log: %w", err)
		}
		a.closers = append(a.closers, fl.Close)
		loggers = append(loggers, fl)
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(a.logger))
	}
	switch len(loggers) {
	case 0:
	case 1:
		a.plog = loggers[0]
	default:
		a.plog = log.NewMultiLogger(loggers...)
	}
	return nil
}

// close releases everything setup and the commands opened, newest first.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// context bounds ctx by the configured timeout.
func (a *app) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

// ensureBLE installs the host adapter once.
func (a *app) ensureBLE() error {
	if a.bleReady {
		return nil
	}
	stop, err := a.openHost(a.cfg.HCIDevice)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, stop)
	a.bleReady = true
	return nil
}

func (a *app) deviceOptions() []device.Option {
	opts := []device.Option{
		device.WithServiceUUID(a.cfg.ServiceUUID),
		device.WithFallbackTable(a.cfg.Fallback),
		device.WithLogger(a.logger),
	}
	if a.plog != nil {
		opts = append(opts, device.WithProtocolLogger(a.plog))
	}
	return opts
}

func (a *app) bleScanner(namePrefix, serviceUUID string) (*discovery.BLEScanner, error) {
	if err := a.ensureBLE(); err != nil {
		return nil, err
	}
	cfg := discovery.DefaultBLEScannerConfig()
	cfg.NamePrefix = namePrefix
	cfg.ServiceUUID = serviceUUID
	return discovery.NewBLEScanner(cfg), nil
}

func (a *app) mdnsBrowser(iface string) *discovery.MDNSBrowser {
	cfg := discovery.DefaultBrowserConfig()
	cfg.Service = a.cfg.MDNSService
	cfg.Interface = iface
	return discovery.NewMDNSBrowser(cfg)
}

// connect connects d, retrying transport failures --retries times.
// Security failures are returned at once.
func (a *app) connect(ctx context.Context, d *device.Device, sec *security.Config) error {
	if d.Locator().Kind() == transport.KindBLE {
		if err := a.ensureBLE(); err != nil {
			return err
		}
	}

	backoff := connection.DefaultBackoffConfig()
	backoff.MaxAttempts = a.flags.retries + 1

	var permanent error
	err := connection.Retry(ctx, backoff, func(ctx context.Context) error {
		err := d.Connect(ctx, sec)
		var opErr *device.OpError
		if err != nil && errors.As(err, &opErr) && opErr.Step != device.StepTransport {
			permanent = err
			return nil
		}
		if err != nil {
			a.logger.Info("connect failed", "device", d.Locator().String(), "error", err)
		}
		return err
	})
	if permanent != nil {
		return permanent
	}
	if err != nil {
		return err
	}
	a.logger.Debug("connected", "device", d.Locator().String(), "state", d.State())
	return nil
}

// openHistory opens the attempt store, or returns nil when disabled.
func (a *app) openHistory(ctx context.Context, readOnly bool) (*history.Store, error) {
	if a.cfg.HistoryDB == "" {
		return nil, nil
	}
	if readOnly {
		if _, err := os.Stat(a.cfg.HistoryDB); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	store, err := history.Open(ctx, history.Options{Path: a.cfg.HistoryDB, ReadOnly: readOnly})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}
