package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/discovery"
	"github.com/espprov/espprov-go/pkg/security"
	"github.com/espprov/espprov-go/pkg/transport"
)

// targetFlags select the device a command talks to. At most one of
// address, url, qr, name and mdns may be set; none means the first BLE
// device matching the configured filter.
type targetFlags struct {
	address string
	url     string
	qr      string
	name    string
	mdns    bool
	iface   string

	scheme int
	pop    string
	user   string
}

func (t *targetFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&t.address, "ble", "", "BLE address of the device")
	f.StringVar(&t.url, "url", "", "SoftAP base URL (e.g. "+transport.DefaultSoftAPBaseURL+")")
	f.StringVar(&t.qr, "qr", "", "Provisioning QR payload (JSON)")
	f.StringVar(&t.name, "name", "", "Advertised BLE name to scan for")
	f.BoolVar(&t.mdns, "mdns", false, "Use the first device found via mDNS")
	f.StringVar(&t.iface, "iface", "", "Network interface for mDNS")
	f.IntVar(&t.scheme, "sec", 0, "Security scheme (0, 1 or 2)")
	f.StringVar(&t.pop, "pop", "", "Proof of possession (security 1)")
	f.StringVar(&t.user, "user", "", "Username (security 2)")
	cmd.MarkFlagsMutuallyExclusive("ble", "url", "qr", "name", "mdns")
}

// security returns the session config implied by the flags.
func (t *targetFlags) security() (*security.Config, error) {
	if t.scheme < 0 || t.scheme > int(security.Scheme2) {
		return nil, fmt.Errorf("invalid --sec %d", t.scheme)
	}
	return &security.Config{
		Scheme:            security.Scheme(t.scheme),
		ProofOfPossession: t.pop,
		Username:          t.user,
	}, nil
}

// resolve locates the device and its session config.
func (t *targetFlags) resolve(ctx context.Context, a *app) (*device.Device, *security.Config, error) {
	opts := a.deviceOptions()

	switch {
	case t.qr != "":
		qr, err := discovery.ParseQRCode(t.qr)
		if err != nil {
			return nil, nil, err
		}
		sec := qr.SecurityConfig()
		if qr.Transport == transport.KindSoftAP {
			d, err := discovery.SoftAPDevice(t.url, opts...)
			return d, sec, err
		}
		d, err := a.firstRadio(ctx, qr.Name, "", opts)
		return d, sec, err

	case t.url != "":
		loc, err := device.ParseNetworkLocator(t.url)
		if err != nil {
			return nil, nil, err
		}
		sec, err := t.security()
		return device.New(loc, opts...), sec, err

	case t.address != "":
		sec, err := t.security()
		return device.New(device.RadioLocator(t.address), opts...), sec, err

	case t.mdns:
		sec, err := t.security()
		if err != nil {
			return nil, nil, err
		}
		b := a.mdnsBrowser(t.iface)
		defer b.Stop()
		d, err := b.FirstNetworkDevice(ctx, opts...)
		if errors.Is(err, discovery.ErrNoDevice) {
			return nil, nil, fmt.Errorf("no %s service found: %w", a.cfg.MDNSService, err)
		}
		return d, sec, err

	default:
		sec, err := t.security()
		if err != nil {
			return nil, nil, err
		}
		prefix, service := a.cfg.NamePrefix, a.cfg.ServiceUUID
		if t.name != "" {
			prefix, service = t.name, ""
		}
		d, err := a.firstRadio(ctx, prefix, service, opts)
		return d, sec, err
	}
}

func (a *app) firstRadio(ctx context.Context, prefix, service string, opts []device.Option) (*device.Device, error) {
	scanner, err := a.bleScanner(prefix, service)
	if err != nil {
		return nil, err
	}
	d, err := scanner.FirstRadioDevice(ctx, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("found device", "device", d.Locator().String())
	return d, nil
}

// session resolves and connects the target. The returned func
// disconnects.
func (t *targetFlags) session(ctx context.Context, a *app) (*device.Device, func(), error) {
	d, sec, err := t.resolve(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	if err := a.connect(ctx, d, sec); err != nil {
		return nil, nil, err
	}
	return d, d.Disconnect, nil
}
