package discovery

import (
	"context"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"

	"github.com/espprov/espprov-go/pkg/device"
)

// MDNSBrowser finds provisioning servers announced over mDNS.
type MDNSBrowser struct {
	config BrowserConfig

	mu      sync.Mutex
	nextID  uint64
	cancels map[uint64]context.CancelFunc
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	if config.Service == "" {
		config.Service = DefaultMDNSService
	}
	if config.BrowseTimeout <= 0 {
		config.BrowseTimeout = BrowseTimeout
	}
	if config.Browse == nil {
		config.Browse = zeroconfBrowse(config.Interface)
	}
	return &MDNSBrowser{config: config, cancels: make(map[uint64]context.CancelFunc)}
}

// Browse streams devices as they are resolved. Entries seen again on
// another interface are merged and not re-emitted. The channel is closed
// when ctx ends, the browse finishes or Stop is called.
func (b *MDNSBrowser) Browse(ctx context.Context) <-chan NetworkDevice {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.cancels[id] = cancel
	b.mu.Unlock()

	out := make(chan NetworkDevice)
	entries := make(chan ServiceEntry)

	go func() {
		defer close(entries)
		_ = b.config.Browse(ctx, b.config.Service, Domain, entries)
	}()

	go func() {
		defer close(out)
		defer b.release(id)

		// Track services by instance name, aggregating addresses.
		services := make(map[string]*NetworkDevice)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if existing, ok := services[entry.Instance]; ok {
					existing.Addresses = mergeAddresses(existing.Addresses, entry.Addrs)
					continue
				}
				dev := entry.toNetworkDevice()
				services[entry.Instance] = &dev
				select {
				case out <- dev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// FindAll browses until ctx ends or the browse timeout passes and returns
// every device seen. Running out of time is not an error.
func (b *MDNSBrowser) FindAll(ctx context.Context) ([]NetworkDevice, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	devices := []NetworkDevice{}
	for dev := range b.Browse(ctx) {
		devices = append(devices, dev)
	}
	return devices, nil
}

// First returns the first device with a usable address.
func (b *MDNSBrowser) First(ctx context.Context) (NetworkDevice, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	for dev := range b.Browse(ctx) {
		if dev.BaseURL() != nil {
			return dev, nil
		}
	}
	return NetworkDevice{}, ErrNoDevice
}

// FirstNetworkDevice browses for the first device and returns an
// unconnected Device for it.
func (b *MDNSBrowser) FirstNetworkDevice(ctx context.Context, opts ...device.Option) (*device.Device, error) {
	n, err := b.First(ctx)
	if err != nil {
		return nil, err
	}
	loc, _ := n.Locator()
	return device.New(loc, opts...), nil
}

// Stop ends all active browse operations.
func (b *MDNSBrowser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, cancel := range b.cancels {
		cancel()
		delete(b.cancels, id)
	}
}

// Active returns the number of browse operations still running.
func (b *MDNSBrowser) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cancels)
}

// release cancels and forgets the browse with the given id.
func (b *MDNSBrowser) release(id uint64) {
	b.mu.Lock()
	cancel, ok := b.cancels[id]
	delete(b.cancels, id)
	b.mu.Unlock()
	if ok {
		cancel()
	}
}

func (b *MDNSBrowser) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.config.BrowseTimeout)
}

// zeroconfBrowse browses with zeroconf, optionally on a single interface.
func zeroconfBrowse(iface string) BrowseFunc {
	return func(ctx context.Context, service, domain string, found chan<- ServiceEntry) error {
		var opts []zeroconf.ClientOption
		if iface != "" {
			if ifi, err := net.InterfaceByName(iface); err == nil {
				opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*ifi}))
			}
		}

		entries := make(chan *zeroconf.ServiceEntry)
		removed := make(chan *zeroconf.ServiceEntry)
		errc := make(chan error, 1)
		go func() {
			errc <- zeroconf.Browse(ctx, service, domain, entries, removed, opts...)
		}()

		for {
			select {
			case e, ok := <-entries:
				if !ok {
					return nil
				}
				select {
				case found <- entryFromZeroconf(e):
				case <-ctx.Done():
					return nil
				}
			case _, ok := <-removed:
				if !ok {
					removed = nil
				}
			case err := <-errc:
				if err != nil {
					return err
				}
				errc = nil
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func entryFromZeroconf(e *zeroconf.ServiceEntry) ServiceEntry {
	addrs := make([]string, 0, len(e.AddrIPv4)+len(e.AddrIPv6))
	for _, ip := range e.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range e.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return ServiceEntry{
		Instance: e.Instance,
		Host:     e.HostName,
		Port:     uint16(e.Port),
		Text:     e.Text,
		Addrs:    addrs,
	}
}
