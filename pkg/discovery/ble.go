package discovery

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/transport"
)

// Advertisement is one received BLE advertisement.
type Advertisement struct {
	Address  string
	Name     string
	RSSI     int
	Services []string
}

// ScanFunc listens for advertisements until ctx ends, passing each one to
// handle. It returns ctx.Err() when the scan ran its course.
type ScanFunc func(ctx context.Context, handle func(Advertisement)) error

// BLEScannerConfig configures a BLEScanner.
type BLEScannerConfig struct {
	// NamePrefix matches advertised names. Empty disables name matching.
	NamePrefix string

	// ServiceUUID matches advertised services. Empty disables service
	// matching. A device matching either filter is reported.
	ServiceUUID string

	// Timeout bounds a scan when ctx has no deadline.
	Timeout time.Duration

	// Scan receives advertisements. If nil, the host's go-ble device is used.
	Scan ScanFunc
}

// DefaultBLEScannerConfig returns the filter used by stock firmware.
func DefaultBLEScannerConfig() BLEScannerConfig {
	return BLEScannerConfig{
		NamePrefix:  DefaultNamePrefix,
		ServiceUUID: transport.DefaultServiceUUID,
		Timeout:     ScanTimeout,
	}
}

// BLEScanner finds provisionable devices over BLE.
type BLEScanner struct {
	config BLEScannerConfig
}

// NewBLEScanner creates a scanner.
func NewBLEScanner(config BLEScannerConfig) *BLEScanner {
	if config.Timeout <= 0 {
		config.Timeout = ScanTimeout
	}
	if config.Scan == nil {
		config.Scan = goBLEScan
	}
	return &BLEScanner{config: config}
}

// Matches reports whether an advertisement passes the scanner's filter.
func (s *BLEScanner) Matches(a Advertisement) bool {
	if s.config.NamePrefix == "" && s.config.ServiceUUID == "" {
		return true
	}
	if s.config.NamePrefix != "" && strings.HasPrefix(a.Name, s.config.NamePrefix) {
		return true
	}
	if s.config.ServiceUUID != "" {
		for _, u := range a.Services {
			if transport.SameUUID(u, s.config.ServiceUUID) {
				return true
			}
		}
	}
	return false
}

// Scan collects matching devices until ctx ends or the timeout passes.
// Devices are deduplicated by address and ordered by signal strength.
// Running out of time is not an error.
func (s *BLEScanner) Scan(ctx context.Context) ([]RadioDevice, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var mu sync.Mutex
	seen := make(map[string]*RadioDevice)

	err := s.config.Scan(ctx, func(a Advertisement) {
		if !s.Matches(a) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if d, ok := seen[a.Address]; ok {
			d.RSSI = a.RSSI
			if a.Name != "" {
				d.Name = a.Name
			}
			return
		}
		seen[a.Address] = &RadioDevice{Address: a.Address, Name: a.Name, RSSI: a.RSSI}
	})
	if err != nil && !isScanDone(err) {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	devices := make([]RadioDevice, 0, len(seen))
	for _, d := range seen {
		devices = append(devices, *d)
	}
	slices.SortFunc(devices, func(a, b RadioDevice) int {
		if c := cmp.Compare(b.RSSI, a.RSSI); c != 0 {
			return c
		}
		return cmp.Compare(a.Address, b.Address)
	})
	return devices, nil
}

// First returns the first matching device seen.
func (s *BLEScanner) First(ctx context.Context) (RadioDevice, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		mu    sync.Mutex
		found *RadioDevice
	)
	err := s.config.Scan(ctx, func(a Advertisement) {
		if !s.Matches(a) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if found == nil {
			found = &RadioDevice{Address: a.Address, Name: a.Name, RSSI: a.RSSI}
			cancel()
		}
	})

	mu.Lock()
	defer mu.Unlock()
	if found != nil {
		return *found, nil
	}
	if err != nil && !isScanDone(err) {
		return RadioDevice{}, err
	}
	return RadioDevice{}, ErrNoDevice
}

// FirstRadioDevice scans for the first matching device and returns an
// unconnected Device for it.
func (s *BLEScanner) FirstRadioDevice(ctx context.Context, opts ...device.Option) (*device.Device, error) {
	r, err := s.First(ctx)
	if err != nil {
		return nil, err
	}
	if s.config.ServiceUUID != "" {
		opts = append([]device.Option{device.WithServiceUUID(s.config.ServiceUUID)}, opts...)
	}
	return device.New(r.Locator(), opts...), nil
}

func (s *BLEScanner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.Timeout)
}

func isScanDone(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
