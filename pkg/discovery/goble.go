package discovery

import (
	"context"

	"github.com/go-ble/ble"
)

// goBLEScan scans with the default go-ble device. The caller must have
// installed one with ble.SetDefaultDevice.
func goBLEScan(ctx context.Context, handle func(Advertisement)) error {
	return ble.Scan(ctx, true, func(a ble.Advertisement) {
		services := make([]string, 0, len(a.Services()))
		for _, u := range a.Services() {
			services = append(services, u.String())
		}
		handle(Advertisement{
			Address:  a.Addr().String(),
			Name:     a.LocalName(),
			RSSI:     a.RSSI(),
			Services: services,
		})
	}, nil)
}
