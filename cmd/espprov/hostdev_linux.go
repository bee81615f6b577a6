//go:build linux

package main

import (
	"fmt"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
)

// openHostDevice opens hci<id> and makes it go-ble's default device.
func openHostDevice(id int) (func() error, error) {
	d, err := linux.NewDevice(ble.OptDeviceID(id))
	if err != nil {
		return nil, fmt.Errorf("open hci%d: %w", id, err)
	}
	ble.SetDefaultDevice(d)
	return d.Stop, nil
}
