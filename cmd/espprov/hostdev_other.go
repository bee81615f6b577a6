//go:build !linux

package main

import "errors"

var errBLEUnsupported = errors.New("BLE needs a Linux HCI adapter; use --url or --mdns")

func openHostDevice(int) (func() error, error) {
	return nil, errBLEUnsupported
}
