package discovery

import (
	"github.com/espprov/espprov-go/pkg/device"
	"github.com/espprov/espprov-go/pkg/transport"
)

// SoftAPDevice returns a Device for a provisioning server on the device's
// own access point. The host must already have joined that network.
// An empty baseURL means transport.DefaultSoftAPBaseURL.
func SoftAPDevice(baseURL string, opts ...device.Option) (*device.Device, error) {
	if baseURL == "" {
		baseURL = transport.DefaultSoftAPBaseURL
	}
	loc, err := device.ParseNetworkLocator(baseURL)
	if err != nil {
		return nil, err
	}
	return device.New(loc, opts...), nil
}
