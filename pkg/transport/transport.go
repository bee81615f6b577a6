package transport

import (
	"context"
	"errors"
	"strings"
)

// Endpoint is a logical protocol channel name.
type Endpoint string

// Provisioning endpoints.
const (
	EndpointSession Endpoint = "prov-session"
	EndpointScan    Endpoint = "prov-scan"
	EndpointControl Endpoint = "prov-ctrl"
	EndpointConfig  Endpoint = "prov-config"
	EndpointVersion Endpoint = "proto-ver"
)

// key returns the case-insensitive lookup key for the endpoint.
func (e Endpoint) key() string {
	return strings.ToLower(strings.TrimSpace(string(e)))
}

// Transport errors.
var (
	// ErrConnection indicates the channel could not be established.
	ErrConnection = errors.New("connection failed")

	// ErrNotConnected indicates SendData was called without a live channel.
	ErrNotConnected = errors.New("not connected")

	// ErrEndpointNotFound indicates the endpoint has no address on this device.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrTransport indicates an I/O fault during a round trip.
	ErrTransport = errors.New("transport error")

	// ErrServiceNotFound indicates the provisioning GATT service is absent.
	// Connect reports it wrapped in ErrConnection.
	ErrServiceNotFound = errors.New("service not found")
)

// Transport is a request/response channel to one device.
type Transport interface {
	// Connect establishes the channel. It is a no-op when already connected.
	Connect(ctx context.Context) error

	// Disconnect tears down the channel and drops cached addressing.
	// It always returns nil and may be called repeatedly.
	Disconnect() error

	// SendData writes data to the endpoint and returns the device's reply.
	SendData(ctx context.Context, ep Endpoint, data []byte) ([]byte, error)

	// IsConnected reports the live state of the underlying channel.
	IsConnected() bool
}

// Variant names used in protocol capture.
const (
	KindBLE    = "ble"
	KindSoftAP = "softap"
)

var (
	_ Transport = (*BLE)(nil)
	_ Transport = (*SoftAP)(nil)
)
